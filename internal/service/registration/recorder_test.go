package registration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func submission(id string) Submission {
	in := anaInput()
	return Submission{ID: id, ReceivedAt: time.Unix(0, 0).UTC(), Input: in}
}

func TestRecorder_SubmitAndGet(t *testing.T) {
	r := NewRecorder(10)
	ctx := context.Background()

	if err := r.Submit(ctx, submission("a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := r.Get(ctx, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "a" || got.Input.FirstName != "Ana" {
		t.Fatalf("unexpected submission %+v", got)
	}
}

func TestRecorder_GetNotFound(t *testing.T) {
	r := NewRecorder(10)
	if _, err := r.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecorder_EvictsOldest(t *testing.T) {
	r := NewRecorder(2)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		if err := r.Submit(ctx, submission(id)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if r.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", r.Len())
	}
	if _, err := r.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected oldest entry evicted, got %v", err)
	}
	list := r.List(ctx)
	if list[0].ID != "b" || list[1].ID != "c" {
		t.Fatalf("expected [b c], got [%s %s]", list[0].ID, list[1].ID)
	}
}

func TestRecorder_ResubmitSameIDReplaces(t *testing.T) {
	r := NewRecorder(2)
	ctx := context.Background()
	_ = r.Submit(ctx, submission("a"))
	s := submission("a")
	s.Input.Company = "Globex"
	_ = r.Submit(ctx, s)

	if r.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", r.Len())
	}
	got, _ := r.Get(ctx, "a")
	if got.Input.Company != "Globex" {
		t.Fatalf("expected replaced company, got %q", got.Input.Company)
	}
}

func TestRecorder_ReturnsCopies(t *testing.T) {
	r := NewRecorder(10)
	ctx := context.Background()
	_ = r.Submit(ctx, submission("a"))

	got, _ := r.Get(ctx, "a")
	*got.Input.DateOfBirth.Month = "Abril"
	got.Input.FirstName = "Bia"

	again, _ := r.Get(ctx, "a")
	if *again.Input.DateOfBirth.Month != "Março" || again.Input.FirstName != "Ana" {
		t.Fatalf("stored submission was mutated through a returned copy: %+v", again.Input)
	}
}

func TestRecorder_Reset(t *testing.T) {
	r := NewRecorder(10)
	ctx := context.Background()
	_ = r.Submit(ctx, submission("a"))
	r.Reset()

	if r.Len() != 0 {
		t.Fatalf("expected empty recorder, got %d", r.Len())
	}
	if len(r.List(ctx)) != 0 {
		t.Fatal("expected empty list after reset")
	}
}

func TestRecorder_NonPositiveCapacity(t *testing.T) {
	r := NewRecorder(0)
	ctx := context.Background()
	_ = r.Submit(ctx, submission("a"))
	_ = r.Submit(ctx, submission("b"))
	if r.Len() != 1 {
		t.Fatalf("expected capacity clamped to 1, got %d entries", r.Len())
	}
}

func TestRecorder_ConcurrentSubmit(t *testing.T) {
	r := NewRecorder(1000)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			_ = r.Submit(ctx, submission(fmt.Sprintf("id-%d", i)))
			_ = r.List(ctx)
		})
	}
	wg.Wait()

	if r.Len() != 50 {
		t.Fatalf("expected 50 entries, got %d", r.Len())
	}
}
