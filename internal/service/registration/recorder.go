package registration

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrNotFound is returned when a recorded submission does not exist.
var ErrNotFound = errors.New("registration: not found")

// Recorder keeps the most recent submissions in memory for inspection.
// When full, the oldest submission is evicted. It is safe for concurrent use.
type Recorder struct {
	mu       sync.RWMutex
	capacity int
	order    []string
	byID     map[string]Submission
}

// NewRecorder creates a recorder holding at most capacity submissions.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = 1
	}
	return &Recorder{
		capacity: capacity,
		byID:     make(map[string]Submission, capacity),
	}
}

func (r *Recorder) Submit(_ context.Context, s Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; !exists {
		if len(r.order) == r.capacity {
			delete(r.byID, r.order[0])
			r.order = r.order[1:]
		}
		r.order = append(r.order, s.ID)
	}
	s.Input = s.Input.clone()
	r.byID[s.ID] = s

	return nil
}

// Get returns the submission with the given id.
func (r *Recorder) Get(_ context.Context, id string) (Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return Submission{}, ErrNotFound
	}
	s.Input = s.Input.clone()
	return s, nil
}

// List returns the recorded submissions, oldest first.
func (r *Recorder) List(_ context.Context) []Submission {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Submission, 0, len(r.order))
	for _, id := range r.order {
		s := r.byID[id]
		s.Input = s.Input.clone()
		out = append(out, s)
	}
	return out
}

// Len returns the number of recorded submissions.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Reset drops every recorded submission.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = slices.Delete(r.order, 0, len(r.order))
	clear(r.byID)
}

var _ Submitter = (*Recorder)(nil)
