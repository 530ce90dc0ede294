package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/janisto/echo-registration/internal/platform/validate"
)

// capture records every submission it receives.
type capture struct {
	got []Submission
	err error
}

func (c *capture) Submit(_ context.Context, s Submission) error {
	if c.err != nil {
		return c.err
	}
	c.got = append(c.got, s)
	return nil
}

func newTestService(t *testing.T, sub Submitter) *Service {
	t.Helper()
	opts, err := NewOptions(DefaultLocale)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	svc := NewService(NewSchema(validate.New()), sub, opts)
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC) }
	seq := 0
	svc.newID = func() string {
		seq++
		return "reg-" + string(rune('0'+seq))
	}
	return svc
}

func ptr(s string) *string { return &s }

func anaInput() Input {
	return Input{
		FirstName: "Ana",
		LastName:  "Silva",
		Company:   "Acme",
		Email:     "ana@acme.com",
		DateOfBirth: DateOfBirth{
			Month: ptr("Março"),
			Day:   ptr("05"),
			Year:  ptr("1990"),
		},
	}
}

func fill(t *testing.T, f *Form, values map[string]string) {
	t.Helper()
	for path, value := range values {
		if err := f.Change(path, value); err != nil {
			t.Fatalf("change %s: %v", path, err)
		}
	}
}

func TestSubmit_ValidInputReachesCollaboratorUnchanged(t *testing.T) {
	sub := &capture{}
	f := newTestService(t, sub).NewForm()
	fill(t, f, map[string]string{
		PathFirstName:  "Ana",
		PathLastName:   "Silva",
		PathCompany:    "Acme",
		PathEmail:      "ana@acme.com",
		PathBirthMonth: "Março",
		PathBirthDay:   "05",
		PathBirthYear:  "1990",
	})

	s, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(sub.got) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(sub.got))
	}
	if diff := cmp.Diff(anaInput(), sub.got[0].Input); diff != "" {
		t.Fatalf("collaborator payload mismatch (-want +got):\n%s", diff)
	}
	if s.ID != "reg-1" || !s.ReceivedAt.Equal(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected submission metadata %+v", s)
	}
	if len(f.Errors()) != 0 {
		t.Fatalf("expected no errors, got %v", f.Errors())
	}
}

func TestSubmit_InvalidInputBlocksAndReportsEveryField(t *testing.T) {
	sub := &capture{}
	f := newTestService(t, sub).NewForm()
	fill(t, f, map[string]string{
		PathLastName: "Silva",
		PathCompany:  "Acme",
		PathEmail:    "not-an-email",
	})

	_, err := f.Submit(context.Background())
	var ve *validate.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *validate.ValidationError, got %T (%v)", err, err)
	}
	if len(sub.got) != 0 {
		t.Fatal("collaborator must not be called for invalid input")
	}

	want := map[string]string{
		PathFirstName: "firstName is required",
		PathEmail:     "email must be a valid email address",
	}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Fatalf("error map mismatch (-want +got):\n%s", diff)
	}
	for _, p := range []string{PathBirthMonth, PathBirthDay, PathBirthYear} {
		if _, ok := f.Errors()[p]; ok {
			t.Fatalf("expected no error for %s", p)
		}
	}
}

func TestSubmit_AllRequiredMissing(t *testing.T) {
	f := newTestService(t, &capture{}).NewForm()

	if _, err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
	want := map[string]string{
		PathFirstName: "firstName is required",
		PathLastName:  "lastName is required",
		PathEmail:     "email is required",
		PathCompany:   "company is required",
	}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Fatalf("error map mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_DatePartsNeverBlock(t *testing.T) {
	base := anaInput()
	combos := []DateOfBirth{
		{},
		{Month: ptr("Fevereiro")},
		{Day: ptr("30")},
		{Year: ptr("2100")},
		{Month: ptr("Fevereiro"), Day: ptr("30"), Year: ptr("2023")},
		{Month: ptr("not a month"), Day: ptr("99")},
	}
	for _, dob := range combos {
		sub := &capture{}
		in := base
		in.DateOfBirth = dob
		if _, err := newTestService(t, sub).Submit(context.Background(), in); err != nil {
			t.Fatalf("date parts %+v blocked submission: %v", dob, err)
		}
		if diff := cmp.Diff(in, sub.got[0].Input); diff != "" {
			t.Fatalf("payload mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSubmit_Idempotent(t *testing.T) {
	sub := &capture{}
	f := newTestService(t, sub).NewForm()
	f.Load(anaInput())

	for range 2 {
		if _, err := f.Submit(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(sub.got) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(sub.got))
	}
	if diff := cmp.Diff(sub.got[0].Input, sub.got[1].Input); diff != "" {
		t.Fatalf("payloads differ between submits:\n%s", diff)
	}
}

func TestSubmit_CollaboratorError(t *testing.T) {
	boom := errors.New("boom")
	f := newTestService(t, &capture{err: boom}).NewForm()
	f.Load(anaInput())

	_, err := f.Submit(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped collaborator error, got %v", err)
	}
	if f.State() != StateSubmitAttempted {
		t.Fatalf("expected state %v, got %v", StateSubmitAttempted, f.State())
	}
}

func TestSubmit_PayloadIsolatedFromLaterEdits(t *testing.T) {
	sub := &capture{}
	f := newTestService(t, sub).NewForm()
	f.Load(anaInput())
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fill(t, f, map[string]string{PathBirthMonth: "Abril", PathFirstName: "Bia"})

	if got := *sub.got[0].Input.DateOfBirth.Month; got != "Março" {
		t.Fatalf("submitted payload changed after edit: month %q", got)
	}
	if sub.got[0].Input.FirstName != "Ana" {
		t.Fatalf("submitted payload changed after edit: firstName %q", sub.got[0].Input.FirstName)
	}
}

func TestStateMachine(t *testing.T) {
	f := newTestService(t, &capture{}).NewForm()
	if f.State() != StateEditing {
		t.Fatalf("expected pristine form in %v, got %v", StateEditing, f.State())
	}

	_, _ = f.Submit(context.Background())
	if f.State() != StateSubmitAttempted {
		t.Fatalf("expected %v after submit, got %v", StateSubmitAttempted, f.State())
	}
	if len(f.View().Fields[0].Error) == 0 {
		t.Fatal("expected errors to be rendered after a failed submit")
	}

	fill(t, f, map[string]string{PathFirstName: "Ana"})
	if f.State() != StateEditing {
		t.Fatalf("expected %v after change, got %v", StateEditing, f.State())
	}
	for _, field := range f.View().Fields {
		if field.Error != "" {
			t.Fatalf("expected stale errors hidden while editing, got %q on %s", field.Error, field.Path)
		}
	}
	if len(f.Errors()) == 0 {
		t.Fatal("expected the latest pass to remain available via Errors")
	}

	fill(t, f, map[string]string{PathLastName: "Silva", PathCompany: "Acme", PathEmail: "ana@acme.com"})
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("expected resubmit to succeed, got %v", err)
	}
	if len(f.Errors()) != 0 {
		t.Fatalf("expected errors cleared, got %v", f.Errors())
	}
}

func TestChange_UnknownField(t *testing.T) {
	f := newTestService(t, &capture{}).NewForm()
	if err := f.Change("phone", "123"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestChange_EmptyDatePartIsAbsent(t *testing.T) {
	f := newTestService(t, &capture{}).NewForm()
	fill(t, f, map[string]string{PathBirthDay: "05"})
	fill(t, f, map[string]string{PathBirthDay: ""})
	if f.Draft().DateOfBirth.Day != nil {
		t.Fatalf("expected absent day, got %q", *f.Draft().DateOfBirth.Day)
	}
}

func TestChange_RequiredStringsNotTrimmed(t *testing.T) {
	sub := &capture{}
	f := newTestService(t, sub).NewForm()
	in := anaInput()
	in.Company = "  Acme  "
	f.Load(in)
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.got[0].Input.Company != "  Acme  " {
		t.Fatalf("expected company unchanged, got %q", sub.got[0].Input.Company)
	}
}

func TestService_Check(t *testing.T) {
	sub := &capture{}
	svc := newTestService(t, sub)

	if errs := svc.Check(anaInput()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	errs := svc.Check(Input{LastName: "Silva", Company: "Acme", Email: "not-an-email"})
	if len(errs) != 2 || errs[PathFirstName] == "" || errs[PathEmail] == "" {
		t.Fatalf("expected firstName and email errors, got %v", errs)
	}
	if len(sub.got) != 0 {
		t.Fatal("Check must not submit")
	}
}

func TestView(t *testing.T) {
	f := newTestService(t, &capture{}).NewForm()
	fill(t, f, map[string]string{PathEmail: "ana@acme.com", PathBirthYear: "1990"})
	v := f.View()

	if v.Title != "Registration" || v.SubmitLabel != "Register" || v.BirthLabel != "Date of Birth" {
		t.Fatalf("unexpected labels %+v", v)
	}
	labels := make([]string, len(v.Fields))
	for i, tf := range v.Fields {
		labels[i] = tf.Label
	}
	if diff := cmp.Diff([]string{"First Name", "Last Name", "Email", "Company"}, labels); diff != "" {
		t.Fatalf("field labels mismatch:\n%s", diff)
	}
	if v.Fields[2].Kind != KindEmail || v.Fields[2].Value != "ana@acme.com" {
		t.Fatalf("unexpected email field %+v", v.Fields[2])
	}
	if len(v.Birth) != 3 {
		t.Fatalf("expected 3 selectors, got %d", len(v.Birth))
	}
	if len(v.Birth[0].Options) != 12 || len(v.Birth[1].Options) != 31 || len(v.Birth[2].Options) != 200 {
		t.Fatalf("unexpected option counts %d/%d/%d",
			len(v.Birth[0].Options), len(v.Birth[1].Options), len(v.Birth[2].Options))
	}
	if v.Birth[2].Value != "1990" {
		t.Fatalf("expected selected year 1990, got %q", v.Birth[2].Value)
	}
}

func TestStateString(t *testing.T) {
	if StateEditing.String() != "editing" || StateSubmitAttempted.String() != "submit_attempted" {
		t.Fatal("unexpected state names")
	}
	if State(9).String() != "State(9)" {
		t.Fatalf("unexpected fallback name %q", State(9).String())
	}
}
