package registration

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"
)

// ErrUnknownField is returned when a change names a path the form does not have.
var ErrUnknownField = errors.New("registration: unknown field")

// State is the observable state of a Form.
type State int

const (
	// StateEditing covers a pristine form and one edited since the last
	// submit attempt. Errors from an earlier attempt are stale.
	StateEditing State = iota
	// StateSubmitAttempted means the errors are those of the latest submit.
	StateSubmitAttempted
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitAttempted:
		return "submit_attempted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Form is one registration form session: a draft, the errors of the latest
// validation pass and the collaborator that receives valid submissions.
// A Form is owned by a single caller and is not safe for concurrent use.
type Form struct {
	schema  *Schema
	submit  Submitter
	options Options
	now     func() time.Time
	newID   func() string

	draft  Input
	errors map[string]string
	state  State
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() Input {
	return f.draft.clone()
}

// State returns the current state.
func (f *Form) State() State {
	return f.state
}

// Errors returns the path to message map of the latest validation pass.
// A path without an entry is valid.
func (f *Form) Errors() map[string]string {
	return maps.Clone(f.errors)
}

// Change sets the draft value at path. It does not validate.
func (f *Form) Change(path, value string) error {
	if !f.draft.set(path, value) {
		return fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	f.state = StateEditing
	return nil
}

// Load replaces the whole draft, as if every field had been changed.
func (f *Form) Load(in Input) {
	f.draft = in.clone()
	f.state = StateEditing
}

// Submit validates the whole draft. On success the collaborator receives the
// draft unchanged and the returned Submission describes what it received.
// On failure the collaborator is not called and the error is a
// *validate.ValidationError with one entry per offending field.
func (f *Form) Submit(ctx context.Context) (Submission, error) {
	f.state = StateSubmitAttempted

	if err := f.schema.Validate(f.draft); err != nil {
		f.errors = fieldMap(err)
		return Submission{}, err
	}
	f.errors = nil

	s := Submission{
		ID:         f.newID(),
		ReceivedAt: f.now().UTC(),
		Input:      f.draft.clone(),
	}
	if err := f.submit.Submit(ctx, s); err != nil {
		return Submission{}, fmt.Errorf("submit registration: %w", err)
	}
	return s, nil
}
