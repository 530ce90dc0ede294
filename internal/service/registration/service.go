package registration

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/janisto/echo-registration/internal/platform/validate"
)

// Service creates forms that share a schema, a submit collaborator and the
// selector options.
type Service struct {
	schema  *Schema
	submit  Submitter
	options Options
	now     func() time.Time
	newID   func() string
}

// NewService returns a Service. A nil submitter discards submissions.
func NewService(schema *Schema, submit Submitter, options Options) *Service {
	if submit == nil {
		submit = SubmitterFunc(func(context.Context, Submission) error { return nil })
	}
	return &Service{
		schema:  schema,
		submit:  submit,
		options: options,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// NewForm starts an empty form session.
func (s *Service) NewForm() *Form {
	return &Form{
		schema:  s.schema,
		submit:  s.submit,
		options: s.options,
		now:     s.now,
		newID:   s.newID,
	}
}

// Submit runs a one-shot form session for a complete payload.
func (s *Service) Submit(ctx context.Context, in Input) (Submission, error) {
	f := s.NewForm()
	f.Load(in)
	return f.Submit(ctx)
}

// Check validates in without submitting it and returns the error map,
// empty when in is valid.
func (s *Service) Check(in Input) map[string]string {
	f := s.NewForm()
	f.Load(in)
	if err := s.schema.Validate(f.draft); err != nil {
		return fieldMap(err)
	}
	return map[string]string{}
}

// Options returns the selector options.
func (s *Service) Options() Options {
	return s.options
}

func fieldMap(err error) map[string]string {
	var ve *validate.ValidationError
	if errors.As(err, &ve) {
		return ve.FieldMap()
	}
	return map[string]string{}
}
