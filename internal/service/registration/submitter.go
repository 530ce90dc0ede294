package registration

import (
	"context"
	"log/slog"

	applog "github.com/janisto/echo-registration/internal/platform/logging"
)

// Submitter receives submissions whose input passed validation.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s Submission) error

func (f SubmitterFunc) Submit(ctx context.Context, s Submission) error {
	return f(ctx, s)
}

// Multi fans a submission out to each submitter in order and stops at the
// first error.
func Multi(submitters ...Submitter) Submitter {
	return SubmitterFunc(func(ctx context.Context, s Submission) error {
		for _, sub := range submitters {
			if err := sub.Submit(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
}

// LogSubmitter writes each submission to the request-scoped logger and
// records an audit event.
type LogSubmitter struct{}

func (LogSubmitter) Submit(ctx context.Context, s Submission) error {
	applog.LogInfo(ctx, "registration submitted",
		slog.String("registrationId", s.ID),
		slog.Any("payload", s.Input),
	)
	ev := applog.AuditEvent{
		Action:       "registration.submit",
		Subject:      s.Input.Email,
		ResourceType: "registration",
		ResourceID:   s.ID,
		Result:       "success",
	}
	if id := applog.TraceIDFromContext(ctx); id != "" {
		ev.Details = map[string]any{"correlationId": id}
	}
	applog.LogAuditEvent(ctx, ev)
	return nil
}

var _ Submitter = LogSubmitter{}
