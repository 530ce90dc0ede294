package registrations

import (
	"github.com/janisto/echo-registration/internal/platform/timeutil"
	"github.com/janisto/echo-registration/internal/service/registration"
)

// Registration represents an accepted registration.
type Registration struct {
	ID          string                   `json:"id"          cbor:"id"          example:"3f1c2a9e-6b7d-4e2a-9c1f-0a8b7c6d5e4f"`
	FirstName   string                   `json:"firstName"   cbor:"firstName"   example:"Ana"`
	LastName    string                   `json:"lastName"    cbor:"lastName"    example:"Silva"`
	Company     string                   `json:"company"     cbor:"company"     example:"Acme"`
	Email       string                   `json:"email"       cbor:"email"       example:"ana@acme.com"`
	DateOfBirth registration.DateOfBirth `json:"dateOfBirth" cbor:"dateOfBirth"`
	ReceivedAt  timeutil.Time            `json:"receivedAt"  cbor:"receivedAt"  example:"2024-01-15T10:30:00.000Z"`
}

// ListData is the paginated registration listing.
type ListData struct {
	Items []Registration `json:"items" cbor:"items"`
	Total int            `json:"total" cbor:"total" example:"42"`
}

// ValidateResponse is the result of a dry-run validation.
type ValidateResponse struct {
	Valid  bool              `json:"valid"  cbor:"valid"  example:"false"`
	Errors map[string]string `json:"errors" cbor:"errors"`
}

func toHTTPRegistration(s registration.Submission) Registration {
	return Registration{
		ID:          s.ID,
		FirstName:   s.Input.FirstName,
		LastName:    s.Input.LastName,
		Company:     s.Input.Company,
		Email:       s.Input.Email,
		DateOfBirth: s.Input.DateOfBirth,
		ReceivedAt:  timeutil.NewTime(s.ReceivedAt),
	}
}
