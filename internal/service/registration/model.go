// Package registration implements the registration form: the draft a user
// fills in, the rule table it is validated against, and the collaborators
// that receive a validated payload.
package registration

import "time"

// Field paths. Nested fields use dotted paths.
const (
	PathFirstName  = "firstName"
	PathLastName   = "lastName"
	PathEmail      = "email"
	PathCompany    = "company"
	PathBirthMonth = "dateOfBirth.month"
	PathBirthDay   = "dateOfBirth.day"
	PathBirthYear  = "dateOfBirth.year"
)

// Paths lists every field path in render order.
var Paths = []string{
	PathFirstName,
	PathLastName,
	PathEmail,
	PathCompany,
	PathBirthMonth,
	PathBirthDay,
	PathBirthYear,
}

// Input is the registration payload.
type Input struct {
	FirstName   string      `json:"firstName"   cbor:"firstName"   example:"Ana"`
	LastName    string      `json:"lastName"    cbor:"lastName"    example:"Silva"`
	Company     string      `json:"company"     cbor:"company"     example:"Acme"`
	Email       string      `json:"email"       cbor:"email"       example:"ana@acme.com"`
	DateOfBirth DateOfBirth `json:"dateOfBirth" cbor:"dateOfBirth"`
}

// DateOfBirth holds the three independently selected date parts. A nil part
// was not selected. No check ties the parts together.
type DateOfBirth struct {
	Month *string `json:"month,omitempty" cbor:"month,omitempty" example:"Março"`
	Day   *string `json:"day,omitempty"   cbor:"day,omitempty"   example:"05"`
	Year  *string `json:"year,omitempty"  cbor:"year,omitempty"  example:"1990"`
}

// Submission is a validated payload as handed to the submit collaborators.
type Submission struct {
	ID         string
	ReceivedAt time.Time
	Input      Input
}

// Value returns the current value at path and whether the path is known.
// Absent date parts read as "".
func (in *Input) Value(path string) (string, bool) {
	switch path {
	case PathFirstName:
		return in.FirstName, true
	case PathLastName:
		return in.LastName, true
	case PathEmail:
		return in.Email, true
	case PathCompany:
		return in.Company, true
	case PathBirthMonth:
		return deref(in.DateOfBirth.Month), true
	case PathBirthDay:
		return deref(in.DateOfBirth.Day), true
	case PathBirthYear:
		return deref(in.DateOfBirth.Year), true
	}
	return "", false
}

// set stores value at path. An empty date part becomes absent.
func (in *Input) set(path, value string) bool {
	switch path {
	case PathFirstName:
		in.FirstName = value
	case PathLastName:
		in.LastName = value
	case PathEmail:
		in.Email = value
	case PathCompany:
		in.Company = value
	case PathBirthMonth:
		in.DateOfBirth.Month = optional(value)
	case PathBirthDay:
		in.DateOfBirth.Day = optional(value)
	case PathBirthYear:
		in.DateOfBirth.Year = optional(value)
	default:
		return false
	}
	return true
}

// clone returns a copy that shares no pointers with in.
func (in Input) clone() Input {
	in.DateOfBirth = DateOfBirth{
		Month: optional(deref(in.DateOfBirth.Month)),
		Day:   optional(deref(in.DateOfBirth.Day)),
		Year:  optional(deref(in.DateOfBirth.Year)),
	}
	return in
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
