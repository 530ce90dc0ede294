package registration

import "github.com/janisto/echo-registration/internal/platform/validate"

// rule binds a field path to a validator rule list. The first failing rule
// in the list determines the message.
type rule struct {
	path  string
	rules string
}

// schema is evaluated top to bottom and every entry runs, so several fields
// can fail in one pass. Date parts are optional free strings and have no
// entry.
var schema = []rule{
	{path: PathFirstName, rules: "required"},
	{path: PathLastName, rules: "required"},
	{path: PathEmail, rules: "required,email"},
	{path: PathCompany, rules: "required"},
}

// Schema validates a whole Input against the rule table.
type Schema struct {
	v *validate.AppValidator
}

// NewSchema returns a Schema backed by v.
func NewSchema(v *validate.AppValidator) *Schema {
	return &Schema{v: v}
}

// Validate returns a *validate.ValidationError listing one failure per
// offending field, or nil.
func (s *Schema) Validate(in Input) error {
	var failures []validate.FieldError
	for _, r := range schema {
		value, _ := in.Value(r.path)
		if fe := s.v.Var(r.path, value, r.rules); fe != nil {
			failures = append(failures, *fe)
		}
	}
	return validate.Failed(failures)
}
