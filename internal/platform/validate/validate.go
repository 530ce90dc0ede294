package validate

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single failed rule. Field is the dotted path of the
// offending leaf, e.g. "dateOfBirth.month".
type FieldError struct {
	Field   string
	Message string
	Value   string
}

// ValidationError is returned when input validation fails.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StatusCode reports 422 Unprocessable Entity.
func (e *ValidationError) StatusCode() int {
	return http.StatusUnprocessableEntity
}

// FieldMap returns the failures keyed by field path. When a path failed more
// than once the first message wins.
func (e *ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := m[f.Field]; !ok {
			m[f.Field] = f.Message
		}
	}
	return m
}

// Failed builds a ValidationError from already evaluated field failures.
// It returns nil when fields is empty.
func Failed(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Message: "validation failed", Fields: fields}
}

// AppValidator wraps go-playground/validator for Echo's Validator interface.
type AppValidator struct {
	v *validator.Validate
}

// New creates a new AppValidator.
func New() *AppValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param", "form", "env"} {
			if name := tagName(fld, tag); name != "" {
				return name
			}
		}
		return fld.Name
	})

	return &AppValidator{v: v}
}

// Validate validates the given struct and returns a *ValidationError on failure.
func (av *AppValidator) Validate(i any) error {
	err := av.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]FieldError, len(ve))
		for idx, fe := range ve {
			path := fieldPath(fe)
			fields[idx] = FieldError{
				Field:   path,
				Message: buildMessage(path, fe),
				Value:   fmt.Sprintf("%v", fe.Value()),
			}
		}
		return Failed(fields)
	}

	return &ValidationError{Message: err.Error()}
}

// Var checks a single value against a comma separated rule list. Evaluation
// stops at the first failing rule, whose message is reported under path.
// It returns nil when the value passes.
func (av *AppValidator) Var(path string, value any, rules string) *FieldError {
	err := av.v.Var(value, rules)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &FieldError{
			Field:   path,
			Message: buildMessage(path, ve[0]),
			Value:   fmt.Sprintf("%v", value),
		}
	}

	return &FieldError{Field: path, Message: path + " is invalid", Value: fmt.Sprintf("%v", value)}
}

func tagName(fld reflect.StructField, tag string) string {
	name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
	if name == "" || name == "-" {
		return ""
	}
	return name
}

// fieldPath drops the root struct name from the namespace so nested fields
// read as "dateOfBirth.month".
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok && rest != "" {
		return rest
	}
	return fe.Field()
}

func buildMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "numeric":
		return field + " must be numeric"
	case "len":
		return field + " must be exactly " + fe.Param() + " characters"
	case "uuid4":
		return field + " must be a valid UUID"
	default:
		return field + " failed on " + fe.Tag() + " validation"
	}
}
