package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/fxamacker/cbor/v2"
	"github.com/labstack/echo/v5"

	"github.com/janisto/echo-registration/internal/platform/validate"
)

var problemPage = template.Must(template.New("problem").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Status}} {{.Title}}</h1>
{{if .Detail}}<p>{{.Detail}}</p>{{end}}
</body>
</html>
`))

// writeProblem writes a Problem Details response honoring content negotiation:
// application/problem+json by default, application/problem+cbor when CBOR is
// preferred and a small HTML page when the client is a browser.
func writeProblem(w http.ResponseWriter, r *http.Request, problem ProblemDetails) {
	ensureVary(w.Header(), "Origin", "Accept")

	switch selectFormat(r.Header.Get("Accept"), formatJSON, formatCBOR, formatHTML) {
	case formatCBOR:
		w.Header().Set("Content-Type", "application/problem+cbor")
		w.WriteHeader(problem.Status)
		_ = cbor.NewEncoder(w).Encode(problem)
	case formatHTML:
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		w.WriteHeader(problem.Status)
		_ = problemPage.Execute(w, problem)
	default:
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(problem.Status)
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(problem)
	}
}

// Recoverer returns Echo middleware that recovers from panics with Problem Details.
// Re-panics on http.ErrAbortHandler to preserve net/http abort semantics.
func Recoverer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			defer func() {
				if rec := recover(); rec != nil {
					if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
						panic(rec)
					}

					slog.ErrorContext(c.Request().Context(), "panic recovered",
						slog.Any("error", rec),
						slog.String("stack", string(debug.Stack())),
					)

					resp, unwrapErr := echo.UnwrapResponse(c.Response())
					if unwrapErr == nil && resp.Committed {
						return
					}

					problem := *Error500("internal server error")
					problem.Instance = c.Request().URL.Path
					writeProblem(c.Response(), c.Request(), problem)
				}
			}()
			return next(c)
		}
	}
}

// FromValidation converts a validation failure into a 422 problem whose
// errors carry the dotted path of each offending field.
func FromValidation(ve *validate.ValidationError) *ProblemDetails {
	fields := make([]ErrorDetail, len(ve.Fields))
	for i, f := range ve.Fields {
		fields[i] = ErrorDetail{
			Message:  f.Message,
			Location: f.Field,
			Value:    f.Value,
		}
	}
	return Error422(ve.Message, fields...)
}

// NewHTTPErrorHandler returns an Echo HTTPErrorHandler that produces RFC 9457 Problem Details.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(c *echo.Context, err error) {
		resp, unwrapErr := echo.UnwrapResponse(c.Response())
		if unwrapErr == nil && resp.Committed {
			return
		}

		var problem ProblemDetails

		var pd *ProblemDetails
		var he *echo.HTTPError
		var ve *validate.ValidationError

		switch {
		case errors.As(err, &pd):
			problem = *pd

		case errors.As(err, &ve):
			problem = *FromValidation(ve)

		case errors.Is(err, echo.ErrNotFound):
			problem = *Error404("resource not found")

		case errors.Is(err, echo.ErrMethodNotAllowed):
			problem = *NewError(http.StatusMethodNotAllowed,
				fmt.Sprintf("method %s not allowed", c.Request().Method))

		case errors.As(err, &he):
			problem = *NewError(he.Code, he.Message)

		default:
			slog.ErrorContext(c.Request().Context(), "unhandled error", slog.Any("error", err))
			problem = *Error500("internal server error")
		}

		if problem.Instance == "" {
			problem.Instance = c.Request().URL.Path
		}
		writeProblem(c.Response(), c.Request(), problem)
	}
}
