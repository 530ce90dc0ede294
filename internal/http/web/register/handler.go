// Package register serves the registration form as a server-rendered page.
package register

import (
	"bytes"
	_ "embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v5"

	applog "github.com/janisto/echo-registration/internal/platform/logging"
	"github.com/janisto/echo-registration/internal/platform/respond"
	"github.com/janisto/echo-registration/internal/platform/validate"
	"github.com/janisto/echo-registration/internal/service/registration"
)

// SuccessNotice is shown above an empty form after a successful submit.
const SuccessNotice = "Thank you, your registration was received."

//go:embed form.html
var formHTML string

var formPage = template.Must(template.New("form").Parse(formHTML))

type page struct {
	View   registration.View
	Notice string
}

// Register wires the form routes into the provided group.
func Register(g *echo.Group, svc *registration.Service) {
	g.GET("/", func(c *echo.Context) error {
		return c.Redirect(http.StatusFound, "/register")
	})
	g.GET("/register", handleShow(svc))
	g.POST("/register", handleSubmit(svc))
}

func handleShow(svc *registration.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		return render(c, http.StatusOK, page{View: svc.NewForm().View()})
	}
}

// handleSubmit applies each posted field to a fresh form and submits it.
// Unknown form keys are ignored. A validation failure re-renders the form
// with the posted values and one message per offending field.
func handleSubmit(svc *registration.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		req := c.Request()
		if err := req.ParseForm(); err != nil {
			return respond.Error400("invalid form body")
		}

		form := svc.NewForm()
		for _, path := range registration.Paths {
			values, ok := req.PostForm[path]
			if !ok || len(values) == 0 {
				continue
			}
			if err := form.Change(path, values[0]); err != nil {
				return err
			}
		}

		ctx := req.Context()
		_, err := form.Submit(ctx)
		var ve *validate.ValidationError
		switch {
		case err == nil:
			return render(c, http.StatusOK, page{View: svc.NewForm().View(), Notice: SuccessNotice})
		case errors.As(err, &ve):
			return render(c, http.StatusUnprocessableEntity, page{View: form.View()})
		default:
			applog.LogError(ctx, "registration submit failed", err)
			return respond.Error500("registration could not be submitted")
		}
	}
}

func render(c *echo.Context, status int, p page) error {
	var buf bytes.Buffer
	if err := formPage.Execute(&buf, p); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}
