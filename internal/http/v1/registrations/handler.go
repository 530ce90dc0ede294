package registrations

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v5"

	applog "github.com/janisto/echo-registration/internal/platform/logging"
	"github.com/janisto/echo-registration/internal/platform/pagination"
	"github.com/janisto/echo-registration/internal/platform/respond"
	"github.com/janisto/echo-registration/internal/platform/validate"
	"github.com/janisto/echo-registration/internal/service/registration"
)

const cursorType = "registration"

// Store reads recorded registrations.
type Store interface {
	Get(ctx context.Context, id string) (registration.Submission, error)
	List(ctx context.Context) []registration.Submission
}

// Register wires registration routes into the provided group. The read
// routes are only mounted when store is non-nil.
func Register(g *echo.Group, svc *registration.Service, store Store) {
	g.POST("/registrations", handleCreate(svc))
	g.POST("/registrations/validate", handleValidate(svc))
	g.GET("/registrations/options", handleOptions(svc))
	if store != nil {
		g.GET("/registrations", handleList(store))
		g.GET("/registrations/:id", handleGet(store))
	}
}

// handleCreate godoc
//
//	@Summary		Submit registration
//	@Description	Validates the registration and hands it to the submit collaborators
//	@Tags			registrations
//	@Accept			json
//	@Produce		json,application/cbor
//	@Param			body	body		registration.Input	true	"Registration form"
//	@Success		201		{object}	Registration
//	@Failure		400		{object}	respond.ProblemDetails
//	@Failure		422		{object}	respond.ProblemDetails
//	@Failure		500		{object}	respond.ProblemDetails
//	@Header			201		{string}	Location	"URI of the recorded registration"
//	@Router			/registrations [post]
func handleCreate(svc *registration.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		var input registration.Input
		if err := c.Bind(&input); err != nil {
			return err
		}

		ctx := c.Request().Context()
		sub, err := svc.Submit(ctx, input)
		if err != nil {
			return mapServiceError(ctx, err)
		}

		c.Response().Header().Set("Location", "/v1/registrations/"+sub.ID)
		return respond.Negotiate(c, http.StatusCreated, toHTTPRegistration(sub))
	}
}

// handleValidate godoc
//
//	@Summary		Validate registration
//	@Description	Runs the validation rules without submitting
//	@Tags			registrations
//	@Accept			json
//	@Produce		json,application/cbor
//	@Param			body	body		registration.Input	true	"Registration form"
//	@Success		200		{object}	ValidateResponse
//	@Failure		400		{object}	respond.ProblemDetails
//	@Router			/registrations/validate [post]
func handleValidate(svc *registration.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		var input registration.Input
		if err := c.Bind(&input); err != nil {
			return err
		}

		errs := svc.Check(input)
		return respond.Negotiate(c, http.StatusOK, ValidateResponse{
			Valid:  len(errs) == 0,
			Errors: errs,
		})
	}
}

// handleOptions godoc
//
//	@Summary		Date of birth options
//	@Description	Returns the month, day and year values offered by the form
//	@Tags			registrations
//	@Produce		json,application/cbor
//	@Success		200	{object}	registration.Options
//	@Router			/registrations/options [get]
func handleOptions(svc *registration.Service) echo.HandlerFunc {
	return func(c *echo.Context) error {
		return respond.Negotiate(c, http.StatusOK, svc.Options())
	}
}

// handleList godoc
//
//	@Summary		List registrations
//	@Description	Returns a paginated list of recorded registrations, oldest first
//	@Tags			registrations
//	@Produce		json,application/cbor
//	@Param			cursor	query		string	false	"Pagination cursor"
//	@Param			limit	query		int		false	"Items per page"	minimum(1)	maximum(100)
//	@Success		200		{object}	ListData
//	@Failure		400		{object}	respond.ProblemDetails
//	@Failure		422		{object}	respond.ProblemDetails
//	@Header			200		{string}	Link	"RFC 8288 pagination links"
//	@Router			/registrations [get]
func handleList(store Store) echo.HandlerFunc {
	return func(c *echo.Context) error {
		var params pagination.Params
		if err := c.Bind(&params); err != nil {
			return err
		}
		if err := c.Validate(&params); err != nil {
			return err
		}

		cursor, err := pagination.DecodeCursor(params.Cursor)
		if err != nil {
			return respond.Error400("invalid cursor format")
		}
		if cursor.Type != "" && cursor.Type != cursorType {
			return respond.Error400("cursor type mismatch")
		}

		entries := store.List(c.Request().Context())
		keyOf := func(s registration.Submission) string { return s.ID }
		if cursor.Value != "" && !pagination.Contains(entries, cursor.Value, keyOf) {
			return respond.Error400("cursor references unknown registration")
		}

		query := url.Values{}
		if params.Limit != 0 {
			query.Set("limit", strconv.Itoa(params.Limit))
		}

		page := pagination.Paginate(
			entries,
			cursor,
			params.EffectiveLimit(),
			cursorType,
			keyOf,
			"/v1/registrations",
			query,
		)

		if page.LinkHeader != "" {
			c.Response().Header().Set("Link", page.LinkHeader)
		}

		items := make([]Registration, len(page.Items))
		for i, s := range page.Items {
			items[i] = toHTTPRegistration(s)
		}
		return respond.Negotiate(c, http.StatusOK, ListData{
			Items: items,
			Total: page.Total,
		})
	}
}

// handleGet godoc
//
//	@Summary		Get registration
//	@Description	Returns one recorded registration
//	@Tags			registrations
//	@Produce		json,application/cbor
//	@Param			id	path		string	true	"Registration ID"
//	@Success		200	{object}	Registration
//	@Failure		404	{object}	respond.ProblemDetails
//	@Router			/registrations/{id} [get]
func handleGet(store Store) echo.HandlerFunc {
	return func(c *echo.Context) error {
		ctx := c.Request().Context()
		sub, err := store.Get(ctx, c.Param("id"))
		if err != nil {
			return mapServiceError(ctx, err)
		}
		return respond.Negotiate(c, http.StatusOK, toHTTPRegistration(sub))
	}
}

func mapServiceError(ctx context.Context, err error) error {
	var ve *validate.ValidationError
	switch {
	case errors.As(err, &ve):
		return respond.FromValidation(ve)
	case errors.Is(err, registration.ErrNotFound):
		return respond.Error404("registration not found")
	default:
		applog.LogError(ctx, "unexpected service error", err)
		return respond.Error500("internal error")
	}
}
