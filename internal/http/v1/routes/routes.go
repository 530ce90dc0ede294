package routes

import (
	"github.com/labstack/echo/v5"

	"github.com/janisto/echo-registration/internal/http/v1/registrations"
	"github.com/janisto/echo-registration/internal/service/registration"
)

// Register wires all v1 routes into the provided group. A nil store leaves
// the registration read routes unmounted.
func Register(v1 *echo.Group, svc *registration.Service, store registrations.Store) {
	registrations.Register(v1, svc, store)
}
