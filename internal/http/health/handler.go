package health

import (
	"net/http"

	"github.com/labstack/echo/v5"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status  string `json:"status"  example:"healthy"`
	Version string `json:"version" example:"dev"`
}

// Handler returns the health check endpoint reporting version.
func Handler(version string) echo.HandlerFunc {
	return func(c *echo.Context) error {
		return c.JSON(http.StatusOK, Response{Status: "healthy", Version: version})
	}
}
