package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	applog "github.com/janisto/echo-registration/internal/platform/logging"
)

// HeaderXRequestID is the canonical request ID header name.
const HeaderXRequestID = "X-Request-ID"

const maxRequestIDLength = 128

// validRequestID accepts 1..128 printable ASCII characters.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := range len(id) {
		if id[i] < 0x20 || id[i] > 0x7E {
			return false
		}
	}
	return true
}

// RequestID returns Echo middleware that reuses a valid incoming X-Request-ID
// or generates a UUIDv4, stores it in the echo context and echoes it back.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			reqID := c.Request().Header.Get(HeaderXRequestID)
			if !validRequestID(reqID) {
				reqID = uuid.NewString()
			}

			c.Set(applog.RequestIDKey, reqID)
			c.Response().Header().Set(HeaderXRequestID, reqID)

			return next(c)
		}
	}
}
