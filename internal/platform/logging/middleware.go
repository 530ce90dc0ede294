package logging

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
)

// RequestIDKey is the echo context key holding the request ID.
const RequestIDKey = "request_id"

// RequestLogger returns Echo middleware that stores a request-scoped logger
// carrying the request ID and trace correlation fields in the request context.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			header := c.Request().Header.Get(traceparentHeader)
			project := currentProjectID()
			reqID, _ := c.Get(RequestIDKey).(string)

			attrs := traceAttrs(header, project)
			if reqID != "" {
				attrs = append(attrs, slog.String("requestId", reqID))
			}
			logger := Logger()
			if len(attrs) > 0 {
				args := make([]any, len(attrs))
				for i, a := range attrs {
					args[i] = a
				}
				logger = logger.With(args...)
			}

			ctx := c.Request().Context()
			ctx = contextWithTraceID(ctx, correlationID(header, project, reqID))
			ctx = WithLogger(ctx, logger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// AccessLogger returns Echo middleware that logs a summary of each request
// once it completes. Server errors log at ERROR, client errors at WARNING.
func AccessLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			start := time.Now()

			err := next(c)

			status, size := 0, 0
			committed := false
			if resp, unwrapErr := echo.UnwrapResponse(c.Response()); unwrapErr == nil {
				status = resp.Status
				size = int(resp.Size)
				committed = resp.Committed
			}
			if err != nil && !committed {
				status = statusFromError(err)
			}

			lvl := slog.LevelInfo
			switch {
			case status >= 500:
				lvl = slog.LevelError
			case status >= 400:
				lvl = slog.LevelWarn
			}

			req := c.Request()
			LoggerFromContext(req.Context()).LogAttrs(req.Context(), lvl, "request completed",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", size),
				slog.String("userAgent", req.UserAgent()),
				slog.Duration("duration", time.Since(start)),
			)

			return err
		}
	}
}

// statusFromError predicts the status the error handler will write for err.
func statusFromError(err error) int {
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}
