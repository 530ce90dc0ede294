package middleware

import (
	"strings"

	"github.com/labstack/echo/v5"
)

// PagePolicy is the Content-Security-Policy for the server-rendered form.
// Styles are inlined in the page; the form may only post back to this origin.
const PagePolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; " +
	"form-action 'self'; frame-ancestors 'none'; base-uri 'none'"

// Security returns Echo middleware that sets security headers on every
// response except those under skipPaths (e.g. the Swagger UI, which loads
// assets from a CDN).
func Security(skipPaths ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			for _, p := range skipPaths {
				if strings.HasPrefix(c.Request().URL.Path, p) {
					return next(c)
				}
			}

			h := c.Response().Header()
			h.Set("Cache-Control", "no-store")
			h.Set("Content-Security-Policy", PagePolicy)
			h.Set("Cross-Origin-Opener-Policy", "same-origin")
			h.Set("Cross-Origin-Resource-Policy", "same-origin")
			h.Set(
				"Permissions-Policy",
				"accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
			)
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")

			return next(c)
		}
	}
}

// Vary returns Echo middleware that adds Accept to the Vary header. The same
// URL answers with HTML, JSON or CBOR depending on Accept.
func Vary() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			c.Response().Header().Add("Vary", "Accept")
			return next(c)
		}
	}
}
