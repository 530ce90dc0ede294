package docs

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v5"
)

//go:embed swagger-ui.html
var swaggerUI []byte

// Register wires documentation routes into g.
// - GET <group>/api-docs/openapi.json serves the generated OpenAPI spec.
// - GET <group>/api-docs serves an embedded Swagger UI page.
func Register(g *echo.Group, specPath string) {
	g.GET("/api-docs/openapi.json", func(c *echo.Context) error {
		return c.File(specPath)
	})

	g.GET("/api-docs", func(c *echo.Context) error {
		return c.HTMLBlob(http.StatusOK, swaggerUI)
	})
}
