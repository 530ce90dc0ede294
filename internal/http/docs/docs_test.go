package docs

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"
)

func setupEcho(specPath string) *echo.Echo {
	e := echo.New()
	Register(e.Group("/v1"), specPath)
	return e
}

func TestRegister_SwaggerUI(t *testing.T) {
	e := setupEcho("testdata/openapi.json")

	req := httptest.NewRequest(http.MethodGet, "/v1/api-docs", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("expected text/html content type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "swagger-ui") {
		t.Fatal("expected swagger-ui content in response")
	}
	if !strings.Contains(body, "/v1/api-docs/openapi.json") {
		t.Fatal("expected swagger UI to reference /v1/api-docs/openapi.json")
	}
}

func TestRegister_OpenAPISpec(t *testing.T) {
	e := setupEcho("testdata/openapi.json")

	req := httptest.NewRequest(http.MethodGet, "/v1/api-docs/openapi.json", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("expected application/json content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "openapi") {
		t.Fatal("expected response to contain openapi spec content")
	}
}

func TestRegister_MissingSpec(t *testing.T) {
	e := setupEcho("testdata/missing.json")

	req := httptest.NewRequest(http.MethodGet, "/v1/api-docs/openapi.json", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
