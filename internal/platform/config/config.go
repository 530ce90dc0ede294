// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	applog "github.com/janisto/echo-registration/internal/platform/logging"
	"github.com/janisto/echo-registration/internal/platform/validate"
)

// Config holds the service settings.
type Config struct {
	Port             string   `env:"PORT"                 validate:"required,numeric"`
	Environment      string   `env:"APP_ENVIRONMENT"`
	LogLevel         string   `env:"LOG_LEVEL"            validate:"required"`
	Locale           string   `env:"FORM_LOCALE"          validate:"required"`
	RecorderCapacity int      `env:"RECORDER_CAPACITY"    validate:"min=0,max=100000"`
	APIDocsPath      string   `env:"API_DOCS_PATH"        validate:"required"`
	ProjectID        string   `env:"GOOGLE_CLOUD_PROJECT"`
	CORSOrigins      []string `env:"CORS_ALLOWED_ORIGINS"`
}

var defaults = map[string]any{
	"PORT":                 "8080",
	"LOG_LEVEL":            "info",
	"FORM_LOCALE":          "pt-BR",
	"RECORDER_CAPACITY":    "1000",
	"API_DOCS_PATH":        "api-docs/openapi.json",
	"APP_ENVIRONMENT":      "",
	"GOOGLE_CLOUD_PROJECT": "",
	"CORS_ALLOWED_ORIGINS": "",
}

// Load reads the environment and validates the result. Variables from a
// .env file are visible once github.com/joho/godotenv/autoload has run.
func Load(v *validate.AppValidator) (Config, error) {
	vp := viper.New()
	vp.AutomaticEnv()
	for k, d := range defaults {
		vp.SetDefault(k, d)
	}

	capacity, err := strconv.Atoi(strings.TrimSpace(vp.GetString("RECORDER_CAPACITY")))
	if err != nil {
		return Config{}, fmt.Errorf("config: RECORDER_CAPACITY: %w", err)
	}

	cfg := Config{
		Port:             strings.TrimSpace(vp.GetString("PORT")),
		Environment:      vp.GetString("APP_ENVIRONMENT"),
		LogLevel:         vp.GetString("LOG_LEVEL"),
		Locale:           vp.GetString("FORM_LOCALE"),
		RecorderCapacity: capacity,
		APIDocsPath:      vp.GetString("API_DOCS_PATH"),
		ProjectID:        vp.GetString("GOOGLE_CLOUD_PROJECT"),
		CORSOrigins:      splitList(vp.GetString("CORS_ALLOWED_ORIGINS")),
	}
	if err := v.Validate(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// Level returns the parsed log level.
func (c Config) Level() (slog.Level, error) {
	return applog.ParseLevel(c.LogLevel)
}

// Development reports whether the service runs in the development environment.
func (c Config) Development() bool {
	return c.Environment == "development"
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
