package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/janisto/echo-registration/internal/http/docs"
	"github.com/janisto/echo-registration/internal/http/health"
	"github.com/janisto/echo-registration/internal/http/v1/registrations"
	"github.com/janisto/echo-registration/internal/http/v1/routes"
	"github.com/janisto/echo-registration/internal/http/web/register"
	"github.com/janisto/echo-registration/internal/platform/config"
	applog "github.com/janisto/echo-registration/internal/platform/logging"
	appmiddleware "github.com/janisto/echo-registration/internal/platform/middleware"
	"github.com/janisto/echo-registration/internal/platform/respond"
	"github.com/janisto/echo-registration/internal/platform/validate"
	"github.com/janisto/echo-registration/internal/service/registration"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

// main godoc
//
//	@title			Registration API
//	@version		1.0
//	@description	Registration form submissions over JSON and CBOR.
//	@BasePath		/v1
func main() {
	ctx := context.Background()

	v := validate.New()

	cfg, err := config.Load(v)
	if err != nil {
		applog.LogFatal(ctx, "invalid configuration", err)
	}
	level, _ := cfg.Level()
	applog.SetLevel(level)
	applog.SetProjectID(cfg.ProjectID)

	options, err := registration.NewOptions(cfg.Locale)
	if err != nil {
		applog.LogFatal(ctx, "invalid form locale", err)
	}

	submitters := []registration.Submitter{registration.LogSubmitter{}}
	var store registrations.Store
	if cfg.RecorderCapacity > 0 {
		recorder := registration.NewRecorder(cfg.RecorderCapacity)
		submitters = append(submitters, recorder)
		store = recorder
	} else if cfg.Development() {
		applog.LogWarn(ctx, "registration recorder disabled")
	}

	svc := registration.NewService(registration.NewSchema(v), registration.Multi(submitters...), options)

	e := echo.New()
	e.Validator = v
	e.HTTPErrorHandler = respond.NewHTTPErrorHandler()
	e.IPExtractor = echo.ExtractIPFromRealIPHeader()
	e.Logger = applog.Logger()

	e.Use(
		appmiddleware.Security("/v1/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.CORSOrigins...),
		appmiddleware.RequestID(),
		middleware.BodyLimit(1<<20),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	e.GET("/health", health.Handler(Version))
	register.Register(e.Group(""), svc)

	v1 := e.Group("/v1")
	routes.Register(v1, svc, store)
	docs.Register(v1, cfg.APIDocsPath)

	applog.LogInfo(ctx, "server starting",
		slog.String("addr", ":"+cfg.Port),
		slog.String("version", Version),
		slog.String("locale", options.Locale),
		slog.Int("recorderCapacity", cfg.RecorderCapacity))

	sc := echo.StartConfig{
		Address:         ":" + cfg.Port,
		GracefulTimeout: 10 * time.Second,
		BeforeServeFunc: func(s *http.Server) error {
			s.ReadTimeout = 5 * time.Second
			s.ReadHeaderTimeout = 2 * time.Second
			s.WriteTimeout = 10 * time.Second
			s.IdleTimeout = 60 * time.Second
			s.MaxHeaderBytes = 64 << 10
			return nil
		},
	}

	sigCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := sc.Start(sigCtx, e); err != nil {
		log.Fatal(err)
	}

	applog.LogInfo(ctx, "server exited")
}
