// Package app wires configuration, logging, tracing, services, and the
// HTTP router into a runnable dashboard server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"salesboard/internal/config"
	apierrors "salesboard/internal/errors"
	"salesboard/internal/infrastructure"
	"salesboard/internal/metrics"
	custommw "salesboard/internal/middleware"
	"salesboard/internal/services"
	handlers "salesboard/internal/transport/http"
)

// Version is the application version reported by the health endpoint.
const Version = "v1.0.0"

// Application is the dependency container for the dashboard server.
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	SalesService  *services.SalesService
	HealthService *services.HealthService
	OTelProviders *infrastructure.OTelProviders
}

// NewApplication builds the application from configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewApplicationWithConfig(cfg)
}

// NewApplicationWithConfig builds the application around an existing
// configuration; tests use this to avoid touching the environment.
func NewApplicationWithConfig(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port))

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		SalesService:  services.NewSalesService(logger, otelProviders.Tracer),
		HealthService: services.NewHealthService(Version),
		OTelProviders: otelProviders,
	}
	app.Router = app.setupRouter()
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// setupRouter assembles the middleware chain and mounts all routes.
func (a *Application) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.Compress(5))

	if a.Config.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			Logger:         a.Logger,
		}))
	}
	if a.Config.Security.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		)
		r.Use(limiter.Handler)
	}

	errorHandler := apierrors.NewErrorHandler(a.Logger)
	salesHandler := handlers.NewSalesHandler(a.SalesService, a.Logger, errorHandler, a.Config.Upload.MaxBytes)
	healthHandler := handlers.NewHealthHandler(a.HealthService)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/sales", salesHandler.Routes())
		r.Get("/health", healthHandler.Health)
	})
	r.Handle("/metrics", metrics.Handler())

	return r
}

// Run starts the HTTP server and blocks until a shutdown signal arrives,
// then drains connections within the configured timeout.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		a.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := a.OTelProviders.Shutdown(ctx); err != nil {
		a.Logger.Warn("tracer shutdown failed", slog.String("error", err.Error()))
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.Warn("log file close failed", slog.String("error", err.Error()))
	}

	a.Logger.Info("server stopped")
	return nil
}
