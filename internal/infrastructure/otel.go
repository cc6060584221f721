package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// ServiceName identifies the service in trace resources.
	ServiceName = "salesboard"
	// ServiceVersion is stamped on every span resource.
	ServiceVersion = "v1.0.0"
)

// OTelConfig holds tracing configuration.
type OTelConfig struct {
	Enabled     bool
	Environment string
	// SpanWriter receives exported spans; defaults to os.Stdout.
	SpanWriter io.Writer
}

// DefaultOTelConfig returns the default tracing configuration. Tracing is
// off unless SALESBOARD_TRACING=true; the synchronous pipeline produces one
// span per run, so the stdout exporter is enough.
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	return &OTelConfig{
		Enabled:     os.Getenv("SALESBOARD_TRACING") == "true",
		Environment: env,
	}
}

// OTelProviders holds the initialized tracing provider and tracer.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	Tracer         trace.Tracer
}

// InitializeOTel sets up the tracer provider with a stdout span exporter.
// When tracing is disabled a no-op tracer is returned so callers never
// branch on nil.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	if !cfg.Enabled {
		return &OTelProviders{Tracer: otel.Tracer(ServiceName)}, nil
	}

	writer := cfg.SpanWriter
	if writer == nil {
		writer = os.Stdout
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(writer),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("tracing initialized",
		slog.String("service", ServiceName),
		slog.String("environment", cfg.Environment))

	return &OTelProviders{
		TracerProvider: tp,
		Tracer:         tp.Tracer(ServiceName),
	}, nil
}

// Shutdown flushes and stops the tracer provider.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	if p == nil || p.TracerProvider == nil {
		return nil
	}
	return p.TracerProvider.Shutdown(ctx)
}
