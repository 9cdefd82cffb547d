// Package tracing installs the OpenTelemetry tracer provider that the HTTP
// middleware records spans on.
package tracing

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
)

// EndpointEnv is consulted when the configuration names no collector.
const EndpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"

// Config selects where spans are exported. An empty Endpoint disables export.
type Config struct {
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"serviceName"`
}

// WithEnv fills an empty endpoint from the environment.
func (c Config) WithEnv() Config {
	if c.Endpoint == "" {
		c.Endpoint = os.Getenv(EndpointEnv)
	}
	return c
}

// ShutdownFunc flushes pending spans and releases the exporter.
type ShutdownFunc func(context.Context) error

// Setup installs a global tracer provider exporting over OTLP/HTTP. Without an
// endpoint it leaves the global provider untouched and returns a no-op
// shutdown.
func Setup(ctx context.Context, logger *zap.Logger, cfg Config, version string) (ShutdownFunc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Endpoint == "" {
		logger.Info("tracing disabled, no OTLP endpoint configured",
			zap.String("op", "tracing.Setup"),
		)
		return func(context.Context) error { return nil }, nil
	}

	var opts []otlptracehttp.Option
	if strings.Contains(cfg.Endpoint, "://") {
		opts = append(opts, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	} else {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	tp, err := NewProvider(ctx, exporter, cfg.ServiceName, version)
	if err != nil {
		_ = exporter.Shutdown(ctx)
		return nil, err
	}
	otel.SetTracerProvider(tp)

	logger.Info(fmt.Sprintf("exporting traces to %s", cfg.Endpoint),
		zap.String("op", "tracing.Setup"),
	)
	return tp.Shutdown, nil
}

// NewProvider builds a batching tracer provider around exporter, tagged with
// the service name and version.
func NewProvider(ctx context.Context, exporter sdktrace.SpanExporter, serviceName, version string) (*sdktrace.TracerProvider, error) {
	if serviceName == "" {
		serviceName = "consortium-server"
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	), nil
}
