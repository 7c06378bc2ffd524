// Package tracing builds the OpenTelemetry tracer provider used by the HTTP
// layer. When tracing is disabled a no-op provider is returned, so callers
// never need to check whether export is on.
package tracing

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/MKhiriev/fornecedor-api/internal/config"
	"github.com/MKhiriev/fornecedor-api/internal/logger"
)

// InstrumentationName is the name of the tracer handed out by [Provider.Tracer].
const InstrumentationName = "github.com/MKhiriev/fornecedor-api"

var ErrCreatingExporter = errors.New("error creating trace exporter")

// Provider owns a tracer provider and knows how to flush it.
type Provider struct {
	tracerProvider trace.TracerProvider
	shutdown       func(context.Context) error
}

// NewProvider builds a provider from cfg. With tracing enabled, spans are
// batched and exported over OTLP/HTTP to cfg.Endpoint and the provider is
// registered globally together with the W3C trace context propagator.
func NewProvider(ctx context.Context, cfg config.Tracing, version string, log *logger.Logger) (*Provider, error) {
	if !cfg.Enabled {
		log.Debug().Str("func", "tracing.NewProvider").Msg("tracing disabled")
		return &Provider{
			tracerProvider: noop.NewTracerProvider(),
			shutdown:       func(context.Context) error { return nil },
		}, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "tracing.NewProvider").Msg("error creating otlp exporter")
		return nil, fmt.Errorf("%w: %w", ErrCreatingExporter, err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", version),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	log.Info().
		Str("endpoint", cfg.Endpoint).
		Str("service", cfg.ServiceName).
		Msg("exporting traces over otlp/http")

	return &Provider{tracerProvider: tp, shutdown: tp.Shutdown}, nil
}

// NewProviderFrom wraps an existing SDK provider, e.g. one backed by a span
// recorder in tests.
func NewProviderFrom(tp *sdktrace.TracerProvider) *Provider {
	return &Provider{tracerProvider: tp, shutdown: tp.Shutdown}
}

// Tracer returns the application tracer.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracerProvider.Tracer(InstrumentationName)
}

// Shutdown flushes pending spans and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.shutdown(ctx)
}

// RecordError marks span as failed when err is not nil.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
