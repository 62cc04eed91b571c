// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/contrib/propagators/jaeger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var _ TracingInterface = (*Tracer)(nil)

type Tracer struct {
	tracer trace.Tracer
}

func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// NewTracer wires the global OTLP pipeline. Preference order for exporters is
// gRPC endpoint, HTTP endpoint, stdout.
func NewTracer(cfg *Config) *Tracer {
	t := new(Tracer)

	if !cfg.Enabled {
		t.tracer = noop.NewTracerProvider().Tracer("portal")
		return t
	}

	exporter, err := newExporter(cfg)
	if err != nil {
		cfg.Logger.Errorf("failed to create trace exporter: %v", err)
		t.tracer = noop.NewTracerProvider().Tracer("portal")
		return t
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
			jaeger.Jaeger{},
		),
	)

	t.tracer = provider.Tracer("portal")
	return t
}

func newExporter(cfg *Config) (*otlptrace.Exporter, error) {
	ctx := context.Background()

	if cfg.OtelGRPCEndpoint != "" {
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpoint(cfg.OtelGRPCEndpoint),
			otlptracegrpc.WithInsecure(),
		)
	}

	if cfg.OtelHTTPEndpoint != "" {
		return otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpoint(cfg.OtelHTTPEndpoint),
			otlptracehttp.WithInsecure(),
		)
	}

	return nil, errNoEndpoint
}

// NewNoopTracer returns a tracer that records nothing. Used in tests and when
// tracing is disabled.
func NewNoopTracer() *Tracer {
	return &Tracer{tracer: noop.NewTracerProvider().Tracer("portal")}
}

// NewStdoutTracer prints spans to stdout, useful for local debugging without a
// collector.
func NewStdoutTracer(cfg *Config) *Tracer {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		cfg.Logger.Errorf("failed to create stdout exporter: %v", err)
		return NewNoopTracer()
	}

	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)

	return &Tracer{tracer: provider.Tracer("portal")}
}
