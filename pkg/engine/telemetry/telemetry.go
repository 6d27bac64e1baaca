// Package telemetry traces ship generation. Until a provider is installed every
// component tracer is a no-op, so generators can always open spans.
package telemetry

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "spaceescape"
	serviceVersion = "0.1.0"
)

var (
	mu       sync.RWMutex
	provider trace.TracerProvider
)

// Setup exports spans over OTLP HTTP, configured by the OTEL_EXPORTER_OTLP_*
// variables. The returned function flushes pending spans and puts the no-op
// tracers back.
func Setup(ctx context.Context) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("process.runtime.version", runtime.Version()),
		)),
	)
	Install(tp)

	return func(ctx context.Context) error {
		Install(nil)
		return tp.Shutdown(ctx)
	}, nil
}

// Install makes tp the source of component tracers. nil restores the no-op tracers.
func Install(tp trace.TracerProvider) {
	mu.Lock()
	defer mu.Unlock()
	provider = tp
}

// Tracer returns the tracer for a component, a no-op one when nothing is installed
func Tracer(component string) trace.Tracer {
	mu.RLock()
	tp := provider
	mu.RUnlock()

	if tp == nil {
		return NoopTracer()
	}
	return tp.Tracer(serviceName + "/" + component)
}

// NoopTracer returns a tracer that records nothing
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName)
}
