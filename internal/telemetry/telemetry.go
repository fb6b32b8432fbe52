// Package telemetry configures OpenTelemetry tracing for the storefront API:
// a tracer provider exporting to a writer, and HTTP server middleware.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// ServiceName identifies this service in exported spans.
const ServiceName = "discgolf-api"

// Setup builds a tracer provider that batches spans to w as JSON lines,
// installs it and the W3C trace-context propagators as the globals, and
// returns it. Call Shutdown on the result before exit to flush pending spans.
func Setup(w io.Writer, version string) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("telemetry.Setup: create exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(ServiceName),
		semconv.ServiceVersionKey.String(version),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, nil
}

// Shutdown flushes and stops tp. A nil tp is a no-op so callers can defer it
// unconditionally when tracing is disabled.
func Shutdown(ctx context.Context, tp *sdktrace.TracerProvider) error {
	if tp == nil {
		return nil
	}
	if err := tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("telemetry.Shutdown: %w", err)
	}
	return nil
}

// Middleware returns HTTP server middleware that starts a span named
// "HTTP <method> <path>" for every request except health checks. A nil tp
// uses the global provider.
func Middleware(tp trace.TracerProvider) func(http.Handler) http.Handler {
	opts := []otelhttp.Option{
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz"
		}),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "HTTP " + r.Method + " " + r.URL.Path
		}),
	}
	if tp != nil {
		opts = append(opts, otelhttp.WithTracerProvider(tp))
	}
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, ServiceName, opts...)
	}
}
