package storage

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/pkordes/discgolf-api/internal/storage"

// tracedStore records one span per Load/Save on the wrapped Store.
type tracedStore struct {
	next   Store
	driver string
	tracer trace.Tracer
}

// WithTracing wraps s so that every call produces a span named
// "storage.Load" or "storage.Save" tagged with the driver and collection.
// A nil tp falls back to the global tracer provider, which is a no-op unless
// telemetry.Setup installed one.
func WithTracing(s Store, driver string, tp trace.TracerProvider) Store {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &tracedStore{next: s, driver: driver, tracer: tp.Tracer(tracerName)}
}

func (t *tracedStore) Load(ctx context.Context, collection string) ([]byte, error) {
	ctx, span := t.start(ctx, "storage.Load", collection)
	defer span.End()

	data, err := t.next.Load(ctx, collection)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("storage.bytes", len(data)))
	return data, nil
}

func (t *tracedStore) Save(ctx context.Context, collection string, data []byte) error {
	ctx, span := t.start(ctx, "storage.Save", collection)
	defer span.End()

	span.SetAttributes(attribute.Int("storage.bytes", len(data)))
	if err := t.next.Save(ctx, collection, data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (t *tracedStore) start(ctx context.Context, name, collection string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("storage.driver", t.driver),
		attribute.String("storage.collection", collection),
	))
}
