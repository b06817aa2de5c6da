package otel

import (
	"context"
	"sync"

	eventbus "github.com/SammoMichael/graphstep/internal/eventbus"
	events "github.com/SammoMichael/graphstep/internal/events"
	execid "github.com/SammoMichael/graphstep/internal/execid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := &subscriber{tracer: otel.Tracer("graphstep")}
	sub.register()

	return tp.Shutdown, nil
}

type subscriber struct {
	tracer    trace.Tracer
	execSpans sync.Map // execution id -> trace.Span
}

func (s *subscriber) register() {
	eventbus.Subscribe(func(ctx context.Context, e events.ExecutionStart) {
		id, _ := execid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "graphql.operation")
		span.SetAttributes(
			attribute.String("graphql.operation.name", e.OperationName),
			attribute.String("graphql.operation.type", e.OperationType),
		)
		s.execSpans.Store(id, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.NullPropagated) {
		id, _ := execid.FromContext(ctx)
		v, ok := s.execSpans.Load(id)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.AddEvent("graphql.null_propagated", trace.WithAttributes(
			attribute.String("graphql.field.path", e.FieldPath),
			attribute.String("graphql.ancestor.path", e.AncestorPath),
		))
	})

	eventbus.Subscribe(func(ctx context.Context, e events.ExecutionFinish) {
		id, _ := execid.FromContext(ctx)
		v, ok := s.execSpans.LoadAndDelete(id)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(
			attribute.Int("graphql.error_count", e.ErrorCount),
			attribute.Bool("graphql.data_nulled", e.DataNulled),
		)
		span.End()
	})
}
