package live

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Default tracer name for live sessions.
const defaultTracerName = "smallie"

// eventSpanName names the span around every dispatched client event.
const eventSpanName = "smallie.live.event"

func newTracer(name string, enabled bool) trace.Tracer {
	if !enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	if name == "" {
		name = defaultTracerName
	}
	return otel.Tracer(name)
}

// startEventSpan opens the span for one dispatch. The caller finishes it with
// endEventSpan.
func startEventSpan(ctx context.Context, tracer trace.Tracer, sessionID string, msg ClientMessage) (context.Context, trace.Span) {
	return tracer.Start(ctx, eventSpanName,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("smallie.session_id", sessionID),
			attribute.String("smallie.event_type", msg.EventType),
			attribute.Int("smallie.node_id", msg.ID),
		),
	)
}

func endEventSpan(span trace.Span, patchOps int, recovered any) {
	span.SetAttributes(attribute.Int("smallie.patch_ops", patchOps))
	if recovered != nil {
		span.SetStatus(codes.Error, fmt.Sprint(recovered))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
