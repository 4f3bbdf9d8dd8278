package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	metrics "github.com/tigerroll/fanout/pkg/fanout/core/metrics"
)

const tracerName = "github.com/tigerroll/fanout"

// OpenTelemetryTracer is a metrics.Tracer implemented on the OpenTelemetry
// API. Exporter and provider wiring is left to the embedding application; with
// no SDK installed the global tracer is a no-op.
type OpenTelemetryTracer struct {
	tracer trace.Tracer
}

// NewOpenTelemetryTracer creates a new OpenTelemetryTracer using the global
// tracer provider.
func NewOpenTelemetryTracer() metrics.Tracer {
	return &OpenTelemetryTracer{tracer: otel.Tracer(tracerName)}
}

// StartDispatchSpan starts a span covering one batch dispatch.
func (t *OpenTelemetryTracer) StartDispatchSpan(ctx context.Context, jobLabel string) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, "fanout.dispatch",
		trace.WithAttributes(attribute.String("fanout.job", jobLabel)))
	return ctx, func() { span.End() }
}

// RecordError records an error on the current span and marks it failed.
func (t *OpenTelemetryTracer) RecordError(ctx context.Context, module string, err error) {
	if err == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	span.RecordError(err, trace.WithAttributes(attribute.String("fanout.module", module)))
	span.SetStatus(codes.Error, err.Error())
}

// RecordEvent records an event with attributes on the current span.
func (t *OpenTelemetryTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		switch value := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, value))
		case int:
			attrs = append(attrs, attribute.Int(k, value))
		case int64:
			attrs = append(attrs, attribute.Int64(k, value))
		case float64:
			attrs = append(attrs, attribute.Float64(k, value))
		case bool:
			attrs = append(attrs, attribute.Bool(k, value))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", value)))
		}
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

var _ metrics.Tracer = (*OpenTelemetryTracer)(nil)
