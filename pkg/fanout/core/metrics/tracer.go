package metrics

import (
	"context"
)

// Tracer is an abstract interface for distributed tracing of the dispatch
// path. It lets the engine integrate with tracing systems like OpenTelemetry
// without depending on one.
type Tracer interface {
	// StartDispatchSpan starts a span covering one batch dispatch.
	//
	// ctx: The parent context.
	// jobLabel: The originating job's label.
	//
	// Returns: A context carrying the new span, and a function ending it.
	//          The returned function is expected to be deferred.
	StartDispatchSpan(ctx context.Context, jobLabel string) (context.Context, func())

	// RecordError records an error on the current span.
	RecordError(ctx context.Context, module string, err error)

	// RecordEvent records an event with attributes on the current span.
	RecordEvent(ctx context.Context, name string, attributes map[string]interface{})
}
