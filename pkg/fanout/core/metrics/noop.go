package metrics

import (
	"context"
)

// NoOpBatchMetricRecorder is a BatchMetricRecorder that does nothing. It is
// the fallback when no metrics backend is wired.
type NoOpBatchMetricRecorder struct{}

// NewNoOpBatchMetricRecorder creates a new NoOpBatchMetricRecorder.
func NewNoOpBatchMetricRecorder() BatchMetricRecorder {
	return &NoOpBatchMetricRecorder{}
}

// RecordEvaluation does nothing.
func (r *NoOpBatchMetricRecorder) RecordEvaluation(ctx context.Context, jobLabel string, batched bool) {
}

// RecordSkip does nothing.
func (r *NoOpBatchMetricRecorder) RecordSkip(ctx context.Context, jobLabel string, reason string) {}

// RecordBatchCreated does nothing.
func (r *NoOpBatchMetricRecorder) RecordBatchCreated(ctx context.Context, jobLabel string, itemCount, chunkCount, chunkSize int) {
}

// RecordSubmission does nothing.
func (r *NoOpBatchMetricRecorder) RecordSubmission(ctx context.Context, jobLabel string, err error) {
}

var _ BatchMetricRecorder = (*NoOpBatchMetricRecorder)(nil)

// NoOpTracer is a Tracer that does nothing.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() Tracer {
	return &NoOpTracer{}
}

// StartDispatchSpan returns the context unchanged.
func (t *NoOpTracer) StartDispatchSpan(ctx context.Context, jobLabel string) (context.Context, func()) {
	return ctx, func() {}
}

// RecordError does nothing.
func (t *NoOpTracer) RecordError(ctx context.Context, module string, err error) {}

// RecordEvent does nothing.
func (t *NoOpTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
}

var _ Tracer = (*NoOpTracer)(nil)
