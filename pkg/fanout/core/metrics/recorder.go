package metrics

import (
	"context"
)

// BatchMetricRecorder is an abstract interface for recording metrics about the
// batching engine's own work: evaluations, skips, created batches, and
// submissions. Execution-side metrics (child runtime, retries) belong to the
// external engine and are not recorded here.
type BatchMetricRecorder interface {
	// RecordEvaluation records the outcome of one evaluate call.
	//
	// ctx: The context for the operation.
	// jobLabel: The originating job's label.
	// batched: Whether the evaluation resulted in a batch.
	RecordEvaluation(ctx context.Context, jobLabel string, batched bool)

	// RecordSkip records an evaluation that could not batch (e.g. missing or
	// invalid items key).
	//
	// ctx: The context for the operation.
	// jobLabel: The originating job's label.
	// reason: A short skip reason (e.g. "missing_items_key").
	RecordSkip(ctx context.Context, jobLabel string, reason string)

	// RecordBatchCreated records the shape of a freshly assembled batch.
	//
	// ctx: The context for the operation.
	// jobLabel: The originating job's label.
	// itemCount: Number of items that were split.
	// chunkCount: Number of chunks (= child jobs) produced.
	// chunkSize: The configured chunk size.
	RecordBatchCreated(ctx context.Context, jobLabel string, itemCount, chunkCount, chunkSize int)

	// RecordSubmission records the result of handing a batch to the engine.
	//
	// ctx: The context for the operation.
	// jobLabel: The originating job's label.
	// err: The submission error, nil on success.
	RecordSubmission(ctx context.Context, jobLabel string, err error)
}
