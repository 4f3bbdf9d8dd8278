package ports

import (
	"context"

	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
)

// Receipt is the opaque result of handing a BatchSubmission to an engine.
// The batching core never interprets it beyond passing it back to the caller.
type Receipt interface {
	// ID identifies the accepted batch on the engine side.
	ID() string
}

// Engine is the boundary to the external job-execution engine. Scheduling,
// retry, backoff enforcement, worker concurrency, and persistence of job state
// all live behind this interface; the batching core only produces the
// submission. Failures raised here propagate to the caller unchanged.
type Engine interface {
	// Submit hands a batch to the engine and returns its opaque receipt.
	Submit(ctx context.Context, batch *model.BatchSubmission) (Receipt, error)
}
