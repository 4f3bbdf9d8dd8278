// Package memory provides an in-memory implementation of the Engine port.
// It stores submitted batches in maps within memory, suitable for testing and
// scenarios where durability is not required.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
	ports "github.com/tigerroll/fanout/pkg/fanout/core/ports"
	exception "github.com/tigerroll/fanout/pkg/fanout/support/util/exception"
	logger "github.com/tigerroll/fanout/pkg/fanout/support/util/logger"
)

const moduleName = "memory_engine"

// BatchHandle is the receipt returned for an accepted batch.
type BatchHandle struct {
	id string
}

// ID returns the engine-assigned batch ID.
func (h *BatchHandle) ID() string {
	return h.id
}

var _ ports.Receipt = (*BatchHandle)(nil)

// JobRunner executes one job descriptor. It stands in for the real worker
// side of a job-execution engine when batches are run synchronously.
type JobRunner func(ctx context.Context, job *model.JobDescriptor) error

// Engine is an in-memory Engine implementation. Accepted batches are held
// under uuid batch IDs until Run or Close.
type Engine struct {
	mu      sync.RWMutex
	batches map[string]*model.BatchSubmission
}

// NewEngine creates and initializes a new in-memory Engine.
func NewEngine() *Engine {
	return &Engine{batches: make(map[string]*model.BatchSubmission)}
}

// Submit accepts a batch and returns its receipt. An empty submission is
// rejected; the batching core never produces one, so this is a guard against
// misuse of the port.
func (e *Engine) Submit(ctx context.Context, batch *model.BatchSubmission) (ports.Receipt, error) {
	if batch == nil || len(batch.Jobs) == 0 {
		return nil, exception.NewBatchErrorf(moduleName, "rejecting empty batch submission")
	}

	id := uuid.New().String()
	e.mu.Lock()
	e.batches[id] = batch
	e.mu.Unlock()

	logger.Debugf("MemoryEngine: accepted batch '%s' (%d jobs) as %s.", batch.Name, len(batch.Jobs), id)
	return &BatchHandle{id: id}, nil
}

// Batch returns the stored submission for id.
func (e *Engine) Batch(id string) (*model.BatchSubmission, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	batch, ok := e.batches[id]
	return batch, ok
}

// Len returns the number of accepted batches.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.batches)
}

// Run executes every child of the batch synchronously through runner, in
// submission order. When AllowFailures is false the first child failure aborts
// the remaining children; otherwise failures are collected and the rest keep
// running. The finally step runs in both cases, after the children.
func (e *Engine) Run(ctx context.Context, id string, runner JobRunner) error {
	batch, ok := e.Batch(id)
	if !ok {
		return exception.NewBatchErrorf(moduleName, "unknown batch ID: %s", id)
	}

	var combined *multierror.Error
	for _, job := range batch.Jobs {
		if err := runner(ctx, job); err != nil {
			combined = multierror.Append(combined, err)
			if !batch.AllowFailures {
				logger.Warnf("MemoryEngine: batch %s aborted on child failure: %v", id, err)
				break
			}
		}
	}

	if batch.Finally != nil {
		if err := e.runChain(ctx, batch.Finally, runner); err != nil {
			combined = multierror.Append(combined, err)
		}
	}
	return combined.ErrorOrNil()
}

// runChain runs a descriptor followed by its chain, depth-first, stopping at
// the first failure (chained work after a failed link does not run).
func (e *Engine) runChain(ctx context.Context, job *model.JobDescriptor, runner JobRunner) error {
	if err := runner(ctx, job); err != nil {
		return err
	}
	for _, chained := range job.Chain {
		if err := e.runChain(ctx, chained, runner); err != nil {
			return err
		}
	}
	return nil
}

// Close releases resources used by the engine. As an in-memory engine it
// holds no external resources, so this always returns nil.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.batches = make(map[string]*model.BatchSubmission)
	e.mu.Unlock()
	return nil
}

var _ ports.Engine = (*Engine)(nil)
