// Package batch contains the batching decision engine: the Evaluator decides
// whether a job's item collection exceeds the split threshold, and the
// Dispatcher turns an oversized job into one BatchSubmission handed to the
// external job-execution engine.
package batch

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	config "github.com/tigerroll/fanout/pkg/fanout/core/config"
	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
	metrics "github.com/tigerroll/fanout/pkg/fanout/core/metrics"
	ports "github.com/tigerroll/fanout/pkg/fanout/core/ports"
	logger "github.com/tigerroll/fanout/pkg/fanout/support/util/logger"
)

// Result is the outcome of one Evaluate call. When Batched is false the job
// should run as-is; when true, Receipt carries the engine's opaque dispatch
// result.
type Result struct {
	Batched bool
	Receipt ports.Receipt
}

// Evaluator decides whether a job is split. It is stateless across calls:
// each evaluation works on its own copy of the property bag, so calling it
// twice with the same inputs produces two independent batch submissions.
type Evaluator struct {
	defaults   config.BatchDefaults
	dispatcher *Dispatcher
	recorder   metrics.BatchMetricRecorder
}

// EvaluatorParams defines the dependencies injected via DI.
type EvaluatorParams struct {
	fx.In
	Config     *config.Config
	Dispatcher *Dispatcher
	Recorder   metrics.BatchMetricRecorder `optional:"true"`
}

// NewEvaluator creates a new Evaluator instance.
func NewEvaluator(p EvaluatorParams) *Evaluator {
	recorder := p.Recorder
	if recorder == nil {
		recorder = metrics.NewNoOpBatchMetricRecorder()
	}
	return &Evaluator{
		defaults:   p.Config.Fanout.Batch,
		dispatcher: p.Dispatcher,
		recorder:   recorder,
	}
}

// Evaluate runs the batching decision for parent with the given properties.
//
// The non-batched paths are normal control flow, not failures: batching
// disabled, a missing or non-collection items property, and an item count at
// or below the threshold all return Batched=false with a nil error. Only the
// missing/invalid items case emits a best-effort notification; the
// below-threshold case is the expected outcome and stays silent. The only
// error this method returns is a submission failure raised by the external
// engine, which propagates unchanged.
func (e *Evaluator) Evaluate(ctx context.Context, parent ports.ParentJob, parentProps *model.PropertyBag) (Result, error) {
	if parentProps == nil {
		parentProps = model.NewPropertyBag()
	}
	work := parentProps.Clone()
	applyDefaults(work, e.defaults)
	opts := resolveOptions(work, e.defaults)

	label := parent.Label()

	if !opts.Enabled {
		e.recorder.RecordEvaluation(ctx, label, false)
		return Result{Batched: false}, nil
	}

	raw, present := work.Get(opts.ItemsKey)
	items, valid := model.CollectionFrom(raw)
	if !present || !valid {
		notify(ctx, parent, fmt.Sprintf(
			"Auto-batch skipped for '%s': property '%s' is missing or not a keyed collection.", label, opts.ItemsKey))
		logger.Warnf("Evaluator: auto-batch skipped for '%s', property '%s' missing or invalid.", label, opts.ItemsKey)
		e.recorder.RecordSkip(ctx, label, "invalid_items_key")
		e.recorder.RecordEvaluation(ctx, label, false)
		return Result{Batched: false}, nil
	}

	if items.Len() <= opts.Size {
		e.recorder.RecordEvaluation(ctx, label, false)
		return Result{Batched: false}, nil
	}

	receipt, err := e.dispatcher.Dispatch(ctx, parent, work, opts, items)
	if err != nil {
		return Result{Batched: false}, err
	}
	e.recorder.RecordEvaluation(ctx, label, true)
	return Result{Batched: true, Receipt: receipt}, nil
}

// notify delivers a best-effort message to the parent when it implements the
// Notifier port; a parent without the hook is silently skipped.
func notify(ctx context.Context, parent ports.ParentJob, message string) {
	if n, ok := parent.(ports.Notifier); ok {
		n.Notify(ctx, message)
	}
}
