package batch

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	config "github.com/tigerroll/fanout/pkg/fanout/core/config"
	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
	metrics "github.com/tigerroll/fanout/pkg/fanout/core/metrics"
	ports "github.com/tigerroll/fanout/pkg/fanout/core/ports"
	chainpkg "github.com/tigerroll/fanout/pkg/fanout/engine/chain"
	chunk "github.com/tigerroll/fanout/pkg/fanout/engine/chunk"
	descriptor "github.com/tigerroll/fanout/pkg/fanout/engine/descriptor"
	logger "github.com/tigerroll/fanout/pkg/fanout/support/util/logger"
)

// Dispatcher assembles one BatchSubmission from an oversized job and hands it
// to the external engine. It owns no state between calls.
type Dispatcher struct {
	engine     ports.Engine
	translator *chainpkg.Translator
	recorder   metrics.BatchMetricRecorder
	tracer     metrics.Tracer
}

// DispatcherParams defines the dependencies injected via DI.
type DispatcherParams struct {
	fx.In
	Config   *config.Config
	Engine   ports.Engine
	Recorder metrics.BatchMetricRecorder `optional:"true"`
	Tracer   metrics.Tracer              `optional:"true"`
}

// NewDispatcher creates a new Dispatcher instance.
func NewDispatcher(p DispatcherParams) *Dispatcher {
	recorder := p.Recorder
	if recorder == nil {
		recorder = metrics.NewNoOpBatchMetricRecorder()
	}
	tracer := p.Tracer
	if tracer == nil {
		tracer = metrics.NewNoOpTracer()
	}
	defaults := p.Config.Fanout.Batch
	return &Dispatcher{
		engine: p.Engine,
		translator: chainpkg.NewTranslator(chainpkg.Defaults{
			Queue:          defaults.Queue,
			Connection:     defaults.Connection,
			TimeoutSeconds: defaults.TimeoutSeconds,
		}),
		recorder: recorder,
		tracer:   tracer,
	}
}

// Dispatch chunks the items, builds one child descriptor per chunk, computes
// the finally step from the parent's existing chain plus the batchFinally
// appendix, and submits the assembled batch. The engine's receipt (or its
// submission error, unchanged) is returned to the caller.
func (d *Dispatcher) Dispatch(ctx context.Context, parent ports.ParentJob, work *model.PropertyBag, opts Options, items *model.ItemCollection) (ports.Receipt, error) {
	label := parent.Label()
	ctx, endSpan := d.tracer.StartDispatchSpan(ctx, label)
	defer endSpan()

	chunks := chunk.Split(items, opts.Size)

	childCfg := descriptor.ChildConfig{
		Mapping:        parent.Mapping(),
		ItemsKey:       opts.ItemsKey,
		IDKey:          opts.IDKey,
		Carryover:      opts.Carryover,
		Queue:          opts.Queue,
		Connection:     opts.Connection,
		BackoffSeconds: opts.BackoffSeconds,
		TimeoutSeconds: opts.TimeoutSeconds,
		MaxAttempts:    opts.MaxAttempts,
	}
	jobs := make([]*model.JobDescriptor, len(chunks))
	for i, c := range chunks {
		jobs[i] = descriptor.Build(work, c, i+1, len(chunks), childCfg)
	}

	finally := d.translator.Attach(parent.Chain(), opts.Finally, label)

	submission := &model.BatchSubmission{
		Name:           label,
		Jobs:           jobs,
		Queue:          opts.Queue,
		Connection:     opts.Connection,
		MaxAttempts:    opts.MaxAttempts,
		BackoffSeconds: opts.BackoffSeconds,
		TimeoutSeconds: opts.TimeoutSeconds,
		AllowFailures:  opts.AllowFailures,
		Finally:        finally,
	}

	notify(ctx, parent, fmt.Sprintf(
		"Batch created for '%s': %d items split into %d jobs (size %d).", label, items.Len(), len(chunks), opts.Size))
	d.recorder.RecordBatchCreated(ctx, label, items.Len(), len(chunks), opts.Size)
	d.tracer.RecordEvent(ctx, "batch_created", map[string]interface{}{
		"job":    label,
		"items":  items.Len(),
		"chunks": len(chunks),
		"size":   opts.Size,
	})

	notify(ctx, parent, fmt.Sprintf("Dispatching batch for '%s' to queue '%s'.", label, opts.Queue))
	logger.Infof("Dispatcher: submitting batch '%s' (%d jobs) to queue '%s'.", label, len(jobs), opts.Queue)

	receipt, err := d.engine.Submit(ctx, submission)
	d.recorder.RecordSubmission(ctx, label, err)
	if err != nil {
		d.tracer.RecordError(ctx, "dispatch", err)
		return nil, err
	}
	return receipt, nil
}
