package batch

import (
	config "github.com/tigerroll/fanout/pkg/fanout/core/config"
	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
	props "github.com/tigerroll/fanout/pkg/fanout/support/util/props"
)

// Options is the batch configuration resolved for one evaluation: every
// recognized batch* property with its caller value or its settings default.
type Options struct {
	Enabled        bool
	Size           int
	Queue          string
	Connection     string
	ItemsKey       string
	IDKey          string
	MaxAttempts    int
	BackoffSeconds int
	TimeoutSeconds int
	AllowFailures  bool
	Finally        model.ChainInput
	Carryover      []string
}

// applyDefaults writes the evaluation defaults into the working bag for keys
// the caller did not supply. Caller-supplied values are never overridden; the
// defaults become visible to children through the normal carryover path.
func applyDefaults(work *model.PropertyBag, defaults config.BatchDefaults) {
	work.SetDefault(model.KeyAutoBatch, false)
	work.SetDefault(model.KeyBatchSize, defaults.Size)
	work.SetDefault(model.KeyBatchQueue, defaults.Queue)
	work.SetDefault(model.KeyBatchItemsKey, model.DefaultItemsKey)
	work.SetDefault(model.KeyBatchCarryover, []string{})
}

// resolveOptions extracts the batch options from the working bag. Every field
// is type-checked with its own default: a mistyped value falls back per field
// instead of failing the evaluation.
func resolveOptions(work *model.PropertyBag, defaults config.BatchDefaults) Options {
	opts := Options{
		Enabled:        props.Bool(work, model.KeyAutoBatch, false),
		Size:           props.Int(work, model.KeyBatchSize, defaults.Size),
		Queue:          props.String(work, model.KeyBatchQueue, defaults.Queue),
		Connection:     defaults.Connection,
		ItemsKey:       props.String(work, model.KeyBatchItemsKey, model.DefaultItemsKey),
		IDKey:          props.String(work, model.KeyBatchIDKey, ""),
		MaxAttempts:    props.Int(work, model.KeyBatchMaxAttempts, defaults.MaxAttempts),
		BackoffSeconds: props.Int(work, model.KeyBatchBackoff, defaults.BackoffSeconds),
		TimeoutSeconds: props.Int(work, model.KeyBatchTimeout, defaults.TimeoutSeconds),
		AllowFailures:  props.Bool(work, model.KeyBatchAllowFailures, defaults.AllowFailuresOrDefault()),
		Carryover:      props.StringSlice(work, model.KeyBatchCarryover, nil),
	}

	if raw, ok := work.Get(model.KeyBatchFinally); ok {
		opts.Finally = model.ResolveChainInput(raw)
	} else {
		opts.Finally = model.ResolveChainInput(nil)
	}

	// A non-positive size would make every chunk degenerate; clamp to the
	// settings default, then to 1.
	if opts.Size < 1 {
		opts.Size = defaults.Size
	}
	if opts.Size < 1 {
		opts.Size = 1
	}
	if opts.ItemsKey == "" {
		opts.ItemsKey = model.DefaultItemsKey
	}
	return opts
}
