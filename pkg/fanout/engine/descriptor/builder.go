// Package descriptor materializes one child job descriptor per chunk,
// applying the carryover policy and the batch-tracking fields.
package descriptor

import (
	"strings"

	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
)

// ChildConfig carries the batch-scoped parameters applied to every child.
// Dispatch parameters come from the parent's batch configuration falling back
// to settings defaults, never from the carried-over properties.
type ChildConfig struct {
	// Mapping is the job type assigned to each child.
	Mapping string
	// ItemsKey names the property that receives the child's chunk.
	ItemsKey string
	// IDKey, when non-empty, names the property receiving the chunk's key list.
	IDKey string
	// Carryover is the explicit allow-list of parent properties to pass on.
	// Empty means: pass everything except the fixed exclusion set.
	Carryover []string
	// Dispatch parameters shared by batch and children.
	Queue          string
	Connection     string
	BackoffSeconds int
	TimeoutSeconds int
	MaxAttempts    int
}

// Build produces the child descriptor for one chunk. index is 1-based; total
// is the number of chunks in the batch.
//
// Carryover policy (mutually exclusive):
//   - Non-empty Carryover: the child receives only the named keys that exist
//     on the parent; empty names and missing keys are silently omitted.
//   - Empty Carryover: the child receives all parent properties except the
//     already-consumed items collection, the carryover directive itself, and
//     logID.
//
// The builder then unconditionally sets the chunk under ItemsKey, the chunk's
// key list under IDKey (if configured), the batch-tracking fields, and
// autoBatch=false. The last one is the recursion guard: a child is
// structurally unable to trigger another split regardless of its item count.
func Build(parentProps *model.PropertyBag, chunk *model.Chunk, index, total int, cfg ChildConfig) *model.JobDescriptor {
	childProps := model.NewPropertyBag()

	if len(cfg.Carryover) > 0 {
		for _, key := range cfg.Carryover {
			if key == "" {
				continue
			}
			if value, ok := parentProps.Get(key); ok {
				childProps.Set(key, value)
			}
		}
	} else {
		excluded := map[string]struct{}{
			strings.ToLower(model.KeyLogID):          {},
			strings.ToLower(cfg.ItemsKey):            {},
			strings.ToLower(model.KeyBatchCarryover): {},
		}
		parentProps.Range(func(key string, value interface{}) bool {
			if _, skip := excluded[strings.ToLower(key)]; !skip {
				childProps.Set(key, value)
			}
			return true
		})
	}

	childProps.Set(cfg.ItemsKey, chunk)
	if cfg.IDKey != "" {
		childProps.Set(cfg.IDKey, chunk.Keys())
	}
	childProps.Set(model.KeyIsBatchChild, true)
	childProps.Set(model.KeyBatchIndex, index)
	childProps.Set(model.KeyBatchTotal, total)
	childProps.Set(model.KeyAutoBatch, false)

	return model.NewJobDescriptor(cfg.Mapping, childProps).
		OnQueue(cfg.Queue).
		OnConnection(cfg.Connection).
		WithBackoff(cfg.BackoffSeconds).
		WithTimeout(cfg.TimeoutSeconds).
		WithMaxAttempts(cfg.MaxAttempts)
}
