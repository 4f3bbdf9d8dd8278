package ports

import (
	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
)

// ParentJob presents the oversized job to the batching engine. It exposes the
// job's identity and its pre-existing chain; the engine never needs the job's
// executable body.
//
// A ParentJob that additionally implements Notifier receives best-effort
// notifications on the skip and dispatch paths; one that does not is silently
// skipped.
type ParentJob interface {
	// Label is the human-readable job-type label (used for the batch name and
	// the synthesized completion job).
	Label() string
	// Mapping is the job type identifier assigned to generated children.
	Mapping() string
	// Chain returns the jobs the caller had already chained to run after this
	// job, in their original order.
	Chain() []*model.JobDescriptor
}
