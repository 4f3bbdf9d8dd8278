// Package job holds the example parent job whose oversized imports get split.
package job

import (
	"context"

	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
	ports "github.com/tigerroll/fanout/pkg/fanout/core/ports"
)

// ImportOrdersJob is the parent job of the example: importing a keyed set of
// orders. When the order count exceeds the batch size it is split into child
// imports.
type ImportOrdersJob struct {
	notifier ports.Notifier
	chain    []*model.JobDescriptor
}

// NewImportOrdersJob creates the example job with its notification hook.
func NewImportOrdersJob(notifier ports.Notifier) *ImportOrdersJob {
	return &ImportOrdersJob{notifier: notifier}
}

// Label identifies the job in logs, metrics, and the batch name.
func (j *ImportOrdersJob) Label() string {
	return "orders.import"
}

// Mapping is the job type assigned to generated children.
func (j *ImportOrdersJob) Mapping() string {
	return "orders.import"
}

// Chain returns the jobs already chained behind this one.
func (j *ImportOrdersJob) Chain() []*model.JobDescriptor {
	return j.chain
}

// Chained appends jobs to run after the import completes.
func (j *ImportOrdersJob) Chained(jobs ...*model.JobDescriptor) *ImportOrdersJob {
	j.chain = append(j.chain, jobs...)
	return j
}

// Notify forwards batching notifications to the configured notifier.
func (j *ImportOrdersJob) Notify(ctx context.Context, message string) {
	j.notifier.Notify(ctx, message)
}

var (
	_ ports.ParentJob = (*ImportOrdersJob)(nil)
	_ ports.Notifier  = (*ImportOrdersJob)(nil)
)
