// Package gormengine provides a database-backed implementation of the Engine
// port. Accepted batches are persisted through GORM so a separate worker
// process can pick them up.
package gormengine

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
	ports "github.com/tigerroll/fanout/pkg/fanout/core/ports"
	exception "github.com/tigerroll/fanout/pkg/fanout/support/util/exception"
	logger "github.com/tigerroll/fanout/pkg/fanout/support/util/logger"
)

const moduleName = "gorm_engine"

// Receipt identifies a persisted batch.
type Receipt struct {
	id string
}

// ID returns the engine-assigned batch ID.
func (r *Receipt) ID() string {
	return r.id
}

var _ ports.Receipt = (*Receipt)(nil)

// Engine persists batch submissions to a relational database.
type Engine struct {
	db *gorm.DB
}

// NewEngine creates a database-backed Engine and migrates its tables.
func NewEngine(db *gorm.DB) (*Engine, error) {
	if err := db.AutoMigrate(&BatchRecord{}, &JobRecord{}); err != nil {
		return nil, exception.NewBatchError(moduleName, "failed to migrate engine tables", err)
	}
	return &Engine{db: db}, nil
}

// Submit persists the batch and its jobs in a single transaction and returns
// the receipt. An empty submission is rejected.
func (e *Engine) Submit(ctx context.Context, batch *model.BatchSubmission) (ports.Receipt, error) {
	if batch == nil || len(batch.Jobs) == 0 {
		return nil, exception.NewBatchErrorf(moduleName, "rejecting empty batch submission")
	}

	batchID := uuid.New().String()
	record := BatchRecord{
		ID:             batchID,
		Name:           batch.Name,
		Queue:          batch.Queue,
		Connection:     batch.Connection,
		MaxAttempts:    batch.MaxAttempts,
		BackoffSeconds: batch.BackoffSeconds,
		TimeoutSeconds: batch.TimeoutSeconds,
		AllowFailures:  batch.AllowFailures,
		TotalJobs:      len(batch.Jobs),
	}
	if batch.Finally != nil {
		payload, err := json.Marshal(batch.Finally)
		if err != nil {
			return nil, exception.NewBatchError(moduleName, "failed to serialize finally descriptor", err)
		}
		record.FinallyJSON = string(payload)
	}

	jobRecords := make([]JobRecord, 0, len(batch.Jobs))
	for i, job := range batch.Jobs {
		payload, err := json.Marshal(job)
		if err != nil {
			return nil, exception.NewBatchErrorf(moduleName, "failed to serialize job %d of batch '%s': %v", i, batch.Name, err)
		}
		jobRecords = append(jobRecords, JobRecord{
			ID:             uuid.New().String(),
			BatchID:        batchID,
			Position:       i,
			Mapping:        job.Mapping,
			Queue:          job.Queue,
			DescriptorJSON: string(payload),
		})
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Create(&jobRecords).Error
	})
	if err != nil {
		return nil, exception.NewBatchError(moduleName, "failed to persist batch submission", err)
	}

	logger.Debugf("GormEngine: persisted batch '%s' (%d jobs) as %s.", batch.Name, len(batch.Jobs), batchID)
	return &Receipt{id: batchID}, nil
}

// Batch loads the persisted batch record for id.
func (e *Engine) Batch(ctx context.Context, id string) (*BatchRecord, error) {
	var record BatchRecord
	if err := e.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, exception.NewBatchErrorf(moduleName, "batch '%s' not found: %v", id, err)
	}
	return &record, nil
}

// Jobs loads the persisted child descriptors of the batch, in chunk order.
func (e *Engine) Jobs(ctx context.Context, id string) ([]*model.JobDescriptor, error) {
	var records []JobRecord
	err := e.db.WithContext(ctx).
		Where("batch_id = ?", id).
		Order("position asc").
		Find(&records).Error
	if err != nil {
		return nil, exception.NewBatchErrorf(moduleName, "failed to load jobs of batch '%s': %v", id, err)
	}

	jobs := make([]*model.JobDescriptor, 0, len(records))
	for _, record := range records {
		var job model.JobDescriptor
		if err := json.Unmarshal([]byte(record.DescriptorJSON), &job); err != nil {
			return nil, exception.NewBatchErrorf(moduleName, "corrupt descriptor for job %s: %v", record.ID, err)
		}
		jobs = append(jobs, &job)
	}
	return jobs, nil
}

var _ ports.Engine = (*Engine)(nil)
