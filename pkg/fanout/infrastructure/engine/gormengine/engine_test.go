package gormengine_test

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
	gormengine "github.com/tigerroll/fanout/pkg/fanout/infrastructure/engine/gormengine"
	testutil "github.com/tigerroll/fanout/pkg/fanout/test"
)

func newSQLiteEngine(t *testing.T) *gormengine.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	engine, err := gormengine.NewEngine(db)
	assert.NoError(t, err)
	return engine
}

func newSubmission(size int) *model.BatchSubmission {
	jobs := make([]*model.JobDescriptor, size)
	for i := range jobs {
		props := testutil.NewTestProperties(model.KeyBatchIndex, i+1, model.KeyBatchTotal, size)
		jobs[i] = model.NewJobDescriptor("orders.import", props).OnQueue("imports")
	}
	return &model.BatchSubmission{
		Name:           "orders.import",
		Jobs:           jobs,
		Queue:          "imports",
		Connection:     "default",
		MaxAttempts:    3,
		BackoffSeconds: 15,
		TimeoutSeconds: 900,
		AllowFailures:  true,
		Finally:        model.NewJobDescriptor("fanout.batch_completed", nil),
	}
}

func TestSubmit_PersistsBatchAndJobs(t *testing.T) {
	engine := newSQLiteEngine(t)
	ctx := context.Background()

	receipt, err := engine.Submit(ctx, newSubmission(3))
	assert.NoError(t, err)
	assert.NotEmpty(t, receipt.ID())

	record, err := engine.Batch(ctx, receipt.ID())
	assert.NoError(t, err)
	assert.Equal(t, "orders.import", record.Name)
	assert.Equal(t, "imports", record.Queue)
	assert.Equal(t, 3, record.MaxAttempts)
	assert.Equal(t, 3, record.TotalJobs)
	assert.True(t, record.AllowFailures)
	assert.Contains(t, record.FinallyJSON, "fanout.batch_completed")
}

func TestSubmit_JobsRoundTripInChunkOrder(t *testing.T) {
	engine := newSQLiteEngine(t)
	ctx := context.Background()

	receipt, err := engine.Submit(ctx, newSubmission(3))
	assert.NoError(t, err)

	jobs, err := engine.Jobs(ctx, receipt.ID())
	assert.NoError(t, err)
	assert.Len(t, jobs, 3)
	for i, job := range jobs {
		assert.Equal(t, "orders.import", job.Mapping)
		assert.Equal(t, "imports", job.Queue)
		index, ok := job.Properties.Get(model.KeyBatchIndex)
		assert.True(t, ok)
		assert.Equal(t, json.Number(strconv.Itoa(i+1)), index)
	}
}

func TestSubmit_RejectsEmptySubmission(t *testing.T) {
	engine := newSQLiteEngine(t)

	_, err := engine.Submit(context.Background(), nil)
	assert.Error(t, err)

	_, err = engine.Submit(context.Background(), &model.BatchSubmission{Name: "empty"})
	assert.Error(t, err)
}

func TestBatch_UnknownID(t *testing.T) {
	engine := newSQLiteEngine(t)

	_, err := engine.Batch(context.Background(), "no-such-batch")
	assert.Error(t, err)
}

func TestNewEngine_MigrationFailureSurfaces(t *testing.T) {
	// A connection that accepts no statements makes the migration fail.
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	_, err = gormengine.NewEngine(gormDB)
	assert.Error(t, err)
}
