package batch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	config "github.com/tigerroll/fanout/pkg/fanout/core/config"
	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
	batch "github.com/tigerroll/fanout/pkg/fanout/engine/batch"
	testutil "github.com/tigerroll/fanout/pkg/fanout/test"
)

func newTestConfig(size int) *config.Config {
	cfg := config.NewConfig()
	cfg.Fanout.Batch = testutil.NewTestBatchDefaults(size)
	return cfg
}

func newEvaluator(cfg *config.Config, engine *testutil.MockEngine) *batch.Evaluator {
	dispatcher := batch.NewDispatcher(batch.DispatcherParams{
		Config: cfg,
		Engine: engine,
	})
	return batch.NewEvaluator(batch.EvaluatorParams{
		Config:     cfg,
		Dispatcher: dispatcher,
	})
}

func newParent(items interface{}, extra ...interface{}) (*testutil.StubParentJob, *model.PropertyBag) {
	parent := &testutil.StubParentJob{JobLabel: "orders.import", JobMapping: "orders.import"}
	props := testutil.NewTestProperties(extra...)
	props.Set(model.KeyAutoBatch, true)
	if items != nil {
		props.Set(model.DefaultItemsKey, items)
	}
	return parent, props
}

func TestEvaluate_DisabledPassesThrough(t *testing.T) {
	engine := new(testutil.MockEngine)
	evaluator := newEvaluator(newTestConfig(10), engine)
	parent := &testutil.StubParentJob{JobLabel: "orders.import", JobMapping: "orders.import"}
	props := testutil.NewTestProperties(model.DefaultItemsKey, testutil.NewTestItems(100))

	result, err := evaluator.Evaluate(context.Background(), parent, props)

	assert.NoError(t, err)
	assert.False(t, result.Batched)
	engine.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestEvaluate_AtThresholdPassesThrough(t *testing.T) {
	engine := new(testutil.MockEngine)
	evaluator := newEvaluator(newTestConfig(10), engine)
	parent, props := newParent(testutil.NewTestItems(10))

	result, err := evaluator.Evaluate(context.Background(), parent, props)

	assert.NoError(t, err)
	assert.False(t, result.Batched)
	assert.Nil(t, result.Receipt)
	engine.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestEvaluate_AboveThresholdDispatches(t *testing.T) {
	engine := new(testutil.MockEngine)
	engine.On("Submit", mock.Anything, mock.Anything).Return(&testutil.MockReceipt{BatchID: "batch-1"}, nil)
	evaluator := newEvaluator(newTestConfig(10), engine)
	parent, props := newParent(testutil.NewTestItems(11))

	result, err := evaluator.Evaluate(context.Background(), parent, props)

	assert.NoError(t, err)
	assert.True(t, result.Batched)
	assert.Equal(t, "batch-1", result.Receipt.ID())
	engine.AssertExpectations(t)
}

func TestEvaluate_MissingItemsKeyNotifiesAndPassesThrough(t *testing.T) {
	engine := new(testutil.MockEngine)
	evaluator := newEvaluator(newTestConfig(10), engine)
	parent, props := newParent(nil)

	result, err := evaluator.Evaluate(context.Background(), parent, props)

	assert.NoError(t, err)
	assert.False(t, result.Batched)
	assert.Len(t, parent.Messages, 1)
	assert.Contains(t, parent.Messages[0], "missing or not a keyed collection")
	engine.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestEvaluate_NonCollectionItemsNotifiesAndPassesThrough(t *testing.T) {
	engine := new(testutil.MockEngine)
	evaluator := newEvaluator(newTestConfig(10), engine)
	parent, props := newParent("not-a-collection")

	result, err := evaluator.Evaluate(context.Background(), parent, props)

	assert.NoError(t, err)
	assert.False(t, result.Batched)
	assert.Len(t, parent.Messages, 1)
}

func TestEvaluate_ParentWithoutNotifierHookIsSkippedSilently(t *testing.T) {
	engine := new(testutil.MockEngine)
	evaluator := newEvaluator(newTestConfig(10), engine)
	parent := &testutil.SilentParentJob{JobLabel: "orders.import", JobMapping: "orders.import"}
	props := testutil.NewTestProperties(model.KeyAutoBatch, true)

	result, err := evaluator.Evaluate(context.Background(), parent, props)

	assert.NoError(t, err)
	assert.False(t, result.Batched)
}

func TestEvaluate_EngineErrorPropagatesUnchanged(t *testing.T) {
	submitErr := errors.New("queue backend unavailable")
	engine := new(testutil.MockEngine)
	engine.On("Submit", mock.Anything, mock.Anything).Return(nil, submitErr)
	evaluator := newEvaluator(newTestConfig(10), engine)
	parent, props := newParent(testutil.NewTestItems(11))

	result, err := evaluator.Evaluate(context.Background(), parent, props)

	assert.ErrorIs(t, err, submitErr)
	assert.False(t, result.Batched)
}

func TestEvaluate_CallerPropertiesWinOverDefaults(t *testing.T) {
	// Settings default is 100; the caller's batchSize of 5 must control both
	// the threshold and the chunking.
	var captured *model.BatchSubmission
	engine := new(testutil.MockEngine)
	engine.On("Submit", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*model.BatchSubmission)
		}).
		Return(&testutil.MockReceipt{BatchID: "batch-1"}, nil)
	evaluator := newEvaluator(newTestConfig(100), engine)
	parent, props := newParent(testutil.NewTestItems(12), model.KeyBatchSize, 5)

	result, err := evaluator.Evaluate(context.Background(), parent, props)

	assert.NoError(t, err)
	assert.True(t, result.Batched)
	assert.Len(t, captured.Jobs, 3)
}

func TestEvaluate_DoesNotMutateCallerProperties(t *testing.T) {
	engine := new(testutil.MockEngine)
	engine.On("Submit", mock.Anything, mock.Anything).Return(&testutil.MockReceipt{BatchID: "batch-1"}, nil)
	evaluator := newEvaluator(newTestConfig(10), engine)
	parent, props := newParent(testutil.NewTestItems(11))
	keysBefore := props.Keys()

	_, err := evaluator.Evaluate(context.Background(), parent, props)

	assert.NoError(t, err)
	assert.Equal(t, keysBefore, props.Keys())
	// Defaults applied during evaluation must not leak back.
	assert.False(t, props.Has(model.KeyBatchQueue))
}

func TestEvaluate_RepeatedEvaluationIsStructurallyIdentical(t *testing.T) {
	var submissions []*model.BatchSubmission
	engine := new(testutil.MockEngine)
	engine.On("Submit", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			submissions = append(submissions, args.Get(1).(*model.BatchSubmission))
		}).
		Return(&testutil.MockReceipt{BatchID: "batch-1"}, nil)
	evaluator := newEvaluator(newTestConfig(10), engine)
	parent, props := newParent(testutil.NewTestItems(25))

	_, err := evaluator.Evaluate(context.Background(), parent, props)
	assert.NoError(t, err)
	_, err = evaluator.Evaluate(context.Background(), parent, props)
	assert.NoError(t, err)

	assert.Len(t, submissions, 2)
	assert.Equal(t, submissions[0], submissions[1])
}
