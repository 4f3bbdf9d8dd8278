package batch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
	chain "github.com/tigerroll/fanout/pkg/fanout/engine/chain"
	testutil "github.com/tigerroll/fanout/pkg/fanout/test"
)

func evaluateCapturing(t *testing.T, size int, parent *testutil.StubParentJob, props *model.PropertyBag) *model.BatchSubmission {
	t.Helper()
	var captured *model.BatchSubmission
	engine := new(testutil.MockEngine)
	engine.On("Submit", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*model.BatchSubmission)
		}).
		Return(&testutil.MockReceipt{BatchID: "batch-1"}, nil)

	evaluator := newEvaluator(newTestConfig(size), engine)
	result, err := evaluator.Evaluate(context.Background(), parent, props)
	assert.NoError(t, err)
	assert.True(t, result.Batched)
	assert.NotNil(t, captured)
	return captured
}

func TestDispatch_SubmissionShape(t *testing.T) {
	parent, props := newParent(testutil.NewTestItems(25),
		model.KeyBatchQueue, "imports",
		model.KeyBatchMaxAttempts, 3,
		model.KeyBatchBackoff, 15,
		model.KeyBatchTimeout, 900,
	)

	submission := evaluateCapturing(t, 10, parent, props)

	assert.Equal(t, "orders.import", submission.Name)
	assert.Equal(t, "imports", submission.Queue)
	assert.Equal(t, "default", submission.Connection)
	assert.Equal(t, 3, submission.MaxAttempts)
	assert.Equal(t, 15, submission.BackoffSeconds)
	assert.Equal(t, 900, submission.TimeoutSeconds)
	assert.True(t, submission.AllowFailures)
	assert.Len(t, submission.Jobs, 3)
}

func TestDispatch_ChildrenCarryTrackingFieldsInChunkOrder(t *testing.T) {
	parent, props := newParent(testutil.NewTestItems(25))

	submission := evaluateCapturing(t, 10, parent, props)

	assert.Len(t, submission.Jobs, 3)
	for i, job := range submission.Jobs {
		assert.Equal(t, "orders.import", job.Mapping)

		index, _ := job.Properties.Get(model.KeyBatchIndex)
		assert.Equal(t, i+1, index)
		total, _ := job.Properties.Get(model.KeyBatchTotal)
		assert.Equal(t, 3, total)
		isChild, _ := job.Properties.Get(model.KeyIsBatchChild)
		assert.Equal(t, true, isChild)
		autoBatch, _ := job.Properties.Get(model.KeyAutoBatch)
		assert.Equal(t, false, autoBatch)
	}

	// Chunk sizes follow key order: 10, 10, 5.
	first, _ := submission.Jobs[0].Properties.Get(model.DefaultItemsKey)
	last, _ := submission.Jobs[2].Properties.Get(model.DefaultItemsKey)
	assert.Equal(t, 10, first.(*model.ItemCollection).Len())
	assert.Equal(t, 5, last.(*model.ItemCollection).Len())
	assert.Equal(t, "item-0", first.(*model.ItemCollection).Keys()[0])
}

func TestDispatch_FinallyFallsBackToCompletionJob(t *testing.T) {
	parent, props := newParent(testutil.NewTestItems(11))

	submission := evaluateCapturing(t, 10, parent, props)

	assert.NotNil(t, submission.Finally)
	assert.Equal(t, chain.CompletionMapping, submission.Finally.Mapping)
	origin, _ := submission.Finally.Properties.Get("origin")
	assert.Equal(t, "orders.import", origin)
}

func TestDispatch_ParentChainPrecedesFinallyAppendix(t *testing.T) {
	report := model.NewJobDescriptor("reports.summarize", nil)
	cleanup := model.NewJobDescriptor("cleanup", nil)
	parent, props := newParent(testutil.NewTestItems(11), model.KeyBatchFinally, cleanup)
	parent.JobChain = []*model.JobDescriptor{report}

	submission := evaluateCapturing(t, 10, parent, props)

	assert.Equal(t, "reports.summarize", submission.Finally.Mapping)
	assert.Len(t, submission.Finally.Chain, 1)
	assert.Same(t, cleanup, submission.Finally.Chain[0])
}

func TestDispatch_CustomItemsKeyAndIDKey(t *testing.T) {
	items := testutil.NewTestItems(11)
	parent, props := newParent(nil,
		model.KeyBatchItemsKey, "orderRows",
		model.KeyBatchIDKey, "orderIds",
	)
	props.Set("orderRows", items)

	submission := evaluateCapturing(t, 10, parent, props)

	job := submission.Jobs[0]
	chunk, ok := job.Properties.Get("orderRows")
	assert.True(t, ok)
	ids, ok := job.Properties.Get("orderIds")
	assert.True(t, ok)
	assert.Equal(t, chunk.(*model.ItemCollection).Keys(), ids)
}

func TestDispatch_AllowFailuresFalseIsRespected(t *testing.T) {
	parent, props := newParent(testutil.NewTestItems(11), model.KeyBatchAllowFailures, false)

	submission := evaluateCapturing(t, 10, parent, props)

	assert.False(t, submission.AllowFailures)
}

func TestDispatch_NotifiesBatchCreationAndDispatch(t *testing.T) {
	parent, props := newParent(testutil.NewTestItems(11))

	evaluateCapturing(t, 10, parent, props)

	assert.Len(t, parent.Messages, 2)
	assert.Contains(t, parent.Messages[0], "Batch created")
	assert.Contains(t, parent.Messages[1], "Dispatching batch")
}
