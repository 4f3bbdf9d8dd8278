package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
	chunk "github.com/tigerroll/fanout/pkg/fanout/engine/chunk"
	testutil "github.com/tigerroll/fanout/pkg/fanout/test"
)

func TestSplit_EmptyInputYieldsNoChunks(t *testing.T) {
	assert.Nil(t, chunk.Split(nil, 10))
	assert.Nil(t, chunk.Split(model.NewItemCollection(), 10))
}

func TestSplit_CountAndSizes(t *testing.T) {
	items := testutil.NewTestItems(25)

	chunks := chunk.Split(items, 10)

	assert.Len(t, chunks, 3)
	assert.Equal(t, 10, chunks[0].Len())
	assert.Equal(t, 10, chunks[1].Len())
	assert.Equal(t, 5, chunks[2].Len())
}

func TestSplit_ExactMultipleHasNoEmptyTail(t *testing.T) {
	items := testutil.NewTestItems(20)

	chunks := chunk.Split(items, 10)

	assert.Len(t, chunks, 2)
	for _, c := range chunks {
		assert.Equal(t, 10, c.Len())
	}
}

func TestSplit_PreservesKeyOrderAndCompleteness(t *testing.T) {
	items := testutil.NewTestItems(7)

	chunks := chunk.Split(items, 3)

	var reassembled []string
	for _, c := range chunks {
		reassembled = append(reassembled, c.Keys()...)
	}
	assert.Equal(t, items.Keys(), reassembled)

	// Values travel with their keys.
	v, ok := chunks[2].Get("item-6")
	assert.True(t, ok)
	assert.Equal(t, 6, v)
}

func TestSplit_NonPositiveSizeClampsToOne(t *testing.T) {
	items := testutil.NewTestItems(3)

	chunks := chunk.Split(items, 0)

	assert.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.Equal(t, 1, c.Len())
	}
}
