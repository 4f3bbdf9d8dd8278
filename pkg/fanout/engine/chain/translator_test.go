package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
	chain "github.com/tigerroll/fanout/pkg/fanout/engine/chain"
)

func newTranslator() *chain.Translator {
	return chain.NewTranslator(chain.Defaults{
		Queue:          "default",
		Connection:     "default",
		TimeoutSeconds: 3600,
	})
}

func TestAttach_NothingContributesSynthesizesCompletionJob(t *testing.T) {
	tr := newTranslator()

	finally := tr.Attach(nil, model.ResolveChainInput(nil), "orders.import")

	assert.Equal(t, chain.CompletionMapping, finally.Mapping)
	origin, _ := finally.Properties.Get("origin")
	assert.Equal(t, "orders.import", origin)
	assert.Equal(t, "default", finally.Queue)
}

func TestAttach_ExistingChainRunsBeforeAppendix(t *testing.T) {
	tr := newTranslator()
	a := model.NewJobDescriptor("a", nil)
	b := model.NewJobDescriptor("b", nil)
	c := model.NewJobDescriptor("c", nil)

	finally := tr.Attach([]*model.JobDescriptor{a, b}, model.ResolveChainInput(c), "orders.import")

	assert.Equal(t, "a", finally.Mapping)
	assert.Len(t, finally.Chain, 2)
	assert.Same(t, b, finally.Chain[0])
	assert.Same(t, c, finally.Chain[1])
}

func TestAttach_SingleContributionReturnedDirectly(t *testing.T) {
	tr := newTranslator()
	only := model.NewJobDescriptor("cleanup", nil)

	finally := tr.Attach(nil, model.ResolveChainInput(only), "orders.import")

	assert.Same(t, only, finally)
}

func TestAttach_ListDropsNonJobElements(t *testing.T) {
	tr := newTranslator()
	a := model.NewJobDescriptor("a", nil)
	b := model.NewJobDescriptor("b", nil)
	appendix := model.ResolveChainInput([]interface{}{a, "junk", 42, nil, b})

	finally := tr.Attach(nil, appendix, "orders.import")

	assert.Equal(t, "a", finally.Mapping)
	assert.Len(t, finally.Chain, 1)
	assert.Same(t, b, finally.Chain[0])
}

func TestAttach_LooseDescriptorTranslation(t *testing.T) {
	tr := newTranslator()
	appendix := model.ResolveChainInput(map[string]interface{}{
		"mapping": "reports.summarize",
		"queue":   "reports",
		"timeout": 120,
		"properties": map[string]interface{}{
			"format": "csv",
		},
	})

	finally := tr.Attach(nil, appendix, "orders.import")

	assert.Equal(t, "reports.summarize", finally.Mapping)
	assert.Equal(t, "reports", finally.Queue)
	assert.Equal(t, "default", finally.Connection)
	assert.Equal(t, 120, finally.TimeoutSeconds)
	assert.Equal(t, 1, finally.MaxAttempts)
	format, _ := finally.Properties.Get("format")
	assert.Equal(t, "csv", format)
}

func TestAttach_LooseDescriptorAcceptsJobKey(t *testing.T) {
	tr := newTranslator()
	appendix := model.ResolveChainInput(map[string]interface{}{"job": "notify.ops"})

	finally := tr.Attach(nil, appendix, "orders.import")

	assert.Equal(t, "notify.ops", finally.Mapping)
	// Unset fields fall back: default queue, settings timeout.
	assert.Equal(t, "default", finally.Queue)
	assert.Equal(t, 3600, finally.TimeoutSeconds)
}

func TestAttach_DescriptorWithoutJobTypeFallsBackToCompletion(t *testing.T) {
	tr := newTranslator()
	appendix := model.ResolveChainInput(map[string]interface{}{"queue": "reports"})

	finally := tr.Attach(nil, appendix, "orders.import")

	assert.Equal(t, chain.CompletionMapping, finally.Mapping)
}

func TestAttach_LooseDescriptorNestedChain(t *testing.T) {
	tr := newTranslator()
	tail := model.NewJobDescriptor("tail", nil)
	appendix := model.ResolveChainInput(map[string]interface{}{
		"mapping": "head",
		"chained": []interface{}{
			map[string]interface{}{"mapping": "middle"},
			tail,
		},
	})

	finally := tr.Attach(nil, appendix, "orders.import")

	assert.Equal(t, "head", finally.Mapping)
	assert.Len(t, finally.Chain, 2)
	assert.Equal(t, "middle", finally.Chain[0].Mapping)
	assert.Same(t, tail, finally.Chain[1])
}
