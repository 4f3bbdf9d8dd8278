// Package chain normalizes heterogeneous "job-like" inputs into an ordered
// finally-chain. The caller-supplied value is classified once into a
// model.ChainInput variant at the boundary; this package holds the one
// normalization routine per variant.
package chain

import (
	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
	logger "github.com/tigerroll/fanout/pkg/fanout/support/util/logger"
	props "github.com/tigerroll/fanout/pkg/fanout/support/util/props"
)

// CompletionMapping is the job type of the synthesized completion job used
// when neither the parent chain nor the appendix contributes anything. A batch
// must always terminate in some observable completion signal.
const CompletionMapping = "fanout.batch_completed"

// Accepted key names for loose descriptor maps. For each field the first
// present key wins.
const (
	keyMapping    = "mapping"
	keyMappingAlt = "job"
	keyChain      = "chain"
	keyChainAlt   = "chained"
)

// Defaults supplies the per-field fallbacks used while translating loose
// descriptors and synthesizing the completion job.
type Defaults struct {
	Queue          string
	Connection     string
	TimeoutSeconds int
}

// Translator merges a parent's existing chain with an appended finally value.
type Translator struct {
	defaults Defaults
}

// NewTranslator creates a Translator with the given defaults.
func NewTranslator(defaults Defaults) *Translator {
	return &Translator{defaults: defaults}
}

// Attach computes the finally step for a batch: the parent's existing chained
// jobs, in their original order, followed by whatever the appendix contributes,
// in appendix order. Chained work the caller had already attached always runs
// before newly appended finally work.
//
// If nothing contributes, a default completion job parameterized with
// fallbackLabel is synthesized. One contributed job is returned directly; more
// than one are composed into a single ordered chain descriptor.
func (t *Translator) Attach(existing []*model.JobDescriptor, appendix model.ChainInput, fallbackLabel string) *model.JobDescriptor {
	jobs := make([]*model.JobDescriptor, 0, len(existing)+1)
	for _, job := range existing {
		if job != nil {
			jobs = append(jobs, job)
		}
	}
	jobs = append(jobs, t.normalize(appendix)...)

	if len(jobs) == 0 {
		return t.completionJob(fallbackLabel)
	}
	return model.ComposeChain(jobs)
}

// normalize translates one ChainInput variant into its ordered contribution.
func (t *Translator) normalize(input model.ChainInput) []*model.JobDescriptor {
	switch input.Kind() {
	case model.ChainInputSingle:
		return []*model.JobDescriptor{input.Single()}
	case model.ChainInputList:
		return t.normalizeList(input.List())
	case model.ChainInputDescriptor:
		if d := t.translateDescriptor(input.Descriptor()); d != nil {
			return []*model.JobDescriptor{d}
		}
		return nil
	default:
		return nil
	}
}

// normalizeList keeps list elements that are valid job handles, in list order.
// Anything else is dropped silently rather than aborting the whole chain.
func (t *Translator) normalizeList(list []interface{}) []*model.JobDescriptor {
	out := make([]*model.JobDescriptor, 0, len(list))
	for _, element := range list {
		if d, ok := element.(*model.JobDescriptor); ok && d != nil {
			out = append(out, d)
		}
	}
	return out
}

// translateDescriptor turns a loose descriptor map into a JobDescriptor using
// field-by-field type-checked extraction. A map without a non-empty job-type
// field contributes nothing.
func (t *Translator) translateDescriptor(m map[string]interface{}) *model.JobDescriptor {
	mapping := props.MapString(m, keyMapping, "")
	if mapping == "" {
		mapping = props.MapString(m, keyMappingAlt, "")
	}
	if mapping == "" {
		logger.Debugf("Chain: dropping descriptor map without a job type (keys checked: %q, %q).", keyMapping, keyMappingAlt)
		return nil
	}

	properties := model.NewPropertyBag()
	if raw, ok := m["properties"].(map[string]interface{}); ok {
		properties = model.PropertyBagFrom(raw)
	}

	d := model.NewJobDescriptor(mapping, properties).
		OnQueue(props.MapString(m, "queue", "default")).
		OnConnection(props.MapString(m, "connection", "default")).
		WithBackoff(props.MapInt(m, "backoff", 0)).
		WithTimeout(props.MapInt(m, "timeout", t.defaults.TimeoutSeconds)).
		WithMaxAttempts(props.MapInt(m, "maxAttempts", 1))

	raw, ok := m[keyChain]
	if !ok {
		raw = m[keyChainAlt]
	}
	if list, ok := raw.([]interface{}); ok {
		for _, element := range list {
			switch chained := element.(type) {
			case *model.JobDescriptor:
				if chained != nil {
					d.Chained(chained)
				}
			case map[string]interface{}:
				if translated := t.translateDescriptor(chained); translated != nil {
					d.Chained(translated)
				}
			}
		}
	}
	return d
}

// completionJob synthesizes the default "batch complete" notification job for
// the given originating job-type label.
func (t *Translator) completionJob(label string) *model.JobDescriptor {
	properties := model.NewPropertyBag()
	properties.Set("origin", label)
	return model.NewJobDescriptor(CompletionMapping, properties).
		OnQueue(t.defaults.Queue).
		OnConnection(t.defaults.Connection)
}
