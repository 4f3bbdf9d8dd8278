package model

// ChainInputKind enumerates the accepted shapes of a caller-supplied
// "run this after" value. The shape is resolved exactly once at the boundary;
// downstream code switches on the kind instead of repeating type checks.
type ChainInputKind int

const (
	// ChainInputEmpty contributes nothing.
	ChainInputEmpty ChainInputKind = iota
	// ChainInputSingle is one already-constructed job descriptor.
	ChainInputSingle
	// ChainInputList is a list of job handles or loose descriptors.
	ChainInputList
	// ChainInputDescriptor is a loosely-typed descriptor map.
	ChainInputDescriptor
)

// ChainInput is the closed tagged variant over caller-supplied chain values.
type ChainInput struct {
	kind       ChainInputKind
	single     *JobDescriptor
	list       []interface{}
	descriptor map[string]interface{}
}

// ResolveChainInput classifies a loosely-typed value into a ChainInput.
// Absent values, zero-length strings, and any shape that is not a job handle,
// a list, or a descriptor map resolve to the Empty variant.
func ResolveChainInput(v interface{}) ChainInput {
	switch value := v.(type) {
	case nil:
		return ChainInput{kind: ChainInputEmpty}
	case string:
		// Only the zero-length string is a recognized "no chain" marker; any
		// other string is not a job shape and likewise contributes nothing.
		return ChainInput{kind: ChainInputEmpty}
	case *JobDescriptor:
		if value == nil {
			return ChainInput{kind: ChainInputEmpty}
		}
		return ChainInput{kind: ChainInputSingle, single: value}
	case []*JobDescriptor:
		list := make([]interface{}, len(value))
		for i, d := range value {
			list[i] = d
		}
		return ChainInput{kind: ChainInputList, list: list}
	case []interface{}:
		return ChainInput{kind: ChainInputList, list: value}
	case map[string]interface{}:
		return ChainInput{kind: ChainInputDescriptor, descriptor: value}
	default:
		return ChainInput{kind: ChainInputEmpty}
	}
}

// Kind returns the resolved variant.
func (c ChainInput) Kind() ChainInputKind {
	return c.kind
}

// Single returns the job handle of a Single variant.
func (c ChainInput) Single() *JobDescriptor {
	return c.single
}

// List returns the elements of a List variant.
func (c ChainInput) List() []interface{} {
	return c.list
}

// Descriptor returns the map of a Descriptor variant.
func (c ChainInput) Descriptor() map[string]interface{} {
	return c.descriptor
}
