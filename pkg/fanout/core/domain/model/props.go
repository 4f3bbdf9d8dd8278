package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// PropertyBag is an ordered mapping from string key to heterogeneous value.
// It represents both a parent job's configuration and each child's
// configuration. Key comparison is case-insensitive, but the spelling supplied
// when a key is first stored is preserved.
type PropertyBag struct {
	entries []propEntry
	index   map[string]int // lowercased key -> position in entries
}

type propEntry struct {
	key   string
	value interface{}
}

// NewPropertyBag creates an empty PropertyBag.
func NewPropertyBag() *PropertyBag {
	return &PropertyBag{index: make(map[string]int)}
}

// PropertyBagFrom builds a PropertyBag from a plain map. Go maps carry no
// insertion order, so keys are stored in sorted order for determinism.
func PropertyBagFrom(m map[string]interface{}) *PropertyBag {
	bag := NewPropertyBag()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		bag.Set(k, m[k])
	}
	return bag
}

// Set stores value under key. When a key already exists under a different
// spelling, the stored spelling is kept and only the value is replaced.
func (b *PropertyBag) Set(key string, value interface{}) {
	lowered := strings.ToLower(key)
	if pos, ok := b.index[lowered]; ok {
		b.entries[pos].value = value
		return
	}
	b.index[lowered] = len(b.entries)
	b.entries = append(b.entries, propEntry{key: key, value: value})
}

// SetDefault stores value under key only if the key is absent.
func (b *PropertyBag) SetDefault(key string, value interface{}) {
	if _, ok := b.index[strings.ToLower(key)]; ok {
		return
	}
	b.Set(key, value)
}

// Get returns the value stored under key (case-insensitive).
func (b *PropertyBag) Get(key string) (interface{}, bool) {
	pos, ok := b.index[strings.ToLower(key)]
	if !ok {
		return nil, false
	}
	return b.entries[pos].value, true
}

// Has reports whether key is present (case-insensitive).
func (b *PropertyBag) Has(key string) bool {
	_, ok := b.index[strings.ToLower(key)]
	return ok
}

// Delete removes key from the bag and reports whether it was present.
func (b *PropertyBag) Delete(key string) bool {
	lowered := strings.ToLower(key)
	pos, ok := b.index[lowered]
	if !ok {
		return false
	}
	b.entries = append(b.entries[:pos], b.entries[pos+1:]...)
	delete(b.index, lowered)
	// Positions after the removed entry shifted down by one.
	for k, p := range b.index {
		if p > pos {
			b.index[k] = p - 1
		}
	}
	return true
}

// Len returns the number of entries.
func (b *PropertyBag) Len() int {
	return len(b.entries)
}

// Keys returns the stored key spellings in insertion order.
func (b *PropertyBag) Keys() []string {
	keys := make([]string, len(b.entries))
	for i, e := range b.entries {
		keys[i] = e.key
	}
	return keys
}

// Range calls fn for each entry in insertion order until fn returns false.
func (b *PropertyBag) Range(fn func(key string, value interface{}) bool) {
	for _, e := range b.entries {
		if !fn(e.key, e.value) {
			return
		}
	}
}

// Clone returns a fresh PropertyBag with the same entries in the same order.
// Values are copied shallowly; the entry structure is independent.
func (b *PropertyBag) Clone() *PropertyBag {
	clone := &PropertyBag{
		entries: make([]propEntry, len(b.entries)),
		index:   make(map[string]int, len(b.index)),
	}
	copy(clone.entries, b.entries)
	for k, v := range b.index {
		clone.index[k] = v
	}
	return clone
}

// MarshalJSON encodes the bag as a JSON object preserving insertion order.
func (b *PropertyBag) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range b.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(e.key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valueJSON, err := json.Marshal(e.value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal property %q: %w", e.key, err)
		}
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving the order of its keys.
// Nested objects decode as plain maps.
func (b *PropertyBag) UnmarshalJSON(data []byte) error {
	b.entries = nil
	b.index = make(map[string]int)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("PropertyBag: expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("PropertyBag: expected string key, got %v", keyTok)
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to unmarshal property %q: %w", key, err)
		}
		b.Set(key, value)
	}

	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
