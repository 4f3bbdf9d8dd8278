package model

import (
	"bytes"
	"encoding/json"
	"sort"
)

// ItemCollection is an ordered keyed mapping from item key to opaque item
// value. It is the thing the engine splits: every key of the input appears in
// exactly one chunk, and the chunk union equals the original key set in the
// original key order.
type ItemCollection struct {
	entries []itemEntry
	index   map[string]int
}

type itemEntry struct {
	key   string
	value interface{}
}

// Chunk is one bounded-size partition of an ItemCollection.
type Chunk = ItemCollection

// NewItemCollection creates an empty ItemCollection.
func NewItemCollection() *ItemCollection {
	return &ItemCollection{index: make(map[string]int)}
}

// CollectionFrom coerces a loosely-typed value into an ItemCollection.
// Accepted shapes:
//   - *ItemCollection: returned as-is.
//   - map[string]interface{}, map[string]string: converted with keys in sorted
//     order (Go maps carry no insertion order).
//
// Any other shape is not a keyed collection and yields ok=false.
func CollectionFrom(v interface{}) (*ItemCollection, bool) {
	switch items := v.(type) {
	case *ItemCollection:
		if items == nil {
			return nil, false
		}
		return items, true
	case map[string]interface{}:
		keys := make([]string, 0, len(items))
		for k := range items {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		c := NewItemCollection()
		for _, k := range keys {
			c.Put(k, items[k])
		}
		return c, true
	case map[string]string:
		keys := make([]string, 0, len(items))
		for k := range items {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		c := NewItemCollection()
		for _, k := range keys {
			c.Put(k, items[k])
		}
		return c, true
	default:
		return nil, false
	}
}

// Put stores value under key, replacing an existing value without moving the
// key's position.
func (c *ItemCollection) Put(key string, value interface{}) {
	if pos, ok := c.index[key]; ok {
		c.entries[pos].value = value
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, itemEntry{key: key, value: value})
}

// Get returns the value stored under key.
func (c *ItemCollection) Get(key string) (interface{}, bool) {
	pos, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return c.entries[pos].value, true
}

// Len returns the number of items.
func (c *ItemCollection) Len() int {
	return len(c.entries)
}

// Keys returns the item keys in insertion order.
func (c *ItemCollection) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.key
	}
	return keys
}

// Range calls fn for each item in insertion order until fn returns false.
func (c *ItemCollection) Range(fn func(key string, value interface{}) bool) {
	for _, e := range c.entries {
		if !fn(e.key, e.value) {
			return
		}
	}
}

// MarshalJSON encodes the collection as a JSON object preserving key order.
func (c *ItemCollection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c.entries {
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
			return nil, err
		}
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
