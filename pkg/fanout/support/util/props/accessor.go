// Package props provides type-checked extraction from loosely-typed property
// bags and descriptor maps. Every accessor takes an expected kind and a
// default: a missing key or a value of the wrong kind yields the default
// instead of an error, which is the per-field fallback rule used throughout
// the batching engine.
package props

import (
	"encoding/json"

	model "github.com/tigerroll/fanout/pkg/fanout/core/domain/model"
)

// String returns the string stored under key, or def when the key is absent
// or holds a non-string value.
func String(bag *model.PropertyBag, key, def string) string {
	v, ok := bag.Get(key)
	if !ok {
		return def
	}
	s, ok := asString(v)
	if !ok {
		return def
	}
	return s
}

// Int returns the integer stored under key, or def. Numeric widening is
// applied (whole-valued floats and json.Number are accepted); strings are not
// converted.
func Int(bag *model.PropertyBag, key string, def int) int {
	v, ok := bag.Get(key)
	if !ok {
		return def
	}
	n, ok := asInt(v)
	if !ok {
		return def
	}
	return n
}

// Bool returns the boolean stored under key, or def.
func Bool(bag *model.PropertyBag, key string, def bool) bool {
	v, ok := bag.Get(key)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// Float returns the float stored under key, or def.
func Float(bag *model.PropertyBag, key string, def float64) float64 {
	v, ok := bag.Get(key)
	if !ok {
		return def
	}
	f, ok := asFloat(v)
	if !ok {
		return def
	}
	return f
}

// StringSlice returns the list of strings stored under key, or def. A mixed
// []interface{} contributes only its string elements; empty strings are
// dropped.
func StringSlice(bag *model.PropertyBag, key string, def []string) []string {
	v, ok := bag.Get(key)
	if !ok {
		return def
	}
	ss, ok := asStringSlice(v)
	if !ok {
		return def
	}
	return ss
}

// MapString is String over a plain descriptor map.
func MapString(m map[string]interface{}, key, def string) string {
	v, ok := m[key]
	if !ok {
		return def
	}
	s, ok := asString(v)
	if !ok {
		return def
	}
	return s
}

// MapInt is Int over a plain descriptor map.
func MapInt(m map[string]interface{}, key string, def int) int {
	v, ok := m[key]
	if !ok {
		return def
	}
	n, ok := asInt(v)
	if !ok {
		return def
	}
	return n
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
		return 0, false
	case float32:
		if n == float32(int(n)) {
			return int(n), true
		}
		return 0, false
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func asStringSlice(v interface{}) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		out := make([]string, 0, len(list))
		for _, s := range list {
			if s != "" {
				out = append(out, s)
			}
		}
		return out, true
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, e := range list {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}
