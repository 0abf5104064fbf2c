package profile

import (
	"encoding/json"
	"math"
	"strconv"
)

// Object and Array are the decoded shapes of JSON objects and arrays.
type (
	Object = map[string]any
	Array  = []any
)

func AsObject(v any) (Object, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

func AsArray(v any) (Array, bool) {
	a, ok := v.([]any)
	return a, ok
}

// Child returns the object stored at key, if any.
func Child(m Object, key string) (Object, bool) {
	if m == nil {
		return nil, false
	}
	return AsObject(m[key])
}

// Walk follows a chain of object keys. A missing or non-object link stops
// the walk.
func Walk(m Object, keys ...string) (Object, bool) {
	cur := m
	for _, k := range keys {
		next, ok := Child(cur, k)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, cur != nil
}

// ArrayAt returns the array stored at key, if any.
func ArrayAt(m Object, key string) (Array, bool) {
	if m == nil {
		return nil, false
	}
	return AsArray(m[key])
}

func String(m Object, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	s, ok := m[key].(string)
	return s, ok
}

// IsNull reports whether key is present and holds JSON null.
func IsNull(m Object, key string) bool {
	if m == nil {
		return false
	}
	v, ok := m[key]
	return ok && v == nil
}

func Has(m Object, key string) bool {
	if m == nil {
		return false
	}
	_, ok := m[key]
	return ok
}

// Number converts a decoded JSON number to float64. Strings are not numbers.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Int converts a decoded JSON number to int when it holds an integral value.
func Int(v any) (int, bool) {
	if n, ok := v.(json.Number); ok {
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return int(i), true
		}
	}
	f, ok := Number(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// Bool reports the boolean stored at key and whether one was present.
func Bool(m Object, key string) (val bool, ok bool) {
	if m == nil {
		return false, false
	}
	val, ok = m[key].(bool)
	return val, ok
}
