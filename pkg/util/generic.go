package util

import (
	"encoding/json"

	"github.com/iancoleman/orderedmap"
)

// Select returns a if sel is true, otherwise b. Handy for avoiding a
// four-line if/else when picking between two simple values.
func Select[T any](sel bool, a, b T) T {
	if sel {
		return a
	}
	return b
}

// OrderedMap is an insertion-ordered map from string keys to values of
// type V. Procedure containers (SID/STAR runway and transition tables)
// use this so that iterating returns legs in the order they appeared in
// the CIFP file rather than Go's randomized map order.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

// Set inserts or updates the value for key, appending it to the
// iteration order the first time it is seen.
func (o *OrderedMap[V]) Set(key string, v V) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func (o *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *OrderedMap[V]) Keys() []string {
	return o.keys
}

func (o *OrderedMap[V]) Len() int {
	return len(o.keys)
}

// Values returns the map's values in insertion order.
func (o *OrderedMap[V]) Values() []V {
	vs := make([]V, 0, len(o.keys))
	for _, k := range o.keys {
		vs = append(vs, o.values[k])
	}
	return vs
}

// DebugJSON renders the map via github.com/iancoleman/orderedmap so that
// debug dumps of procedure indices preserve key order when marshalled;
// V is flattened to interface{} through a JSON round-trip since
// orderedmap.OrderedMap only stores interface{} values.
func (o *OrderedMap[V]) DebugJSON() ([]byte, error) {
	om := orderedmap.New()
	for _, k := range o.keys {
		b, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		var v interface{}
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, err
		}
		om.Set(k, v)
	}
	return json.Marshal(om)
}
