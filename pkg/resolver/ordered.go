package resolver

import (
	"iter"
	"slices"
)

// orderedMap is a string-keyed map that iterates in insertion order.
// Overwriting a key keeps its original position. Not safe for concurrent use.
type orderedMap[V any] struct {
	keys []string
	vals map[string]V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{vals: make(map[string]V)}
}

func (m *orderedMap[V]) Get(k string) (V, bool) {
	v, ok := m.vals[k]
	return v, ok
}

func (m *orderedMap[V]) Has(k string) bool {
	_, ok := m.vals[k]
	return ok
}

func (m *orderedMap[V]) Set(k string, v V) {
	if _, ok := m.vals[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.vals[k] = v
}

func (m *orderedMap[V]) Delete(k string) bool {
	if _, ok := m.vals[k]; !ok {
		return false
	}
	delete(m.vals, k)
	if i := slices.Index(m.keys, k); i >= 0 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
	return true
}

func (m *orderedMap[V]) Len() int {
	return len(m.keys)
}

func (m *orderedMap[V]) Keys() []string {
	return slices.Clone(m.keys)
}

// All iterates over a snapshot of the keys, so the map may be modified during iteration.
func (m *orderedMap[V]) All() iter.Seq2[string, V] {
	keys := m.Keys()
	return func(yield func(string, V) bool) {
		for _, k := range keys {
			v, ok := m.vals[k]
			if !ok {
				continue
			}
			if !yield(k, v) {
				return
			}
		}
	}
}

func (m *orderedMap[V]) Clear() {
	m.keys = nil
	m.vals = make(map[string]V)
}
