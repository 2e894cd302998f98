package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedMap(t *testing.T) {
	m := newOrderedMap[int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)
	m.Set("b", 10)

	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 10, v)

	assert.True(t, m.Delete("a"))
	assert.False(t, m.Delete("a"))
	assert.Equal(t, 2, m.Len())

	var seen []string
	for k := range m.All() {
		seen = append(seen, k)
		m.Delete("c")
	}
	assert.Equal(t, []string{"b"}, seen)

	m.Clear()
	assert.Zero(t, m.Len())
	assert.False(t, m.Has("b"))
}
