package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDMap_SetAndResolve(t *testing.T) {
	m := NewIDMap()
	m.Set(KindUser, "u-old", "u-new")
	m.Set(KindTag, "t-old", "t-new")

	id, ok := m.Resolve(KindUser, "u-old")
	assert.True(t, ok)
	assert.Equal(t, "u-new", id)

	_, ok = m.Resolve(KindTag, "u-old")
	assert.False(t, ok, "kinds must not share ids")

	_, ok = m.Resolve(KindUser, "")
	assert.False(t, ok)

	assert.Equal(t, 1, m.Len(KindUser))
	assert.Equal(t, 0, m.Len(KindCard))
}

func TestIDMap_ResolveAllKeepsOrderAndDropsUnknown(t *testing.T) {
	m := NewIDMap()
	m.Set(KindTag, "a", "A")
	m.Set(KindTag, "c", "C")

	assert.Equal(t, []string{"C", "A"}, m.ResolveAll(KindTag, []string{"c", "b", "a"}))

	empty := m.ResolveAll(KindTag, []string{"x"})
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestIDMap_SetOverwrites(t *testing.T) {
	m := NewIDMap()
	m.Set(KindColumn, "c1", "first")
	m.Set(KindColumn, "c1", "second")

	id, _ := m.Resolve(KindColumn, "c1")
	assert.Equal(t, "second", id)
	assert.Equal(t, 1, m.Len(KindColumn))
}
