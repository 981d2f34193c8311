package rbtreepmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qntx/rbcontainer/rbtreepmap"
)

func TestPmapAtByRank(t *testing.T) {
	t.Parallel()

	m := rbtreepmap.New[int, string]()
	m.Insert(3, "c")
	m.Insert(1, "a")
	m.Insert(2, "b")

	k, v, ok := m.At(1)
	require.True(t, ok)
	assert.Equal(t, 2, k)
	assert.Equal(t, "b", v)
}

func TestPmapGetOrInsert(t *testing.T) {
	t.Parallel()

	m := rbtreepmap.New[string, int]()

	p := m.GetOrInsert("x")
	*p = 42

	v, err := m.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestPmapIndexOf(t *testing.T) {
	t.Parallel()

	m := rbtreepmap.New[int, string]()
	m.Insert(10, "a")
	m.Insert(20, "b")
	m.Insert(30, "c")

	it, ok := m.Find(20)
	require.True(t, ok)

	idx, err := m.IndexOf(it)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}
