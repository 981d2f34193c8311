package pmultiset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qntx/rbcontainer/pmultiset"
)

func TestPmultisetRankWithDuplicates(t *testing.T) {
	t.Parallel()

	s := pmultiset.New(1, 1, 2, 3, 3, 3)
	require.Equal(t, 6, s.Len())

	assert.Equal(t, 3, s.Count(3))

	v, ok := s.At(0)
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = s.At(5)
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestPmultisetIndexOfAfterErase(t *testing.T) {
	t.Parallel()

	s := pmultiset.New(10, 10, 20, 30)

	it := s.Begin()

	next, err := s.Erase(it)
	require.NoError(t, err)
	assert.Equal(t, 10, next.Key())

	assert.Equal(t, []int{10, 20, 30}, s.Values())

	remaining, ok := s.Find(20)
	require.True(t, ok)

	idx, err := s.IndexOf(remaining)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestPmultisetMergeNeverRejects(t *testing.T) {
	t.Parallel()

	a := pmultiset.New(1, 2)
	b := pmultiset.New(2, 2)

	a.Merge(b)

	assert.Equal(t, 4, a.Len())
	assert.True(t, b.Empty())
}
