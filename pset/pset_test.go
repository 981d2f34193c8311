package pset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qntx/rbcontainer/pset"
)

func sliceSeq(values []int) func(yield func(int) bool) {
	return func(yield func(int) bool) {
		for _, v := range values {
			if !yield(v) {
				return
			}
		}
	}
}

// TestScenarioRankSelect: into an empty pset, insert 0..99 in scrambled
// order, then check At/Find/cursor arithmetic.
func TestScenarioRankSelect(t *testing.T) {
	t.Parallel()

	s := pset.New[int]()
	for _, v := range []int{57, 3, 99, 0, 42, 12} {
		s.Insert(v)
	}

	for i := 0; i < 100; i++ {
		if i != 57 && i != 3 && i != 99 && i != 0 && i != 42 && i != 12 {
			s.Insert(i)
		}
	}

	require.Equal(t, 100, s.Len())

	v, ok := s.At(37)
	require.True(t, ok)
	assert.Equal(t, 37, v)

	it, ok := s.Find(42)
	require.True(t, ok)

	idx, err := s.IndexOf(it)
	require.NoError(t, err)
	assert.Equal(t, 42, idx)

	begin, end := s.Begin(), s.End()
	diff, err := end.Compare(begin)
	require.NoError(t, err)
	assert.Equal(t, 100, diff)
}

// TestScenarioEraseAtIndex: erase the cursor at index 2 out of
// {10,20,30,40,50}; 40 slides down into rank 2.
func TestScenarioEraseAtIndex(t *testing.T) {
	t.Parallel()

	s := pset.New(10, 20, 30, 40, 50)

	it := s.Begin()
	advanced, err := it.Add(2)
	require.NoError(t, err)
	assert.Equal(t, 30, advanced.Key())

	next, err := s.Erase(advanced)
	require.NoError(t, err)

	assert.Equal(t, []int{10, 20, 40, 50}, s.Values())
	assert.Equal(t, 40, next.Key())

	idx, err := s.IndexOf(next)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

// TestScenarioAscendingBuildPowerOfTwo: an ascending-build of [1..8]
// succeeds with every element reachable by rank.
func TestScenarioAscendingBuildPowerOfTwo(t *testing.T) {
	t.Parallel()

	s, err := pset.NewAscending(sliceSeq([]int{1, 2, 3, 4, 5, 6, 7, 8}))
	require.NoError(t, err)
	require.Equal(t, 8, s.Len())

	v, ok := s.At(0)
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = s.At(7)
	require.True(t, ok)
	assert.Equal(t, 8, v)
}

func TestPsetEqualRangeAndCount(t *testing.T) {
	t.Parallel()

	s := pset.New(1, 2, 3, 4, 5)

	lo, hi := s.EqualRange(3)
	a, err := s.IndexOf(lo)
	require.NoError(t, err)

	b, err := s.IndexOf(hi)
	require.NoError(t, err)

	assert.Equal(t, 1, b-a)
	assert.Equal(t, 1, s.Count(3))
	assert.Equal(t, 0, s.Count(100))
}

func TestPsetExtractAndInsertNode(t *testing.T) {
	t.Parallel()

	s := pset.New(1, 2, 3, 4)

	handle := s.ExtractKey(2)
	require.NotNil(t, handle)
	assert.Equal(t, 3, s.Len())

	result := s.InsertNode(handle)
	assert.True(t, result.Inserted)
	assert.Equal(t, 4, s.Len())
}
