package rbtree_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qntx/rbcontainer/rbtree"
)

func TestTreePutGet(t *testing.T) {
	t.Parallel()

	tree := rbtree.New[int, string]()

	if got := tree.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}

	tree.Put(5, "e")
	tree.Put(6, "f")
	tree.Put(7, "g")
	tree.Put(3, "c")
	tree.Put(4, "d")
	tree.Put(1, "x")
	tree.Put(2, "b")
	tree.Put(1, "a") // overwrite

	if got := tree.Len(); got != 7 {
		t.Errorf("Len() = %d, want 7", got)
	}

	fmt.Println(tree)

	for k, want := range map[int]string{1: "a", 2: "b", 3: "c", 4: "d", 5: "e", 6: "f", 7: "g"} {
		got, found := tree.Get(k)
		if !found {
			t.Errorf("Get(%d) not found", k)
		}

		if got != want {
			t.Errorf("Get(%d) = %q, want %q", k, got, want)
		}
	}

	if _, found := tree.Get(8); found {
		t.Errorf("Get(8) found, want not found")
	}
}

func TestTreeMultiAllowsDuplicates(t *testing.T) {
	t.Parallel()

	tree := rbtree.NewMulti[int, string]()
	tree.Put(1, "a")
	tree.Put(1, "b")
	tree.Put(1, "c")

	require.Equal(t, 3, tree.Len())
	require.Equal(t, 3, tree.Count(1))

	lo, hi := tree.EqualRange(1)
	require.NotNil(t, lo)
	require.Nil(t, hi) // every element equals 1, so UpperBound is past the end
}

func TestTreeDeleteMaintainsOrder(t *testing.T) {
	t.Parallel()

	tree := rbtree.New[int, int]()
	for i := 0; i < 100; i++ {
		tree.Put(i, i*i)
	}

	for i := 0; i < 100; i += 2 {
		if !tree.Delete(i) {
			t.Fatalf("Delete(%d) = false, want true", i)
		}
	}

	require.Equal(t, 50, tree.Len())
	assertInOrder(t, tree)

	for i := 1; i < 100; i += 2 {
		v, found := tree.Get(i)
		assert.True(t, found)
		assert.Equal(t, i*i, v)
	}

	for i := 0; i < 100; i += 2 {
		if _, found := tree.Get(i); found {
			t.Errorf("Get(%d) found after delete", i)
		}
	}
}

func TestTreeFloorCeiling(t *testing.T) {
	t.Parallel()

	tree := rbtree.New[int, string]()
	for _, k := range []int{2, 4, 6, 8} {
		tree.Put(k, fmt.Sprint(k))
	}

	cases := []struct {
		key         int
		floorWant   int
		ceilingWant int
		floorOK     bool
		ceilingOK   bool
	}{
		{1, 0, 2, false, true},
		{2, 2, 2, true, true},
		{5, 4, 6, true, true},
		{9, 8, 0, true, false},
	}

	for _, c := range cases {
		floor, ok := tree.Floor(c.key)
		assert.Equal(t, c.floorOK, ok, "Floor(%d) ok", c.key)

		if c.floorOK {
			require.NotNil(t, floor, "Floor(%d)", c.key)
			assert.Equal(t, c.floorWant, floor.Key)
		}

		ceiling, ok := tree.Ceiling(c.key)
		assert.Equal(t, c.ceilingOK, ok, "Ceiling(%d) ok", c.key)

		if c.ceilingOK {
			require.NotNil(t, ceiling, "Ceiling(%d)", c.key)
			assert.Equal(t, c.ceilingWant, ceiling.Key)
		}
	}
}

func TestTreePutHintAttachesNearHint(t *testing.T) {
	t.Parallel()

	tree := rbtree.New[int, int]()
	for i := 0; i < 20; i++ {
		tree.Put(i*2, i)
	}

	hint := tree.GetNode(10)
	node, inserted := tree.PutHint(hint, 11, -1)
	require.True(t, inserted)
	require.Equal(t, 11, node.Key)

	assertInOrder(t, tree)

	v, found := tree.Get(11)
	require.True(t, found)
	require.Equal(t, -1, v)
}

func TestTreePutHintFallsBackWhenInvalid(t *testing.T) {
	t.Parallel()

	tree := rbtree.New[int, int]()
	for i := 0; i < 20; i++ {
		tree.Put(i*2, i)
	}

	hint := tree.GetNode(10)
	// 100 does not belong anywhere near the hint node for key 10: the hint
	// is rejected and Put's ordinary search path is used instead.
	node, inserted := tree.PutHint(hint, 100, -1)
	require.True(t, inserted)
	require.Equal(t, 100, node.Key)

	assertInOrder(t, tree)
}

func TestTreeExtractInsertNodeRoundTrip(t *testing.T) {
	t.Parallel()

	tree := rbtree.New[int, string]()
	for i := 0; i < 10; i++ {
		tree.Put(i, fmt.Sprint(i))
	}

	node := tree.GetNode(5)
	handle := tree.Extract(node)

	require.Equal(t, 9, tree.Len())
	require.False(t, tree.Contains(5))
	require.False(t, handle.Empty())
	require.Equal(t, 5, handle.Key())
	require.Equal(t, "5", handle.Value())

	handle.SetValue("five")

	reinserted, ok := tree.InsertNode(handle)
	require.True(t, ok)
	require.Equal(t, 5, reinserted.Key)
	require.True(t, handle.Empty())

	v, found := tree.Get(5)
	require.True(t, found)
	require.Equal(t, "five", v)
	require.Equal(t, 10, tree.Len())
}

func TestTreeExtractInsertNodeIntoDifferentKeySlot(t *testing.T) {
	t.Parallel()

	tree := rbtree.New[int, string]()
	tree.Put(1, "a")

	node := tree.GetNode(1)
	handle := tree.Extract(node)
	require.True(t, tree.Empty())

	reinserted, ok := tree.InsertNode(handle)
	require.True(t, ok)
	require.Equal(t, 1, reinserted.Key)
	require.Equal(t, 1, tree.Len())
}

func TestTreeCloneIsIndependent(t *testing.T) {
	t.Parallel()

	tree := rbtree.New[int, int]()
	for i := 0; i < 10; i++ {
		tree.Put(i, i)
	}

	clone := tree.Clone()
	clone.Put(100, 100)
	tree.Delete(0)

	require.Equal(t, 9, tree.Len())
	require.Equal(t, 11, clone.Len())
	require.True(t, clone.Contains(0))
	require.False(t, tree.Contains(100))
}

func TestTreeClear(t *testing.T) {
	t.Parallel()

	tree := rbtree.New[int, int]()
	for i := 0; i < 5; i++ {
		tree.Put(i, i)
	}

	before := tree.Version()
	tree.Clear()

	require.True(t, tree.Empty())
	require.Equal(t, 0, tree.Len())
	require.Greater(t, tree.Version(), before)
}

// assertInOrder walks the tree via Iter and fails the test if keys are not
// strictly increasing (or non-decreasing for a multi tree).
func assertInOrder(t *testing.T, tree *rbtree.Tree[int, int]) {
	t.Helper()

	prev, havePrev := 0, false

	for k := range tree.Iter() {
		if havePrev && (prev > k || (prev == k && !tree.Multi())) {
			t.Fatalf("keys out of order: %d before %d", prev, k)
		}

		prev, havePrev = k, true
	}
}
