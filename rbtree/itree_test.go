package rbtree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qntx/rbcontainer/rbtree"
)

func TestITreeAtIndexOfRoundTrip(t *testing.T) {
	t.Parallel()

	tree := rbtree.NewIndexed[int, int]()
	for i := 0; i < 50; i++ {
		tree.Put(i*2, i)
	}

	for rank := 0; rank < tree.Len(); rank++ {
		node := tree.At(rank)
		require.NotNil(t, node, "At(%d)", rank)
		require.Equal(t, rank, tree.IndexOf(node), "IndexOf(At(%d))", rank)
		require.Equal(t, rank*2, node.Key)
	}

	require.Nil(t, tree.At(-1))
	require.Nil(t, tree.At(tree.Len()))
	require.Equal(t, tree.Len(), tree.IndexOf(nil))
}

func TestITreeAdvance(t *testing.T) {
	t.Parallel()

	tree := rbtree.NewIndexed[int, int]()
	for i := 0; i < 30; i++ {
		tree.Put(i, i)
	}

	mid := tree.At(15)

	forward := tree.Advance(mid, 5)
	require.NotNil(t, forward)
	require.Equal(t, 20, forward.Key)

	backward := tree.Advance(mid, -10)
	require.NotNil(t, backward)
	require.Equal(t, 5, backward.Key)

	require.Nil(t, tree.Advance(mid, 100))
	require.Nil(t, tree.Advance(mid, -100))

	self := tree.Advance(mid, 0)
	require.Equal(t, mid.Key, self.Key)
}

func TestITreeSizeMaintainedThroughRotationsAndDeletes(t *testing.T) {
	t.Parallel()

	tree := rbtree.NewIndexed[int, int]()
	keys := []int{50, 25, 75, 10, 30, 60, 90, 5, 15, 27, 33, 55, 65, 80, 95}
	for _, k := range keys {
		tree.Put(k, k)
	}

	assertSizesConsistent(t, tree)

	for _, k := range []int{10, 60, 50, 95} {
		tree.Delete(k)
		assertSizesConsistent(t, tree)
	}

	require.Equal(t, len(keys)-4, tree.Len())
}

func TestITreeCountUsesRank(t *testing.T) {
	t.Parallel()

	tree := rbtree.NewMultiIndexed[int, int]()
	for i := 0; i < 5; i++ {
		tree.Put(1, i)
	}

	for i := 0; i < 3; i++ {
		tree.Put(2, i)
	}

	require.Equal(t, 5, tree.Count(1))
	require.Equal(t, 3, tree.Count(2))
	require.Equal(t, 0, tree.Count(99))
}

// assertSizesConsistent walks every node, reached by climbing Parent
// pointers from the leftmost element up to the root, and verifies
// size == 1 + Left.Size() + Right.Size().
func assertSizesConsistent(t *testing.T, tree *rbtree.ITree[int, int]) {
	t.Helper()

	if tree.Len() == 0 {
		return
	}

	root := tree.Left()
	for root.Parent != nil {
		root = root.Parent
	}

	var walk func(n *rbtree.INode[int, int]) int

	walk = func(n *rbtree.INode[int, int]) int {
		if n == nil {
			return 0
		}

		total := 1 + walk(n.Left) + walk(n.Right)

		if n.Size() != total {
			t.Fatalf("node %v: Size() = %d, want %d", n.Key, n.Size(), total)
		}

		return total
	}

	require.Equal(t, tree.Len(), walk(root))
}
