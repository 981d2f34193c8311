package rbtree

import (
	"math/rand"
	"testing"

	"github.com/qntx/rbcontainer/cmp"
)

// checkInvariants verifies the red-black structural invariants on a plain
// tree: black root, no red node with a red child, equal black height on
// every root-to-null path, parent link consistency, and a reachable-node
// count matching Len.
func checkInvariants[K comparable, V any](t *testing.T, tree *Tree[K, V]) {
	t.Helper()

	if nodeColor(tree.root) != black {
		t.Fatal("root is not black")
	}

	count := 0
	blackHeight(t, tree.root, &count)

	if count != tree.len {
		t.Fatalf("reachable nodes = %d, Len() = %d", count, tree.len)
	}
}

func blackHeight[K comparable, V any](t *testing.T, n *Node[K, V], count *int) int {
	t.Helper()

	if n == nil {
		return 1
	}

	*count++

	if n.color == red {
		if nodeColor(n.Left) == red || nodeColor(n.Right) == red {
			t.Fatalf("red node %v has a red child", n.Key)
		}
	}

	if n.Left != nil && n.Left.Parent != n {
		t.Fatalf("left child of %v has inconsistent parent link", n.Key)
	}

	if n.Right != nil && n.Right.Parent != n {
		t.Fatalf("right child of %v has inconsistent parent link", n.Key)
	}

	lh := blackHeight(t, n.Left, count)
	rh := blackHeight(t, n.Right, count)

	if lh != rh {
		t.Fatalf("black height mismatch at %v: left %d, right %d", n.Key, lh, rh)
	}

	if n.color == black {
		return lh + 1
	}

	return lh
}

func icheckInvariants[K comparable, V any](t *testing.T, tree *ITree[K, V]) {
	t.Helper()

	if inodeColor(tree.root) != black {
		t.Fatal("root is not black")
	}

	count := 0
	iblackHeight(t, tree.root, &count)

	if count != tree.len {
		t.Fatalf("reachable nodes = %d, Len() = %d", count, tree.len)
	}
}

func iblackHeight[K comparable, V any](t *testing.T, n *INode[K, V], count *int) int {
	t.Helper()

	if n == nil {
		return 1
	}

	*count++

	if n.color == red {
		if inodeColor(n.Left) == red || inodeColor(n.Right) == red {
			t.Fatalf("red node %v has a red child", n.Key)
		}
	}

	if n.Left != nil && n.Left.Parent != n {
		t.Fatalf("left child of %v has inconsistent parent link", n.Key)
	}

	if n.Right != nil && n.Right.Parent != n {
		t.Fatalf("right child of %v has inconsistent parent link", n.Key)
	}

	if n.size != 1+n.Left.Size()+n.Right.Size() {
		t.Fatalf("node %v: size %d != 1 + %d + %d", n.Key, n.size, n.Left.Size(), n.Right.Size())
	}

	lh := iblackHeight(t, n.Left, count)
	rh := iblackHeight(t, n.Right, count)

	if lh != rh {
		t.Fatalf("black height mismatch at %v: left %d, right %d", n.Key, lh, rh)
	}

	if n.color == black {
		return lh + 1
	}

	return lh
}

// TestTreeInvariantsUnderRandomMutation drives a randomized insert/delete
// sequence with a fixed seed and verifies the structural invariants after
// every mutation.
func TestTreeInvariantsUnderRandomMutation(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	tree := New[int, int]()

	live := make(map[int]struct{})

	for i := 0; i < 2000; i++ {
		k := rng.Intn(500)

		if rng.Intn(3) == 0 {
			tree.Delete(k)
			delete(live, k)
		} else {
			tree.Put(k, i)
			live[k] = struct{}{}
		}

		checkInvariants(t, tree)
	}

	if tree.Len() != len(live) {
		t.Fatalf("Len() = %d, want %d", tree.Len(), len(live))
	}
}

func TestITreeInvariantsUnderRandomMutation(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))
	tree := NewMultiIndexed[int, int]()

	expected := 0

	for i := 0; i < 2000; i++ {
		k := rng.Intn(200)

		if rng.Intn(3) == 0 {
			if tree.Delete(k) {
				expected--
			}
		} else {
			tree.Put(k, i)
			expected++
		}

		icheckInvariants(t, tree)
	}

	if tree.Len() != expected {
		t.Fatalf("Len() = %d, want %d", tree.Len(), expected)
	}
}

// TestBulkBuildInvariants verifies that every list length from 0 through
// 64 produces a valid red-black coloring with correct subtree sizes.
func TestBulkBuildInvariants(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 64; n++ {
		seq := func(yield func(int, int) bool) {
			for i := 0; i < n; i++ {
				if !yield(i, i) {
					return
				}
			}
		}

		tree, err := ConstructFromAscending[int, int](cmp.GenericComparator[int], false, seq)
		if err != nil {
			t.Fatalf("length %d: unexpected error %v", n, err)
		}

		if tree.Len() != n {
			t.Fatalf("length %d: Len() = %d", n, tree.Len())
		}

		checkInvariants(t, tree)

		itree, err := ConstructIndexedFromAscending[int, int](cmp.GenericComparator[int], false, seq)
		if err != nil {
			t.Fatalf("length %d: unexpected error %v", n, err)
		}

		icheckInvariants(t, itree)

		for i := 0; i < n; i++ {
			node := itree.At(i)
			if node == nil || node.Key != i {
				t.Fatalf("length %d: At(%d) wrong", n, i)
			}
		}
	}
}
