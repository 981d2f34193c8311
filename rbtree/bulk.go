package rbtree

import (
	"iter"

	"github.com/qntx/rbcontainer/cmp"
)

// ConstructFromAscending builds a Tree directly from an already-sorted
// sequence in a single pass, skipping the O(n log n) repeated-Put path a
// client would otherwise pay for data it already knows is ordered.
//
// seq must yield keys in non-decreasing order for a multi tree, or
// strictly increasing order for a unique tree; a violation reports
// ErrOrderViolation and returns a nil tree. Nodes allocated before the
// violation was found are unreferenced when this function returns, so
// the garbage collector reclaims them; there is no explicit deallocation
// loop to write.
//
// Time complexity: O(n).
func ConstructFromAscending[K comparable, V any](comparator cmp.Comparator[K], multi bool, seq iter.Seq2[K, V]) (*Tree[K, V], error) {
	var (
		nodes   []*Node[K, V]
		prevSet bool
		prev    K
	)

	for k, v := range seq {
		if prevSet {
			c := comparator(prev, k)
			if c > 0 || (c == 0 && !multi) {
				return nil, ErrOrderViolation
			}
		}

		nodes = append(nodes, &Node[K, V]{Key: k, Value: v})
		prev, prevSet = k, true
	}

	t := &Tree[K, V]{comparator: comparator, multi: multi, len: len(nodes), state: &treeState{}}
	t.root = buildFromSorted(nodes)

	return t, nil
}

// buildFromSorted recursively roots each subtree at the middle element
// of its slice range. The deepest level is conceptually ceil(log2(L)),
// but rather than pre-compute that formula and risk an off-by-one against
// the actual shape this particular split produces, it measures the real
// deepest level reached and colors exactly that level red, everything
// shallower black. A bisection build
// always keeps every leaf within one level of every other, so this is
// always a valid red-black coloring (root black, no red-red, equal black
// height on every path) regardless of whether L happens to be a power of
// two.
func buildFromSorted[K comparable, V any](nodes []*Node[K, V]) *Node[K, V] {
	if len(nodes) == 0 {
		return nil
	}

	maxDepth := 0
	root := buildRange(nodes, 0, len(nodes)-1, 0, nil, &maxDepth)

	if maxDepth > 0 {
		colorDeepest(root, 0, maxDepth)
	}

	return root
}

func buildRange[K comparable, V any](nodes []*Node[K, V], lo, hi, depth int, parent *Node[K, V], maxDepth *int) *Node[K, V] {
	if lo > hi {
		return nil
	}

	mid := lo + (hi-lo)/2
	n := nodes[mid]
	n.color = black
	n.Parent = parent

	if depth > *maxDepth {
		*maxDepth = depth
	}

	n.Left = buildRange(nodes, lo, mid-1, depth+1, n, maxDepth)
	n.Right = buildRange(nodes, mid+1, hi, depth+1, n, maxDepth)

	return n
}

func colorDeepest[K comparable, V any](n *Node[K, V], depth, maxDepth int) {
	if n == nil {
		return
	}

	if depth == maxDepth {
		n.color = red
	}

	colorDeepest(n.Left, depth+1, maxDepth)
	colorDeepest(n.Right, depth+1, maxDepth)
}
