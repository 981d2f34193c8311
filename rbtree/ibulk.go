package rbtree

import (
	"iter"

	"github.com/qntx/rbcontainer/cmp"
)

// ConstructIndexedFromAscending is ConstructFromAscending's counterpart for
// ITree: the same single-pass bisection build, additionally stamping each
// node's subtree size as it goes so the result is immediately usable with
// At/IndexOf/Advance.
//
// Time complexity: O(n).
func ConstructIndexedFromAscending[K comparable, V any](comparator cmp.Comparator[K], multi bool, seq iter.Seq2[K, V]) (*ITree[K, V], error) {
	var (
		nodes   []*INode[K, V]
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

		nodes = append(nodes, &INode[K, V]{Key: k, Value: v})
		prev, prevSet = k, true
	}

	t := &ITree[K, V]{comparator: comparator, multi: multi, len: len(nodes), state: &treeState{}}
	t.root = ibuildFromSorted(nodes)

	return t, nil
}

// ibuildFromSorted mirrors buildFromSorted, additionally deriving each
// node's size bottom-up from the range it was handed: a node covering
// [lo, hi] always owns exactly hi-lo+1 descendants, so there is no need to
// revisit children after the fact the way rotateLeft/rotateRight's
// recomputeSize does.
func ibuildFromSorted[K comparable, V any](nodes []*INode[K, V]) *INode[K, V] {
	if len(nodes) == 0 {
		return nil
	}

	maxDepth := 0
	root := ibuildRange(nodes, 0, len(nodes)-1, 0, nil, &maxDepth)

	if maxDepth > 0 {
		icolorDeepest(root, 0, maxDepth)
	}

	return root
}

func ibuildRange[K comparable, V any](nodes []*INode[K, V], lo, hi, depth int, parent *INode[K, V], maxDepth *int) *INode[K, V] {
	if lo > hi {
		return nil
	}

	mid := lo + (hi-lo)/2
	n := nodes[mid]
	n.color = black
	n.Parent = parent
	n.size = hi - lo + 1

	if depth > *maxDepth {
		*maxDepth = depth
	}

	n.Left = ibuildRange(nodes, lo, mid-1, depth+1, n, maxDepth)
	n.Right = ibuildRange(nodes, mid+1, hi, depth+1, n, maxDepth)

	return n
}

func icolorDeepest[K comparable, V any](n *INode[K, V], depth, maxDepth int) {
	if n == nil {
		return
	}

	if depth == maxDepth {
		n.color = red
	}

	icolorDeepest(n.Left, depth+1, maxDepth)
	icolorDeepest(n.Right, depth+1, maxDepth)
}
