package rbtree

import (
	"fmt"

	"github.com/qntx/rbcontainer/container"
)

// position describes where a Cursor sits relative to the tree's elements.
type position byte

const (
	posBegin   position = iota // Before the first element.
	posBetween                 // At a valid element.
	posEnd                     // Past the last element.
)

// Ensure Cursor implements container.ReverseIteratorWithKey at compile time.
var _ container.ReverseIteratorWithKey[string, int] = (*Cursor[string, int])(nil)

// Cursor is a versioned, safe handle to a Tree node: a triple of (tree
// reference, node pointer or nil, observed version/state). It outlives
// individual mutations and detects container invalidation rather than
// dereferencing a dangling node.
//
// A nil node means "one past the last element" (position posEnd) or
// "before the first element" (posBegin); decrementing posEnd on a
// non-empty tree yields the last element, and decrementing it on an empty
// tree fails. Most operations are O(log n); Begin/End are O(1).
type Cursor[K comparable, V any] struct {
	tree    *Tree[K, V]
	state   *treeState
	node    *Node[K, V]
	version uint64
	pos     position
	reverse bool
}

// Reverse returns a cursor over the same position with iteration direction
// flipped: Next/Prev are swapped, and so are the begin/end endpoints.
func (it *Cursor[K, V]) Reverse() *Cursor[K, V] {
	return &Cursor[K, V]{tree: it.tree, state: it.state, node: it.node, version: it.version, pos: it.pos, reverse: !it.reverse}
}

// Next advances the iterator to the next element in traversal order
// (in-order, or reverse in-order for a Reverse cursor).
//
// Returns true if the iterator is at a valid element after moving, false
// if it reaches the end. Time complexity: O(log n).
func (it *Cursor[K, V]) Next() bool {
	if it.reverse {
		return it.prevImpl()
	}

	return it.nextImpl()
}

// Prev moves the iterator to the previous element in traversal order.
//
// Returns true if the iterator is at a valid element after moving, false
// if it reaches the beginning. Time complexity: O(log n).
func (it *Cursor[K, V]) Prev() bool {
	if it.reverse {
		return it.nextImpl()
	}

	return it.prevImpl()
}

func (it *Cursor[K, V]) nextImpl() bool {
	switch it.pos {
	case posEnd:
		return false
	case posBegin:
		if left := minNode(it.tree.root); left != nil {
			it.node, it.pos = left, posBetween
			return true
		}

		it.pos = posEnd

		return false
	case posBetween:
		if next := it.node.successor(); next != nil {
			it.node = next
			return true
		}
	}

	it.node, it.pos = nil, posEnd

	return false
}

func (it *Cursor[K, V]) prevImpl() bool {
	switch it.pos {
	case posBegin:
		return false
	case posEnd:
		if right := maxNode(it.tree.root); right != nil {
			it.node, it.pos = right, posBetween
			return true
		}

		it.pos = posBegin

		return false
	case posBetween:
		if prev := it.node.predecessor(); prev != nil {
			it.node = prev
			return true
		}
	}

	it.node, it.pos = nil, posBegin

	return false
}

// Key returns the current element's key. Panics if the cursor is not at a
// valid position (posBegin or posEnd). Time complexity: O(1).
func (it *Cursor[K, V]) Key() K {
	k, _, err := it.Deref()
	if err != nil {
		panic("rbtree: " + err.Error())
	}

	return k
}

// Value returns the current element's value. Panics if the cursor is not
// at a valid position. Time complexity: O(1).
func (it *Cursor[K, V]) Value() V {
	_, v, err := it.Deref()
	if err != nil {
		panic("rbtree: " + err.Error())
	}

	return v
}

// Deref dereferences the cursor, returning errors instead of panicking:
// ErrStaleCursor if the backing tree has been replaced wholesale,
// ErrOutOfBounds if positioned at posBegin/posEnd.
func (it *Cursor[K, V]) Deref() (key K, val V, err error) {
	if it.state.dead {
		return key, val, ErrStaleCursor
	}

	if it.pos != posBetween || it.node == nil {
		return key, val, ErrOutOfBounds
	}

	return it.node.Key, it.node.Value, nil
}

// Node returns the current node, or nil at posBegin/posEnd.
func (it *Cursor[K, V]) Node() *Node[K, V] {
	return it.node
}

// Valid reports whether the cursor currently addresses a live element.
func (it *Cursor[K, V]) Valid() bool {
	return !it.state.dead && it.pos == posBetween && it.node != nil
}

// Resync re-reads the tree's current version without moving the cursor,
// for callers that intentionally mutated the tree and want to keep using
// this cursor afterward (e.g. EraseRange re-syncing its end cursor after
// each single-node erase).
func (it *Cursor[K, V]) Resync() {
	it.version = it.state.version
}

// Begin resets the iterator to before the first element.
func (it *Cursor[K, V]) Begin() {
	it.node, it.pos = nil, ternary(it.reverse, posEnd, posBegin)
}

// End moves the iterator past the last element.
func (it *Cursor[K, V]) End() {
	it.node, it.pos = nil, ternary(it.reverse, posBegin, posEnd)
}

// First moves the iterator to the first element of its traversal order.
func (it *Cursor[K, V]) First() bool {
	it.Begin()
	return it.Next()
}

// Last moves the iterator to the last element of its traversal order.
func (it *Cursor[K, V]) Last() bool {
	it.End()
	return it.Prev()
}

// NextTo advances to the next element satisfying the predicate.
func (it *Cursor[K, V]) NextTo(f func(key K, value V) bool) bool {
	for it.Next() {
		if f(it.Key(), it.Value()) {
			return true
		}
	}

	return false
}

// PrevTo moves to the previous element satisfying the predicate.
func (it *Cursor[K, V]) PrevTo(f func(key K, value V) bool) bool {
	for it.Prev() {
		if f(it.Key(), it.Value()) {
			return true
		}
	}

	return false
}

// Index returns the in-order rank of the cursor's current position.
//
// The plain tree has no size augmentation, so this walks from the
// minimum; it returns Len() for a posEnd cursor. Time complexity: O(n).
func (it *Cursor[K, V]) Index() (int, error) {
	if it.state.dead {
		return 0, ErrStaleCursor
	}

	if it.pos == posBegin {
		return 0, ErrOutOfBounds
	}

	i := 0
	for node := minNode(it.tree.root); node != it.node; node = node.successor() {
		if node == nil {
			return 0, ErrOutOfBounds
		}

		i++
	}

	return i, nil
}

// Add returns a new cursor advanced by n positions (negative moves
// backward), equivalent to repeated Next()/Prev() but walking the tree
// directly. Time complexity: O(n * log n) worst case on the plain tree.
func (it *Cursor[K, V]) Add(n int) (*Cursor[K, V], error) {
	if it.state.dead {
		return nil, ErrStaleCursor
	}

	if it.pos == posBegin {
		return nil, ErrOutOfBounds
	}

	out := *it
	if it.reverse {
		n = -n
	}

	node := it.node
	switch {
	case n > 0:
		if node == nil { // posEnd cannot advance further forward.
			return nil, ErrOutOfBounds
		}

		for ; n > 0; n-- {
			node = node.successor()
			if node == nil && n > 1 {
				return nil, ErrOutOfBounds
			}
		}
	case n < 0:
		if node == nil { // at posEnd: the first Prev() lands on the max element.
			node = maxNode(it.tree.root)
			n++

			if node == nil {
				return nil, ErrOutOfBounds
			}
		}

		// Unlike the forward direction, there is no valid resting position
		// before the first element, so falling off the left edge is an error
		// regardless of how many steps remain.
		for ; n < 0; n++ {
			node = node.predecessor()
			if node == nil {
				return nil, ErrOutOfBounds
			}
		}
	}

	out.node = node
	if node == nil {
		out.pos = posEnd
	} else {
		out.pos = posBetween
	}

	return &out, nil
}

// Sub returns a new cursor moved backward by n positions.
func (it *Cursor[K, V]) Sub(n int) (*Cursor[K, V], error) {
	return it.Add(-n)
}

// Compare returns the signed difference in in-order rank between it and
// other (reversed for reverse cursors). Fails with ErrCrossContainerCompare
// if the two cursors were created from different trees.
func (it *Cursor[K, V]) Compare(other *Cursor[K, V]) (int, error) {
	if it.tree != other.tree {
		return 0, ErrCrossContainerCompare
	}

	a, err := it.Index()
	if err != nil {
		return 0, err
	}

	b, err := other.Index()
	if err != nil {
		return 0, err
	}

	if it.reverse {
		return b - a, nil
	}

	return a - b, nil
}

// Equal reports whether it and other address the same element.
func (it *Cursor[K, V]) Equal(other *Cursor[K, V]) (bool, error) {
	if it.tree != other.tree {
		return false, ErrCrossContainerCompare
	}

	return it.node == other.node && it.pos == other.pos, nil
}

func (it *Cursor[K, V]) String() string {
	if it.pos != posBetween || it.node == nil {
		return fmt.Sprintf("Cursor(%v)", it.pos)
	}

	return fmt.Sprintf("Cursor(%v)", it.node.Key)
}
