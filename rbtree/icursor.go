package rbtree

import (
	"fmt"

	"github.com/qntx/rbcontainer/container"
)

// Ensure ICursor implements container.ReverseIteratorWithKey at compile time.
var _ container.ReverseIteratorWithKey[string, int] = (*ICursor[string, int])(nil)

// ICursor is Cursor's counterpart over ITree: the same versioned handle
// protocol, but Index/Add/Sub run in O(log N) via ITree.IndexOf/Advance
// instead of walking the successor chain.
type ICursor[K comparable, V any] struct {
	tree    *ITree[K, V]
	state   *treeState
	node    *INode[K, V]
	version uint64
	pos     position
	reverse bool
}

// Reverse returns a cursor over the same position with direction flipped.
func (it *ICursor[K, V]) Reverse() *ICursor[K, V] {
	return &ICursor[K, V]{tree: it.tree, state: it.state, node: it.node, version: it.version, pos: it.pos, reverse: !it.reverse}
}

func (it *ICursor[K, V]) Next() bool {
	if it.reverse {
		return it.prevImpl()
	}

	return it.nextImpl()
}

func (it *ICursor[K, V]) Prev() bool {
	if it.reverse {
		return it.nextImpl()
	}

	return it.prevImpl()
}

func (it *ICursor[K, V]) nextImpl() bool {
	switch it.pos {
	case posEnd:
		return false
	case posBegin:
		if left := iminNode(it.tree.root); left != nil {
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

func (it *ICursor[K, V]) prevImpl() bool {
	switch it.pos {
	case posBegin:
		return false
	case posEnd:
		if right := imaxNode(it.tree.root); right != nil {
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

func (it *ICursor[K, V]) Key() K {
	k, _, err := it.Deref()
	if err != nil {
		panic("rbtree: " + err.Error())
	}

	return k
}

func (it *ICursor[K, V]) Value() V {
	_, v, err := it.Deref()
	if err != nil {
		panic("rbtree: " + err.Error())
	}

	return v
}

// Deref dereferences the cursor, surfacing ErrStaleCursor/ErrOutOfBounds
// instead of panicking.
func (it *ICursor[K, V]) Deref() (key K, val V, err error) {
	if it.state.dead {
		return key, val, ErrStaleCursor
	}

	if it.pos != posBetween || it.node == nil {
		return key, val, ErrOutOfBounds
	}

	return it.node.Key, it.node.Value, nil
}

func (it *ICursor[K, V]) Node() *INode[K, V] {
	return it.node
}

func (it *ICursor[K, V]) Valid() bool {
	return !it.state.dead && it.pos == posBetween && it.node != nil
}

func (it *ICursor[K, V]) Resync() {
	it.version = it.state.version
}

func (it *ICursor[K, V]) Begin() {
	it.node, it.pos = nil, ternary(it.reverse, posEnd, posBegin)
}

func (it *ICursor[K, V]) End() {
	it.node, it.pos = nil, ternary(it.reverse, posBegin, posEnd)
}

func (it *ICursor[K, V]) First() bool {
	it.Begin()
	return it.Next()
}

func (it *ICursor[K, V]) Last() bool {
	it.End()
	return it.Prev()
}

func (it *ICursor[K, V]) NextTo(f func(key K, value V) bool) bool {
	for it.Next() {
		if f(it.Key(), it.Value()) {
			return true
		}
	}

	return false
}

func (it *ICursor[K, V]) PrevTo(f func(key K, value V) bool) bool {
	for it.Prev() {
		if f(it.Key(), it.Value()) {
			return true
		}
	}

	return false
}

// Index returns the in-order rank of the cursor's current position in
// O(log N), via ITree.IndexOf. A posBegin cursor has no rank.
func (it *ICursor[K, V]) Index() (int, error) {
	if it.state.dead {
		return 0, ErrStaleCursor
	}

	if it.pos == posBegin {
		return 0, ErrOutOfBounds
	}

	return it.tree.IndexOf(it.node), nil
}

// Add returns a new cursor advanced by n positions in O(log N), via
// ITree.Advance.
func (it *ICursor[K, V]) Add(n int) (*ICursor[K, V], error) {
	if it.state.dead {
		return nil, ErrStaleCursor
	}

	if it.reverse {
		n = -n
	}

	idx := it.tree.IndexOf(it.node)
	if it.pos == posBegin {
		return nil, ErrOutOfBounds
	}

	target := idx + n
	if target < 0 || target > it.tree.Len() {
		return nil, ErrOutOfBounds
	}

	out := *it
	if target == it.tree.Len() {
		out.node, out.pos = nil, posEnd
	} else {
		out.node, out.pos = it.tree.At(target), posBetween
	}

	return &out, nil
}

// Sub returns a new cursor moved backward by n positions.
func (it *ICursor[K, V]) Sub(n int) (*ICursor[K, V], error) {
	return it.Add(-n)
}

// Compare returns the signed rank difference between it and other
// (reversed for reverse cursors), both resolved in O(log N).
func (it *ICursor[K, V]) Compare(other *ICursor[K, V]) (int, error) {
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
func (it *ICursor[K, V]) Equal(other *ICursor[K, V]) (bool, error) {
	if it.tree != other.tree {
		return false, ErrCrossContainerCompare
	}

	return it.node == other.node && it.pos == other.pos, nil
}

func (it *ICursor[K, V]) String() string {
	if it.pos != posBetween || it.node == nil {
		return fmt.Sprintf("ICursor(%v)", it.pos)
	}

	return fmt.Sprintf("ICursor(%v)", it.node.Key)
}
