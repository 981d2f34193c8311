// Package pmultiset implements the multi-key, indexed ("p" for position)
// ordered collection that allows duplicate elements. Combines
// multiset's always-insert duplicate handling with pset's O(log N)
// rank/select via rbtree.ITree.
package pmultiset

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/qntx/rbcontainer/cmp"
	"github.com/qntx/rbcontainer/rbtree"
)

var present = struct{}{}

// Iterator is a cursor over a MultiSet.
type Iterator[T comparable] = rbtree.ICursor[T, struct{}]

// NodeHandle is a detached-element token.
type NodeHandle[T comparable] = rbtree.INodeHandle[T, struct{}]

// MultiSet is a position-indexed ordered collection allowing duplicate,
// comparable elements.
type MultiSet[T comparable] struct {
	tree *rbtree.ITree[T, struct{}]
}

// New creates an empty indexed multiset for an ordered type, optionally
// pre-populated with values (duplicates kept).
func New[T cmp.Ordered](values ...T) *MultiSet[T] {
	s := NewWith[T](cmp.GenericComparator[T])
	s.Insert(values...)

	return s
}

// NewWith creates an empty indexed multiset using a custom comparator.
func NewWith[T comparable](comparator cmp.Comparator[T]) *MultiSet[T] {
	return &MultiSet[T]{tree: rbtree.NewMultiIndexedWith[T, struct{}](comparator)}
}

// FromSeq builds an indexed multiset from any iter.Seq[T] range, keeping
// duplicates.
func FromSeq[T cmp.Ordered](seq iter.Seq[T]) *MultiSet[T] {
	s := New[T]()
	s.InsertSeq(seq)

	return s
}

// NewAscending bulk-builds an indexed multiset from an already sorted,
// non-decreasing sequence in O(n).
func NewAscending[T cmp.Ordered](seq iter.Seq[T]) (*MultiSet[T], error) {
	return NewAscendingWith[T](cmp.GenericComparator[T], seq)
}

// NewAscendingWith is NewAscending with a custom comparator.
func NewAscendingWith[T comparable](comparator cmp.Comparator[T], seq iter.Seq[T]) (*MultiSet[T], error) {
	wrapped := func(yield func(T, struct{}) bool) {
		for v := range seq {
			if !yield(v, present) {
				return
			}
		}
	}

	tree, err := rbtree.ConstructIndexedFromAscending[T, struct{}](comparator, true, wrapped)
	if err != nil {
		return nil, err
	}

	return &MultiSet[T]{tree: tree}, nil
}

// --------------------------------------------------------------------------------
// Accessors

func (s *MultiSet[T]) Len() int                      { return s.tree.Len() }
func (s *MultiSet[T]) Empty() bool                   { return s.tree.Empty() }
func (s *MultiSet[T]) Comparator() cmp.Comparator[T] { return s.tree.Comparator() }
func (s *MultiSet[T]) Values() []T                   { return s.tree.Keys() }

func (s *MultiSet[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for k := range s.tree.Iter() {
			if !yield(k) {
				return
			}
		}
	}
}

// At returns the element at in-order rank i (0-based) in O(log N).
func (s *MultiSet[T]) At(i int) (T, bool) {
	node := s.tree.At(i)
	if node == nil {
		var zero T
		return zero, false
	}

	return node.Key, true
}

// IndexOf returns it's in-order rank in O(log N).
func (s *MultiSet[T]) IndexOf(it *Iterator[T]) (int, error) {
	return it.Index()
}

// --------------------------------------------------------------------------------
// Lookup

func (s *MultiSet[T]) Contains(key T) bool { return s.tree.Contains(key) }

// Count returns the number of elements equal to key in O(log N), via
// IndexOf(UpperBound) - IndexOf(LowerBound).
func (s *MultiSet[T]) Count(key T) int { return s.tree.Count(key) }

func (s *MultiSet[T]) Find(key T) (it *Iterator[T], ok bool) {
	node := s.tree.GetNode(key)
	if node == nil {
		return s.End(), false
	}

	return s.tree.IteratorAt(node), true
}

func (s *MultiSet[T]) LowerBound(key T) *Iterator[T] { return cursorAt(s.tree, s.tree.LowerBound(key)) }
func (s *MultiSet[T]) UpperBound(key T) *Iterator[T] { return cursorAt(s.tree, s.tree.UpperBound(key)) }

func (s *MultiSet[T]) EqualRange(key T) (lower, upper *Iterator[T]) {
	return s.LowerBound(key), s.UpperBound(key)
}

func cursorAt[T comparable](tree *rbtree.ITree[T, struct{}], node *rbtree.INode[T, struct{}]) *Iterator[T] {
	if node == nil {
		it := tree.Iterator()
		it.End()

		return it
	}

	return tree.IteratorAt(node)
}

// --------------------------------------------------------------------------------
// Mutation

func (s *MultiSet[T]) Insert(values ...T) int {
	for _, v := range values {
		s.tree.Put(v, present)
	}

	return len(values)
}

func (s *MultiSet[T]) InsertOne(key T) *Iterator[T] {
	node, _ := s.tree.Put(key, present)
	return s.tree.IteratorAt(node)
}

func (s *MultiSet[T]) InsertHint(hint *Iterator[T], key T) *Iterator[T] {
	node, _ := s.tree.PutHint(hint.Node(), key, present)
	return s.tree.IteratorAt(node)
}

func (s *MultiSet[T]) InsertSeq(seq iter.Seq[T]) int {
	n := 0
	for v := range seq {
		s.tree.Put(v, present)
		n++
	}

	return n
}

func (s *MultiSet[T]) Emplace(key T) *Iterator[T] { return s.InsertOne(key) }

func (s *MultiSet[T]) EmplaceHint(hint *Iterator[T], key T) *Iterator[T] {
	return s.InsertHint(hint, key)
}

func (s *MultiSet[T]) EmplaceAscending(seq iter.Seq[T]) error {
	built, err := NewAscendingWith[T](s.tree.Comparator(), seq)
	if err != nil {
		return err
	}

	s.tree.Discard()
	s.tree = built.tree

	return nil
}

// Erase removes the element addressed by it, returning a cursor at the
// in-order successor (the element now occupying the erased rank, or End).
func (s *MultiSet[T]) Erase(it *Iterator[T]) (*Iterator[T], error) {
	node := it.Node()
	if node == nil {
		return nil, rbtree.ErrOutOfBounds
	}

	return cursorAt(s.tree, s.tree.DeleteNode(node)), nil
}

func (s *MultiSet[T]) EraseRange(first, last *Iterator[T]) (int, error) {
	n := 0

	for {
		eq, err := first.Equal(last)
		if err != nil {
			return n, err
		}

		if eq {
			return n, nil
		}

		node := first.Node()
		if node == nil {
			return n, rbtree.ErrOutOfBounds
		}

		first = cursorAt(s.tree, s.tree.DeleteNode(node))
		last.Resync()
		n++
	}
}

func (s *MultiSet[T]) EraseKey(key T) int {
	n := 0
	for s.tree.Delete(key) {
		n++
	}

	return n
}

func (s *MultiSet[T]) Clear()              { s.tree.Clear() }
func (s *MultiSet[T]) Clone() *MultiSet[T] { return &MultiSet[T]{tree: s.tree.Clone()} }

// Swap exchanges the contents of s and other in O(1), bumping both version
// counters.
func (s *MultiSet[T]) Swap(other *MultiSet[T]) {
	s.tree, other.tree = other.tree, s.tree
	s.tree.Touch()
	other.tree.Touch()
}

// Move replaces s's contents with other's, leaving other valid and empty.
// Cursors previously created from s report ErrStaleCursor.
func (s *MultiSet[T]) Move(other *MultiSet[T]) {
	s.tree.Discard()
	s.tree = other.tree
	other.tree = rbtree.NewMultiIndexedWith[T, struct{}](s.tree.Comparator())
	s.tree.Touch()
}

func (s *MultiSet[T]) Merge(other *MultiSet[T]) {
	for k := range other.tree.Iter() {
		s.tree.Put(k, present)
	}

	other.Clear()
}

func (s *MultiSet[T]) Extract(it *Iterator[T]) *NodeHandle[T] {
	node := it.Node()
	if node == nil {
		return nil
	}

	return s.tree.Extract(node)
}

func (s *MultiSet[T]) ExtractKey(key T) *NodeHandle[T] {
	node := s.tree.GetNode(key)
	if node == nil {
		return nil
	}

	return s.tree.Extract(node)
}

func (s *MultiSet[T]) InsertNode(h *NodeHandle[T]) *Iterator[T] {
	node, _ := s.tree.InsertNode(h)
	return s.tree.IteratorAt(node)
}

// --------------------------------------------------------------------------------
// Iteration

func (s *MultiSet[T]) Iterator() *Iterator[T] { return s.tree.Iterator() }

func (s *MultiSet[T]) Begin() *Iterator[T] {
	it := s.tree.Iterator()
	it.Next()

	return it
}

func (s *MultiSet[T]) End() *Iterator[T] {
	it := s.tree.Iterator()
	it.End()

	return it
}

// --------------------------------------------------------------------------------
// Equality, serialization, debug

func (s *MultiSet[T]) Equal(other *MultiSet[T]) bool {
	if s.Len() != other.Len() {
		return false
	}

	a, b := s.Values(), other.Values()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func (s *MultiSet[T]) String() string {
	values := s.Values()

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}

	return "MultiSet[" + strings.Join(parts, ", ") + "]"
}

func (s *MultiSet[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *MultiSet[T]) UnmarshalJSON(data []byte) error {
	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}

	s.Clear()
	s.Insert(values...)

	return nil
}
