// Package pset implements a position-indexed ("p" for position) ordered
// set of unique elements. Identical contract to package set, but backed
// by rbtree.ITree so At/IndexOf/cursor arithmetic run in O(log N) via the
// subtree-size augmentation instead of walking.
package pset

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/qntx/rbcontainer/cmp"
	"github.com/qntx/rbcontainer/rbtree"
)

var present = struct{}{}

// Iterator is a cursor over a Set, with O(log N) rank/select methods
// (Index, Add, Sub, Compare) inherited from rbtree.ICursor.
type Iterator[T comparable] = rbtree.ICursor[T, struct{}]

// NodeHandle is a detached-element token.
type NodeHandle[T comparable] = rbtree.INodeHandle[T, struct{}]

// InsertResult mirrors the C++ insert_return_type.
type InsertResult[T comparable] struct {
	It       *Iterator[T]
	Inserted bool
	Node     *NodeHandle[T]
}

// Set is a position-indexed ordered set of unique, comparable elements.
type Set[T comparable] struct {
	tree *rbtree.ITree[T, struct{}]
}

// New creates an empty indexed set for an ordered type, optionally
// pre-populated with values.
func New[T cmp.Ordered](values ...T) *Set[T] {
	s := NewWith[T](cmp.GenericComparator[T])
	s.Insert(values...)

	return s
}

// NewWith creates an empty indexed set using a custom ordering predicate.
func NewWith[T comparable](comparator cmp.Comparator[T]) *Set[T] {
	return &Set[T]{tree: rbtree.NewIndexedWith[T, struct{}](comparator)}
}

// FromSeq builds an indexed set from any iter.Seq[T] range.
func FromSeq[T cmp.Ordered](seq iter.Seq[T]) *Set[T] {
	s := New[T]()
	s.InsertSeq(seq)

	return s
}

// NewAscending bulk-builds an indexed set from an already sorted,
// strictly-increasing sequence in O(n).
func NewAscending[T cmp.Ordered](seq iter.Seq[T]) (*Set[T], error) {
	return NewAscendingWith[T](cmp.GenericComparator[T], seq)
}

// NewAscendingWith is NewAscending with a custom comparator.
func NewAscendingWith[T comparable](comparator cmp.Comparator[T], seq iter.Seq[T]) (*Set[T], error) {
	wrapped := func(yield func(T, struct{}) bool) {
		for v := range seq {
			if !yield(v, present) {
				return
			}
		}
	}

	tree, err := rbtree.ConstructIndexedFromAscending[T, struct{}](comparator, false, wrapped)
	if err != nil {
		return nil, err
	}

	return &Set[T]{tree: tree}, nil
}

// --------------------------------------------------------------------------------
// Accessors

func (s *Set[T]) Len() int                      { return s.tree.Len() }
func (s *Set[T]) Empty() bool                   { return s.tree.Empty() }
func (s *Set[T]) Comparator() cmp.Comparator[T] { return s.tree.Comparator() }
func (s *Set[T]) Values() []T                   { return s.tree.Keys() }

func (s *Set[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for k := range s.tree.Iter() {
			if !yield(k) {
				return
			}
		}
	}
}

// At returns the element at in-order rank i (0-based) in O(log N), or
// false if i is out of [0, Len()).
func (s *Set[T]) At(i int) (T, bool) {
	node := s.tree.At(i)
	if node == nil {
		var zero T
		return zero, false
	}

	return node.Key, true
}

// IndexOf returns it's in-order rank in O(log N).
func (s *Set[T]) IndexOf(it *Iterator[T]) (int, error) {
	return it.Index()
}

// --------------------------------------------------------------------------------
// Lookup

func (s *Set[T]) Contains(key T) bool { return s.tree.Contains(key) }

func (s *Set[T]) Count(key T) int {
	if s.tree.Contains(key) {
		return 1
	}

	return 0
}

func (s *Set[T]) Find(key T) (it *Iterator[T], ok bool) {
	node := s.tree.GetNode(key)
	if node == nil {
		return s.End(), false
	}

	return s.tree.IteratorAt(node), true
}

func (s *Set[T]) LowerBound(key T) *Iterator[T] { return cursorAt(s.tree, s.tree.LowerBound(key)) }
func (s *Set[T]) UpperBound(key T) *Iterator[T] { return cursorAt(s.tree, s.tree.UpperBound(key)) }

func (s *Set[T]) EqualRange(key T) (lower, upper *Iterator[T]) {
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

func (s *Set[T]) Insert(values ...T) int {
	n := 0

	for _, v := range values {
		if _, inserted := s.tree.Put(v, present); inserted {
			n++
		}
	}

	return n
}

func (s *Set[T]) InsertOne(key T) (*Iterator[T], bool) {
	node, inserted := s.tree.Put(key, present)
	return s.tree.IteratorAt(node), inserted
}

func (s *Set[T]) InsertHint(hint *Iterator[T], key T) (*Iterator[T], bool) {
	node, inserted := s.tree.PutHint(hint.Node(), key, present)
	return s.tree.IteratorAt(node), inserted
}

func (s *Set[T]) InsertSeq(seq iter.Seq[T]) int {
	n := 0

	for v := range seq {
		if _, inserted := s.tree.Put(v, present); inserted {
			n++
		}
	}

	return n
}

func (s *Set[T]) Emplace(key T) (*Iterator[T], bool) { return s.InsertOne(key) }

func (s *Set[T]) EmplaceHint(hint *Iterator[T], key T) (*Iterator[T], bool) {
	return s.InsertHint(hint, key)
}

func (s *Set[T]) EmplaceAscending(seq iter.Seq[T]) error {
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
func (s *Set[T]) Erase(it *Iterator[T]) (*Iterator[T], error) {
	node := it.Node()
	if node == nil {
		return nil, rbtree.ErrOutOfBounds
	}

	return cursorAt(s.tree, s.tree.DeleteNode(node)), nil
}

func (s *Set[T]) EraseRange(first, last *Iterator[T]) (int, error) {
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

func (s *Set[T]) EraseKey(key T) int {
	if s.tree.Delete(key) {
		return 1
	}

	return 0
}

func (s *Set[T]) Clear()         { s.tree.Clear() }
func (s *Set[T]) Clone() *Set[T] { return &Set[T]{tree: s.tree.Clone()} }

// Swap exchanges the contents of s and other in O(1), bumping both version
// counters.
func (s *Set[T]) Swap(other *Set[T]) {
	s.tree, other.tree = other.tree, s.tree
	s.tree.Touch()
	other.tree.Touch()
}

// Move replaces s's contents with other's, leaving other valid and empty.
// Cursors previously created from s report ErrStaleCursor.
func (s *Set[T]) Move(other *Set[T]) {
	s.tree.Discard()
	s.tree = other.tree
	other.tree = rbtree.NewIndexedWith[T, struct{}](s.tree.Comparator())
	s.tree.Touch()
}

func (s *Set[T]) Merge(other *Set[T]) {
	var rejected []T

	for k := range other.tree.Iter() {
		if !s.tree.Contains(k) {
			s.tree.Put(k, present)
		} else {
			rejected = append(rejected, k)
		}
	}

	other.Clear()
	other.Insert(rejected...)
}

func (s *Set[T]) Extract(it *Iterator[T]) *NodeHandle[T] {
	node := it.Node()
	if node == nil {
		return nil
	}

	return s.tree.Extract(node)
}

func (s *Set[T]) ExtractKey(key T) *NodeHandle[T] {
	node := s.tree.GetNode(key)
	if node == nil {
		return nil
	}

	return s.tree.Extract(node)
}

func (s *Set[T]) InsertNode(h *NodeHandle[T]) InsertResult[T] {
	node, inserted := s.tree.InsertNode(h)
	if !inserted {
		return InsertResult[T]{It: s.tree.IteratorAt(node), Inserted: false, Node: h}
	}

	return InsertResult[T]{It: s.tree.IteratorAt(node), Inserted: true}
}

// --------------------------------------------------------------------------------
// Iteration

func (s *Set[T]) Iterator() *Iterator[T] { return s.tree.Iterator() }

func (s *Set[T]) Begin() *Iterator[T] {
	it := s.tree.Iterator()
	it.Next()

	return it
}

func (s *Set[T]) End() *Iterator[T] {
	it := s.tree.Iterator()
	it.End()

	return it
}

// --------------------------------------------------------------------------------
// Equality, serialization, debug

func (s *Set[T]) Equal(other *Set[T]) bool {
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

func (s *Set[T]) String() string {
	values := s.Values()

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}

	return "Set[" + strings.Join(parts, ", ") + "]"
}

func (s *Set[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *Set[T]) UnmarshalJSON(data []byte) error {
	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}

	s.Clear()
	s.Insert(values...)

	return nil
}
