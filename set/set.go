// Package set implements an ordered set of unique elements: a thin
// wrapper delegating every operation to rbtree.Tree keyed on the element
// itself with an empty struct value.
package set

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/qntx/rbcontainer/cmp"
	"github.com/qntx/rbcontainer/rbtree"
)

// present marks set membership; the tree's value type carries no data.
var present = struct{}{}

// Iterator is a cursor over a Set, reusing rbtree.Cursor directly: Key()
// gives the element, Value() is always the zero struct{} and uninteresting.
type Iterator[T comparable] = rbtree.Cursor[T, struct{}]

// NodeHandle is a detached-element token produced by Extract/ExtractKey
// and consumed by InsertNode.
type NodeHandle[T comparable] = rbtree.NodeHandle[T, struct{}]

// InsertResult mirrors the C++ insert_return_type: Node is non-nil only
// when a NodeHandle insertion was rejected as a duplicate key.
type InsertResult[T comparable] struct {
	It       *Iterator[T]
	Inserted bool
	Node     *NodeHandle[T]
}

// Set is an ordered set of unique, comparable elements backed by a
// red-black tree with no rank/select augmentation (see pset for that).
type Set[T comparable] struct {
	tree *rbtree.Tree[T, struct{}]
}

// New creates an empty set for an ordered type using the built-in
// comparator, optionally pre-populated with values.
func New[T cmp.Ordered](values ...T) *Set[T] {
	s := NewWith[T](cmp.GenericComparator[T])
	s.Insert(values...)

	return s
}

// NewWith creates an empty set using a custom ordering predicate.
func NewWith[T comparable](comparator cmp.Comparator[T]) *Set[T] {
	return &Set[T]{tree: rbtree.NewWith[T, struct{}](comparator)}
}

// FromSeq builds a set from any iter.Seq[T] range.
func FromSeq[T cmp.Ordered](seq iter.Seq[T]) *Set[T] {
	s := New[T]()
	s.InsertSeq(seq)

	return s
}

// NewAscending bulk-builds a set directly from an already sorted,
// strictly-increasing sequence in O(n), skipping the repeated-insert path.
// Reports rbtree.ErrOrderViolation if the sequence is not strictly
// ascending.
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

	tree, err := rbtree.ConstructFromAscending[T, struct{}](comparator, false, wrapped)
	if err != nil {
		return nil, err
	}

	return &Set[T]{tree: tree}, nil
}

// --------------------------------------------------------------------------------
// Accessors

// Len returns the number of elements in the set.
func (s *Set[T]) Len() int { return s.tree.Len() }

// Empty reports whether the set has no elements.
func (s *Set[T]) Empty() bool { return s.tree.Empty() }

// Comparator returns the set's ordering predicate.
func (s *Set[T]) Comparator() cmp.Comparator[T] { return s.tree.Comparator() }

// Values returns the elements in ascending order.
func (s *Set[T]) Values() []T { return s.tree.Keys() }

// Iter returns a range-over-func sequence of elements in ascending order.
func (s *Set[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for k := range s.tree.Iter() {
			if !yield(k) {
				return
			}
		}
	}
}

// --------------------------------------------------------------------------------
// Lookup

// Contains reports whether key is a member of the set.
func (s *Set[T]) Contains(key T) bool { return s.tree.Contains(key) }

// Count returns 1 if key is present, 0 otherwise (a unique set never holds
// duplicates; see multiset.Count for the general case).
func (s *Set[T]) Count(key T) int {
	if s.tree.Contains(key) {
		return 1
	}

	return 0
}

// Find returns a cursor at key, or at End with ok=false if absent.
func (s *Set[T]) Find(key T) (it *Iterator[T], ok bool) {
	node := s.tree.GetNode(key)
	if node == nil {
		return s.End(), false
	}

	return s.tree.IteratorAt(node), true
}

// LowerBound returns a cursor at the first element not less than key.
func (s *Set[T]) LowerBound(key T) *Iterator[T] {
	return cursorAt(s.tree, s.tree.LowerBound(key))
}

// UpperBound returns a cursor at the first element strictly greater than key.
func (s *Set[T]) UpperBound(key T) *Iterator[T] {
	return cursorAt(s.tree, s.tree.UpperBound(key))
}

// EqualRange returns the [LowerBound(key), UpperBound(key)) cursor pair.
func (s *Set[T]) EqualRange(key T) (lower, upper *Iterator[T]) {
	return s.LowerBound(key), s.UpperBound(key)
}

func cursorAt[T comparable](tree *rbtree.Tree[T, struct{}], node *rbtree.Node[T, struct{}]) *Iterator[T] {
	if node == nil {
		it := tree.Iterator()
		it.End()

		return it
	}

	return tree.IteratorAt(node)
}

// --------------------------------------------------------------------------------
// Mutation

// Insert adds one or more values, returning the number of new insertions.
func (s *Set[T]) Insert(values ...T) int {
	n := 0

	for _, v := range values {
		if _, inserted := s.tree.Put(v, present); inserted {
			n++
		}
	}

	return n
}

// InsertOne inserts a single value, returning its cursor and whether it was
// newly inserted (false if it was already a member).
func (s *Set[T]) InsertOne(key T) (*Iterator[T], bool) {
	node, inserted := s.tree.Put(key, present)
	return s.tree.IteratorAt(node), inserted
}

// InsertHint inserts using hint as a conjectured insertion neighborhood.
func (s *Set[T]) InsertHint(hint *Iterator[T], key T) (*Iterator[T], bool) {
	node, inserted := s.tree.PutHint(hint.Node(), key, present)
	return s.tree.IteratorAt(node), inserted
}

// InsertSeq inserts every value from seq, in order.
func (s *Set[T]) InsertSeq(seq iter.Seq[T]) int {
	n := 0

	for v := range seq {
		if _, inserted := s.tree.Put(v, present); inserted {
			n++
		}
	}

	return n
}

// Emplace is InsertOne's spelling for parity with the map façades, since a
// set element has no separate value to construct in place.
func (s *Set[T]) Emplace(key T) (*Iterator[T], bool) { return s.InsertOne(key) }

// EmplaceHint is InsertHint's spelling for parity with the map façades.
func (s *Set[T]) EmplaceHint(hint *Iterator[T], key T) (*Iterator[T], bool) {
	return s.InsertHint(hint, key)
}

// EmplaceAscending bulk-builds a set from an already ascending sequence
// in a single pass, replacing this set's contents. Usable at any time
// (not just on an empty set) since a fresh tree fully replaces the old
// one; cursors over the old contents report ErrStaleCursor.
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
// in-order successor -- the element now occupying the erased rank, or End
// when the erased element was the last. Returns ErrOutOfBounds if it is
// not at a valid position.
func (s *Set[T]) Erase(it *Iterator[T]) (*Iterator[T], error) {
	node := it.Node()
	if node == nil {
		return nil, rbtree.ErrOutOfBounds
	}

	return cursorAt(s.tree, s.tree.DeleteNode(node)), nil
}

// EraseRange removes every element in [first, last), re-syncing last's
// version after each single-node erase. The delete splice preserves node
// identity (see rbtree.Tree.DeleteNode), so last's node is never unlinked
// by erasing the elements strictly before it.
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

// EraseKey removes key, returning the number of elements erased (0 or 1).
func (s *Set[T]) EraseKey(key T) int {
	if s.tree.Delete(key) {
		return 1
	}

	return 0
}

// Clear removes every element.
func (s *Set[T]) Clear() { s.tree.Clear() }

// Clone returns a deep, structurally isomorphic copy.
func (s *Set[T]) Clone() *Set[T] { return &Set[T]{tree: s.tree.Clone()} }

// Swap exchanges the contents of s and other in O(1), bumping both version
// counters. Cursors follow the tree they were created from to its new owner.
func (s *Set[T]) Swap(other *Set[T]) {
	s.tree, other.tree = other.tree, s.tree
	s.tree.Touch()
	other.tree.Touch()
}

// Move replaces s's contents with other's, leaving other valid and empty.
// Cursors previously created from s report ErrStaleCursor; cursors from
// other keep addressing the moved elements under their new owner.
func (s *Set[T]) Move(other *Set[T]) {
	s.tree.Discard()
	s.tree = other.tree
	other.tree = rbtree.NewWith[T, struct{}](s.tree.Comparator())
	s.tree.Touch()
}

// Merge transfers every element of other into s, leaving behind (in
// other) any element that could not be inserted because s already has
// that key.
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

// Extract detaches the element at it, returning a handle eligible for
// InsertNode (on this or a compatible set).
func (s *Set[T]) Extract(it *Iterator[T]) *NodeHandle[T] {
	node := it.Node()
	if node == nil {
		return nil
	}

	return s.tree.Extract(node)
}

// ExtractKey detaches key's element, or returns nil if absent.
func (s *Set[T]) ExtractKey(key T) *NodeHandle[T] {
	node := s.tree.GetNode(key)
	if node == nil {
		return nil
	}

	return s.tree.Extract(node)
}

// InsertNode re-attaches a detached element. Node is non-nil in the
// result only when key already exists, in which case the handle still
// owns its element.
func (s *Set[T]) InsertNode(h *NodeHandle[T]) InsertResult[T] {
	node, inserted := s.tree.InsertNode(h)
	if !inserted {
		return InsertResult[T]{It: s.tree.IteratorAt(node), Inserted: false, Node: h}
	}

	return InsertResult[T]{It: s.tree.IteratorAt(node), Inserted: true}
}

// --------------------------------------------------------------------------------
// Iteration

// Iterator returns a cursor positioned before the first element.
func (s *Set[T]) Iterator() *Iterator[T] { return s.tree.Iterator() }

// Begin returns a cursor at the first element, or End if empty.
func (s *Set[T]) Begin() *Iterator[T] {
	it := s.tree.Iterator()
	it.Next()

	return it
}

// End returns a cursor one-past-the-last element.
func (s *Set[T]) End() *Iterator[T] {
	it := s.tree.Iterator()
	it.End()

	return it
}

// --------------------------------------------------------------------------------
// Equality, serialization, debug

// Equal reports whether s and other have the same size and pairwise-equal
// elements in ascending order.
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

// String renders the set's elements for debugging.
func (s *Set[T]) String() string {
	values := s.Values()

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}

	return "Set[" + strings.Join(parts, ", ") + "]"
}

// MarshalJSON encodes the set as a JSON array in ascending order.
func (s *Set[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON replaces the set's contents with a decoded JSON array.
func (s *Set[T]) UnmarshalJSON(data []byte) error {
	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}

	s.Clear()
	s.Insert(values...)

	return nil
}
