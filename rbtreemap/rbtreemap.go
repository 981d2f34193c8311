// Package rbtreemap implements an ordered map with unique keys (named
// rbtreemap because `map` is a Go keyword, mirroring the rbtreeset and
// rbtreebidimap naming).
package rbtreemap

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/qntx/rbcontainer/cmp"
	"github.com/qntx/rbcontainer/rbtree"
)

// Iterator is a cursor over a Map.
type Iterator[K comparable, V any] = rbtree.Cursor[K, V]

// NodeHandle is a detached key-value token.
type NodeHandle[K comparable, V any] = rbtree.NodeHandle[K, V]

// InsertResult mirrors the C++ insert_return_type.
type InsertResult[K comparable, V any] struct {
	It       *Iterator[K, V]
	Inserted bool
	Node     *NodeHandle[K, V]
}

// Map is an ordered map of unique keys backed by a red-black tree with no
// rank/select augmentation (see rbtreepmap for that).
type Map[K comparable, V any] struct {
	tree *rbtree.Tree[K, V]
}

// New creates an empty map for an ordered key type.
func New[K cmp.Ordered, V any]() *Map[K, V] {
	return NewWith[K, V](cmp.GenericComparator[K])
}

// NewWith creates an empty map using a custom ordering predicate.
func NewWith[K comparable, V any](comparator cmp.Comparator[K]) *Map[K, V] {
	return &Map[K, V]{tree: rbtree.NewWith[K, V](comparator)}
}

// FromSeq builds a map from any iter.Seq2[K, V] range; a repeated key
// keeps the last value yielded for it.
func FromSeq[K cmp.Ordered, V any](seq iter.Seq2[K, V]) *Map[K, V] {
	m := New[K, V]()
	m.InsertSeq(seq)

	return m
}

// NewAscending bulk-builds a map directly from an already sorted,
// strictly-increasing-by-key sequence in O(n).
func NewAscending[K cmp.Ordered, V any](seq iter.Seq2[K, V]) (*Map[K, V], error) {
	return NewAscendingWith[K, V](cmp.GenericComparator[K], seq)
}

// NewAscendingWith is NewAscending with a custom comparator.
func NewAscendingWith[K comparable, V any](comparator cmp.Comparator[K], seq iter.Seq2[K, V]) (*Map[K, V], error) {
	tree, err := rbtree.ConstructFromAscending[K, V](comparator, false, seq)
	if err != nil {
		return nil, err
	}

	return &Map[K, V]{tree: tree}, nil
}

// --------------------------------------------------------------------------------
// Accessors

func (m *Map[K, V]) Len() int                      { return m.tree.Len() }
func (m *Map[K, V]) Empty() bool                   { return m.tree.Empty() }
func (m *Map[K, V]) Comparator() cmp.Comparator[K] { return m.tree.Comparator() }
func (m *Map[K, V]) Keys() []K                     { return m.tree.Keys() }
func (m *Map[K, V]) Values() []V                   { return m.tree.Values() }

func (m *Map[K, V]) Iter() iter.Seq2[K, V] { return m.tree.Iter() }

// At returns the value for key, or ErrKeyNotFound if absent.
func (m *Map[K, V]) At(key K) (V, error) {
	if v, ok := m.tree.Get(key); ok {
		return v, nil
	}

	var zero V

	return zero, fmt.Errorf("rbtreemap: %w: %v", rbtree.ErrKeyNotFound, key)
}

// GetOrInsert returns a pointer to key's value, creating a zero-valued
// entry first if key is absent (the index-operator equivalent: Go has no
// m[k] overload for a custom map type, so this is the insertion point a
// caller mutates through).
func (m *Map[K, V]) GetOrInsert(key K) *V {
	node := m.tree.GetNode(key)
	if node == nil {
		var zero V
		node, _ = m.tree.Put(key, zero)
	}

	return &node.Value
}

// --------------------------------------------------------------------------------
// Lookup

func (m *Map[K, V]) Contains(key K) bool { return m.tree.Contains(key) }

func (m *Map[K, V]) Count(key K) int {
	if m.tree.Contains(key) {
		return 1
	}

	return 0
}

func (m *Map[K, V]) Find(key K) (it *Iterator[K, V], ok bool) {
	node := m.tree.GetNode(key)
	if node == nil {
		return m.End(), false
	}

	return m.tree.IteratorAt(node), true
}

func (m *Map[K, V]) LowerBound(key K) *Iterator[K, V] { return cursorAt(m.tree, m.tree.LowerBound(key)) }
func (m *Map[K, V]) UpperBound(key K) *Iterator[K, V] { return cursorAt(m.tree, m.tree.UpperBound(key)) }

func (m *Map[K, V]) EqualRange(key K) (lower, upper *Iterator[K, V]) {
	return m.LowerBound(key), m.UpperBound(key)
}

func cursorAt[K comparable, V any](tree *rbtree.Tree[K, V], node *rbtree.Node[K, V]) *Iterator[K, V] {
	if node == nil {
		it := tree.Iterator()
		it.End()

		return it
	}

	return tree.IteratorAt(node)
}

// --------------------------------------------------------------------------------
// Mutation

// Insert sets key's value, overwriting it if key is already present.
// Returns the cursor and whether this was a new key.
func (m *Map[K, V]) Insert(key K, val V) (*Iterator[K, V], bool) {
	node, inserted := m.tree.Put(key, val)
	return m.tree.IteratorAt(node), inserted
}

// InsertHint inserts using hint as a conjectured insertion neighborhood.
func (m *Map[K, V]) InsertHint(hint *Iterator[K, V], key K, val V) (*Iterator[K, V], bool) {
	node, inserted := m.tree.PutHint(hint.Node(), key, val)
	return m.tree.IteratorAt(node), inserted
}

// InsertSeq inserts every pair from seq, in order.
func (m *Map[K, V]) InsertSeq(seq iter.Seq2[K, V]) int {
	n := 0

	for k, v := range seq {
		if _, inserted := m.tree.Put(k, v); inserted {
			n++
		}
	}

	return n
}

func (m *Map[K, V]) Emplace(key K, val V) (*Iterator[K, V], bool) { return m.Insert(key, val) }

func (m *Map[K, V]) EmplaceHint(hint *Iterator[K, V], key K, val V) (*Iterator[K, V], bool) {
	return m.InsertHint(hint, key, val)
}

// EmplaceAscending bulk-builds the map from an already ascending-by-key
// sequence in a single pass, replacing this map's contents.
func (m *Map[K, V]) EmplaceAscending(seq iter.Seq2[K, V]) error {
	built, err := NewAscendingWith[K, V](m.tree.Comparator(), seq)
	if err != nil {
		return err
	}

	m.tree.Discard()
	m.tree = built.tree

	return nil
}

// Erase removes the pair addressed by it, returning a cursor at the
// in-order successor (the pair now occupying the erased rank, or End).
func (m *Map[K, V]) Erase(it *Iterator[K, V]) (*Iterator[K, V], error) {
	node := it.Node()
	if node == nil {
		return nil, rbtree.ErrOutOfBounds
	}

	return cursorAt(m.tree, m.tree.DeleteNode(node)), nil
}

func (m *Map[K, V]) EraseRange(first, last *Iterator[K, V]) (int, error) {
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

		first = cursorAt(m.tree, m.tree.DeleteNode(node))
		last.Resync()
		n++
	}
}

func (m *Map[K, V]) EraseKey(key K) int {
	if m.tree.Delete(key) {
		return 1
	}

	return 0
}

func (m *Map[K, V]) Clear()            { m.tree.Clear() }
func (m *Map[K, V]) Clone() *Map[K, V] { return &Map[K, V]{tree: m.tree.Clone()} }

// Swap exchanges the contents of m and other in O(1), bumping both version
// counters.
func (m *Map[K, V]) Swap(other *Map[K, V]) {
	m.tree, other.tree = other.tree, m.tree
	m.tree.Touch()
	other.tree.Touch()
}

// Move replaces m's contents with other's, leaving other valid and empty.
// Cursors previously created from m report ErrStaleCursor.
func (m *Map[K, V]) Move(other *Map[K, V]) {
	m.tree.Discard()
	m.tree = other.tree
	other.tree = rbtree.NewWith[K, V](m.tree.Comparator())
	m.tree.Touch()
}

// Merge transfers every pair of other into m, leaving behind (in other)
// any key m already holds.
func (m *Map[K, V]) Merge(other *Map[K, V]) {
	type rejectedPair struct {
		key K
		val V
	}

	var rejected []rejectedPair

	for k, v := range other.tree.Iter() {
		if !m.tree.Contains(k) {
			m.tree.Put(k, v)
		} else {
			rejected = append(rejected, rejectedPair{k, v})
		}
	}

	other.Clear()

	for _, p := range rejected {
		other.tree.Put(p.key, p.val)
	}
}

func (m *Map[K, V]) Extract(it *Iterator[K, V]) *NodeHandle[K, V] {
	node := it.Node()
	if node == nil {
		return nil
	}

	return m.tree.Extract(node)
}

func (m *Map[K, V]) ExtractKey(key K) *NodeHandle[K, V] {
	node := m.tree.GetNode(key)
	if node == nil {
		return nil
	}

	return m.tree.Extract(node)
}

func (m *Map[K, V]) InsertNode(h *NodeHandle[K, V]) InsertResult[K, V] {
	node, inserted := m.tree.InsertNode(h)
	if !inserted {
		return InsertResult[K, V]{It: m.tree.IteratorAt(node), Inserted: false, Node: h}
	}

	return InsertResult[K, V]{It: m.tree.IteratorAt(node), Inserted: true}
}

// --------------------------------------------------------------------------------
// Iteration

func (m *Map[K, V]) Iterator() *Iterator[K, V] { return m.tree.Iterator() }

func (m *Map[K, V]) Begin() *Iterator[K, V] {
	it := m.tree.Iterator()
	it.Next()

	return it
}

func (m *Map[K, V]) End() *Iterator[K, V] {
	it := m.tree.Iterator()
	it.End()

	return it
}

// --------------------------------------------------------------------------------
// Equality, serialization, debug

func (m *Map[K, V]) Equal(other *Map[K, V], valEqual func(a, b V) bool) bool {
	if m.Len() != other.Len() {
		return false
	}

	ak, av := m.Keys(), m.Values()
	bk, bv := other.Keys(), other.Values()

	for i := range ak {
		if ak[i] != bk[i] || !valEqual(av[i], bv[i]) {
			return false
		}
	}

	return true
}

func (m *Map[K, V]) String() string {
	var sb strings.Builder

	sb.WriteString("Map[")

	first := true
	for k, v := range m.tree.Iter() {
		if !first {
			sb.WriteString(", ")
		}

		fmt.Fprintf(&sb, "%v:%v", k, v)
		first = false
	}

	sb.WriteString("]")

	return sb.String()
}

func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	keys, vals := m.tree.KeysAndValues()

	pairs := make([]struct {
		Key K `json:"key"`
		Val V `json:"val"`
	}, len(keys))

	for i := range keys {
		pairs[i].Key = keys[i]
		pairs[i].Val = vals[i]
	}

	return json.Marshal(pairs)
}

func (m *Map[K, V]) UnmarshalJSON(data []byte) error {
	var pairs []struct {
		Key K `json:"key"`
		Val V `json:"val"`
	}
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}

	m.Clear()

	for _, p := range pairs {
		m.tree.Put(p.Key, p.Val)
	}

	return nil
}
