// Package rbtreemultimap implements an ordered map that allows duplicate
// keys. Duplicates are always inserted (never overwritten); there is no
// At/GetOrInsert since "the" value for a key is ambiguous once duplicates
// exist.
package rbtreemultimap

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/qntx/rbcontainer/cmp"
	"github.com/qntx/rbcontainer/rbtree"
)

// Iterator is a cursor over a MultiMap.
type Iterator[K comparable, V any] = rbtree.Cursor[K, V]

// NodeHandle is a detached key-value token.
type NodeHandle[K comparable, V any] = rbtree.NodeHandle[K, V]

// MultiMap is an ordered map allowing duplicate keys, backed by a
// red-black tree with no rank/select augmentation.
type MultiMap[K comparable, V any] struct {
	tree *rbtree.Tree[K, V]
}

// New creates an empty multimap for an ordered key type.
func New[K cmp.Ordered, V any]() *MultiMap[K, V] {
	return NewWith[K, V](cmp.GenericComparator[K])
}

// NewWith creates an empty multimap using a custom ordering predicate.
func NewWith[K comparable, V any](comparator cmp.Comparator[K]) *MultiMap[K, V] {
	return &MultiMap[K, V]{tree: rbtree.NewMultiWith[K, V](comparator)}
}

// FromSeq builds a multimap from any iter.Seq2[K, V] range, keeping
// duplicate keys.
func FromSeq[K cmp.Ordered, V any](seq iter.Seq2[K, V]) *MultiMap[K, V] {
	m := New[K, V]()
	m.InsertSeq(seq)

	return m
}

// NewAscending bulk-builds a multimap from an already sorted,
// non-decreasing-by-key sequence in O(n).
func NewAscending[K cmp.Ordered, V any](seq iter.Seq2[K, V]) (*MultiMap[K, V], error) {
	return NewAscendingWith[K, V](cmp.GenericComparator[K], seq)
}

// NewAscendingWith is NewAscending with a custom comparator.
func NewAscendingWith[K comparable, V any](comparator cmp.Comparator[K], seq iter.Seq2[K, V]) (*MultiMap[K, V], error) {
	tree, err := rbtree.ConstructFromAscending[K, V](comparator, true, seq)
	if err != nil {
		return nil, err
	}

	return &MultiMap[K, V]{tree: tree}, nil
}

// --------------------------------------------------------------------------------
// Accessors

func (m *MultiMap[K, V]) Len() int                      { return m.tree.Len() }
func (m *MultiMap[K, V]) Empty() bool                   { return m.tree.Empty() }
func (m *MultiMap[K, V]) Comparator() cmp.Comparator[K] { return m.tree.Comparator() }
func (m *MultiMap[K, V]) Keys() []K                     { return m.tree.Keys() }
func (m *MultiMap[K, V]) Values() []V                   { return m.tree.Values() }

func (m *MultiMap[K, V]) Iter() iter.Seq2[K, V] { return m.tree.Iter() }

// --------------------------------------------------------------------------------
// Lookup

func (m *MultiMap[K, V]) Contains(key K) bool { return m.tree.Contains(key) }
func (m *MultiMap[K, V]) Count(key K) int     { return m.tree.Count(key) }

func (m *MultiMap[K, V]) Find(key K) (it *Iterator[K, V], ok bool) {
	node := m.tree.GetNode(key)
	if node == nil {
		return m.End(), false
	}

	return m.tree.IteratorAt(node), true
}

func (m *MultiMap[K, V]) LowerBound(key K) *Iterator[K, V] {
	return cursorAt(m.tree, m.tree.LowerBound(key))
}

func (m *MultiMap[K, V]) UpperBound(key K) *Iterator[K, V] {
	return cursorAt(m.tree, m.tree.UpperBound(key))
}

func (m *MultiMap[K, V]) EqualRange(key K) (lower, upper *Iterator[K, V]) {
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

// Insert always adds a new (key, val) pair, even if key already exists.
func (m *MultiMap[K, V]) Insert(key K, val V) *Iterator[K, V] {
	node, _ := m.tree.Put(key, val)
	return m.tree.IteratorAt(node)
}

func (m *MultiMap[K, V]) InsertHint(hint *Iterator[K, V], key K, val V) *Iterator[K, V] {
	node, _ := m.tree.PutHint(hint.Node(), key, val)
	return m.tree.IteratorAt(node)
}

func (m *MultiMap[K, V]) InsertSeq(seq iter.Seq2[K, V]) int {
	n := 0
	for k, v := range seq {
		m.tree.Put(k, v)
		n++
	}

	return n
}

func (m *MultiMap[K, V]) Emplace(key K, val V) *Iterator[K, V] { return m.Insert(key, val) }

func (m *MultiMap[K, V]) EmplaceHint(hint *Iterator[K, V], key K, val V) *Iterator[K, V] {
	return m.InsertHint(hint, key, val)
}

func (m *MultiMap[K, V]) EmplaceAscending(seq iter.Seq2[K, V]) error {
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
func (m *MultiMap[K, V]) Erase(it *Iterator[K, V]) (*Iterator[K, V], error) {
	node := it.Node()
	if node == nil {
		return nil, rbtree.ErrOutOfBounds
	}

	return cursorAt(m.tree, m.tree.DeleteNode(node)), nil
}

func (m *MultiMap[K, V]) EraseRange(first, last *Iterator[K, V]) (int, error) {
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

func (m *MultiMap[K, V]) EraseKey(key K) int {
	n := 0
	for m.tree.Delete(key) {
		n++
	}

	return n
}

func (m *MultiMap[K, V]) Clear()                 { m.tree.Clear() }
func (m *MultiMap[K, V]) Clone() *MultiMap[K, V] { return &MultiMap[K, V]{tree: m.tree.Clone()} }

// Swap exchanges the contents of m and other in O(1), bumping both version
// counters.
func (m *MultiMap[K, V]) Swap(other *MultiMap[K, V]) {
	m.tree, other.tree = other.tree, m.tree
	m.tree.Touch()
	other.tree.Touch()
}

// Move replaces m's contents with other's, leaving other valid and empty.
// Cursors previously created from m report ErrStaleCursor.
func (m *MultiMap[K, V]) Move(other *MultiMap[K, V]) {
	m.tree.Discard()
	m.tree = other.tree
	other.tree = rbtree.NewMultiWith[K, V](m.tree.Comparator())
	m.tree.Touch()
}

// Merge transfers every pair of other into m; multi containers never
// reject an insertion, so other is left empty.
func (m *MultiMap[K, V]) Merge(other *MultiMap[K, V]) {
	for k, v := range other.tree.Iter() {
		m.tree.Put(k, v)
	}

	other.Clear()
}

func (m *MultiMap[K, V]) Extract(it *Iterator[K, V]) *NodeHandle[K, V] {
	node := it.Node()
	if node == nil {
		return nil
	}

	return m.tree.Extract(node)
}

func (m *MultiMap[K, V]) ExtractKey(key K) *NodeHandle[K, V] {
	node := m.tree.GetNode(key)
	if node == nil {
		return nil
	}

	return m.tree.Extract(node)
}

// InsertNode re-attaches a detached pair; multi containers never reject.
func (m *MultiMap[K, V]) InsertNode(h *NodeHandle[K, V]) *Iterator[K, V] {
	node, _ := m.tree.InsertNode(h)
	return m.tree.IteratorAt(node)
}

// --------------------------------------------------------------------------------
// Iteration

func (m *MultiMap[K, V]) Iterator() *Iterator[K, V] { return m.tree.Iterator() }

func (m *MultiMap[K, V]) Begin() *Iterator[K, V] {
	it := m.tree.Iterator()
	it.Next()

	return it
}

func (m *MultiMap[K, V]) End() *Iterator[K, V] {
	it := m.tree.Iterator()
	it.End()

	return it
}

// --------------------------------------------------------------------------------
// Equality, serialization, debug

func (m *MultiMap[K, V]) Equal(other *MultiMap[K, V], valEqual func(a, b V) bool) bool {
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

func (m *MultiMap[K, V]) String() string {
	var sb strings.Builder

	sb.WriteString("MultiMap[")

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

func (m *MultiMap[K, V]) MarshalJSON() ([]byte, error) {
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

func (m *MultiMap[K, V]) UnmarshalJSON(data []byte) error {
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
