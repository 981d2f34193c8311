// Package rbtreebidimap implements a bidirectional map backed by two
// order-statistics red-black trees kept in lockstep: one ordered by key,
// one ordered by value.
//
// The (key, value) pairs form a one-to-one correspondence, so a value can
// also act as a key to look its key back up. Put evicts whichever existing
// pair collides on either side. Backing both directions with rbtree.ITree
// gives O(log N) rank access over both orderings: At selects the i-th pair
// by key order, AtValue the i-th by value order, and IndexOfKey and
// IndexOfValue report a pair's rank on each side.
//
// Structure is not thread safe.
//
// Reference: https://en.wikipedia.org/wiki/Bidirectional_map
package rbtreebidimap

import (
	"fmt"
	"strings"

	"github.com/qntx/rbcontainer/cmp"
	"github.com/qntx/rbcontainer/rbtree"
)

// Map holds the pairs in two order-statistics red-black trees.
type Map[K, V comparable] struct {
	forward *rbtree.ITree[K, V]
	inverse *rbtree.ITree[V, K]
}

// New instantiates a bidirectional map for ordered key and value types.
func New[K, V cmp.Ordered]() *Map[K, V] {
	return &Map[K, V]{
		forward: rbtree.NewIndexed[K, V](),
		inverse: rbtree.NewIndexed[V, K](),
	}
}

// NewWith instantiates a bidirectional map with custom comparators for the
// key and value orderings.
func NewWith[K, V comparable](keyComparator cmp.Comparator[K], valueComparator cmp.Comparator[V]) *Map[K, V] {
	return &Map[K, V]{
		forward: rbtree.NewIndexedWith[K, V](keyComparator),
		inverse: rbtree.NewIndexedWith[V, K](valueComparator),
	}
}

// Put inserts the pair, evicting any existing pair that collides with it
// on the key or on the value side.
func (m *Map[K, V]) Put(key K, value V) {
	if v, ok := m.forward.Get(key); ok {
		m.inverse.Delete(v)
	}

	if k, ok := m.inverse.Get(value); ok {
		m.forward.Delete(k)
	}

	m.forward.Put(key, value)
	m.inverse.Put(value, key)
}

// Get searches the element in the map by key and returns its value.
// Second return parameter is true if key was found, otherwise false.
func (m *Map[K, V]) Get(key K) (value V, found bool) {
	return m.forward.Get(key)
}

// GetKey searches the element in the map by value and returns its key.
// Second return parameter is true if value was found, otherwise false.
func (m *Map[K, V]) GetKey(value V) (key K, found bool) {
	return m.inverse.Get(value)
}

// At returns the pair at in-order rank i (0-based) of the key ordering in
// O(log N), or ok=false if i is out of [0, Len()).
func (m *Map[K, V]) At(i int) (key K, value V, ok bool) {
	node := m.forward.At(i)
	if node == nil {
		return key, value, false
	}

	return node.Key, node.Value, true
}

// AtValue returns the pair at in-order rank i of the value ordering in
// O(log N), or ok=false if i is out of [0, Len()).
func (m *Map[K, V]) AtValue(i int) (key K, value V, ok bool) {
	node := m.inverse.At(i)
	if node == nil {
		return key, value, false
	}

	return node.Value, node.Key, true
}

// IndexOfKey returns key's rank within the key ordering in O(log N), or
// -1 if key is absent.
func (m *Map[K, V]) IndexOfKey(key K) int {
	node := m.forward.GetNode(key)
	if node == nil {
		return -1
	}

	return m.forward.IndexOf(node)
}

// IndexOfValue returns value's rank within the value ordering in
// O(log N), or -1 if value is absent.
func (m *Map[K, V]) IndexOfValue(value V) int {
	node := m.inverse.GetNode(value)
	if node == nil {
		return -1
	}

	return m.inverse.IndexOf(node)
}

// Iterator returns a cursor over the pairs in ascending key order,
// positioned before the first pair.
func (m *Map[K, V]) Iterator() *rbtree.ICursor[K, V] {
	return m.forward.Iterator()
}

// InverseIterator returns a cursor over the pairs in ascending value
// order, positioned before the first pair. Its Key() is the pair's value
// and its Value() the pair's key.
func (m *Map[K, V]) InverseIterator() *rbtree.ICursor[V, K] {
	return m.inverse.Iterator()
}

// Remove removes the element from the map by key.
func (m *Map[K, V]) Remove(key K) {
	if v, found := m.forward.Get(key); found {
		m.forward.Delete(key)
		m.inverse.Delete(v)
	}
}

// Empty returns true if map does not contain any elements
func (m *Map[K, V]) Empty() bool {
	return m.Len() == 0
}

// Len returns number of elements in the map.
func (m *Map[K, V]) Len() int {
	return m.forward.Len()
}

// Keys returns all keys (ordered).
func (m *Map[K, V]) Keys() []K {
	return m.forward.Keys()
}

// Values returns all values (ordered).
func (m *Map[K, V]) Values() []V {
	return m.inverse.Keys()
}

// Clear removes all elements from the map.
func (m *Map[K, V]) Clear() {
	m.forward.Clear()
	m.inverse.Clear()
}

// String returns a string representation of container
func (m *Map[K, V]) String() string {
	str := "TreeBidiMap\nmap["
	it := m.forward.Iterator()
	for it.Next() {
		str += fmt.Sprintf("%v:%v ", it.Key(), it.Value())
	}
	return strings.TrimRight(str, " ") + "]"
}
