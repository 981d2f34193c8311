package rbtreebidimap

import (
	"github.com/qntx/rbcontainer/container"
)

var _ container.EnumerableWithKey[string, int] = (*Map[string, int])(nil)

// Each calls the given function once for each pair, in ascending key order.
func (m *Map[K, V]) Each(f func(key K, value V)) {
	for k, v := range m.forward.Iter() {
		f(k, v)
	}
}

// Any reports whether the given function returns true for at least one
// pair, visiting pairs in ascending key order.
func (m *Map[K, V]) Any(f func(key K, value V) bool) bool {
	for k, v := range m.forward.Iter() {
		if f(k, v) {
			return true
		}
	}

	return false
}

// All reports whether the given function returns true for every pair.
func (m *Map[K, V]) All(f func(key K, value V) bool) bool {
	for k, v := range m.forward.Iter() {
		if !f(k, v) {
			return false
		}
	}

	return true
}

// Find returns the first pair (in ascending key order) for which the
// given function returns true, or zero values if no pair matches.
func (m *Map[K, V]) Find(f func(key K, value V) bool) (K, V) {
	for k, v := range m.forward.Iter() {
		if f(k, v) {
			return k, v
		}
	}

	var (
		zeroK K
		zeroV V
	)

	return zeroK, zeroV
}
