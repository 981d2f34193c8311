package rbtreeset

import (
	"github.com/qntx/rbcontainer/container"
)

var (
	_ container.EnumerableWithIndex[int] = (*Set[int])(nil)
	_ container.Container[int]           = (*Set[int])(nil)
)

// Each calls the given function once for each element in ascending order,
// passing that element's rank and value.
func (s *Set[T]) Each(f func(index int, value T)) {
	i := 0
	for v := range s.Iter() {
		f(i, v)
		i++
	}
}

// Map invokes the given function once for each element and returns a new
// set containing the values returned by the given function.
func (s *Set[T]) Map(f func(index int, value T) T) *Set[T] {
	res := NewWith[T](s.tree.Comparator())

	i := 0
	for v := range s.Iter() {
		res.Add(f(i, v))
		i++
	}

	return res
}

// Select returns a new set containing every element for which the given
// function returns true.
func (s *Set[T]) Select(f func(index int, value T) bool) *Set[T] {
	res := NewWith[T](s.tree.Comparator())

	i := 0
	for v := range s.Iter() {
		if f(i, v) {
			res.Add(v)
		}

		i++
	}

	return res
}

// Any reports whether the given function returns true for at least one element.
func (s *Set[T]) Any(f func(index int, value T) bool) bool {
	i := 0
	for v := range s.Iter() {
		if f(i, v) {
			return true
		}

		i++
	}

	return false
}

// All reports whether the given function returns true for every element.
func (s *Set[T]) All(f func(index int, value T) bool) bool {
	i := 0
	for v := range s.Iter() {
		if !f(i, v) {
			return false
		}

		i++
	}

	return true
}

// Find returns the rank and value of the first element for which the given
// function returns true, or (-1, zero value) if no element matches.
func (s *Set[T]) Find(f func(index int, value T) bool) (int, T) {
	i := 0
	for v := range s.Iter() {
		if f(i, v) {
			return i, v
		}

		i++
	}

	var zero T

	return -1, zero
}
