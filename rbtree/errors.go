// Package rbtree implements the red-black tree engine shared by every
// ordered container in this module: sets, maps, and their order-statistics
// ("p"-prefixed) counterparts all delegate to a Tree or ITree here.
//
// Reference: https://en.wikipedia.org/wiki/Red%E2%80%93black_tree
package rbtree

import "errors"

// Sentinel errors shared by every façade package built on this engine.
// Façades re-wrap these with fmt.Errorf("...: %w", ...) for context; they
// never redeclare the sentinel itself, so callers can always errors.Is
// against the values here.
var (
	// ErrKeyNotFound is returned by rbtreemap's At and rbtreepmap's Get when
	// the key is absent.
	ErrKeyNotFound = errors.New("rbtree: key not found")

	// ErrOutOfBounds is returned by cursor dereference/advance/erase past
	// either end of the tree, and by range-erase with first after last.
	ErrOutOfBounds = errors.New("rbtree: cursor out of bounds")

	// ErrStaleCursor is returned when a cursor's backing tree has been
	// discarded (move-assign, ascending rebuild) since the cursor was
	// created. Swap does not make cursors stale.
	ErrStaleCursor = errors.New("rbtree: cursor's tree is no longer reachable")

	// ErrCrossContainerCompare is returned by cursor Compare/Equal across
	// two different trees.
	ErrCrossContainerCompare = errors.New("rbtree: cursors belong to different trees")

	// ErrOrderViolation is returned by ConstructFromAscending when the
	// input iterator is not monotonically ordered.
	ErrOrderViolation = errors.New("rbtree: input sequence is not ascending")

	// ErrInvalidKeyType names a key whose type does not match the
	// comparator. No function in this module returns it; a comparator that
	// panics on a key propagates its panic unchanged.
	ErrInvalidKeyType = errors.New("rbtree: key type does not match comparator")
)
