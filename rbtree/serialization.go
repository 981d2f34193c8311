package rbtree

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/qntx/rbcontainer/container"
)

// Predefined errors for JSON operations.
var (
	ErrMarshalJSONFailure   = errors.New("rbtree: failed to marshal tree to JSON")
	ErrUnmarshalJSONFailure = errors.New("rbtree: failed to unmarshal JSON into tree")
)

// Ensure Tree implements container.JSONCodec and container.Tree at
// compile time.
var (
	_ container.JSONCodec         = (*Tree[string, int])(nil)
	_ container.Tree[string, int] = (*Tree[string, int])(nil)
)

// ToJSON serializes the tree's key-value pairs into a JSON object. A multi
// tree's duplicate keys collapse to their last-inserted value, matching
// map[K]V's own semantics; round-tripping a multi tree through JSON is
// therefore lossy by construction, not a bug in this encoding.
//
// Time complexity: O(n).
func (t *Tree[K, V]) ToJSON() ([]byte, error) {
	elems := make(map[K]V, t.Len())
	for k, v := range t.Iter() {
		elems[k] = v
	}

	data, err := json.Marshal(elems)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarshalJSONFailure, err)
	}

	return data, nil
}

// FromJSON clears the tree and repopulates it from a JSON object.
//
// Time complexity: O(n log n).
func (t *Tree[K, V]) FromJSON(data []byte) error {
	var elems map[K]V
	if err := json.Unmarshal(data, &elems); err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshalJSONFailure, err)
	}

	t.Clear()

	for k, v := range elems {
		t.Put(k, v)
	}

	return nil
}

func (t *Tree[K, V]) MarshalJSON() ([]byte, error) { return t.ToJSON() }
func (t *Tree[K, V]) UnmarshalJSON(data []byte) error { return t.FromJSON(data) }
