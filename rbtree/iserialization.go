package rbtree

import (
	"encoding/json"
	"fmt"

	"github.com/qntx/rbcontainer/container"
)

// Ensure ITree implements container.JSONCodec and container.Tree at
// compile time.
var (
	_ container.JSONCodec         = (*ITree[string, int])(nil)
	_ container.Tree[string, int] = (*ITree[string, int])(nil)
)

// ToJSON serializes the tree's key-value pairs into a JSON object, with the
// same last-write-wins collapsing of duplicate keys as Tree.ToJSON.
//
// Time complexity: O(n).
func (t *ITree[K, V]) ToJSON() ([]byte, error) {
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
func (t *ITree[K, V]) FromJSON(data []byte) error {
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

func (t *ITree[K, V]) MarshalJSON() ([]byte, error)   { return t.ToJSON() }
func (t *ITree[K, V]) UnmarshalJSON(data []byte) error { return t.FromJSON(data) }
