package rbtreebidimap

import (
	"encoding/json"

	"github.com/qntx/rbcontainer/container"
)

// Assert Serialization and BidiMap implementation.
var (
	_ container.JSONCodec            = (*Map[string, int])(nil)
	_ container.BidiMap[string, int] = (*Map[string, int])(nil)
)

// MarshalJSON @implements json.Marshaler.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	return m.forward.MarshalJSON()
}

// UnmarshalJSON @implements json.Unmarshaler.
func (m *Map[K, V]) UnmarshalJSON(data []byte) error {
	var elements map[K]V

	err := json.Unmarshal(data, &elements)
	if err != nil {
		return err
	}

	m.Clear()

	for key, value := range elements {
		m.Put(key, value)
	}

	return nil
}
