package conversation

import (
	"context"
	"encoding/json"

	"github.com/alphadose/haxmap"
)

// MemoryAdapter keeps messages in a lock-free concurrent map.
type MemoryAdapter struct {
	data *haxmap.Map[string, json.RawMessage]
}

// NewMemoryAdapter creates a new in-memory adapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		data: haxmap.New[string, json.RawMessage](),
	}
}

func (m *MemoryAdapter) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	v, ok := m.data.Get(key)
	return v, ok, nil
}

func (m *MemoryAdapter) Set(_ context.Context, key string, value json.RawMessage) error {
	m.data.Set(key, value)
	return nil
}

func (m *MemoryAdapter) Delete(_ context.Context, key string) error {
	m.data.Del(key)
	return nil
}

func (m *MemoryAdapter) Len(_ context.Context) (int, error) {
	return int(m.data.Len()), nil
}

func (m *MemoryAdapter) Clear(_ context.Context) error {
	var keys []string
	m.data.ForEach(func(k string, _ json.RawMessage) bool {
		keys = append(keys, k)
		return true
	})
	m.data.Del(keys...)
	return nil
}

var _ Adapter = (*MemoryAdapter)(nil)
