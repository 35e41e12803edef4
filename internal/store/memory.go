package store

import (
	"context"
	"sync"
)

// MemoryKV is an in-memory implementation of KV. It is safe for concurrent
// use; data is lost when the process exits.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryKV creates an empty in-memory key-value store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		values: make(map[string][]byte),
	}
}

// Get implements the KV interface.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.values[key]
	if !exists {
		return nil, false, nil
	}

	// Return a copy to avoid external modifications
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, true, nil
}

// Set implements the KV interface.
func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	m.values[key] = cp

	return nil
}

// Delete implements the KV interface.
func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Ensure MemoryKV implements the KV interface.
var _ KV = (*MemoryKV)(nil)
