package storage

import (
	"context"
	"sync"
)

// MemoryStore implements Store with an in-memory snapshot. It provides no
// durability across restarts and exists as the default backend and for
// tests.
type MemoryStore struct {
	mu    sync.RWMutex
	paths []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the last saved path set.
func (m *MemoryStore) Load(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]string, len(m.paths))
	copy(paths, m.paths)
	return paths, nil
}

// Save replaces the stored set with a copy of paths.
func (m *MemoryStore) Save(_ context.Context, paths []string) error {
	snapshot := make([]string, len(paths))
	copy(snapshot, paths)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths = snapshot
	return nil
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close() error {
	return nil
}
