package ask

import (
	"slices"
	"sync"
)

// Storage is a persistent name/value association scoped to a project.
//
// Get reports ok=false when nothing is stored under name. Values round-trip
// as opaque data.
type Storage interface {
	Get(name string) (value any, ok bool, err error)
	Set(name string, value any) error
}

// MemoryStore is an in-memory Storage. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMemoryStore returns a store seeded with a copy of initial.
func NewMemoryStore(initial map[string]any) *MemoryStore {
	values := make(map[string]any, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &MemoryStore{values: values}
}

// Get implements Storage.
func (m *MemoryStore) Get(name string) (any, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[name]
	return v, ok, nil
}

// Set implements Storage.
func (m *MemoryStore) Set(name string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]any)
	}
	m.values[name] = value
	return nil
}

// Delete removes name from the store.
func (m *MemoryStore) Delete(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, name)
}

// Keys returns the stored names in sorted order.
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
