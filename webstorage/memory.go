package webstorage

import (
	"slices"
	"sync"
)

// MemoryBackend is a volatile Backend keeping items in a process local map.
// It is safe for concurrent access and best suited for tests, session-scoped
// values and ephemeral tools.
type MemoryBackend struct {
	mu    sync.RWMutex
	items map[string]string
	order []string
}

var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: make(map[string]string)}
}

// GetItem implements Backend.
func (m *MemoryBackend) GetItem(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// SetItem implements Backend. Overwriting keeps the key's original position.
func (m *MemoryBackend) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.items[key]; !exists {
		m.order = append(m.order, key)
	}
	m.items[key] = value
	return nil
}

// RemoveItem implements Backend.
func (m *MemoryBackend) RemoveItem(key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[key]; !ok {
		return false, nil
	}
	delete(m.items, key)
	m.order = slices.DeleteFunc(m.order, func(k string) bool { return k == key })
	return true, nil
}

// Key implements Backend.
func (m *MemoryBackend) Key(i int) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i < 0 || i >= len(m.order) {
		return "", ErrNotFound
	}
	return m.order[i], nil
}

// Keys implements Backend. The slice is a snapshot and safe for caller mutation.
func (m *MemoryBackend) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order), nil
}

// Length implements Backend.
func (m *MemoryBackend) Length() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order), nil
}

// Clear implements Backend.
func (m *MemoryBackend) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]string)
	m.order = nil
	return nil
}
