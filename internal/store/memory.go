package store

import (
	"context"
	"sync"
)

// Memory is an in-process KV used in tests and when no store path is
// configured. Entries do not survive a restart.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte

	// FailSet, when set, makes every Set return this error. Tests use it to
	// simulate an unavailable or full store.
	FailSet error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: map[string][]byte{}}
}

// Get implements KV.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

// Set implements KV.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		return m.FailSet
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	m.entries[key] = cp
	return nil
}

// Close implements KV.
func (m *Memory) Close() error { return nil }
