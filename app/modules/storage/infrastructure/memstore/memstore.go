package memstore

import (
	"context"
	"sync"

	"github.com/Black-And-White-Club/esportivo/app/modules/storage"
)

// Impl is a process-local backend. Entries vanish when the process exits.
type Impl struct {
	mu      sync.RWMutex
	entries map[string]string
}

// New returns an empty in-memory backend.
func New() *Impl {
	return &Impl{entries: make(map[string]string)}
}

// Get implements storage.Backend.
func (m *Impl) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

// Set implements storage.Backend.
func (m *Impl) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

// Delete implements storage.Backend.
func (m *Impl) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Snapshot copies the current entries.
func (m *Impl) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}
