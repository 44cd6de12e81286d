package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryBackend keeps everything in process memory. Used by tests and
// ephemeral runs; contents vanish on exit.
type MemoryBackend struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: map[string][]byte{}}
}

func (m *MemoryBackend) GetItem(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryBackend) SetItem(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) SetItems(_ context.Context, items map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range items {
		m.items[k] = append([]byte(nil), v...)
	}
	return nil
}

func (m *MemoryBackend) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *MemoryBackend) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []string{}
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryBackend) Ping(context.Context) error { return nil }

func (m *MemoryBackend) Close() error { return nil }
