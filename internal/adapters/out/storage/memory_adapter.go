package storage

import (
	"context"
	"sync"
)

type MemoryAdapter struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{blobs: make(map[string][]byte)}
}

func (m *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (m *MemoryAdapter) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryAdapter) Close() error {
	return nil
}
