package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps timestamps in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{last: make(map[string]time.Time)}
}

func (m *MemoryStore) Last(_ context.Context, key string) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.last[key]
	return t, ok, nil
}

func (m *MemoryStore) Record(_ context.Context, key string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last[key] = at
	return nil
}
