// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store. Contents are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, browserID, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[browserID][key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, browserID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.slots[browserID]
	if !ok {
		b = make(map[string]string)
		m.slots[browserID] = b
	}
	b[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, browserID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots[browserID], key)
	if len(m.slots[browserID]) == 0 {
		delete(m.slots, browserID)
	}
	return nil
}
