// Package kvstore provides the durable local key-value storage used to
// persist client-side state (the cart snapshot and display preferences).
package kvstore

import (
	"sync"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
)

// Store is string key-value storage with last-write-wins semantics.
// Get returns domain.ErrNotFound when the key is absent.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Memory is an in-process Store used in tests and as a fallback when no
// durable path is configured.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
