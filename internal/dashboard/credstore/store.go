// Package credstore provides persistence for the dashboard's client
// credentials: the bearer token and the ID of the user it was issued
// for. Implementations satisfy usersdk.CredentialStore so the API
// client can be wired to durable storage, while tests and ephemeral
// runs use the in-memory variant.
package credstore

import (
	"context"
	"sync"

	"github.com/tabwave/userdash/pkg/usersdk"
)

// Memory is a CredentialStore held entirely in process memory. It is
// the storage used when no credentials file is configured, and the
// substitution point for tests.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory credential store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key, or
// usersdk.ErrCredentialNotFound when absent.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return "", usersdk.ErrCredentialNotFound
	}
	return value, nil
}

// Set stores value under key, overwriting any previous value.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Delete removes the value stored under key. Deleting an absent key is
// not an error.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}
