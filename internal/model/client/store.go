package client

import (
	"sync"

	"github.com/google/uuid"
)

// Store exposes client registration for HTTP handlers.
type Store interface {
	List() []Client
	Create(c Client) Client
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Client
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied clients.
func NewMemoryStore(items []Client) *MemoryStore {
	return &MemoryStore{items: append([]Client(nil), items...)}
}

// List returns the clients in registration order.
func (s *MemoryStore) List() []Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Client(nil), s.items...)
}

// Create assigns a fresh id and appends the client.
func (s *MemoryStore) Create(c Client) Client {
	c.ID = uuid.NewString()
	s.mu.Lock()
	s.items = append(s.items, c)
	s.mu.Unlock()
	return c
}
