package reservation

import (
	"sync"

	"github.com/google/uuid"
)

// Store exposes hall reservations for HTTP handlers.
type Store interface {
	List() []Reservation
	Create(r Reservation) Reservation
	Delete(id string) bool
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Reservation
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied
// reservations.
func NewMemoryStore(items []Reservation) *MemoryStore {
	return &MemoryStore{items: append([]Reservation(nil), items...)}
}

// List returns the reservations in booking order.
func (s *MemoryStore) List() []Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Reservation(nil), s.items...)
}

// Create assigns a fresh id and appends the reservation.
func (s *MemoryStore) Create(r Reservation) Reservation {
	r.ID = uuid.NewString()
	s.mu.Lock()
	s.items = append(s.items, r)
	s.mu.Unlock()
	return r
}

// Delete cancels the reservation with the given id.
func (s *MemoryStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}
