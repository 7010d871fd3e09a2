package catalog

import (
	"sync"

	"github.com/google/uuid"
)

// Store exposes product lookup and management for HTTP handlers and the
// billing services.
type Store interface {
	List() []Product
	FindByID(id string) (Product, bool)
	Create(p Product) Product
	Update(id string, p Product) (Product, bool)
	Delete(id string) bool
}

// MemoryStore implements Store with an in-memory slice, suitable for a
// single-process console.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Product
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied products.
func NewMemoryStore(items []Product) *MemoryStore {
	return &MemoryStore{items: append([]Product(nil), items...)}
}

// List returns the products in registration order.
func (s *MemoryStore) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Product(nil), s.items...)
}

// FindByID looks up a product by identifier.
func (s *MemoryStore) FindByID(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Product{}, false
}

// Create assigns a fresh id and appends the product.
func (s *MemoryStore) Create(p Product) Product {
	p.ID = uuid.NewString()
	s.mu.Lock()
	s.items = append(s.items, p)
	s.mu.Unlock()
	return p
}

// Update replaces the named product in place, keeping its id.
func (s *MemoryStore) Update(id string, p Product) (Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.ID == id {
			p.ID = id
			s.items[i] = p
			return p, true
		}
	}
	return Product{}, false
}

// Delete removes the product from the registry. Receipts already recorded
// against it keep the prices they copied.
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
