package storage

import (
	"sync"

	"storefront/internal/models"
)

// MemoryStore is an in-memory implementation of ProductStore.
type MemoryStore struct {
	products []models.Product
	saveErr  error
	mu       sync.RWMutex
}

// NewMemoryStore creates a MemoryStore holding seed.
func NewMemoryStore(seed ...models.Product) *MemoryStore {
	return &MemoryStore{
		products: copyProducts(seed),
	}
}

// Load returns a copy of the stored collection.
func (s *MemoryStore) Load() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyProducts(s.products)
}

// Save replaces the stored collection.
func (s *MemoryStore) Save(products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return &StorageError{Op: "save", Err: s.saveErr}
	}
	s.products = copyProducts(products)
	return nil
}

// FailSaves makes every following Save fail with err. A nil err restores normal behaviour.
func (s *MemoryStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveErr = err
}
