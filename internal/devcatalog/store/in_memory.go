package store

import (
	"context"
	"slices"
	"sync"
	"time"

	perrors "github.com/abgdnv/gocommerce-admin/internal/devcatalog/errors"
	"github.com/abgdnv/gocommerce-admin/internal/product"
	"github.com/google/uuid"
)

// InMemoryStore implements ProductStore using an in-memory map.
// Every mutation bumps the product's revision and updatedAt.
type InMemoryStore struct {
	mu       sync.RWMutex
	products map[uuid.UUID]product.Product
	order    []uuid.UUID
	now      func() time.Time
}

// NewInMemoryStore creates a store holding a copy of seed. Seed products without a valid uuid id
// get a fresh one.
func NewInMemoryStore(seed []product.Product) *InMemoryStore {
	s := &InMemoryStore{
		products: make(map[uuid.UUID]product.Product, len(seed)),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, p := range seed {
		id, err := uuid.Parse(p.ID)
		if err != nil {
			id = uuid.New()
			p.ID = id.String()
		}
		s.products[id] = p
		s.order = append(s.order, id)
	}
	return s
}

func (s *InMemoryStore) FindAll(_ context.Context) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]product.Product, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.products[id])
	}
	return list, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &p, nil
}

func (s *InMemoryStore) Update(_ context.Context, id uuid.UUID, patch product.ProductPatch) (*product.Product, error) {
	return s.mutate(id, func(p *product.Product) {
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.SellingPrice != nil {
			p.SellingPrice = *patch.SellingPrice
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.IsAvailable != nil {
			p.IsAvailable = *patch.IsAvailable
		}
	})
}

func (s *InMemoryStore) UpdateStock(_ context.Context, id uuid.UUID, available bool) (*product.Product, error) {
	return s.mutate(id, func(p *product.Product) {
		p.IsAvailable = available
	})
}

func (s *InMemoryStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return perrors.ErrProductNotFound
	}
	delete(s.products, id)
	s.order = slices.DeleteFunc(s.order, func(v uuid.UUID) bool { return v == id })
	return nil
}

func (s *InMemoryStore) mutate(id uuid.UUID, apply func(*product.Product)) (*product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	apply(&p)
	p.Version++
	p.UpdatedAt = s.now()
	s.products[id] = p
	return &p, nil
}
