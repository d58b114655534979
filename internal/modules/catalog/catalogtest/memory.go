// Package catalogtest provides an in-memory catalog.Repository.
package catalogtest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/modules/catalog"
)

type Repository struct {
	mu       sync.Mutex
	products map[uuid.UUID]*catalog.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[uuid.UUID]*catalog.Product{}}
}

// Seed stores p as-is and returns it.
func (r *Repository) Seed(p *catalog.Product) *catalog.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.products[p.ID] = &cp
	return p
}

// Stock returns the current stock of id, or -1 when it does not exist.
func (r *Repository) Stock(id uuid.UUID) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return -1
	}
	return p.Stock
}

func (r *Repository) Create(_ context.Context, p *catalog.Product) error {
	r.Seed(p)
	return nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *Repository) GetForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *Repository) List(_ context.Context, shopID uuid.UUID) ([]*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*catalog.Product{}
	for _, p := range r.products {
		if p.ShopID == shopID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) Update(_ context.Context, p *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return database.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) AdjustStock(_ context.Context, id uuid.UUID, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return 0, database.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return 0, catalog.ErrInsufficientStock
	}
	p.Stock += delta
	return p.Stock, nil
}
