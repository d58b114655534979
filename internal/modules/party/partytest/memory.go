// Package partytest provides an in-memory party.Repository.
package partytest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/modules/party"
)

type Repository struct {
	mu      sync.Mutex
	parties map[uuid.UUID]*party.Party
}

func NewRepository() *Repository {
	return &Repository{parties: map[uuid.UUID]*party.Party{}}
}

// Seed stores p and returns it.
func (r *Repository) Seed(p *party.Party) *party.Party {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.parties[p.ID] = &cp
	return p
}

func (r *Repository) Create(_ context.Context, p *party.Party) error {
	r.Seed(p)
	return nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*party.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.parties[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *Repository) List(_ context.Context, kind party.Kind, shopID uuid.UUID) ([]*party.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*party.Party{}
	for _, p := range r.parties {
		if p.Kind == kind && p.ShopID == shopID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *Repository) Update(_ context.Context, p *party.Party) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.parties[p.ID]; !ok {
		return database.ErrNotFound
	}
	cp := *p
	r.parties[p.ID] = &cp
	return nil
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.parties[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.parties, id)
	return nil
}
