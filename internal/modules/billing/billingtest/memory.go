// Package billingtest provides in-memory billing storage.
package billingtest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/modules/billing"
	"github.com/georgemunganga/shopstock-backend/internal/modules/party"
)

type Repository struct {
	mu    sync.Mutex
	bills map[uuid.UUID]*billing.Bill // keyed by transaction
}

func NewRepository() *Repository {
	return &Repository{bills: map[uuid.UUID]*billing.Bill{}}
}

func (r *Repository) CreateBill(_ context.Context, b *billing.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bills[b.TransactionID]; ok {
		return database.ErrConflict
	}
	cp := *b
	r.bills[b.TransactionID] = &cp
	return nil
}

func (r *Repository) GetBillByTransaction(_ context.Context, transactionID uuid.UUID) (*billing.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[transactionID]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *Repository) GetBillForUpdate(ctx context.Context, transactionID uuid.UUID) (*billing.Bill, error) {
	return r.GetBillByTransaction(ctx, transactionID)
}

func (r *Repository) UpdatePaid(_ context.Context, b *billing.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bills[b.TransactionID]
	if !ok {
		return database.ErrNotFound
	}
	if b.Paid > stored.Amount || b.Due != stored.Amount-b.Paid {
		return database.ErrCheckViolation
	}
	stored.Paid, stored.Due = b.Paid, b.Due
	return nil
}

func (r *Repository) ListOutstanding(_ context.Context, kind party.Kind, shopID uuid.UUID) ([]*billing.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*billing.Bill{}
	for _, b := range r.bills {
		if b.Kind == kind && b.ShopID == shopID && b.Due > 0 {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Summaries is a billing.TransactionSource backed by a map.
type Summaries map[uuid.UUID]*billing.Summary

func (s Summaries) Summarize(_ context.Context, transactionID uuid.UUID) (*billing.Summary, error) {
	sum, ok := s[transactionID]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *sum
	return &cp, nil
}
