// Package ordertest provides an in-memory order.Repository.
package ordertest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/modules/billing"
	"github.com/georgemunganga/shopstock-backend/internal/modules/order"
	"github.com/georgemunganga/shopstock-backend/internal/modules/party"
)

type Repository struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]*order.Transaction
	items        []*order.Item
}

func NewRepository() *Repository {
	return &Repository{transactions: map[uuid.UUID]*order.Transaction{}}
}

func (r *Repository) CreateTransaction(_ context.Context, t *order.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.OrderTime = time.Now()
	cp := *t
	r.transactions[t.ID] = &cp
	return nil
}

func (r *Repository) GetTransaction(_ context.Context, id uuid.UUID) (*order.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *Repository) GetTransactionForUpdate(ctx context.Context, id uuid.UUID) (*order.Transaction, error) {
	return r.GetTransaction(ctx, id)
}

func (r *Repository) ListTransactions(_ context.Context, kind party.Kind, shopID uuid.UUID) ([]*order.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*order.Transaction{}
	for _, t := range r.transactions {
		if t.Kind == kind && t.ShopID == shopID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func sameRef(a, b *uuid.UUID) bool {
	return a != nil && b != nil && *a == *b
}

// AddItem mirrors UNIQUE (transaction_id, product_id, warehouse_id), where
// NULLs never collide.
func (r *Repository) AddItem(_ context.Context, it *order.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.TransactionID == it.TransactionID &&
			sameRef(existing.ProductID, it.ProductID) &&
			sameRef(existing.WarehouseID, it.WarehouseID) {
			return database.ErrConflict
		}
	}
	cp := *it
	r.items = append(r.items, &cp)
	return nil
}

func (r *Repository) GetItem(_ context.Context, id uuid.UUID) (*order.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (r *Repository) ListItems(_ context.Context, transactionID uuid.UUID) ([]*order.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*order.Item{}
	for _, it := range r.items {
		if it.TransactionID == transactionID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *Repository) DeleteItem(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (r *Repository) Summarize(ctx context.Context, transactionID uuid.UUID) (*billing.Summary, error) {
	t, err := r.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	items, err := r.ListItems(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	sum := &billing.Summary{TransactionID: t.ID, ShopID: t.ShopID, Kind: t.Kind}
	for _, it := range items {
		sum.ItemsTotal += it.Bill
	}
	return sum, nil
}
