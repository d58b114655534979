package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/modules/billing"
	"github.com/georgemunganga/shopstock-backend/internal/modules/catalog"
	"github.com/georgemunganga/shopstock-backend/internal/modules/party"
)

// Repository defines transaction and item storage. It also feeds billing
// with item totals.
type Repository interface {
	billing.TransactionSource

	CreateTransaction(ctx context.Context, t *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	// GetTransactionForUpdate locks the header row, serializing item changes
	// against billing of the same transaction.
	GetTransactionForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, kind party.Kind, shopID uuid.UUID) ([]*Transaction, error)

	AddItem(ctx context.Context, it *Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	ListItems(ctx context.Context, transactionID uuid.UUID) ([]*Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// ProductStore is the part of the catalog repository orders read and adjust.
type ProductStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (int64, error)
}
