package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for product data storage.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// GetForUpdate reads the product and locks its row until the surrounding
	// store transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, shopID uuid.UUID) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AdjustStock adds delta to the product's stock and returns the new value.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (int64, error)
}
