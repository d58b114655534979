package shop

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines shop data storage.
type Repository interface {
	CreateShop(ctx context.Context, s *Shop) error
	GetShopByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	// ListShops returns every shop when ownerID is nil.
	ListShops(ctx context.Context, ownerID *uuid.UUID) ([]*Shop, error)
	UpdateShop(ctx context.Context, s *Shop) error
}
