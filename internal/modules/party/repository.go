package party

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines customer and vendor storage.
type Repository interface {
	Create(ctx context.Context, p *Party) error
	GetByID(ctx context.Context, id uuid.UUID) (*Party, error)
	List(ctx context.Context, kind Kind, shopID uuid.UUID) ([]*Party, error)
	Update(ctx context.Context, p *Party) error
	Delete(ctx context.Context, id uuid.UUID) error
}
