package party

import (
	"context"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/validation"
)

const maxContactLen = 15

// Service defines customer and vendor business logic. Every call names the
// kind it expects; a record of the other kind is reported as ErrKindMismatch.
type Service interface {
	Create(ctx context.Context, kind Kind, req CreateRequest) (*Party, error)
	Get(ctx context.Context, kind Kind, id uuid.UUID) (*Party, error)
	List(ctx context.Context, kind Kind, shopID uuid.UUID) ([]*Party, error)
	Update(ctx context.Context, kind Kind, id uuid.UUID, req UpdateRequest) (*Party, error)
	Delete(ctx context.Context, kind Kind, id uuid.UUID) error
}

// CreateRequest holds data for adding a customer or vendor.
type CreateRequest struct {
	ShopID  uuid.UUID `json:"shop_id"`
	Name    string    `json:"name"`
	Contact string    `json:"contact"`
}

// UpdateRequest carries a partial update.
type UpdateRequest struct {
	Name    *string `json:"name,omitempty"`
	Contact *string `json:"contact,omitempty"`
}

type service struct {
	repo Repository
}

// NewService creates a new party service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, kind Kind, req CreateRequest) (*Party, error) {
	p := &Party{
		ID:      uuid.New(),
		ShopID:  req.ShopID,
		Kind:    kind,
		Name:    req.Name,
		Contact: req.Contact,
	}
	v := validate(p)
	if req.ShopID == uuid.Nil {
		v.Add("shop_id", "is required")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, kind Kind, id uuid.UUID) (*Party, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Kind != kind {
		return nil, ErrKindMismatch
	}
	return p, nil
}

func (s *service) List(ctx context.Context, kind Kind, shopID uuid.UUID) ([]*Party, error) {
	return s.repo.List(ctx, kind, shopID)
}

func (s *service) Update(ctx context.Context, kind Kind, id uuid.UUID, req UpdateRequest) (*Party, error) {
	p, err := s.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Contact != nil {
		p.Contact = *req.Contact
	}
	if err := validate(p).Err(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, kind Kind, id uuid.UUID) error {
	if _, err := s.Get(ctx, kind, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validate(p *Party) validation.Violations {
	v := validation.Violations{}
	validation.Required(v, "name", p.Name)
	validation.MaxLength(v, "name", p.Name, 255)
	validation.MaxLength(v, "contact", p.Contact, maxContactLen)
	return v
}
