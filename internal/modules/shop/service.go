package shop

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/georgemunganga/shopstock-backend/internal/logger"
	"github.com/georgemunganga/shopstock-backend/internal/validation"
)

// Service defines shop business logic.
type Service interface {
	CreateShop(ctx context.Context, req CreateShopRequest) (*Shop, error)
	GetShop(ctx context.Context, id uuid.UUID) (*Shop, error)
	ListShops(ctx context.Context, ownerID *uuid.UUID) ([]*Shop, error)
	UpdateShop(ctx context.Context, id uuid.UUID, req UpdateShopRequest) (*Shop, error)
}

// CreateShopRequest holds data for creating a shop.
type CreateShopRequest struct {
	Name    string     `json:"name"`
	Money   int64      `json:"money"`
	OwnerID *uuid.UUID `json:"owner_id,omitempty"`
}

// UpdateShopRequest carries a partial update; nil fields are left alone.
type UpdateShopRequest struct {
	Name    *string    `json:"name,omitempty"`
	Money   *int64     `json:"money,omitempty"`
	OwnerID *uuid.UUID `json:"owner_id,omitempty"`
}

type service struct {
	repo Repository
}

// NewService creates a new shop service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateShop(ctx context.Context, req CreateShopRequest) (*Shop, error) {
	v := validation.Violations{}
	validation.Required(v, "name", req.Name)
	validation.MaxLength(v, "name", req.Name, 255)
	validation.NonNegative(v, "money", req.Money)
	if err := v.Err(); err != nil {
		return nil, err
	}

	sh := &Shop{
		ID:      uuid.New(),
		Name:    req.Name,
		Money:   req.Money,
		OwnerID: req.OwnerID,
	}
	if err := s.repo.CreateShop(ctx, sh); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("shop created",
		zap.String("shop_id", sh.ID.String()),
		zap.String("name", sh.Name),
	)
	return sh, nil
}

func (s *service) GetShop(ctx context.Context, id uuid.UUID) (*Shop, error) {
	return s.repo.GetShopByID(ctx, id)
}

func (s *service) ListShops(ctx context.Context, ownerID *uuid.UUID) ([]*Shop, error) {
	return s.repo.ListShops(ctx, ownerID)
}

func (s *service) UpdateShop(ctx context.Context, id uuid.UUID, req UpdateShopRequest) (*Shop, error) {
	sh, err := s.repo.GetShopByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		sh.Name = *req.Name
	}
	if req.Money != nil {
		sh.Money = *req.Money
	}
	if req.OwnerID != nil {
		sh.OwnerID = req.OwnerID
	}

	v := validation.Violations{}
	validation.Required(v, "name", sh.Name)
	validation.MaxLength(v, "name", sh.Name, 255)
	validation.NonNegative(v, "money", sh.Money)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateShop(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}
