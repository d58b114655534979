package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/validation"
)

// Service defines business logic for a shop's products.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, shopID uuid.UUID) ([]*Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// CreateProductRequest holds data for adding a product to a shop.
type CreateProductRequest struct {
	ShopID       uuid.UUID `json:"shop_id"`
	Name         string    `json:"name"`
	BuyingPrice  int64     `json:"buying_price"`
	SellingPrice int64     `json:"selling_price"`
	Stock        int64     `json:"stock"`
}

// UpdateProductRequest carries a partial update; nil fields are left alone.
type UpdateProductRequest struct {
	Name         *string `json:"name,omitempty"`
	BuyingPrice  *int64  `json:"buying_price,omitempty"`
	SellingPrice *int64  `json:"selling_price,omitempty"`
	Stock        *int64  `json:"stock,omitempty"`
}

type service struct {
	repo Repository
	tx   database.Transactor
}

// NewService creates a new catalog service.
func NewService(repo Repository, tx database.Transactor) Service {
	return &service{repo: repo, tx: tx}
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	p := &Product{
		ID:           uuid.New(),
		ShopID:       req.ShopID,
		Name:         req.Name,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		Stock:        req.Stock,
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

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, shopID uuid.UUID) ([]*Product, error) {
	return s.repo.List(ctx, shopID)
}

// UpdateProduct rewrites the product row under a row lock so a concurrent
// stock adjustment is never overwritten with a stale count.
func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*Product, error) {
	var out *Product
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.BuyingPrice != nil {
			p.BuyingPrice = *req.BuyingPrice
		}
		if req.SellingPrice != nil {
			p.SellingPrice = *req.SellingPrice
		}
		if req.Stock != nil {
			p.Stock = *req.Stock
		}
		if err := validate(p).Err(); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func validate(p *Product) validation.Violations {
	v := validation.Violations{}
	validation.Required(v, "name", p.Name)
	validation.MaxLength(v, "name", p.Name, 255)
	validation.NonNegative(v, "buying_price", p.BuyingPrice)
	validation.NonNegative(v, "selling_price", p.SellingPrice)
	validation.NonNegative(v, "stock", p.Stock)
	return v
}
