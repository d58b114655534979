package inventory

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/logger"
	"github.com/georgemunganga/shopstock-backend/internal/metrics"
	"github.com/georgemunganga/shopstock-backend/internal/validation"
)

// Service defines inventory business logic for warehouses and stock.
type Service interface {
	// Warehouse operations
	CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*Warehouse, error)
	GetWarehouse(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	ListWarehouses(ctx context.Context, shopID uuid.UUID) ([]*Warehouse, error)
	RenameWarehouse(ctx context.Context, id uuid.UUID, name string) (*Warehouse, error)
	DeleteWarehouse(ctx context.Context, id uuid.UUID) error

	// Stock operations
	ListWarehouseProducts(ctx context.Context, warehouseID uuid.UUID) ([]*WarehouseProduct, error)
	GetWarehouseProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*WarehouseProduct, error)
	MoveToWarehouse(ctx context.Context, req MoveRequest) (*StockMove, error)
	ListMoves(ctx context.Context, shopID uuid.UUID) ([]*StockMove, error)
	ReceiveStock(ctx context.Context, shopID, warehouseID, productID uuid.UUID, qty int64) (*WarehouseProduct, error)
	ReleaseStock(ctx context.Context, warehouseID, productID uuid.UUID, qty int64) (*WarehouseProduct, error)
}

// CreateWarehouseRequest holds data for creating a warehouse.
type CreateWarehouseRequest struct {
	ShopID uuid.UUID `json:"shop_id"`
	Name   string    `json:"name"`
}

// MoveRequest moves Quantity units of a product from shop stock into a warehouse.
type MoveRequest struct {
	ShopID      uuid.UUID `json:"shop_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int64     `json:"quantity"`
}

type service struct {
	warehouses WarehouseRepository
	stock      StockRepository
	products   ProductStore
	tx         database.Transactor
}

// NewService creates a new inventory service.
func NewService(warehouses WarehouseRepository, stock StockRepository, products ProductStore, tx database.Transactor) Service {
	return &service{
		warehouses: warehouses,
		stock:      stock,
		products:   products,
		tx:         tx,
	}
}

func (s *service) CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*Warehouse, error) {
	v := validation.Violations{}
	if req.ShopID == uuid.Nil {
		v.Add("shop_id", "is required")
	}
	validation.Required(v, "name", req.Name)
	validation.MaxLength(v, "name", req.Name, 255)
	if err := v.Err(); err != nil {
		return nil, err
	}

	w := &Warehouse{ID: uuid.New(), ShopID: req.ShopID, Name: req.Name}
	if err := s.warehouses.CreateWarehouse(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) GetWarehouse(ctx context.Context, id uuid.UUID) (*Warehouse, error) {
	return s.warehouses.GetWarehouseByID(ctx, id)
}

func (s *service) ListWarehouses(ctx context.Context, shopID uuid.UUID) ([]*Warehouse, error) {
	return s.warehouses.ListWarehouses(ctx, shopID)
}

func (s *service) RenameWarehouse(ctx context.Context, id uuid.UUID, name string) (*Warehouse, error) {
	v := validation.Violations{}
	validation.Required(v, "name", name)
	validation.MaxLength(v, "name", name, 255)
	if err := v.Err(); err != nil {
		return nil, err
	}
	w, err := s.warehouses.GetWarehouseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	w.Name = name
	if err := s.warehouses.UpdateWarehouse(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) DeleteWarehouse(ctx context.Context, id uuid.UUID) error {
	return s.warehouses.DeleteWarehouse(ctx, id)
}

func (s *service) ListWarehouseProducts(ctx context.Context, warehouseID uuid.UUID) ([]*WarehouseProduct, error) {
	return s.stock.ListWarehouseProducts(ctx, warehouseID)
}

func (s *service) GetWarehouseProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*WarehouseProduct, error) {
	return s.stock.GetWarehouseProduct(ctx, warehouseID, productID)
}

// MoveToWarehouse takes units out of the product's shop stock and adds them to
// the warehouse. The product row stays locked until the transaction ends, so
// concurrent moves of the same product cannot both pass the stock check.
func (s *service) MoveToWarehouse(ctx context.Context, req MoveRequest) (*StockMove, error) {
	if err := validateMove(req); err != nil {
		return nil, err
	}

	var move *StockMove
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		w, err := s.warehouses.GetWarehouseByID(ctx, req.WarehouseID)
		if err != nil {
			return err
		}
		if w.ShopID != req.ShopID {
			return ErrShopMismatch
		}

		p, err := s.products.GetForUpdate(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if p.ShopID != req.ShopID {
			return ErrShopMismatch
		}
		if p.Stock < req.Quantity {
			return ErrInsufficientStock
		}

		if _, err := s.products.AdjustStock(ctx, p.ID, -req.Quantity); err != nil {
			return err
		}
		if _, err := s.stock.AddToWarehouse(ctx, req.ShopID, w.ID, p.ID, req.Quantity); err != nil {
			return err
		}

		move = &StockMove{
			ID:          uuid.New(),
			ShopID:      req.ShopID,
			WarehouseID: w.ID,
			ProductID:   p.ID,
			Quantity:    req.Quantity,
		}
		return s.stock.CreateMove(ctx, move)
	})
	if err != nil {
		return nil, err
	}

	metrics.StockUnitsMoved.Add(float64(move.Quantity))
	logger.FromContext(ctx).Info("stock moved to warehouse",
		zap.String("shop_id", move.ShopID.String()),
		zap.String("warehouse_id", move.WarehouseID.String()),
		zap.String("product_id", move.ProductID.String()),
		zap.Int64("quantity", move.Quantity),
	)
	return move, nil
}

func validateMove(req MoveRequest) error {
	v := validation.Violations{}
	if req.ShopID == uuid.Nil {
		v.Add("shop_id", "is required")
	}
	if req.WarehouseID == uuid.Nil {
		v.Add("warehouse_id", "is required")
	}
	if req.ProductID == uuid.Nil {
		v.Add("product_id", "is required")
	}
	validation.Positive(v, "quantity", req.Quantity)
	return v.Err()
}

func (s *service) ListMoves(ctx context.Context, shopID uuid.UUID) ([]*StockMove, error) {
	return s.stock.ListMoves(ctx, shopID)
}

// ReceiveStock adds delivered units to a warehouse without touching the
// product's shop stock.
func (s *service) ReceiveStock(ctx context.Context, shopID, warehouseID, productID uuid.UUID, qty int64) (*WarehouseProduct, error) {
	v := validation.Violations{}
	validation.Positive(v, "quantity", qty)
	if err := v.Err(); err != nil {
		return nil, err
	}

	var wp *WarehouseProduct
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		w, err := s.warehouses.GetWarehouseByID(ctx, warehouseID)
		if err != nil {
			return err
		}
		if w.ShopID != shopID {
			return ErrShopMismatch
		}
		wp, err = s.stock.AddToWarehouse(ctx, shopID, warehouseID, productID, qty)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wp, nil
}

// ReleaseStock undoes a receipt.
func (s *service) ReleaseStock(ctx context.Context, warehouseID, productID uuid.UUID, qty int64) (*WarehouseProduct, error) {
	v := validation.Violations{}
	validation.Positive(v, "quantity", qty)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return s.stock.RemoveFromWarehouse(ctx, warehouseID, productID, qty)
}
