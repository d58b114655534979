package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/modules/catalog"
)

// WarehouseRepository defines warehouse data storage.
type WarehouseRepository interface {
	CreateWarehouse(ctx context.Context, w *Warehouse) error
	GetWarehouseByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	ListWarehouses(ctx context.Context, shopID uuid.UUID) ([]*Warehouse, error)
	UpdateWarehouse(ctx context.Context, w *Warehouse) error
	DeleteWarehouse(ctx context.Context, id uuid.UUID) error
}

// StockRepository defines warehouse stock and move storage.
type StockRepository interface {
	// AddToWarehouse increments the (warehouse, product) row by qty, creating
	// it when absent, and returns the resulting row.
	AddToWarehouse(ctx context.Context, shopID, warehouseID, productID uuid.UUID, qty int64) (*WarehouseProduct, error)
	// RemoveFromWarehouse decrements the row by qty, failing with
	// ErrInsufficientStock when it holds fewer units.
	RemoveFromWarehouse(ctx context.Context, warehouseID, productID uuid.UUID, qty int64) (*WarehouseProduct, error)
	GetWarehouseProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*WarehouseProduct, error)
	ListWarehouseProducts(ctx context.Context, warehouseID uuid.UUID) ([]*WarehouseProduct, error)
	CreateMove(ctx context.Context, m *StockMove) error
	ListMoves(ctx context.Context, shopID uuid.UUID) ([]*StockMove, error)
}

// ProductStore is the part of the catalog repository inventory writes through.
type ProductStore interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (int64, error)
}
