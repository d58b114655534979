package inventory

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/modules/catalog"
)

var (
	// ErrInsufficientStock is returned when a move or release asks for more
	// units than the source holds.
	ErrInsufficientStock = catalog.ErrInsufficientStock

	// ErrShopMismatch is returned when a warehouse or product belongs to a
	// different shop than the operation.
	ErrShopMismatch = errors.New("record belongs to another shop")
)

// Warehouse is a storage location owned by a shop.
type Warehouse struct {
	ID        uuid.UUID `json:"id"`
	ShopID    uuid.UUID `json:"shop_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseProduct is the quantity of one product held in one warehouse.
// There is at most one per (warehouse, product) pair.
type WarehouseProduct struct {
	ID          uuid.UUID `json:"id"`
	ShopID      uuid.UUID `json:"shop_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockMove records units taken from a product's shop stock into a warehouse.
type StockMove struct {
	ID          uuid.UUID `json:"id"`
	ShopID      uuid.UUID `json:"shop_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
