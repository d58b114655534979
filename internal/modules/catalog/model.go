package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInsufficientStock is returned when a decrement would take stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// Product is a shop's sellable item with its on-hand stock.
type Product struct {
	ID           uuid.UUID `json:"id"`
	ShopID       uuid.UUID `json:"shop_id"`
	Name         string    `json:"name"`
	BuyingPrice  int64     `json:"buying_price"`
	SellingPrice int64     `json:"selling_price"`
	Stock        int64     `json:"stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
