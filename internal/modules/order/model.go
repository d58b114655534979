package order

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/modules/billing"
	"github.com/georgemunganga/shopstock-backend/internal/modules/party"
)

// ErrAlreadyBilled is returned when items change after the transaction's
// bill was created.
var ErrAlreadyBilled = errors.New("transaction is already billed")

// Transaction is a customer sale or a vendor purchase.
type Transaction struct {
	ID        uuid.UUID     `json:"id"`
	ShopID    uuid.UUID     `json:"shop_id"`
	Kind      party.Kind    `json:"kind"`
	PartyID   uuid.UUID     `json:"party_id"`
	OrderTime time.Time     `json:"order_time"`
	Items     []*Item       `json:"items,omitempty"`
	Bill      *billing.Bill `json:"bill,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Item is one line of a transaction. Bill is the line amount captured when
// the item was added; later price changes do not affect it. WarehouseID is
// the delivery warehouse and is only set on vendor items.
type Item struct {
	ID            uuid.UUID  `json:"id"`
	TransactionID uuid.UUID  `json:"transaction_id"`
	ShopID        uuid.UUID  `json:"shop_id"`
	ProductID     *uuid.UUID `json:"product_id,omitempty"`
	WarehouseID   *uuid.UUID `json:"warehouse_id,omitempty"`
	Quantity      int64      `json:"quantity"`
	Bill          int64      `json:"bill"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
