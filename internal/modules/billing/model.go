package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/modules/party"
)

// ErrOverpaid is returned when paid would exceed the billed amount.
var ErrOverpaid = errors.New("paid amount exceeds bill")

// Bill is the one-to-one settlement record of a transaction. Due is always
// Amount minus Paid; a bill with nothing due is settled.
type Bill struct {
	ID            uuid.UUID  `json:"id"`
	ShopID        uuid.UUID  `json:"shop_id"`
	TransactionID uuid.UUID  `json:"transaction_id"`
	Kind          party.Kind `json:"kind"`
	Amount        int64      `json:"bill"`
	Paid          int64      `json:"paid"`
	Due           int64      `json:"due"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Settled reports whether nothing is left to pay.
func (b *Bill) Settled() bool { return b.Due == 0 }

// applyPaid sets paid and recomputes due.
func (b *Bill) applyPaid(paid int64) error {
	if paid > b.Amount {
		return ErrOverpaid
	}
	b.Paid = paid
	b.Due = b.Amount - paid
	return nil
}

// Summary is what billing needs to know about a transaction.
type Summary struct {
	TransactionID uuid.UUID
	ShopID        uuid.UUID
	Kind          party.Kind
	ItemsTotal    int64
}
