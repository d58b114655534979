package party

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/modules/access"
)

// Kind separates customers from vendors. Transactions, items and bills carry
// the kind of the party they belong to.
type Kind string

const (
	Customer Kind = "customer"
	Vendor   Kind = "vendor"
)

// ErrKindMismatch is returned when a record is addressed through the wrong kind.
var ErrKindMismatch = errors.New("record belongs to the other party kind")

// ParseKind validates a kind taken from a URL.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case Customer, Vendor:
		return Kind(s), true
	}
	return "", false
}

// PartyResource is the guarded resource for parties of kind k.
func (k Kind) PartyResource() access.Resource {
	if k == Vendor {
		return access.Vendor
	}
	return access.Customer
}

// TransactionResource is the guarded resource for k's transactions and bills.
func (k Kind) TransactionResource() access.Resource {
	if k == Vendor {
		return access.VendorTransaction
	}
	return access.CustomerTransaction
}

// Party is a customer or vendor of a shop.
type Party struct {
	ID        uuid.UUID `json:"id"`
	ShopID    uuid.UUID `json:"shop_id"`
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
