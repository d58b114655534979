package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/modules/party"
)

// Repository defines bill storage.
type Repository interface {
	CreateBill(ctx context.Context, b *Bill) error
	GetBillByTransaction(ctx context.Context, transactionID uuid.UUID) (*Bill, error)
	// GetBillForUpdate locks the bill row until the store transaction ends.
	GetBillForUpdate(ctx context.Context, transactionID uuid.UUID) (*Bill, error)
	UpdatePaid(ctx context.Context, b *Bill) error
	ListOutstanding(ctx context.Context, kind party.Kind, shopID uuid.UUID) ([]*Bill, error)
}

// TransactionSource reads transaction headers and item totals. It is
// implemented by the order repository.
type TransactionSource interface {
	Summarize(ctx context.Context, transactionID uuid.UUID) (*Summary, error)
}
