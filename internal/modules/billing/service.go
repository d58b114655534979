package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/logger"
	"github.com/georgemunganga/shopstock-backend/internal/metrics"
	"github.com/georgemunganga/shopstock-backend/internal/modules/party"
	"github.com/georgemunganga/shopstock-backend/internal/validation"
)

// Service defines billing business logic for customer and vendor transactions.
type Service interface {
	CreateBill(ctx context.Context, kind party.Kind, req CreateBillRequest) (*Bill, error)
	GetBill(ctx context.Context, kind party.Kind, transactionID uuid.UUID) (*Bill, error)
	IsBilled(ctx context.Context, transactionID uuid.UUID) (bool, error)
	SetPaid(ctx context.Context, kind party.Kind, transactionID uuid.UUID, paid int64) (*Bill, error)
	RecordPayment(ctx context.Context, kind party.Kind, transactionID uuid.UUID, amount int64) (*Bill, error)
	ListOutstanding(ctx context.Context, kind party.Kind, shopID uuid.UUID) ([]*Bill, error)
}

// CreateBillRequest bills a transaction. Amount may be omitted, in which case
// the sum of the item bills is used; when given it must equal that sum.
type CreateBillRequest struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	Amount        *int64    `json:"bill,omitempty"`
	Paid          int64     `json:"paid"`
}

type service struct {
	repo         Repository
	transactions TransactionSource
	tx           database.Transactor
}

// NewService creates a new billing service.
func NewService(repo Repository, transactions TransactionSource, tx database.Transactor) Service {
	return &service{repo: repo, transactions: transactions, tx: tx}
}

func (s *service) CreateBill(ctx context.Context, kind party.Kind, req CreateBillRequest) (*Bill, error) {
	v := validation.Violations{}
	if req.TransactionID == uuid.Nil {
		v.Add("transaction_id", "is required")
	}
	validation.NonNegative(v, "paid", req.Paid)
	if req.Amount != nil {
		validation.NonNegative(v, "bill", *req.Amount)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	var b *Bill
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		sum, err := s.transactions.Summarize(ctx, req.TransactionID)
		if err != nil {
			return err
		}
		if sum.Kind != kind {
			return party.ErrKindMismatch
		}
		if req.Amount != nil && *req.Amount != sum.ItemsTotal {
			return validation.Single("bill", fmt.Sprintf("must equal the sum of item bills (%d)", sum.ItemsTotal))
		}

		b = &Bill{
			ID:            uuid.New(),
			ShopID:        sum.ShopID,
			TransactionID: sum.TransactionID,
			Kind:          kind,
			Amount:        sum.ItemsTotal,
		}
		if err := b.applyPaid(req.Paid); err != nil {
			return err
		}
		return s.repo.CreateBill(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	metrics.BillsCreated.WithLabelValues(string(kind)).Inc()
	logger.FromContext(ctx).Info("bill created",
		zap.String("kind", string(kind)),
		zap.String("transaction_id", b.TransactionID.String()),
		zap.Int64("bill", b.Amount),
		zap.Int64("paid", b.Paid),
		zap.Int64("due", b.Due),
	)
	return b, nil
}

func (s *service) GetBill(ctx context.Context, kind party.Kind, transactionID uuid.UUID) (*Bill, error) {
	b, err := s.repo.GetBillByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if b.Kind != kind {
		return nil, party.ErrKindMismatch
	}
	return b, nil
}

func (s *service) IsBilled(ctx context.Context, transactionID uuid.UUID) (bool, error) {
	_, err := s.repo.GetBillByTransaction(ctx, transactionID)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) SetPaid(ctx context.Context, kind party.Kind, transactionID uuid.UUID, paid int64) (*Bill, error) {
	v := validation.Violations{}
	validation.NonNegative(v, "paid", paid)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return s.updatePaid(ctx, kind, transactionID, func(*Bill) (int64, error) { return paid, nil })
}

// RecordPayment adds amount to what has been paid so far. Concurrent payments
// against the same bill serialize on the bill row.
func (s *service) RecordPayment(ctx context.Context, kind party.Kind, transactionID uuid.UUID, amount int64) (*Bill, error) {
	v := validation.Violations{}
	validation.Positive(v, "amount", amount)
	if err := v.Err(); err != nil {
		return nil, err
	}
	b, err := s.updatePaid(ctx, kind, transactionID, func(b *Bill) (int64, error) {
		if amount > b.Amount-b.Paid {
			return 0, ErrOverpaid
		}
		return b.Paid + amount, nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues(string(kind)).Inc()
	logger.FromContext(ctx).Info("payment recorded",
		zap.String("kind", string(kind)),
		zap.String("transaction_id", transactionID.String()),
		zap.Int64("amount", amount),
		zap.Int64("due", b.Due),
		zap.Bool("settled", b.Settled()),
	)
	return b, nil
}

func (s *service) updatePaid(ctx context.Context, kind party.Kind, transactionID uuid.UUID, next func(*Bill) (int64, error)) (*Bill, error) {
	var b *Bill
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		b, err = s.repo.GetBillForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if b.Kind != kind {
			return party.ErrKindMismatch
		}
		paid, err := next(b)
		if err != nil {
			return err
		}
		if err := b.applyPaid(paid); err != nil {
			return err
		}
		return s.repo.UpdatePaid(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ListOutstanding(ctx context.Context, kind party.Kind, shopID uuid.UUID) ([]*Bill, error) {
	return s.repo.ListOutstanding(ctx, kind, shopID)
}
