package billing

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/modules/party"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL-backed bill repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const billSelect = `
	SELECT b.id, b.shop_id, b.transaction_id, t.kind, b.bill, b.paid, b.due, b.created_at, b.updated_at
	FROM transaction_bills b
	JOIN transactions t ON t.id = b.transaction_id`

func (r *postgresRepo) CreateBill(ctx context.Context, b *Bill) error {
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO transaction_bills (id, shop_id, transaction_id, bill, paid, due)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at`,
		b.ID, b.ShopID, b.TransactionID, b.Amount, b.Paid, b.Due,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert bill: %w", database.Classify(err))
	}
	return nil
}

func (r *postgresRepo) GetBillByTransaction(ctx context.Context, transactionID uuid.UUID) (*Bill, error) {
	b, err := scanBill(database.Conn(ctx, r.db).QueryRowContext(ctx,
		billSelect+` WHERE b.transaction_id = $1`, transactionID))
	if err != nil {
		return nil, fmt.Errorf("get bill for %s: %w", transactionID, database.Classify(err))
	}
	return b, nil
}

func (r *postgresRepo) GetBillForUpdate(ctx context.Context, transactionID uuid.UUID) (*Bill, error) {
	b, err := scanBill(database.Conn(ctx, r.db).QueryRowContext(ctx,
		billSelect+` WHERE b.transaction_id = $1 FOR UPDATE OF b`, transactionID))
	if err != nil {
		return nil, fmt.Errorf("lock bill for %s: %w", transactionID, database.Classify(err))
	}
	return b, nil
}

func (r *postgresRepo) UpdatePaid(ctx context.Context, b *Bill) error {
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		UPDATE transaction_bills SET paid = $1, due = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at`, b.Paid, b.Due, b.ID).Scan(&b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update bill %s: %w", b.ID, database.Classify(err))
	}
	return nil
}

func (r *postgresRepo) ListOutstanding(ctx context.Context, kind party.Kind, shopID uuid.UUID) ([]*Bill, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx,
		billSelect+` WHERE t.kind = $1 AND b.shop_id = $2 AND b.due > 0 ORDER BY b.created_at`, kind, shopID)
	if err != nil {
		return nil, fmt.Errorf("list outstanding bills: %w", err)
	}
	defer rows.Close()

	bills := []*Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBill(row rowScanner) (*Bill, error) {
	b := &Bill{}
	var shopID uuid.NullUUID
	err := row.Scan(&b.ID, &shopID, &b.TransactionID, &b.Kind, &b.Amount, &b.Paid, &b.Due,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.ShopID = shopID.UUID
	return b, nil
}
