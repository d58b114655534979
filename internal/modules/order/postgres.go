package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/modules/billing"
	"github.com/georgemunganga/shopstock-backend/internal/modules/party"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const transactionColumns = `id, shop_id, kind, party_id, order_time, created_at, updated_at`

func (r *postgresRepo) CreateTransaction(ctx context.Context, t *Transaction) error {
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO transactions (id, shop_id, kind, party_id)
		VALUES ($1,$2,$3,$4)
		RETURNING order_time, created_at, updated_at`,
		t.ID, t.ShopID, t.Kind, t.PartyID,
	).Scan(&t.OrderTime, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", database.Classify(err))
	}
	return nil
}

func (r *postgresRepo) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	t, err := scanTransaction(database.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", id, database.Classify(err))
	}
	return t, nil
}

func (r *postgresRepo) GetTransactionForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	t, err := scanTransaction(database.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("lock transaction %s: %w", id, database.Classify(err))
	}
	return t, nil
}

func (r *postgresRepo) ListTransactions(ctx context.Context, kind party.Kind, shopID uuid.UUID) ([]*Transaction, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE kind = $1 AND shop_id = $2 ORDER BY order_time DESC`, kind, shopID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	list := []*Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Summarize locks the transaction header and totals its item bills.
func (r *postgresRepo) Summarize(ctx context.Context, transactionID uuid.UUID) (*billing.Summary, error) {
	t, err := r.GetTransactionForUpdate(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	sum := &billing.Summary{TransactionID: t.ID, ShopID: t.ShopID, Kind: t.Kind}
	err = database.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT COALESCE(SUM(bill), 0) FROM ordered_items WHERE transaction_id = $1`, transactionID).
		Scan(&sum.ItemsTotal)
	if err != nil {
		return nil, fmt.Errorf("sum item bills: %w", err)
	}
	return sum, nil
}

// ── Items ────────────────────────────────────────────────────────────────────

const itemColumns = `id, transaction_id, shop_id, product_id, warehouse_id, quantity, bill, created_at, updated_at`

func (r *postgresRepo) AddItem(ctx context.Context, it *Item) error {
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO ordered_items (id, transaction_id, shop_id, product_id, warehouse_id, quantity, bill)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		it.ID, it.TransactionID, it.ShopID, it.ProductID, it.WarehouseID, it.Quantity, it.Bill,
	).Scan(&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert ordered item: %w", database.Classify(err))
	}
	return nil
}

func (r *postgresRepo) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	it, err := scanItem(database.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM ordered_items WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get ordered item %s: %w", id, database.Classify(err))
	}
	return it, nil
}

func (r *postgresRepo) ListItems(ctx context.Context, transactionID uuid.UUID) ([]*Item, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx,
		`SELECT `+itemColumns+` FROM ordered_items WHERE transaction_id = $1 ORDER BY created_at`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list ordered items: %w", err)
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM ordered_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ordered item %s: %w", id, database.Classify(err))
	}
	return database.RequireAffected(res)
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*Transaction, error) {
	t := &Transaction{}
	err := row.Scan(&t.ID, &t.ShopID, &t.Kind, &t.PartyID, &t.OrderTime, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func scanItem(row rowScanner) (*Item, error) {
	it := &Item{}
	var shopID, productID, warehouseID uuid.NullUUID
	err := row.Scan(&it.ID, &it.TransactionID, &shopID, &productID, &warehouseID,
		&it.Quantity, &it.Bill, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	it.ShopID = shopID.UUID
	if productID.Valid {
		it.ProductID = &productID.UUID
	}
	if warehouseID.Valid {
		it.WarehouseID = &warehouseID.UUID
	}
	return it, nil
}
