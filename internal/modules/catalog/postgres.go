package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/database"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL-backed product repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const productColumns = `id, shop_id, name, buying_price, selling_price, stock, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO products (id, shop_id, name, buying_price, selling_price, stock)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at`,
		p.ID, p.ShopID, p.Name, p.BuyingPrice, p.SellingPrice, p.Stock,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", database.Classify(err))
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *postgresRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *postgresRepo) get(ctx context.Context, query string, id uuid.UUID) (*Product, error) {
	p, err := scanProduct(database.Conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, database.Classify(err))
	}
	return p, nil
}

func (r *postgresRepo) List(ctx context.Context, shopID uuid.UUID) ([]*Product, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE shop_id = $1 ORDER BY name`, shopID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		UPDATE products
		SET name = $1, buying_price = $2, selling_price = $3, stock = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`,
		p.Name, p.BuyingPrice, p.SellingPrice, p.Stock, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product %s: %w", p.ID, database.Classify(err))
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, database.Classify(err))
	}
	return database.RequireAffected(res)
}

func (r *postgresRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (int64, error) {
	var stock int64
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		UPDATE products SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2 AND stock + $1 >= 0
		RETURNING stock`, delta, id).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return 0, getErr
		}
		return 0, ErrInsufficientStock
	}
	if err != nil {
		return 0, fmt.Errorf("adjust stock %s: %w", id, database.Classify(err))
	}
	return stock, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*Product, error) {
	p := &Product{}
	err := row.Scan(&p.ID, &p.ShopID, &p.Name, &p.BuyingPrice, &p.SellingPrice, &p.Stock,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}
