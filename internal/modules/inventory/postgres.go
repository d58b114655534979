package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/database"
)

// ── Warehouse ────────────────────────────────────────────────────────────────

type warehousePostgres struct{ db *sql.DB }

func NewWarehousePostgresRepository(db *sql.DB) WarehouseRepository {
	return &warehousePostgres{db: db}
}

func (r *warehousePostgres) CreateWarehouse(ctx context.Context, w *Warehouse) error {
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO warehouses (id, shop_id, name) VALUES ($1,$2,$3)
		RETURNING created_at, updated_at`,
		w.ID, w.ShopID, w.Name,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert warehouse: %w", database.Classify(err))
	}
	return nil
}

func (r *warehousePostgres) GetWarehouseByID(ctx context.Context, id uuid.UUID) (*Warehouse, error) {
	w := &Warehouse{}
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, shop_id, name, created_at, updated_at FROM warehouses WHERE id = $1`, id).
		Scan(&w.ID, &w.ShopID, &w.Name, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get warehouse %s: %w", id, database.Classify(err))
	}
	return w, nil
}

func (r *warehousePostgres) ListWarehouses(ctx context.Context, shopID uuid.UUID) ([]*Warehouse, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, `
		SELECT id, shop_id, name, created_at, updated_at
		FROM warehouses WHERE shop_id = $1 ORDER BY name`, shopID)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	warehouses := []*Warehouse{}
	for rows.Next() {
		w := &Warehouse{}
		if err := rows.Scan(&w.ID, &w.ShopID, &w.Name, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}

func (r *warehousePostgres) UpdateWarehouse(ctx context.Context, w *Warehouse) error {
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		UPDATE warehouses SET name = $1, updated_at = NOW() WHERE id = $2
		RETURNING updated_at`, w.Name, w.ID).Scan(&w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update warehouse %s: %w", w.ID, database.Classify(err))
	}
	return nil
}

func (r *warehousePostgres) DeleteWarehouse(ctx context.Context, id uuid.UUID) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete warehouse %s: %w", id, database.Classify(err))
	}
	return database.RequireAffected(res)
}

// ── Stock ────────────────────────────────────────────────────────────────────

type stockPostgres struct{ db *sql.DB }

func NewStockPostgresRepository(db *sql.DB) StockRepository { return &stockPostgres{db: db} }

const warehouseProductColumns = `id, shop_id, warehouse_id, product_id, quantity, created_at, updated_at`

// AddToWarehouse relies on UNIQUE (warehouse_id, product_id): concurrent
// callers serialize on the conflicting row instead of inserting twice.
func (r *stockPostgres) AddToWarehouse(ctx context.Context, shopID, warehouseID, productID uuid.UUID, qty int64) (*WarehouseProduct, error) {
	wp, err := scanWarehouseProduct(database.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO warehouse_products (id, shop_id, warehouse_id, product_id, quantity)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (warehouse_id, product_id)
		DO UPDATE SET quantity = warehouse_products.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING `+warehouseProductColumns,
		uuid.New(), shopID, warehouseID, productID, qty))
	if err != nil {
		return nil, fmt.Errorf("add to warehouse: %w", database.Classify(err))
	}
	return wp, nil
}

func (r *stockPostgres) RemoveFromWarehouse(ctx context.Context, warehouseID, productID uuid.UUID, qty int64) (*WarehouseProduct, error) {
	wp, err := scanWarehouseProduct(database.Conn(ctx, r.db).QueryRowContext(ctx, `
		UPDATE warehouse_products SET quantity = quantity - $1, updated_at = NOW()
		WHERE warehouse_id = $2 AND product_id = $3 AND quantity >= $1
		RETURNING `+warehouseProductColumns,
		qty, warehouseID, productID))
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetWarehouseProduct(ctx, warehouseID, productID); getErr != nil {
			return nil, getErr
		}
		return nil, ErrInsufficientStock
	}
	if err != nil {
		return nil, fmt.Errorf("remove from warehouse: %w", database.Classify(err))
	}
	return wp, nil
}

func (r *stockPostgres) GetWarehouseProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*WarehouseProduct, error) {
	wp, err := scanWarehouseProduct(database.Conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT `+warehouseProductColumns+` FROM warehouse_products
		WHERE warehouse_id = $1 AND product_id = $2`, warehouseID, productID))
	if err != nil {
		return nil, fmt.Errorf("get warehouse product: %w", database.Classify(err))
	}
	return wp, nil
}

func (r *stockPostgres) ListWarehouseProducts(ctx context.Context, warehouseID uuid.UUID) ([]*WarehouseProduct, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, `
		SELECT `+warehouseProductColumns+` FROM warehouse_products
		WHERE warehouse_id = $1 ORDER BY created_at`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list warehouse products: %w", err)
	}
	defer rows.Close()

	items := []*WarehouseProduct{}
	for rows.Next() {
		wp, err := scanWarehouseProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, wp)
	}
	return items, rows.Err()
}

func (r *stockPostgres) CreateMove(ctx context.Context, m *StockMove) error {
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO stock_moves (id, shop_id, warehouse_id, product_id, quantity)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, updated_at`,
		m.ID, m.ShopID, m.WarehouseID, m.ProductID, m.Quantity,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert stock move: %w", database.Classify(err))
	}
	return nil
}

func (r *stockPostgres) ListMoves(ctx context.Context, shopID uuid.UUID) ([]*StockMove, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, `
		SELECT id, shop_id, warehouse_id, product_id, quantity, created_at, updated_at
		FROM stock_moves WHERE shop_id = $1 ORDER BY created_at DESC`, shopID)
	if err != nil {
		return nil, fmt.Errorf("list stock moves: %w", err)
	}
	defer rows.Close()

	moves := []*StockMove{}
	for rows.Next() {
		m := &StockMove{}
		if err := rows.Scan(&m.ID, &m.ShopID, &m.WarehouseID, &m.ProductID, &m.Quantity,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWarehouseProduct(row rowScanner) (*WarehouseProduct, error) {
	wp := &WarehouseProduct{}
	var shopID uuid.NullUUID
	err := row.Scan(&wp.ID, &shopID, &wp.WarehouseID, &wp.ProductID, &wp.Quantity, &wp.CreatedAt, &wp.UpdatedAt)
	if err != nil {
		return nil, err
	}
	wp.ShopID = shopID.UUID
	return wp, nil
}
