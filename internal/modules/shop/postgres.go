package shop

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateShop(ctx context.Context, s *Shop) error {
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO shops (id, name, money, owner_id)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at, updated_at`,
		s.ID, s.Name, s.Money, s.OwnerID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert shop: %w", database.Classify(err))
	}
	return nil
}

func (r *postgresRepo) GetShopByID(ctx context.Context, id uuid.UUID) (*Shop, error) {
	s, err := scanShop(database.Conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, name, money, owner_id, created_at, updated_at
		FROM shops WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get shop %s: %w", id, database.Classify(err))
	}
	return s, nil
}

func (r *postgresRepo) ListShops(ctx context.Context, ownerID *uuid.UUID) ([]*Shop, error) {
	query := `SELECT id, name, money, owner_id, created_at, updated_at FROM shops`
	args := []interface{}{}
	if ownerID != nil {
		query += ` WHERE owner_id = $1`
		args = append(args, *ownerID)
	}
	query += ` ORDER BY created_at`

	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()

	shops := []*Shop{}
	for rows.Next() {
		s, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}
	return shops, rows.Err()
}

func (r *postgresRepo) UpdateShop(ctx context.Context, s *Shop) error {
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		UPDATE shops SET name = $1, money = $2, owner_id = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at`,
		s.Name, s.Money, s.OwnerID, s.ID,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update shop %s: %w", s.ID, database.Classify(err))
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShop(row rowScanner) (*Shop, error) {
	s := &Shop{}
	var owner uuid.NullUUID
	if err := row.Scan(&s.ID, &s.Name, &s.Money, &owner, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if owner.Valid {
		s.OwnerID = &owner.UUID
	}
	return s, nil
}
