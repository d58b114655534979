package party

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/database"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL-backed party repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Party) error {
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO parties (id, shop_id, kind, name, contact)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, updated_at`,
		p.ID, p.ShopID, p.Kind, p.Name, p.Contact,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert %s: %w", p.Kind, database.Classify(err))
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Party, error) {
	p := &Party{}
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, shop_id, kind, name, contact, created_at, updated_at
		FROM parties WHERE id = $1`, id).
		Scan(&p.ID, &p.ShopID, &p.Kind, &p.Name, &p.Contact, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get party %s: %w", id, database.Classify(err))
	}
	return p, nil
}

func (r *postgresRepo) List(ctx context.Context, kind Kind, shopID uuid.UUID) ([]*Party, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, `
		SELECT id, shop_id, kind, name, contact, created_at, updated_at
		FROM parties WHERE kind = $1 AND shop_id = $2 ORDER BY name`, kind, shopID)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", kind, err)
	}
	defer rows.Close()

	parties := []*Party{}
	for rows.Next() {
		p := &Party{}
		if err := rows.Scan(&p.ID, &p.ShopID, &p.Kind, &p.Name, &p.Contact, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		parties = append(parties, p)
	}
	return parties, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Party) error {
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		UPDATE parties SET name = $1, contact = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at`, p.Name, p.Contact, p.ID).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update party %s: %w", p.ID, database.Classify(err))
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete party %s: %w", id, database.Classify(err))
	}
	return database.RequireAffected(res)
}
