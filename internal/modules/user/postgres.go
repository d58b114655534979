package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/database"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const userColumns = `id, username, name, mobile, password_hash, is_active, is_staff, is_superuser,
	is_owner, is_manager, is_salesman, created_by, created_at, updated_at`

func (r *postgresRepository) CreateUser(ctx context.Context, u *User) error {
	err := database.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO users
		  (id, username, name, mobile, password_hash, is_active, is_staff, is_superuser,
		   is_owner, is_manager, is_salesman, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at, updated_at`,
		u.ID, u.Username, u.Name, u.Mobile, u.PasswordHash, u.IsActive, u.IsStaff, u.IsSuperuser,
		u.IsOwner, u.IsManager, u.IsSalesman, u.CreatedBy,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", database.Classify(err))
	}
	return nil
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := scanUser(database.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, database.Classify(err))
	}
	return u, nil
}

func (r *postgresRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	u, err := scanUser(database.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", database.Classify(err))
	}
	return u, nil
}

func (r *postgresRepository) ListUsersByCreator(ctx context.Context, creatorID uuid.UUID) ([]*User, error) {
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE created_by = $1 ORDER BY created_at`, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresRepository) UpdateRoles(ctx context.Context, id uuid.UUID, roles Roles) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE users
		SET is_active = $1, is_staff = $2, is_owner = $3, is_manager = $4, is_salesman = $5, updated_at = NOW()
		WHERE id = $6`,
		roles.IsActive, roles.IsStaff, roles.IsOwner, roles.IsManager, roles.IsSalesman, id)
	if err != nil {
		return fmt.Errorf("update roles: %w", database.Classify(err))
	}
	return database.RequireAffected(res)
}

func (r *postgresRepository) SetCreator(ctx context.Context, id uuid.UUID, creatorID *uuid.UUID) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx,
		`UPDATE users SET created_by = $1, updated_at = NOW() WHERE id = $2`, creatorID, id)
	if err != nil {
		return fmt.Errorf("set creator: %w", database.Classify(err))
	}
	return database.RequireAffected(res)
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*User, error) {
	u := &User{}
	var createdBy uuid.NullUUID
	err := row.Scan(
		&u.ID, &u.Username, &u.Name, &u.Mobile, &u.PasswordHash, &u.IsActive, &u.IsStaff, &u.IsSuperuser,
		&u.IsOwner, &u.IsManager, &u.IsSalesman, &createdBy, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if createdBy.Valid {
		u.CreatedBy = &createdBy.UUID
	}
	return u, nil
}
