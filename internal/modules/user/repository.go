package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines user data storage.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsersByCreator(ctx context.Context, creatorID uuid.UUID) ([]*User, error)
	UpdateRoles(ctx context.Context, id uuid.UUID, roles Roles) error
	SetCreator(ctx context.Context, id uuid.UUID, creatorID *uuid.UUID) error
}
