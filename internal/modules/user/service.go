package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/modules/access"
)

// Service defines the interface for user-related business logic.
type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	CreateSuperuser(ctx context.Context, username, password, name string) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	ListCreatedBy(ctx context.Context, creatorID uuid.UUID) ([]*User, error)
	// UpdateRoles and ChangeCreator act on behalf of actor, who must manage
	// the target: be a superuser, or sit above it in the created_by chain.
	UpdateRoles(ctx context.Context, actor *access.Principal, id uuid.UUID, roles Roles) (*User, error)
	ChangeCreator(ctx context.Context, actor *access.Principal, id uuid.UUID, creatorID *uuid.UUID) (*User, error)
}

// CreateUserRequest holds data for creating a user.
type CreateUserRequest struct {
	Username   string     `json:"username"`
	Password   string     `json:"password"`
	Name       string     `json:"name"`
	Mobile     string     `json:"mobile"`
	IsStaff    bool       `json:"is_staff"`
	IsOwner    bool       `json:"is_owner"`
	IsManager  bool       `json:"is_manager"`
	IsSalesman bool       `json:"is_salesman"`
	CreatedBy  *uuid.UUID `json:"created_by,omitempty"`
}
