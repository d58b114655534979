package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/modules/user"
)

// ErrInvalidCredentials covers unknown users, inactive users, wrong passwords
// and unusable tokens alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
	ParseToken(token string) (uuid.UUID, error)
	// Authenticate resolves a bearer token to an active user.
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

// UserStore is the part of the user repository auth reads from.
type UserStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetUserByUsername(ctx context.Context, username string) (*user.User, error)
}
