package user

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/shopstock-backend/internal/modules/access"
)

// ErrCreatorCycle is returned when a created_by change would make a user
// its own ancestor.
var ErrCreatorCycle = errors.New("created_by would form a cycle")

// ErrNotManaged is returned when the acting user does not manage the target
// user. Only superusers manage superusers.
var ErrNotManaged = errors.New("user is not managed by the caller")

// User is an account with independent role flags.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Name         string     `json:"name,omitempty"`
	Mobile       string     `json:"mobile,omitempty"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"is_active"`
	IsStaff      bool       `json:"is_staff"`
	IsSuperuser  bool       `json:"is_superuser"`
	IsOwner      bool       `json:"is_owner"`
	IsManager    bool       `json:"is_manager"`
	IsSalesman   bool       `json:"is_salesman"`
	CreatedBy    *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Principal returns the policy view of u.
func (u *User) Principal() *access.Principal {
	return &access.Principal{
		UserID:      u.ID,
		IsSuperuser: u.IsSuperuser,
		IsOwner:     u.IsOwner,
		IsManager:   u.IsManager,
		IsSalesman:  u.IsSalesman,
	}
}

// Roles is the replaceable set of flags. is_superuser is only granted
// through CreateSuperuser.
type Roles struct {
	IsActive   bool `json:"is_active"`
	IsStaff    bool `json:"is_staff"`
	IsOwner    bool `json:"is_owner"`
	IsManager  bool `json:"is_manager"`
	IsSalesman bool `json:"is_salesman"`
}
