package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/logger"
	"github.com/georgemunganga/shopstock-backend/internal/modules/access"
	"github.com/georgemunganga/shopstock-backend/internal/validation"
)

const (
	maxUsernameLen = 30
	maxNameLen     = 255
	maxMobileLen   = 15
)

type service struct {
	repo Repository
	tx   database.Transactor
}

// NewService creates a new user service.
func NewService(repo Repository, tx database.Transactor) Service {
	return &service{repo: repo, tx: tx}
}

func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	v := validation.Violations{}
	validation.Required(v, "username", req.Username)
	validation.MaxLength(v, "username", req.Username, maxUsernameLen)
	validation.Required(v, "password", req.Password)
	validation.MaxLength(v, "name", req.Name, maxNameLen)
	validation.MaxLength(v, "mobile", req.Mobile, maxMobileLen)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if req.CreatedBy != nil {
		if _, err := s.repo.GetUserByID(ctx, *req.CreatedBy); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, validation.Single("created_by", "does not exist")
			}
			return nil, err
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.New(),
		Username:     req.Username,
		Name:         req.Name,
		Mobile:       req.Mobile,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		IsStaff:      req.IsStaff,
		IsOwner:      req.IsOwner,
		IsManager:    req.IsManager,
		IsSalesman:   req.IsSalesman,
		CreatedBy:    req.CreatedBy,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("user created",
		zap.String("user_id", u.ID.String()),
		zap.String("username", u.Username),
	)
	return u, nil
}

func (s *service) CreateSuperuser(ctx context.Context, username, password, name string) (*User, error) {
	v := validation.Violations{}
	validation.Required(v, "username", username)
	validation.MaxLength(v, "username", username, maxUsernameLen)
	validation.Required(v, "password", password)
	validation.MaxLength(v, "name", name, maxNameLen)
	if err := v.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &User{
		ID:           uuid.New(),
		Username:     username,
		Name:         name,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("superuser created", zap.String("username", u.Username))
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *service) ListCreatedBy(ctx context.Context, creatorID uuid.UUID) ([]*User, error) {
	return s.repo.ListUsersByCreator(ctx, creatorID)
}

func (s *service) UpdateRoles(ctx context.Context, actor *access.Principal, id uuid.UUID, roles Roles) (*User, error) {
	var out *User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		target, err := s.repo.GetUserByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.checkManages(ctx, actor, target); err != nil {
			return err
		}
		if err := s.repo.UpdateRoles(ctx, id, roles); err != nil {
			return err
		}
		out, err = s.repo.GetUserByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("user roles updated",
		zap.String("user_id", out.ID.String()),
		zap.String("actor_id", actor.UserID.String()),
	)
	return out, nil
}

// ChangeCreator walks the chain above creatorID and refuses the change if it
// reaches id. A caller that is not a superuser can only move users it manages
// to itself or to another user it manages.
func (s *service) ChangeCreator(ctx context.Context, actor *access.Principal, id uuid.UUID, creatorID *uuid.UUID) (*User, error) {
	var out *User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		target, err := s.repo.GetUserByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.checkManages(ctx, actor, target); err != nil {
			return err
		}
		if creatorID != nil {
			if err := s.checkAncestry(ctx, id, *creatorID); err != nil {
				return err
			}
			if *creatorID != actor.UserID {
				creator, err := s.repo.GetUserByID(ctx, *creatorID)
				if err != nil {
					return err
				}
				if err := s.checkManages(ctx, actor, creator); err != nil {
					return err
				}
			}
		} else if !actor.IsSuperuser {
			return ErrNotManaged
		}
		if err := s.repo.SetCreator(ctx, id, creatorID); err != nil {
			return err
		}
		out, err = s.repo.GetUserByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// checkManages reports ErrNotManaged unless actor is a superuser or a strict
// ancestor of target. Superusers are only managed by superusers.
func (s *service) checkManages(ctx context.Context, actor *access.Principal, target *User) error {
	if actor == nil {
		return ErrNotManaged
	}
	if actor.IsSuperuser {
		return nil
	}
	if target.IsSuperuser {
		return ErrNotManaged
	}
	seen := map[uuid.UUID]bool{}
	next := target.CreatedBy
	for next != nil && !seen[*next] {
		if *next == actor.UserID {
			return nil
		}
		seen[*next] = true
		ancestor, err := s.repo.GetUserByID(ctx, *next)
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotManaged
		}
		if err != nil {
			return err
		}
		next = ancestor.CreatedBy
	}
	return ErrNotManaged
}

func (s *service) checkAncestry(ctx context.Context, id, creatorID uuid.UUID) error {
	seen := map[uuid.UUID]bool{}
	next := &creatorID
	for next != nil {
		if *next == id {
			return ErrCreatorCycle
		}
		if seen[*next] {
			// an existing loop above us; stop walking
			return ErrCreatorCycle
		}
		seen[*next] = true
		ancestor, err := s.repo.GetUserByID(ctx, *next)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return validation.Single("created_by", "does not exist")
			}
			return err
		}
		next = ancestor.CreatedBy
	}
	return nil
}
