package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/database/dbtest"
	"github.com/georgemunganga/shopstock-backend/internal/modules/access"
	"github.com/georgemunganga/shopstock-backend/internal/validation"
)

type memRepo struct {
	users map[uuid.UUID]*User
}

func newMemRepo() *memRepo { return &memRepo{users: map[uuid.UUID]*User{}} }

func (m *memRepo) CreateUser(_ context.Context, u *User) error {
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return database.ErrConflict
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memRepo) GetUserByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memRepo) GetUserByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memRepo) ListUsersByCreator(_ context.Context, creatorID uuid.UUID) ([]*User, error) {
	out := []*User{}
	for _, u := range m.users {
		if u.CreatedBy != nil && *u.CreatedBy == creatorID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memRepo) UpdateRoles(_ context.Context, id uuid.UUID, roles Roles) error {
	u, ok := m.users[id]
	if !ok {
		return database.ErrNotFound
	}
	u.IsActive, u.IsStaff, u.IsOwner, u.IsManager, u.IsSalesman =
		roles.IsActive, roles.IsStaff, roles.IsOwner, roles.IsManager, roles.IsSalesman
	return nil
}

func (m *memRepo) SetCreator(_ context.Context, id uuid.UUID, creatorID *uuid.UUID) error {
	u, ok := m.users[id]
	if !ok {
		return database.ErrNotFound
	}
	u.CreatedBy = creatorID
	return nil
}

var rootActor = &access.Principal{UserID: uuid.New(), IsSuperuser: true}

func newTestService() (Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, dbtest.Transactor{}), repo
}

func TestCreateUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserRequest{
		Username:  "alice",
		Password:  "s3cret",
		IsOwner:   true,
		IsManager: true,
	})
	require.NoError(t, err)
	assert.True(t, u.IsActive)
	assert.True(t, u.IsOwner)
	assert.True(t, u.IsManager)
	assert.False(t, u.IsSuperuser)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))

	_, err = svc.CreateUser(ctx, CreateUserRequest{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, database.ErrConflict)
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := newTestService()
	missing := uuid.New()

	tests := []struct {
		name  string
		req   CreateUserRequest
		field string
	}{
		{"missing username", CreateUserRequest{Password: "x"}, "username"},
		{"long username", CreateUserRequest{Username: "abcdefghijklmnopqrstuvwxyz012345", Password: "x"}, "username"},
		{"missing password", CreateUserRequest{Username: "bob"}, "password"},
		{"long mobile", CreateUserRequest{Username: "bob", Password: "x", Mobile: "+2609999999999999"}, "mobile"},
		{"unknown creator", CreateUserRequest{Username: "bob", Password: "x", CreatedBy: &missing}, "created_by"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(context.Background(), tt.req)
			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Violations, tt.field)
		})
	}
}

func TestCreateSuperuser(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.CreateSuperuser(context.Background(), "root", "toor", "Root")
	require.NoError(t, err)
	assert.True(t, u.IsSuperuser)
	assert.True(t, u.IsStaff)
	assert.True(t, u.IsActive)
	assert.True(t, u.Principal().IsSuperuser)
}

func TestListCreatedBy(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	owner, err := svc.CreateUser(ctx, CreateUserRequest{Username: "owner", Password: "x", IsOwner: true})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, CreateUserRequest{Username: "sales", Password: "x", IsSalesman: true, CreatedBy: &owner.ID})
	require.NoError(t, err)

	users, err := svc.ListCreatedBy(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "sales", users[0].Username)
}

func TestUpdateRoles(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserRequest{Username: "m", Password: "x", IsManager: true})
	require.NoError(t, err)

	u, err = svc.UpdateRoles(ctx, rootActor, u.ID, Roles{IsActive: true, IsSalesman: true})
	require.NoError(t, err)
	assert.False(t, u.IsManager)
	assert.True(t, u.IsSalesman)

	_, err = svc.UpdateRoles(ctx, rootActor, uuid.New(), Roles{})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestChangeCreatorRejectsCycles(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.CreateUser(ctx, CreateUserRequest{Username: "a", Password: "x"})
	require.NoError(t, err)
	b, err := svc.CreateUser(ctx, CreateUserRequest{Username: "b", Password: "x", CreatedBy: &a.ID})
	require.NoError(t, err)
	c, err := svc.CreateUser(ctx, CreateUserRequest{Username: "c", Password: "x", CreatedBy: &b.ID})
	require.NoError(t, err)

	_, err = svc.ChangeCreator(ctx, rootActor, a.ID, &a.ID)
	assert.ErrorIs(t, err, ErrCreatorCycle)

	_, err = svc.ChangeCreator(ctx, rootActor, a.ID, &c.ID)
	assert.ErrorIs(t, err, ErrCreatorCycle)

	moved, err := svc.ChangeCreator(ctx, rootActor, c.ID, &a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, *moved.CreatedBy)

	cleared, err := svc.ChangeCreator(ctx, rootActor, b.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.CreatedBy)
}

func TestUpdateRolesRequiresManagement(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	root, err := svc.CreateSuperuser(ctx, "root", "x", "")
	require.NoError(t, err)
	owner, err := svc.CreateUser(ctx, CreateUserRequest{Username: "owner", Password: "x", IsOwner: true, CreatedBy: &root.ID})
	require.NoError(t, err)
	manager, err := svc.CreateUser(ctx, CreateUserRequest{Username: "manager", Password: "x", IsManager: true, CreatedBy: &owner.ID})
	require.NoError(t, err)
	clerk, err := svc.CreateUser(ctx, CreateUserRequest{Username: "clerk", Password: "x", IsSalesman: true, CreatedBy: &manager.ID})
	require.NoError(t, err)
	rival, err := svc.CreateUser(ctx, CreateUserRequest{Username: "rival", Password: "x", IsOwner: true, CreatedBy: &root.ID})
	require.NoError(t, err)

	tests := []struct {
		name   string
		actor  *access.Principal
		target *User
		want   error
	}{
		{"owner on direct report", owner.Principal(), manager, nil},
		{"owner on transitive report", owner.Principal(), clerk, nil},
		{"owner on superuser", owner.Principal(), root, ErrNotManaged},
		{"owner on other tenant", owner.Principal(), rival, ErrNotManaged},
		{"owner on itself", owner.Principal(), owner, ErrNotManaged},
		{"manager on its creator", manager.Principal(), owner, ErrNotManaged},
		{"no actor", nil, clerk, ErrNotManaged},
		{"superuser on anyone", root.Principal(), rival, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateRoles(ctx, tt.actor, tt.target.ID, Roles{IsActive: true, IsSalesman: true})
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}

	stored := repo.users[root.ID]
	assert.True(t, stored.IsActive)
	assert.True(t, stored.IsSuperuser)
}

func TestChangeCreatorRequiresManagement(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	root, err := svc.CreateSuperuser(ctx, "root", "x", "")
	require.NoError(t, err)
	owner, err := svc.CreateUser(ctx, CreateUserRequest{Username: "owner", Password: "x", IsOwner: true, CreatedBy: &root.ID})
	require.NoError(t, err)
	a, err := svc.CreateUser(ctx, CreateUserRequest{Username: "a", Password: "x", CreatedBy: &owner.ID})
	require.NoError(t, err)
	b, err := svc.CreateUser(ctx, CreateUserRequest{Username: "b", Password: "x", CreatedBy: &owner.ID})
	require.NoError(t, err)
	rival, err := svc.CreateUser(ctx, CreateUserRequest{Username: "rival", Password: "x", IsOwner: true, CreatedBy: &root.ID})
	require.NoError(t, err)

	moved, err := svc.ChangeCreator(ctx, owner.Principal(), b.ID, &a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, *moved.CreatedBy)

	_, err = svc.ChangeCreator(ctx, owner.Principal(), b.ID, &owner.ID)
	require.NoError(t, err)

	_, err = svc.ChangeCreator(ctx, owner.Principal(), b.ID, &rival.ID)
	assert.ErrorIs(t, err, ErrNotManaged, "cannot hand a user to another tenant")

	_, err = svc.ChangeCreator(ctx, owner.Principal(), b.ID, nil)
	assert.ErrorIs(t, err, ErrNotManaged, "cannot detach a user")

	_, err = svc.ChangeCreator(ctx, owner.Principal(), root.ID, &owner.ID)
	assert.ErrorIs(t, err, ErrNotManaged)

	_, err = svc.ChangeCreator(ctx, rival.Principal(), a.ID, &rival.ID)
	assert.ErrorIs(t, err, ErrNotManaged)
}
