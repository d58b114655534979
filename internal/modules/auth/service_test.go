package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/shopstock-backend/internal/config"
	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/modules/access"
	"github.com/georgemunganga/shopstock-backend/internal/modules/user"
)

type memUsers map[uuid.UUID]*user.User

func (m memUsers) GetUserByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := m[id]; ok {
		return u, nil
	}
	return nil, database.ErrNotFound
}

func (m memUsers) GetUserByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range m {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, database.ErrNotFound
}

var testJWT = config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1}

func newUser(t *testing.T, users memUsers, username, password string, active bool) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &user.User{ID: uuid.New(), Username: username, PasswordHash: string(hash), IsActive: active, IsSalesman: true}
	users[u.ID] = u
	return u
}

func TestLoginAndParse(t *testing.T) {
	users := memUsers{}
	u := newUser(t, users, "clerk", "pw", true)
	svc := NewService(users, testJWT)

	token, err := svc.Login(context.Background(), "clerk", "pw")
	require.NoError(t, err)

	id, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	got, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestLoginRejections(t *testing.T) {
	users := memUsers{}
	newUser(t, users, "clerk", "pw", true)
	newUser(t, users, "gone", "pw", false)
	svc := NewService(users, testJWT)

	tests := []struct{ username, password string }{
		{"clerk", "wrong"},
		{"gone", "pw"},
		{"nobody", "pw"},
	}
	for _, tt := range tests {
		_, err := svc.Login(context.Background(), tt.username, tt.password)
		assert.ErrorIs(t, err, ErrInvalidCredentials, tt.username)
	}
}

func TestParseTokenRejectsBadTokens(t *testing.T) {
	users := memUsers{}
	u := newUser(t, users, "clerk", "pw", true)
	svc := NewService(users, testJWT)

	otherKey, err := NewService(users, config.JWTConfig{SigningKey: "other", ExpirationHours: 1}).
		Login(context.Background(), "clerk", "pw")
	require.NoError(t, err)

	expired := svc.(*service)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, err := expired.Login(context.Background(), "clerk", "pw")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &jwt.StandardClaims{Subject: u.ID.String()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong key": otherKey,
		"expired":   stale,
		"alg none":  unsigned,
		"garbage":   "not.a.token",
	} {
		_, err := NewService(users, testJWT).ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidCredentials, name)
	}
}

func TestAuthenticateMiddleware(t *testing.T) {
	users := memUsers{}
	u := newUser(t, users, "clerk", "pw", true)
	svc := NewService(users, testJWT)
	token, err := svc.Login(context.Background(), "clerk", "pw")
	require.NoError(t, err)

	var seen *access.Principal
	h := Authenticate(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = access.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
		authed bool
	}{
		{"anonymous", "", http.StatusNoContent, false},
		{"valid", "Bearer " + token, http.StatusNoContent, true},
		{"not bearer", "Basic abc", http.StatusUnauthorized, false},
		{"invalid", "Bearer nope", http.StatusUnauthorized, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.authed {
				require.NotNil(t, seen)
				assert.Equal(t, u.ID, seen.UserID)
				assert.True(t, seen.IsSalesman)
			} else {
				assert.Nil(t, seen)
			}
		})
	}

	u.IsActive = false
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginHandler(t *testing.T) {
	users := memUsers{}
	newUser(t, users, "clerk", "pw", true)
	h := NewHandler(NewService(users, testJWT))

	rec := httptest.NewRecorder()
	h.login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"clerk","password":"pw"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token")

	rec = httptest.NewRecorder()
	h.login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"clerk","password":"bad"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":""}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
