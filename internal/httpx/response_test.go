package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/validation"
)

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{validation.Single("name", "is required"), http.StatusBadRequest},
		{fmt.Errorf("get shop: %w", database.ErrNotFound), http.StatusNotFound},
		{database.ErrConflict, http.StatusConflict},
		{database.ErrInvalidReference, http.StatusUnprocessableEntity},
		{database.ErrCheckViolation, http.StatusUnprocessableEntity},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}
}

func TestErrorIncludesViolations(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, httptest.NewRequest(http.MethodPost, "/", nil), validation.Violations{"quantity": "must be greater than zero"}.Err())

	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "must be greater than zero", body.Details["quantity"])
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"S1","extra":1}`))
	err := Decode(r, &dst)

	var verr *validation.Error
	assert.True(t, errors.As(err, &verr))
}

func TestUUIDParam(t *testing.T) {
	id := uuid.New()
	router := chi.NewRouter()
	var got uuid.UUID
	var gotErr error
	router.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = UUIDParam(r, "id")
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/"+id.String(), nil))
	require.NoError(t, gotErr)
	assert.Equal(t, id, got)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/nope", nil))
	assert.Error(t, gotErr)
}

func TestUUIDQuery(t *testing.T) {
	_, err := UUIDQuery(httptest.NewRequest(http.MethodGet, "/products", nil), "shop_id")
	assert.EqualError(t, err, "validation failed: shop_id is required")

	id := uuid.New()
	got, err := UUIDQuery(httptest.NewRequest(http.MethodGet, "/products?shop_id="+id.String(), nil), "shop_id")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}
