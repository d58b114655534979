package database

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), ErrNotFound},
		{"unique", &pq.Error{Code: "23505", Constraint: "warehouse_products_warehouse_id_product_id_key"}, ErrConflict},
		{"foreign key", &pq.Error{Code: "23503"}, ErrInvalidReference},
		{"check", &pq.Error{Code: "23514", Constraint: "products_stock_check"}, ErrCheckViolation},
		{"bigint overflow", &pq.Error{Code: "22003", Message: "bigint out of range"}, ErrCheckViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestClassifyKeepsDriverError(t *testing.T) {
	pqErr := &pq.Error{Code: "23505", Constraint: "users_username_key"}
	got := Classify(pqErr)

	var target *pq.Error
	assert.True(t, errors.As(got, &target))
	assert.Contains(t, got.Error(), "users_username_key")
}

func TestClassifyPassesThroughUnknownErrors(t *testing.T) {
	boom := errors.New("boom")
	assert.Same(t, boom, Classify(boom))
	assert.NoError(t, Classify(nil))

	other := &pq.Error{Code: "40001"}
	assert.Equal(t, error(other), Classify(other))
}

type affected int64

func (a affected) LastInsertId() (int64, error) { return 0, nil }
func (a affected) RowsAffected() (int64, error) { return int64(a), nil }

func TestRequireAffected(t *testing.T) {
	assert.ErrorIs(t, RequireAffected(affected(0)), ErrNotFound)
	assert.NoError(t, RequireAffected(affected(1)))
}
