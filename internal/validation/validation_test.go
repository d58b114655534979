package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViolationsErr(t *testing.T) {
	v := Violations{}
	assert.NoError(t, v.Err())

	Required(v, "name", "   ")
	NonNegative(v, "stock", -1)
	Positive(v, "quantity", 0)
	MaxLength(v, "contact", "0123456789012345", 15)

	err := v.Err()
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Violations, 4)
	assert.Equal(t, "validation failed: contact must be at most 15 characters, name is required, quantity must be greater than zero, stock must not be negative", err.Error())
}

func TestAddKeepsFirstViolation(t *testing.T) {
	v := Violations{}
	Required(v, "username", "")
	MaxLength(v, "username", "", 30)
	v.Add("username", "other")

	assert.Equal(t, "is required", v["username"])
}

func TestBoundaries(t *testing.T) {
	v := Violations{}
	NonNegative(v, "money", 0)
	Positive(v, "quantity", 1)
	MaxLength(v, "username", "ñññ", 3)
	assert.NoError(t, v.Err())
}

func TestSingle(t *testing.T) {
	err := Single("paid", "must not exceed bill")
	assert.EqualError(t, err, "validation failed: paid must not exceed bill")
}
