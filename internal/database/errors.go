package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a unique constraint is violated.
	ErrConflict = errors.New("record already exists")

	// ErrInvalidReference is returned when a foreign key does not resolve.
	ErrInvalidReference = errors.New("referenced record does not exist")

	// ErrCheckViolation is returned when a CHECK constraint rejects a row.
	ErrCheckViolation = errors.New("value violates a constraint")
)

// PostgreSQL SQLSTATE codes.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
)

// Classify maps driver errors to the package sentinels, keeping the original
// error in the chain. Unknown errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case codeUniqueViolation:
		return fmt.Errorf("%w (%s): %w", ErrConflict, pqErr.Constraint, err)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w (%s): %w", ErrInvalidReference, pqErr.Constraint, err)
	case codeCheckViolation:
		return fmt.Errorf("%w (%s): %w", ErrCheckViolation, pqErr.Constraint, err)
	case codeNumericOutOfRange:
		return fmt.Errorf("%w (out of range): %w", ErrCheckViolation, err)
	}
	return err
}

// RequireAffected returns ErrNotFound when res reports no affected rows.
func RequireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
