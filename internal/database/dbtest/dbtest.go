// Package dbtest holds helpers for testing services without a database.
package dbtest

import "context"

// Transactor runs fn directly. In-memory repositories have nothing to roll
// back, so tests that need rollback behaviour use the integration suite.
type Transactor struct{}

func (Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
