// Package tx defines the unit-of-work contract used by domain services.
// The postgres implementation lives in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs a function inside one atomic unit of work.
type Manager interface {
	// RunInTransaction commits when fn returns nil and rolls back otherwise.
	// Nested calls reuse the transaction already carried by ctx.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker serializes writers of a named resource for the lifetime of the
// surrounding transaction. Must be called from inside RunInTransaction.
type Locker interface {
	Lock(ctx context.Context, resource string) error
}
