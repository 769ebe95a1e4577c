package address

import (
	"context"

	"dastarkhan/internal/core/id"
)

// Repository defines the interface for Address persistence.
type Repository interface {
	Create(ctx context.Context, a *Address) error
	Update(ctx context.Context, a *Address) error
	GetByID(ctx context.Context, id id.ID) (*Address, error)

	// GetForUpdate retrieves the address with a row lock.
	GetForUpdate(ctx context.Context, id id.ID) (*Address, error)

	List(ctx context.Context) ([]*Address, error)
	ListDefault(ctx context.Context) ([]*Address, error)
	Delete(ctx context.Context, id id.ID) error

	// ClearFlag implements singleton.Collection.
	ClearFlag(ctx context.Context, field string) error
}
