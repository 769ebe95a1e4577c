package category

import (
	"context"

	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain"
)

// Repository defines the interface for Category persistence.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error

	GetByID(ctx context.Context, id id.ID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)

	List(ctx context.Context, filter domain.ListFilter) ([]*Category, error)

	// Delete fails with a Conflict while products still reference the category.
	Delete(ctx context.Context, id id.ID) error

	// NameTaken implements validation.NameChecker.
	NameTaken(ctx context.Context, name string, exclude *id.ID) (bool, error)
}
