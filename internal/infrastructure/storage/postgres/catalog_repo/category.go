// Package catalog_repo provides PostgreSQL implementations of the menu
// catalog repositories.
package catalog_repo

import (
	"context"

	"dastarkhan/internal/domain/catalogs/category"
	"dastarkhan/internal/infrastructure/storage/postgres"
)

const categoryTable = "categories"

var _ category.Repository = (*CategoryRepo)(nil)

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*postgres.BaseRepo[*category.Category]
}

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseRepo: postgres.NewBaseRepo[*category.Category](
			txm,
			categoryTable,
			"category",
			postgres.ExtractDBColumns[category.Category](),
			func() *category.Category { return &category.Category{} },
		),
	}
}

// GetBySlug retrieves a category by slug.
func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	return r.GetBy(ctx, "slug", slug)
}
