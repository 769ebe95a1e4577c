package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain"
	"dastarkhan/internal/domain/catalogs/product"
	"dastarkhan/internal/infrastructure/storage/postgres"
)

const productTable = "products"

var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements product.Repository. Ingredients are stored by
// IngredientRepo.
type ProductRepo struct {
	*postgres.BaseRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseRepo: postgres.NewBaseRepo[*product.Product](
			txm,
			productTable,
			"product",
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// GetBySlug retrieves a product by slug.
func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*product.Product, error) {
	return r.GetBy(ctx, "slug", slug)
}

// List returns products, restricted to one category when categoryID is set.
func (r *ProductRepo) List(ctx context.Context, filter domain.ListFilter, categoryID *id.ID) ([]*product.Product, error) {
	var where []squirrel.Sqlizer
	if categoryID != nil {
		where = append(where, squirrel.Eq{"category_id": *categoryID})
	}
	q, err := r.ListQuery(filter, where...)
	if err != nil {
		return nil, err
	}
	return r.FindAll(ctx, q)
}
