package product

import (
	"context"

	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain"
	"dastarkhan/internal/domain/catalogs/category"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error

	GetBySlug(ctx context.Context, slug string) (*Product, error)

	// List returns products, optionally only those of one category.
	List(ctx context.Context, filter domain.ListFilter, categoryID *id.ID) ([]*Product, error)

	Delete(ctx context.Context, id id.ID) error

	// NameTaken implements validation.NameChecker.
	NameTaken(ctx context.Context, name string, exclude *id.ID) (bool, error)
}

// IngredientRepository resolves ingredients by name and maintains the
// product association table.
type IngredientRepository interface {
	// Upsert returns one ingredient per name, creating missing ones.
	Upsert(ctx context.Context, names []string) ([]Ingredient, error)

	// Replace makes ingredientIDs the exact association set of productID.
	Replace(ctx context.Context, productID id.ID, ingredientIDs []id.ID) error

	// ForProducts loads the ingredient sets of several products at once.
	ForProducts(ctx context.Context, productIDs []id.ID) (map[id.ID][]Ingredient, error)
}

// CategoryReader is the part of the category repository products depend on.
type CategoryReader interface {
	GetByID(ctx context.Context, id id.ID) (*category.Category, error)
	GetBySlug(ctx context.Context, slug string) (*category.Category, error)
}
