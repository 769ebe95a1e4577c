// Package product provides the Product catalog and its Ingredient set.
package product

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/entity"
	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain/images"
	"dastarkhan/internal/domain/validation"
)

const (
	MaxNameLength           = 200
	MaxIngredientNameLength = 150
)

// Product is a menu item.
type Product struct {
	entity.BaseEntity

	CategoryID id.ID `db:"category_id" json:"categoryId"`

	Name        string `db:"name" json:"name"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`

	OriginalPrice decimal.Decimal `db:"original_price" json:"originalPrice"`

	// DiscountPercent is optional, in (0, 99.99].
	DiscountPercent *decimal.Decimal `db:"discount_percent" json:"discountPercent,omitempty"`

	// DiscountedPrice is derived from OriginalPrice and DiscountPercent and
	// is present exactly when DiscountPercent is.
	DiscountedPrice *decimal.Decimal `db:"discounted_price" json:"discountedPrice,omitempty"`

	Quantity int `db:"quantity" json:"quantity"`

	// Image defaults to images.NoFood.
	Image string `db:"image" json:"image"`

	IsActive bool `db:"is_active" json:"isActive"`

	Ingredients []Ingredient `db:"-" json:"ingredients"`

	entity.Timestamps
}

// Ingredient is shared between products by name.
type Ingredient struct {
	entity.BaseEntity
	Name string `db:"name" json:"name"`
}

// NewProduct creates an active Product with quantity 1 and the sentinel image.
func NewProduct(categoryID id.ID, name string) *Product {
	return &Product{
		BaseEntity: entity.NewBaseEntity(),
		CategoryID: categoryID,
		Name:       name,
		Quantity:   1,
		Image:      images.NoFood,
		IsActive:   true,
		Timestamps: entity.NewTimestamps(),
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if id.IsNil(p.CategoryID) {
		return apperror.NewInvalidInput("category", "category is required")
	}
	if err := validation.Required("name", p.Name); err != nil {
		return err
	}
	if err := validation.MaxLength("name", p.Name, MaxNameLength); err != nil {
		return err
	}
	if err := validation.Required("description", p.Description); err != nil {
		return err
	}
	if err := validation.PricePositive(p.OriginalPrice); err != nil {
		return err
	}
	if err := validation.PriceDigitBound(p.OriginalPrice); err != nil {
		return err
	}
	if p.DiscountPercent != nil {
		if err := validation.DiscountBounds(*p.DiscountPercent); err != nil {
			return err
		}
	}
	if p.Quantity < 0 {
		return apperror.NewInvalidInput("quantity", "quantity must not be negative").
			WithDetail("value", p.Quantity)
	}
	for _, ing := range p.Ingredients {
		if err := validation.MaxLength("ingredients", ing.Name, MaxIngredientNameLength); err != nil {
			return err
		}
	}
	return nil
}

// IngredientNames returns the names of the associated ingredients.
func (p *Product) IngredientNames() []string {
	names := make([]string, 0, len(p.Ingredients))
	for _, ing := range p.Ingredients {
		names = append(names, ing.Name)
	}
	return names
}

// NormalizeIngredients lower-cases, trims and de-duplicates names keeping
// first-seen order. Blank names are dropped.
func NormalizeIngredients(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
