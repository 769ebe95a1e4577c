// Package category provides the product Category catalog.
package category

import (
	"context"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/entity"
	"dastarkhan/internal/domain/validation"
)

// MaxNameLength bounds category name and slug.
const MaxNameLength = 100

// Category groups products on the menu.
type Category struct {
	entity.BaseEntity

	// Name is stored capitalized and is unique.
	Name string `db:"name" json:"name"`

	// Slug is derived from Name on every save.
	Slug string `db:"slug" json:"slug"`

	// Image is a storage reference, e.g. "category_images/soups.png".
	Image string `db:"image" json:"image"`

	// IsActive hides the category from customers when false.
	IsActive bool `db:"is_active" json:"isActive"`

	entity.Timestamps
}

// NewCategory creates an active Category.
func NewCategory(name string) *Category {
	return &Category{
		BaseEntity: entity.NewBaseEntity(),
		Name:       name,
		IsActive:   true,
		Timestamps: entity.NewTimestamps(),
	}
}

// Validate implements entity.Validatable interface.
func (c *Category) Validate(ctx context.Context) error {
	if err := validation.Required("name", c.Name); err != nil {
		return err
	}
	if err := validation.MaxLength("name", c.Name, MaxNameLength); err != nil {
		return err
	}
	if validation.IsNumeric(c.Name) {
		return apperror.NewInvalidInput("name", "category name must not be numeric").
			WithDetail("value", c.Name)
	}
	if c.Image == "" {
		return apperror.NewInvalidInput("image", "category image is required")
	}
	return nil
}
