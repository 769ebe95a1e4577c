// Package media provides the restaurant photo gallery. At most one image is
// featured.
package media

import (
	"context"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/entity"
	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain/validation"
)

// MaxAltTextLength bounds alt_text.
const MaxAltTextLength = 150

// Media is one gallery image of the restaurant.
type Media struct {
	entity.BaseEntity

	RestaurantID id.ID  `db:"restaurant_id" json:"restaurantId"`
	Image        string `db:"image" json:"image"`
	AltText      string `db:"alt_text" json:"altText"`

	// IsFeature is exclusive across the collection.
	IsFeature bool `db:"is_feature" json:"isFeature"`

	entity.Timestamps
}

// NewMedia creates a non-featured Media.
func NewMedia(restaurantID id.ID) *Media {
	return &Media{
		BaseEntity:   entity.NewBaseEntity(),
		RestaurantID: restaurantID,
		Timestamps:   entity.NewTimestamps(),
	}
}

// Validate implements entity.Validatable interface.
func (m *Media) Validate(ctx context.Context) error {
	if id.IsNil(m.RestaurantID) {
		return apperror.NewInvalidInput("restaurant", "restaurant is required")
	}
	if m.Image == "" {
		return apperror.NewInvalidInput("image", "you can't save media without the image")
	}
	if err := validation.Required("alt_text", m.AltText); err != nil {
		return err
	}
	return validation.MaxLength("alt_text", m.AltText, MaxAltTextLength)
}
