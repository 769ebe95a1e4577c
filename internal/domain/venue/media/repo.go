package media

import (
	"context"

	"dastarkhan/internal/core/id"
)

// Repository defines the interface for Media persistence.
type Repository interface {
	Create(ctx context.Context, m *Media) error
	Update(ctx context.Context, m *Media) error
	GetByID(ctx context.Context, id id.ID) (*Media, error)

	// GetForUpdate retrieves the image with a row lock.
	GetForUpdate(ctx context.Context, id id.ID) (*Media, error)

	ListByRestaurant(ctx context.Context, restaurantID id.ID) ([]*Media, error)
	Delete(ctx context.Context, id id.ID) error

	// ClearFlag implements singleton.Collection.
	ClearFlag(ctx context.Context, field string) error
}

// RestaurantResolver turns the restaurant slug used by the admin API into its id.
type RestaurantResolver interface {
	IDBySlug(ctx context.Context, slug string) (id.ID, error)
}
