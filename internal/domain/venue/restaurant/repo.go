package restaurant

import (
	"context"

	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain/venue/media"
)

// Repository defines the interface for Restaurant persistence.
type Repository interface {
	Create(ctx context.Context, r *Restaurant) error
	Update(ctx context.Context, r *Restaurant) error

	// First returns the restaurant, NotFound when none exists yet.
	First(ctx context.Context) (*Restaurant, error)
	GetBySlug(ctx context.Context, slug string) (*Restaurant, error)

	// IDBySlug implements media.RestaurantResolver.
	IDBySlug(ctx context.Context, slug string) (id.ID, error)

	Exists(ctx context.Context) (bool, error)

	// Delete removes the restaurant; its gallery rows cascade.
	Delete(ctx context.Context, id id.ID) error

	// NameTaken implements validation.NameChecker.
	NameTaken(ctx context.Context, name string, exclude *id.ID) (bool, error)
}

// Gallery lists the media attached to a restaurant.
type Gallery interface {
	ListByRestaurant(ctx context.Context, restaurantID id.ID) ([]*media.Media, error)
}

// QRRenderer produces the PNG encoding of content.
type QRRenderer interface {
	Render(content string) ([]byte, error)
}
