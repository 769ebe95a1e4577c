package feedback

import (
	"context"

	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain"
)

// Repository defines the interface for Feedback persistence.
type Repository interface {
	// Create fails with a Conflict when the customer already rated the restaurant.
	Create(ctx context.Context, f *Feedback) error

	Exists(ctx context.Context, customerID, restaurantID id.ID) (bool, error)
	ExistsForCustomer(ctx context.Context, customerID id.ID) (bool, error)

	// ListReviews returns feedback newest first.
	ListReviews(ctx context.Context, filter domain.ListFilter) ([]*Review, error)
}

// RestaurantResolver turns the restaurant slug used by the client API into its id.
type RestaurantResolver interface {
	IDBySlug(ctx context.Context, slug string) (id.ID, error)
}

// MarkerCache remembers customer and restaurant pairs that already have feedback.
type MarkerCache interface {
	MarkerKey(customerID, restaurantID id.ID) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
}

// Publisher announces stored feedback to other services.
type Publisher interface {
	PublishFeedback(ctx context.Context, event Event) error
}
