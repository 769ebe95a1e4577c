package venue_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain/venue/restaurant"
	"dastarkhan/internal/infrastructure/storage/postgres"
)

const restaurantTable = "restaurants"

var _ restaurant.Repository = (*RestaurantRepo)(nil)

// RestaurantRepo implements restaurant.Repository.
type RestaurantRepo struct {
	*postgres.BaseRepo[*restaurant.Restaurant]
}

// NewRestaurantRepo creates a new restaurant repository.
func NewRestaurantRepo(txm *postgres.TxManager) *RestaurantRepo {
	return &RestaurantRepo{
		BaseRepo: postgres.NewBaseRepo[*restaurant.Restaurant](
			txm,
			restaurantTable,
			"restaurant",
			postgres.ExtractDBColumns[restaurant.Restaurant](),
			func() *restaurant.Restaurant { return &restaurant.Restaurant{} },
		),
	}
}

// First returns the restaurant.
func (r *RestaurantRepo) First(ctx context.Context) (*restaurant.Restaurant, error) {
	v, err := r.FindOne(ctx, r.Select().OrderBy("created_at").Limit(1))
	if apperror.IsNotFound(err) {
		return nil, apperror.NewNotFound("restaurant", "singleton")
	}
	return v, err
}

// GetBySlug retrieves the restaurant by slug.
func (r *RestaurantRepo) GetBySlug(ctx context.Context, slug string) (*restaurant.Restaurant, error) {
	return r.GetBy(ctx, "slug", slug)
}

// IDBySlug implements media.RestaurantResolver and feedback.RestaurantResolver.
func (r *RestaurantRepo) IDBySlug(ctx context.Context, slug string) (id.ID, error) {
	v, err := r.GetBySlug(ctx, slug)
	if err != nil {
		return id.ID{}, err
	}
	return v.ID, nil
}

// Exists reports whether a restaurant has been created.
func (r *RestaurantRepo) Exists(ctx context.Context) (bool, error) {
	return r.ExistsWhere(ctx, squirrel.Expr("TRUE"))
}
