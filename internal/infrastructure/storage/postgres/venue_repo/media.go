package venue_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain/venue/media"
	"dastarkhan/internal/infrastructure/storage/postgres"
)

const mediaTable = "media"

var _ media.Repository = (*MediaRepo)(nil)

// MediaRepo implements media.Repository and restaurant.Gallery.
type MediaRepo struct {
	*postgres.BaseRepo[*media.Media]
}

// NewMediaRepo creates a new media repository.
func NewMediaRepo(txm *postgres.TxManager) *MediaRepo {
	return &MediaRepo{
		BaseRepo: postgres.NewBaseRepo[*media.Media](
			txm,
			mediaTable,
			"media",
			postgres.ExtractDBColumns[media.Media](),
			func() *media.Media { return &media.Media{} },
		),
	}
}

// ListByRestaurant returns the gallery, featured image first.
func (r *MediaRepo) ListByRestaurant(ctx context.Context, restaurantID id.ID) ([]*media.Media, error) {
	return r.FindAll(ctx, r.Select().
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		OrderBy("is_feature DESC", "created_at"))
}
