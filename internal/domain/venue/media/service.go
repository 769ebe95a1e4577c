package media

import (
	"context"

	"dastarkhan/internal/core/id"
	"dastarkhan/internal/core/tx"
	"dastarkhan/internal/domain"
	"dastarkhan/internal/domain/derive"
	"dastarkhan/internal/domain/images"
	"dastarkhan/internal/domain/singleton"
	"dastarkhan/pkg/logger"
)

const entityName = "media"

// CreateInput is the payload of CreateMedia.
type CreateInput struct {
	RestaurantSlug string
	Image          string
	Upload         *images.Upload
	AltText        string
	IsFeature      bool
}

// UpdateInput is the payload of UpdateMedia. Nil fields keep their value.
type UpdateInput struct {
	RestaurantSlug *string
	Image          *string
	Upload         *images.Upload
	AltText        *string
	IsFeature      *bool
}

// Service provides business logic for the gallery.
type Service struct {
	repo        Repository
	restaurants RestaurantResolver
	tx          tx.Manager
	enforcer    *singleton.Enforcer
	images      images.Store
}

// NewService creates a new Media service.
func NewService(
	repo Repository,
	restaurants RestaurantResolver,
	txm tx.Manager,
	enforcer *singleton.Enforcer,
	store images.Store,
) *Service {
	return &Service{
		repo:        repo,
		restaurants: restaurants,
		tx:          txm,
		enforcer:    enforcer,
		images:      store,
	}
}

// Create adds an image to the restaurant gallery. Setting IsFeature moves
// the featured flag to it.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Media, error) {
	if err := in.Upload.Validate(); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}
	restaurantID, err := s.resolve(ctx, in.RestaurantSlug)
	if err != nil {
		return nil, err
	}

	m := NewMedia(restaurantID)
	m.AltText = in.AltText
	m.IsFeature = in.IsFeature
	m.Image = in.Image
	if in.Upload != nil {
		m.Image = uploadRef(m.ID, in.Upload)
	}
	if err := m.Validate(ctx); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}

	err = domain.Mutation(ctx, s.tx, s.images, func(ctx context.Context, cleanup *images.Cleanup) error {
		if err := cleanup.Put(ctx, m.Image, in.Upload); err != nil {
			return err
		}
		return s.enforcer.EnforceExclusive(ctx, singleton.FeaturedMedia, s.repo, m.IsFeature,
			func(ctx context.Context) error {
				return s.repo.Create(ctx, m)
			})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "media created", "id", m.ID, "feature", m.IsFeature)
	return m, nil
}

// Update applies in to the gallery image as read under a row lock in the
// same transaction that stores it. A replaced image is removed after commit.
func (s *Service) Update(ctx context.Context, mediaID id.ID, in UpdateInput) (*Media, error) {
	if err := in.Upload.Validate(); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}
	var restaurantID *id.ID
	if in.RestaurantSlug != nil {
		resolved, err := s.resolve(ctx, *in.RestaurantSlug)
		if err != nil {
			return nil, err
		}
		restaurantID = &resolved
	}

	var m *Media
	err := domain.Mutation(ctx, s.tx, s.images, func(ctx context.Context, cleanup *images.Cleanup) error {
		var err error
		m, err = s.repo.GetForUpdate(ctx, mediaID)
		if err != nil {
			return domain.NormalizeGetErr(err, entityName, mediaID.String())
		}
		previousImage := m.Image

		if restaurantID != nil {
			m.RestaurantID = *restaurantID
		}
		if in.AltText != nil {
			m.AltText = *in.AltText
		}
		if in.IsFeature != nil {
			m.IsFeature = *in.IsFeature
		}
		if in.Image != nil && *in.Image != "" {
			m.Image = *in.Image
		}
		if in.Upload != nil {
			m.Image = images.Distinct(uploadRef(m.ID, in.Upload), previousImage)
		}
		if err := m.Validate(ctx); err != nil {
			return domain.NormalizeValidationErr(err)
		}
		m.Touch()

		if err := cleanup.Put(ctx, m.Image, in.Upload); err != nil {
			return err
		}
		err = s.enforcer.EnforceExclusive(ctx, singleton.FeaturedMedia, s.repo, m.IsFeature,
			func(ctx context.Context) error {
				return s.repo.Update(ctx, m)
			})
		if err != nil {
			return err
		}
		cleanup.Replace(previousImage, m.Image)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "media updated", "id", m.ID, "feature", m.IsFeature)
	return m, nil
}

// Get returns one gallery image.
func (s *Service) Get(ctx context.Context, mediaID id.ID) (*Media, error) {
	m, err := s.repo.GetByID(ctx, mediaID)
	if err != nil {
		return nil, domain.NormalizeGetErr(err, entityName, mediaID.String())
	}
	return m, nil
}

// ListByRestaurant returns the gallery of one restaurant.
func (s *Service) ListByRestaurant(ctx context.Context, restaurantID id.ID) ([]*Media, error) {
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

// Delete removes the gallery image and, after commit, its file.
func (s *Service) Delete(ctx context.Context, mediaID id.ID) error {
	err := domain.Mutation(ctx, s.tx, s.images, func(ctx context.Context, cleanup *images.Cleanup) error {
		m, err := s.repo.GetForUpdate(ctx, mediaID)
		if err != nil {
			return domain.NormalizeGetErr(err, entityName, mediaID.String())
		}
		if err := s.repo.Delete(ctx, m.ID); err != nil {
			return err
		}
		cleanup.Remove(m.Image)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "media deleted", "id", mediaID)
	return nil
}

func (s *Service) resolve(ctx context.Context, slug string) (id.ID, error) {
	restaurantID, err := s.restaurants.IDBySlug(ctx, slug)
	if err != nil {
		return id.ID{}, domain.NormalizeGetErr(err, "restaurant", slug)
	}
	return restaurantID, nil
}

// uploadRef prefixes the file name with the media id so equal names never collide.
func uploadRef(mediaID id.ID, u *images.Upload) string {
	key := mediaID.String()
	return derive.MediaPath(key[len(key)-8:] + "_" + u.Filename)
}
