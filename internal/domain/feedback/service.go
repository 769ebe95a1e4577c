package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/entity"
	"dastarkhan/internal/core/id"
	"dastarkhan/internal/core/tx"
	"dastarkhan/internal/domain"
	"dastarkhan/pkg/logger"
)

// CreateInput is the payload of CreateFeedback. CustomerID comes from the
// authenticated request, never from the body.
type CreateInput struct {
	RestaurantSlug string
	CustomerID     id.ID
	Rating         decimal.Decimal
	Text           string
}

// Service provides business logic for feedback.
type Service struct {
	repo        Repository
	restaurants RestaurantResolver
	tx          tx.Manager
	cache       MarkerCache
	publisher   Publisher
}

// NewService creates a new Feedback service. cache and publisher may be nil.
func NewService(
	repo Repository,
	restaurants RestaurantResolver,
	txm tx.Manager,
	cache MarkerCache,
	publisher Publisher,
) *Service {
	return &Service{
		repo:        repo,
		restaurants: restaurants,
		tx:          txm,
		cache:       cache,
		publisher:   publisher,
	}
}

func duplicate(customerID, restaurantID id.ID) error {
	return apperror.NewConflict("you have already left feedback for this restaurant").
		WithDetail("customer", customerID.String()).
		WithDetail("restaurant", restaurantID.String())
}

// Create stores a customer's feedback. A second feedback of the same customer
// for the same restaurant is a Conflict.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Feedback, error) {
	if id.IsNil(in.CustomerID) {
		return nil, apperror.NewUnauthorized("authentication required")
	}

	f := &Feedback{
		BaseEntity: entity.NewBaseEntity(),
		CustomerID: in.CustomerID,
		Rating:     in.Rating,
		Text:       in.Text,
		Timestamps: entity.NewTimestamps(),
	}
	if err := f.Validate(ctx); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}

	restaurantID, err := s.restaurants.IDBySlug(ctx, in.RestaurantSlug)
	if err != nil {
		return nil, domain.NormalizeGetErr(err, "restaurant", in.RestaurantSlug)
	}
	f.RestaurantID = restaurantID

	var marker string
	if s.cache != nil {
		marker = s.cache.MarkerKey(f.CustomerID, f.RestaurantID)
		if seen, _ := s.cache.Exists(ctx, marker); seen {
			return nil, duplicate(f.CustomerID, f.RestaurantID)
		}
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.Exists(ctx, f.CustomerID, f.RestaurantID)
		if err != nil {
			return err
		}
		if exists {
			return duplicate(f.CustomerID, f.RestaurantID)
		}
		if err := s.repo.Create(ctx, f); err != nil {
			if apperror.IsConflict(err) {
				return duplicate(f.CustomerID, f.RestaurantID)
			}
			return fmt.Errorf("create feedback: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetMarker(ctx, marker); err != nil {
			logger.Warn(ctx, "feedback marker not stored", "key", marker, "error", err)
		}
	}
	if s.publisher != nil {
		event := Event{
			Type:         EventCreated,
			FeedbackID:   f.ID,
			RestaurantID: f.RestaurantID,
			CustomerID:   f.CustomerID,
			Rating:       f.Rating,
			Timestamp:    time.Now().UTC(),
		}
		if err := s.publisher.PublishFeedback(ctx, event); err != nil {
			logger.Warn(ctx, "feedback event not published", "id", f.ID, "error", err)
		}
	}

	logger.Info(ctx, "feedback created", "id", f.ID, "rating", f.Rating.String())
	return f, nil
}

// ListReviews returns feedback for the admin dashboard, newest first.
func (s *Service) ListReviews(ctx context.Context, filter domain.ListFilter) ([]*Review, error) {
	return s.repo.ListReviews(ctx, filter)
}

// HasFeedback reports whether the customer has left any feedback.
func (s *Service) HasFeedback(ctx context.Context, customerID id.ID) (bool, error) {
	return s.repo.ExistsForCustomer(ctx, customerID)
}
