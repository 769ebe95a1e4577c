// Package feedback_repo provides the PostgreSQL feedback repository.
package feedback_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain"
	"dastarkhan/internal/domain/feedback"
	"dastarkhan/internal/infrastructure/storage/postgres"
)

const (
	feedbackTable = "feedback"
	accountTable  = "accounts"
)

var _ feedback.Repository = (*FeedbackRepo)(nil)

// FeedbackRepo implements feedback.Repository.
type FeedbackRepo struct {
	*postgres.BaseRepo[*feedback.Feedback]
}

// NewFeedbackRepo creates a new feedback repository.
func NewFeedbackRepo(txm *postgres.TxManager) *FeedbackRepo {
	return &FeedbackRepo{
		BaseRepo: postgres.NewBaseRepo[*feedback.Feedback](
			txm,
			feedbackTable,
			"feedback",
			postgres.ExtractDBColumns[feedback.Feedback](),
			func() *feedback.Feedback { return &feedback.Feedback{} },
		),
	}
}

// Exists reports whether the customer already rated the restaurant.
func (r *FeedbackRepo) Exists(ctx context.Context, customerID, restaurantID id.ID) (bool, error) {
	return r.ExistsWhere(ctx, squirrel.Eq{"customer_id": customerID, "restaurant_id": restaurantID})
}

// ExistsForCustomer reports whether the customer left any feedback.
func (r *FeedbackRepo) ExistsForCustomer(ctx context.Context, customerID id.ID) (bool, error) {
	return r.ExistsWhere(ctx, squirrel.Eq{"customer_id": customerID})
}

// ReviewsQuery builds the admin listing joined with the author's name and avatar.
func (r *FeedbackRepo) ReviewsQuery(filter domain.ListFilter) squirrel.SelectBuilder {
	q := r.Builder().
		Select(
			"f.id", "f.restaurant_id", "f.customer_id", "f.rating", "f.feedback",
			"f.created_at", "f.updated_at",
			"a.first_name AS customer_first_name", "a.avatar AS customer_avatar",
		).
		From(feedbackTable + " f").
		Join(accountTable + " a ON a.id = f.customer_id").
		OrderBy("f.created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}
	return q
}

// ListReviews returns feedback newest first.
func (r *FeedbackRepo) ListReviews(ctx context.Context, filter domain.ListFilter) ([]*feedback.Review, error) {
	sql, args, err := r.ReviewsQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*feedback.Review
	if err := pgxscan.Select(ctx, r.Querier(ctx), &out, sql, args...); err != nil {
		return nil, postgres.MapError(fmt.Errorf("list reviews: %w", err))
	}
	return out, nil
}
