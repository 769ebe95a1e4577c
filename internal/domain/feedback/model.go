// Package feedback provides customer ratings of the restaurant. A customer
// leaves at most one feedback per restaurant.
package feedback

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"dastarkhan/internal/core/entity"
	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain/validation"
)

// MaxTextLength bounds the feedback text.
const MaxTextLength = 1000

// EventCreated is the event type published after a feedback is stored.
const EventCreated = "feedback.created"

// Feedback is one customer rating.
type Feedback struct {
	entity.BaseEntity

	RestaurantID id.ID           `db:"restaurant_id" json:"restaurantId"`
	CustomerID   id.ID           `db:"customer_id" json:"customerId"`
	Rating       decimal.Decimal `db:"rating" json:"rating"`
	Text         string          `db:"feedback" json:"feedback"`

	entity.Timestamps
}

// Review is a feedback joined with its author for the admin dashboard.
type Review struct {
	Feedback
	CustomerFirstName string `db:"customer_first_name" json:"customerFirstName"`
	CustomerAvatar    string `db:"customer_avatar" json:"customerAvatar"`
}

// Event is the message published for every stored feedback.
type Event struct {
	Type         string          `json:"type"`
	FeedbackID   id.ID           `json:"feedbackId"`
	RestaurantID id.ID           `json:"restaurantId"`
	CustomerID   id.ID           `json:"customerId"`
	Rating       decimal.Decimal `json:"rating"`
	Timestamp    time.Time       `json:"timestamp"`
}

// Validate implements entity.Validatable interface.
func (f *Feedback) Validate(ctx context.Context) error {
	if err := validation.Rating(f.Rating); err != nil {
		return err
	}
	if err := validation.Required("feedback", f.Text); err != nil {
		return err
	}
	return validation.MaxLength("feedback", f.Text, MaxTextLength)
}
