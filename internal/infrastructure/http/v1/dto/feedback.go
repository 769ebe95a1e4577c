package dto

import (
	"github.com/shopspring/decimal"

	"dastarkhan/internal/domain/feedback"
)

// FeedbackRequest for POST /restaurant/feedback.
type FeedbackRequest struct {
	Restaurant string          `json:"restaurant" binding:"required"`
	Rating     decimal.Decimal `json:"rating"`
	Feedback   string          `json:"feedback"`
}

// FeedbackResponse is the API view of stored feedback.
type FeedbackResponse struct {
	BaseResponse
	RestaurantID string          `json:"restaurantId"`
	CustomerID   string          `json:"customerId"`
	Rating       decimal.Decimal `json:"rating"`
	Feedback     string          `json:"feedback"`
}

// FromFeedback creates FeedbackResponse.
func FromFeedback(f *feedback.Feedback) FeedbackResponse {
	return FeedbackResponse{
		BaseResponse: fromBase(f.BaseEntity, f.Timestamps),
		RestaurantID: f.RestaurantID.String(),
		CustomerID:   f.CustomerID.String(),
		Rating:       f.Rating,
		Feedback:     f.Text,
	}
}

// ReviewResponse is feedback with its author for the admin dashboard.
type ReviewResponse struct {
	FeedbackResponse
	CustomerFirstName string `json:"customerFirstName"`
	CustomerAvatarURL string `json:"customerAvatarUrl"`
}

// FromReview creates ReviewResponse.
func FromReview(r *feedback.Review, url URLFunc) ReviewResponse {
	return ReviewResponse{
		FeedbackResponse:  FromFeedback(&r.Feedback),
		CustomerFirstName: r.CustomerFirstName,
		CustomerAvatarURL: url.resolve(r.CustomerAvatar),
	}
}
