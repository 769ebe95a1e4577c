package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"dastarkhan/internal/domain"
	"dastarkhan/internal/domain/feedback"
	"dastarkhan/internal/infrastructure/http/v1/dto"
)

// FeedbackService is the feedback behaviour the handler needs.
type FeedbackService interface {
	Create(ctx context.Context, in feedback.CreateInput) (*feedback.Feedback, error)
	ListReviews(ctx context.Context, filter domain.ListFilter) ([]*feedback.Review, error)
}

// FeedbackHandler accepts customer feedback and lists reviews for admins.
type FeedbackHandler struct {
	*BaseHandler
	service FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(base *BaseHandler, service FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{BaseHandler: base, service: service}
}

// Create handles POST /restaurant/feedback
func (h *FeedbackHandler) Create(c *gin.Context) {
	uid, ok := h.UserID(c)
	if !ok {
		return
	}
	var req dto.FeedbackRequest
	if !h.BindJSON(c, &req) {
		return
	}

	f, err := h.service.Create(c.Request.Context(), feedback.CreateInput{
		RestaurantSlug: req.Restaurant,
		CustomerID:     uid,
		Rating:         req.Rating,
		Text:           req.Feedback,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromFeedback(f))
}

// Reviews handles GET /admin/reviews
func (h *FeedbackHandler) Reviews(c *gin.Context) {
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	items, err := h.service.ListReviews(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items, func(r *feedback.Review) dto.ReviewResponse {
		return dto.FromReview(r, h.URL())
	}))
}

// RegisterRoutes registers the customer and admin feedback routes.
func (h *FeedbackHandler) RegisterRoutes(customer, admin *gin.RouterGroup) {
	customer.POST("/feedback", h.Create)
	admin.GET("/reviews", h.Reviews)
}
