package account

import (
	"context"

	"dastarkhan/internal/core/id"
)

// Repository defines the interface for Account persistence.
type Repository interface {
	Create(ctx context.Context, a *Account) error
	Update(ctx context.Context, a *Account) error

	GetByID(ctx context.Context, id id.ID) (*Account, error)
	GetByPhone(ctx context.Context, phone string) (*Account, error)

	PhoneTaken(ctx context.Context, phone string) (bool, error)
}

// FeedbackChecker reports whether a customer has left any feedback.
// The answer is carried in issued tokens.
type FeedbackChecker interface {
	HasFeedback(ctx context.Context, customerID id.ID) (bool, error)
}

// CodeSender delivers phone verification codes, typically by SMS.
type CodeSender interface {
	SendCode(ctx context.Context, phone, code string) error
}
