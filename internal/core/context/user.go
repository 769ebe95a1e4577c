// Package context carries request-scoped values (trace ids, authenticated account).
package context

import (
	"context"
)

// Account statuses carried in tokens.
const (
	StatusCustomer      = "CUSTOMER"
	StatusAdministrator = "ADMINISTRATOR"
)

// UserContext contains authenticated account information.
type UserContext struct {
	UserID      string
	PhoneNumber string
	Status      string
	IsStaff     bool
	HasFeedback bool
}

// IsAdministrator reports whether the account may use admin endpoints.
func (u *UserContext) IsAdministrator() bool {
	return u != nil && (u.Status == StatusAdministrator || u.IsStaff)
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}
