// Package account provides customer and administrator accounts:
// registration, login, profile and phone verification.
package account

import (
	"context"
	"time"

	"dastarkhan/internal/core/apperror"
	appctx "dastarkhan/internal/core/context"
	"dastarkhan/internal/core/entity"
	"dastarkhan/internal/domain/images"
	"dastarkhan/internal/domain/validation"
)

// MaxNameLength bounds first and last names.
const MaxNameLength = 150

// Account is a user identified by phone number.
type Account struct {
	entity.BaseEntity

	PhoneNumber  string  `db:"phone_number" json:"phoneNumber"`
	FirstName    string  `db:"first_name" json:"firstName"`
	LastName     *string `db:"last_name" json:"lastName,omitempty"`
	PasswordHash string  `db:"password_hash" json:"-"`

	// Phone verification state. Empty when no code is outstanding.
	PhoneToken  *string    `db:"phone_token" json:"-"`
	PhoneSecret *string    `db:"phone_secret" json:"-"`
	ExpiresAt   *time.Time `db:"expires_at" json:"-"`

	Status      string `db:"status" json:"status"`
	IsActive    bool   `db:"is_active" json:"isActive"`
	IsStaff     bool   `db:"is_staff" json:"isStaff"`
	IsSuperuser bool   `db:"is_superuser" json:"isSuperuser"`

	Avatar string `db:"avatar" json:"avatar"`

	entity.Timestamps
}

// NewAccount creates an active customer with the default avatar.
func NewAccount(phone, firstName string) *Account {
	return &Account{
		BaseEntity:  entity.NewBaseEntity(),
		PhoneNumber: phone,
		FirstName:   firstName,
		Status:      appctx.StatusCustomer,
		IsActive:    true,
		Avatar:      images.NoPhoto,
		Timestamps:  entity.NewTimestamps(),
	}
}

// Validate implements entity.Validatable interface.
func (a *Account) Validate(ctx context.Context) error {
	if err := validation.PhoneNumber(a.PhoneNumber); err != nil {
		return err
	}
	if err := validation.Username(a.FirstName); err != nil {
		return err
	}
	if err := validation.MaxLength("first_name", a.FirstName, MaxNameLength); err != nil {
		return err
	}
	if a.LastName != nil {
		if err := validation.MaxLength("last_name", *a.LastName, MaxNameLength); err != nil {
			return err
		}
	}
	switch a.Status {
	case appctx.StatusCustomer, appctx.StatusAdministrator:
	default:
		return apperror.NewInvalidInput("status", "unknown account status").WithDetail("value", a.Status)
	}
	return nil
}

// CanLogin checks if the account may authenticate.
func (a *Account) CanLogin() error {
	if !a.IsActive {
		return apperror.NewForbidden("account is not active")
	}
	return nil
}

// ClearPhoneToken drops the outstanding verification code.
func (a *Account) ClearPhoneToken() {
	a.PhoneToken = nil
	a.PhoneSecret = nil
	a.ExpiresAt = nil
}
