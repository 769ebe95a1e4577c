// Package restaurant provides the restaurant profile. Only one restaurant
// exists per deployment.
package restaurant

import (
	"context"

	"dastarkhan/internal/core/entity"
	"dastarkhan/internal/domain/validation"
	"dastarkhan/internal/domain/venue/media"
)

const (
	MaxNameLength   = 150
	MaxLinkLength   = 100
	MaxDomainLength = 255
)

// Restaurant is the venue profile shown to customers.
type Restaurant struct {
	entity.BaseEntity

	Name    string `db:"name" json:"name"`
	Slug    string `db:"slug" json:"slug"`
	AboutUs string `db:"about_us" json:"aboutUs"`

	PhoneNumber1 string  `db:"phone_number1" json:"phoneNumber1"`
	PhoneNumber2 *string `db:"phone_number2" json:"phoneNumber2,omitempty"`

	TelegramLink  *string `db:"telegram_link" json:"telegramLink,omitempty"`
	InstagramLink *string `db:"instagram_link" json:"instagramLink,omitempty"`
	FacebookLink  *string `db:"facebook_link" json:"facebookLink,omitempty"`

	// DomainName is encoded into the QR code.
	DomainName string `db:"domain_name" json:"domainName"`

	// QRCode is the storage reference of the generated PNG.
	QRCode string `db:"qr_code" json:"qrCode"`

	Media []*media.Media `db:"-" json:"media,omitempty"`

	entity.Timestamps
}

// NewRestaurant creates an empty Restaurant with a fresh id.
func NewRestaurant() *Restaurant {
	return &Restaurant{
		BaseEntity: entity.NewBaseEntity(),
		Timestamps: entity.NewTimestamps(),
	}
}

// Validate implements entity.Validatable interface.
func (r *Restaurant) Validate(ctx context.Context) error {
	if err := validation.Required("name", r.Name); err != nil {
		return err
	}
	if err := validation.MaxLength("name", r.Name, MaxNameLength); err != nil {
		return err
	}
	if err := validation.Required("about_us", r.AboutUs); err != nil {
		return err
	}
	if err := validation.PhoneNumber(r.PhoneNumber1); err != nil {
		return err
	}
	if r.PhoneNumber2 != nil {
		if err := validation.PhoneNumber(*r.PhoneNumber2); err != nil {
			return err
		}
	}
	links := []struct {
		field string
		value *string
	}{
		{"telegram_link", r.TelegramLink},
		{"instagram_link", r.InstagramLink},
		{"facebook_link", r.FacebookLink},
	}
	for _, l := range links {
		if l.value == nil {
			continue
		}
		if err := validation.MaxLength(l.field, *l.value, MaxLinkLength); err != nil {
			return err
		}
	}
	if err := validation.Required("domain_name", r.DomainName); err != nil {
		return err
	}
	return validation.MaxLength("domain_name", r.DomainName, MaxDomainLength)
}
