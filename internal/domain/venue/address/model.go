// Package address provides the restaurant branch addresses. At most one
// address is the default one shown to customers.
package address

import (
	"context"

	"dastarkhan/internal/core/entity"
	"dastarkhan/internal/domain/validation"
)

const (
	MaxTownCityLength    = 150
	MaxAddressLineLength = 255
)

// Address is a branch location.
type Address struct {
	entity.BaseEntity

	TownCity     string  `db:"town_city" json:"townCity"`
	AddressLine  string  `db:"address_line" json:"addressLine"`
	AddressLine2 *string `db:"address_line2" json:"addressLine2,omitempty"`

	// IsDefault is exclusive across the collection.
	IsDefault bool `db:"is_default" json:"isDefault"`

	entity.Timestamps
}

// NewAddress creates a non-default Address.
func NewAddress(townCity, line string) *Address {
	return &Address{
		BaseEntity:  entity.NewBaseEntity(),
		TownCity:    townCity,
		AddressLine: line,
		Timestamps:  entity.NewTimestamps(),
	}
}

// Validate implements entity.Validatable interface.
func (a *Address) Validate(ctx context.Context) error {
	if err := validation.Required("town_city", a.TownCity); err != nil {
		return err
	}
	if err := validation.MaxLength("town_city", a.TownCity, MaxTownCityLength); err != nil {
		return err
	}
	if err := validation.Required("address_line", a.AddressLine); err != nil {
		return err
	}
	if err := validation.MaxLength("address_line", a.AddressLine, MaxAddressLineLength); err != nil {
		return err
	}
	if a.AddressLine2 != nil {
		if err := validation.MaxLength("address_line2", *a.AddressLine2, MaxAddressLineLength); err != nil {
			return err
		}
	}
	return nil
}
