// Package id provides time-ordered identifiers for every stored record.
package id

import (
	"github.com/google/uuid"
)

// ID is the identifier type used by all entities.
type ID = uuid.UUID

// New returns a UUIDv7 so primary keys sort by insertion time.
func New() ID {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v
}

// Parse converts string to ID with validation.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse panics on malformed input. Tests only.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// IsNil checks if ID is zero-value.
func IsNil(v ID) bool {
	return v == uuid.Nil
}
