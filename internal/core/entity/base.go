// Package entity holds the fields shared by stored records.
package entity

import (
	"context"
	"time"

	"dastarkhan/internal/core/id"
)

// Validatable is implemented by entities that check their own shape rules
// (no storage access).
type Validatable interface {
	// Validate returns nil or an *apperror.AppError of the InvalidInput class.
	Validate(ctx context.Context) error
}

// BaseEntity carries the primary key.
type BaseEntity struct {
	ID id.ID `db:"id" json:"id"`
}

// NewBaseEntity creates a BaseEntity with a fresh UUIDv7.
func NewBaseEntity() BaseEntity {
	return BaseEntity{ID: id.New()}
}

// Timestamps are maintained by services, not by the database.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewTimestamps stamps both fields with the current UTC time.
func NewTimestamps() Timestamps {
	now := time.Now().UTC()
	return Timestamps{CreatedAt: now, UpdatedAt: now}
}

// Touch moves UpdatedAt forward.
func (t *Timestamps) Touch() {
	t.UpdatedAt = time.Now().UTC()
}
