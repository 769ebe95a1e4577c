// Package singleton keeps "at most one row flagged" invariants such as the
// default address and the featured gallery image.
package singleton

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"dastarkhan/internal/core/tx"
)

var tracer = otel.Tracer("dastarkhan/singleton")

// Flag names an exclusive boolean column of a collection.
type Flag struct {
	Collection string
	Field      string
}

// String is also the advisory lock key for the flag.
func (f Flag) String() string {
	return f.Collection + "." + f.Field
}

// Predefined flags.
var (
	DefaultAddress = Flag{Collection: "addresses", Field: "is_default"}
	FeaturedMedia  = Flag{Collection: "media", Field: "is_feature"}
)

// Collection clears an exclusive flag on every row that currently holds it.
type Collection interface {
	ClearFlag(ctx context.Context, field string) error
}

// Enforcer runs a candidate's persist step so that, once committed, at most
// one row of the collection carries the flag.
type Enforcer struct {
	tx     tx.Manager
	locker tx.Locker
}

// NewEnforcer creates an Enforcer. locker may be nil when the transaction
// isolation alone serializes writers.
func NewEnforcer(txm tx.Manager, locker tx.Locker) *Enforcer {
	return &Enforcer{tx: txm, locker: locker}
}

// EnforceExclusive persists a candidate inside one transaction.
//
// When wantsFlag is false persist runs alone and any existing flagged row is
// untouched. When true, concurrent setters of the same flag are serialized,
// every flagged row is cleared, and persist must then store the candidate with
// the flag set. Last committer wins.
func (e *Enforcer) EnforceExclusive(
	ctx context.Context,
	flag Flag,
	coll Collection,
	wantsFlag bool,
	persist func(ctx context.Context) error,
) error {
	ctx, span := tracer.Start(ctx, "singleton.enforce",
		trace.WithAttributes(
			attribute.String("flag", flag.String()),
			attribute.Bool("set", wantsFlag),
		))
	defer span.End()

	return e.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if wantsFlag {
			if e.locker != nil {
				if err := e.locker.Lock(ctx, flag.String()); err != nil {
					return fmt.Errorf("lock %s: %w", flag, err)
				}
			}
			if err := coll.ClearFlag(ctx, flag.Field); err != nil {
				return fmt.Errorf("clear %s: %w", flag, err)
			}
		}
		return persist(ctx)
	})
}
