package domain

import (
	"context"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/tx"
	"dastarkhan/internal/domain/images"
)

// Mutation runs fn in one transaction and removes the images it queued only
// after the transaction has committed. A failed fn or commit keeps every
// previously referenced file and drops only the uploads fn wrote.
func Mutation(
	ctx context.Context,
	txm tx.Manager,
	store images.Store,
	fn func(ctx context.Context, cleanup *images.Cleanup) error,
) error {
	cleanup := images.NewCleanup(store)
	if err := txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return fn(ctx, cleanup)
	}); err != nil {
		cleanup.Discard(ctx)
		return err
	}
	cleanup.Flush(ctx)
	return nil
}

// NormalizeValidationErr keeps structured errors and wraps anything else as InvalidInput.
func NormalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInvalidInput("", err.Error())
}

// NormalizeGetErr maps a lookup failure to a NotFound naming the entity and key.
func NormalizeGetErr(err error, entityName string, key any) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(entityName, key)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", entityName).WithDetail("key", key)
}
