package address

import (
	"context"

	"dastarkhan/internal/core/apperror"
	"dastarkhan/internal/core/id"
	"dastarkhan/internal/core/tx"
	"dastarkhan/internal/domain"
	"dastarkhan/internal/domain/singleton"
	"dastarkhan/pkg/logger"
)

const entityName = "address"

// Input is the payload of CreateAddress and UpdateAddress. On update nil
// fields keep their value.
type Input struct {
	TownCity     *string
	AddressLine  *string
	AddressLine2 *string
	IsDefault    *bool
}

// Service provides business logic for addresses.
type Service struct {
	repo     Repository
	tx       tx.Manager
	enforcer *singleton.Enforcer
}

// NewService creates a new Address service.
func NewService(repo Repository, txm tx.Manager, enforcer *singleton.Enforcer) *Service {
	return &Service{repo: repo, tx: txm, enforcer: enforcer}
}

// Create stores a new address. Setting IsDefault moves the default flag to it.
func (s *Service) Create(ctx context.Context, in Input) (*Address, error) {
	a := NewAddress("", "")
	apply(a, in)
	if err := a.Validate(ctx); err != nil {
		return nil, domain.NormalizeValidationErr(err)
	}

	err := s.enforcer.EnforceExclusive(ctx, singleton.DefaultAddress, s.repo, a.IsDefault,
		func(ctx context.Context) error {
			return s.repo.Create(ctx, a)
		})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "address created", "id", a.ID, "default", a.IsDefault)
	return a, nil
}

// Update applies in to the address as read under a row lock in the same
// transaction that stores it.
func (s *Service) Update(ctx context.Context, addressID id.ID, in Input) (*Address, error) {
	var a *Address
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		a, err = s.repo.GetForUpdate(ctx, addressID)
		if err != nil {
			return domain.NormalizeGetErr(err, entityName, addressID.String())
		}
		apply(a, in)
		if err := a.Validate(ctx); err != nil {
			return domain.NormalizeValidationErr(err)
		}
		a.Touch()

		return s.enforcer.EnforceExclusive(ctx, singleton.DefaultAddress, s.repo, a.IsDefault,
			func(ctx context.Context) error {
				return s.repo.Update(ctx, a)
			})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "address updated", "id", a.ID, "default", a.IsDefault)
	return a, nil
}

// Get returns one address.
func (s *Service) Get(ctx context.Context, addressID id.ID) (*Address, error) {
	a, err := s.repo.GetByID(ctx, addressID)
	if err != nil {
		return nil, domain.NormalizeGetErr(err, entityName, addressID.String())
	}
	return a, nil
}

// List returns every address.
func (s *Service) List(ctx context.Context) ([]*Address, error) {
	return s.repo.List(ctx)
}

// ListDefault returns the default address shown to customers.
func (s *Service) ListDefault(ctx context.Context) ([]*Address, error) {
	items, err := s.repo.ListDefault(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewNotFound(entityName, "default").
			WithDetail("reason", "no default address yet")
	}
	return items, nil
}

// Delete removes a non-default address. The default one must be reassigned first.
func (s *Service) Delete(ctx context.Context, addressID id.ID) error {
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetForUpdate(ctx, addressID)
		if err != nil {
			return domain.NormalizeGetErr(err, entityName, addressID.String())
		}
		if a.IsDefault {
			return apperror.NewConflict("this is the default address, set default to another address before deleting it").
				WithDetail("id", addressID.String())
		}
		return s.repo.Delete(ctx, addressID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "address deleted", "id", addressID)
	return nil
}

func apply(a *Address, in Input) {
	if in.TownCity != nil {
		a.TownCity = *in.TownCity
	}
	if in.AddressLine != nil {
		a.AddressLine = *in.AddressLine
	}
	if in.AddressLine2 != nil {
		a.AddressLine2 = in.AddressLine2
		if *in.AddressLine2 == "" {
			a.AddressLine2 = nil
		}
	}
	if in.IsDefault != nil {
		a.IsDefault = *in.IsDefault
	}
}
