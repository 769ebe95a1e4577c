// Package venue_repo provides PostgreSQL repositories for the restaurant
// profile, its branch addresses and its gallery.
package venue_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"dastarkhan/internal/domain/venue/address"
	"dastarkhan/internal/infrastructure/storage/postgres"
)

const addressTable = "addresses"

var _ address.Repository = (*AddressRepo)(nil)

// AddressRepo implements address.Repository.
type AddressRepo struct {
	*postgres.BaseRepo[*address.Address]
}

// NewAddressRepo creates a new address repository.
func NewAddressRepo(txm *postgres.TxManager) *AddressRepo {
	return &AddressRepo{
		BaseRepo: postgres.NewBaseRepo[*address.Address](
			txm,
			addressTable,
			"address",
			postgres.ExtractDBColumns[address.Address](),
			func() *address.Address { return &address.Address{} },
		),
	}
}

// List returns every address, oldest first.
func (r *AddressRepo) List(ctx context.Context) ([]*address.Address, error) {
	return r.FindAll(ctx, r.Select().OrderBy("created_at"))
}

// ListDefault returns the default address, if any, as a list.
func (r *AddressRepo) ListDefault(ctx context.Context) ([]*address.Address, error) {
	return r.FindAll(ctx, r.Select().Where(squirrel.Eq{"is_default": true}))
}
