// Package account_repo provides the PostgreSQL account repository.
package account_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"dastarkhan/internal/domain/account"
	"dastarkhan/internal/infrastructure/storage/postgres"
)

const accountTable = "accounts"

var _ account.Repository = (*AccountRepo)(nil)

// AccountRepo implements account.Repository.
type AccountRepo struct {
	*postgres.BaseRepo[*account.Account]
}

// NewAccountRepo creates a new account repository.
func NewAccountRepo(txm *postgres.TxManager) *AccountRepo {
	return &AccountRepo{
		BaseRepo: postgres.NewBaseRepo[*account.Account](
			txm,
			accountTable,
			"account",
			postgres.ExtractDBColumns[account.Account](),
			func() *account.Account { return &account.Account{} },
		),
	}
}

// GetByPhone retrieves an account by its login phone number.
func (r *AccountRepo) GetByPhone(ctx context.Context, phone string) (*account.Account, error) {
	return r.GetBy(ctx, "phone_number", phone)
}

// PhoneTaken reports whether phone is already registered.
func (r *AccountRepo) PhoneTaken(ctx context.Context, phone string) (bool, error) {
	return r.ExistsWhere(ctx, squirrel.Eq{"phone_number": phone})
}
