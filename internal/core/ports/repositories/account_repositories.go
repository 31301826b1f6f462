package repositories

import (
	"context"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for account data. Soft-deleted
// accounts are filtered out at this boundary, never by callers.
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts returns non-deleted accounts, hidden ones included only on
	// request.
	ListAccounts(ctx context.Context, includeHidden bool) ([]domain.Account, error)

	// FindAccountByName retrieves an account by its exact name. Used to
	// resolve the "Outside source" sentinel.
	FindAccountByName(ctx context.Context, name string) (*domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount soft-deletes by stamping a deletion timestamp.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
