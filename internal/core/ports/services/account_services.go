package services

import (
	"context"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
	"github.com/avltr/personal_ledger_app/internal/dto"
)

// AccountReaderSvc defines read-side account operations.
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, includeHidden bool) ([]domain.Account, error)
}

// AccountWriterSvc defines write-side account operations.
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error

	// EnsureOutsideSourceAccount creates the hidden "Outside source" sentinel
	// account when it does not exist yet. Transfers to and from it are how
	// money enters and leaves the system.
	EnsureOutsideSourceAccount(ctx context.Context) error
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
