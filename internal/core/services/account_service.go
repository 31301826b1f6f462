package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avltr/personal_ledger_app/internal/apperrors"
	"github.com/avltr/personal_ledger_app/internal/core/domain"
	portsrepo "github.com/avltr/personal_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/avltr/personal_ledger_app/internal/core/ports/services"
	"github.com/avltr/personal_ledger_app/internal/dto"
)

// accountService provides business logic for accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account with its beginning balance seed.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:        uuid.NewString(),
		Name:             name,
		Description:      req.Description,
		BeginningBalance: req.BeginningBalance,
		RepaymentDate:    req.RepaymentDate,
		Hidden:           req.Hidden,
		AuditFields:      domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("name", name))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &account, nil
}

// GetAccountByID retrieves an account by ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// ListAccounts returns all accounts, hidden ones only on request.
func (s *accountService) ListAccounts(ctx context.Context, includeHidden bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, includeHidden)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount applies the non-nil request fields. The beginning balance is
// never touched here.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account for update: %w", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.RepaymentDate != nil {
		account.RepaymentDate = *req.RepaymentDate
	}
	if req.Hidden != nil {
		account.Hidden = *req.Hidden
	}
	account.UpdatedAt = time.Now()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// EnsureOutsideSourceAccount seeds the hidden "Outside source" sentinel on
// first run. Idempotent: an existing account with that name is left alone.
func (s *accountService) EnsureOutsideSourceAccount(ctx context.Context) error {
	_, err := s.accountRepo.FindAccountByName(ctx, domain.OutsideSourceName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up outside source account: %w", err)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:        uuid.NewString(),
		Name:             domain.OutsideSourceName,
		Description:      "Default account for external transactions",
		BeginningBalance: decimal.Zero,
		Hidden:           true,
		AuditFields:      domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return fmt.Errorf("failed to seed outside source account: %w", err)
	}
	s.LogInfo(ctx, "Seeded outside source account", slog.String("account_id", account.AccountID))
	return nil
}

// DeleteAccount soft-deletes an account.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
