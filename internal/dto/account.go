package dto

import (
	"github.com/shopspring/decimal"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating a new account.
type CreateAccountRequest struct {
	Name             string          `json:"name" binding:"required"`
	Description      string          `json:"description"`
	BeginningBalance decimal.Decimal `json:"beginningBalance"`
	RepaymentDate    int             `json:"repaymentDate" binding:"omitempty,min=1,max=31"`
	Hidden           bool            `json:"hidden"`
}

// UpdateAccountRequest defines the payload for updating an account. Nil fields
// are left unchanged. BeginningBalance is deliberately absent: it is a seed
// value set at creation only.
type UpdateAccountRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	RepaymentDate *int    `json:"repaymentDate" binding:"omitempty,min=1,max=31"`
	Hidden        *bool   `json:"hidden"`
}

// AccountResponse defines the account data returned by the API.
type AccountResponse struct {
	AccountID        string          `json:"accountID"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	BeginningBalance decimal.Decimal `json:"beginningBalance"`
	RepaymentDate    int             `json:"repaymentDate,omitempty"`
	Hidden           bool            `json:"hidden"`
}

// ToAccountResponse maps a domain account to its response DTO.
func ToAccountResponse(a domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        a.AccountID,
		Name:             a.Name,
		Description:      a.Description,
		BeginningBalance: a.BeginningBalance,
		RepaymentDate:    a.RepaymentDate,
		Hidden:           a.Hidden,
	}
}

// ListAccountsResponse wraps the account listing.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountBalanceResponse carries a derived account balance in the default
// reporting currency.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}
