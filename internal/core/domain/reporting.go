package domain

import (
	"github.com/shopspring/decimal"

	"github.com/avltr/personal_ledger_app/internal/utils/timeperiod"
)

// PeriodFilter selects records for an aggregation: a rolling period plus
// optional account, category-nature and income/expense constraints.
type PeriodFilter struct {
	Offset      int
	Granularity timeperiod.Granularity
	AccountID   string  // Empty matches any account
	Nature      *Nature // Nil matches any category nature
	IsIncome    *bool   // Nil matches both income and expense
}

// CurrencyTotals is the per-currency income/expense/net triple of the
// currency-segregated period view. No conversion is applied to these figures.
type CurrencyTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// CategoryTotal pairs a category with its aggregated period amount in the
// default currency.
type CategoryTotal struct {
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// SplitSettlement is an eager snapshot of a paid split settled into an
// account, carrying the parent record fields the balance computation needs.
type SplitSettlement struct {
	Amount             decimal.Decimal
	CurrencyCode       string // Split's own currency, may be empty
	RecordCurrencyCode string // Parent record's currency, may be empty
	RecordIsIncome     bool
}

// RecordFlow is a record snapshot joined with the denormalized account names
// needed to classify transfers against the "Outside source" sentinel.
type RecordFlow struct {
	Record
	AccountName           string
	TransferToAccountName string
}
