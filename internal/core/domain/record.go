package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is a monetary event against an account: an expense, an income, or a
// transfer to another account. Amount is always positive; the flags decide the
// sign of its effect. IsTransfer and IsIncome are mutually exclusive.
type Record struct {
	RecordID string          `json:"recordID"` // Primary Key (UUID)
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"` // > 0, in CurrencyCode
	// CurrencyCode is the record's own currency. Empty means the configured
	// default currency.
	CurrencyCode        string    `json:"currencyCode"`
	Date                time.Time `json:"date"`
	AccountID           string    `json:"accountID"`
	CategoryID          string    `json:"categoryID"` // Empty for uncategorized records (e.g. transfers)
	IsIncome            bool      `json:"isIncome"`
	IsTransfer          bool      `json:"isTransfer"`
	TransferToAccountID string    `json:"transferToAccountID"` // Set only when IsTransfer
	Splits              []Split   `json:"splits"`
	AuditFields
}

// SplitTotal is the portion of the record's amount attributed to other persons.
func (r Record) SplitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r.Splits {
		total = total.Add(s.Amount)
	}
	return total
}

// SelfPortion is the part of the record the owning account itself bears:
// amount minus the sum of split amounts.
func (r Record) SelfPortion() decimal.Decimal {
	return r.Amount.Sub(r.SplitTotal())
}

// Split attributes a portion of a record's amount to a person. Its currency
// falls back to the record's currency, then to the default currency.
type Split struct {
	SplitID      string          `json:"splitID"` // Primary Key (UUID)
	RecordID     string          `json:"recordID"`
	PersonID     string          `json:"personID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"` // Empty means the record's currency
	IsPaid       bool            `json:"isPaid"`
	PaidDate     *time.Time      `json:"paidDate"`
	AccountID    string          `json:"accountID"` // Account the settlement was paid into; empty when unpaid
	AuditFields
}
