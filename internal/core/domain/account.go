package domain

import (
	"github.com/shopspring/decimal"
)

// OutsideSourceName is the sentinel account representing money entering or
// leaving the tracked system via transfers.
const OutsideSourceName = "Outside source"

// Account represents a tracked account within the core domain.
// Balance is derived by the reporting service and never persisted.
type Account struct {
	AccountID        string          `json:"accountID"` // Primary Key (UUID)
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	BeginningBalance decimal.Decimal `json:"beginningBalance"` // Seed value, set at creation, never auto-mutated
	RepaymentDate    int             `json:"repaymentDate"`    // Day of month splits to this account are typically settled; 0 when unset
	Hidden           bool            `json:"hidden"`
	AuditFields
}
