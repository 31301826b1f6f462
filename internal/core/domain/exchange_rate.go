package domain

import (
	"github.com/shopspring/decimal"
)

// ExchangeRate is a directed currency-pair rate: 1 FromCode = Rate * ToCode.
// For every stored pair (A,B,r) the store also holds (B,A,1/r) with the same
// manual flag and timestamp; the pair is written atomically. Same-currency
// pairs are never stored.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (UUID)
	FromCode       string          `json:"fromCode"`
	ToCode         string          `json:"toCode"`
	Rate           decimal.Decimal `json:"rate"` // Always > 0
	IsManual       bool            `json:"isManual"`
	AuditFields
}
