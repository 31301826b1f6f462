package dto

import (
	"github.com/shopspring/decimal"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
)

// PeriodFigureResponse carries a single aggregated period figure in the
// default reporting currency. The figure is an absolute value; the isIncome
// filter the caller supplied decides how to read it.
type PeriodFigureResponse struct {
	Figure decimal.Decimal `json:"figure"`
}

// CurrencyTotalsResponse maps each currency code to its segregated
// income/expense/net totals. No conversion is applied.
type CurrencyTotalsResponse struct {
	Totals map[string]domain.CurrencyTotals `json:"totals"`
}

// CategoryTotalResponse is one category bucket of a period breakdown.
type CategoryTotalResponse struct {
	Category CategoryResponse `json:"category"`
	Amount   decimal.Decimal  `json:"amount"`
}

// CategoryTotalsResponse wraps the category breakdown, sorted by amount
// descending.
type CategoryTotalsResponse struct {
	Totals []CategoryTotalResponse `json:"totals"`
}

// DailySeriesResponse is a day-by-day series of amounts, one entry per day
// from the start date up to at most today.
type DailySeriesResponse struct {
	Series []decimal.Decimal `json:"series"`
}
