package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
	"github.com/avltr/personal_ledger_app/internal/utils/timeperiod"
)

// ReportingService exposes the monetary aggregations. All cross-currency
// figures are resolved to the default reporting currency; contributions with
// no resolvable rate are silently excluded, and rounding happens only on the
// final result.
type ReportingService interface {
	// AccountBalance derives an account's balance from its beginning balance
	// and every record, incoming transfer and settled split that touches it.
	AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// PeriodFigure sums the self-portion of records matching the filter and
	// returns the absolute value of the net.
	PeriodFigure(ctx context.Context, filter domain.PeriodFilter) (decimal.Decimal, error)

	// PerCurrencyTotals groups period income/expense/net by each record's own
	// currency with no conversion applied. Currencies whose income and
	// expense are both zero are omitted.
	PerCurrencyTotals(ctx context.Context, filter domain.PeriodFilter) (map[string]domain.CurrencyTotals, error)

	// CategoryTotals buckets the period's records by category (parent rollup
	// unless subcategories is set), nonzero buckets only, sorted by amount
	// descending.
	CategoryTotals(ctx context.Context, filter domain.PeriodFilter, subcategories bool) ([]domain.CategoryTotal, error)

	// DailySpending returns one spending amount per day in [start, end],
	// clipped at today. Cumulative accumulates a running total.
	DailySpending(ctx context.Context, start, end time.Time, cumulative bool) ([]decimal.Decimal, error)

	// DailyBalance returns the aggregate balance across all accounts for each
	// day in [start, end], clipped at today.
	DailyBalance(ctx context.Context, start, end time.Time) ([]decimal.Decimal, error)

	// PeriodAverage spreads a net figure over the days of a period.
	PeriodAverage(net decimal.Decimal, offset int, g timeperiod.Granularity) decimal.Decimal
}

// ReportingInvalidator is implemented by reporting decorators that memoize
// results and need explicit invalidation after writes.
type ReportingInvalidator interface {
	Invalidate()
}
