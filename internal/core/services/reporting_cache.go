package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avltr/personal_ledger_app/internal/cache"
	"github.com/avltr/personal_ledger_app/internal/core/domain"
	portssvc "github.com/avltr/personal_ledger_app/internal/core/ports/services"
	"github.com/avltr/personal_ledger_app/internal/utils/timeperiod"
)

// cachedReportingService memoizes reporting results keyed by call arguments.
// Writes do not invalidate it; callers invoke Invalidate after mutating the
// store and should not retain results across writes.
type cachedReportingService struct {
	inner portssvc.ReportingService

	figures    *cache.LRUCache[decimal.Decimal]
	currencies *cache.LRUCache[map[string]domain.CurrencyTotals]
	categories *cache.LRUCache[[]domain.CategoryTotal]
	series     *cache.LRUCache[[]decimal.Decimal]
}

// NewCachedReportingService wraps a reporting service with argument-keyed
// memoization for the lifetime of a single client refresh.
func NewCachedReportingService(inner portssvc.ReportingService, size int, ttl time.Duration) portssvc.ReportingService {
	return &cachedReportingService{
		inner:      inner,
		figures:    cache.NewLRUCache[decimal.Decimal](size, ttl),
		currencies: cache.NewLRUCache[map[string]domain.CurrencyTotals](size, ttl),
		categories: cache.NewLRUCache[[]domain.CategoryTotal](size, ttl),
		series:     cache.NewLRUCache[[]decimal.Decimal](size, ttl),
	}
}

var (
	_ portssvc.ReportingService     = (*cachedReportingService)(nil)
	_ portssvc.ReportingInvalidator = (*cachedReportingService)(nil)
)

func filterKey(f domain.PeriodFilter) string {
	nature := "-"
	if f.Nature != nil {
		nature = string(*f.Nature)
	}
	isIncome := "-"
	if f.IsIncome != nil {
		isIncome = fmt.Sprintf("%t", *f.IsIncome)
	}
	return fmt.Sprintf("%d|%s|%s|%s|%s", f.Offset, f.Granularity, f.AccountID, nature, isIncome)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}

// Invalidate drops every memoized result.
func (s *cachedReportingService) Invalidate() {
	s.figures.Purge()
	s.currencies.Purge()
	s.categories.Purge()
	s.series.Purge()
}

func (s *cachedReportingService) AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	key := "balance|" + accountID
	if v, ok := s.figures.Get(key); ok {
		return v, nil
	}
	v, err := s.inner.AccountBalance(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	s.figures.Set(key, v)
	return v, nil
}

func (s *cachedReportingService) PeriodFigure(ctx context.Context, filter domain.PeriodFilter) (decimal.Decimal, error) {
	key := "figure|" + filterKey(filter)
	if v, ok := s.figures.Get(key); ok {
		return v, nil
	}
	v, err := s.inner.PeriodFigure(ctx, filter)
	if err != nil {
		return decimal.Zero, err
	}
	s.figures.Set(key, v)
	return v, nil
}

func (s *cachedReportingService) PerCurrencyTotals(ctx context.Context, filter domain.PeriodFilter) (map[string]domain.CurrencyTotals, error) {
	key := filterKey(filter)
	if v, ok := s.currencies.Get(key); ok {
		return v, nil
	}
	v, err := s.inner.PerCurrencyTotals(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.currencies.Set(key, v)
	return v, nil
}

func (s *cachedReportingService) CategoryTotals(ctx context.Context, filter domain.PeriodFilter, subcategories bool) ([]domain.CategoryTotal, error) {
	key := fmt.Sprintf("%s|sub=%t", filterKey(filter), subcategories)
	if v, ok := s.categories.Get(key); ok {
		return v, nil
	}
	v, err := s.inner.CategoryTotals(ctx, filter, subcategories)
	if err != nil {
		return nil, err
	}
	s.categories.Set(key, v)
	return v, nil
}

func (s *cachedReportingService) DailySpending(ctx context.Context, start, end time.Time, cumulative bool) ([]decimal.Decimal, error) {
	key := fmt.Sprintf("spending|%s|%s|%t", dayKey(start), dayKey(end), cumulative)
	if v, ok := s.series.Get(key); ok {
		return v, nil
	}
	v, err := s.inner.DailySpending(ctx, start, end, cumulative)
	if err != nil {
		return nil, err
	}
	s.series.Set(key, v)
	return v, nil
}

func (s *cachedReportingService) DailyBalance(ctx context.Context, start, end time.Time) ([]decimal.Decimal, error) {
	key := fmt.Sprintf("balance-series|%s|%s", dayKey(start), dayKey(end))
	if v, ok := s.series.Get(key); ok {
		return v, nil
	}
	v, err := s.inner.DailyBalance(ctx, start, end)
	if err != nil {
		return nil, err
	}
	s.series.Set(key, v)
	return v, nil
}

func (s *cachedReportingService) PeriodAverage(net decimal.Decimal, offset int, g timeperiod.Granularity) decimal.Decimal {
	return s.inner.PeriodAverage(net, offset, g)
}
