package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
	portsrepo "github.com/avltr/personal_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/avltr/personal_ledger_app/internal/core/ports/services"
	"github.com/avltr/personal_ledger_app/internal/utils/timeperiod"
	"github.com/avltr/personal_ledger_app/pkg/config"
)

// reportingService implements the monetary aggregations.
//
// Shared conversion policy: every contribution is resolved to the default
// reporting currency; contributions with no resolvable rate are silently
// excluded from the aggregate. Rounding happens once, on the final result,
// half-up to the configured decimals; intermediate conversions stay unrounded.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
	categoryRepo  portsrepo.CategoryReader
	converter     portssvc.CurrencyConverter

	defaultCurrency string
	roundDecimals   int32
	firstDayOfWeek  time.Weekday

	now func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service.
type ReportingServiceOption func(*reportingService)

// WithNowFunc overrides the wall-clock source. Intended for tests.
func WithNowFunc(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	accountRepo portsrepo.AccountReader,
	categoryRepo portsrepo.CategoryReader,
	converter portssvc.CurrencyConverter,
	cfg *config.Config,
	options ...ReportingServiceOption,
) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo:   reportingRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		converter:       converter,
		defaultCurrency: domain.NormalizeCurrencyCode(cfg.DefaultCurrency),
		roundDecimals:   int32(cfg.RoundDecimals),
		firstDayOfWeek:  cfg.FirstDayOfWeek,
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// resolveCode maps an empty record/split currency to the default currency.
func (s *reportingService) resolveCode(code string) string {
	if code == "" {
		return s.defaultCurrency
	}
	return code
}

// toDefault converts an amount from the given currency into the default
// currency. ok is false when no rate is resolvable, in which case the
// contribution must be skipped.
func (s *reportingService) toDefault(ctx context.Context, amount decimal.Decimal, code string) (decimal.Decimal, bool, error) {
	code = s.resolveCode(code)
	if code == s.defaultCurrency {
		return amount, true, nil
	}
	return s.converter.Convert(ctx, amount, code, s.defaultCurrency)
}

func (s *reportingService) round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(s.roundDecimals)
}

// AccountBalance derives the account's balance in the default currency:
// beginning balance, plus income records, minus expenses and transfers out,
// plus transfers in, plus paid split settlements (an expense split pays money
// in; an income split pays money back out).
func (s *reportingService) AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load account for balance: %w", err)
	}
	balance := account.BeginningBalance

	records, err := s.reportingRepo.ListRecordsByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load records for balance: %w", err)
	}
	for _, record := range records {
		amount, ok, err := s.toDefault(ctx, record.Amount, record.CurrencyCode)
		if err != nil {
			return decimal.Zero, err
		}
		if !ok {
			continue
		}
		switch {
		case record.IsTransfer:
			balance = balance.Sub(amount)
		case record.IsIncome:
			balance = balance.Add(amount)
		default:
			balance = balance.Sub(amount)
		}
	}

	transfersIn, err := s.reportingRepo.ListTransfersInto(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load incoming transfers for balance: %w", err)
	}
	for _, record := range transfersIn {
		amount, ok, err := s.toDefault(ctx, record.Amount, record.CurrencyCode)
		if err != nil {
			return decimal.Zero, err
		}
		if !ok {
			continue
		}
		balance = balance.Add(amount)
	}

	settlements, err := s.reportingRepo.ListSplitSettlements(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load split settlements for balance: %w", err)
	}
	for _, settlement := range settlements {
		code := settlement.CurrencyCode
		if code == "" {
			code = settlement.RecordCurrencyCode
		}
		amount, ok, err := s.toDefault(ctx, settlement.Amount, code)
		if err != nil {
			return decimal.Zero, err
		}
		if !ok {
			continue
		}
		if settlement.RecordIsIncome {
			balance = balance.Sub(amount)
		} else {
			balance = balance.Add(amount)
		}
	}

	return s.round(balance), nil
}

// periodRecords loads the records selected by a period filter, with the
// category-nature constraint applied.
func (s *reportingService) periodRecords(ctx context.Context, filter domain.PeriodFilter) ([]domain.Record, error) {
	start, end := timeperiod.Bounds(s.now(), filter.Offset, filter.Granularity, s.firstDayOfWeek)
	records, err := s.reportingRepo.ListRecordsInRange(ctx, start, end, filter.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for period: %w", err)
	}
	if filter.Nature == nil {
		return records, nil
	}

	natures, err := s.categoryNatures(ctx)
	if err != nil {
		return nil, err
	}
	filtered := records[:0]
	for _, record := range records {
		if record.CategoryID == "" {
			continue
		}
		if natures[record.CategoryID] == *filter.Nature {
			filtered = append(filtered, record)
		}
	}
	return filtered, nil
}

func (s *reportingService) categoryNatures(ctx context.Context) (map[string]domain.Nature, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	natures := make(map[string]domain.Nature, len(categories))
	for _, category := range categories {
		natures[category.CategoryID] = category.Nature
	}
	return natures, nil
}

// PeriodFigure sums the self-portion of matching records, converted to the
// default currency, and returns the absolute value of the net, rounded.
//
// When IsIncome is nil, income and expense contributions net against each
// other before the absolute value is taken; the result is a magnitude of the
// net flow, not a gross figure.
func (s *reportingService) PeriodFigure(ctx context.Context, filter domain.PeriodFilter) (decimal.Decimal, error) {
	records, err := s.periodRecords(ctx, filter)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, record := range records {
		// Transfers are neither income nor expense.
		if filter.IsIncome != nil && record.IsTransfer {
			continue
		}
		if filter.IsIncome != nil && record.IsIncome != *filter.IsIncome {
			continue
		}

		amount, ok, err := s.toDefault(ctx, record.SelfPortion(), record.CurrencyCode)
		if err != nil {
			return decimal.Zero, err
		}
		if !ok {
			s.LogDebug(ctx, "Skipping unconvertible record in period figure",
				slog.String("record_id", record.RecordID),
				slog.String("currency", record.CurrencyCode))
			continue
		}

		if record.IsTransfer {
			continue
		}
		if record.IsIncome {
			total = total.Add(amount)
		} else {
			total = total.Sub(amount)
		}
	}

	return s.round(total).Abs(), nil
}

// PerCurrencyTotals returns income/expense/net per record currency with no
// conversion applied. Transfers never contribute; currencies whose income and
// expense are both zero are omitted.
func (s *reportingService) PerCurrencyTotals(ctx context.Context, filter domain.PeriodFilter) (map[string]domain.CurrencyTotals, error) {
	records, err := s.periodRecords(ctx, filter)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		income  decimal.Decimal
		expense decimal.Decimal
	}
	buckets := make(map[string]*bucket)

	for _, record := range records {
		if filter.IsIncome != nil && record.IsIncome != *filter.IsIncome {
			continue
		}
		if record.IsTransfer {
			continue
		}

		code := s.resolveCode(record.CurrencyCode)
		b, exists := buckets[code]
		if !exists {
			b = &bucket{income: decimal.Zero, expense: decimal.Zero}
			buckets[code] = b
		}
		if record.IsIncome {
			b.income = b.income.Add(record.SelfPortion())
		} else {
			b.expense = b.expense.Add(record.SelfPortion())
		}
	}

	totals := make(map[string]domain.CurrencyTotals, len(buckets))
	for code, b := range buckets {
		income := s.round(b.income)
		expense := s.round(b.expense)
		if income.IsZero() && expense.IsZero() {
			continue
		}
		totals[code] = domain.CurrencyTotals{
			Income:  income,
			Expense: expense,
			Net:     s.round(income.Sub(expense)),
		}
	}
	return totals, nil
}

// CategoryTotals buckets the period's converted self-portions by category.
// Subcategory totals roll up to the parent unless subcategories is set.
// Records without a category (transfers included) are skipped. IsIncome
// defaults to income when the filter leaves it unset.
func (s *reportingService) CategoryTotals(ctx context.Context, filter domain.PeriodFilter, subcategories bool) ([]domain.CategoryTotal, error) {
	isIncome := true
	if filter.IsIncome != nil {
		isIncome = *filter.IsIncome
	}

	start, end := timeperiod.Bounds(s.now(), filter.Offset, filter.Granularity, s.firstDayOfWeek)
	records, err := s.reportingRepo.ListRecordsInRange(ctx, start, end, filter.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for category totals: %w", err)
	}

	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	byID := make(map[string]domain.Category, len(categories))
	for _, category := range categories {
		byID[category.CategoryID] = category
	}

	amounts := make(map[string]decimal.Decimal)
	for _, record := range records {
		if record.IsIncome != isIncome {
			continue
		}
		category, exists := byID[record.CategoryID]
		if record.CategoryID == "" || !exists {
			continue
		}

		amount, ok, err := s.toDefault(ctx, record.SelfPortion(), record.CurrencyCode)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		bucketID := category.CategoryID
		if !subcategories && category.ParentCategoryID != "" {
			bucketID = category.ParentCategoryID
		}
		amounts[bucketID] = amounts[bucketID].Add(amount)
	}

	totals := make([]domain.CategoryTotal, 0, len(amounts))
	for categoryID, amount := range amounts {
		category, exists := byID[categoryID]
		if !exists || amount.IsZero() {
			continue
		}
		totals = append(totals, domain.CategoryTotal{Category: category, Amount: amount})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Amount.GreaterThan(totals[j].Amount)
	})
	return totals, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DailySpending returns one expense amount per day in [start, end], clipped
// at today: the converted self-portion of the day's non-transfer expense
// records, cumulative when requested.
func (s *reportingService) DailySpending(ctx context.Context, start, end time.Time, cumulative bool) ([]decimal.Decimal, error) {
	endDay := midnight(end)
	records, err := s.reportingRepo.ListRecordsInRange(ctx, midnight(start), endDay.AddDate(0, 0, 1), "")
	if err != nil {
		return nil, fmt.Errorf("failed to load records for spending series: %w", err)
	}

	perDay := make(map[time.Time]decimal.Decimal)
	for _, record := range records {
		if record.IsIncome || record.IsTransfer {
			continue
		}
		amount, ok, err := s.toDefault(ctx, record.SelfPortion(), record.CurrencyCode)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		day := midnight(record.Date)
		perDay[day] = perDay[day].Add(amount)
	}

	today := midnight(s.now())
	series := make([]decimal.Decimal, 0)
	runningTotal := decimal.Zero
	for day := midnight(start); !day.After(endDay); day = day.AddDate(0, 0, 1) {
		if day.After(today) {
			break
		}
		amount := perDay[day]
		if cumulative {
			runningTotal = runningTotal.Add(amount)
			series = append(series, runningTotal)
		} else {
			series = append(series, amount)
		}
	}
	return series, nil
}

// flowEffect is the signed default-currency effect of a record on the
// aggregate balance across all accounts. Transfers to "Outside source" drain
// the system, transfers from it feed the system, and all other transfers are
// neutral. Unconvertible records contribute nothing.
func (s *reportingService) flowEffect(ctx context.Context, flow domain.RecordFlow) (decimal.Decimal, error) {
	var base decimal.Decimal
	switch {
	case flow.IsTransfer:
		switch {
		case flow.TransferToAccountName == domain.OutsideSourceName:
			base = flow.Amount.Neg()
		case flow.AccountName == domain.OutsideSourceName:
			base = flow.Amount
		default:
			return decimal.Zero, nil
		}
	case flow.IsIncome:
		base = flow.SelfPortion()
	default:
		base = flow.SelfPortion().Neg()
	}

	effect, ok, err := s.toDefault(ctx, base, flow.CurrencyCode)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, nil
	}
	return effect, nil
}

// DailyBalance returns the aggregate balance across all accounts for each day
// in [start, end], clipped at today. The series seeds from the sum of
// beginning balances plus the effect of every record before start.
func (s *reportingService) DailyBalance(ctx context.Context, start, end time.Time) ([]decimal.Decimal, error) {
	balance, err := s.reportingRepo.TotalBeginningBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum beginning balances: %w", err)
	}

	prior, err := s.reportingRepo.ListRecordFlowsBefore(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior records for balance series: %w", err)
	}
	for _, flow := range prior {
		effect, err := s.flowEffect(ctx, flow)
		if err != nil {
			return nil, err
		}
		balance = balance.Add(effect)
	}

	startDay := midnight(start)
	endDay := midnight(end)
	flows, err := s.reportingRepo.ListRecordFlowsInRange(ctx, startDay, endDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load records for balance series: %w", err)
	}
	perDay := make(map[time.Time][]domain.RecordFlow)
	for _, flow := range flows {
		day := midnight(flow.Date)
		perDay[day] = append(perDay[day], flow)
	}

	today := midnight(s.now())
	series := make([]decimal.Decimal, 0)
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		if day.After(today) {
			break
		}
		for _, flow := range perDay[day] {
			effect, err := s.flowEffect(ctx, flow)
			if err != nil {
				return nil, err
			}
			balance = balance.Add(effect)
		}
		series = append(series, balance)
	}
	return series, nil
}

// PeriodAverage spreads a net figure over the calendar days of the period.
func (s *reportingService) PeriodAverage(net decimal.Decimal, offset int, g timeperiod.Granularity) decimal.Decimal {
	days := timeperiod.Days(s.now(), offset, g, s.firstDayOfWeek)
	return s.round(net.Div(decimal.NewFromInt(int64(days))))
}
