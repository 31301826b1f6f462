package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
	portssvc "github.com/avltr/personal_ledger_app/internal/core/ports/services"
	"github.com/avltr/personal_ledger_app/internal/core/services"
	"github.com/avltr/personal_ledger_app/internal/utils/timeperiod"
	"github.com/avltr/personal_ledger_app/pkg/config"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) ListRecordsByAccount(ctx context.Context, accountID string) ([]domain.Record, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockReportingRepository) ListTransfersInto(ctx context.Context, accountID string) ([]domain.Record, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockReportingRepository) ListSplitSettlements(ctx context.Context, accountID string) ([]domain.SplitSettlement, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SplitSettlement), args.Error(1)
}

func (m *MockReportingRepository) ListRecordsInRange(ctx context.Context, from, to time.Time, accountID string) ([]domain.Record, error) {
	args := m.Called(ctx, from, to, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockReportingRepository) ListRecordFlowsBefore(ctx context.Context, before time.Time) ([]domain.RecordFlow, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecordFlow), args.Error(1)
}

func (m *MockReportingRepository) ListRecordFlowsInRange(ctx context.Context, from, to time.Time) ([]domain.RecordFlow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecordFlow), args.Error(1)
}

func (m *MockReportingRepository) TotalBeginningBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, includeHidden bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeHidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock CategoryReader ---
type MockCategoryReader struct {
	mock.Mock
}

func (m *MockCategoryReader) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryReader) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// --- Mock CurrencyConverter ---
type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, amount, fromCode, toCode)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

// --- Test Suite ---

// fixedNow pins the reporting clock mid-August so month bounds and today
// clipping are deterministic.
var fixedNow = time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockReportingRepository
	mockAccounts   *MockAccountReader
	mockCategories *MockCategoryReader
	mockConverter  *MockConverter
	service        portssvc.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockAccounts = new(MockAccountReader)
	suite.mockCategories = new(MockCategoryReader)
	suite.mockConverter = new(MockConverter)

	cfg := &config.Config{
		DefaultCurrency: "USD",
		RoundDecimals:   2,
		FirstDayOfWeek:  time.Saturday,
	}
	suite.service = services.NewReportingService(
		suite.mockRepo,
		suite.mockAccounts,
		suite.mockCategories,
		suite.mockConverter,
		cfg,
		services.WithNowFunc(func() time.Time { return fixedNow }),
	)
}

// --- AccountBalance ---

func (suite *ReportingServiceTestSuite) TestAccountBalance_AllContributions() {
	ctx := context.Background()
	accountID := "acc-1"

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, BeginningBalance: dec("100")}, nil).Once()
	suite.mockRepo.On("ListRecordsByAccount", ctx, accountID).Return([]domain.Record{
		{RecordID: "r1", Amount: dec("40")},                   // expense
		{RecordID: "r2", Amount: dec("60"), IsIncome: true},   // income
		{RecordID: "r3", Amount: dec("10"), IsTransfer: true}, // transfer out
	}, nil).Once()
	suite.mockRepo.On("ListTransfersInto", ctx, accountID).Return([]domain.Record{
		{RecordID: "r4", Amount: dec("20"), IsTransfer: true},
	}, nil).Once()
	suite.mockRepo.On("ListSplitSettlements", ctx, accountID).Return([]domain.SplitSettlement{
		{Amount: dec("15"), RecordIsIncome: false}, // an expense split pays money in
		{Amount: dec("5"), RecordIsIncome: true},   // an income split pays money back out
	}, nil).Once()

	balance, err := suite.service.AccountBalance(ctx, accountID)

	suite.Require().NoError(err)
	// 100 - 40 + 60 - 10 + 20 + 15 - 5
	suite.True(balance.Equal(dec("140")), "got %s", balance)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestAccountBalance_ConvertsAndSkipsUnresolvable() {
	ctx := context.Background()
	accountID := "acc-1"

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, BeginningBalance: dec("100")}, nil).Once()
	suite.mockRepo.On("ListRecordsByAccount", ctx, accountID).Return([]domain.Record{
		{RecordID: "r1", Amount: dec("10"), CurrencyCode: "EUR"}, // converts to 11 USD
		{RecordID: "r2", Amount: dec("99"), CurrencyCode: "XXX"}, // no rate, excluded
	}, nil).Once()
	suite.mockRepo.On("ListTransfersInto", ctx, accountID).Return([]domain.Record{}, nil).Once()
	suite.mockRepo.On("ListSplitSettlements", ctx, accountID).Return([]domain.SplitSettlement{}, nil).Once()

	suite.mockConverter.On("Convert", ctx, dec("10"), "EUR", "USD").Return(dec("11"), true, nil).Once()
	suite.mockConverter.On("Convert", ctx, dec("99"), "XXX", "USD").Return(decimal.Zero, false, nil).Once()

	balance, err := suite.service.AccountBalance(ctx, accountID)

	suite.Require().NoError(err)
	// The unconvertible record contributes nothing, not an assumed 1:1.
	suite.True(balance.Equal(dec("89")), "got %s", balance)
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestAccountBalance_SettlementCurrencyFallsBackToRecord() {
	ctx := context.Background()
	accountID := "acc-1"

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, BeginningBalance: decimal.Zero}, nil).Once()
	suite.mockRepo.On("ListRecordsByAccount", ctx, accountID).Return([]domain.Record{}, nil).Once()
	suite.mockRepo.On("ListTransfersInto", ctx, accountID).Return([]domain.Record{}, nil).Once()
	suite.mockRepo.On("ListSplitSettlements", ctx, accountID).Return([]domain.SplitSettlement{
		{Amount: dec("8"), CurrencyCode: "", RecordCurrencyCode: "EUR"},
	}, nil).Once()

	suite.mockConverter.On("Convert", ctx, dec("8"), "EUR", "USD").Return(dec("9"), true, nil).Once()

	balance, err := suite.service.AccountBalance(ctx, accountID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(dec("9")), "got %s", balance)
	suite.mockConverter.AssertExpectations(suite.T())
}

// --- PeriodFigure ---

func (suite *ReportingServiceTestSuite) TestPeriodFigure_ExpenseSelfPortion() {
	ctx := context.Background()
	isIncome := false
	filter := domain.PeriodFilter{Granularity: timeperiod.Month, IsIncome: &isIncome}

	suite.mockRepo.On("ListRecordsInRange", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), "").
		Return([]domain.Record{
			{RecordID: "r1", Amount: dec("50"), Splits: []domain.Split{{Amount: dec("20")}}},
			{RecordID: "r2", Amount: dec("100"), IsIncome: true},  // filtered out
			{RecordID: "r3", Amount: dec("30"), IsTransfer: true}, // transfers never count
		}, nil).Once()

	figure, err := suite.service.PeriodFigure(ctx, filter)

	suite.Require().NoError(err)
	// Only the expense's self-portion: 50 - 20.
	suite.True(figure.Equal(dec("30")), "got %s", figure)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestPeriodFigure_NetIsAbsolute() {
	ctx := context.Background()
	filter := domain.PeriodFilter{Granularity: timeperiod.Month}

	// Expense-heavy period: the net figure is a magnitude, not signed.
	suite.mockRepo.On("ListRecordsInRange", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), "").
		Return([]domain.Record{
			{RecordID: "r1", Amount: dec("30"), IsIncome: true},
			{RecordID: "r2", Amount: dec("100")},
		}, nil).Once()

	figure, err := suite.service.PeriodFigure(ctx, filter)

	suite.Require().NoError(err)
	suite.True(figure.Equal(dec("70")), "got %s", figure)
}

func (suite *ReportingServiceTestSuite) TestPeriodFigure_SkipsUnconvertible() {
	ctx := context.Background()
	isIncome := false
	filter := domain.PeriodFilter{Granularity: timeperiod.Month, IsIncome: &isIncome}

	suite.mockRepo.On("ListRecordsInRange", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), "").
		Return([]domain.Record{
			{RecordID: "r1", Amount: dec("50")},
			{RecordID: "r2", Amount: dec("40"), CurrencyCode: "XXX"},
		}, nil).Once()
	suite.mockConverter.On("Convert", ctx, dec("40"), "XXX", "USD").Return(decimal.Zero, false, nil).Once()

	figure, err := suite.service.PeriodFigure(ctx, filter)

	suite.Require().NoError(err)
	suite.True(figure.Equal(dec("50")), "got %s", figure)
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestPeriodFigure_NatureFilter() {
	ctx := context.Background()
	nature := domain.NatureMust
	isIncome := false
	filter := domain.PeriodFilter{Granularity: timeperiod.Month, Nature: &nature, IsIncome: &isIncome}

	suite.mockRepo.On("ListRecordsInRange", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), "").
		Return([]domain.Record{
			{RecordID: "r1", Amount: dec("25"), CategoryID: "cat-must"},
			{RecordID: "r2", Amount: dec("40"), CategoryID: "cat-want"},
			{RecordID: "r3", Amount: dec("60")}, // uncategorized, excluded under a nature filter
		}, nil).Once()
	suite.mockCategories.On("ListCategories", ctx).Return([]domain.Category{
		{CategoryID: "cat-must", Nature: domain.NatureMust},
		{CategoryID: "cat-want", Nature: domain.NatureWant},
	}, nil).Once()

	figure, err := suite.service.PeriodFigure(ctx, filter)

	suite.Require().NoError(err)
	suite.True(figure.Equal(dec("25")), "got %s", figure)
	suite.mockCategories.AssertExpectations(suite.T())
}

// --- PerCurrencyTotals ---

func (suite *ReportingServiceTestSuite) TestPerCurrencyTotals_NoConversion() {
	ctx := context.Background()
	filter := domain.PeriodFilter{Granularity: timeperiod.Month}

	suite.mockRepo.On("ListRecordsInRange", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), "").
		Return([]domain.Record{
			{RecordID: "r1", Amount: dec("100"), IsIncome: true}, // empty code buckets as USD
			{RecordID: "r2", Amount: dec("30"), CurrencyCode: "USD"},
			{RecordID: "r3", Amount: dec("500"), CurrencyCode: "IDR"},
			{RecordID: "r4", Amount: dec("9"), CurrencyCode: "IDR", IsTransfer: true}, // never counted
		}, nil).Once()

	totals, err := suite.service.PerCurrencyTotals(ctx, filter)

	suite.Require().NoError(err)
	suite.Len(totals, 2)
	suite.True(totals["USD"].Income.Equal(dec("100")))
	suite.True(totals["USD"].Expense.Equal(dec("30")))
	suite.True(totals["USD"].Net.Equal(dec("70")))
	suite.True(totals["IDR"].Expense.Equal(dec("500")))
	// Per-currency figures never touch the converter.
	suite.mockConverter.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestPerCurrencyTotals_OmitsZeroCurrencies() {
	ctx := context.Background()
	filter := domain.PeriodFilter{Granularity: timeperiod.Month}

	suite.mockRepo.On("ListRecordsInRange", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), "").
		Return([]domain.Record{
			// Self-portion is zero: the whole amount is split away.
			{RecordID: "r1", Amount: dec("10"), CurrencyCode: "EUR", Splits: []domain.Split{{Amount: dec("10")}}},
			{RecordID: "r2", Amount: dec("5"), CurrencyCode: "USD"},
		}, nil).Once()

	totals, err := suite.service.PerCurrencyTotals(ctx, filter)

	suite.Require().NoError(err)
	suite.Len(totals, 1)
	suite.NotContains(totals, "EUR")
}

// --- CategoryTotals ---

func (suite *ReportingServiceTestSuite) TestCategoryTotals_ParentRollupAndOrder() {
	ctx := context.Background()
	isIncome := false
	filter := domain.PeriodFilter{Granularity: timeperiod.Month, IsIncome: &isIncome}

	parent := domain.Category{CategoryID: "cat-food", Name: "Food", Nature: domain.NatureNeed}
	child := domain.Category{CategoryID: "cat-coffee", Name: "Coffee", Nature: domain.NatureWant, ParentCategoryID: "cat-food"}
	other := domain.Category{CategoryID: "cat-rent", Name: "Rent", Nature: domain.NatureMust}

	suite.mockRepo.On("ListRecordsInRange", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), "").
		Return([]domain.Record{
			{RecordID: "r1", Amount: dec("20"), CategoryID: "cat-food"},
			{RecordID: "r2", Amount: dec("10"), CategoryID: "cat-coffee"},
			{RecordID: "r3", Amount: dec("80"), CategoryID: "cat-rent"},
			{RecordID: "r4", Amount: dec("7")},                         // uncategorized, skipped
			{RecordID: "r5", Amount: dec("9"), CategoryID: "cat-gone"}, // unknown category, skipped
			{RecordID: "r6", Amount: dec("99"), CategoryID: "cat-food", IsIncome: true},
		}, nil).Times(2)
	suite.mockCategories.On("ListCategories", ctx).Return([]domain.Category{parent, child, other}, nil).Times(2)

	totals, err := suite.service.CategoryTotals(ctx, filter, false)
	suite.Require().NoError(err)
	suite.Require().Len(totals, 2)
	// Sorted by amount descending; the subcategory rolled up into its parent.
	suite.Equal("cat-rent", totals[0].Category.CategoryID)
	suite.True(totals[0].Amount.Equal(dec("80")))
	suite.Equal("cat-food", totals[1].Category.CategoryID)
	suite.True(totals[1].Amount.Equal(dec("30")))

	breakdown, err := suite.service.CategoryTotals(ctx, filter, true)
	suite.Require().NoError(err)
	suite.Require().Len(breakdown, 3)
	suite.Equal("cat-rent", breakdown[0].Category.CategoryID)
	suite.Equal("cat-food", breakdown[1].Category.CategoryID)
	suite.True(breakdown[1].Amount.Equal(dec("20")))
	suite.Equal("cat-coffee", breakdown[2].Category.CategoryID)
}

// --- DailySpending ---

func (suite *ReportingServiceTestSuite) TestDailySpending_SeriesAndCumulative() {
	ctx := context.Background()
	start := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC)

	records := []domain.Record{
		{RecordID: "r1", Amount: dec("10"), Date: start.Add(9 * time.Hour)},
		{RecordID: "r2", Amount: dec("5"), Date: start.Add(20 * time.Hour)},
		{RecordID: "r3", Amount: dec("20"), Date: end.Add(time.Hour)},
		{RecordID: "r4", Amount: dec("99"), Date: start, IsIncome: true},   // not spending
		{RecordID: "r5", Amount: dec("42"), Date: start, IsTransfer: true}, // not spending
	}
	suite.mockRepo.On("ListRecordsInRange", ctx, start, end.AddDate(0, 0, 1), "").Return(records, nil).Times(2)

	series, err := suite.service.DailySpending(ctx, start, end, false)
	suite.Require().NoError(err)
	suite.Require().Len(series, 3)
	suite.True(series[0].Equal(dec("15")))
	suite.True(series[1].IsZero())
	suite.True(series[2].Equal(dec("20")))

	cumulative, err := suite.service.DailySpending(ctx, start, end, true)
	suite.Require().NoError(err)
	suite.Require().Len(cumulative, 3)
	suite.True(cumulative[2].Equal(dec("35")))
}

func (suite *ReportingServiceTestSuite) TestDailySpending_ClipsAtToday() {
	ctx := context.Background()
	start := time.Date(2026, time.August, 14, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC) // beyond the pinned today

	suite.mockRepo.On("ListRecordsInRange", ctx, start, end.AddDate(0, 0, 1), "").Return([]domain.Record{}, nil).Once()

	series, err := suite.service.DailySpending(ctx, start, end, false)

	suite.Require().NoError(err)
	// Aug 14 and Aug 15 only; future days are never emitted.
	suite.Len(series, 2)
}

// --- DailyBalance ---

func (suite *ReportingServiceTestSuite) TestDailyBalance_OutsideSourceConventions() {
	ctx := context.Background()
	start := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("TotalBeginningBalance", ctx).Return(dec("100"), nil).Once()
	suite.mockRepo.On("ListRecordFlowsBefore", ctx, start).Return([]domain.RecordFlow{
		{Record: domain.Record{RecordID: "p1", Amount: dec("10")}, AccountName: "Checking"}, // prior expense
	}, nil).Once()
	suite.mockRepo.On("ListRecordFlowsInRange", ctx, start, end.AddDate(0, 0, 1)).Return([]domain.RecordFlow{
		// Day 1: internal transfer is neutral, transfer out of the system drains it.
		{Record: domain.Record{RecordID: "r1", Amount: dec("50"), Date: start, IsTransfer: true},
			AccountName: "Checking", TransferToAccountName: "Savings"},
		{Record: domain.Record{RecordID: "r2", Amount: dec("5"), Date: start, IsTransfer: true},
			AccountName: "Checking", TransferToAccountName: domain.OutsideSourceName},
		// Day 2: transfer in from outside feeds the system.
		{Record: domain.Record{RecordID: "r3", Amount: dec("30"), Date: start.AddDate(0, 0, 1), IsTransfer: true},
			AccountName: domain.OutsideSourceName, TransferToAccountName: "Checking"},
		// Day 3: plain income.
		{Record: domain.Record{RecordID: "r4", Amount: dec("20"), Date: start.AddDate(0, 0, 2), IsIncome: true},
			AccountName: "Checking"},
	}, nil).Once()

	series, err := suite.service.DailyBalance(ctx, start, end)

	suite.Require().NoError(err)
	suite.Require().Len(series, 3)
	// Seed: 100 - 10 = 90. Day 1: 90 - 5 = 85. Day 2: +30 = 115. Day 3: +20 = 135.
	suite.True(series[0].Equal(dec("85")), "got %s", series[0])
	suite.True(series[1].Equal(dec("115")), "got %s", series[1])
	suite.True(series[2].Equal(dec("135")), "got %s", series[2])
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- PeriodAverage ---

func (suite *ReportingServiceTestSuite) TestPeriodAverage_SpreadsOverPeriodDays() {
	// August has 31 days.
	average := suite.service.PeriodAverage(dec("62"), 0, timeperiod.Month)
	suite.True(average.Equal(dec("2")), "got %s", average)

	rounded := suite.service.PeriodAverage(dec("70"), 0, timeperiod.Month)
	suite.True(rounded.Equal(dec("2.26")), "got %s", rounded)
}

// --- Cached decorator ---

func (suite *ReportingServiceTestSuite) TestCachedReporting_MemoizesUntilInvalidate() {
	ctx := context.Background()
	accountID := "acc-1"

	suite.mockAccounts.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, BeginningBalance: dec("100")}, nil).Times(2)
	suite.mockRepo.On("ListRecordsByAccount", ctx, accountID).Return([]domain.Record{}, nil).Times(2)
	suite.mockRepo.On("ListTransfersInto", ctx, accountID).Return([]domain.Record{}, nil).Times(2)
	suite.mockRepo.On("ListSplitSettlements", ctx, accountID).Return([]domain.SplitSettlement{}, nil).Times(2)

	cached := services.NewCachedReportingService(suite.service, 16, time.Minute)

	first, err := cached.AccountBalance(ctx, accountID)
	suite.Require().NoError(err)
	second, err := cached.AccountBalance(ctx, accountID)
	suite.Require().NoError(err)
	suite.True(first.Equal(second))

	// The second call must have hit the cache, not the repository.
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "ListRecordsByAccount", 1)

	cached.(portssvc.ReportingInvalidator).Invalidate()

	_, err = cached.AccountBalance(ctx, accountID)
	suite.Require().NoError(err)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "ListRecordsByAccount", 2)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
