package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/avltr/personal_ledger_app/internal/apperrors"
	"github.com/avltr/personal_ledger_app/internal/core/domain"
	portssvc "github.com/avltr/personal_ledger_app/internal/core/ports/services"
	"github.com/avltr/personal_ledger_app/internal/core/services"
	"github.com/avltr/personal_ledger_app/internal/dto"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) UpsertRatePair(ctx context.Context, direct, inverse domain.ExchangeRate) error {
	args := m.Called(ctx, direct, inverse)
	return args.Error(0)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRepo *MockExchangeRateRepository
	service  portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExchangeRateRepository)
	suite.service = services.NewExchangeRateService(suite.mockRepo)
}

// --- SetRate ---

func (suite *ExchangeRateServiceTestSuite) TestSetRate_WritesBothDirections() {
	ctx := context.Background()
	rate := decimal.RequireFromString("1.25")
	req := dto.SetExchangeRateRequest{FromCode: "USD", ToCode: "EUR", Rate: rate}

	var gotDirect, gotInverse domain.ExchangeRate
	suite.mockRepo.On("UpsertRatePair", ctx,
		mock.AnythingOfType("domain.ExchangeRate"),
		mock.AnythingOfType("domain.ExchangeRate"),
	).Run(func(args mock.Arguments) {
		gotDirect = args.Get(1).(domain.ExchangeRate)
		gotInverse = args.Get(2).(domain.ExchangeRate)
	}).Return(nil).Once()

	created, err := suite.service.SetRate(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("USD", gotDirect.FromCode)
	suite.Equal("EUR", gotDirect.ToCode)
	suite.True(gotDirect.Rate.Equal(rate))
	suite.Equal("EUR", gotInverse.FromCode)
	suite.Equal("USD", gotInverse.ToCode)
	suite.True(gotInverse.Rate.Equal(decimal.NewFromInt(1).Div(rate)))
	// Both rows come from the same write and share one timestamp.
	suite.Equal(gotDirect.UpdatedAt, gotInverse.UpdatedAt)
	suite.True(gotDirect.IsManual)
	suite.True(gotInverse.IsManual)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestSetRate_NormalizesCodes() {
	ctx := context.Background()
	req := dto.SetExchangeRateRequest{FromCode: " usd ", ToCode: "eur", Rate: decimal.NewFromInt(2)}

	suite.mockRepo.On("UpsertRatePair", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.FromCode == "USD" && r.ToCode == "EUR"
	}), mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()

	created, err := suite.service.SetRate(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("USD", created.FromCode)
	suite.Equal("EUR", created.ToCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestSetRate_RejectsSamePair() {
	ctx := context.Background()
	req := dto.SetExchangeRateRequest{FromCode: "USD", ToCode: "usd", Rate: decimal.NewFromInt(1)}

	created, err := suite.service.SetRate(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertRatePair", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestSetRate_RejectsNonPositiveRate() {
	ctx := context.Background()

	for _, raw := range []string{"0", "-2.5"} {
		req := dto.SetExchangeRateRequest{FromCode: "USD", ToCode: "EUR", Rate: decimal.RequireFromString(raw)}

		created, err := suite.service.SetRate(ctx, req)

		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Nil(created)
	}
	// The store must stay untouched on rejection.
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertRatePair", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestSetRate_RejectsMalformedCode() {
	ctx := context.Background()
	req := dto.SetExchangeRateRequest{FromCode: "US", ToCode: "EUR", Rate: decimal.NewFromInt(1)}

	_, err := suite.service.SetRate(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertRatePair", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestSetRate_ExplicitAutomatic() {
	ctx := context.Background()
	isManual := false
	req := dto.SetExchangeRateRequest{FromCode: "USD", ToCode: "EUR", Rate: decimal.NewFromInt(2), IsManual: &isManual}

	suite.mockRepo.On("UpsertRatePair", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return !r.IsManual
	}), mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return !r.IsManual
	})).Return(nil).Once()

	created, err := suite.service.SetRate(ctx, req)

	suite.Require().NoError(err)
	suite.False(created.IsManual)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- GetRate ---

func (suite *ExchangeRateServiceTestSuite) TestGetRate_IdentityWithoutLookup() {
	ctx := context.Background()

	rate, ok, err := suite.service.GetRate(ctx, "usd", "USD")

	suite.Require().NoError(err)
	suite.True(ok)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_DirectHit() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{FromCode: "USD", ToCode: "EUR", Rate: decimal.RequireFromString("0.9")}

	suite.mockRepo.On("FindRate", ctx, "USD", "EUR").Return(stored, nil).Once()

	rate, ok, err := suite.service.GetRate(ctx, "USD", "EUR")

	suite.Require().NoError(err)
	suite.True(ok)
	suite.True(rate.Equal(stored.Rate))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_ReciprocalFallback() {
	ctx := context.Background()
	reverse := &domain.ExchangeRate{FromCode: "EUR", ToCode: "USD", Rate: decimal.RequireFromString("0.5")}

	suite.mockRepo.On("FindRate", ctx, "USD", "EUR").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindRate", ctx, "EUR", "USD").Return(reverse, nil).Once()

	rate, ok, err := suite.service.GetRate(ctx, "USD", "EUR")

	suite.Require().NoError(err)
	suite.True(ok)
	suite.True(rate.Equal(decimal.NewFromInt(2)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_NoRateIsNotAnError() {
	ctx := context.Background()

	suite.mockRepo.On("FindRate", ctx, "USD", "IDR").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindRate", ctx, "IDR", "USD").Return(nil, apperrors.ErrNotFound).Once()

	rate, ok, err := suite.service.GetRate(ctx, "USD", "IDR")

	suite.Require().NoError(err)
	suite.False(ok)
	suite.True(rate.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_MalformedCode() {
	ctx := context.Background()

	_, ok, err := suite.service.GetRate(ctx, "DOLLARS", "EUR")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.False(ok)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRate", mock.Anything, mock.Anything, mock.Anything)
}

// --- Convert ---

func (suite *ExchangeRateServiceTestSuite) TestConvert_RoundTripRestoresAmount() {
	ctx := context.Background()
	direct := &domain.ExchangeRate{FromCode: "USD", ToCode: "EUR", Rate: decimal.RequireFromString("1.25")}

	suite.mockRepo.On("FindRate", ctx, "USD", "EUR").Return(direct, nil).Once()
	// Reverse direction resolves through the reciprocal of the stored row.
	suite.mockRepo.On("FindRate", ctx, "EUR", "USD").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindRate", ctx, "USD", "EUR").Return(direct, nil).Once()

	amount := decimal.NewFromInt(100)
	converted, ok, err := suite.service.Convert(ctx, amount, "USD", "EUR")
	suite.Require().NoError(err)
	suite.Require().True(ok)
	suite.True(converted.Equal(decimal.NewFromInt(125)))

	back, ok, err := suite.service.Convert(ctx, converted, "EUR", "USD")
	suite.Require().NoError(err)
	suite.Require().True(ok)
	suite.True(back.Equal(amount))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_NoRate() {
	ctx := context.Background()

	suite.mockRepo.On("FindRate", ctx, "USD", "IDR").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindRate", ctx, "IDR", "USD").Return(nil, apperrors.ErrNotFound).Once()

	converted, ok, err := suite.service.Convert(ctx, decimal.NewFromInt(7), "USD", "IDR")

	suite.Require().NoError(err)
	suite.False(ok)
	suite.True(converted.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
