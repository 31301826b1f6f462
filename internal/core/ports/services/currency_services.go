package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
	"github.com/avltr/personal_ledger_app/internal/dto"
)

// CurrencyConverter resolves an amount from one currency into another. The
// boolean reports whether a rate was resolvable; a missing rate is not an
// error and never an assumed 1:1.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, bool, error)
}

// ExchangeRateReaderSvc defines read-side exchange rate operations.
type ExchangeRateReaderSvc interface {
	// GetRate resolves the rate from one currency to another: identity pairs
	// yield 1 without a lookup, then the direct row, then the reciprocal of
	// the reverse row. The boolean is false when no rate is resolvable.
	GetRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, bool, error)

	// ListRates returns all stored rates ordered by (fromCode, toCode).
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write-side exchange rate operations.
type ExchangeRateWriterSvc interface {
	// SetRate upserts a directed rate together with its inverse.
	SetRate(ctx context.Context, req dto.SetExchangeRateRequest) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate service interfaces.
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
	CurrencyConverter
}
