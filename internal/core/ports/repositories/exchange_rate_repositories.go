package repositories

import (
	"context"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
type ExchangeRateReader interface {
	// FindRate retrieves the stored rate row for the exact (from, to)
	// direction, or apperrors.ErrNotFound when no such row exists.
	FindRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)

	// ListRates returns all non-deleted rates ordered by (fromCode, toCode).
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data.
type ExchangeRateWriter interface {
	// UpsertRatePair persists a direct rate row and its inverse in a single
	// store transaction. Readers must never observe one row updated and the
	// other stale.
	UpsertRatePair(ctx context.Context, direct, inverse domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
