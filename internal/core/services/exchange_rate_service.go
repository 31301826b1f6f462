package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avltr/personal_ledger_app/internal/apperrors"
	"github.com/avltr/personal_ledger_app/internal/core/domain"
	portsrepo "github.com/avltr/personal_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/avltr/personal_ledger_app/internal/core/ports/services"
	"github.com/avltr/personal_ledger_app/internal/dto"
)

var one = decimal.NewFromInt(1)

// exchangeRateService implements the rate store and the conversion resolver.
//
// The store keeps every pair bidirectionally consistent: setting A→B=r also
// sets B→A=1/r in the same store transaction, so a reader never observes the
// direct row updated but the inverse stale.
type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepositoryFacade
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// normalizeCode normalizes and validates a currency code for a store path.
func normalizeCode(code string) (string, error) {
	norm := domain.NormalizeCurrencyCode(code)
	if !domain.IsValidCurrencyCode(norm) {
		return "", fmt.Errorf("%w: currency code must be 3 letters, got %q", apperrors.ErrValidation, code)
	}
	return norm, nil
}

// SetRate upserts the (from,to) rate and its inverse (to,from,1/rate), both
// stamped with the same manual flag and timestamp. Invalid input is rejected
// before any mutation.
func (s *exchangeRateService) SetRate(ctx context.Context, req dto.SetExchangeRateRequest) (*domain.ExchangeRate, error) {
	fromCode, err := normalizeCode(req.FromCode)
	if err != nil {
		return nil, err
	}
	toCode, err := normalizeCode(req.ToCode)
	if err != nil {
		return nil, err
	}
	if fromCode == toCode {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}
	// A rate of zero would make the inverse undefined; negative rates are
	// meaningless. Reject both before they can corrupt the pair.
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	isManual := true
	if req.IsManual != nil {
		isManual = *req.IsManual
	}

	now := time.Now()
	audit := domain.AuditFields{CreatedAt: now, UpdatedAt: now}

	direct := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		FromCode:       fromCode,
		ToCode:         toCode,
		Rate:           req.Rate,
		IsManual:       isManual,
		AuditFields:    audit,
	}
	inverse := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		FromCode:       toCode,
		ToCode:         fromCode,
		Rate:           one.Div(req.Rate),
		IsManual:       isManual,
		AuditFields:    audit,
	}

	if err := s.rateRepo.UpsertRatePair(ctx, direct, inverse); err != nil {
		s.LogError(ctx, err, "Failed to upsert exchange rate pair",
			slog.String("from", fromCode), slog.String("to", toCode))
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate set",
		slog.String("from", fromCode),
		slog.String("to", toCode),
		slog.String("rate", req.Rate.String()),
		slog.Bool("is_manual", isManual))
	return &direct, nil
}

// GetRate resolves a rate: identity pairs yield 1 without a lookup, then the
// direct row, then the reciprocal of the reverse row. No multi-hop synthesis.
func (s *exchangeRateService) GetRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, bool, error) {
	from, err := normalizeCode(fromCode)
	if err != nil {
		return decimal.Zero, false, err
	}
	to, err := normalizeCode(toCode)
	if err != nil {
		return decimal.Zero, false, err
	}

	if from == to {
		return one, true, nil
	}

	direct, err := s.rateRepo.FindRate(ctx, from, to)
	if err == nil {
		return direct.Rate, true, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, false, fmt.Errorf("failed to look up exchange rate: %w", err)
	}

	reverse, err := s.rateRepo.FindRate(ctx, to, from)
	if err == nil {
		if reverse.Rate.IsZero() {
			return decimal.Zero, false, nil
		}
		return one.Div(reverse.Rate), true, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, false, fmt.Errorf("failed to look up reverse exchange rate: %w", err)
	}

	return decimal.Zero, false, nil
}

// ListRates returns all stored rates ordered by (fromCode, toCode).
func (s *exchangeRateService) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	return rates, nil
}

// Convert resolves amount from one currency into another. The boolean is
// false when no rate is resolvable; callers decide the no-rate policy.
func (s *exchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, bool, error) {
	rate, ok, err := s.GetRate(ctx, fromCode, toCode)
	if err != nil || !ok {
		return decimal.Zero, false, err
	}
	return amount.Mul(rate), true, nil
}
