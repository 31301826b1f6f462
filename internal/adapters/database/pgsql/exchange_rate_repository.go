package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avltr/personal_ledger_app/internal/apperrors"
	"github.com/avltr/personal_ledger_app/internal/core/domain"
	portsrepo "github.com/avltr/personal_ledger_app/internal/core/ports/repositories"
)

// PgxExchangeRateRepository implements the exchange rate repository using pgxpool.
type PgxExchangeRateRepository struct {
	pool *pgxpool.Pool
}

// NewExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{pool: pool}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const upsertRateQuery = `
	INSERT INTO exchange_rates (
		exchange_rate_id, from_code, to_code, rate, is_manual, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (from_code, to_code) DO UPDATE SET
		rate = EXCLUDED.rate,
		is_manual = EXCLUDED.is_manual,
		updated_at = EXCLUDED.updated_at,
		deleted_at = NULL
`

// UpsertRatePair writes the direct and inverse rate rows inside one database
// transaction, so readers never observe a half-updated pair.
func (r *PgxExchangeRateRepository) UpsertRatePair(ctx context.Context, direct, inverse domain.ExchangeRate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	for _, rate := range []domain.ExchangeRate{direct, inverse} {
		_, err = tx.Exec(ctx, upsertRateQuery,
			rate.ExchangeRateID, rate.FromCode, rate.ToCode, rate.Rate,
			rate.IsManual, rate.CreatedAt, rate.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("error upserting exchange rate %s->%s: %w", rate.FromCode, rate.ToCode, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit exchange rate pair: %w", err)
	}
	return nil
}

// FindRate retrieves the stored rate row for the exact (from, to) direction.
func (r *PgxExchangeRateRepository) FindRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, from_code, to_code, rate, is_manual, created_at, updated_at
		FROM exchange_rates
		WHERE from_code = $1 AND to_code = $2 AND deleted_at IS NULL
	`
	rate := &domain.ExchangeRate{}
	err := r.pool.QueryRow(ctx, query, fromCode, toCode).Scan(
		&rate.ExchangeRateID, &rate.FromCode, &rate.ToCode, &rate.Rate,
		&rate.IsManual, &rate.CreatedAt, &rate.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exchange rate: %w", err)
	}
	return rate, nil
}

// ListRates returns all non-deleted rates ordered by (from_code, to_code).
func (r *PgxExchangeRateRepository) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, from_code, to_code, rate, is_manual, created_at, updated_at
		FROM exchange_rates
		WHERE deleted_at IS NULL
		ORDER BY from_code, to_code
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing exchange rates: %w", err)
	}
	defer rows.Close()

	rates := make([]domain.ExchangeRate, 0)
	for rows.Next() {
		var rate domain.ExchangeRate
		if err := rows.Scan(
			&rate.ExchangeRateID, &rate.FromCode, &rate.ToCode, &rate.Rate,
			&rate.IsManual, &rate.CreatedAt, &rate.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning exchange rate: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rates: %w", err)
	}
	return rates, nil
}
