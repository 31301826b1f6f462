package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avltr/personal_ledger_app/internal/apperrors"
	"github.com/avltr/personal_ledger_app/internal/core/domain"
	portsrepo "github.com/avltr/personal_ledger_app/internal/core/ports/repositories"
)

// PgxRecordRepository implements the record repository using pgxpool. Records
// and their splits are always read and written together.
type PgxRecordRepository struct {
	pool *pgxpool.Pool
}

// NewRecordRepository creates a new PgxRecordRepository.
func NewRecordRepository(pool *pgxpool.Pool) portsrepo.RecordRepositoryFacade {
	return &PgxRecordRepository{pool: pool}
}

var _ portsrepo.RecordRepositoryFacade = (*PgxRecordRepository)(nil)

const recordColumns = `
	record_id, label, amount, COALESCE(currency_code, ''), date, account_id,
	COALESCE(category_id, ''), is_income, is_transfer,
	COALESCE(transfer_to_account_id, ''), created_at, updated_at
`

func scanRecord(row pgx.Row) (*domain.Record, error) {
	record := &domain.Record{}
	err := row.Scan(
		&record.RecordID, &record.Label, &record.Amount, &record.CurrencyCode,
		&record.Date, &record.AccountID, &record.CategoryID, &record.IsIncome,
		&record.IsTransfer, &record.TransferToAccountID,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// loadSplits fetches the splits for every record in the slice with one query
// and attaches them in place.
func loadSplits(ctx context.Context, pool *pgxpool.Pool, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Record, len(records))
	recordIDs := make([]string, 0, len(records))
	for i := range records {
		byID[records[i].RecordID] = &records[i]
		recordIDs = append(recordIDs, records[i].RecordID)
	}

	query := `
		SELECT split_id, record_id, person_id, amount, COALESCE(currency_code, ''),
			is_paid, paid_date, COALESCE(account_id, ''), created_at, updated_at
		FROM splits
		WHERE record_id = ANY($1)
		ORDER BY created_at
	`
	rows, err := pool.Query(ctx, query, recordIDs)
	if err != nil {
		return fmt.Errorf("error loading splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var split domain.Split
		err := rows.Scan(
			&split.SplitID, &split.RecordID, &split.PersonID, &split.Amount,
			&split.CurrencyCode, &split.IsPaid, &split.PaidDate, &split.AccountID,
			&split.CreatedAt, &split.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("error scanning split: %w", err)
		}
		if record, ok := byID[split.RecordID]; ok {
			record.Splits = append(record.Splits, split)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating splits: %w", err)
	}
	return nil
}

func (r *PgxRecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE record_id = $1 AND deleted_at IS NULL`
	record, err := scanRecord(r.pool.QueryRow(ctx, query, recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding record by ID: %w", err)
	}

	records := []domain.Record{*record}
	if err := loadSplits(ctx, r.pool, records); err != nil {
		return nil, err
	}
	return &records[0], nil
}

func (r *PgxRecordRepository) ListRecords(ctx context.Context, filter portsrepo.RecordFilter) ([]domain.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE deleted_at IS NULL`
	args := make([]any, 0, 3)
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(` AND date < $%d`, len(args))
	}
	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		query += fmt.Sprintf(` AND account_id = $%d`, len(args))
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning record: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	if err := loadSplits(ctx, r.pool, records); err != nil {
		return nil, err
	}
	return records, nil
}

const insertSplitQuery = `
	INSERT INTO splits (
		split_id, record_id, person_id, amount, currency_code, is_paid,
		paid_date, account_id, created_at, updated_at
	) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, NULLIF($8, ''), $9, $10)
`

// SaveRecord persists the record and all its splits in one transaction.
func (r *PgxRecordRepository) SaveRecord(ctx context.Context, record domain.Record) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	query := `
		INSERT INTO records (
			record_id, label, amount, currency_code, date, account_id,
			category_id, is_income, is_transfer, transfer_to_account_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''), $8, $9, NULLIF($10, ''), $11, $12)
	`
	_, err = tx.Exec(ctx, query,
		record.RecordID, record.Label, record.Amount, record.CurrencyCode,
		record.Date, record.AccountID, record.CategoryID, record.IsIncome,
		record.IsTransfer, record.TransferToAccountID,
		record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error saving record: %w", err)
	}

	for _, split := range record.Splits {
		_, err = tx.Exec(ctx, insertSplitQuery,
			split.SplitID, split.RecordID, split.PersonID, split.Amount,
			split.CurrencyCode, split.IsPaid, split.PaidDate, split.AccountID,
			split.CreatedAt, split.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("error saving split: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit record: %w", err)
	}
	return nil
}

// UpdateRecord rewrites the record row and replaces its splits wholesale in
// one transaction.
func (r *PgxRecordRepository) UpdateRecord(ctx context.Context, record domain.Record) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore rollback error
	}()

	query := `
		UPDATE records SET
			label = $2, amount = $3, currency_code = NULLIF($4, ''), date = $5,
			account_id = $6, category_id = NULLIF($7, ''), is_income = $8,
			is_transfer = $9, transfer_to_account_id = NULLIF($10, ''),
			updated_at = $11
		WHERE record_id = $1 AND deleted_at IS NULL
	`
	tag, err := tx.Exec(ctx, query,
		record.RecordID, record.Label, record.Amount, record.CurrencyCode,
		record.Date, record.AccountID, record.CategoryID, record.IsIncome,
		record.IsTransfer, record.TransferToAccountID, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error updating record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM splits WHERE record_id = $1`, record.RecordID); err != nil {
		return fmt.Errorf("error clearing splits: %w", err)
	}
	for _, split := range record.Splits {
		_, err = tx.Exec(ctx, insertSplitQuery,
			split.SplitID, split.RecordID, split.PersonID, split.Amount,
			split.CurrencyCode, split.IsPaid, split.PaidDate, split.AccountID,
			split.CreatedAt, split.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("error saving split: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit record update: %w", err)
	}
	return nil
}

// DeleteRecord soft-deletes the record. Its splits stay in place but become
// unreachable, since splits are only ever loaded through their record.
func (r *PgxRecordRepository) DeleteRecord(ctx context.Context, recordID string) error {
	query := `UPDATE records SET deleted_at = $2 WHERE record_id = $1 AND deleted_at IS NULL`
	tag, err := r.pool.Exec(ctx, query, recordID, time.Now())
	if err != nil {
		return fmt.Errorf("error deleting record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRecordRepository) UpdateSplit(ctx context.Context, split domain.Split) error {
	query := `
		UPDATE splits SET
			person_id = $2, amount = $3, currency_code = NULLIF($4, ''),
			is_paid = $5, paid_date = $6, account_id = NULLIF($7, ''),
			updated_at = $8
		WHERE split_id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		split.SplitID, split.PersonID, split.Amount, split.CurrencyCode,
		split.IsPaid, split.PaidDate, split.AccountID, split.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error updating split: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
