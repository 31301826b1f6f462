package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
	portsrepo "github.com/avltr/personal_ledger_app/internal/core/ports/repositories"
)

// PgxReportingRepository implements the reporting read snapshots using
// pgxpool. Every query filters soft-deleted rows, and transfer flows come back
// joined with the account names the aggregation engine classifies on.
type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// NewReportingRepository creates a new PgxReportingRepository.
func NewReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) queryRecords(ctx context.Context, query string, args ...any) ([]domain.Record, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying records: %w", err)
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

func (r *PgxReportingRepository) ListRecordsByAccount(ctx context.Context, accountID string) ([]domain.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE account_id = $1 AND deleted_at IS NULL`
	return r.queryRecords(ctx, query, accountID)
}

func (r *PgxReportingRepository) ListTransfersInto(ctx context.Context, accountID string) ([]domain.Record, error) {
	query := `SELECT ` + recordColumns + `
		FROM records
		WHERE is_transfer = TRUE AND transfer_to_account_id = $1 AND deleted_at IS NULL`
	return r.queryRecords(ctx, query, accountID)
}

func (r *PgxReportingRepository) ListSplitSettlements(ctx context.Context, accountID string) ([]domain.SplitSettlement, error) {
	query := `
		SELECT s.amount, COALESCE(s.currency_code, ''),
			COALESCE(rec.currency_code, ''), rec.is_income
		FROM splits s
		JOIN records rec ON rec.record_id = s.record_id
		WHERE s.is_paid = TRUE AND s.account_id = $1 AND rec.deleted_at IS NULL
	`
	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("error querying split settlements: %w", err)
	}
	defer rows.Close()

	settlements := make([]domain.SplitSettlement, 0)
	for rows.Next() {
		var s domain.SplitSettlement
		err := rows.Scan(&s.Amount, &s.CurrencyCode, &s.RecordCurrencyCode, &s.RecordIsIncome)
		if err != nil {
			return nil, fmt.Errorf("error scanning split settlement: %w", err)
		}
		settlements = append(settlements, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating split settlements: %w", err)
	}
	return settlements, nil
}

func (r *PgxReportingRepository) ListRecordsInRange(ctx context.Context, from, to time.Time, accountID string) ([]domain.Record, error) {
	query := `SELECT ` + recordColumns + `
		FROM records
		WHERE date >= $1 AND date < $2 AND deleted_at IS NULL`
	args := []any{from, to}
	if accountID != "" {
		args = append(args, accountID)
		query += ` AND account_id = $3`
	}
	return r.queryRecords(ctx, query, args...)
}

const recordFlowColumns = `
	r.record_id, r.label, r.amount, COALESCE(r.currency_code, ''), r.date,
	r.account_id, COALESCE(r.category_id, ''), r.is_income, r.is_transfer,
	COALESCE(r.transfer_to_account_id, ''), r.created_at, r.updated_at,
	a.name, COALESCE(ta.name, '')
`

const recordFlowJoins = `
	FROM records r
	JOIN accounts a ON a.account_id = r.account_id
	LEFT JOIN accounts ta ON ta.account_id = r.transfer_to_account_id
`

func (r *PgxReportingRepository) queryRecordFlows(ctx context.Context, query string, args ...any) ([]domain.RecordFlow, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying record flows: %w", err)
	}
	defer rows.Close()

	flows := make([]domain.RecordFlow, 0)
	for rows.Next() {
		var flow domain.RecordFlow
		err := rows.Scan(
			&flow.RecordID, &flow.Label, &flow.Amount, &flow.CurrencyCode,
			&flow.Date, &flow.AccountID, &flow.CategoryID, &flow.IsIncome,
			&flow.IsTransfer, &flow.TransferToAccountID,
			&flow.CreatedAt, &flow.UpdatedAt,
			&flow.AccountName, &flow.TransferToAccountName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning record flow: %w", err)
		}
		flows = append(flows, flow)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record flows: %w", err)
	}

	records := make([]domain.Record, len(flows))
	for i := range flows {
		records[i] = flows[i].Record
	}
	if err := loadSplits(ctx, r.pool, records); err != nil {
		return nil, err
	}
	for i := range flows {
		flows[i].Record = records[i]
	}
	return flows, nil
}

// Flows from a soft-deleted account no longer move the aggregate balance,
// mirroring the beginning-balance sum below.
const listRecordFlowsBeforeQuery = `SELECT ` + recordFlowColumns + recordFlowJoins + `
	WHERE r.date < $1 AND r.deleted_at IS NULL AND a.deleted_at IS NULL`

const listRecordFlowsInRangeQuery = `SELECT ` + recordFlowColumns + recordFlowJoins + `
	WHERE r.date >= $1 AND r.date < $2 AND r.deleted_at IS NULL AND a.deleted_at IS NULL`

func (r *PgxReportingRepository) ListRecordFlowsBefore(ctx context.Context, before time.Time) ([]domain.RecordFlow, error) {
	return r.queryRecordFlows(ctx, listRecordFlowsBeforeQuery, before)
}

func (r *PgxReportingRepository) ListRecordFlowsInRange(ctx context.Context, from, to time.Time) ([]domain.RecordFlow, error) {
	return r.queryRecordFlows(ctx, listRecordFlowsInRangeQuery, from, to)
}

const totalBeginningBalanceQuery = `SELECT COALESCE(SUM(beginning_balance), 0) FROM accounts WHERE deleted_at IS NULL`

func (r *PgxReportingRepository) TotalBeginningBalance(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, totalBeginningBalanceQuery).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("error summing beginning balances: %w", err)
	}
	return total, nil
}
