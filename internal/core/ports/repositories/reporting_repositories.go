package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
)

// ReportingRepository defines the read snapshots the aggregation engine
// consumes. Every method returns plain values with all needed fields eagerly
// present; soft-deleted rows are already filtered out.
type ReportingRepository interface {
	// ListRecordsByAccount returns all records owned by the account, splits
	// included.
	ListRecordsByAccount(ctx context.Context, accountID string) ([]domain.Record, error)

	// ListTransfersInto returns all transfer records whose destination is the
	// account.
	ListTransfersInto(ctx context.Context, accountID string) ([]domain.Record, error)

	// ListSplitSettlements returns all paid splits settled into the account,
	// joined with the parent record fields the balance computation needs.
	ListSplitSettlements(ctx context.Context, accountID string) ([]domain.SplitSettlement, error)

	// ListRecordsInRange returns records with from <= date < to, splits
	// included, optionally restricted to one account.
	ListRecordsInRange(ctx context.Context, from, to time.Time, accountID string) ([]domain.Record, error)

	// ListRecordFlowsBefore returns records dated strictly before the instant,
	// joined with account names for transfer classification.
	ListRecordFlowsBefore(ctx context.Context, before time.Time) ([]domain.RecordFlow, error)

	// ListRecordFlowsInRange returns records with from <= date < to, joined
	// with account names for transfer classification.
	ListRecordFlowsInRange(ctx context.Context, from, to time.Time) ([]domain.RecordFlow, error)

	// TotalBeginningBalance sums the beginning balances of all non-deleted
	// accounts, hidden ones included.
	TotalBeginningBalance(ctx context.Context) (decimal.Decimal, error)
}
