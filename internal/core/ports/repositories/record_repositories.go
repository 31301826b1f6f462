package repositories

import (
	"context"
	"time"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
)

// RecordFilter narrows a record listing. Zero values leave a dimension
// unconstrained.
type RecordFilter struct {
	From      *time.Time // Inclusive lower bound on the record date
	To        *time.Time // Exclusive upper bound on the record date
	AccountID string
}

// RecordReader defines read operations for records. Records are returned as
// eager snapshots with their splits populated.
type RecordReader interface {
	FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error)
	ListRecords(ctx context.Context, filter RecordFilter) ([]domain.Record, error)
}

// RecordWriter defines write operations for records and their splits. A record
// and its splits are persisted within one store transaction.
type RecordWriter interface {
	SaveRecord(ctx context.Context, record domain.Record) error
	UpdateRecord(ctx context.Context, record domain.Record) error
	DeleteRecord(ctx context.Context, recordID string) error

	// UpdateSplit persists changes to a single split (settling, un-settling).
	UpdateSplit(ctx context.Context, split domain.Split) error
}

// RecordRepositoryFacade combines all record-related repository interfaces.
type RecordRepositoryFacade interface {
	RecordReader
	RecordWriter
}
