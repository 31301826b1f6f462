package services

import (
	"context"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
	"github.com/avltr/personal_ledger_app/internal/core/ports/repositories"
	"github.com/avltr/personal_ledger_app/internal/dto"
)

// RecordReaderSvc defines read-side record operations.
type RecordReaderSvc interface {
	GetRecordByID(ctx context.Context, recordID string) (*domain.Record, error)
	ListRecords(ctx context.Context, filter repositories.RecordFilter) ([]domain.Record, error)
}

// RecordWriterSvc defines write-side record operations.
type RecordWriterSvc interface {
	CreateRecord(ctx context.Context, req dto.CreateRecordRequest) (*domain.Record, error)
	UpdateRecord(ctx context.Context, recordID string, req dto.UpdateRecordRequest) (*domain.Record, error)
	DeleteRecord(ctx context.Context, recordID string) error

	// SettleSplit marks a split paid into the given account as of now.
	SettleSplit(ctx context.Context, recordID, splitID, accountID string) (*domain.Record, error)
}

// RecordSvcFacade combines all record service interfaces.
type RecordSvcFacade interface {
	RecordReaderSvc
	RecordWriterSvc
}
