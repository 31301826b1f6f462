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

// recordService provides business logic for records and their splits.
type recordService struct {
	BaseService
	recordRepo  portsrepo.RecordRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewRecordService creates a new record service.
func NewRecordService(recordRepo portsrepo.RecordRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.RecordSvcFacade {
	return &recordService{recordRepo: recordRepo, accountRepo: accountRepo}
}

var _ portssvc.RecordSvcFacade = (*recordService)(nil)

// normalizeOptionalCode normalizes a record/split currency code, keeping empty
// as "use default". Malformed codes are rejected before they can be stored.
func normalizeOptionalCode(code string) (string, error) {
	norm := domain.NormalizeCurrencyCode(code)
	if norm == "" {
		return "", nil
	}
	if !domain.IsValidCurrencyCode(norm) {
		return "", fmt.Errorf("%w: currency code must be 3 letters, got %q", apperrors.ErrValidation, code)
	}
	return norm, nil
}

func buildSplits(recordID string, amount decimal.Decimal, reqs []dto.CreateSplitRequest, now time.Time) ([]domain.Split, error) {
	splits := make([]domain.Split, 0, len(reqs))
	splitTotal := decimal.Zero
	for _, sr := range reqs {
		if sr.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: split amount must be positive", apperrors.ErrValidation)
		}
		code, err := normalizeOptionalCode(sr.CurrencyCode)
		if err != nil {
			return nil, err
		}
		if sr.IsPaid && sr.AccountID == "" {
			return nil, fmt.Errorf("%w: a paid split needs a settlement account", apperrors.ErrValidation)
		}
		splitTotal = splitTotal.Add(sr.Amount)
		splits = append(splits, domain.Split{
			SplitID:      uuid.NewString(),
			RecordID:     recordID,
			PersonID:     sr.PersonID,
			Amount:       sr.Amount,
			CurrencyCode: code,
			IsPaid:       sr.IsPaid,
			PaidDate:     sr.PaidDate,
			AccountID:    sr.AccountID,
			AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		})
	}
	// The self-portion (amount minus splits) must never go negative.
	if splitTotal.GreaterThan(amount) {
		return nil, fmt.Errorf("%w: split amounts exceed the record amount", apperrors.ErrValidation)
	}
	return splits, nil
}

// CreateRecord validates and persists a record together with its splits.
func (s *recordService) CreateRecord(ctx context.Context, req dto.CreateRecordRequest) (*domain.Record, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: record amount must be positive", apperrors.ErrValidation)
	}
	if req.IsTransfer && req.IsIncome {
		return nil, fmt.Errorf("%w: a transfer cannot also be income", apperrors.ErrValidation)
	}
	if req.IsTransfer {
		if req.TransferToAccountID == "" {
			return nil, fmt.Errorf("%w: a transfer needs a destination account", apperrors.ErrValidation)
		}
		if req.TransferToAccountID == req.AccountID {
			return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
		}
	}
	code, err := normalizeOptionalCode(req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, req.AccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %q not found", apperrors.ErrValidation, req.AccountID)
		}
		return nil, fmt.Errorf("failed to validate account: %w", err)
	}

	now := time.Now()
	recordID := uuid.NewString()
	splits, err := buildSplits(recordID, req.Amount, req.Splits, now)
	if err != nil {
		return nil, err
	}

	record := domain.Record{
		RecordID:            recordID,
		Label:               req.Label,
		Amount:              req.Amount,
		CurrencyCode:        code,
		Date:                req.Date,
		AccountID:           req.AccountID,
		CategoryID:          req.CategoryID,
		IsIncome:            req.IsIncome,
		IsTransfer:          req.IsTransfer,
		TransferToAccountID: req.TransferToAccountID,
		Splits:              splits,
		AuditFields:         domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.recordRepo.SaveRecord(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save record", slog.String("label", req.Label))
		return nil, fmt.Errorf("failed to create record: %w", err)
	}
	return &record, nil
}

// GetRecordByID retrieves a record with its splits.
func (s *recordService) GetRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	record, err := s.recordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return record, nil
}

// ListRecords returns records matching the filter, splits included.
func (s *recordService) ListRecords(ctx context.Context, filter portsrepo.RecordFilter) ([]domain.Record, error) {
	records, err := s.recordRepo.ListRecords(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// UpdateRecord applies the non-nil request fields; a splits slice replaces
// the record's splits wholesale.
func (s *recordService) UpdateRecord(ctx context.Context, recordID string, req dto.UpdateRecordRequest) (*domain.Record, error) {
	record, err := s.recordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load record for update: %w", err)
	}

	if req.Label != nil {
		record.Label = *req.Label
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: record amount must be positive", apperrors.ErrValidation)
		}
		record.Amount = *req.Amount
	}
	if req.CurrencyCode != nil {
		code, err := normalizeOptionalCode(*req.CurrencyCode)
		if err != nil {
			return nil, err
		}
		record.CurrencyCode = code
	}
	if req.Date != nil {
		record.Date = *req.Date
	}
	if req.CategoryID != nil {
		record.CategoryID = *req.CategoryID
	}

	now := time.Now()
	if req.Splits != nil {
		splits, err := buildSplits(record.RecordID, record.Amount, req.Splits, now)
		if err != nil {
			return nil, err
		}
		record.Splits = splits
	} else if record.SelfPortion().IsNegative() {
		return nil, fmt.Errorf("%w: split amounts exceed the record amount", apperrors.ErrValidation)
	}
	record.UpdatedAt = now

	if err := s.recordRepo.UpdateRecord(ctx, *record); err != nil {
		s.LogError(ctx, err, "Failed to update record", slog.String("record_id", recordID))
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	return record, nil
}

// DeleteRecord removes a record and its splits.
func (s *recordService) DeleteRecord(ctx context.Context, recordID string) error {
	if err := s.recordRepo.DeleteRecord(ctx, recordID); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	s.LogInfo(ctx, "Record deleted", slog.String("record_id", recordID))
	return nil
}

// SettleSplit marks a split as paid into the given account as of now.
func (s *recordService) SettleSplit(ctx context.Context, recordID, splitID, accountID string) (*domain.Record, error) {
	record, err := s.recordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load record for settlement: %w", err)
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %q not found", apperrors.ErrValidation, accountID)
		}
		return nil, fmt.Errorf("failed to validate settlement account: %w", err)
	}

	now := time.Now()
	for i := range record.Splits {
		if record.Splits[i].SplitID != splitID {
			continue
		}
		record.Splits[i].IsPaid = true
		record.Splits[i].PaidDate = &now
		record.Splits[i].AccountID = accountID
		record.Splits[i].UpdatedAt = now
		if err := s.recordRepo.UpdateSplit(ctx, record.Splits[i]); err != nil {
			return nil, fmt.Errorf("failed to settle split: %w", err)
		}
		return record, nil
	}
	return nil, fmt.Errorf("%w: split %q not found on record %q", apperrors.ErrNotFound, splitID, recordID)
}
