package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
)

// CreateSplitRequest is one split line of a record creation payload.
type CreateSplitRequest struct {
	PersonID     string          `json:"personID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,len=3"`
	IsPaid       bool            `json:"isPaid"`
	PaidDate     *time.Time      `json:"paidDate"`
	AccountID    string          `json:"accountID"` // Settlement account, required when IsPaid
}

// CreateRecordRequest defines the payload for creating a record with its
// splits.
type CreateRecordRequest struct {
	Label               string               `json:"label" binding:"required"`
	Amount              decimal.Decimal      `json:"amount" binding:"required"`
	CurrencyCode        string               `json:"currencyCode" binding:"omitempty,len=3"`
	Date                time.Time            `json:"date" binding:"required"`
	AccountID           string               `json:"accountID" binding:"required"`
	CategoryID          string               `json:"categoryID"`
	IsIncome            bool                 `json:"isIncome"`
	IsTransfer          bool                 `json:"isTransfer"`
	TransferToAccountID string               `json:"transferToAccountID"`
	Splits              []CreateSplitRequest `json:"splits" binding:"omitempty,dive"`
}

// UpdateRecordRequest defines the payload for updating a record. Splits are
// replaced wholesale when present.
type UpdateRecordRequest struct {
	Label        *string               `json:"label"`
	Amount       *decimal.Decimal      `json:"amount"`
	CurrencyCode *string               `json:"currencyCode" binding:"omitempty,len=3"`
	Date         *time.Time            `json:"date"`
	CategoryID   *string               `json:"categoryID"`
	Splits       []CreateSplitRequest  `json:"splits" binding:"omitempty,dive"`
}

// SplitResponse defines the split data returned by the API.
type SplitResponse struct {
	SplitID      string          `json:"splitID"`
	PersonID     string          `json:"personID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode,omitempty"`
	IsPaid       bool            `json:"isPaid"`
	PaidDate     *time.Time      `json:"paidDate,omitempty"`
	AccountID    string          `json:"accountID,omitempty"`
}

// RecordResponse defines the record data returned by the API.
type RecordResponse struct {
	RecordID            string          `json:"recordID"`
	Label               string          `json:"label"`
	Amount              decimal.Decimal `json:"amount"`
	CurrencyCode        string          `json:"currencyCode,omitempty"`
	Date                time.Time       `json:"date"`
	AccountID           string          `json:"accountID"`
	CategoryID          string          `json:"categoryID,omitempty"`
	IsIncome            bool            `json:"isIncome"`
	IsTransfer          bool            `json:"isTransfer"`
	TransferToAccountID string          `json:"transferToAccountID,omitempty"`
	Splits              []SplitResponse `json:"splits"`
}

// ToRecordResponse maps a domain record to its response DTO.
func ToRecordResponse(r domain.Record) RecordResponse {
	splits := make([]SplitResponse, 0, len(r.Splits))
	for _, s := range r.Splits {
		splits = append(splits, SplitResponse{
			SplitID:      s.SplitID,
			PersonID:     s.PersonID,
			Amount:       s.Amount,
			CurrencyCode: s.CurrencyCode,
			IsPaid:       s.IsPaid,
			PaidDate:     s.PaidDate,
			AccountID:    s.AccountID,
		})
	}
	return RecordResponse{
		RecordID:            r.RecordID,
		Label:               r.Label,
		Amount:              r.Amount,
		CurrencyCode:        r.CurrencyCode,
		Date:                r.Date,
		AccountID:           r.AccountID,
		CategoryID:          r.CategoryID,
		IsIncome:            r.IsIncome,
		IsTransfer:          r.IsTransfer,
		TransferToAccountID: r.TransferToAccountID,
		Splits:              splits,
	}
}

// ListRecordsResponse wraps the record listing.
type ListRecordsResponse struct {
	Records []RecordResponse `json:"records"`
}
