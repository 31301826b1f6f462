package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avltr/personal_ledger_app/internal/core/domain"
)

// SetExchangeRateRequest defines the payload for upserting an exchange rate.
type SetExchangeRateRequest struct {
	FromCode string          `json:"fromCode" binding:"required,len=3"`
	ToCode   string          `json:"toCode" binding:"required,len=3"`
	Rate     decimal.Decimal `json:"rate" binding:"required"`
	IsManual *bool           `json:"isManual"` // Defaults to true when omitted
}

// ExchangeRateResponse defines the exchange rate data returned by the API.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	FromCode       string          `json:"fromCode"`
	ToCode         string          `json:"toCode"`
	Rate           decimal.Decimal `json:"rate"`
	IsManual       bool            `json:"isManual"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ToExchangeRateResponse maps a domain rate to its response DTO.
func ToExchangeRateResponse(r domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: r.ExchangeRateID,
		FromCode:       r.FromCode,
		ToCode:         r.ToCode,
		Rate:           r.Rate,
		IsManual:       r.IsManual,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ListExchangeRatesResponse wraps the rate listing.
type ListExchangeRatesResponse struct {
	Rates []ExchangeRateResponse `json:"rates"`
}

// ConvertResponse is the result of a currency conversion request.
type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	FromCode  string          `json:"fromCode"`
	ToCode    string          `json:"toCode"`
	Converted decimal.Decimal `json:"converted"`
}
