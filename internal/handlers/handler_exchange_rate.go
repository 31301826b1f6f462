package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/avltr/personal_ledger_app/internal/apperrors"
	portssvc "github.com/avltr/personal_ledger_app/internal/core/ports/services"
	"github.com/avltr/personal_ledger_app/internal/dto"
	"github.com/avltr/personal_ledger_app/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	invalidator         portssvc.ReportingInvalidator
}

func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade, inv portssvc.ReportingInvalidator) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
		invalidator:         inv,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, inv portssvc.ReportingInvalidator) {
	h := newExchangeRateHandler(exchangeRateService, inv)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.PUT("", h.setExchangeRate)
		exchangeRates.GET("", h.listExchangeRates)
		exchangeRates.GET("/:from/:to", h.getExchangeRate)
	}
	rg.GET("/convert", h.convert)
}

// setExchangeRate upserts a directed rate together with its derived inverse.
func (h *exchangeRateHandler) setExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.exchangeRateService.SetRate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error setting exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set exchange rate"})
		}
		return
	}

	// A new rate changes every converted aggregate.
	h.invalidator.Invalidate()

	logger.Info("Exchange rate set",
		slog.String("from", rate.FromCode),
		slog.String("to", rate.ToCode),
		slog.String("rate", rate.Rate.String()),
	)
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(*rate))
}

func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.exchangeRateService.ListRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		return
	}

	resp := dto.ListExchangeRatesResponse{Rates: make([]dto.ExchangeRateResponse, 0, len(rates))}
	for _, r := range rates {
		resp.Rates = append(resp.Rates, dto.ToExchangeRateResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

// getExchangeRate resolves the effective rate for a pair, reciprocal fallback
// included.
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := c.Param("from")
	toCode := c.Param("to")

	rate, ok, err := h.exchangeRateService.GetRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get exchange rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exchange rate not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fromCode": fromCode, "toCode": toCode, "rate": rate})
}

// convert applies the resolved rate to an amount passed as query parameters.
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}
	fromCode := c.Query("from")
	toCode := c.Query("to")

	converted, ok, err := h.exchangeRateService.Convert(c.Request.Context(), amount, fromCode, toCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to convert amount", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No exchange rate available for pair"})
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:    amount,
		FromCode:  fromCode,
		ToCode:    toCode,
		Converted: converted,
	})
}
