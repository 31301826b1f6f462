package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avltr/personal_ledger_app/internal/apperrors"
	"github.com/avltr/personal_ledger_app/internal/core/domain"
	portssvc "github.com/avltr/personal_ledger_app/internal/core/ports/services"
	"github.com/avltr/personal_ledger_app/internal/dto"
	"github.com/avltr/personal_ledger_app/internal/middleware"
	"github.com/avltr/personal_ledger_app/internal/utils/timeperiod"
)

// reportingHandler handles HTTP requests for the aggregation endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reporting := rg.Group("/reporting")
	{
		reporting.GET("/period-figure", h.periodFigure)
		reporting.GET("/period-average", h.periodAverage)
		reporting.GET("/currency-totals", h.currencyTotals)
		reporting.GET("/category-totals", h.categoryTotals)
		reporting.GET("/spending", h.dailySpending)
		reporting.GET("/balance-trend", h.dailyBalance)
	}
}

// bindPeriodFilter parses the shared period query parameters: offset,
// granularity, accountID, nature and isIncome.
func bindPeriodFilter(c *gin.Context) (domain.PeriodFilter, error) {
	var filter domain.PeriodFilter

	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("invalid offset")
		}
		filter.Offset = offset
	}

	g, err := timeperiod.Parse(c.DefaultQuery("granularity", "month"))
	if err != nil {
		return filter, err
	}
	filter.Granularity = g

	filter.AccountID = c.Query("accountID")

	if raw := c.Query("nature"); raw != "" {
		nature := domain.Nature(raw)
		switch nature {
		case domain.NatureMust, domain.NatureNeed, domain.NatureWant:
			filter.Nature = &nature
		default:
			return filter, errors.New("invalid nature")
		}
	}

	if raw := c.Query("isIncome"); raw != "" {
		isIncome, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errors.New("invalid isIncome")
		}
		filter.IsIncome = &isIncome
	}

	return filter, nil
}

func (h *reportingHandler) periodFigure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter, err := bindPeriodFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	figure, err := h.reportingService.PeriodFigure(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to compute period figure", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute period figure"})
		return
	}

	c.JSON(http.StatusOK, dto.PeriodFigureResponse{Figure: figure})
}

// periodAverage spreads the period's net figure over the days of the period.
func (h *reportingHandler) periodAverage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter, err := bindPeriodFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	figure, err := h.reportingService.PeriodFigure(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to compute period figure", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute period average"})
		return
	}

	average := h.reportingService.PeriodAverage(figure, filter.Offset, filter.Granularity)
	c.JSON(http.StatusOK, dto.PeriodFigureResponse{Figure: average})
}

func (h *reportingHandler) currencyTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter, err := bindPeriodFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	totals, err := h.reportingService.PerCurrencyTotals(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to compute currency totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute currency totals"})
		return
	}

	c.JSON(http.StatusOK, dto.CurrencyTotalsResponse{Totals: totals})
}

func (h *reportingHandler) categoryTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter, err := bindPeriodFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	subcategories := c.Query("subcategories") == "true"

	totals, err := h.reportingService.CategoryTotals(c.Request.Context(), filter, subcategories)
	if err != nil {
		logger.Error("Failed to compute category totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute category totals"})
		return
	}

	resp := dto.CategoryTotalsResponse{Totals: make([]dto.CategoryTotalResponse, 0, len(totals))}
	for _, t := range totals {
		resp.Totals = append(resp.Totals, dto.CategoryTotalResponse{
			Category: dto.ToCategoryResponse(t.Category),
			Amount:   t.Amount,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *reportingHandler) dailySpending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	start, err := parseDateParam(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
		return
	}
	end, err := parseDateParam(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date"})
		return
	}
	cumulative := c.Query("cumulative") == "true"

	series, err := h.reportingService.DailySpending(c.Request.Context(), start, end, cumulative)
	if err != nil {
		logger.Error("Failed to compute daily spending", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute daily spending"})
		return
	}

	c.JSON(http.StatusOK, dto.DailySeriesResponse{Series: series})
}

func (h *reportingHandler) dailyBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	start, err := parseDateParam(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
		return
	}
	end, err := parseDateParam(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date"})
		return
	}

	series, err := h.reportingService.DailyBalance(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute balance trend", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance trend"})
		return
	}

	c.JSON(http.StatusOK, dto.DailySeriesResponse{Series: series})
}
