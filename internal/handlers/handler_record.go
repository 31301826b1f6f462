package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avltr/personal_ledger_app/internal/apperrors"
	portsrepo "github.com/avltr/personal_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/avltr/personal_ledger_app/internal/core/ports/services"
	"github.com/avltr/personal_ledger_app/internal/dto"
	"github.com/avltr/personal_ledger_app/internal/middleware"
)

// recordHandler handles HTTP requests related to records and their splits.
type recordHandler struct {
	recordService portssvc.RecordSvcFacade
	invalidator   portssvc.ReportingInvalidator
}

func newRecordHandler(rs portssvc.RecordSvcFacade, inv portssvc.ReportingInvalidator) *recordHandler {
	return &recordHandler{
		recordService: rs,
		invalidator:   inv,
	}
}

// registerRecordRoutes registers routes related to records.
func registerRecordRoutes(rg *gin.RouterGroup, recordService portssvc.RecordSvcFacade, inv portssvc.ReportingInvalidator) {
	h := newRecordHandler(recordService, inv)

	records := rg.Group("/records")
	{
		records.POST("", h.createRecord)
		records.GET("", h.listRecords)
		records.GET("/:recordID", h.getRecord)
		records.PUT("/:recordID", h.updateRecord)
		records.DELETE("/:recordID", h.deleteRecord)
		records.POST("/:recordID/splits/:splitID/settle", h.settleSplit)
	}
}

func (h *recordHandler) createRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRecord", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	record, err := h.recordService.CreateRecord(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create record", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create record"})
		}
		return
	}

	h.invalidator.Invalidate()

	logger.Info("Record created", slog.String("record_id", record.RecordID))
	c.JSON(http.StatusCreated, dto.ToRecordResponse(*record))
}

// listRecords lists records, filtered by the from (inclusive), to (exclusive)
// and accountID query parameters.
func (h *recordHandler) listRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var filter portsrepo.RecordFilter
	if raw := c.Query("from"); raw != "" {
		from, err := parseDateParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := parseDateParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return
		}
		filter.To = &to
	}
	filter.AccountID = c.Query("accountID")

	records, err := h.recordService.ListRecords(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list records"})
		return
	}

	resp := dto.ListRecordsResponse{Records: make([]dto.RecordResponse, 0, len(records))}
	for _, r := range records {
		resp.Records = append(resp.Records, dto.ToRecordResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *recordHandler) getRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("recordID")

	record, err := h.recordService.GetRecordByID(c.Request.Context(), recordID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		logger.Error("Failed to get record", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve record"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRecordResponse(*record))
}

func (h *recordHandler) updateRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("recordID")

	var req dto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRecord", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	record, err := h.recordService.UpdateRecord(c.Request.Context(), recordID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update record", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update record"})
		}
		return
	}

	h.invalidator.Invalidate()

	c.JSON(http.StatusOK, dto.ToRecordResponse(*record))
}

func (h *recordHandler) deleteRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("recordID")

	if err := h.recordService.DeleteRecord(c.Request.Context(), recordID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		logger.Error("Failed to delete record", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record"})
		return
	}

	h.invalidator.Invalidate()

	logger.Info("Record deleted", slog.String("record_id", recordID))
	c.Status(http.StatusNoContent)
}

type settleSplitRequest struct {
	AccountID string `json:"accountID" binding:"required"`
}

// settleSplit marks a split as paid into the given account.
func (h *recordHandler) settleSplit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("recordID")
	splitID := c.Param("splitID")

	var req settleSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SettleSplit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	record, err := h.recordService.SettleSplit(c.Request.Context(), recordID, splitID, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record or split not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to settle split", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle split"})
		}
		return
	}

	h.invalidator.Invalidate()

	logger.Info("Split settled",
		slog.String("record_id", recordID),
		slog.String("split_id", splitID),
		slog.String("account_id", req.AccountID),
	)
	c.JSON(http.StatusOK, dto.ToRecordResponse(*record))
}

// parseDateParam accepts either a bare date or a full RFC 3339 timestamp.
func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
