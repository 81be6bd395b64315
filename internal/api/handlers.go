// Package api implements the HTTP handlers for the triage service.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/telecom-triage/internal/database"
	"github.com/jonesrussell/telecom-triage/internal/dataset"
	"github.com/jonesrussell/telecom-triage/internal/domain"
	"github.com/jonesrussell/telecom-triage/internal/logging"
	"github.com/jonesrussell/telecom-triage/internal/pipeline"
	"github.com/jonesrussell/telecom-triage/internal/processor"
	"github.com/jonesrussell/telecom-triage/internal/rules"
	"github.com/jonesrussell/telecom-triage/internal/telemetry"
)

// Handler handles HTTP requests for the triage API.
type Handler struct {
	pipeline       *pipeline.Pipeline
	batchProcessor *processor.BatchProcessor
	rulesEngine    *rules.Engine
	store          *dataset.Store
	historyRepo    *database.HistoryRepository
	telemetry      *telemetry.Provider
	serviceName    string
	serviceVersion string
	logger         logging.Logger
}

// NewHandler creates a new API handler.
func NewHandler(
	p *pipeline.Pipeline,
	batchProcessor *processor.BatchProcessor,
	rulesEngine *rules.Engine,
	store *dataset.Store,
	historyRepo *database.HistoryRepository,
	tp *telemetry.Provider,
	serviceName, serviceVersion string,
	logger logging.Logger,
) *Handler {
	return &Handler{
		pipeline:       p,
		batchProcessor: batchProcessor,
		rulesEngine:    rulesEngine,
		store:          store,
		historyRepo:    historyRepo,
		telemetry:      tp,
		serviceName:    serviceName,
		serviceVersion: serviceVersion,
		logger:         logger,
	}
}

// Triage handles POST /api/v1/triage
func (h *Handler) Triage(c *gin.Context) {
	var req TriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid triage request", logging.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.pipeline.Triage(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyComplaint) {
			c.JSON(http.StatusBadRequest, TriageResponse{Error: err.Error()})
			return
		}
		h.logger.Error("triage failed", logging.Error(err))
		c.JSON(http.StatusInternalServerError, TriageResponse{Error: err.Error()})
		return
	}

	h.recordHistory(c, result)

	c.JSON(http.StatusOK, TriageResponse{Result: result})
}

// TriageBatch handles POST /api/v1/triage/batch
func (h *Handler) TriageBatch(c *gin.Context) {
	var req BatchTriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid batch triage request", logging.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.batchProcessor.Process(c.Request.Context(), req.Texts)
	if err != nil {
		h.logger.Error("batch triage failed", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := BatchTriageResponse{
		Results: make([]BatchTriageItem, len(results)),
		Total:   len(results),
	}
	for i, r := range results {
		item := BatchTriageItem{Index: r.Index}
		if r.Err != nil {
			item.Error = r.Err.Error()
			resp.Failed++
		} else {
			item.Result = r.Triage
			resp.Success++
			h.recordHistory(c, r.Triage)
		}
		resp.Results[i] = item
	}

	c.JSON(http.StatusOK, resp)
}

// CreateComplaint handles POST /api/v1/complaints
func (h *Handler) CreateComplaint(c *gin.Context) {
	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create complaint request", logging.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.pipeline.Triage(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyComplaint) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("triage failed", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	statusGroup := req.Resolution
	if statusGroup == "" {
		statusGroup = domain.StatusUnresolved
	}

	ticket, err := h.store.Append(domain.Complaint{
		RawText:     result.RawText,
		CleanedText: result.CleanedText,
		Category:    result.Category,
		StatusGroup: statusGroup,
		Sentiment:   result.Sentiment.Label,
	})
	if err != nil {
		h.logger.Error("failed to record complaint", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record complaint"})
		return
	}

	h.recordHistory(c, result)
	if h.telemetry != nil {
		h.telemetry.RecordComplaintRecorded(c.Request.Context())
	}

	h.logger.Info("complaint filed",
		logging.String("ticket", ticket),
		logging.String("category", result.Category),
		logging.String("status_group", statusGroup))

	c.JSON(http.StatusCreated, CreateComplaintResponse{
		Ticket: ticket,
		Result: result,
	})
}

// ListComplaints handles GET /api/v1/complaints
func (h *Handler) ListComplaints(c *gin.Context) {
	complaints, err := h.store.Load()
	if err != nil {
		h.logger.Error("failed to load complaints", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load complaints"})
		return
	}
	if h.telemetry != nil {
		h.telemetry.SetDatasetRows(len(complaints))
	}

	if status := c.Query("status"); status != "" {
		filtered := complaints[:0]
		for _, cmp := range complaints {
			if cmp.StatusGroup == status {
				filtered = append(filtered, cmp)
			}
		}
		complaints = filtered
	}
	if category := c.Query("category"); category != "" {
		filtered := complaints[:0]
		for _, cmp := range complaints {
			if cmp.Category == category {
				filtered = append(filtered, cmp)
			}
		}
		complaints = filtered
	}

	c.JSON(http.StatusOK, ComplaintsListResponse{
		Complaints: complaints,
		Total:      len(complaints),
	})
}

// UpdateComplaintStatus handles PATCH /api/v1/complaints/:ticket/status
func (h *Handler) UpdateComplaintStatus(c *gin.Context) {
	ticket := c.Param("ticket")
	if ticket == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticket is required"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid status update request", logging.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.UpdateStatus(ticket, req.StatusGroup); err != nil {
		if errors.Is(err, dataset.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
			return
		}
		h.logger.Error("failed to update status",
			logging.String("ticket", ticket), logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	h.logger.Info("complaint status updated",
		logging.String("ticket", ticket),
		logging.String("status_group", req.StatusGroup))

	c.JSON(http.StatusOK, gin.H{
		"ticket":       ticket,
		"status_group": req.StatusGroup,
	})
}

// ListRules handles GET /api/v1/rules
func (h *Handler) ListRules(c *gin.Context) {
	ruleSet := h.rulesEngine.Rules()
	c.JSON(http.StatusOK, RulesListResponse{
		Rules: ruleSet,
		Total: len(ruleSet),
	})
}

// GetHistory handles GET /api/v1/history
func (h *Handler) GetHistory(c *gin.Context) {
	limit := 50
	if param := c.Query("limit"); param != "" {
		if n, err := strconv.Atoi(param); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	records, err := h.historyRepo.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list history", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	c.JSON(http.StatusOK, HistoryListResponse{
		History: records,
		Total:   len(records),
	})
}

// GetStats handles GET /api/v1/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.historyRepo.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get stats", logging.Error(err))
		// Empty stats keep the dashboard alive.
		c.JSON(http.StatusOK, gin.H{
			"total_triaged":          0,
			"avg_confidence":         0,
			"high_priority":          0,
			"negative_sentiment":     0,
			"avg_processing_time_ms": 0,
			"sentiments":             gin.H{},
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetCategoryStats handles GET /api/v1/stats/categories. A category query
// parameter narrows the result to a single category; the labels contain
// slashes, so a path parameter cannot carry them.
func (h *Handler) GetCategoryStats(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		if !domain.ValidCategory(category) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown category"})
			return
		}

		stat, err := h.historyRepo.GetCategoryStatsByName(c.Request.Context(), category)
		if err != nil {
			h.logger.Error("failed to get category stats",
				logging.String("category", category), logging.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load category stats"})
			return
		}

		c.JSON(http.StatusOK, stat)
		return
	}

	stats, err := h.historyRepo.GetCategoryStats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get category stats", logging.Error(err))
		c.JSON(http.StatusOK, gin.H{"categories": []gin.H{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": stats})
}

// GetSummaryReport handles GET /api/v1/reports/summary
func (h *Handler) GetSummaryReport(c *gin.Context) {
	summary, err := h.store.Summarize()
	if err != nil {
		h.logger.Error("failed to summarize dataset", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary report"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.serviceName,
		"version": h.serviceVersion,
	})
}

// ReadyCheck handles GET /ready
func (h *Handler) ReadyCheck(c *gin.Context) {
	checks := gin.H{"model": "ok", "dataset": "ok", "database": "ok"}
	status := http.StatusOK

	if h.pipeline.ModelVersion() == "" {
		checks["model"] = "missing version stamp"
	}
	if _, err := h.store.Load(); err != nil {
		checks["dataset"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if _, err := h.historyRepo.GetStats(c.Request.Context()); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}

	c.JSON(status, gin.H{
		"status":        state,
		"model_version": h.pipeline.ModelVersion(),
		"checks":        checks,
	})
}

// recordHistory persists one triage outcome. A write failure is logged
// but never fails the request.
func (h *Handler) recordHistory(c *gin.Context, result *domain.TriageResult) {
	record := &domain.TriageHistory{
		RawText:          result.RawText,
		Category:         result.Category,
		Confidence:       result.CategoryScores[result.Category],
		Sentiment:        result.Sentiment.Label,
		Priority:         result.Priority,
		ModelVersion:     result.ModelVersion,
		ProcessingTimeMs: result.ProcessingTimeMs,
		TriagedAt:        result.TriagedAt,
	}

	if err := h.historyRepo.Create(c.Request.Context(), record); err != nil {
		h.logger.Warn("failed to record triage history", logging.Error(err))
	}
}
