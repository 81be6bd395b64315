package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/telecom-triage/internal/telemetry"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, tp *telemetry.Provider) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	// Prometheus metrics
	if tp != nil {
		router.GET("/metrics", gin.WrapH(tp.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Triage endpoints
		triage := v1.Group("/triage")
		{
			triage.POST("", handler.Triage)            // POST /api/v1/triage
			triage.POST("/batch", handler.TriageBatch) // POST /api/v1/triage/batch
		}

		// Complaint dataset endpoints
		complaints := v1.Group("/complaints")
		{
			complaints.POST("", handler.CreateComplaint)                       // POST /api/v1/complaints
			complaints.GET("", handler.ListComplaints)                         // GET /api/v1/complaints
			complaints.PATCH("/:ticket/status", handler.UpdateComplaintStatus) // PATCH /api/v1/complaints/:ticket/status
		}

		// Rule catalog
		v1.GET("/rules", handler.ListRules) // GET /api/v1/rules

		// Triage history
		v1.GET("/history", handler.GetHistory) // GET /api/v1/history

		// Statistics endpoints
		stats := v1.Group("/stats")
		{
			stats.GET("", handler.GetStats)                    // GET /api/v1/stats
			stats.GET("/categories", handler.GetCategoryStats) // GET /api/v1/stats/categories[?category=]
		}

		// Dataset reports
		v1.GET("/reports/summary", handler.GetSummaryReport) // GET /api/v1/reports/summary
	}
}
