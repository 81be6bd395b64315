package api

import (
	"github.com/jonesrussell/telecom-triage/internal/domain"
)

// TriageRequest represents a single triage request.
type TriageRequest struct {
	Text string `json:"text" binding:"required"`
}

// TriageResponse represents a triage response.
type TriageResponse struct {
	Result *domain.TriageResult `json:"result"`
	Error  string               `json:"error,omitempty"`
}

// BatchTriageRequest represents a batch triage request.
type BatchTriageRequest struct {
	Texts []string `json:"texts" binding:"required,min=1,max=100"`
}

// BatchTriageItem is one entry of a batch triage response.
type BatchTriageItem struct {
	Index  int                  `json:"index"`
	Result *domain.TriageResult `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

// BatchTriageResponse represents a batch triage response.
type BatchTriageResponse struct {
	Results []BatchTriageItem `json:"results"`
	Total   int               `json:"total"`
	Success int               `json:"success"`
	Failed  int               `json:"failed"`
}

// CreateComplaintRequest files a complaint into the dataset after triage.
// Resolution is optional; it defaults to Unresolved.
type CreateComplaintRequest struct {
	Text       string `json:"text" binding:"required"`
	Resolution string `json:"resolution,omitempty" binding:"omitempty,oneof=Resolved Unresolved"`
}

// CreateComplaintResponse returns the assigned ticket with the triage.
type CreateComplaintResponse struct {
	Ticket string               `json:"ticket"`
	Result *domain.TriageResult `json:"result"`
}

// ComplaintsListResponse lists dataset complaints.
type ComplaintsListResponse struct {
	Complaints []domain.Complaint `json:"complaints"`
	Total      int                `json:"total"`
}

// UpdateStatusRequest moves a ticket between status groups.
type UpdateStatusRequest struct {
	StatusGroup string `json:"status_group" binding:"required,oneof=Resolved Unresolved"`
}

// HistoryListResponse lists recent triage history records.
type HistoryListResponse struct {
	History []*domain.TriageHistory `json:"history"`
	Total   int                     `json:"total"`
}

// RulesListResponse lists the active rule catalog.
type RulesListResponse struct {
	Rules []domain.TriageRule `json:"rules"`
	Total int                 `json:"total"`
}
