// Package domain holds the core types for the complaint triage service.
package domain

import "time"

// Category labels form a closed set. New categories are never inferred at
// runtime; CategoryOther is the explicit catch-all for unmatched complaints.
const (
	CategoryBilling         = "Billing/Charges"
	CategoryInternetSpeed   = "Internet Speed"
	CategoryServiceNetwork  = "Service/Network"
	CategoryCustomerService = "Customer Service"
	CategoryOther           = "Other/Technical"
)

// Categories returns the closed label set in its fixed order.
func Categories() []string {
	return []string{
		CategoryBilling,
		CategoryInternetSpeed,
		CategoryServiceNetwork,
		CategoryCustomerService,
		CategoryOther,
	}
}

// ValidCategory reports whether label belongs to the closed category set.
func ValidCategory(label string) bool {
	for _, c := range Categories() {
		if c == label {
			return true
		}
	}
	return false
}

// Status group constants. StatusGroup is the only complaint field mutated
// after creation, and only by a reviewer action.
const (
	StatusResolved   = "Resolved"
	StatusUnresolved = "Unresolved"
)

// Raw status constants kept in sync with the status group.
const (
	RawStatusSolved = "Solved"
	RawStatusOpen   = "Open"
)

// Sentiment labels from the keyword-counting heuristic.
const (
	SentimentNegative = "Negative"
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
)

// Priority levels derived from sentiment.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
)

// ChannelWebAI marks complaints submitted through the triage API.
const ChannelWebAI = "Web AI"

// Complaint represents a single complaint record in the enriched dataset.
// Immutable once normalized, except for StatusGroup and the raw Status
// column that shadows it.
type Complaint struct {
	Ticket        string `json:"ticket"`
	RawText       string `json:"raw_text"`
	CleanedText   string `json:"cleaned_text"`
	Category      string `json:"category"`
	StatusGroup   string `json:"status_group"`
	RawStatus     string `json:"raw_status"`
	Date          string `json:"date"`            // dd-mm-yyyy
	DateMonthYear string `json:"date_month_year"` // dd-Mon-yy
	Time          string `json:"time"`            // hh:mm:ss AM/PM
	ReceivedVia   string `json:"received_via"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
	OnBehalf      string `json:"filed_on_behalf"`
	Sentiment     string `json:"sentiment,omitempty"`
}

// SentimentResult holds the outcome of the sentiment heuristic.
type SentimentResult struct {
	Label         string `json:"label"`
	Indicator     string `json:"indicator"`
	NegativeCount int    `json:"negative_count"`
	PositiveCount int    `json:"positive_count"`
}

// CategoryResult holds the outcome of the learned classifier.
type CategoryResult struct {
	Label  string             `json:"label"`
	Scores map[string]float64 `json:"scores"` // softmax probability per category
}

// Playbook is a scripted resolution template selected from the category label.
type Playbook struct {
	Name       string `json:"name"`
	ActionPlan string `json:"action_plan"`
	AgentLine  string `json:"agent_line"`
}

// TriageResult combines all analyses for one complaint text.
type TriageResult struct {
	RawText          string             `json:"-"`
	CleanedText      string             `json:"cleaned_text"`
	Category         string             `json:"category"`
	CategoryScores   map[string]float64 `json:"category_scores"`
	Sentiment        SentimentResult    `json:"sentiment"`
	Priority         string             `json:"priority"`
	Playbook         Playbook           `json:"playbook"`
	ModelVersion     string             `json:"model_version"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
	TriagedAt        time.Time          `json:"triaged_at"`
}

// TriageRule is a keyword rule used to derive ground-truth categories during
// corpus preparation. Rules are evaluated in ascending Priority order; the
// first rule with at least one keyword hit wins.
type TriageRule struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
	Priority int      `json:"priority"`
	Enabled  bool     `json:"enabled"`
}

// TriageHistory is a persisted record of one inference call.
type TriageHistory struct {
	ID               int64     `db:"id"                 json:"id"`
	RawText          string    `db:"raw_text"           json:"raw_text"`
	Category         string    `db:"category"           json:"category"`
	Confidence       float64   `db:"confidence"         json:"confidence"`
	Sentiment        string    `db:"sentiment"          json:"sentiment"`
	Priority         string    `db:"priority"           json:"priority"`
	ModelVersion     string    `db:"model_version"      json:"model_version"`
	ProcessingTimeMs int64     `db:"processing_time_ms" json:"processing_time_ms"`
	TriagedAt        time.Time `db:"triaged_at"         json:"triaged_at"`
}
