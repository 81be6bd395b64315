package dataset

import (
	"time"

	"github.com/jonesrussell/telecom-triage/internal/domain"
)

// Summary aggregates the dataset for the manager-facing report.
type Summary struct {
	TotalComplaints int            `json:"total_complaints"`
	Resolved        int            `json:"resolved"`
	Unresolved      int            `json:"unresolved"`
	ResolutionRate  float64        `json:"resolution_rate"`
	ByCategory      map[string]int `json:"by_category"`
	BySentiment     map[string]int `json:"by_sentiment"`
	ByMonth         map[string]int `json:"by_month"` // keyed Jan-06
	ReceivedToday   int            `json:"received_today"`
	ResolvedToday   int            `json:"resolved_today"`
	PendingToday    int            `json:"pending_today"`
}

// Summarize computes dataset aggregates. "Today" is evaluated against the
// Date column in local time.
func (s *Store) Summarize() (*Summary, error) {
	complaints, err := s.Load()
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalComplaints: len(complaints),
		ByCategory:      make(map[string]int),
		BySentiment:     make(map[string]int),
		ByMonth:         make(map[string]int),
	}

	today := time.Now().Format(dateLayout)

	for _, c := range complaints {
		switch c.StatusGroup {
		case domain.StatusResolved:
			summary.Resolved++
		case domain.StatusUnresolved:
			summary.Unresolved++
		}

		if c.Category != "" {
			summary.ByCategory[c.Category]++
		}
		if c.Sentiment != "" {
			summary.BySentiment[c.Sentiment]++
		}
		if ts, err := time.Parse(monthYearLayout, c.DateMonthYear); err == nil {
			summary.ByMonth[ts.Format("Jan-06")]++
		}

		if c.Date == today {
			summary.ReceivedToday++
			switch c.StatusGroup {
			case domain.StatusResolved:
				summary.ResolvedToday++
			case domain.StatusUnresolved:
				summary.PendingToday++
			}
		}
	}

	if summary.TotalComplaints > 0 {
		summary.ResolutionRate = float64(summary.Resolved) / float64(summary.TotalComplaints)
	}

	return summary, nil
}
