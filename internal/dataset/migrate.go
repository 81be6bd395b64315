package dataset

import (
	"github.com/jonesrussell/telecom-triage/internal/logging"
	"github.com/jonesrussell/telecom-triage/internal/sentiment"
)

// BackfillSentiment fills the Customer_Sentiment column for rows that
// predate it. Rows that already carry a sentiment are left untouched.
// Returns the number of rows updated.
func (s *Store) BackfillSentiment() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	complaints, err := s.loadLocked()
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range complaints {
		if complaints[i].Sentiment != "" {
			continue
		}
		complaints[i].Sentiment = sentiment.Analyze(complaints[i].RawText).Label
		updated++
	}

	if updated == 0 {
		return 0, nil
	}

	if err := s.writeLocked(complaints); err != nil {
		return 0, err
	}

	if s.logger != nil {
		s.logger.Info("sentiment backfill complete",
			logging.Int("rows_updated", updated),
			logging.Int("rows_total", len(complaints)))
	}

	return updated, nil
}
