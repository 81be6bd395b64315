// Package dataset manages the enriched complaint dataset on disk. The
// dataset is a CSV file shared with the offline trainer, so every write
// rewrites the whole file atomically to keep it loadable at all times.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonesrussell/telecom-triage/internal/domain"
	"github.com/jonesrussell/telecom-triage/internal/logging"
)

// Enriched dataset column order. Raw source files may carry spaces in
// header names; they normalize to these on load.
var enrichedHeader = []string{
	"Ticket_#",
	"Customer_Complaint",
	"Date",
	"Date_month_year",
	"Time",
	"Received_Via",
	"City",
	"State",
	"Zip_code",
	"Status",
	"Filing_on_Behalf_of_Someone",
	"Complaint_Type",
	"Status_Group",
	"Cleaned_Complaint",
	"Customer_Sentiment",
}

// fallbackTicketBase seeds ticket numbers when no row has a numeric one.
const fallbackTicketBase = 1000

// Date layouts used in the dataset columns.
const (
	dateLayout      = "02-01-2006"
	monthYearLayout = "02-Jan-06"
	timeLayout      = "03:04:05 PM"
)

// ErrTicketNotFound is returned by UpdateStatus for an unknown ticket.
var ErrTicketNotFound = errors.New("ticket not found in dataset")

// Store is a mutex-guarded CSV-backed complaint store. One Store owns one
// file; do not point two stores at the same path.
type Store struct {
	mu     sync.Mutex
	path   string
	logger logging.Logger
}

// NewStore returns a store over the CSV file at path. The file does not
// need to exist yet; the first Append creates it.
func NewStore(path string, logger logging.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the dataset file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads every complaint row. A missing file yields an empty slice.
// Header names are normalized by replacing spaces with underscores, so
// both raw exports and enriched files load with the same code. Rows
// missing optional columns get zero values; a file without the
// Customer_Complaint column is rejected.
func (s *Store) Load() ([]domain.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() ([]domain.Complaint, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Complaint{}, nil
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return []domain.Complaint{}, nil
	}

	col := make(map[string]int, len(records[0]))
	for idx, name := range records[0] {
		col[strings.ReplaceAll(strings.TrimSpace(name), " ", "_")] = idx
	}
	if _, ok := col["Customer_Complaint"]; !ok {
		return nil, fmt.Errorf("dataset %s: missing Customer_Complaint column", s.path)
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	complaints := make([]domain.Complaint, 0, len(records)-1)
	for _, row := range records[1:] {
		complaints = append(complaints, domain.Complaint{
			Ticket:        field(row, "Ticket_#"),
			RawText:       field(row, "Customer_Complaint"),
			CleanedText:   field(row, "Cleaned_Complaint"),
			Category:      field(row, "Complaint_Type"),
			StatusGroup:   field(row, "Status_Group"),
			RawStatus:     field(row, "Status"),
			Date:          field(row, "Date"),
			DateMonthYear: field(row, "Date_month_year"),
			Time:          field(row, "Time"),
			ReceivedVia:   field(row, "Received_Via"),
			City:          field(row, "City"),
			State:         field(row, "State"),
			ZipCode:       field(row, "Zip_code"),
			OnBehalf:      field(row, "Filing_on_Behalf_of_Someone"),
			Sentiment:     field(row, "Customer_Sentiment"),
		})
	}

	return complaints, nil
}

// Append records a freshly triaged complaint. The ticket number, date and
// channel columns are filled in here; callers supply text, category,
// status group and sentiment. Returns the assigned ticket.
func (s *Store) Append(c domain.Complaint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	complaints, err := s.loadLocked()
	if err != nil {
		return "", err
	}

	now := time.Now()
	c.Ticket = nextTicket(complaints)
	c.Date = now.Format(dateLayout)
	c.DateMonthYear = now.Format(monthYearLayout)
	c.Time = now.Format(timeLayout)
	c.ReceivedVia = domain.ChannelWebAI
	c.City = "Not Provided"
	c.State = "Not Provided"
	c.ZipCode = "0"
	c.OnBehalf = "No"
	c.RawStatus = rawStatusFor(c.StatusGroup)

	complaints = append(complaints, c)
	if err := s.writeLocked(complaints); err != nil {
		return "", err
	}

	if s.logger != nil {
		s.logger.Info("complaint recorded",
			logging.String("ticket", c.Ticket),
			logging.String("category", c.Category),
			logging.Int("rows", len(complaints)))
	}

	return c.Ticket, nil
}

// UpdateStatus moves a ticket between Resolved and Unresolved. The raw
// Status column shadows the group: Resolved maps to Solved, Unresolved
// to Open.
func (s *Store) UpdateStatus(ticket, statusGroup string) error {
	if statusGroup != domain.StatusResolved && statusGroup != domain.StatusUnresolved {
		return fmt.Errorf("invalid status group %q", statusGroup)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	complaints, err := s.loadLocked()
	if err != nil {
		return err
	}

	found := false
	for i := range complaints {
		if complaints[i].Ticket == ticket {
			complaints[i].StatusGroup = statusGroup
			complaints[i].RawStatus = rawStatusFor(statusGroup)
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrTicketNotFound, ticket)
	}

	return s.writeLocked(complaints)
}

// Replace overwrites the whole dataset. The trainer uses this to publish
// the enriched file in one step.
func (s *Store) Replace(complaints []domain.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(complaints)
}

// writeLocked rewrites the file via temp-and-rename so readers never see
// a truncated dataset.
func (s *Store) writeLocked(complaints []domain.Complaint) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dataset dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create dataset temp file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(enrichedHeader); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write dataset header: %w", err)
	}

	for _, c := range complaints {
		row := []string{
			c.Ticket,
			c.RawText,
			c.Date,
			c.DateMonthYear,
			c.Time,
			c.ReceivedVia,
			c.City,
			c.State,
			c.ZipCode,
			c.RawStatus,
			c.OnBehalf,
			c.Category,
			c.StatusGroup,
			c.CleanedText,
			c.Sentiment,
		}
		if err := w.Write(row); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("write dataset row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flush dataset: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close dataset temp file: %w", err)
	}

	return os.Rename(tmp, s.path)
}

// nextTicket picks max numeric ticket plus one. Datasets whose tickets
// are all non-numeric fall back to row count plus a fixed base.
func nextTicket(complaints []domain.Complaint) string {
	maxTicket := -1
	for _, c := range complaints {
		if n, err := strconv.Atoi(strings.TrimSpace(c.Ticket)); err == nil && n > maxTicket {
			maxTicket = n
		}
	}
	if maxTicket < 0 {
		return strconv.Itoa(len(complaints) + fallbackTicketBase)
	}
	return strconv.Itoa(maxTicket + 1)
}

// rawStatusFor maps a status group to the legacy Status column value.
func rawStatusFor(statusGroup string) string {
	if statusGroup == domain.StatusResolved {
		return domain.RawStatusSolved
	}
	return domain.RawStatusOpen
}

// StatusGroupFor derives the status group from a raw Status value the way
// the trainer normalizes source data: anything containing "Solved" counts
// as resolved.
func StatusGroupFor(rawStatus string) string {
	if strings.Contains(rawStatus, domain.RawStatusSolved) {
		return domain.StatusResolved
	}
	return domain.StatusUnresolved
}
