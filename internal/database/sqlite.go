// Package database provides the embedded SQLite store used for triage
// history and its aggregate statistics.
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

const schema = `
CREATE TABLE IF NOT EXISTS triage_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	raw_text TEXT NOT NULL,
	category TEXT NOT NULL,
	confidence REAL NOT NULL,
	sentiment TEXT NOT NULL,
	priority TEXT NOT NULL,
	model_version TEXT NOT NULL,
	processing_time_ms INTEGER NOT NULL,
	triaged_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_triage_history_category ON triage_history(category);
CREATE INDEX IF NOT EXISTS idx_triage_history_triaged_at ON triage_history(triaged_at);
`

// Open connects to the SQLite database at path, creating the file and the
// schema on first use. The DSN enables WAL and a busy timeout so the HTTP
// handlers and background writers can share the file.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// sqlite serializes writers; one connection avoids lock contention.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return db, nil
}
