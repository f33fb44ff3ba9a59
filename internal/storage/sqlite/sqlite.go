// Package sqlite provides a SQLite-backed implementation of the storage.Journal interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/expenses/internal/models"
	"github.com/mmynk/expenses/internal/storage"
)

// Ensure Journal implements storage.Journal
var _ storage.Journal = (*Journal)(nil)

// Journal implements storage.Journal using SQLite.
//
// Entity ids restart at 1 with every process, so each Journal opens a new
// run and only reads and writes entries of that run. Earlier runs stay in
// the file for offline inspection.
type Journal struct {
	db    *sql.DB
	runID string
	nowFn func() time.Time
}

// New creates a new Journal with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*Journal, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets History reads run while the service appends
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Journal{db: db, runID: uuid.NewString(), nowFn: time.Now}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Append records one accepted write.
func (j *Journal) Append(ctx context.Context, entry *storage.JournalEntry) error {
	// Generate ID and timestamp if not set
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.RecordedAt == 0 {
		entry.RecordedAt = j.nowFn().UnixMilli()
	}

	_, err := j.db.ExecContext(ctx,
		"INSERT INTO journal (id, run_id, entity_id, version, kind, payload, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		entry.ID, j.runID, entry.EntityID, entry.Version, string(entry.Kind), entry.Payload, entry.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return nil
}

// Entries returns every entry recorded for an entity, oldest version first.
func (j *Journal) Entries(ctx context.Context, entityID int64) ([]storage.JournalEntry, error) {
	rows, err := j.db.QueryContext(ctx,
		"SELECT id, entity_id, version, kind, payload, recorded_at FROM journal WHERE run_id = ? AND entity_id = ? ORDER BY version",
		j.runID, entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []storage.JournalEntry
	for rows.Next() {
		var (
			entry storage.JournalEntry
			kind  string
		)
		if err := rows.Scan(&entry.ID, &entry.EntityID, &entry.Version, &kind, &entry.Payload, &entry.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entry.Kind = models.Kind(kind)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal: %w", err)
	}

	return entries, nil
}
