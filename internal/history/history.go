// Package history records boundary operations in a local SQLite
// store. Recording is best-effort: a history failure never blocks or
// fails the operation it describes.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // sqlite driver
)

// Entry is one recorded operation.
type Entry struct {
	ID         string    `json:"id"`
	Operation  string    `json:"operation"`
	Detail     string    `json:"detail"`
	Status     string    `json:"status"`
	DurationMs float64   `json:"duration_ms"`
	StartedAt  time.Time `json:"started_at"`
}

// Store persists operation history.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the history database at path and runs
// pending migrations. Use ":memory:" for an in-memory store.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping history store: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends one entry. Failures are logged, not propagated.
// Calling Record on a nil store is a no-op.
func (s *Store) Record(ctx context.Context, op, detail, status string, startedAt time.Time, duration time.Duration) {
	if s == nil || s.db == nil {
		return
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO operations (id, operation, detail, status, duration_ms, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		uuid.New().String(),
		op,
		detail,
		status,
		float64(duration.Microseconds())/1000.0,
		startedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		s.logger.Warn("failed to record operation", "operation", op, "error", err)
	}
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("history store not opened")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, operation, detail, status, duration_ms, started_at
		FROM operations
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var startedAt string
		if err := rows.Scan(&e.ID, &e.Operation, &e.Detail, &e.Status, &e.DurationMs, &startedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339Nano, startedAt); perr == nil {
			e.StartedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}
	return entries, nil
}
