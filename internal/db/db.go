// Package db implements the duckbridge access layer over an embedded
// DuckDB database. A single process-wide connection is guarded by a
// mutex; every operation serializes against it and fails fast when no
// connection has been opened.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// queryer is the subset of *sql.DB the catalog queries need.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB owns the single connection to the embedded engine.
type DB struct {
	mu     sync.Mutex
	conn   *sql.DB
	path   string
	logger *slog.Logger
}

// New creates a DB with no connection. Call Open before any other
// operation. A nil logger discards all output.
func New(logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DB{logger: logger}
}

// Open establishes the connection to DuckDB. An empty path opens an
// in-memory database. Reopening is allowed and replaces the previous
// handle; the old connection is closed. On failure no handle is
// installed.
func (d *DB) Open(ctx context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}

	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	if d.conn != nil {
		_ = d.conn.Close()
	}
	d.conn = conn
	d.path = path

	d.logger.Debug("database opened", "path", dsn)
	return nil
}

// Close closes the connection if one is open.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

// IsOpen reports whether a connection is currently installed.
func (d *DB) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conn != nil
}

// hold acquires the connection lock and returns the live handle. The
// returned release func must be called on every exit path.
func (d *DB) hold() (*sql.DB, func(), error) {
	d.mu.Lock()
	if d.conn == nil {
		d.mu.Unlock()
		return nil, nil, ErrNotInitialized
	}
	return d.conn, d.mu.Unlock, nil
}
