package db

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// ImportSummary reports a completed Parquet load.
type ImportSummary struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// TableNameForFile derives a table identifier from a file path: the
// base name without extension, with every rune that is not a letter,
// digit or underscore replaced by an underscore. Distinct paths can
// collide after substitution; the resulting CREATE failure propagates
// to the caller.
func TableNameForFile(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, stem)
}

// ImportParquet loads a Parquet file into a new table via the engine's
// columnar reader. The table name defaults to one derived from the
// file name. A second statement reports the imported row count.
func (d *DB) ImportParquet(ctx context.Context, path, tableName string) (*ImportSummary, error) {
	conn, release, err := d.hold()
	if err != nil {
		return nil, err
	}
	defer release()

	if tableName == "" {
		tableName = TableNameForFile(path)
	}
	if tableName == "" {
		return nil, fmt.Errorf("cannot derive table name from path %q", path)
	}

	stmt := fmt.Sprintf("CREATE TABLE %s AS SELECT * FROM read_parquet('%s')", tableName, path)
	if _, err := conn.ExecContext(ctx, stmt); err != nil {
		return nil, classifyExec(stmt, err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", tableName)
	var rows int64
	if err := conn.QueryRowContext(ctx, countQuery).Scan(&rows); err != nil {
		return nil, &SQLError{Stmt: countQuery, Err: err}
	}

	d.logger.Info("parquet imported", "table", tableName, "rows", rows, "path", path)

	return &ImportSummary{Table: tableName, Rows: rows}, nil
}
