package db

import (
	"context"
	"fmt"
)

// IndexName returns the deterministic name for an index on the given
// table and column.
func IndexName(table, column string) string {
	return fmt.Sprintf("idx_%s_%s", table, column)
}

// CreateIndex creates an index named idx_<table>_<column>. An existing
// index of the same name fails as a name collision; nonexistent tables
// or columns are reported by the engine's own error. Returns the
// index name on success.
func (d *DB) CreateIndex(ctx context.Context, table, column string) (string, error) {
	conn, release, err := d.hold()
	if err != nil {
		return "", err
	}
	defer release()

	name := IndexName(table, column)
	stmt := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", name, table, column)
	if _, err := conn.ExecContext(ctx, stmt); err != nil {
		return "", classifyExec(stmt, err)
	}

	d.logger.Info("index created", "index", name, "table", table, "column", column)
	return name, nil
}
