package db

import (
	"context"
	"fmt"
	"strings"
)

// DatabaseInfo is a point-in-time snapshot of the catalog. It is
// recomputed on every call; no caching and no snapshot isolation
// beyond the engine's own.
type DatabaseInfo struct {
	TableCount   int                 `json:"table_count"`
	RowCounts    map[string]int64    `json:"row_counts"`
	TableSchemas map[string]string   `json:"table_schemas"`
	Indexes      map[string][]string `json:"indices"`
}

// TableInfo describes one table in the catalog.
type TableInfo struct {
	Name     string   `json:"name"`
	RowCount int64    `json:"row_count"`
	Schema   string   `json:"schema"`
	Indexes  []string `json:"indices"`
}

// IndexInfo describes one index in the catalog.
type IndexInfo struct {
	Name  string `json:"name"`
	Table string `json:"table"`
}

// tableEntry preserves catalog iteration order, which the maps in
// DatabaseInfo cannot.
type tableEntry struct {
	name    string
	rows    int64
	schema  string
	indexes []string
}

// Info assembles a full catalog snapshot: for each table a row count,
// a joined "name TYPE" schema string, and the list of index names.
// Three round-trips per table; any sub-query failure aborts the whole
// snapshot.
func (d *DB) Info(ctx context.Context) (*DatabaseInfo, error) {
	conn, release, err := d.hold()
	if err != nil {
		return nil, err
	}
	defer release()

	entries, err := snapshot(ctx, conn)
	if err != nil {
		return nil, err
	}

	info := &DatabaseInfo{
		TableCount:   len(entries),
		RowCounts:    make(map[string]int64, len(entries)),
		TableSchemas: make(map[string]string, len(entries)),
		Indexes:      make(map[string][]string, len(entries)),
	}
	for _, e := range entries {
		info.RowCounts[e.name] = e.rows
		info.TableSchemas[e.name] = e.schema
		info.Indexes[e.name] = e.indexes
	}
	return info, nil
}

// Tables returns per-table snapshot entries in catalog order.
func (d *DB) Tables(ctx context.Context) ([]TableInfo, error) {
	conn, release, err := d.hold()
	if err != nil {
		return nil, err
	}
	defer release()

	entries, err := snapshot(ctx, conn)
	if err != nil {
		return nil, err
	}

	tables := make([]TableInfo, 0, len(entries))
	for _, e := range entries {
		tables = append(tables, TableInfo{
			Name:     e.name,
			RowCount: e.rows,
			Schema:   e.schema,
			Indexes:  e.indexes,
		})
	}
	return tables, nil
}

// Indexes returns every index in the catalog, grouped by table in
// catalog order.
func (d *DB) Indexes(ctx context.Context) ([]IndexInfo, error) {
	conn, release, err := d.hold()
	if err != nil {
		return nil, err
	}
	defer release()

	entries, err := snapshot(ctx, conn)
	if err != nil {
		return nil, err
	}

	indexes := make([]IndexInfo, 0)
	for _, e := range entries {
		for _, name := range e.indexes {
			indexes = append(indexes, IndexInfo{Name: name, Table: e.name})
		}
	}
	return indexes, nil
}

// snapshot runs the catalog queries against an already-held
// connection. Callers own the lock; snapshot never re-acquires it.
func snapshot(ctx context.Context, conn queryer) ([]tableEntry, error) {
	rows, err := conn.QueryContext(ctx,
		`SELECT table_name FROM information_schema.tables WHERE table_schema = 'main' AND table_type = 'BASE TABLE'`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	entries := make([]tableEntry, 0, len(names))
	for _, name := range names {
		e := tableEntry{name: name}

		// Catalog-sourced identifier, interpolated as-is.
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", name)
		if err := conn.QueryRowContext(ctx, countQuery).Scan(&e.rows); err != nil {
			return nil, fmt.Errorf("failed to count rows in %s: %w", name, err)
		}

		schema, err := tableSchema(ctx, conn, name)
		if err != nil {
			return nil, err
		}
		e.schema = schema

		indexes, err := tableIndexes(ctx, conn, name)
		if err != nil {
			return nil, err
		}
		e.indexes = indexes

		entries = append(entries, e)
	}
	return entries, nil
}

// tableSchema joins column name/type pairs in ordinal order.
func tableSchema(ctx context.Context, conn queryer, table string) (string, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = 'main' AND table_name = ?
		ORDER BY ordinal_position
	`, table)
	if err != nil {
		return "", fmt.Errorf("failed to query columns of %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var parts []string
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return "", fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		parts = append(parts, name+" "+typ)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("error iterating columns of %s: %w", table, err)
	}
	return strings.Join(parts, ", "), nil
}

func tableIndexes(ctx context.Context, conn queryer, table string) ([]string, error) {
	rows, err := conn.QueryContext(ctx,
		`SELECT index_name FROM duckdb_indexes() WHERE table_name = ?`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query indexes of %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	indexes := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan index of %s: %w", table, err)
		}
		indexes = append(indexes, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating indexes of %s: %w", table, err)
	}
	return indexes, nil
}
