package db

import (
	"context"
	"strings"
	"time"
)

// QueryResult is the transport-safe shape of one query execution.
// Every cell is pre-stringified; RowCount always equals len(Rows).
type QueryResult struct {
	ColumnNames     []string   `json:"column_names"`
	Rows            [][]string `json:"rows"`
	RowCount        int64      `json:"row_count"`
	ExecutionTimeMs float64    `json:"execution_time_ms"`
}

// Query executes raw SQL text and materializes the complete result
// set. The connection lock is held for the whole execution; the
// reported time covers execution only, not any wait for the lock.
// Rows come back in the engine's output order.
func (d *DB) Query(ctx context.Context, sqlText string) (*QueryResult, error) {
	conn, release, err := d.hold()
	if err != nil {
		return nil, err
	}
	defer release()

	start := time.Now()

	rows, err := conn.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, &SQLError{Stmt: sqlText, Err: err}
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &SQLError{Stmt: sqlText, Err: err}
	}

	// Blob columns need to be told apart from text the driver hands
	// over as []byte.
	blob := make([]bool, len(cols))
	if types, terr := rows.ColumnTypes(); terr == nil {
		for i, t := range types {
			blob[i] = strings.EqualFold(t.DatabaseTypeName(), "BLOB")
		}
	}

	out := make([][]string, 0)
	raw := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	for rows.Next() {
		rec := make([]string, len(cols))
		if err := rows.Scan(ptrs...); err != nil {
			// A failed read marks this row's cells, not the query.
			for i := range rec {
				rec[i] = Value{Kind: KindError}.String()
			}
			out = append(out, rec)
			continue
		}
		for i, v := range raw {
			rec[i] = valueOf(v, blob[i]).String()
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &SQLError{Stmt: sqlText, Err: err}
	}

	elapsed := time.Since(start)

	d.logger.Debug("query executed", "rows", len(out), "elapsed", elapsed)

	return &QueryResult{
		ColumnNames:     cols,
		Rows:            out,
		RowCount:        int64(len(out)),
		ExecutionTimeMs: float64(elapsed.Microseconds()) / 1000.0,
	}, nil
}
