package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/duckbridge/internal/db"
)

// renderResult writes a query result in the requested format.
func renderResult(w io.Writer, res *db.QueryResult, format string) error {
	switch format {
	case "json":
		return renderJSON(w, res)
	case "csv":
		return renderCSV(w, res)
	case "md", "markdown":
		return renderMarkdown(w, res)
	default:
		return renderTable(w, res)
	}
}

func renderTable(w io.Writer, res *db.QueryResult) error {
	if res.RowCount == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(res.ColumnNames))
	for i, col := range res.ColumnNames {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, cells := range res.Rows {
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows in %.2f ms)\n", res.RowCount, res.ExecutionTimeMs)
	return nil
}

func renderJSON(w io.Writer, res *db.QueryResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func renderCSV(w io.Writer, res *db.QueryResult) error {
	_, _ = fmt.Fprintln(w, strings.Join(res.ColumnNames, ","))

	for _, cells := range res.Rows {
		values := make([]string, len(cells))
		for i, cell := range cells {
			values[i] = escapeCSV(cell)
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, res *db.QueryResult) error {
	if res.RowCount == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(res.ColumnNames, " | "))
	seps := make([]string, len(res.ColumnNames))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, cells := range res.Rows {
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
