package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/duckbridge/internal/db"
)

func sampleResult() *db.QueryResult {
	return &db.QueryResult{
		ColumnNames:     []string{"id", "name"},
		Rows:            [][]string{{"1", "alice"}, {"2", "bo,b"}},
		RowCount:        2,
		ExecutionTimeMs: 1.25,
	}
}

func TestRenderResult_Table(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, renderResult(&sb, sampleResult(), "table"))

	out := sb.String()
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "(2 rows in 1.25 ms)")
}

func TestRenderResult_JSON(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, renderResult(&sb, sampleResult(), "json"))

	out := sb.String()
	assert.Contains(t, out, `"column_names"`)
	assert.Contains(t, out, `"row_count": 2`)
}

func TestRenderResult_CSV(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, renderResult(&sb, sampleResult(), "csv"))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name", lines[0])
	assert.Equal(t, `2,"bo,b"`, lines[2])
}

func TestRenderResult_Markdown(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, renderResult(&sb, sampleResult(), "md"))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| id | name |", lines[0])
	assert.Equal(t, "| --- | --- |", lines[1])
}

func TestRenderResult_EmptyTable(t *testing.T) {
	var sb strings.Builder
	empty := &db.QueryResult{ColumnNames: []string{"a"}, Rows: [][]string{}}
	require.NoError(t, renderResult(&sb, empty, "table"))
	assert.Equal(t, "(0 rows)\n", sb.String())
}
