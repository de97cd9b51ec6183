package db

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableNameForFile(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain", "sales.parquet", "sales"},
		{"space", "sales report.parquet", "sales_report"},
		{"dash", "a-1.parquet", "a_1"},
		{"underscore kept", "a_1.parquet", "a_1"},
		{"nested path", "/data/in/2024 q1.parquet", "2024_q1"},
		{"dots in stem", "my.data.parquet", "my_data"},
		{"no extension", "events", "events"},
		{"unicode letters kept", "café.parquet", "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TableNameForFile(tt.path))
		})
	}
}

// writeParquet materializes a Parquet file through the engine itself.
func writeParquet(t *testing.T, d *DB, query, path string) {
	t.Helper()
	_, err := d.Query(context.Background(), fmt.Sprintf("COPY (%s) TO '%s' (FORMAT PARQUET)", query, path))
	require.NoError(t, err)
}

func TestDB_ImportParquet(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	path := filepath.Join(t.TempDir(), "sales report.parquet")
	writeParquet(t, d, "SELECT range AS id, 'item-' || range AS sku FROM range(100)", path)

	summary, err := d.ImportParquet(ctx, path, "")
	require.NoError(t, err)
	assert.Equal(t, "sales_report", summary.Table)
	assert.Equal(t, int64(100), summary.Rows)

	res, err := d.Query(ctx, "SELECT COUNT(*) FROM sales_report")
	require.NoError(t, err)
	assert.Equal(t, "100", res.Rows[0][0])
}

func TestDB_ImportParquet_ExplicitName(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	path := filepath.Join(t.TempDir(), "raw.parquet")
	writeParquet(t, d, "SELECT range AS n FROM range(10)", path)

	summary, err := d.ImportParquet(ctx, path, "staging_events")
	require.NoError(t, err)
	assert.Equal(t, "staging_events", summary.Table)
	assert.Equal(t, int64(10), summary.Rows)
}

func TestDB_ImportParquet_Collision(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "events.parquet")
	writeParquet(t, d, "SELECT 1 AS a", path)

	_, err := d.ImportParquet(ctx, path, "")
	require.NoError(t, err)

	// Same derived name: table already exists.
	_, err = d.ImportParquet(ctx, path, "")
	require.ErrorIs(t, err, ErrNameCollision)
}

func TestDB_ImportParquet_MissingFile(t *testing.T) {
	d := openTestDB(t)

	_, err := d.ImportParquet(context.Background(), filepath.Join(t.TempDir(), "nope.parquet"), "")
	require.Error(t, err)

	// No table left behind.
	info, err := d.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, info.TableCount)
}
