package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexName(t *testing.T) {
	assert.Equal(t, "idx_t_c", IndexName("t", "c"))
	assert.Equal(t, "idx_sales_report_region", IndexName("sales_report", "region"))
}

func TestDB_CreateIndex(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	_, err := d.Query(ctx, `CREATE TABLE t (c INTEGER)`)
	require.NoError(t, err)

	name, err := d.CreateIndex(ctx, "t", "c")
	require.NoError(t, err)
	assert.Equal(t, "idx_t_c", name)
}

func TestDB_CreateIndex_Duplicate(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	_, err := d.Query(ctx, `CREATE TABLE t (c INTEGER)`)
	require.NoError(t, err)

	_, err = d.CreateIndex(ctx, "t", "c")
	require.NoError(t, err)

	_, err = d.CreateIndex(ctx, "t", "c")
	require.ErrorIs(t, err, ErrNameCollision)
}

func TestDB_CreateIndex_MissingObjects(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	tests := []struct {
		name   string
		setup  string
		table  string
		column string
	}{
		{"missing table", "", "no_table", "c"},
		{"missing column", "CREATE TABLE present (a INTEGER)", "present", "no_column"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != "" {
				_, err := d.Query(ctx, tt.setup)
				require.NoError(t, err)
			}
			_, err := d.CreateIndex(ctx, tt.table, tt.column)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrNameCollision)
		})
	}
}
