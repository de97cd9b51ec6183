package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_Info_Empty(t *testing.T) {
	d := openTestDB(t)

	info, err := d.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, info.TableCount)
	assert.Empty(t, info.RowCounts)
}

func TestDB_Info(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	_, err := d.Query(ctx, `CREATE TABLE users (id INTEGER, name VARCHAR)`)
	require.NoError(t, err)
	_, err = d.Query(ctx, `INSERT INTO users SELECT range, 'u' || range FROM range(7)`)
	require.NoError(t, err)
	_, err = d.Query(ctx, `CREATE TABLE empty_table (x DOUBLE)`)
	require.NoError(t, err)
	_, err = d.CreateIndex(ctx, "users", "id")
	require.NoError(t, err)

	info, err := d.Info(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, info.TableCount)
	assert.Equal(t, int64(7), info.RowCounts["users"])
	assert.Equal(t, int64(0), info.RowCounts["empty_table"])
	assert.Equal(t, "id INTEGER, name VARCHAR", info.TableSchemas["users"])
	assert.Equal(t, "x DOUBLE", info.TableSchemas["empty_table"])
	assert.Equal(t, []string{"idx_users_id"}, info.Indexes["users"])
	assert.Empty(t, info.Indexes["empty_table"])
}

func TestDB_Tables(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	_, err := d.Query(ctx, `CREATE TABLE orders (id INTEGER)`)
	require.NoError(t, err)
	_, err = d.Query(ctx, `INSERT INTO orders SELECT range FROM range(3)`)
	require.NoError(t, err)

	tables, err := d.Tables(ctx)
	require.NoError(t, err)

	require.Len(t, tables, 1)
	assert.Equal(t, "orders", tables[0].Name)
	assert.Equal(t, int64(3), tables[0].RowCount)
	assert.Equal(t, "id INTEGER", tables[0].Schema)
	assert.Empty(t, tables[0].Indexes)
}

func TestDB_Indexes(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	_, err := d.Query(ctx, `CREATE TABLE t1 (a INTEGER, b INTEGER)`)
	require.NoError(t, err)
	_, err = d.Query(ctx, `CREATE TABLE t2 (c INTEGER)`)
	require.NoError(t, err)

	_, err = d.CreateIndex(ctx, "t1", "a")
	require.NoError(t, err)
	_, err = d.CreateIndex(ctx, "t1", "b")
	require.NoError(t, err)
	_, err = d.CreateIndex(ctx, "t2", "c")
	require.NoError(t, err)

	indexes, err := d.Indexes(ctx)
	require.NoError(t, err)

	require.Len(t, indexes, 3)
	byName := map[string]string{}
	for _, idx := range indexes {
		byName[idx.Name] = idx.Table
	}
	assert.Equal(t, "t1", byName["idx_t1_a"])
	assert.Equal(t, "t1", byName["idx_t1_b"])
	assert.Equal(t, "t2", byName["idx_t2_c"])
}

func TestDB_Info_ViewsExcluded(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	_, err := d.Query(ctx, `CREATE TABLE base (id INTEGER)`)
	require.NoError(t, err)
	_, err = d.Query(ctx, `CREATE VIEW base_view AS SELECT * FROM base`)
	require.NoError(t, err)

	info, err := d.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, info.TableCount)
	assert.Contains(t, info.RowCounts, "base")
	assert.NotContains(t, info.RowCounts, "base_view")
}
