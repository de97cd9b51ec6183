package db

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Value{Kind: KindNull}, "NULL"},
		{"integer", Value{Kind: KindInteger, Int: 42}, "42"},
		{"negative", Value{Kind: KindInteger, Int: -1}, "-1"},
		{"real", Value{Kind: KindReal, Real: 3.25}, "3.25"},
		{"text", Value{Kind: KindText, Text: "hi"}, "hi"},
		{"blob", Value{Kind: KindBlob, Bytes: 12}, "BLOB(12)"},
		{"error", Value{Kind: KindError}, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValueOf(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		raw    any
		isBlob bool
		want   string
	}{
		{"nil", nil, false, "NULL"},
		{"int64", int64(9), false, "9"},
		{"int32", int32(-3), false, "-3"},
		{"float64", float64(0.5), false, "0.5"},
		{"float32", float32(2), false, "2"},
		{"string", "abc", false, "abc"},
		{"invalid utf8 is replaced", string([]byte{0x61, 0xff, 0x62}), false, "a�b"},
		{"bytes as text", []byte("xyz"), false, "xyz"},
		{"bytes as blob", []byte{1, 2, 3}, true, "BLOB(3)"},
		{"bool", true, false, "true"},
		{"time", ts, false, "2024-03-01T12:00:00Z"},
		{"unknown type degrades to text", struct{ A int }{7}, false, "{7}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, valueOf(tt.raw, tt.isBlob).String())
		})
	}
}

// Drives the marshaler through a mocked driver to pin down behavior
// the real engine cannot conveniently produce, like blob columns mixed
// with nulls in one row.
func TestDB_Query_MockedCells(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	cols := []*sqlmock.Column{
		sqlmock.NewColumn("payload").OfType("BLOB", []byte{}),
		sqlmock.NewColumn("note").OfType("VARCHAR", ""),
	}
	rows := sqlmock.NewRowsWithColumnDefinition(cols...).
		AddRow([]byte{0xCA, 0xFE}, "ok").
		AddRow(nil, nil)
	mock.ExpectQuery("SELECT payload, note FROM things").WillReturnRows(rows)

	d := New(nil)
	d.conn = conn

	res, err := d.Query(context.Background(), "SELECT payload, note FROM things")
	require.NoError(t, err)

	require.Equal(t, int64(2), res.RowCount)
	assert.Equal(t, []string{"BLOB(2)", "ok"}, res.Rows[0])
	assert.Equal(t, []string{"NULL", "NULL"}, res.Rows[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}
