package db

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"edakit/domain/dataset"
	"edakit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteConnector(t *testing.T) *Connector {
	t.Helper()
	ctx := context.Background()
	c, err := Connect(ctx, "sqlite3", filepath.Join(t.TempDir(), "loans.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	_, err = c.db.ExecContext(ctx, `CREATE TABLE loan_payments (
		id INTEGER,
		loan_amount REAL,
		grade TEXT,
		verified BOOLEAN,
		issue_date DATE
	)`)
	require.NoError(t, err)
	_, err = c.db.ExecContext(ctx, `INSERT INTO loan_payments VALUES
		(1, 1000.5, 'A', 1, '2021-01-15'),
		(2, NULL, 'B', 0, '2021-02-01'),
		(3, 250.0, NULL, 1, NULL)`)
	require.NoError(t, err)
	return c
}

func TestExtractTable(t *testing.T) {
	c := newSQLiteConnector(t)

	tbl, err := c.ExtractTable(context.Background(), "loan_payments")
	require.NoError(t, err)

	rows, cols := tbl.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 5, cols)
	assert.Equal(t, []string{"id", "loan_amount", "grade", "verified", "issue_date"}, tbl.ColumnNames())

	id, _ := tbl.Column("id")
	assert.Equal(t, dataset.TypeInt64, id.Type)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, id.Values)

	amount, _ := tbl.Column("loan_amount")
	assert.Equal(t, dataset.TypeFloat64, amount.Type)
	assert.Equal(t, 1, amount.NullCount())

	grade, _ := tbl.Column("grade")
	assert.Equal(t, dataset.TypeString, grade.Type)
	assert.Equal(t, []any{"A", "B", nil}, grade.Values)

	verified, _ := tbl.Column("verified")
	assert.Equal(t, dataset.TypeBool, verified.Type)
	assert.Equal(t, []any{true, false, true}, verified.Values)

	issued, _ := tbl.Column("issue_date")
	assert.Equal(t, dataset.TypeTimestamp, issued.Type)
	require.IsType(t, time.Time{}, issued.Values[0])
	assert.Equal(t, 2021, issued.Values[0].(time.Time).Year())
	assert.Nil(t, issued.Values[2])
}

func TestExtractTableRejectsBadNames(t *testing.T) {
	c := newSQLiteConnector(t)

	for _, name := range []string{"", "loans; DROP TABLE x", "1abc", "a.b.c", `"quoted"`} {
		_, err := c.ExtractTable(context.Background(), name)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err), name)
	}

	_, err := c.ExtractTable(context.Background(), "missing_table")
	assert.Equal(t, errors.CodeDatabaseError, errors.GetCode(err))
}

func TestConnectUnsupportedDriver(t *testing.T) {
	_, err := Connect(context.Background(), "oracle", "whatever")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestMapColumnType(t *testing.T) {
	var tests = []struct {
		driver string
		dbType string
		want   dataset.ElementType
	}{
		{"postgres", "INT2", dataset.TypeInt16},
		{"postgres", "INT4", dataset.TypeInt32},
		{"postgres", "INT8", dataset.TypeInt64},
		{"sqlite", "integer", dataset.TypeInt64},
		{"postgres", "FLOAT4", dataset.TypeFloat32},
		{"postgres", "REAL", dataset.TypeFloat32},
		{"sqlite", "REAL", dataset.TypeFloat64},
		{"postgres", "NUMERIC", dataset.TypeFloat64},
		{"mysql", "DECIMAL(10,2)", dataset.TypeFloat64},
		{"mysql", "DOUBLE", dataset.TypeFloat64},
		{"postgres", "BOOL", dataset.TypeBool},
		{"postgres", "DATE", dataset.TypeTimestamp},
		{"postgres", "TIMESTAMPTZ", dataset.TypeTimestamp},
		{"postgres", "VARCHAR", dataset.TypeString},
		{"postgres", "", dataset.TypeString},
		{"mysql", "UNSIGNED TINYINT", dataset.TypeInt16},
		{"mysql", "UNSIGNED SMALLINT", dataset.TypeInt32},
		{"mysql", "UNSIGNED MEDIUMINT", dataset.TypeInt32},
		{"mysql", "UNSIGNED INT", dataset.TypeInt64},
		{"mysql", "UNSIGNED BIGINT", dataset.TypeInt64},
		{"mysql", "UNSIGNED DECIMAL", dataset.TypeFloat64},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapColumnType(tt.driver, tt.dbType), tt.driver+"/"+tt.dbType)
	}
}

func TestUnsignedColumnsKeepTheirValues(t *testing.T) {
	var tests = []struct {
		dbType string
		raw    string
		want   any
	}{
		{"UNSIGNED SMALLINT", "65535", int32(65535)},
		{"UNSIGNED INT", "4000000000", int64(4000000000)},
		{"UNSIGNED TINYINT", "255", int16(255)},
	}

	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			got, err := convertValue([]byte(tt.raw), MapColumnType("mysql", tt.dbType))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := convertValue([]byte("18446744073709551615"), MapColumnType("mysql", "UNSIGNED BIGINT"))
	assert.Error(t, err)
}

func TestConvertValue(t *testing.T) {
	var tests = []struct {
		name    string
		in      any
		et      dataset.ElementType
		want    any
		wantErr bool
	}{
		{"null", nil, dataset.TypeInt64, nil, false},
		{"int16 narrowing", int64(7), dataset.TypeInt16, int16(7), false},
		{"numeric bytes", []byte("12.50"), dataset.TypeFloat64, 12.5, false},
		{"float32", 1.5, dataset.TypeFloat32, float32(1.5), false},
		{"bool text", []byte("t"), dataset.TypeBool, true, false},
		{"bool int", int64(0), dataset.TypeBool, false, false},
		{"string bytes", []byte("abc"), dataset.TypeString, "abc", false},
		{"string from int", int64(3), dataset.TypeString, "3", false},
		{"bad int", "x", dataset.TypeInt64, nil, true},
		{"fractional int", 1.5, dataset.TypeInt32, nil, true},
		{"int16 overflow", int64(40000), dataset.TypeInt16, nil, true},
		{"int32 overflow", []byte("4000000000"), dataset.TypeInt32, nil, true},
		{"uint64 overflow", uint64(math.MaxUint64), dataset.TypeInt64, nil, true},
		{"uint64 in range", uint64(42), dataset.TypeInt64, int64(42), false},
		{"date text", "2022-03-04", dataset.TypeTimestamp, time.Date(2022, 3, 4, 0, 0, 0, 0, time.UTC), false},
		{"bad date", "yesterday", dataset.TypeTimestamp, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertValue(tt.in, tt.et)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"public"."loans"`, quoteIdentifier("postgres", "public.loans"))
	assert.Equal(t, "`loans`", quoteIdentifier("mysql", "loans"))
	assert.Equal(t, "[dbo].[loans]", quoteIdentifier("sqlserver", "dbo.loans"))
}
