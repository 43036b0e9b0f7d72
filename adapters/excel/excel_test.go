package excel

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const loansCSV = `id,loan_amount,grade,term,issue_date
1,1000.5,A,36 months,2021-01-15
2,,B,60 months,2021-02-01
3,250,A,,2021-03-10
4,75.25,B,36 months,
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTableCSV(t *testing.T) {
	tbl, err := NewDataReader(writeFile(t, "loans.csv", loansCSV)).ReadTable()
	require.NoError(t, err)

	assert.Equal(t, "loans", tbl.Name)
	rows, cols := tbl.Shape()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 5, cols)

	var tests = []struct {
		column string
		et     dataset.ElementType
		nulls  int
	}{
		{"id", dataset.TypeInt64, 0},
		{"loan_amount", dataset.TypeFloat64, 1},
		{"grade", dataset.TypeCategorical, 0},
		{"term", dataset.TypeString, 1},
		{"issue_date", dataset.TypeTimestamp, 1},
	}
	for _, tt := range tests {
		col, err := tbl.Column(tt.column)
		require.NoError(t, err)
		assert.Equal(t, tt.et, col.Type, tt.column)
		assert.Equal(t, tt.nulls, col.NullCount(), tt.column)
	}
}

func TestReadTableShortRowsArePadded(t *testing.T) {
	tbl, err := NewDataReader(writeFile(t, "short.csv", "a,b\n1,x\n2\n")).ReadTable()
	require.NoError(t, err)
	b, _ := tbl.Column("b")
	assert.Equal(t, []any{"x", nil}, b.Values)
}

func TestReadTableMissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv")).ReadTable()
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestReadTableXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loans.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"id", "rate"},
		{1, 0.5},
		{2, nil},
		{3, 1.25},
	}
	for i, row := range rows {
		require.NoError(t, setRow(f, sheet, i+1, row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := NewDataReader(path).ReadTable()
	require.NoError(t, err)

	id, _ := tbl.Column("id")
	assert.Equal(t, dataset.TypeInt64, id.Type)
	rate, _ := tbl.Column("rate")
	assert.Equal(t, dataset.TypeFloat64, rate.Type)
	assert.Equal(t, []any{0.5, nil, 1.25}, rate.Values)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	day := time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC)
	tbl := dataset.MustTable("t",
		dataset.NewColumn("a", dataset.TypeInt64, []any{int64(1), nil, int64(3)}),
		dataset.NewColumn("f", dataset.TypeFloat64, []any{1.0, math.NaN(), 2.5}),
		dataset.NewColumn("s", dataset.TypeString, []any{"x,y", "z", nil}),
		dataset.NewColumn("d", dataset.TypeTimestamp, []any{day, day, nil}),
	)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, CSVWriter{}.WriteTable(tbl, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,f,s,d\n1,1.0,\"x,y\",2021-01-15\n,,z,2021-01-15\n3,2.5,,\n", string(raw))

	back, err := NewDataReader(path).ReadTable()
	require.NoError(t, err)
	a, _ := back.Column("a")
	assert.Equal(t, []any{int64(1), nil, int64(3)}, a.Values)
	f, _ := back.Column("f")
	assert.Equal(t, dataset.TypeFloat64, f.Type)
	assert.Equal(t, 1, f.NullCount())
}

func TestWorkbookExport(t *testing.T) {
	tbl := dataset.MustTable("loans",
		dataset.NewColumn("a", dataset.TypeInt64, []any{int64(1), int64(2), nil, int64(4)}),
		dataset.NewColumn("b", dataset.TypeString, []any{"x", "y", "z", "w"}),
	)
	profile := &stats.TableProfile{
		TableID: tbl.ID,
		Table:   tbl.Name,
		Rows:    4,
		Columns: []stats.ColumnProfile{
			{Column: "a", Type: dataset.TypeInt64, Mean: 7.0 / 3, Median: 2, StdDev: 1.5275252316519468,
				DistinctCount: 4, NullCount: 1, NullPercentage: 25, Skewness: 0.935219529582},
			{Column: "b", Type: dataset.TypeString, Mean: math.NaN(), Median: math.NaN(), StdDev: math.NaN(),
				DistinctCount: 4, Skewness: math.NaN()},
		},
	}

	path := filepath.Join(t.TempDir(), "eda.xlsx")
	require.NoError(t, NewWorkbookExporter().Export(tbl, profile, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetData, SheetSummary, SheetNulls, SheetSkewness}, f.GetSheetList())

	data, err := f.GetRows(SheetData)
	require.NoError(t, err)
	assert.Len(t, data, 5)
	assert.Equal(t, []string{"a", "b"}, data[0])
	assert.Equal(t, "", data[3][0])

	nulls, err := f.GetRows(SheetNulls)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"column", "null_pct"}, {"a", "25"}}, nulls)

	skew, err := f.GetRows(SheetSkewness)
	require.NoError(t, err)
	assert.Len(t, skew, 2)
	assert.Equal(t, "a", skew[1][0])

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, "b", summary[2][0])
	assert.Equal(t, "", summary[2][2], "NaN mean is left blank")
}

func TestWorkbookExportNeedsProfile(t *testing.T) {
	tbl := dataset.MustTable("t")
	err := NewWorkbookExporter().Export(tbl, nil, filepath.Join(t.TempDir(), "x.xlsx"))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
