package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"edakit/domain/dataset"
	"edakit/internal/errors"
	"edakit/ports"
)

var _ ports.TableExporterPort = CSVWriter{}

// CSVWriter saves tables as comma-separated text
type CSVWriter struct{}

// WriteTable implements ports.TableExporterPort
func (CSVWriter) WriteTable(table *dataset.Table, path string) error {
	return WriteCSV(table, path)
}

// WriteCSV writes a header row followed by one record per table row. Nulls
// become empty cells.
func WriteCSV(table *dataset.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.ExportFailed(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.ColumnNames()); err != nil {
		return errors.ExportFailed(path, err)
	}
	record := make([]string, table.NumColumns())
	for i := 0; i < table.NumRows(); i++ {
		for j, v := range table.Row(i) {
			record[j] = formatCell(v)
		}
		if err := w.Write(record); err != nil {
			return errors.ExportFailed(path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.ExportFailed(path, err)
	}
	return nil
}

// formatCell renders a cell so the reader infers the same element type back
func formatCell(v any) string {
	if dataset.IsNull(v) {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Equal(x.Truncate(24 * time.Hour)) {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339)
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	}
	if f, ok := dataset.ToFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// formatFloat keeps a decimal point on whole floats so they read back as floats
func formatFloat(f float64, bitSize int) string {
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}
