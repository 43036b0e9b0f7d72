package excel

import (
	"fmt"
	"math"

	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/internal"
	"edakit/internal/errors"
	"edakit/ports"

	"github.com/xuri/excelize/v2"
)

var _ ports.WorkbookExporterPort = (*WorkbookExporter)(nil)

// Sheet names written by WorkbookExporter
const (
	SheetData     = "data"
	SheetSummary  = "summary"
	SheetNulls    = "nulls"
	SheetSkewness = "skewness"
)

var summaryHeader = []interface{}{
	"column", "type", "mean", "median", "std", "distinct", "null_count", "null_pct", "skewness",
}

// WorkbookExporter writes a table and its profile to an XLSX workbook
type WorkbookExporter struct {
	logger *internal.Logger
}

// NewWorkbookExporter creates a workbook exporter
func NewWorkbookExporter() *WorkbookExporter {
	return &WorkbookExporter{logger: internal.DefaultLogger.With("Workbook")}
}

// Export writes the data, summary, nulls and skewness sheets. The nulls sheet
// carries a column chart of null percentages when any column has nulls.
func (e *WorkbookExporter) Export(table *dataset.Table, profile *stats.TableProfile, path string) error {
	if profile == nil {
		return errors.InvalidInput("workbook export needs a table profile")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetData); err != nil {
		return errors.ExportFailed(path, err)
	}
	for _, sheet := range []string{SheetSummary, SheetNulls, SheetSkewness} {
		if _, err := f.NewSheet(sheet); err != nil {
			return errors.ExportFailed(path, err)
		}
	}

	if err := writeDataSheet(f, table); err != nil {
		return errors.ExportFailed(path, err)
	}
	if err := writeSummarySheet(f, profile); err != nil {
		return errors.ExportFailed(path, err)
	}
	nullRows, err := writeNullsSheet(f, profile)
	if err != nil {
		return errors.ExportFailed(path, err)
	}
	if nullRows > 0 {
		if err := addNullChart(f, nullRows); err != nil {
			return errors.ExportFailed(path, err)
		}
	}
	if err := writeSkewnessSheet(f, profile); err != nil {
		return errors.ExportFailed(path, err)
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return errors.ExportFailed(path, err)
	}
	e.logger.Info("wrote workbook %s (%d rows, %d columns)", path, table.NumRows(), table.NumColumns())
	return nil
}

func writeDataSheet(f *excelize.File, table *dataset.Table) error {
	header := make([]interface{}, 0, table.NumColumns())
	for _, name := range table.ColumnNames() {
		header = append(header, name)
	}
	if err := setRow(f, SheetData, 1, header); err != nil {
		return err
	}
	for i := 0; i < table.NumRows(); i++ {
		row := table.Row(i)
		for j, v := range row {
			row[j] = cellValue(v)
		}
		if err := setRow(f, SheetData, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, profile *stats.TableProfile) error {
	if err := setRow(f, SheetSummary, 1, summaryHeader); err != nil {
		return err
	}
	for i, c := range profile.Columns {
		row := []interface{}{
			c.Column, string(c.Type),
			cellValue(c.Mean), cellValue(c.Median), cellValue(c.StdDev),
			c.DistinctCount, c.NullCount, cellValue(c.NullPercentage), cellValue(c.Skewness),
		}
		if err := setRow(f, SheetSummary, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeNullsSheet lists columns with at least one null and returns how many
func writeNullsSheet(f *excelize.File, profile *stats.TableProfile) (int, error) {
	if err := setRow(f, SheetNulls, 1, []interface{}{"column", "null_pct"}); err != nil {
		return 0, err
	}
	n := 0
	for _, c := range profile.Columns {
		if c.NullCount == 0 {
			continue
		}
		n++
		if err := setRow(f, SheetNulls, n+1, []interface{}{c.Column, cellValue(c.NullPercentage)}); err != nil {
			return 0, err
		}
	}
	return n, nil
}

func writeSkewnessSheet(f *excelize.File, profile *stats.TableProfile) error {
	if err := setRow(f, SheetSkewness, 1, []interface{}{"column", "skewness"}); err != nil {
		return err
	}
	n := 0
	for _, c := range profile.Columns {
		if !c.Type.IsNumeric() {
			continue
		}
		n++
		if err := setRow(f, SheetSkewness, n+1, []interface{}{c.Column, cellValue(c.Skewness)}); err != nil {
			return err
		}
	}
	return nil
}

func addNullChart(f *excelize.File, rows int) error {
	last := rows + 1
	return f.AddChart(SheetNulls, "D2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", SheetNulls),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetNulls, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", SheetNulls, last),
			},
		},
		Title: []excelize.RichTextRun{{Text: "Null percentage by column"}},
	})
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// cellValue blanks nulls and non-finite floats, which spreadsheets cannot store
func cellValue(v any) interface{} {
	if dataset.IsNull(v) {
		return nil
	}
	if f, ok := v.(float64); ok && math.IsInf(f, 0) {
		return nil
	}
	return v
}
