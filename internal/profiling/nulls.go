package profiling

import (
	"math"

	"edakit/domain/core"
	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/ports"
)

// NullAnalyzer measures missing values per column.
//
// Percentages use the total row count as denominator. A zero-row table has an
// undefined percentage, reported as NaN.
type NullAnalyzer struct {
	reporter ports.LineReporterPort
}

// NewNullAnalyzer creates a NullAnalyzer. The reporter receives the verbose
// output of ColumnsWithNulls; nil discards it.
func NewNullAnalyzer(reporter ports.LineReporterPort) *NullAnalyzer {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &NullAnalyzer{reporter: reporter}
}

// NullCount counts missing values in a column.
func (a *NullAnalyzer) NullCount(t *dataset.Table, column string) (int, error) {
	col, err := t.Column(column)
	if err != nil {
		return 0, err
	}
	return col.NullCount(), nil
}

// NullCountAll is NullCount for every column.
func (a *NullAnalyzer) NullCountAll(t *dataset.Table) stats.ColumnStatSummary {
	summary := stats.ColumnStatSummary{Statistic: stats.StatNullCount}
	for i := 0; i < t.NumColumns(); i++ {
		col := t.ColumnAt(i)
		summary.Values = append(summary.Values, stats.ColumnValue{Column: col.Name, Value: float64(col.NullCount())})
	}
	return summary
}

// NullPercentage is NullCount / rows * 100 for a column.
func (a *NullAnalyzer) NullPercentage(t *dataset.Table, column string) (float64, error) {
	col, err := t.Column(column)
	if err != nil {
		return math.NaN(), err
	}
	return percentage(col.NullCount(), t.NumRows()), nil
}

// NullPercentageAll is NullPercentage for every column.
func (a *NullAnalyzer) NullPercentageAll(t *dataset.Table) stats.ColumnStatSummary {
	summary := stats.ColumnStatSummary{Statistic: stats.StatNullPercentage}
	for i := 0; i < t.NumColumns(); i++ {
		col := t.ColumnAt(i)
		summary.Values = append(summary.Values, stats.ColumnValue{Column: col.Name, Value: percentage(col.NullCount(), t.NumRows())})
	}
	return summary
}

// NullColumns lists the columns holding at least one null, with their null
// percentage, in table order.
func (a *NullAnalyzer) NullColumns(t *dataset.Table) stats.NullColumnReport {
	report := stats.NullColumnReport{}
	for i := 0; i < t.NumColumns(); i++ {
		col := t.ColumnAt(i)
		if n := col.NullCount(); n > 0 {
			report = append(report, stats.NullColumn{Column: col.Name, Percentage: percentage(n, t.NumRows())})
		}
	}
	return report
}

// ColumnsWithNulls returns the names of columns with at least one null. When
// verbose, each column's null percentage is reported to one decimal place.
func (a *NullAnalyzer) ColumnsWithNulls(t *dataset.Table, verbose bool) []string {
	report := a.NullColumns(t)
	if verbose {
		for _, nc := range report {
			a.reporter.Line("%s: %.1f%%", nc.Column, nc.Percentage)
		}
	}
	return report.Columns()
}

// ColumnsByNullThreshold returns the columns with nulls whose null percentage
// compares to thresholdPercent with op. LessThan additionally requires a
// percentage above zero, so fully populated columns are never listed.
func (a *NullAnalyzer) ColumnsByNullThreshold(t *dataset.Table, op stats.Comparator, thresholdPercent float64) ([]string, error) {
	if op != stats.GreaterThan && op != stats.LessThan {
		return nil, core.NewInvalidComparisonError(string(op))
	}

	columns := []string{}
	for _, nc := range a.NullColumns(t) {
		switch op {
		case stats.GreaterThan:
			if nc.Percentage > thresholdPercent {
				columns = append(columns, nc.Column)
			}
		case stats.LessThan:
			if nc.Percentage < thresholdPercent && nc.Percentage > 0 {
				columns = append(columns, nc.Column)
			}
		}
	}
	return columns, nil
}

func percentage(count, rows int) float64 {
	if rows == 0 {
		return math.NaN()
	}
	return float64(count) / float64(rows) * 100
}
