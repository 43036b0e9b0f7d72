package profiling

import (
	"math"

	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/ports"
)

// DescriptiveStats computes per-column summary statistics. Every statistic is
// offered for a single column (Mean) and for the whole table (MeanAll).
// Whole-table numeric statistics skip non-numeric columns.
type DescriptiveStats struct {
	reporter ports.LineReporterPort
}

// NewDescriptiveStats creates a DescriptiveStats. A nil reporter silences the
// shape line.
func NewDescriptiveStats(reporter ports.LineReporterPort) *DescriptiveStats {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &DescriptiveStats{reporter: reporter}
}

// Dtype returns the declared element type of a column.
func (d *DescriptiveStats) Dtype(t *dataset.Table, column string) (dataset.ElementType, error) {
	col, err := t.Column(column)
	if err != nil {
		return "", err
	}
	return col.Type, nil
}

// Dtypes returns the declared element type of every column.
func (d *DescriptiveStats) Dtypes(t *dataset.Table) stats.ColumnTypes {
	ct := stats.ColumnTypes{
		Columns: t.ColumnNames(),
		Types:   make([]dataset.ElementType, t.NumColumns()),
	}
	for i := range ct.Columns {
		ct.Types[i] = t.ColumnAt(i).Type
	}
	return ct
}

// Mean of the non-null values of a column.
func (d *DescriptiveStats) Mean(t *dataset.Table, column string) (float64, error) {
	return d.numeric(t, column, Mean)
}

// MeanAll is Mean for every numeric column.
func (d *DescriptiveStats) MeanAll(t *dataset.Table) stats.ColumnStatSummary {
	return d.numericAll(t, stats.StatMean, Mean)
}

// Median of the non-null values of a column.
func (d *DescriptiveStats) Median(t *dataset.Table, column string) (float64, error) {
	return d.numeric(t, column, Median)
}

// MedianAll is Median for every numeric column.
func (d *DescriptiveStats) MedianAll(t *dataset.Table) stats.ColumnStatSummary {
	return d.numericAll(t, stats.StatMedian, Median)
}

// StandardDeviation is the sample standard deviation of the non-null values.
func (d *DescriptiveStats) StandardDeviation(t *dataset.Table, column string) (float64, error) {
	return d.numeric(t, column, StandardDeviation)
}

// StandardDeviationAll is StandardDeviation for every numeric column.
func (d *DescriptiveStats) StandardDeviationAll(t *dataset.Table) stats.ColumnStatSummary {
	return d.numericAll(t, stats.StatStandardDeviation, StandardDeviation)
}

// DistinctCount counts distinct values in a column, nulls counted once.
func (d *DescriptiveStats) DistinctCount(t *dataset.Table, column string) (int, error) {
	col, err := t.Column(column)
	if err != nil {
		return 0, err
	}
	return col.DistinctCount(), nil
}

// DistinctCountAll is DistinctCount for every column.
func (d *DescriptiveStats) DistinctCountAll(t *dataset.Table) stats.ColumnStatSummary {
	summary := stats.ColumnStatSummary{Statistic: stats.StatDistinctCount}
	for i := 0; i < t.NumColumns(); i++ {
		col := t.ColumnAt(i)
		summary.Values = append(summary.Values, stats.ColumnValue{Column: col.Name, Value: float64(col.DistinctCount())})
	}
	return summary
}

// Shape returns (rows, columns) and reports it as a readable line.
func (d *DescriptiveStats) Shape(t *dataset.Table) (rows, columns int) {
	rows, columns = t.Shape()
	d.reporter.Line("The table has %d columns and %d rows.", columns, rows)
	return rows, columns
}

func (d *DescriptiveStats) numeric(t *dataset.Table, column string, fn func([]float64) float64) (float64, error) {
	col, err := t.Column(column)
	if err != nil {
		return math.NaN(), err
	}
	values, err := col.Floats()
	if err != nil {
		return math.NaN(), err
	}
	return fn(values), nil
}

func (d *DescriptiveStats) numericAll(t *dataset.Table, statistic stats.Statistic, fn func([]float64) float64) stats.ColumnStatSummary {
	summary := stats.ColumnStatSummary{Statistic: statistic}
	for i := 0; i < t.NumColumns(); i++ {
		col := t.ColumnAt(i)
		if !col.Type.IsNumeric() {
			continue
		}
		values, _ := col.Floats()
		summary.Values = append(summary.Values, stats.ColumnValue{Column: col.Name, Value: fn(values)})
	}
	return summary
}
