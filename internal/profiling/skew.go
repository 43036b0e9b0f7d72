package profiling

import (
	"math"

	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/ports"
)

// SkewAnalyzer measures distribution asymmetry of numeric columns.
type SkewAnalyzer struct {
	reporter ports.LineReporterPort
}

// NewSkewAnalyzer creates a SkewAnalyzer. Skewness reports one line per
// column to reporter; nil discards them.
func NewSkewAnalyzer(reporter ports.LineReporterPort) *SkewAnalyzer {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &SkewAnalyzer{reporter: reporter}
}

// NumericColumns returns the columns whose declared element type is a signed
// integer or floating-point width. Booleans and strings never qualify, whatever
// their values look like.
func (a *SkewAnalyzer) NumericColumns(t *dataset.Table) []string {
	columns := []string{}
	for i := 0; i < t.NumColumns(); i++ {
		col := t.ColumnAt(i)
		if col.Type.IsNumeric() {
			columns = append(columns, col.Name)
		}
	}
	return columns
}

// Skewness computes the skewness of each named column over its non-null
// values and reports "<column>: <value>" to two decimals per column.
func (a *SkewAnalyzer) Skewness(t *dataset.Table, columns []string) (stats.SkewnessReport, error) {
	report := make(stats.SkewnessReport, 0, len(columns))
	for _, name := range columns {
		skew, err := a.columnSkewness(t, name)
		if err != nil {
			return nil, err
		}
		a.reporter.Line("%s: %.2f", name, skew)
		report = append(report, stats.ColumnValue{Column: name, Value: skew})
	}
	return report, nil
}

// SkewedColumns returns the numeric columns whose absolute skewness is at
// least threshold. Columns with undefined skewness are never included.
func (a *SkewAnalyzer) SkewedColumns(t *dataset.Table, threshold float64) []string {
	columns := []string{}
	for _, name := range a.NumericColumns(t) {
		skew, err := a.columnSkewness(t, name)
		if err != nil {
			continue
		}
		if math.Abs(skew) >= threshold {
			columns = append(columns, name)
		}
	}
	return columns
}

func (a *SkewAnalyzer) columnSkewness(t *dataset.Table, name string) (float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return math.NaN(), err
	}
	values, err := col.Floats()
	if err != nil {
		return math.NaN(), err
	}
	return Skewness(values), nil
}
