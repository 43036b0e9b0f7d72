package stats

import (
	"edakit/domain/core"
	"edakit/domain/dataset"
)

// ============================================================================
// PER-COLUMN RESULTS
// ============================================================================

// Statistic names a per-column scalar that can be requested for one column or
// for the whole table.
type Statistic string

const (
	StatMean              Statistic = "mean"
	StatMedian            Statistic = "median"
	StatStandardDeviation Statistic = "std"
	StatDistinctCount     Statistic = "distinct"
	StatNullCount         Statistic = "null_count"
	StatNullPercentage    Statistic = "null_pct"
)

// NumericOnly reports whether the statistic skips non-numeric columns when
// applied to a whole table.
func (s Statistic) NumericOnly() bool {
	switch s {
	case StatMean, StatMedian, StatStandardDeviation:
		return true
	}
	return false
}

// ColumnValue pairs a column name with a computed scalar.
type ColumnValue struct {
	Column string  `json:"column"`
	Value  float64 `json:"value"`
}

// ColumnStatSummary maps column name to a computed scalar. Order follows the
// table's column order so reports are stable.
type ColumnStatSummary struct {
	Statistic Statistic     `json:"statistic"`
	Values    []ColumnValue `json:"values"`
}

// Get returns the value for a column.
func (s ColumnStatSummary) Get(column string) (float64, bool) {
	for _, v := range s.Values {
		if v.Column == column {
			return v.Value, true
		}
	}
	return 0, false
}

// Map returns the summary as a plain mapping.
func (s ColumnStatSummary) Map() map[string]float64 {
	m := make(map[string]float64, len(s.Values))
	for _, v := range s.Values {
		m[v.Column] = v.Value
	}
	return m
}

// Columns returns the column names in summary order.
func (s ColumnStatSummary) Columns() []string {
	names := make([]string, len(s.Values))
	for i, v := range s.Values {
		names[i] = v.Column
	}
	return names
}

// ColumnTypes maps column name to declared element type, in table order.
type ColumnTypes struct {
	Columns []string              `json:"columns"`
	Types   []dataset.ElementType `json:"types"`
}

// Get returns the element type for a column.
func (c ColumnTypes) Get(column string) (dataset.ElementType, bool) {
	for i, name := range c.Columns {
		if name == column {
			return c.Types[i], true
		}
	}
	return "", false
}

// ColumnProfile is every descriptive statistic for one column.
type ColumnProfile struct {
	Column         string              `json:"column"`
	Type           dataset.ElementType `json:"type"`
	Mean           float64             `json:"mean"`
	Median         float64             `json:"median"`
	StdDev         float64             `json:"std"`
	DistinctCount  int                 `json:"distinct_count"`
	NullCount      int                 `json:"null_count"`
	NullPercentage float64             `json:"null_percentage"`
	Skewness       float64             `json:"skewness"`
}

// TableProfile is the whole-table summary built from per-column profiles.
type TableProfile struct {
	TableID core.ID         `json:"table_id"`
	Table   string          `json:"table"`
	Rows    int             `json:"rows"`
	Columns []ColumnProfile `json:"columns"`
}

// ============================================================================
// NULL AND SKEW REPORTS
// ============================================================================

// NullColumn is one entry of a NullColumnReport.
type NullColumn struct {
	Column     string  `json:"column"`
	Percentage float64 `json:"percentage"`
}

// NullColumnReport lists columns with at least one null, in table order.
type NullColumnReport []NullColumn

// Columns returns the column names of the report.
func (r NullColumnReport) Columns() []string {
	names := make([]string, len(r))
	for i, nc := range r {
		names[i] = nc.Column
	}
	return names
}

// SkewnessReport maps column name to skewness coefficient, in request order.
type SkewnessReport []ColumnValue

// Map returns the report as a plain mapping.
func (r SkewnessReport) Map() map[string]float64 {
	m := make(map[string]float64, len(r))
	for _, v := range r {
		m[v.Column] = v.Value
	}
	return m
}

// ============================================================================
// NULL THRESHOLD COMPARATORS
// ============================================================================

// Comparator selects how a column's null percentage is compared to a threshold.
type Comparator string

const (
	GreaterThan Comparator = ">"
	LessThan    Comparator = "<"
)

// ParseComparator accepts ">"/"<" and the spelled-out forms. Anything else is
// an InvalidComparisonOperator error.
func ParseComparator(s string) (Comparator, error) {
	switch s {
	case ">", "gt", "greaterThan", "greater_than":
		return GreaterThan, nil
	case "<", "lt", "lessThan", "less_than":
		return LessThan, nil
	}
	return "", core.NewInvalidComparisonError(s)
}

// ============================================================================
// SKEW TRANSFORMS
// ============================================================================

// TransformKind names a skew-correcting transform.
type TransformKind string

const (
	TransformNone       TransformKind = "original"
	TransformLog        TransformKind = "log"
	TransformBoxCox     TransformKind = "box-cox"
	TransformYeoJohnson TransformKind = "yeo-johnson"
)

// AllTransforms lists the transforms in comparison order.
var AllTransforms = []TransformKind{TransformNone, TransformLog, TransformBoxCox, TransformYeoJohnson}
