package visual

import (
	"fmt"

	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/internal/profiling"
)

// CompareSkewTransforms shows a numeric column as is and under the log,
// Box-Cox and Yeo-Johnson transforms. Box-Cox is left out when the column
// holds zero or negative values.
func CompareSkewTransforms(t *dataset.Table, column string) (TransformComparison, error) {
	values, err := numericValues(t, column)
	if err != nil {
		return TransformComparison{}, err
	}

	cmp := TransformComparison{Column: column}
	for _, kind := range stats.AllTransforms {
		if kind == stats.TransformBoxCox && !allPositive(values) {
			continue
		}
		transformed, lambda, err := Transform(values, kind)
		if err != nil {
			return TransformComparison{}, fmt.Errorf("%s transform of '%s': %w", kind, column, err)
		}
		cmp.Panels = append(cmp.Panels, panelFor(column, kind, transformed, lambda))
	}
	return cmp, nil
}

// BeforeAfterTransform compares Q-Q plots of a column in two snapshots of a
// table, typically before and after a skew correction.
func BeforeAfterTransform(before, after *dataset.Table, column string) (BeforeAfter, error) {
	bq, err := NewQQPlot(before, column)
	if err != nil {
		return BeforeAfter{}, fmt.Errorf("before: %w", err)
	}
	aq, err := NewQQPlot(after, column)
	if err != nil {
		return BeforeAfter{}, fmt.Errorf("after: %w", err)
	}
	bq.Title = "Q-Q Plot: Before"
	aq.Title = "Q-Q Plot: After"
	return BeforeAfter{Column: column, BeforeQQ: &bq, AfterQQ: &aq}, nil
}

// BeforeAfterOutlierRemoval compares box plots and histograms of a column in
// two snapshots of a table, typically before and after dropping outliers.
func BeforeAfterOutlierRemoval(before, after *dataset.Table, column string) (BeforeAfter, error) {
	bb, err := NewBoxPlot(before, column)
	if err != nil {
		return BeforeAfter{}, fmt.Errorf("before: %w", err)
	}
	ab, err := NewBoxPlot(after, column)
	if err != nil {
		return BeforeAfter{}, fmt.Errorf("after: %w", err)
	}
	bh, err := NewHistogram(before, column, 0)
	if err != nil {
		return BeforeAfter{}, fmt.Errorf("before: %w", err)
	}
	ah, err := NewHistogram(after, column, 0)
	if err != nil {
		return BeforeAfter{}, fmt.Errorf("after: %w", err)
	}

	bb.Title, ab.Title = "Box Plot: Before", "Box Plot: After"
	bh.Title, ah.Title = "Histogram: Before", "Histogram: After"
	return BeforeAfter{Column: column, BeforeBox: &bb, AfterBox: &ab, BeforeHistogram: &bh, AfterHistogram: &ah}, nil
}

// RemoveOutliers returns a copy of the table without the rows whose value in
// column lies outside the 1.5*IQR fences. Rows with a null in column are kept.
func RemoveOutliers(t *dataset.Table, column string) (*dataset.Table, error) {
	values, err := numericValues(t, column)
	if err != nil {
		return nil, err
	}
	q1, _, q3 := profiling.Quartiles(values)
	lower, upper := profiling.OutlierBounds(q1, q3)

	col, _ := t.Column(column)
	var rows [][]any
	for i := 0; i < t.NumRows(); i++ {
		if v, ok := dataset.ToFloat(col.Values[i]); ok && (v < lower || v > upper) {
			continue
		}
		rows = append(rows, t.Row(i))
	}

	types := make([]dataset.ElementType, t.NumColumns())
	for j := range types {
		types[j] = t.ColumnAt(j).Type
	}
	return dataset.NewTableFromRows(t.Name, t.ColumnNames(), types, rows)
}

func panelFor(column string, kind stats.TransformKind, values []float64, lambda float64) TransformPanel {
	h := histogramOf(values, 0)
	q := qqOf(values)
	h.Column, q.Column = column, column
	h.Title = fmt.Sprintf("%s Histogram", transformTitle(kind))
	q.Title = fmt.Sprintf("%s Q-Q Plot", transformTitle(kind))

	p := TransformPanel{
		Transform: kind,
		Values:    values,
		Histogram: h,
		QQ:        q,
		Skewness:  h.Skewness,
	}
	if kind == stats.TransformBoxCox || kind == stats.TransformYeoJohnson {
		p.Lambda = lambda
	}
	return p
}

func transformTitle(kind stats.TransformKind) string {
	switch kind {
	case stats.TransformLog:
		return "Log Transformed"
	case stats.TransformBoxCox:
		return "Box-Cox Transformed"
	case stats.TransformYeoJohnson:
		return "Yeo-Johnson Transformed"
	}
	return "Original"
}

func allPositive(values []float64) bool {
	for _, x := range values {
		if x <= 0 {
			return false
		}
	}
	return true
}
