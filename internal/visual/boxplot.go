package visual

import (
	"edakit/domain/dataset"
	"edakit/internal/profiling"
)

// NewBoxPlot summarises a numeric column for a box plot.
func NewBoxPlot(t *dataset.Table, column string) (BoxPlot, error) {
	values, err := numericValues(t, column)
	if err != nil {
		return BoxPlot{}, err
	}
	b := boxOf(values)
	b.Column = column
	b.Title = column
	return b, nil
}

// FacetBoxPlots returns one box plot per column, in the order given.
func FacetBoxPlots(t *dataset.Table, columns []string) ([]BoxPlot, error) {
	out := make([]BoxPlot, 0, len(columns))
	for _, column := range columns {
		b, err := NewBoxPlot(t, column)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func boxOf(values []float64) BoxPlot {
	q1, median, q3 := profiling.Quartiles(values)
	b := BoxPlot{Q1: q1, Median: median, Q3: q3, LowerWhisker: q1, UpperWhisker: q3}
	if len(values) == 0 {
		return b
	}

	lower, upper := profiling.OutlierBounds(q1, q3)
	first := true
	for _, v := range values {
		if v < lower || v > upper {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		// Whiskers end at the most extreme values inside the fences.
		if first {
			b.LowerWhisker, b.UpperWhisker = v, v
			first = false
			continue
		}
		if v < b.LowerWhisker {
			b.LowerWhisker = v
		}
		if v > b.UpperWhisker {
			b.UpperWhisker = v
		}
	}
	return b
}
