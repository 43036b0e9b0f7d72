package visual

import (
	"sort"

	"edakit/domain/dataset"
	"edakit/internal/profiling"

	"gonum.org/v1/gonum/stat/distuv"
)

// NewQQPlot compares the non-null values of a numeric column with the
// standard normal distribution, using plotting positions i/(n+1).
func NewQQPlot(t *dataset.Table, column string) (QQPlot, error) {
	values, err := numericValues(t, column)
	if err != nil {
		return QQPlot{}, err
	}
	q := qqOf(values)
	q.Column = column
	q.Title = column + " Q-Q Plot"
	return q, nil
}

func qqOf(values []float64) QQPlot {
	q := QQPlot{Skewness: profiling.Skewness(values)}
	n := len(values)
	if n == 0 {
		return q
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	q.Points = make([]QQPoint, n)
	for i, v := range sorted {
		p := float64(i+1) / float64(n+1)
		q.Points[i] = QQPoint{Theoretical: distuv.UnitNormal.Quantile(p), Sample: v}
	}

	// Reference line through the quartiles of both distributions.
	x25, x75 := distuv.UnitNormal.Quantile(0.25), distuv.UnitNormal.Quantile(0.75)
	y25, _, y75 := profiling.Quartiles(sorted)
	q.Slope = (y75 - y25) / (x75 - x25)
	q.Intercept = y25 - q.Slope*x25
	return q
}
