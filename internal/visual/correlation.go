package visual

import (
	"math"

	"edakit/domain/core"
	"edakit/domain/dataset"

	"gonum.org/v1/gonum/stat"
)

// NewCorrelationMatrix computes Pearson coefficients between every pair of
// columns over the rows where both values are present. Every column must be
// numeric.
func NewCorrelationMatrix(t *dataset.Table) (CorrelationMatrix, error) {
	for i := 0; i < t.NumColumns(); i++ {
		col := t.ColumnAt(i)
		if !col.Type.IsNumeric() {
			return CorrelationMatrix{}, core.NewNonNumericError(col.Name, col.Type.String())
		}
	}

	n := t.NumColumns()
	m := CorrelationMatrix{
		Title:        "Correlation Matrix of all Numerical Variables",
		Columns:      t.ColumnNames(),
		Coefficients: make([][]float64, n),
		Visible:      make([][]bool, n),
	}
	for i := 0; i < n; i++ {
		m.Coefficients[i] = make([]float64, n)
		m.Visible[i] = make([]bool, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			r := pairwiseCorrelation(t.ColumnAt(i), t.ColumnAt(j))
			m.Coefficients[i][j] = r
			m.Coefficients[j][i] = r
			m.Visible[i][j] = j < i
		}
	}
	return m, nil
}

func pairwiseCorrelation(a, b *dataset.Column) float64 {
	x := make([]float64, 0, a.Len())
	y := make([]float64, 0, b.Len())
	for i := 0; i < a.Len(); i++ {
		xv, okx := dataset.ToFloat(a.Values[i])
		yv, oky := dataset.ToFloat(b.Values[i])
		if okx && oky {
			x = append(x, xv)
			y = append(y, yv)
		}
	}
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}
