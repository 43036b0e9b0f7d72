package visual

import (
	"math"

	"edakit/domain/dataset"
)

// NewMissingMatrix marks every null cell of the table. Percentages of a
// zero-row table are NaN, as in NullAnalyzer.
func NewMissingMatrix(t *dataset.Table) MissingMatrix {
	m := MissingMatrix{
		Columns:     t.ColumnNames(),
		Rows:        t.NumRows(),
		Missing:     make([][]bool, t.NumColumns()),
		Percentages: make([]float64, t.NumColumns()),
	}
	for j := 0; j < t.NumColumns(); j++ {
		col := t.ColumnAt(j)
		mask := make([]bool, col.Len())
		nulls := 0
		for i := range mask {
			if col.IsNull(i) {
				mask[i] = true
				nulls++
			}
		}
		m.Missing[j] = mask
		if m.Rows > 0 {
			m.Percentages[j] = float64(nulls) / float64(m.Rows) * 100
		} else {
			m.Percentages[j] = math.NaN()
		}
	}
	return m
}
