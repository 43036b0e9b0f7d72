package visual

import (
	"math"

	"edakit/domain/dataset"
)

func numericValues(t *dataset.Table, column string) ([]float64, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	return col.Floats()
}

// absLess orders by absolute value with NaN last.
func absLess(a, b float64) bool {
	if math.IsNaN(b) {
		return !math.IsNaN(a)
	}
	if math.IsNaN(a) {
		return false
	}
	return math.Abs(a) < math.Abs(b)
}
