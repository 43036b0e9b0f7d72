package visual

import (
	"fmt"
	"math"
	"sort"

	"edakit/domain/dataset"
	"edakit/internal/profiling"

	"gonum.org/v1/gonum/stat"
)

// NewHistogram bins the non-null values of a numeric column. bins <= 0 picks
// Sturges' rule.
func NewHistogram(t *dataset.Table, column string, bins int) (Histogram, error) {
	values, err := numericValues(t, column)
	if err != nil {
		return Histogram{}, err
	}
	h := histogramOf(values, bins)
	h.Column = column
	h.Title = column
	return h, nil
}

// SkewnessHistogram is a histogram titled with the column's skewness.
func SkewnessHistogram(t *dataset.Table, column string) (Histogram, error) {
	h, err := NewHistogram(t, column, 0)
	if err != nil {
		return Histogram{}, err
	}
	h.Title = fmt.Sprintf("%s (Skewness: %.2f)", column, h.Skewness)
	return h, nil
}

// FacetHistograms returns one histogram per column, in the order given.
func FacetHistograms(t *dataset.Table, columns []string, bins int) ([]Histogram, error) {
	out := make([]Histogram, 0, len(columns))
	for _, column := range columns {
		h, err := NewHistogram(t, column, bins)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func histogramOf(values []float64, bins int) Histogram {
	h := Histogram{Total: len(values), Skewness: profiling.Skewness(values)}
	if len(values) == 0 {
		return h
	}
	if bins <= 0 {
		bins = sturges(len(values))
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		bins = 1
	}
	dividers := make([]float64, bins+1)
	width := (hi - lo) / float64(bins)
	for i := range dividers {
		dividers[i] = lo + float64(i)*width
	}
	// stat.Histogram treats the last divider as exclusive.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	h.Bins = make([]Bin, bins)
	for i := range h.Bins {
		h.Bins[i] = Bin{Lower: dividers[i], Upper: dividers[i+1], Count: int(counts[i])}
	}
	return h
}

func sturges(n int) int {
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}
