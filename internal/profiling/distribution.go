package profiling

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Numeric kernels over the non-null values of a column. Empty input yields
// NaN rather than an error: aggregates of nothing are undefined, not failures.

// Mean returns the arithmetic mean.
func Mean(data []float64) float64 {
	mean, err := stats.Mean(data)
	if err != nil {
		return math.NaN()
	}
	return mean
}

// Median returns the middle value, averaging the two central values for even counts.
func Median(data []float64) float64 {
	median, err := stats.Median(data)
	if err != nil {
		return math.NaN()
	}
	return median
}

// StandardDeviation returns the sample standard deviation (n-1 denominator).
// Fewer than two values give NaN.
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return math.NaN()
	}
	std, err := stats.StandardDeviationSample(data)
	if err != nil {
		return math.NaN()
	}
	return std
}

// Skewness computes the adjusted Fisher-Pearson standardized moment
// coefficient G1. Fewer than three values give NaN; constant data gives 0.
func Skewness(data []float64) float64 {
	if len(data) < 3 {
		return math.NaN()
	}
	if isConstant(data) {
		return 0
	}
	return stat.Skew(data, nil)
}

// Quartiles returns Q1, median and Q3 using linear interpolation between
// closest ranks, the convention box plots are usually drawn with.
func Quartiles(data []float64) (q1, q2, q3 float64) {
	if len(data) == 0 {
		nan := math.NaN()
		return nan, nan, nan
	}
	sorted := sortedCopy(data)
	return interpolatedQuantile(sorted, 0.25), interpolatedQuantile(sorted, 0.5), interpolatedQuantile(sorted, 0.75)
}

// OutlierBounds returns the 1.5*IQR fences around the quartiles.
func OutlierBounds(q1, q3 float64) (lower, upper float64) {
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}

// DetectOutliers returns the values outside the IQR fences, in input order.
func DetectOutliers(data []float64) []float64 {
	q1, _, q3 := Quartiles(data)
	lower, upper := OutlierBounds(q1, q3)

	var outliers []float64
	for _, x := range data {
		if x < lower || x > upper {
			outliers = append(outliers, x)
		}
	}
	return outliers
}

// interpolatedQuantile expects sorted input.
func interpolatedQuantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func sortedCopy(data []float64) []float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	return sorted
}

func isConstant(data []float64) bool {
	for _, x := range data[1:] {
		if x != data[0] {
			return false
		}
	}
	return true
}
