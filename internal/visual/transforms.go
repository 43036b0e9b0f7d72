package visual

import (
	"fmt"
	"math"

	"edakit/domain/core"
	"edakit/domain/dataset"
	"edakit/domain/stats"

	"gonum.org/v1/gonum/stat"
)

// Lambda search interval and tolerance for the maximum-likelihood fits.
const (
	lambdaLow       = -5.0
	lambdaHigh      = 5.0
	lambdaTolerance = 1e-6
)

// LogTransform takes the natural log of positive values and maps everything
// else to 0.
func LogTransform(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, x := range values {
		if x > 0 {
			out[i] = math.Log(x)
		}
	}
	return out
}

// BoxCox applies the Box-Cox transform with the maximum-likelihood lambda.
// All values must be strictly positive.
func BoxCox(values []float64) ([]float64, float64, error) {
	if len(values) == 0 {
		return nil, math.NaN(), core.NewUndefinedResultError("box-cox", "no values")
	}
	var sumLog float64
	for _, x := range values {
		if x <= 0 {
			return nil, math.NaN(), core.NewUndefinedResultError("box-cox", "data must be strictly positive")
		}
		sumLog += math.Log(x)
	}
	if isConstantSlice(values) {
		return nil, math.NaN(), core.NewUndefinedResultError("box-cox", "data is constant")
	}

	n := float64(len(values))
	llf := func(lambda float64) float64 {
		return (lambda-1)*sumLog - n/2*math.Log(stat.Variance(boxCoxWith(values, lambda), nil))
	}
	lambda := maximize(llf, lambdaLow, lambdaHigh)
	return boxCoxWith(values, lambda), lambda, nil
}

// YeoJohnson applies the Yeo-Johnson transform with the maximum-likelihood
// lambda. Unlike Box-Cox it accepts zero and negative values.
func YeoJohnson(values []float64) ([]float64, float64, error) {
	if len(values) == 0 {
		return nil, math.NaN(), core.NewUndefinedResultError("yeo-johnson", "no values")
	}
	if isConstantSlice(values) {
		return nil, math.NaN(), core.NewUndefinedResultError("yeo-johnson", "data is constant")
	}
	var sumSignedLog float64
	for _, x := range values {
		if x >= 0 {
			sumSignedLog += math.Log1p(x)
		} else {
			sumSignedLog -= math.Log1p(-x)
		}
	}

	n := float64(len(values))
	llf := func(lambda float64) float64 {
		return (lambda-1)*sumSignedLog - n/2*math.Log(stat.Variance(yeoJohnsonWith(values, lambda), nil))
	}
	lambda := maximize(llf, lambdaLow, lambdaHigh)
	return yeoJohnsonWith(values, lambda), lambda, nil
}

// Transform applies kind to values. Lambda is NaN for transforms without one.
func Transform(values []float64, kind stats.TransformKind) ([]float64, float64, error) {
	switch kind {
	case stats.TransformNone:
		out := make([]float64, len(values))
		copy(out, values)
		return out, math.NaN(), nil
	case stats.TransformLog:
		return LogTransform(values), math.NaN(), nil
	case stats.TransformBoxCox:
		return BoxCox(values)
	case stats.TransformYeoJohnson:
		return YeoJohnson(values)
	}
	return nil, math.NaN(), fmt.Errorf("%w: %q", core.ErrInvalidTransform, kind)
}

// ApplyTransform returns a copy of the table where column is replaced by its
// transformed values as float64. Nulls stay null.
func ApplyTransform(t *dataset.Table, column string, kind stats.TransformKind) (*dataset.Table, float64, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, math.NaN(), err
	}
	values, err := col.Floats()
	if err != nil {
		return nil, math.NaN(), err
	}
	transformed, lambda, err := Transform(values, kind)
	if err != nil {
		return nil, lambda, err
	}

	cells := make([]any, col.Len())
	next := 0
	for i := range cells {
		if col.IsNull(i) {
			continue
		}
		cells[i] = transformed[next]
		next++
	}
	out, err := t.WithColumn(dataset.NewColumn(column, dataset.TypeFloat64, cells))
	return out, lambda, err
}

func boxCoxWith(values []float64, lambda float64) []float64 {
	out := make([]float64, len(values))
	for i, x := range values {
		if math.Abs(lambda) < 1e-12 {
			out[i] = math.Log(x)
		} else {
			out[i] = (math.Pow(x, lambda) - 1) / lambda
		}
	}
	return out
}

func yeoJohnsonWith(values []float64, lambda float64) []float64 {
	out := make([]float64, len(values))
	for i, x := range values {
		switch {
		case x >= 0 && math.Abs(lambda) < 1e-12:
			out[i] = math.Log1p(x)
		case x >= 0:
			out[i] = (math.Pow(x+1, lambda) - 1) / lambda
		case math.Abs(lambda-2) < 1e-12:
			out[i] = -math.Log1p(-x)
		default:
			out[i] = -(math.Pow(1-x, 2-lambda) - 1) / (2 - lambda)
		}
	}
	return out
}

// maximize runs a golden-section search for the maximum of a unimodal f on [lo, hi].
func maximize(f func(float64) float64, lo, hi float64) float64 {
	invPhi := (math.Sqrt(5) - 1) / 2
	a, b := lo, hi
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc, fd := f(c), f(d)
	for b-a > lambdaTolerance {
		if fc > fd {
			b, d, fd = d, c, fc
			c = b - invPhi*(b-a)
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*(b-a)
			fd = f(d)
		}
	}
	return (a + b) / 2
}

func isConstantSlice(values []float64) bool {
	for _, x := range values[1:] {
		if x != values[0] {
			return false
		}
	}
	return true
}
