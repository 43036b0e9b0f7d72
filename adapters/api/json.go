package api

import (
	"math"
	"strconv"
)

// Number is a float64 that encodes NaN and ±Inf as JSON null.
type Number float64

// MarshalJSON implements json.Marshaler
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

type shapeResponse struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

type columnResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type statsResponse struct {
	Column         string `json:"column"`
	Type           string `json:"type"`
	Mean           Number `json:"mean"`
	Median         Number `json:"median"`
	StdDev         Number `json:"std"`
	DistinctCount  int    `json:"distinct_count"`
	NullCount      int    `json:"null_count"`
	NullPercentage Number `json:"null_percentage"`
	Skewness       Number `json:"skewness"`
}

type nullEntry struct {
	Column     string `json:"column"`
	Percentage Number `json:"percentage"`
}

type thresholdResponse struct {
	Operator  string   `json:"operator"`
	Threshold float64  `json:"threshold"`
	Columns   []string `json:"columns"`
}

type skewEntry struct {
	Column   string `json:"column"`
	Skewness Number `json:"skewness"`
}

type skewResponse struct {
	Threshold float64     `json:"threshold"`
	Columns   []skewEntry `json:"columns"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
