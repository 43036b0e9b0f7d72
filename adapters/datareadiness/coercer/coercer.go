package coercer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"edakit/domain/dataset"
)

// TypeCoercer infers element types for text columns and converts their cells
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion thresholds and rules
type CoercionConfig struct {
	NumericThreshold   float64  `json:"numeric_threshold"`   // share of non-null cells that must parse as numbers
	BooleanThreshold   float64  `json:"boolean_threshold"`   // share of non-null cells that must parse as booleans
	TimestampThreshold float64  `json:"timestamp_threshold"` // share of non-null cells that must parse as timestamps
	MaxCategories      int      `json:"max_categories"`      // string columns with at most this many distinct values become categorical
	MaxCategoryRatio   float64  `json:"max_category_ratio"`  // and whose distinct/non-null ratio is at most this
	NullTokens         []string `json:"null_tokens"`         // cell texts read as null
}

// DefaultCoercionConfig returns defaults that never turn a readable cell into a null
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold:   1.0,
		BooleanThreshold:   1.0,
		TimestampThreshold: 1.0,
		MaxCategories:      20,
		MaxCategoryRatio:   0.5,
		NullTokens:         []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "None"},
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// TypeAnalysis contains the results of type distribution analysis
type TypeAnalysis struct {
	TotalCount      int                 `json:"total_count"`
	ValidCount      int                 `json:"valid_count"`
	NumericCount    int                 `json:"numeric_count"`
	IntegerCount    int                 `json:"integer_count"`
	BooleanCount    int                 `json:"boolean_count"`
	TimestampCount  int                 `json:"timestamp_count"`
	DistinctCount   int                 `json:"distinct_count"`
	NumericRatio    float64             `json:"numeric_ratio"`
	BooleanRatio    float64             `json:"boolean_ratio"`
	TimestampRatio  float64             `json:"timestamp_ratio"`
	RecommendedType dataset.ElementType `json:"recommended_type"`
}

// IsNullToken reports whether raw reads as a missing cell
func (c *TypeCoercer) IsNullToken(raw string) bool {
	s := strings.TrimSpace(raw)
	for _, token := range c.config.NullTokens {
		if s == token {
			return true
		}
	}
	return false
}

// AnalyzeTypeDistribution counts how many cells parse as each type and picks one
func (c *TypeCoercer) AnalyzeTypeDistribution(values []string) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(values)}

	distinct := make(map[string]struct{})
	for _, raw := range values {
		if c.IsNullToken(raw) {
			continue
		}
		analysis.ValidCount++
		s := strings.TrimSpace(raw)
		distinct[s] = struct{}{}

		if _, ok := c.tryParseNumeric(s); ok {
			analysis.NumericCount++
			// values beyond int64 leave the column as float64
			if _, ok := c.tryParseInteger(s); ok {
				analysis.IntegerCount++
			}
		}
		if _, ok := tryParseBoolean(s); ok {
			analysis.BooleanCount++
		}
		if _, ok := tryParseTimestamp(s); ok {
			analysis.TimestampCount++
		}
	}
	analysis.DistinctCount = len(distinct)

	if analysis.ValidCount > 0 {
		valid := float64(analysis.ValidCount)
		analysis.NumericRatio = float64(analysis.NumericCount) / valid
		analysis.BooleanRatio = float64(analysis.BooleanCount) / valid
		analysis.TimestampRatio = float64(analysis.TimestampCount) / valid
	}

	analysis.RecommendedType = c.determineRecommendedType(analysis)
	return analysis
}

// CoerceColumn infers the element type of raw and converts every cell to it
func (c *TypeCoercer) CoerceColumn(name string, raw []string) dataset.Column {
	et := c.AnalyzeTypeDistribution(raw).RecommendedType
	values := make([]any, len(raw))
	for i, cell := range raw {
		values[i] = c.CoerceValue(cell, et)
	}
	return dataset.NewColumn(name, et, values)
}

// CoerceValue converts one cell. Cells that cannot be read as et become null.
func (c *TypeCoercer) CoerceValue(raw string, et dataset.ElementType) any {
	if c.IsNullToken(raw) {
		return nil
	}
	s := strings.TrimSpace(raw)

	switch et {
	case dataset.TypeInt64:
		if n, ok := c.tryParseInteger(s); ok {
			return n
		}
		return nil
	case dataset.TypeFloat64:
		if f, ok := c.tryParseNumeric(s); ok {
			return f
		}
		return nil
	case dataset.TypeBool:
		if b, ok := tryParseBoolean(s); ok {
			return b
		}
		return nil
	case dataset.TypeTimestamp:
		if t, ok := tryParseTimestamp(s); ok {
			return t
		}
		return nil
	}
	return s
}

// determineRecommendedType chooses the best type based on analysis
func (c *TypeCoercer) determineRecommendedType(analysis TypeAnalysis) dataset.ElementType {
	if analysis.ValidCount == 0 {
		return dataset.TypeString
	}

	// Check thresholds in order of preference (most restrictive first)
	if analysis.NumericRatio >= c.config.NumericThreshold {
		if analysis.IntegerCount == analysis.NumericCount {
			return dataset.TypeInt64
		}
		return dataset.TypeFloat64
	}

	if analysis.BooleanRatio >= c.config.BooleanThreshold {
		return dataset.TypeBool
	}

	if analysis.TimestampRatio >= c.config.TimestampThreshold {
		return dataset.TypeTimestamp
	}

	ratio := float64(analysis.DistinctCount) / float64(analysis.ValidCount)
	if analysis.DistinctCount <= c.config.MaxCategories && ratio <= c.config.MaxCategoryRatio {
		return dataset.TypeCategorical
	}
	return dataset.TypeString
}

// tryParseNumeric parses plain, accounting-negative and currency-prefixed numbers.
// Handles parentheses for negatives, currency symbols and thousands separators.
func (c *TypeCoercer) tryParseNumeric(strVal string) (float64, bool) {
	cleanVal, ok := cleanNumeric(strVal)
	if !ok {
		return 0, false
	}
	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// tryParseInteger parses integral cells exactly. Out-of-range values fail.
func (c *TypeCoercer) tryParseInteger(strVal string) (int64, bool) {
	cleanVal, ok := cleanNumeric(strVal)
	if !ok || !looksIntegral(cleanVal) {
		return 0, false
	}
	n, err := strconv.ParseInt(cleanVal, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func cleanNumeric(strVal string) (string, bool) {
	cleanVal := strings.TrimSpace(strVal)
	if cleanVal == "" {
		return "", false
	}

	// (123) -> -123
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSuffix(strings.TrimPrefix(cleanVal, "("), ")")
		isNegative = true
	}

	for _, symbol := range []string{"$", "€", "£", "¥"} {
		cleanVal = strings.ReplaceAll(cleanVal, symbol, "")
	}
	cleanVal = strings.TrimSpace(cleanVal)

	// 1,234.56 -> 1234.56; a lone comma stays and fails the parse
	if strings.Contains(cleanVal, ",") && strings.Contains(cleanVal, ".") {
		cleanVal = strings.ReplaceAll(cleanVal, ",", "")
	}

	if isNegative {
		cleanVal = "-" + cleanVal
	}
	return cleanVal, true
}

// looksIntegral rejects "3.0" and "1e3" so that a column written with decimals stays float
func looksIntegral(s string) bool {
	return !strings.ContainsAny(s, ".eE")
}

// tryParseBoolean accepts the usual spellings. 0 and 1 are left to the numeric parse.
func tryParseBoolean(strVal string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(strVal)) {
	case "true", "yes", "y", "t", "on":
		return true, true
	case "false", "no", "n", "f", "off":
		return false, true
	}
	return false, false
}

var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
	"Jan-2006",
}

// tryParseTimestamp attempts to parse as timestamp with multiple formats
func tryParseTimestamp(strVal string) (time.Time, bool) {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, strVal); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
