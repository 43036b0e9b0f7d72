package coercer

import (
	"testing"
	"time"

	"edakit/domain/dataset"

	"github.com/stretchr/testify/assert"
)

func TestRecommendedType(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		name   string
		values []string
		want   dataset.ElementType
	}{
		{"integers with gaps", []string{"1", "2", "", "4"}, dataset.TypeInt64},
		{"floats", []string{"1.5", "2", "NaN"}, dataset.TypeFloat64},
		{"decimal notation stays float", []string{"1.0", "2.0"}, dataset.TypeFloat64},
		{"currency", []string{"$1,200.50", "(30.00)"}, dataset.TypeFloat64},
		{"booleans", []string{"yes", "no", "Y"}, dataset.TypeBool},
		{"zero and one are numbers", []string{"0", "1", "1"}, dataset.TypeInt64},
		{"dates", []string{"2021-01-01", "Jan-2021", "03/04/2022"}, dataset.TypeTimestamp},
		{"categorical", []string{"A", "B", "A", "B", "A", "C"}, dataset.TypeCategorical},
		{"free text", []string{"alpha", "beta", "gamma"}, dataset.TypeString},
		{"one bad number", []string{"1", "2", "three"}, dataset.TypeString},
		{"all null", []string{"", "NA"}, dataset.TypeString},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, c.AnalyzeTypeDistribution(test.values).RecommendedType)
		})
	}
}

func TestCoerceColumn(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	col := c.CoerceColumn("a", []string{"1", "2", "", "4"})
	assert.Equal(t, dataset.TypeInt64, col.Type)
	assert.Equal(t, []any{int64(1), int64(2), nil, int64(4)}, col.Values)
	assert.Equal(t, 1, col.NullCount())

	dates := c.CoerceColumn("d", []string{"2021-01-15", "null"})
	assert.Equal(t, dataset.TypeTimestamp, dates.Type)
	assert.Equal(t, time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC), dates.Values[0])
	assert.Nil(t, dates.Values[1])

	text := c.CoerceColumn("s", []string{" x ", "y", "z"})
	assert.Equal(t, []any{"x", "y", "z"}, text.Values)
}

func TestLooseThresholdNullsUnparseableCells(t *testing.T) {
	config := DefaultCoercionConfig()
	config.NumericThreshold = 0.6
	c := NewTypeCoercer(config)

	col := c.CoerceColumn("n", []string{"1", "2", "oops"})
	assert.Equal(t, dataset.TypeInt64, col.Type)
	assert.Equal(t, []any{int64(1), int64(2), nil}, col.Values)
}

func TestCoerceLargeIntegers(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	ids := c.CoerceColumn("id", []string{"9007199254740993", "9007199254740992", "-9223372036854775808"})
	assert.Equal(t, dataset.TypeInt64, ids.Type)
	assert.Equal(t, []any{int64(9007199254740993), int64(9007199254740992), int64(-9223372036854775808)}, ids.Values)

	overflow := c.CoerceColumn("id", []string{"9007199254740993", "99999999999999999999"})
	assert.Equal(t, dataset.TypeFloat64, overflow.Type)
	assert.Equal(t, 1e20, overflow.Values[1])
}
