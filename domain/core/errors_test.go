package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnNotFoundErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("mean: %w", NewColumnNotFoundError("z"))

	assert.True(t, errors.Is(err, ErrColumnNotFound))
	assert.True(t, IsColumnNotFound(err))

	col, ok := MissingColumn(err)
	assert.True(t, ok)
	assert.Equal(t, "z", col)
	assert.Contains(t, err.Error(), "'z'")
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		argument bool
		shape    bool
	}{
		{"comparison operator", NewInvalidComparisonError("~"), true, false},
		{"non numeric", NewNonNumericError("b", "string"), true, false},
		{"length mismatch", fmt.Errorf("%w: b", ErrColumnLengthMismatch), false, true},
		{"duplicate", ErrDuplicateColumn, false, true},
		{"undefined", NewUndefinedResultError("log", "non-positive value"), false, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.argument, IsArgumentError(test.err))
			assert.Equal(t, test.shape, IsTableShapeError(test.err))
			assert.False(t, IsColumnNotFound(test.err))
		})
	}
}
