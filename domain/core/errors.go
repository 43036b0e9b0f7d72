package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Lookup errors
	ErrColumnNotFound = errors.New("column not found")

	// Argument errors
	ErrInvalidComparisonOperator = errors.New("invalid comparison operator")
	ErrNonNumericColumn          = errors.New("column is not numeric")
	ErrInvalidTransform          = errors.New("unknown transform")

	// Degenerate inputs. Aggregates over empty data return NaN instead;
	// this is only raised where a NaN would hide a domain violation.
	ErrUndefinedResult = errors.New("undefined result")

	// Table construction errors
	ErrColumnLengthMismatch = errors.New("column length mismatch")
	ErrDuplicateColumn      = errors.New("duplicate column name")
	ErrEmptyColumnName      = errors.New("empty column name")
)

// ColumnNotFoundError carries the name of the column that was requested.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column '%s' not found in the table", e.Column)
}

// Is lets errors.Is(err, ErrColumnNotFound) match.
func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrColumnNotFound
}

// Error constructors with context
func NewColumnNotFoundError(column string) error {
	return &ColumnNotFoundError{Column: column}
}

func NewInvalidComparisonError(op string) error {
	return fmt.Errorf("%w: '%s', use either '>' or '<'", ErrInvalidComparisonOperator, op)
}

func NewNonNumericError(column, elementType string) error {
	return fmt.Errorf("%w: '%s' has element type %s", ErrNonNumericColumn, column, elementType)
}

func NewUndefinedResultError(operation, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrUndefinedResult, operation, reason)
}

// Error checking helpers
func IsColumnNotFound(err error) bool {
	return errors.Is(err, ErrColumnNotFound)
}

// MissingColumn extracts the column name from a ColumnNotFoundError chain.
func MissingColumn(err error) (string, bool) {
	var cnf *ColumnNotFoundError
	if errors.As(err, &cnf) {
		return cnf.Column, true
	}
	return "", false
}

func IsArgumentError(err error) bool {
	return errors.Is(err, ErrInvalidComparisonOperator) ||
		errors.Is(err, ErrNonNumericColumn) ||
		errors.Is(err, ErrInvalidTransform)
}

func IsTableShapeError(err error) bool {
	return errors.Is(err, ErrColumnLengthMismatch) ||
		errors.Is(err, ErrDuplicateColumn) ||
		errors.Is(err, ErrEmptyColumnName)
}
