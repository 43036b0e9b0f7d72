package dataset

import (
	"fmt"
	"strings"

	"edakit/domain/core"
)

// Column is a named, typed sequence of nullable values.
type Column struct {
	Name   string      `json:"name"`
	Type   ElementType `json:"type"`
	Values []any       `json:"values"`
}

// NewColumn creates a column. The values slice is used as is.
func NewColumn(name string, elementType ElementType, values []any) Column {
	return Column{Name: name, Type: elementType, Values: values}
}

// Len returns the number of cells, nulls included.
func (c *Column) Len() int {
	return len(c.Values)
}

// IsNull reports whether the cell at row i is missing.
func (c *Column) IsNull(i int) bool {
	return IsNull(c.Values[i])
}

// NullCount counts missing cells.
func (c *Column) NullCount() int {
	n := 0
	for _, v := range c.Values {
		if IsNull(v) {
			n++
		}
	}
	return n
}

// Floats returns the non-null values of a numeric column as float64, in row order.
func (c *Column) Floats() ([]float64, error) {
	if !c.Type.IsNumeric() {
		return nil, core.NewNonNumericError(c.Name, c.Type.String())
	}
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if f, ok := ToFloat(v); ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// DistinctCount counts distinct values. All nulls together count as one value.
func (c *Column) DistinctCount() int {
	seen := make(map[any]struct{}, len(c.Values))
	for _, v := range c.Values {
		seen[distinctKey(v)] = struct{}{}
	}
	return len(seen)
}

// Table is a read-only, column-ordered 2-D dataset. Every column has the same
// number of rows and column names are unique.
type Table struct {
	ID      core.ID
	Name    string
	columns []Column
	index   map[string]int
	rows    int
}

// NewTable validates the columns and assembles a table.
func NewTable(name string, columns ...Column) (*Table, error) {
	t := &Table{
		ID:      core.NewID(),
		Name:    name,
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if strings.TrimSpace(col.Name) == "" {
			return nil, fmt.Errorf("%w at position %d", core.ErrEmptyColumnName, i)
		}
		if _, dup := t.index[col.Name]; dup {
			return nil, fmt.Errorf("%w: '%s'", core.ErrDuplicateColumn, col.Name)
		}
		if i == 0 {
			t.rows = col.Len()
		} else if col.Len() != t.rows {
			return nil, fmt.Errorf("%w: '%s' has %d rows, expected %d",
				core.ErrColumnLengthMismatch, col.Name, col.Len(), t.rows)
		}
		t.index[col.Name] = i
		t.columns = append(t.columns, col)
	}
	return t, nil
}

// MustTable is NewTable for fixtures; it panics on invalid input.
func MustTable(name string, columns ...Column) *Table {
	t, err := NewTable(name, columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTableFromRows builds a table from row-major data, as produced by a
// database cursor or a delimited file.
func NewTableFromRows(name string, names []string, types []ElementType, rows [][]any) (*Table, error) {
	if len(names) != len(types) {
		return nil, fmt.Errorf("%w: %d names for %d types", core.ErrColumnLengthMismatch, len(names), len(types))
	}
	columns := make([]Column, len(names))
	for j := range names {
		columns[j] = Column{Name: names[j], Type: types[j], Values: make([]any, len(rows))}
	}
	for i, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				core.ErrColumnLengthMismatch, i, len(row), len(names))
		}
		for j, v := range row {
			columns[j].Values[i] = v
		}
	}
	return NewTable(name, columns...)
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return t.rows
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) {
	return t.rows, len(t.columns)
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i := range t.columns {
		names[i] = t.columns[i].Name
	}
	return names
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column or a ColumnNotFoundError.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, core.NewColumnNotFoundError(name)
	}
	return &t.columns[i], nil
}

// ColumnAt returns the column at position i in table order.
func (t *Table) ColumnAt(i int) *Column {
	return &t.columns[i]
}

// Select returns a new table holding copies of the named columns, in the
// order given.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c.clone())
	}
	return NewTable(t.Name, cols...)
}

// WithColumn returns a copy of the table where col replaces the column of the
// same name, or is appended when no such column exists.
func (t *Table) WithColumn(col Column) (*Table, error) {
	cols := make([]Column, 0, len(t.columns)+1)
	replaced := false
	for i := range t.columns {
		if t.columns[i].Name == col.Name {
			cols = append(cols, col)
			replaced = true
			continue
		}
		cols = append(cols, t.columns[i].clone())
	}
	if !replaced {
		cols = append(cols, col)
	}
	return NewTable(t.Name, cols...)
}

// Row returns the cells of row i in column order.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.columns))
	for j := range t.columns {
		row[j] = t.columns[j].Values[i]
	}
	return row
}

func (c *Column) clone() Column {
	values := make([]any, len(c.Values))
	copy(values, c.Values)
	return Column{Name: c.Name, Type: c.Type, Values: values}
}
