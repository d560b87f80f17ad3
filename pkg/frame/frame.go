// Package frame implements the tabular result artifact: an ordered set
// of named, typed columns of equal length. Frames are produced by the
// result assembler or read back from a cached Parquet file, and are
// owned exclusively by the caller once returned.
package frame

import (
	"strconv"

	"github.com/junzis/opensky-go/pkg/opensky"
)

// Type is the closed set of column value types.
type Type int

const (
	// Float is a 64-bit floating point column.
	Float Type = iota
	// Int is a 64-bit integer column.
	Int
	// Bool is a boolean column.
	Bool
	// String is a text column; also the fallback for engine types with
	// no native mapping (timestamps as text, varchar, etc).
	String
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case Float:
		return "float64"
	case Int:
		return "int64"
	case Bool:
		return "bool"
	default:
		return "string"
	}
}

// Column is a single typed column with a validity mask. Exactly one of
// the value slices is populated, matching Type; Valid marks non-null
// cells. All slices share the column length.
type Column struct {
	Name string
	Type Type

	Floats  []float64
	Ints    []int64
	Bools   []bool
	Strings []string
	Valid   []bool
}

// NewColumn creates an empty column of the given type.
func NewColumn(name string, typ Type) *Column {
	return &Column{Name: name, Type: typ}
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	return len(c.Valid)
}

// AppendNull appends an absent value.
func (c *Column) AppendNull() {
	c.appendZero()
	c.Valid[len(c.Valid)-1] = false
}

// AppendFloat appends a float cell. The column must have Type Float.
func (c *Column) AppendFloat(v float64) {
	c.Floats = append(c.Floats, v)
	c.Valid = append(c.Valid, true)
}

// AppendInt appends an integer cell. The column must have Type Int.
func (c *Column) AppendInt(v int64) {
	c.Ints = append(c.Ints, v)
	c.Valid = append(c.Valid, true)
}

// AppendBool appends a boolean cell. The column must have Type Bool.
func (c *Column) AppendBool(v bool) {
	c.Bools = append(c.Bools, v)
	c.Valid = append(c.Valid, true)
}

// AppendString appends a string cell. The column must have Type String.
func (c *Column) AppendString(v string) {
	c.Strings = append(c.Strings, v)
	c.Valid = append(c.Valid, true)
}

func (c *Column) appendZero() {
	switch c.Type {
	case Float:
		c.Floats = append(c.Floats, 0)
	case Int:
		c.Ints = append(c.Ints, 0)
	case Bool:
		c.Bools = append(c.Bools, false)
	default:
		c.Strings = append(c.Strings, "")
	}
	c.Valid = append(c.Valid, true)
}

// Value returns the cell at row i, or nil for a null cell.
func (c *Column) Value(i int) any {
	if !c.Valid[i] {
		return nil
	}
	switch c.Type {
	case Float:
		return c.Floats[i]
	case Int:
		return c.Ints[i]
	case Bool:
		return c.Bools[i]
	default:
		return c.Strings[i]
	}
}

// Render returns the cell at row i as display text; null renders empty.
func (c *Column) Render(i int) string {
	if !c.Valid[i] {
		return ""
	}
	switch c.Type {
	case Float:
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	case Int:
		return strconv.FormatInt(c.Ints[i], 10)
	case Bool:
		return strconv.FormatBool(c.Bools[i])
	default:
		return c.Strings[i]
	}
}

// Frame is an ordered collection of equal-length columns.
type Frame struct {
	Columns []*Column
}

// New creates a Frame from columns. All columns must share a length;
// a mismatch is a data-conversion error.
func New(columns []*Column) (*Frame, error) {
	for i := 1; i < len(columns); i++ {
		if columns[i].Len() != columns[0].Len() {
			return nil, opensky.Errorf(opensky.KindDataConversion,
				"column %q has %d rows, expected %d",
				columns[i].Name, columns[i].Len(), columns[0].Len())
		}
	}
	return &Frame{Columns: columns}, nil
}

// Empty creates a zero-row Frame with the given column names, all typed
// as string. Used to keep the schema shape stable for empty results.
func Empty(names []string) *Frame {
	columns := make([]*Column, 0, len(names))
	for _, name := range names {
		columns = append(columns, NewColumn(name, String))
	}
	return &Frame{Columns: columns}
}

// NumRows returns the row count.
func (f *Frame) NumRows() int {
	if len(f.Columns) == 0 {
		return 0
	}
	return f.Columns[0].Len()
}

// NumColumns returns the column count.
func (f *Frame) NumColumns() int {
	return len(f.Columns)
}

// IsEmpty reports whether the frame has no rows.
func (f *Frame) IsEmpty() bool {
	return f.NumRows() == 0
}

// ColumnNames returns the column names in order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, 0, len(f.Columns))
	for _, c := range f.Columns {
		names = append(names, c.Name)
	}
	return names
}

// Column returns the named column, or nil when absent.
func (f *Frame) Column(name string) *Column {
	for _, c := range f.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Row renders row i as display text, one cell per column.
func (f *Frame) Row(i int) []string {
	cells := make([]string, 0, len(f.Columns))
	for _, c := range f.Columns {
		cells = append(cells, c.Render(i))
	}
	return cells
}
