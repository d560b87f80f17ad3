package frame

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/junzis/opensky-go/pkg/opensky"
)

// ColumnDesc is a column declaration as reported by the engine: a name
// plus the engine's type tag (e.g. "double", "bigint", "varchar").
type ColumnDesc struct {
	Name       string
	EngineType string
}

// mapType maps an engine type tag onto the closed column type set.
// Parameterized tags like "varchar(8)" or "decimal(10,2)" are matched on
// their base name. Anything without a native mapping, including
// timestamps rendered as text, becomes a string column.
func mapType(engineType string) Type {
	base := engineType
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = base[:i]
	}
	switch strings.ToLower(strings.TrimSpace(base)) {
	case "double", "real":
		return Float
	case "bigint", "integer", "smallint", "tinyint":
		return Int
	case "boolean":
		return Bool
	default:
		return String
	}
}

// Assemble converts declared columns plus row-major raw values into a
// typed Frame. Cell values are the engine's JSON scalars (string, bool,
// json.Number, or nil); a null or unconvertible cell becomes an absent
// value in that column's slot.
//
// Zero input rows produce a well-typed empty frame shaped to the fixed
// trajectory column set rather than the declared columns, so consumers
// can rely on the schema even for empty results.
func Assemble(cols []ColumnDesc, rows [][]any) (*Frame, error) {
	if len(rows) == 0 {
		return Empty(opensky.TrajectoryColumns), nil
	}

	columns := make([]*Column, 0, len(cols))
	for idx, desc := range cols {
		col := NewColumn(desc.Name, mapType(desc.EngineType))
		for _, row := range rows {
			var cell any
			if idx < len(row) {
				cell = row[idx]
			}
			appendCell(col, cell)
		}
		columns = append(columns, col)
	}

	return New(columns)
}

// appendCell converts one raw cell into the column's type, appending a
// null when the value does not convert.
func appendCell(c *Column, cell any) {
	if cell == nil {
		c.AppendNull()
		return
	}

	switch c.Type {
	case Float:
		if f, ok := asFloat(cell); ok {
			c.AppendFloat(f)
		} else {
			c.AppendNull()
		}
	case Int:
		if n, ok := asInt(cell); ok {
			c.AppendInt(n)
		} else {
			c.AppendNull()
		}
	case Bool:
		if b, ok := cell.(bool); ok {
			c.AppendBool(b)
		} else {
			c.AppendNull()
		}
	default:
		c.AppendString(asString(cell))
	}
}

func asFloat(cell any) (float64, bool) {
	switch v := cell.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// asInt converts only exact integer values; a fractional number in an
// integer column becomes an absent value rather than being truncated.
func asInt(cell any) (int64, bool) {
	switch v := cell.(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case int64:
		return v, true
	default:
		return 0, false
	}
}

// asString renders a raw non-string scalar via its generic textual form.
func asString(cell any) string {
	switch v := cell.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
