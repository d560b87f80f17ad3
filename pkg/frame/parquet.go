package frame

import (
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/junzis/opensky-go/pkg/opensky"
)

// parquetNode maps a column type onto its parquet leaf node.
func parquetNode(t Type) parquet.Node {
	switch t {
	case Float:
		return parquet.Leaf(parquet.DoubleType)
	case Int:
		return parquet.Int(64)
	case Bool:
		return parquet.Leaf(parquet.BooleanType)
	default:
		return parquet.String()
	}
}

// parquetSchema builds the file schema for a frame. All fields are
// optional so null cells round-trip.
func (f *Frame) parquetSchema() *parquet.Schema {
	group := parquet.Group{}
	for _, c := range f.Columns {
		group[c.Name] = parquet.Optional(parquetNode(c.Type))
	}
	return parquet.NewSchema("frame", group)
}

// WriteParquet writes the frame as a Parquet file to w.
func (f *Frame) WriteParquet(w io.Writer) error {
	writer := parquet.NewGenericWriter[map[string]any](w, f.parquetSchema())

	rows := make([]map[string]any, 0, f.NumRows())
	for i := 0; i < f.NumRows(); i++ {
		row := make(map[string]any, len(f.Columns))
		for _, c := range f.Columns {
			if v := c.Value(i); v != nil {
				row[c.Name] = v
			}
		}
		rows = append(rows, row)
	}

	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			return opensky.Wrap(opensky.KindDataConversion, "write parquet rows", err)
		}
	}
	if err := writer.Close(); err != nil {
		return opensky.Wrap(opensky.KindDataConversion, "close parquet writer", err)
	}
	return nil
}

// WriteParquetFile writes the frame as a Parquet file at path.
func (f *Frame) WriteParquetFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return opensky.Wrap(opensky.KindIO, "create parquet file", err)
	}

	if err := f.WriteParquet(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return opensky.Wrap(opensky.KindIO, "close parquet file", err)
	}
	return nil
}

// ReadParquetFile reads a Parquet file back into a Frame. Column types
// are derived from the file schema; fields outside the closed type set
// come back as string columns. Column order follows the file schema.
func ReadParquetFile(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, opensky.Wrap(opensky.KindIO, "open parquet file", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, opensky.Wrap(opensky.KindIO, "stat parquet file", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return nil, opensky.Wrap(opensky.KindDataConversion, "open parquet", err)
	}

	fields := pqFile.Schema().Fields()
	columns := make([]*Column, 0, len(fields))
	for _, field := range fields {
		columns = append(columns, NewColumn(field.Name(), columnTypeOf(field)))
	}

	reader := parquet.NewReader(pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]any)
		if err := reader.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, opensky.Wrap(opensky.KindDataConversion, "read parquet row", err)
		}
		for _, c := range columns {
			appendParquetCell(c, row[c.Name])
		}
	}

	return New(columns)
}

// columnTypeOf maps a parquet leaf field onto the closed column type set.
func columnTypeOf(field parquet.Field) Type {
	if field.Type() == nil {
		return String
	}
	switch field.Type().Kind() {
	case parquet.Double, parquet.Float:
		return Float
	case parquet.Int32, parquet.Int64:
		return Int
	case parquet.Boolean:
		return Bool
	default:
		return String
	}
}

// appendParquetCell converts one decoded parquet value into the column.
func appendParquetCell(c *Column, v any) {
	if v == nil {
		c.AppendNull()
		return
	}
	switch c.Type {
	case Float:
		switch n := v.(type) {
		case float64:
			c.AppendFloat(n)
		case float32:
			c.AppendFloat(float64(n))
		default:
			c.AppendNull()
		}
	case Int:
		switch n := v.(type) {
		case int64:
			c.AppendInt(n)
		case int32:
			c.AppendInt(int64(n))
		case int:
			c.AppendInt(int64(n))
		default:
			c.AppendNull()
		}
	case Bool:
		if b, ok := v.(bool); ok {
			c.AppendBool(b)
		} else {
			c.AppendNull()
		}
	default:
		switch s := v.(type) {
		case string:
			c.AppendString(s)
		case []byte:
			c.AppendString(string(s))
		default:
			c.AppendNull()
		}
	}
}
