package frame

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/junzis/opensky-go/pkg/opensky"
)

// WriteCSV writes the frame as CSV: a header row of column names
// followed by one record per row. Null cells render empty.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(f.ColumnNames()); err != nil {
		return opensky.Wrap(opensky.KindIO, "write csv header", err)
	}
	for i := 0; i < f.NumRows(); i++ {
		if err := cw.Write(f.Row(i)); err != nil {
			return opensky.Wrap(opensky.KindIO, "write csv row", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return opensky.Wrap(opensky.KindIO, "flush csv", err)
	}
	return nil
}

// WriteCSVFile writes the frame as CSV to path.
func (f *Frame) WriteCSVFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return opensky.Wrap(opensky.KindIO, "create csv file", err)
	}

	if err := f.WriteCSV(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return opensky.Wrap(opensky.KindIO, "close csv file", err)
	}
	return nil
}
