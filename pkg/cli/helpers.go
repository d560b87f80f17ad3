package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/junzis/opensky-go/pkg/cache"
	"github.com/junzis/opensky-go/pkg/config"
	"github.com/junzis/opensky-go/pkg/frame"
	"github.com/junzis/opensky-go/pkg/opensky"
	"github.com/junzis/opensky-go/pkg/trino"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	maxDuration    = 7 * 24 * time.Hour
	previewRows    = 10
)

// newClient builds a Trino client from stored credentials, with the
// local result cache attached when it can be opened. Environment
// variables take precedence over the configuration file.
func newClient() (*trino.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		if os.Getenv("OPENSKY_USERNAME") == "" {
			return nil, err
		}
		cfg = &config.Config{}
	}
	if v := os.Getenv("OPENSKY_USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("OPENSKY_PASSWORD"); v != "" {
		cfg.Password = v
	}

	opts := []trino.Option{}
	if c, err := cache.Open(); err == nil {
		opts = append(opts, trino.WithCache(c))
	}
	return trino.New(cfg, opts...), nil
}

// completeTime fills in the clock part of a date-only timestamp, so
// "2025-01-01" becomes "2025-01-01 00:00:00" for a range start and
// "2025-01-01 23:59:59" for a range stop.
func completeTime(s, clock string) string {
	if s == "" {
		return ""
	}
	if _, err := time.Parse(dateLayout, s); err == nil {
		return s + " " + clock
	}
	return s
}

// parseWindow resolves the start/stop/duration flags into a concrete
// timestamp pair. duration is an alternative to stop and counts
// forward from start.
func parseWindow(start, stop, duration string) (string, string, error) {
	start = completeTime(start, "00:00:00")
	stop = completeTime(stop, "23:59:59")

	if duration == "" {
		return start, stop, nil
	}
	if stop != "" {
		return "", "", opensky.E(opensky.KindInvalidParam, "--stop and --duration are mutually exclusive")
	}
	if start == "" {
		return "", "", opensky.E(opensky.KindInvalidParam, "--duration requires --start")
	}

	d, err := parseDuration(duration)
	if err != nil {
		return "", "", err
	}
	t, err := time.ParseInLocation(dateTimeLayout, start, time.UTC)
	if err != nil {
		return "", "", opensky.Errorf(opensky.KindInvalidParam, "invalid start time %q", start)
	}
	return start, t.Add(d).Format(dateTimeLayout), nil
}

// parseDuration accepts durations like 30m, 2h, 1d or 1w, capped at
// one week to keep single queries within a bounded scan.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, opensky.E(opensky.KindInvalidParam, "empty duration")
	}

	var d time.Duration
	unit := s[len(s)-1]
	switch unit {
	case 'd', 'w':
		n, err := strconv.Atoi(s[:len(s)-1])
		if err != nil || n <= 0 {
			return 0, opensky.Errorf(opensky.KindInvalidParam, "invalid duration %q", s)
		}
		d = time.Duration(n) * 24 * time.Hour
		if unit == 'w' {
			d *= 7
		}
	default:
		var err error
		d, err = time.ParseDuration(s)
		if err != nil || d <= 0 {
			return 0, opensky.Errorf(opensky.KindInvalidParam, "invalid duration %q", s)
		}
	}

	if d > maxDuration {
		return 0, opensky.Errorf(opensky.KindInvalidParam, "duration %q exceeds the one week maximum", s)
	}
	return d, nil
}

// parseBounds parses a west,south,east,north degree quadruple.
func parseBounds(s string) (*opensky.Bounds, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, opensky.Errorf(opensky.KindInvalidParam,
			"bounds must be west,south,east,north, got %q", s)
	}
	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, opensky.Errorf(opensky.KindInvalidParam, "invalid bound %q", part)
		}
		vals[i] = v
	}

	b := &opensky.Bounds{West: vals[0], South: vals[1], East: vals[2], North: vals[3]}
	if b.West < -180 || b.East > 180 || b.South < -90 || b.North > 90 {
		return nil, opensky.Errorf(opensky.KindInvalidParam, "bounds %q out of range", s)
	}
	if b.West >= b.East || b.South >= b.North {
		return nil, opensky.Errorf(opensky.KindInvalidParam,
			"bounds %q must satisfy west < east and south < north", s)
	}
	return b, nil
}

// printFrame renders up to previewRows rows as a table on stdout.
func printFrame(f *frame.Frame) {
	if f.IsEmpty() {
		fmt.Println("no rows returned")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(f.ColumnNames())
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)

	n := f.NumRows()
	shown := n
	if shown > previewRows {
		shown = previewRows
	}
	for i := 0; i < shown; i++ {
		table.Append(f.Row(i))
	}
	table.Render()

	if n > shown {
		fmt.Printf("... %d more rows\n", n-shown)
	}
	fmt.Printf("%d rows\n", n)
}

// exportFrame writes f to path, picking the format from the extension.
func exportFrame(f *frame.Frame, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return f.WriteCSVFile(path)
	case ".parquet":
		return f.WriteParquetFile(path)
	default:
		return opensky.Errorf(opensky.KindInvalidParam,
			"unsupported output extension %q, use .csv or .parquet", ext)
	}
}

// progressObserver prints per-page execution snapshots to stderr.
func progressObserver() func(trino.QueryStatus) {
	return func(st trino.QueryStatus) {
		if st.State == string(trino.StateCached) {
			fmt.Fprintf(os.Stderr, "cached: %d rows\n", st.RowCount)
			return
		}
		fmt.Fprintf(os.Stderr, "%s %.1f%% (%d rows)\n", st.State, st.Progress, st.RowCount)
	}
}
