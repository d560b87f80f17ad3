package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junzis/opensky-go/pkg/opensky"
)

func TestCompleteTime(t *testing.T) {
	tests := []struct {
		in    string
		clock string
		want  string
	}{
		{"2025-01-01", "00:00:00", "2025-01-01 00:00:00"},
		{"2025-01-01", "23:59:59", "2025-01-01 23:59:59"},
		{"2025-01-01 10:30:00", "00:00:00", "2025-01-01 10:30:00"},
		{"", "00:00:00", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, completeTime(tt.in, tt.clock))
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "30m", want: 30 * time.Minute},
		{in: "2h", want: 2 * time.Hour},
		{in: "1d", want: 24 * time.Hour},
		{in: "3d", want: 72 * time.Hour},
		{in: "1w", want: 7 * 24 * time.Hour},
		{in: "2w", wantErr: true},
		{in: "8d", wantErr: true},
		{in: "169h", wantErr: true},
		{in: "-1h", wantErr: true},
		{in: "0d", wantErr: true},
		{in: "soon", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDuration(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, opensky.KindInvalidParam, opensky.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWindow(t *testing.T) {
	start, stop, err := parseWindow("2025-01-01", "2025-01-02", "")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01 00:00:00", start)
	assert.Equal(t, "2025-01-02 23:59:59", stop)

	start, stop, err = parseWindow("2025-01-01 10:00:00", "", "2h")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01 10:00:00", start)
	assert.Equal(t, "2025-01-01 12:00:00", stop)

	// duration crossing midnight
	_, stop, err = parseWindow("2025-01-01 23:00:00", "", "2h")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02 01:00:00", stop)

	_, _, err = parseWindow("2025-01-01", "2025-01-02", "2h")
	require.Error(t, err)

	_, _, err = parseWindow("", "", "2h")
	require.Error(t, err)
}

func TestParseBounds(t *testing.T) {
	b, err := parseBounds("3.0, 50.5, 7.5, 54.0")
	require.NoError(t, err)
	assert.Equal(t, &opensky.Bounds{West: 3.0, South: 50.5, East: 7.5, North: 54.0}, b)

	b, err = parseBounds("")
	require.NoError(t, err)
	assert.Nil(t, b)

	for _, in := range []string{
		"3,50.5,7.5",         // too few values
		"3,50.5,7.5,54,1",    // too many values
		"a,50.5,7.5,54",      // not a number
		"-190,50.5,7.5,54",   // west out of range
		"7.5,50.5,3,54",      // west >= east
		"3,54,7.5,50.5",      // south >= north
	} {
		_, err := parseBounds(in)
		require.Error(t, err, in)
		assert.Equal(t, opensky.KindInvalidParam, opensky.KindOf(err), in)
	}
}

func TestQueryFlagsParams(t *testing.T) {
	qf := queryFlags{
		start:    "2025-01-01",
		duration: "1d",
		icao24:   "485020",
		bounds:   "3,50.5,7.5,54",
		limit:    100,
	}
	p, err := qf.params()
	require.NoError(t, err)

	assert.Equal(t, "2025-01-01 00:00:00", p.Start)
	assert.Equal(t, "2025-01-02 00:00:00", p.Stop)
	assert.Equal(t, "485020", p.ICAO24)
	require.NotNil(t, p.Bounds)
	assert.Equal(t, 100, p.Limit)
}

func TestRawTableByName(t *testing.T) {
	rt, err := rawTableByName("position")
	require.NoError(t, err)
	assert.Equal(t, opensky.RawPosition, rt)

	_, err = rawTableByName("bogus")
	require.Error(t, err)
	assert.Equal(t, opensky.KindInvalidParam, opensky.KindOf(err))
}
