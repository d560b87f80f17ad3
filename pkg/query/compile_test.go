package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junzis/opensky-go/pkg/opensky"
)

func TestEpochSeconds(t *testing.T) {
	// 2024-11-08 10:00:00 UTC
	assert.Equal(t, int64(1731060000), epochSeconds("2024-11-08 10:00:00"))

	// Date-only input completes to midnight.
	assert.Equal(t, int64(1731024000), epochSeconds("2024-11-08"))
}

func TestHourBounds(t *testing.T) {
	start, stop := hourBounds("2025-01-01 10:30:00", "2025-01-01 12:45:00")

	// 2025-01-01 10:00:00 UTC floor, 2025-01-01 13:00:00 UTC ceiling.
	assert.Equal(t, int64(1735725600), start)
	assert.Equal(t, int64(1735736400), stop)
}

func TestHourBounds_AlreadyAligned(t *testing.T) {
	start, stop := hourBounds("2025-01-01 10:00:00", "2025-01-01 11:00:00")

	assert.Equal(t, int64(1735725600), start)
	// Stop is ceiled to the start of the next hour even when aligned.
	assert.Equal(t, int64(1735729200+3600), stop)
}

func TestDayBounds(t *testing.T) {
	start, stop := dayBounds("2025-01-01 10:30:00", "2025-01-02 12:45:00")

	// 2025-01-01 00:00:00 UTC and 2025-01-03 00:00:00 UTC.
	assert.Equal(t, int64(1735689600), start)
	assert.Equal(t, int64(1735689600+2*86400), stop)
}

func TestHistory_Simple(t *testing.T) {
	sql := History(opensky.QueryParams{
		ICAO24: "485a32",
		Start:  "2025-01-01 10:00:00",
		Stop:   "2025-01-01 12:00:00",
	})

	assert.True(t, strings.HasPrefix(sql, "SELECT time, icao24"))
	assert.Contains(t, sql, "FROM minio.osky.state_vectors_data4")
	assert.Contains(t, sql, "icao24 = '485a32'")
	assert.Contains(t, sql, "time >= 1735725600")
	assert.Contains(t, sql, "time <= 1735732800")
	assert.Contains(t, sql, "hour >= 1735725600")
	assert.Contains(t, sql, "hour < 1735736400")
	assert.Contains(t, sql, "ORDER BY time")
	assert.NotContains(t, sql, "JOIN")
	assert.NotContains(t, sql, "LIMIT")
}

func TestHistory_UppercaseICAO24Folded(t *testing.T) {
	sql := History(opensky.QueryParams{
		ICAO24: "485A32",
		Start:  "2025-01-01 10:00:00",
		Stop:   "2025-01-01 12:00:00",
	})

	assert.Contains(t, sql, "icao24 = '485a32'")
	assert.NotContains(t, sql, "485A32")
}

func TestHistory_Wildcard(t *testing.T) {
	sql := History(opensky.QueryParams{
		ICAO24: "485%",
		Start:  "2025-01-01 00:00:00",
		Stop:   "2025-01-01 23:59:59",
	})

	assert.Contains(t, sql, "icao24 LIKE '485%'")
	assert.NotContains(t, sql, "icao24 = ")
}

func TestHistory_CallsignUnderscoreWildcard(t *testing.T) {
	sql := History(opensky.QueryParams{
		Callsign: "KLM12_",
		Start:    "2025-01-01 00:00:00",
		Stop:     "2025-01-01 23:59:59",
	})

	assert.Contains(t, sql, "callsign LIKE 'KLM12_'")
}

func TestHistory_Bounds(t *testing.T) {
	sql := History(opensky.QueryParams{
		Start:  "2025-01-01 00:00:00",
		Stop:   "2025-01-01 23:59:59",
		Bounds: &opensky.Bounds{West: 3.3, South: 50.5, East: 7.2, North: 53.7},
	})

	assert.Contains(t, sql, "lon >= 3.3")
	assert.Contains(t, sql, "lon <= 7.2")
	assert.Contains(t, sql, "lat >= 50.5")
	assert.Contains(t, sql, "lat <= 53.7")
}

func TestHistory_Limit(t *testing.T) {
	sql := History(opensky.QueryParams{
		Start: "2025-01-01 00:00:00",
		Stop:  "2025-01-01 23:59:59",
		Limit: 100,
	})

	assert.True(t, strings.HasSuffix(sql, "LIMIT 100"))
}

func TestHistory_NoTimeRange(t *testing.T) {
	sql := History(opensky.QueryParams{ICAO24: "485a32"})

	assert.NotContains(t, sql, "time >=")
	assert.NotContains(t, sql, "hour >=")
	assert.Contains(t, sql, "icao24 = '485a32'")
}

func TestHistory_AirportJoin(t *testing.T) {
	sql := History(opensky.QueryParams{
		Start:            "2025-01-01 00:00:00",
		Stop:             "2025-01-01 23:59:59",
		DepartureAirport: "EHAM",
		ArrivalAirport:   "EGLL",
	})

	require.Contains(t, sql, "JOIN")
	assert.Contains(t, sql, "flights_data4")
	assert.Contains(t, sql, "estdepartureairport = 'EHAM'")
	assert.Contains(t, sql, "estarrivalairport = 'EGLL'")
	assert.Contains(t, sql, "sv.time >= fl.firstseen")
	assert.Contains(t, sql, "sv.time <= fl.lastseen")
	assert.Contains(t, sql, "sv.icao24 = fl.icao24")
	assert.Contains(t, sql, "ORDER BY sv.time")

	// Day bucket: 2025-01-01 floor, 2025-01-02 next midnight.
	assert.Contains(t, sql, "day >= 1735689600")
	assert.Contains(t, sql, "day <= 1735862400")
}

func TestHistory_GenericAirportExpandsToOr(t *testing.T) {
	sql := History(opensky.QueryParams{
		Start:   "2025-01-01 00:00:00",
		Stop:    "2025-01-01 23:59:59",
		Airport: "LFPG",
	})

	assert.Contains(t, sql, "(estdepartureairport = 'LFPG' OR estarrivalairport = 'LFPG')")
}

func TestHistory_AirportWithoutTimeRangeFallsBack(t *testing.T) {
	// Without start/stop the day bucket is undefined; the airport filter
	// is dropped and the non-join shape is produced.
	sql := History(opensky.QueryParams{
		ICAO24:           "485a32",
		DepartureAirport: "EHAM",
	})

	assert.NotContains(t, sql, "JOIN")
	assert.NotContains(t, sql, "EHAM")
	assert.Contains(t, sql, "icao24 = '485a32'")
}

func TestHistory_QuoteEscaping(t *testing.T) {
	sql := History(opensky.QueryParams{
		Callsign: "o'brien",
		Start:    "2025-01-01 00:00:00",
		Stop:     "2025-01-01 23:59:59",
	})

	assert.Contains(t, sql, "callsign = 'o''brien'")
}

func TestFlightList(t *testing.T) {
	sql := FlightList(opensky.QueryParams{
		Start:          "2025-01-01 00:00:00",
		Stop:           "2025-01-02 23:59:59",
		ArrivalAirport: "EGLL",
	})

	assert.True(t, strings.HasPrefix(sql, "SELECT icao24, callsign, firstseen, lastseen"))
	assert.Contains(t, sql, "FROM minio.osky.flights_data4")
	assert.Contains(t, sql, "day >= 1735689600")
	assert.Contains(t, sql, "estarrivalairport = 'EGLL'")
	assert.Contains(t, sql, "ORDER BY firstseen")
}

func TestRawData(t *testing.T) {
	sql := RawData(opensky.RawPosition, opensky.QueryParams{
		ICAO24: "485a32",
		Start:  "2025-01-01 10:00:00",
		Stop:   "2025-01-01 12:00:00",
		Limit:  50,
	})

	assert.Contains(t, sql, "SELECT mintime, rawmsg, icao24")
	assert.Contains(t, sql, "FROM minio.osky.position_data4")
	assert.Contains(t, sql, "mintime >= 1735725600")
	assert.Contains(t, sql, "hour < 1735736400")
	assert.Contains(t, sql, "ORDER BY mintime")
	assert.Contains(t, sql, "LIMIT 50")
}

func TestPreview(t *testing.T) {
	preview := Preview(opensky.QueryParams{
		ICAO24:           "485a32",
		Start:            "2025-01-01 10:00:00",
		Stop:             "2025-01-01 12:00:00",
		DepartureAirport: "EHAM",
	})

	assert.True(t, strings.HasPrefix(preview, "trino.history("))
	assert.True(t, strings.HasSuffix(preview, ")"))
	assert.Contains(t, preview, `icao24="485a32"`)
	assert.Contains(t, preview, `departure_airport="EHAM"`)
	assert.NotContains(t, preview, "callsign")
	assert.NotContains(t, preview, "limit")

	// Fixed field order: start before icao24.
	assert.Less(t, strings.Index(preview, "start="), strings.Index(preview, "icao24="))
}

func TestPreview_Empty(t *testing.T) {
	assert.Equal(t, "trino.history(\n)", Preview(opensky.QueryParams{}))
}
