// Package query compiles declarative query parameters into SQL text for
// the OpenSky Trino database.
//
// OpenSky stores timestamps as Unix epoch integers, not SQL TIMESTAMP
// types, and partitions the state-vector table by hour and the
// flight-segment table by day. Every compiled query carries the matching
// bucket predicates so the engine can prune partitions.
package query

import (
	"fmt"
	"strings"

	"github.com/junzis/opensky-go/pkg/opensky"
)

// StateVectorsTable is the main table for state-vector data.
const StateVectorsTable = "minio.osky.state_vectors_data4"

// FlightsTable is the flight-segment table used for airport filtering.
const FlightsTable = "minio.osky.flights_data4"

// History compiles the history query: a SELECT against the state-vector
// table, optionally joined to the flight-segment table when an airport
// filter is present. The function is total and never fails; malformed
// timestamps degrade per parseDateTime.
func History(p opensky.QueryParams) string {
	columns := strings.Join(opensky.TrajectoryColumns, ", ")

	if p.HasAirportFilter() {
		return airportJoinQuery(p, columns)
	}
	return simpleQuery(p, columns)
}

// simpleQuery builds the non-join shape.
func simpleQuery(p opensky.QueryParams, columns string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s\nFROM %s\nWHERE 1=1", columns, StateVectorsTable)

	if p.HasTimeRange() {
		startTS := epochSeconds(p.Start)
		stopTS := epochSeconds(p.Stop)
		startHour, stopHour := hourBounds(p.Start, p.Stop)

		fmt.Fprintf(&b, "\n  AND time >= %d", startTS)
		fmt.Fprintf(&b, "\n  AND time <= %d", stopTS)
		fmt.Fprintf(&b, "\n  AND hour >= %d", startHour)
		fmt.Fprintf(&b, "\n  AND hour < %d", stopHour)
	}

	if p.ICAO24 != "" {
		icao24 := strings.ToLower(p.ICAO24)
		fmt.Fprintf(&b, "\n  AND icao24 %s '%s'", matchOperator(icao24), escape(icao24))
	}

	if p.Callsign != "" {
		fmt.Fprintf(&b, "\n  AND callsign %s '%s'", matchOperator(p.Callsign), escape(p.Callsign))
	}

	if p.Bounds != nil {
		fmt.Fprintf(&b, "\n  AND lon >= %v", p.Bounds.West)
		fmt.Fprintf(&b, "\n  AND lon <= %v", p.Bounds.East)
		fmt.Fprintf(&b, "\n  AND lat >= %v", p.Bounds.South)
		fmt.Fprintf(&b, "\n  AND lat <= %v", p.Bounds.North)
	}

	b.WriteString("\nORDER BY time")

	if p.Limit > 0 {
		fmt.Fprintf(&b, "\nLIMIT %d", p.Limit)
	}

	return b.String()
}

// airportJoinQuery builds the joined shape: a correlated subquery
// against the flight-segment table constrains the trajectory rows to the
// matched segment's firstseen/lastseen window.
//
// Without a complete time range the day bucket for the subquery cannot
// be computed, so the query degrades to the non-join shape and the
// airport filters are silently dropped. Known simplification carried
// over from the reference client.
func airportJoinQuery(p opensky.QueryParams, columns string) string {
	if !p.HasTimeRange() {
		return simpleQuery(p, columns)
	}

	startTS := epochSeconds(p.Start)
	stopTS := epochSeconds(p.Stop)
	startHour, stopHour := hourBounds(p.Start, p.Stop)
	startDay, stopDay := dayBounds(p.Start, p.Stop)

	flightsWhere := []string{
		fmt.Sprintf("day >= %d", startDay),
		fmt.Sprintf("day <= %d", stopDay),
	}

	if p.ICAO24 != "" {
		flightsWhere = append(flightsWhere,
			fmt.Sprintf("icao24 = '%s'", escape(strings.ToLower(p.ICAO24))))
	}
	if p.Callsign != "" {
		flightsWhere = append(flightsWhere,
			fmt.Sprintf("callsign = '%s'", escape(p.Callsign)))
	}
	if p.DepartureAirport != "" {
		flightsWhere = append(flightsWhere,
			fmt.Sprintf("estdepartureairport = '%s'", escape(p.DepartureAirport)))
	}
	if p.ArrivalAirport != "" {
		flightsWhere = append(flightsWhere,
			fmt.Sprintf("estarrivalairport = '%s'", escape(p.ArrivalAirport)))
	}
	if p.Airport != "" {
		flightsWhere = append(flightsWhere,
			fmt.Sprintf("(estdepartureairport = '%s' OR estarrivalairport = '%s')",
				escape(p.Airport), escape(p.Airport)))
	}

	flightsSubquery := fmt.Sprintf("SELECT icao24, callsign, firstseen, lastseen\nFROM %s\nWHERE %s",
		FlightsTable, strings.Join(flightsWhere, "\n  AND "))

	prefixed := make([]string, 0, len(opensky.TrajectoryColumns))
	for _, c := range opensky.TrajectoryColumns {
		prefixed = append(prefixed, "sv."+c)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s\nFROM %s sv\nJOIN (%s) fl\n  ON sv.icao24 = fl.icao24 AND sv.callsign = fl.callsign",
		strings.Join(prefixed, ", "), StateVectorsTable, flightsSubquery)
	fmt.Fprintf(&b, "\nWHERE sv.time >= fl.firstseen")
	fmt.Fprintf(&b, "\n  AND sv.time <= fl.lastseen")
	fmt.Fprintf(&b, "\n  AND sv.time >= %d", startTS)
	fmt.Fprintf(&b, "\n  AND sv.time <= %d", stopTS)
	fmt.Fprintf(&b, "\n  AND sv.hour >= %d", startHour)
	fmt.Fprintf(&b, "\n  AND sv.hour < %d", stopHour)

	if p.Bounds != nil {
		fmt.Fprintf(&b, "\n  AND sv.lon >= %v", p.Bounds.West)
		fmt.Fprintf(&b, "\n  AND sv.lon <= %v", p.Bounds.East)
		fmt.Fprintf(&b, "\n  AND sv.lat >= %v", p.Bounds.South)
		fmt.Fprintf(&b, "\n  AND sv.lat <= %v", p.Bounds.North)
	}

	b.WriteString("\nORDER BY sv.time")

	if p.Limit > 0 {
		fmt.Fprintf(&b, "\nLIMIT %d", p.Limit)
	}

	return b.String()
}

// FlightList compiles a query for flight segments: which aircraft flew
// where during the time window, one row per movement.
func FlightList(p opensky.QueryParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s\nFROM %s\nWHERE 1=1",
		strings.Join(opensky.FlightListColumns, ", "), FlightsTable)

	if p.HasTimeRange() {
		startDay, stopDay := dayBounds(p.Start, p.Stop)
		fmt.Fprintf(&b, "\n  AND day >= %d", startDay)
		fmt.Fprintf(&b, "\n  AND day <= %d", stopDay)
		fmt.Fprintf(&b, "\n  AND firstseen >= %d", epochSeconds(p.Start))
		fmt.Fprintf(&b, "\n  AND firstseen <= %d", epochSeconds(p.Stop))
	}

	if p.ICAO24 != "" {
		icao24 := strings.ToLower(p.ICAO24)
		fmt.Fprintf(&b, "\n  AND icao24 %s '%s'", matchOperator(icao24), escape(icao24))
	}
	if p.Callsign != "" {
		fmt.Fprintf(&b, "\n  AND callsign %s '%s'", matchOperator(p.Callsign), escape(p.Callsign))
	}
	if p.DepartureAirport != "" {
		fmt.Fprintf(&b, "\n  AND estdepartureairport = '%s'", escape(p.DepartureAirport))
	}
	if p.ArrivalAirport != "" {
		fmt.Fprintf(&b, "\n  AND estarrivalairport = '%s'", escape(p.ArrivalAirport))
	}
	if p.Airport != "" {
		fmt.Fprintf(&b, "\n  AND (estdepartureairport = '%s' OR estarrivalairport = '%s')",
			escape(p.Airport), escape(p.Airport))
	}

	b.WriteString("\nORDER BY firstseen")

	if p.Limit > 0 {
		fmt.Fprintf(&b, "\nLIMIT %d", p.Limit)
	}

	return b.String()
}

// RawData compiles a query against one of the raw Mode S message tables.
// Raw tables are partitioned by hour like the state-vector table; the
// record timestamp column is mintime.
func RawData(table opensky.RawTable, p opensky.QueryParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s\nFROM %s\nWHERE 1=1",
		strings.Join(opensky.RawDataColumns, ", "), table.TableName())

	if p.HasTimeRange() {
		startHour, stopHour := hourBounds(p.Start, p.Stop)
		fmt.Fprintf(&b, "\n  AND mintime >= %d", epochSeconds(p.Start))
		fmt.Fprintf(&b, "\n  AND mintime <= %d", epochSeconds(p.Stop))
		fmt.Fprintf(&b, "\n  AND hour >= %d", startHour)
		fmt.Fprintf(&b, "\n  AND hour < %d", stopHour)
	}

	if p.ICAO24 != "" {
		icao24 := strings.ToLower(p.ICAO24)
		fmt.Fprintf(&b, "\n  AND icao24 %s '%s'", matchOperator(icao24), escape(icao24))
	}

	b.WriteString("\nORDER BY mintime")

	if p.Limit > 0 {
		fmt.Fprintf(&b, "\nLIMIT %d", p.Limit)
	}

	return b.String()
}

// matchOperator returns LIKE when the value contains a SQL wildcard,
// = otherwise.
func matchOperator(value string) string {
	if strings.ContainsAny(value, "%_") {
		return "LIKE"
	}
	return "="
}

// escape doubles single quotes inside a SQL string literal. No other
// escaping is performed; values come from structured parameters, not
// free-form SQL.
func escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
