package query

import (
	"fmt"
	"strings"

	"github.com/junzis/opensky-go/pkg/opensky"
)

// Preview renders a human-readable call-style representation of the
// parameters for display and debugging. It is not executable SQL. Only
// parameters that are actually set are listed, one per line, in a fixed
// field order.
func Preview(p opensky.QueryParams) string {
	parts := []string{"trino.history("}

	if p.Start != "" {
		parts = append(parts, fmt.Sprintf("    start=%q,", p.Start))
	}
	if p.Stop != "" {
		parts = append(parts, fmt.Sprintf("    stop=%q,", p.Stop))
	}
	if p.ICAO24 != "" {
		parts = append(parts, fmt.Sprintf("    icao24=%q,", p.ICAO24))
	}
	if p.Callsign != "" {
		parts = append(parts, fmt.Sprintf("    callsign=%q,", p.Callsign))
	}
	if p.DepartureAirport != "" {
		parts = append(parts, fmt.Sprintf("    departure_airport=%q,", p.DepartureAirport))
	}
	if p.ArrivalAirport != "" {
		parts = append(parts, fmt.Sprintf("    arrival_airport=%q,", p.ArrivalAirport))
	}
	if p.Airport != "" {
		parts = append(parts, fmt.Sprintf("    airport=%q,", p.Airport))
	}
	if p.Bounds != nil {
		parts = append(parts, fmt.Sprintf("    bounds=(%v, %v, %v, %v),",
			p.Bounds.West, p.Bounds.South, p.Bounds.East, p.Bounds.North))
	}
	if p.Limit > 0 {
		parts = append(parts, fmt.Sprintf("    limit=%d,", p.Limit))
	}

	parts = append(parts, ")")
	return strings.Join(parts, "\n")
}
