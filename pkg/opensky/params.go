// Package opensky holds the core types shared across the client:
// query parameters, the trajectory column sets, and the error taxonomy.
package opensky

// Bounds is a geographic bounding box in degrees (west, south, east,
// north). No normalization is performed: a west value greater than east
// is passed through verbatim and is the caller's responsibility.
type Bounds struct {
	West  float64
	South float64
	East  float64
	North float64
}

// QueryParams describes a history query declaratively. All fields are
// optional; the zero value selects everything (an engine-side full scan,
// discouraged but not rejected here).
//
// Start and Stop are naive UTC date-times in "YYYY-MM-DD HH:MM:SS" form.
// A date-only value is accepted; the compiler fills in a default
// time-of-day.
type QueryParams struct {
	// ICAO24 is the aircraft transponder code (hex string, e.g. "485a32").
	// May contain SQL wildcards (% or _) for pattern matching.
	ICAO24 string

	Start string
	Stop  string

	// Callsign may contain SQL wildcards for pattern matching.
	Callsign string

	Bounds *Bounds

	// DepartureAirport and ArrivalAirport are ICAO codes (e.g. "EHAM").
	// Airport matches either end of the flight. Setting any of the three
	// switches the compiler to the flight-segment join shape.
	DepartureAirport string
	ArrivalAirport   string
	Airport          string

	// Limit caps the number of returned rows. Zero means no limit.
	Limit int
}

// HasAirportFilter reports whether any airport constraint is set,
// which selects the joined query shape.
func (p QueryParams) HasAirportFilter() bool {
	return p.DepartureAirport != "" || p.ArrivalAirport != "" || p.Airport != ""
}

// HasTimeRange reports whether both ends of the time window are set.
func (p QueryParams) HasTimeRange() bool {
	return p.Start != "" && p.Stop != ""
}

// IsZero reports whether no parameter is set.
func (p QueryParams) IsZero() bool {
	return p.ICAO24 == "" && p.Start == "" && p.Stop == "" &&
		p.Callsign == "" && p.Bounds == nil &&
		p.DepartureAirport == "" && p.ArrivalAirport == "" && p.Airport == "" &&
		p.Limit == 0
}
