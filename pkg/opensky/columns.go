package opensky

// TrajectoryColumns is the fixed column set returned by history queries
// against the state-vector table. Empty results are always shaped to
// this set so downstream consumers can rely on the schema.
var TrajectoryColumns = []string{
	"time",
	"icao24",
	"lat",
	"lon",
	"velocity",
	"heading",
	"vertrate",
	"callsign",
	"onground",
	"squawk",
	"baroaltitude",
	"geoaltitude",
	"hour",
}

// FlightListColumns is the column set returned by flight-list queries
// against the flight-segment table.
var FlightListColumns = []string{
	"icao24",
	"callsign",
	"firstseen",
	"lastseen",
	"estdepartureairport",
	"estarrivalairport",
	"day",
}

// RawDataColumns is the default column set for raw Mode S data queries.
var RawDataColumns = []string{
	"mintime",
	"rawmsg",
	"icao24",
}

// RawTable selects one of the raw Mode S message tables.
type RawTable int

const (
	// RawRollcallReplies is the Mode S rollcall replies table (default).
	RawRollcallReplies RawTable = iota
	// RawAcas is the ACAS/TCAS table.
	RawAcas
	// RawAllcallReplies is the all-call replies table.
	RawAllcallReplies
	// RawIdentification is the aircraft identification messages table.
	RawIdentification
	// RawOperationalStatus is the operational status messages table.
	RawOperationalStatus
	// RawPosition is the ADS-B position messages table.
	RawPosition
	// RawVelocity is the ADS-B velocity messages table.
	RawVelocity
)

// TableName returns the fully qualified engine table name.
func (t RawTable) TableName() string {
	switch t {
	case RawAcas:
		return "minio.osky.acas_data4"
	case RawAllcallReplies:
		return "minio.osky.allcall_replies_data4"
	case RawIdentification:
		return "minio.osky.identification_data4"
	case RawOperationalStatus:
		return "minio.osky.operational_status_data4"
	case RawPosition:
		return "minio.osky.position_data4"
	case RawVelocity:
		return "minio.osky.velocity_data4"
	default:
		return "minio.osky.rollcall_replies_data4"
	}
}
