package query

import "time"

// dateTimeLayout is the naive UTC timestamp form accepted everywhere.
const dateTimeLayout = "2006-01-02 15:04:05"

// parseDateTime parses a "YYYY-MM-DD HH:MM:SS" string as UTC. A
// date-only value is completed with the given time-of-day. Unparseable
// input falls back to the Unix epoch; user-facing validation is the
// caller's job, the compiler stays total.
func parseDateTime(s, defaultTime string) time.Time {
	if t, err := time.ParseInLocation(dateTimeLayout, s, time.UTC); err == nil {
		return t
	}
	if t, err := time.ParseInLocation(dateTimeLayout, s+" "+defaultTime, time.UTC); err == nil {
		return t
	}
	return time.Unix(0, 0).UTC()
}

// epochSeconds converts a timestamp string to integer Unix seconds.
func epochSeconds(s string) int64 {
	return parseDateTime(s, "00:00:00").Unix()
}

// hourBounds computes the hour-bucket range for partition pruning:
// start floored to the top of its hour, stop ceiled to the start of the
// next hour. The upper bound is meant for a half-open (<) predicate.
func hourBounds(start, stop string) (int64, int64) {
	startDT := parseDateTime(start, "00:00:00")
	stopDT := parseDateTime(stop, "23:59:59")

	startHour := startDT.Truncate(time.Hour)
	stopHour := stopDT.Truncate(time.Hour).Add(time.Hour)

	return startHour.Unix(), stopHour.Unix()
}

// dayBounds computes the day-bucket range for the flight-segment table:
// start floored to midnight, stop ceiled to the next day's midnight.
func dayBounds(start, stop string) (int64, int64) {
	startDT := parseDateTime(start, "00:00:00")
	stopDT := parseDateTime(stop, "23:59:59")

	startDay := time.Date(startDT.Year(), startDT.Month(), startDT.Day(), 0, 0, 0, 0, time.UTC)
	stopDay := time.Date(stopDT.Year(), stopDT.Month(), stopDT.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	return startDay.Unix(), stopDay.Unix()
}
