package timeutil

import (
	"time"
	_ "time/tzdata"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// EasternZone is the timezone MLB schedules are keyed by.
const EasternZone = "America/New_York"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Eastern returns the US/Eastern location, falling back to UTC if tzdata is unavailable.
func Eastern() *time.Location {
	loc, err := time.LoadLocation(EasternZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// TodayEastern returns the schedule date for now in Eastern Time.
func TodayEastern(now time.Time) string {
	return FormatDate(now.In(Eastern()))
}

// ShiftDate moves a YYYY-MM-DD date by days. Invalid input is returned unchanged.
func ShiftDate(date string, days int) string {
	parsed, err := ParseDate(date)
	if err != nil {
		return date
	}
	return FormatDate(parsed.AddDate(0, 0, days))
}

// FormatGameTime renders an ISO-8601 UTC game time in loc.
// Unparseable timestamps pass through verbatim.
func FormatGameTime(raw string, loc *time.Location) string {
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	if loc == nil {
		loc = time.UTC
	}
	return parsed.In(loc).Format("2006-01-02 3:04 PM MST")
}
