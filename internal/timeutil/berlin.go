package timeutil

import (
	"time"
)

// Berlin is the fixed campaign timezone. Day bucketing, days-remaining and
// wave lifecycle are all anchored here regardless of the client's zone.
var Berlin *time.Location

func init() {
	var err error
	Berlin, err = time.LoadLocation("Europe/Berlin")
	if err != nil {
		// Fallback: fixed CET if the tz database is not available
		Berlin = time.FixedZone("CET", 1*60*60)
	}
}

// Now returns the current time in the campaign timezone
func Now() time.Time {
	return time.Now().In(Berlin)
}

// ToBerlin converts any time to the campaign timezone
func ToBerlin(t time.Time) time.Time {
	return t.In(Berlin)
}

// ParseInBerlin parses a time string in the campaign timezone
func ParseInBerlin(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, Berlin)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// DayKey returns the local calendar day of t as YYYY-MM-DD. Two submissions
// minutes apart can land in different buckets when local midnight passes
// between them; field activity is day-bounded by local business hours.
func DayKey(t time.Time) string {
	return t.In(Berlin).Format(DateLayout)
}

// StartOfDay returns 00:00:00 of t's local day
func StartOfDay(t time.Time) time.Time {
	b := t.In(Berlin)
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, Berlin)
}

// EndOfDay returns the last nanosecond of t's local day
func EndOfDay(t time.Time) time.Time {
	b := t.In(Berlin)
	return time.Date(b.Year(), b.Month(), b.Day(), 23, 59, 59, 999999999, Berlin)
}

// DaysBetween counts whole local days from a to b, clamped at 0
func DaysBetween(a, b time.Time) int {
	from := StartOfDay(a)
	to := StartOfDay(b)
	d := int(to.Sub(from).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)
