package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayKeyConvertsToBerlin(t *testing.T) {
	// 22:30 UTC in June is 00:30 CEST the next day.
	utc := time.Date(2024, 6, 1, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-02", DayKey(utc))

	// In winter (CET, +1) the same clock time stays on the first day.
	winter := time.Date(2024, 1, 1, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01", DayKey(winter))
}

func TestStartAndEndOfDay(t *testing.T) {
	ts := time.Date(2024, 6, 15, 13, 45, 12, 0, Berlin)

	start := StartOfDay(ts)
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 15, start.Day())

	end := EndOfDay(ts)
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.After(ts))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 6, 10, 23, 0, 0, 0, Berlin)
	b := time.Date(2024, 6, 13, 1, 0, 0, 0, Berlin)

	// Whole local days, independent of clock times.
	assert.Equal(t, 3, DaysBetween(a, b))
	assert.Equal(t, 0, DaysBetween(a, a))

	// Clamped at zero when the end lies in the past.
	assert.Equal(t, 0, DaysBetween(b, a))
}

func TestParseInBerlin(t *testing.T) {
	ts, err := ParseInBerlin(DateLayout, "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", ts.Location().String())
	assert.Equal(t, 1, ts.Day())

	_, err = ParseInBerlin(DateLayout, "01.06.2024")
	assert.Error(t, err)
}
