package timeperiod_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avltr/personal_ledger_app/internal/utils/timeperiod"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// A mid-month, mid-week reference: Saturday 2026-08-15, 14:30.
var ref = time.Date(2026, time.August, 15, 14, 30, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	for raw, want := range map[string]timeperiod.Granularity{
		"day":     timeperiod.Day,
		"Weekly":  timeperiod.Week,
		"MONTH":   timeperiod.Month,
		"yearly":  timeperiod.Year,
		"monthly": timeperiod.Month,
	} {
		got, err := timeperiod.Parse(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := timeperiod.Parse("fortnight")
	assert.Error(t, err)
}

func TestDayBounds(t *testing.T) {
	start, end := timeperiod.Bounds(ref, 0, timeperiod.Day, time.Saturday)
	assert.Equal(t, date(2026, time.August, 15), start)
	assert.Equal(t, time.Date(2026, time.August, 15, 23, 59, 59, 0, time.UTC), end)

	start, _ = timeperiod.Bounds(ref, -3, timeperiod.Day, time.Saturday)
	assert.Equal(t, date(2026, time.August, 12), start)
}

func TestWeekBounds_FirstDayOfWeek(t *testing.T) {
	// Ref is a Saturday; with Saturday as first day the week starts today.
	start, end := timeperiod.Bounds(ref, 0, timeperiod.Week, time.Saturday)
	assert.Equal(t, date(2026, time.August, 15), start)
	assert.Equal(t, time.Date(2026, time.August, 21, 23, 59, 59, 0, time.UTC), end)

	// With Monday as first day the week started the preceding Monday.
	start, end = timeperiod.Bounds(ref, 0, timeperiod.Week, time.Monday)
	assert.Equal(t, date(2026, time.August, 10), start)
	assert.Equal(t, time.Date(2026, time.August, 16, 23, 59, 59, 0, time.UTC), end)

	// Previous week.
	start, _ = timeperiod.Bounds(ref, -1, timeperiod.Week, time.Saturday)
	assert.Equal(t, date(2026, time.August, 8), start)
}

func TestMonthBounds(t *testing.T) {
	start, end := timeperiod.Bounds(ref, 0, timeperiod.Month, time.Saturday)
	assert.Equal(t, date(2026, time.August, 1), start)
	assert.Equal(t, time.Date(2026, time.August, 31, 23, 59, 59, 0, time.UTC), end)

	// Offsets roll across year boundaries in both directions.
	start, _ = timeperiod.Bounds(ref, -8, timeperiod.Month, time.Saturday)
	assert.Equal(t, date(2025, time.December, 1), start)

	start, end = timeperiod.Bounds(ref, 5, timeperiod.Month, time.Saturday)
	assert.Equal(t, date(2027, time.January, 1), start)
	assert.Equal(t, time.Date(2027, time.January, 31, 23, 59, 59, 0, time.UTC), end)

	// A 31st reference must not overflow into the next month.
	jan31 := time.Date(2026, time.January, 31, 10, 0, 0, 0, time.UTC)
	start, end = timeperiod.Bounds(jan31, 1, timeperiod.Month, time.Saturday)
	assert.Equal(t, date(2026, time.February, 1), start)
	assert.Equal(t, time.Date(2026, time.February, 28, 23, 59, 59, 0, time.UTC), end)

	// Going back a full year and more.
	start, _ = timeperiod.Bounds(ref, -20, timeperiod.Month, time.Saturday)
	assert.Equal(t, date(2024, time.December, 1), start)
}

func TestYearBounds(t *testing.T) {
	start, end := timeperiod.Bounds(ref, -1, timeperiod.Year, time.Saturday)
	assert.Equal(t, date(2025, time.January, 1), start)
	assert.Equal(t, time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), end)
}

func TestDays(t *testing.T) {
	assert.Equal(t, 1, timeperiod.Days(ref, 0, timeperiod.Day, time.Saturday))
	assert.Equal(t, 7, timeperiod.Days(ref, 0, timeperiod.Week, time.Saturday))
	assert.Equal(t, 31, timeperiod.Days(ref, 0, timeperiod.Month, time.Saturday))
	assert.Equal(t, 28, timeperiod.Days(ref, -6, timeperiod.Month, time.Saturday)) // February 2026
	assert.Equal(t, 365, timeperiod.Days(ref, 0, timeperiod.Year, time.Saturday))
}
