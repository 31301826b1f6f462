// Package timeperiod computes the date interval covered by a rolling period
// such as "this month" or "two weeks ago". A period is identified by a
// granularity and an integer offset relative to a reference instant
// (0 = current period, -1 = previous, +1 = next).
package timeperiod

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the unit a period offset counts in.
type Granularity int

const (
	Day Granularity = iota
	Week
	Month
	Year
)

func (g Granularity) String() string {
	switch g {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	default:
		panic(fmt.Sprintf("unknown granularity %d", g))
	}
}

// Parse converts a granularity name to a Granularity.
func Parse(s string) (Granularity, error) {
	switch strings.ToLower(s) {
	case "day", "daily":
		return Day, nil
	case "week", "weekly":
		return Week, nil
	case "month", "monthly":
		return Month, nil
	case "year", "yearly":
		return Year, nil
	default:
		return Day, fmt.Errorf("unknown granularity %q", s)
	}
}

// endOfDayOffset places an interval end at 23:59:59 of its last day.
const endOfDayOffset = 24*time.Hour - time.Second

// Bounds returns the [start, end] interval of the period at the given offset
// from now. Start is midnight of the first day; end is 23:59:59 of the last
// day. firstDayOfWeek only matters for Week and follows time.Weekday
// numbering (0 = Sunday).
func Bounds(now time.Time, offset int, g Granularity, firstDayOfWeek time.Weekday) (time.Time, time.Time) {
	switch g {
	case Day:
		return dayBounds(now, offset)
	case Week:
		return weekBounds(now, offset, firstDayOfWeek)
	case Month:
		return monthBounds(now, offset)
	case Year:
		return yearBounds(now, offset)
	default:
		panic(fmt.Sprintf("unknown granularity %d", g))
	}
}

// Days returns the number of calendar days the period spans.
func Days(now time.Time, offset int, g Granularity, firstDayOfWeek time.Weekday) int {
	start, end := Bounds(now, offset, g, firstDayOfWeek)
	return int(end.Sub(start).Hours()/24) + 1
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayBounds(now time.Time, offset int) (time.Time, time.Time) {
	start := midnight(now.AddDate(0, 0, offset))
	return start, start.Add(endOfDayOffset)
}

func weekBounds(now time.Time, offset int, firstDay time.Weekday) (time.Time, time.Time) {
	ref := now.AddDate(0, 0, 7*offset)
	// Most recent occurrence of firstDay at or before ref.
	back := (int(ref.Weekday()) - int(firstDay) + 7) % 7
	start := midnight(ref.AddDate(0, 0, -back))
	return start, start.AddDate(0, 0, 6).Add(endOfDayOffset)
}

func monthBounds(now time.Time, offset int) (time.Time, time.Time) {
	// Normalize month arithmetic by hand so that offsets roll year boundaries
	// correctly in both directions (AddDate on a day like Jan 31 would
	// overflow into the following month).
	month := int(now.Month()) + offset
	year := now.Year() + (month-1)/12
	month = (month-1)%12 + 1
	if month <= 0 { // Go integer division truncates toward zero
		month += 12
		year--
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0).Add(-time.Second)
}

func yearBounds(now time.Time, offset int) (time.Time, time.Time) {
	year := now.Year() + offset
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, now.Location())
	return start, end
}
