package progression

import (
	"fmt"
	"time"
)

// DateKey returns the daily analytics bucket key (YYYY-MM-DD, UTC).
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MonthKey returns the monthly analytics bucket key (YYYY-MM, UTC).
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// WeekKey returns the weekly analytics bucket key (YYYY-Www, ISO week, UTC).
func WeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// startOfDay truncates a time to its UTC midnight boundary.
func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// elapsedDays returns the number of whole calendar days between two
// times, using midnight-aligned day boundaries rather than elapsed
// hours. A visit at 23:59 followed by one at 00:01 counts as one day.
func elapsedDays(from, to time.Time) int {
	return int(startOfDay(to).Sub(startOfDay(from)).Hours() / 24)
}
