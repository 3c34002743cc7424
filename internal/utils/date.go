package utils

import (
	"time"
)

func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AtClock places a wall-clock offset (e.g. 9h30m) on the day of t.
// The result is built from calendar fields so DST transitions do not shift it.
func AtClock(t time.Time, clock time.Duration) time.Time {
	hours := int(clock / time.Hour)
	minutes := int((clock % time.Hour) / time.Minute)
	return time.Date(t.Year(), t.Month(), t.Day(), hours, minutes, 0, 0, t.Location())
}

// ParseClock parses "15:04" into an offset from midnight.
func ParseClock(str string) (time.Duration, error) {
	parsed, err := time.Parse("15:04", str)
	if err != nil {
		return 0, err
	}
	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, nil
}
