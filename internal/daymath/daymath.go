// Package daymath provides calendar-day arithmetic over time.Time values.
package daymath

import "time"

// Day returns midnight UTC of t's calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed number of whole calendar days from a to b.
// It is negative when a's date is after b's.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
