// Package period holds the calendar arithmetic the aggregation layer is
// built on: half-open month intervals, month rollover and the set of months
// that have actually elapsed in a year.
package period

import "time"

// AdvanceMonth returns the year and month following the given month,
// handling the December to January rollover.
func AdvanceMonth(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// RetreatMonth returns the year and month preceding the given month,
// handling the January to December rollover.
func RetreatMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// MonthRange returns the half-open interval [start, end) covering the given
// month, at UTC midnight boundaries.
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	nextYear, nextMonth := AdvanceMonth(year, month)
	end := time.Date(nextYear, time.Month(nextMonth), 1, 0, 0, 0, 0, time.UTC)
	return start, end
}

// PreviousMonth returns the first day of the month before the reference date.
func PreviousMonth(reference time.Time) time.Time {
	year, month := RetreatMonth(reference.Year(), int(reference.Month()))
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// MonthsElapsed returns the months of the given year that have occurred as of
// now: all twelve for a past year, none for a future year, and 1..current
// month inclusive for the current year. It bounds yearly aggregation to
// months that actually happened.
func MonthsElapsed(year int, now time.Time) []int {
	switch {
	case year < now.Year():
		months := make([]int, 12)
		for i := range months {
			months[i] = i + 1
		}
		return months
	case year > now.Year():
		return nil
	default:
		months := make([]int, int(now.Month()))
		for i := range months {
			months[i] = i + 1
		}
		return months
	}
}
