package calendar

import (
	"math"
	"time"
)

// DaysInMonth returns the number of days in the given month, accounting
// for leap years.
func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay resolves a nominal day-of-month against the actual length of the
// month, so a due day of 31 falls on the 30th in a 30-day month.
func ClampDay(day, year, month int) int {
	if last := DaysInMonth(year, month); day > last {
		return last
	}

	return day
}

// Advance moves a fractional month cursor forward (or backward) by delta
// months, carrying overflow into the year so that the floored month stays
// within [1,12].
func Advance(month float64, year int, delta float64) (float64, int) {
	month += delta

	for month >= 13 {
		month -= 12
		year++
	}

	for month < 1 {
		month += 12
		year--
	}

	return month, year
}

// MonthOf floors a fractional month cursor to the integer month it falls in.
func MonthOf(cursor float64) int {
	return int(math.Floor(cursor))
}

// YearRange lists selectable years from startYear through next year,
// ascending. It is regenerated on every call so the range tracks the clock.
func YearRange(startYear int, now time.Time) []int {
	last := now.Year() + 1
	if startYear > last {
		return nil
	}

	years := make([]int, 0, last-startYear+1)
	for y := startYear; y <= last; y++ {
		years = append(years, y)
	}

	return years
}
