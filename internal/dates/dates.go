// Package dates resolves the loosely formatted date strings used by the
// source site, including Republic-of-China calendar years, into civil dates.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ROCYearOffset converts a Republic-of-China calendar year to Gregorian.
const ROCYearOffset = 1911

var numericGroups = regexp.MustCompile(`\d+`)

// Date is a civil calendar date with day resolution and no timezone.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC on the date, used for day arithmetic.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns other - d in whole days.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

// Resolve parses a raw date string into a Date. Up to three numeric groups
// are read as (year, month, day), month and day defaulting to 1. A leading
// group below 1900 is treated as a Republic-of-China year and shifted by
// ROCYearOffset. ok is false when no numeric group exists or the result is
// not a valid calendar date.
func Resolve(raw string) (Date, bool) {
	groups := numericGroups.FindAllString(raw, 3)
	if len(groups) == 0 {
		return Date{}, false
	}

	year, err := strconv.Atoi(groups[0])
	if err != nil || year <= 0 {
		return Date{}, false
	}
	if year < 1900 {
		year += ROCYearOffset
	}

	month, day := 1, 1
	if len(groups) > 1 {
		month, _ = strconv.Atoi(groups[1])
	}
	if len(groups) > 2 {
		day, _ = strconv.Atoi(groups[2])
	}

	d := Date{Year: year, Month: month, Day: day}
	if !d.valid() {
		return Date{}, false
	}
	return d, true
}

// valid rejects dates that time normalization would silently roll over,
// e.g. 113/2/30.
func (d Date) valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return false
	}
	t := d.Time()
	return t.Year() == d.Year && int(t.Month()) == d.Month && t.Day() == d.Day
}

// Today returns the current calendar day anchored to loc. Classification must
// agree on a calendar day regardless of where the process runs, so callers
// pass the viewer timezone rather than relying on server local time.
func Today(loc *time.Location) Date {
	now := time.Now().In(loc)
	return Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}
