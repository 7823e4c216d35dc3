package temporal

import (
	"fmt"

	"github.com/go-temporal/temporal/internal/calendarmath"
)

// PlainDate is a year-month-day triple in the proleptic Gregorian (ISO
// 8601) calendar, carrying no time-of-day or time-zone information
// (spec.md §3.2).
//
// Internally a date is stored as a signed day count relative to the Unix
// epoch (1970-01-01 == 0), the same representation go-chrono's LocalDate
// uses (there, as a Julian Day Number offset); here the epoch-day kernel
// is internal/calendarmath rather than a hand-rolled JDN formula, and
// construction returns an error instead of panicking.
type PlainDate struct {
	days int64
}

// NewPlainDate constructs a PlainDate from year/month/day components.
// overflow selects the behavior when month or day falls outside its
// natural range: Constrain clamps, Reject fails with KindRange.
func NewPlainDate(year int64, month, day int, overflow Overflow) (PlainDate, error) {
	if overflow == Constrain {
		year, month, day = calendarmath.ConstrainDate(year, month, day)
	}
	days, err := calendarmath.DaysFromCivil(year, month, day)
	if err != nil {
		return PlainDate{}, rangeErrorf("plain date %04d-%02d-%02d: %v", year, month, day, err)
	}
	return PlainDate{days: days}, nil
}

// plainDateFromDays wraps an already-validated epoch-day count.
func plainDateFromDays(days int64) PlainDate {
	return PlainDate{days: days}
}

// MinPlainDate and MaxPlainDate are the representable extremes of §3.2.
func MinPlainDate() PlainDate {
	return PlainDate{days: calendarmath.MinEpochDay}
}

func MaxPlainDate() PlainDate {
	return PlainDate{days: calendarmath.MaxEpochDay}
}

// Year, Month, and Day return the date's calendar fields.
func (d PlainDate) Year() int64 {
	y, _, _ := calendarmath.CivilFromDays(d.days)
	return y
}

func (d PlainDate) Month() Month {
	_, m, _ := calendarmath.CivilFromDays(d.days)
	return Month(m)
}

func (d PlainDate) Day() int {
	_, _, day := calendarmath.CivilFromDays(d.days)
	return day
}

// Date returns all three fields in one call.
func (d PlainDate) Date() (year int64, month Month, day int) {
	y, m, dd := calendarmath.CivilFromDays(d.days)
	return y, Month(m), dd
}

// IsLeapYear reports whether d falls in a leap year.
func (d PlainDate) IsLeapYear() bool {
	y, _, _ := calendarmath.CivilFromDays(d.days)
	return calendarmath.IsLeapYear(y)
}

// Weekday returns the day of the week d falls on.
func (d PlainDate) Weekday() Weekday {
	return Weekday(calendarmath.DayOfWeek(d.days))
}

// DayOfYear returns the 1-based ordinal day of the year d falls on.
func (d PlainDate) DayOfYear() int {
	y, m, day := calendarmath.CivilFromDays(d.days)
	return calendarmath.DayOfYear(y, m, day)
}

// ISOWeek returns the ISO 8601 (year, week) pair d falls in.
func (d PlainDate) ISOWeek() (isoYear, isoWeek int) {
	return calendarmath.ISOWeek(d.days)
}

// epochDay exposes the internal day count to sibling types in this
// package (PlainDateTime, ZonedDateTime) without widening the public API.
func (d PlainDate) epochDay() int64 { return d.days }

// AddDate returns d shifted by the given number of years, months, and
// days, applying overflow to the intermediate year/month/day result
// before converting back to a day count.
func (d PlainDate) AddDate(years int64, months, days int, overflow Overflow) (PlainDate, error) {
	y, m, day := calendarmath.CivilFromDays(d.days)
	y += years

	// Normalize month overflow/underflow from adding months before
	// constrain/reject is applied to the day component.
	total := int64(m-1) + int64(months)
	yShift := total / 12
	m = int(total%12) + 1
	if m <= 0 {
		m += 12
		yShift--
	}
	y += yShift

	nd, err := NewPlainDate(y, m, day, overflow)
	if err != nil {
		return PlainDate{}, err
	}
	if days == 0 {
		return nd, nil
	}
	return plainDateFromDays(nd.days + int64(days)), nil
}

// Compare orders two plain dates; plain dates are totally ordered
// lexicographically by (year, month, day), equivalent to comparing their
// epoch-day counts (spec.md §3.2).
func (d PlainDate) Compare(other PlainDate) int {
	switch {
	case d.days < other.days:
		return -1
	case d.days > other.days:
		return 1
	default:
		return 0
	}
}

// Equal reports whether d and other represent the same date.
func (d PlainDate) Equal(other PlainDate) bool {
	return d.days == other.days
}

func (d PlainDate) String() string {
	y, m, day := calendarmath.CivilFromDays(d.days)
	return fmt.Sprintf("%04d-%02d-%02d", y, m, day)
}
