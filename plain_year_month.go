package temporal

import (
	"fmt"

	"github.com/go-temporal/temporal/internal/calendarmath"
)

// PlainYearMonth is a partial ISO date carrying only a year and month,
// anchored internally to day 1 of that month so its arithmetic can reuse
// PlainDate (spec.md §3.5). Equality and ordering ignore the reference
// day; only Year and Month participate.
type PlainYearMonth struct {
	ref PlainDate
}

// NewPlainYearMonth constructs a PlainYearMonth.
func NewPlainYearMonth(year int64, month int, overflow Overflow) (PlainYearMonth, error) {
	d, err := NewPlainDate(year, month, 1, overflow)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return PlainYearMonth{ref: d}, nil
}

func (ym PlainYearMonth) Year() int64  { return ym.ref.Year() }
func (ym PlainYearMonth) Month() Month { return ym.ref.Month() }

// DaysInMonth returns the number of days in this year-month.
func (ym PlainYearMonth) DaysInMonth() int {
	return calendarmath.DaysInMonth(ym.ref.Year(), int(ym.ref.Month()))
}

// IsLeapYear reports whether ym's year is a leap year.
func (ym PlainYearMonth) IsLeapYear() bool {
	return ym.ref.IsLeapYear()
}

// Compare orders two year-months by (year, month); the reference day is
// not considered, per spec.md §3.5.
func (ym PlainYearMonth) Compare(other PlainYearMonth) int {
	if ym.Year() != other.Year() {
		if ym.Year() < other.Year() {
			return -1
		}
		return 1
	}
	if ym.Month() != other.Month() {
		if ym.Month() < other.Month() {
			return -1
		}
		return 1
	}
	return 0
}

// Equal reports whether ym and other name the same year and month.
func (ym PlainYearMonth) Equal(other PlainYearMonth) bool {
	return ym.Compare(other) == 0
}

// WithDay anchors ym to a specific day, producing a full PlainDate.
func (ym PlainYearMonth) WithDay(day int, overflow Overflow) (PlainDate, error) {
	return NewPlainDate(ym.Year(), int(ym.Month()), day, overflow)
}

func (ym PlainYearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year(), int(ym.Month()))
}

// PlainMonthDay is a partial ISO date carrying only a month and day,
// anchored to a reference year in which the (month, day) pair exists
// (spec.md §3.5). A reference year of a leap year is used by default so
// that February 29 is always representable; equality and ordering ignore
// the reference year.
type PlainMonthDay struct {
	ref PlainDate
}

// referenceLeapYear is an arbitrary leap year used to anchor a
// PlainMonthDay when the caller doesn't supply one, so that Feb-29
// month-days are always constructible.
const referenceLeapYear = 1972

// NewPlainMonthDay constructs a PlainMonthDay using referenceLeapYear as
// its anchor year.
func NewPlainMonthDay(month int, day int, overflow Overflow) (PlainMonthDay, error) {
	d, err := NewPlainDate(referenceLeapYear, month, day, overflow)
	if err != nil {
		return PlainMonthDay{}, err
	}
	return PlainMonthDay{ref: d}, nil
}

// NewPlainMonthDayIn anchors the month-day to a caller-supplied reference
// year, for callers who need (month, day) pairs that only exist in
// specific years (there are none in the Gregorian calendar, but the hook
// mirrors PlainYearMonth's symmetry and supports round-tripping a
// PlainDate's (month, day) without losing its original year entirely).
func NewPlainMonthDayIn(referenceYear int64, month, day int, overflow Overflow) (PlainMonthDay, error) {
	d, err := NewPlainDate(referenceYear, month, day, overflow)
	if err != nil {
		return PlainMonthDay{}, err
	}
	return PlainMonthDay{ref: d}, nil
}

func (md PlainMonthDay) Month() Month { return md.ref.Month() }
func (md PlainMonthDay) Day() int     { return md.ref.Day() }

// Compare orders two month-days by (month, day); the reference year is
// not considered, per spec.md §3.5.
func (md PlainMonthDay) Compare(other PlainMonthDay) int {
	if md.Month() != other.Month() {
		if md.Month() < other.Month() {
			return -1
		}
		return 1
	}
	if md.Day() != other.Day() {
		if md.Day() < other.Day() {
			return -1
		}
		return 1
	}
	return 0
}

// Equal reports whether md and other name the same month and day.
func (md PlainMonthDay) Equal(other PlainMonthDay) bool {
	return md.Compare(other) == 0
}

// InYear anchors md to a specific year, producing a full PlainDate.
func (md PlainMonthDay) InYear(year int64, overflow Overflow) (PlainDate, error) {
	return NewPlainDate(year, int(md.Month()), md.Day(), overflow)
}

func (md PlainMonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month()), md.Day())
}
