// Package calendarmath implements component A of spec.md (§4.1): the
// epoch/calendar primitives used by every plain-date-shaped type in the
// root package. Conversions between (year, month, day) and a signed
// epoch-day count use the Neri–Schneider "Euclidean affine" formulation,
// shifted by enough 400-year cycles that every intermediate division is
// over a non-negative dividend (spec.md §9's shift-constant design note).
//
// Grounded on go-chrono/date.go's fromDate/makeJDN/isLeapYear/
// getOrdinalDate/getISOWeek, which perform the equivalent Fliegel–Van
// Flandern/JDN conversions; the day-of-year and ISO-week derivations are
// carried over in spirit, with the day-count algorithm itself swapped for
// the one spec.md §4.1 names.
package calendarmath

import "fmt"

// shiftCycles is the number of 400-year cycles added to the input year so
// that every subsequent division in daysFromCivil/civilFromDays operates
// on non-negative operands, letting the kernel use plain unsigned-style
// Euclidean division instead of a sign-checking branch. spec.md §9 requires
// at least 680 cycles to cover the ±275,760-year valid range; 3670 is
// centred on the epoch, as spec.md's design note recommends.
const shiftCycles = 3670

const shiftYears = shiftCycles * 400

// MinYear and MaxYear bound the valid plain-date year range of spec.md §3.2.
const (
	MinYear = -271821
	MaxYear = 275760
)

// MinEpochDay and MaxEpochDay are the epoch-day counts of the earliest and
// latest representable plain dates.
var (
	MinEpochDay, _ = DaysFromCivil(MinYear, 4, 19)
	MaxEpochDay, _ = DaysFromCivil(MaxYear, 9, 13)
)

// IsLeapYear reports whether year is a leap year in the proleptic
// Gregorian calendar.
func IsLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysInMonthCommon = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in the given month (1..12) of year.
func DaysInMonth(year int64, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonthCommon[month-1]
}

// monthStartsCommon/monthStartsLeap are the day-of-year of the first day
// of each month (0-indexed month), as spec.md §4.1 requires ("Day-of-year
// uses month-start tables").
var monthStartsCommon = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}
var monthStartsLeap = [13]int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}

// DayOfYear returns the 1-based ordinal day of (year, month, day).
func DayOfYear(year int64, month, day int) int {
	if IsLeapYear(year) {
		return monthStartsLeap[month-1] + day
	}
	return monthStartsCommon[month-1] + day
}

// IsValidDate reports whether (year, month, day) is a valid calendar date
// within the representable range.
func IsValidDate(year int64, month, day int) bool {
	if year < MinYear || year > MaxYear {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return false
	}
	return true
}

// ConstrainDate clamps month to [1,12] and day to [1, days-in-month],
// implementing the "constrain" overflow mode of spec.md §3.2.
func ConstrainDate(year int64, month, day int) (int64, int, int) {
	if month < 1 {
		month = 1
	} else if month > 12 {
		month = 12
	}
	if year < MinYear {
		year = MinYear
	} else if year > MaxYear {
		year = MaxYear
	}
	max := DaysInMonth(year, month)
	if day < 1 {
		day = 1
	} else if day > max {
		day = max
	}
	return year, month, day
}

// DaysFromCivil converts a (year, month, day) triple to a signed count of
// days relative to the Unix epoch (1970-01-01 == 0), using the shifted
// Neri–Schneider affine algorithm. It fails with an error if the date is
// outside the representable range.
func DaysFromCivil(year int64, month, day int) (int64, error) {
	if !IsValidDate(year, month, day) {
		return 0, fmt.Errorf("calendarmath: invalid date %04d-%02d-%02d", year, month, day)
	}

	y := year
	if month <= 2 {
		y--
	}
	y += shiftYears // always non-negative now

	era := y / 400
	yoe := y - era*400 // [0, 399]

	mp := (month + 9) % 12 // Mar=0 .. Feb=11, branch-free month reindex
	doy := (153*mp+2)/5 + day - 1
	doe := yoe*365 + yoe/4 - yoe/100 + int64(doy) // [0, 146096]

	return (era-shiftCycles)*146097 + doe - 719468, nil
}

// CivilFromDays is the inverse of DaysFromCivil.
func CivilFromDays(days int64) (year int64, month, day int) {
	z := days + 719468 + shiftCycles*146097 // always non-negative now

	era := z / 146097
	doe := z - era*146097                                 // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365 // [0, 399]
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100) // [0, 365]
	mp := (5*doy + 2) / 153                  // [0, 11], Mar=0
	d := doy - (153*mp+2)/5 + 1               // [1, 31]
	var m int64
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}

	return y - shiftYears, int(m), int(d)
}

// DayOfWeek returns the day of the week for the given epoch-day count.
// 0 == Monday, matching the Weekday numbering of spec.md's root package
// (1970-01-01, epoch day 0, was a Thursday, so the fixed offset is 3).
func DayOfWeek(days int64) int {
	// Go's % can return a negative result for a negative dividend; shift
	// by a multiple of 7 large enough to stay positive for any valid day.
	const bigMultipleOf7 = (1 << 32) * 7
	return int((days+3+bigMultipleOf7)%7)
}

// QuantizeTimeOfDay converts wall-clock components to nanoseconds since
// midnight, per spec.md §4.1's quantization formula.
func QuantizeTimeOfDay(hour, minute, second, ms, us, ns int) int64 {
	return (((int64(hour)*60+int64(minute))*60+int64(second))*1000+int64(ms))*1_000_000 + int64(us)*1000 + int64(ns)
}

const NanosPerDay = 86400_000_000_000

// SplitTimeOfDay is the inverse of QuantizeTimeOfDay.
func SplitTimeOfDay(nanos int64) (hour, minute, second, ms, us, ns int) {
	ns = int(nanos % 1000)
	nanos /= 1000
	us = int(nanos % 1000)
	nanos /= 1000
	ms = int(nanos % 1000)
	nanos /= 1000
	second = int(nanos % 60)
	nanos /= 60
	minute = int(nanos % 60)
	nanos /= 60
	hour = int(nanos)
	return
}

// ISOWeek returns the ISO 8601 (year, week) for the given epoch-day count,
// following the same derivation as go-chrono's LocalDate.ISOWeek.
func ISOWeek(days int64) (isoYear, isoWeek int) {
	year, month, day := CivilFromDays(days)
	doy := DayOfYear(year, month, day)
	wd := DayOfWeek(days) + 1 // 1..7, Monday==1

	isoYear = int(year)
	isoWeek = (10 + doy - wd) / 7
	switch {
	case isoWeek < 1:
		if IsLeapYear(year - 1) {
			return isoYear - 1, 53
		}
		return isoYear - 1, 52
	case isoWeek == 53:
		daysInYear := 365
		if IsLeapYear(year) {
			daysInYear = 366
		}
		if daysInYear-doy < 4-wd {
			return isoYear + 1, 1
		}
	}
	return isoYear, isoWeek
}
