package temporal

import (
	"github.com/go-temporal/temporal/internal/calendarmath"
)

// PlainDateTime pairs a PlainDate with a PlainTime (spec.md §3.4). Its
// date component tolerates one day beyond PlainDate's own valid range in
// either direction, so that time-of-day arithmetic can reach the plain
// date limits without failing at the boundary itself.
type PlainDateTime struct {
	date PlainDate
	time PlainTime
}

// NewPlainDateTime combines date and time into a PlainDateTime.
func NewPlainDateTime(date PlainDate, time PlainTime) (PlainDateTime, error) {
	if date.days < calendarmath.MinEpochDay-1 || date.days > calendarmath.MaxEpochDay+1 {
		return PlainDateTime{}, rangeErrorf("plain date-time %s exceeds representable range", date)
	}
	return PlainDateTime{date: date, time: time}, nil
}

// Date and Time split dt back into its components.
func (dt PlainDateTime) Date() PlainDate { return dt.date }
func (dt PlainDateTime) Time() PlainTime { return dt.time }

// WithDate and WithTime return a copy of dt with one component replaced.
func (dt PlainDateTime) WithDate(date PlainDate) (PlainDateTime, error) {
	return NewPlainDateTime(date, dt.time)
}

func (dt PlainDateTime) WithTime(time PlainTime) (PlainDateTime, error) {
	return NewPlainDateTime(dt.date, time)
}

// Compare orders two plain date-times by (date, time).
func (dt PlainDateTime) Compare(other PlainDateTime) int {
	if c := dt.date.Compare(other.date); c != 0 {
		return c
	}
	return dt.time.Compare(other.time)
}

// Equal reports whether dt and other represent the same date-time.
func (dt PlainDateTime) Equal(other PlainDateTime) bool {
	return dt.Compare(other) == 0
}

// AddDate shifts the date component by years/months/days, leaving the
// time of day unchanged.
func (dt PlainDateTime) AddDate(years int64, months, days int, overflow Overflow) (PlainDateTime, error) {
	nd, err := dt.date.AddDate(years, months, days, overflow)
	if err != nil {
		return PlainDateTime{}, err
	}
	return NewPlainDateTime(nd, dt.time)
}

// addNanos shifts dt by a signed nanosecond count, carrying day overflow
// into the date component. Nothing in this package calls it at present.
func (dt PlainDateTime) addNanos(n int64) (PlainDateTime, error) {
	total := dt.time.nanos + n
	dayShift := total / calendarmath.NanosPerDay
	rem := total % calendarmath.NanosPerDay
	if rem < 0 {
		rem += calendarmath.NanosPerDay
		dayShift--
	}
	nd := plainDateFromDays(dt.date.days + dayShift)
	return NewPlainDateTime(nd, plainTimeFromNanos(rem))
}

func (dt PlainDateTime) String() string {
	return dt.date.String() + "T" + dt.time.String()
}
