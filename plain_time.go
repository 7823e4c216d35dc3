package temporal

import (
	"fmt"

	"github.com/go-temporal/temporal/internal/calendarmath"
)

// PlainTime is a wall-clock time of day with no zone or date, quantized
// to nanosecond precision (spec.md §3.3). Unlike go-chrono's LocalTime,
// it admits no hour beyond 23 and no leap-second second=60; ordering is
// lexicographic over (hour, minute, second, ms, µs, ns).
type PlainTime struct {
	nanos int64 // nanoseconds since midnight, [0, calendarmath.NanosPerDay)
}

// NewPlainTime constructs a PlainTime from hour/minute/second/subsecond
// components. Fails with KindRange if any field is out of bounds.
func NewPlainTime(hour, minute, second, ms, us, ns int) (PlainTime, error) {
	if hour < 0 || hour > 23 {
		return PlainTime{}, rangeErrorf("hour %d out of range [0,23]", hour)
	}
	if minute < 0 || minute > 59 {
		return PlainTime{}, rangeErrorf("minute %d out of range [0,59]", minute)
	}
	if second < 0 || second > 59 {
		return PlainTime{}, rangeErrorf("second %d out of range [0,59]", second)
	}
	if ms < 0 || ms > 999 {
		return PlainTime{}, rangeErrorf("millisecond %d out of range [0,999]", ms)
	}
	if us < 0 || us > 999 {
		return PlainTime{}, rangeErrorf("microsecond %d out of range [0,999]", us)
	}
	if ns < 0 || ns > 999 {
		return PlainTime{}, rangeErrorf("nanosecond %d out of range [0,999]", ns)
	}
	return PlainTime{nanos: calendarmath.QuantizeTimeOfDay(hour, minute, second, ms, us, ns)}, nil
}

// Midnight is the PlainTime 00:00:00.
var Midnight = PlainTime{}

func plainTimeFromNanos(nanos int64) PlainTime {
	return PlainTime{nanos: nanos}
}

// Clock returns the hour, minute, and second components of t.
func (t PlainTime) Clock() (hour, minute, second int) {
	hour, minute, second, _, _, _ = calendarmath.SplitTimeOfDay(t.nanos)
	return
}

// Components returns all six fields of t.
func (t PlainTime) Components() (hour, minute, second, ms, us, ns int) {
	return calendarmath.SplitTimeOfDay(t.nanos)
}

// Nanosecond returns the nanosecond component of t, ignoring ms/µs; use
// NanosecondOfSecond for the full intra-second fraction.
func (t PlainTime) Nanosecond() int {
	_, _, _, _, _, ns := calendarmath.SplitTimeOfDay(t.nanos)
	return ns
}

// NanosecondOfSecond returns the full intra-second fraction of t in
// nanoseconds, in [0, 999999999].
func (t PlainTime) NanosecondOfSecond() int {
	return int(t.nanos % 1_000_000_000)
}

// nanosOfDay exposes the internal representation to sibling types.
func (t PlainTime) nanosOfDay() int64 { return t.nanos }

// Compare orders two plain times lexicographically.
func (t PlainTime) Compare(other PlainTime) int {
	switch {
	case t.nanos < other.nanos:
		return -1
	case t.nanos > other.nanos:
		return 1
	default:
		return 0
	}
}

// Equal reports whether t and other represent the same time of day.
func (t PlainTime) Equal(other PlainTime) bool {
	return t.nanos == other.nanos
}

func (t PlainTime) String() string {
	hour, minute, second, ms, us, ns := calendarmath.SplitTimeOfDay(t.nanos)
	sub := ms*1_000_000 + us*1_000 + ns
	if sub == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%09d", hour, minute, second, sub)
}
