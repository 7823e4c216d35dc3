package temporal

import (
	"fmt"
	"math"

	"github.com/go-temporal/temporal/internal/i128"
	"github.com/go-temporal/temporal/internal/round"
)

// Unit identifies one of the ten duration fields, in canonical
// most-significant-first order (spec.md §3.6, §4.3.2's "canonical order").
type Unit int

const (
	UnitYear Unit = iota
	UnitMonth
	UnitWeek
	UnitDay
	UnitHour
	UnitMinute
	UnitSecond
	UnitMillisecond
	UnitMicrosecond
	UnitNanosecond
)

func (u Unit) String() string {
	switch u {
	case UnitYear:
		return "year"
	case UnitMonth:
		return "month"
	case UnitWeek:
		return "week"
	case UnitDay:
		return "day"
	case UnitHour:
		return "hour"
	case UnitMinute:
		return "minute"
	case UnitSecond:
		return "second"
	case UnitMillisecond:
		return "millisecond"
	case UnitMicrosecond:
		return "microsecond"
	case UnitNanosecond:
		return "nanosecond"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// Duration is the 10-tuple of spec.md §3.6: every nonzero field must share
// the same sign, and the combined magnitude of the calendar fields and the
// normalized time fields must each fit their respective bounds. Grounded
// on go-chrono's split Duration (time-only, uint64 seconds + uint32 ns)
// and Period (calendar-only, float32 fields); this type merges both into
// the single value spec.md's data model calls for.
type Duration struct {
	Years, Months, Weeks, Days               float64
	Hours, Minutes, Seconds                  float64
	Milliseconds, Microseconds, Nanoseconds float64
}

// unitNanosLen gives the fixed nanosecond length of each fixed-length
// unit (Week..Nanosecond); Year/Month have no fixed length (months and
// years vary with the calendar) and are never looked up here.
var unitOrder = [7]Unit{UnitDay, UnitHour, UnitMinute, UnitSecond, UnitMillisecond, UnitMicrosecond, UnitNanosecond}
var unitNanosLen = map[Unit]int64{
	UnitWeek:        604800_000_000_000,
	UnitDay:         86400_000_000_000,
	UnitHour:        3600_000_000_000,
	UnitMinute:      60_000_000_000,
	UnitSecond:      1_000_000_000,
	UnitMillisecond: 1_000_000,
	UnitMicrosecond: 1_000,
	UnitNanosecond:  1,
}

const dayNanosLen = 86400_000_000_000

// isTimeUnit reports whether u is one of Hour..Nanosecond: a unit finer
// than a calendar day, whose rounding never needs to touch the calendar
// fields (Years/Months/Weeks/Days) of an anchored duration.
func isTimeUnit(u Unit) bool {
	return u >= UnitHour
}

// maxTimeDurationNanos bounds the normalized time form (spec.md §3.6,
// "the max time duration", ≈9.0×10²¹ ns).
var maxTimeDurationNanos = i128.FromInt64(9_000_000_000).MulInt64(1_000_000_000_000)

const maxCalendarMagnitude = 1 << 32 // |years|, |months|, |weeks| < 2^32

// NewDuration constructs and validates a Duration from all ten fields.
func NewDuration(years, months, weeks, days, hours, minutes, seconds, ms, us, ns float64) (Duration, error) {
	d := Duration{
		Years: years, Months: months, Weeks: weeks, Days: days,
		Hours: hours, Minutes: minutes, Seconds: seconds,
		Milliseconds: ms, Microseconds: us, Nanoseconds: ns,
	}
	if err := d.validate(); err != nil {
		return Duration{}, err
	}
	return d, nil
}

// DurationFields is a sparse view of the ten fields, used by
// FromPartialDuration to distinguish "absent" from "explicitly zero".
type DurationFields struct {
	Years, Months, Weeks, Days                *float64
	Hours, Minutes, Seconds                   *float64
	Milliseconds, Microseconds, Nanoseconds *float64
}

// FromPartialDuration fills absent fields with zero, per spec.md §4.3.1.
// Fails KindType if every field is absent.
func FromPartialDuration(f DurationFields) (Duration, error) {
	var present bool
	get := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		present = true
		return *p
	}
	d := Duration{
		Years: get(f.Years), Months: get(f.Months), Weeks: get(f.Weeks), Days: get(f.Days),
		Hours: get(f.Hours), Minutes: get(f.Minutes), Seconds: get(f.Seconds),
		Milliseconds: get(f.Milliseconds), Microseconds: get(f.Microseconds), Nanoseconds: get(f.Nanoseconds),
	}
	if !present {
		return Duration{}, typeErrorf("from_partial: at least one field must be present")
	}
	if err := d.validate(); err != nil {
		return Duration{}, err
	}
	return d, nil
}

func (d Duration) fieldSlice() [10]float64 {
	return [10]float64{d.Years, d.Months, d.Weeks, d.Days, d.Hours, d.Minutes, d.Seconds, d.Milliseconds, d.Microseconds, d.Nanoseconds}
}

func (d Duration) validate() error {
	fields := d.fieldSlice()

	sign := 0
	for _, f := range fields {
		if f == 0 {
			continue
		}
		if math.Trunc(f) != f || math.IsNaN(f) || math.IsInf(f, 0) {
			return rangeErrorf("duration field %v is not a finite integer", f)
		}
		if f >= math.MaxInt64 || f <= math.MinInt64 {
			return rangeErrorf("duration field %v does not fit a signed 64-bit integer", f)
		}
		fs := 1
		if f < 0 {
			fs = -1
		}
		if sign == 0 {
			sign = fs
		} else if fs != sign {
			return rangeErrorf("duration fields have mixed signs")
		}
	}

	if math.Abs(d.Years) >= maxCalendarMagnitude || math.Abs(d.Months) >= maxCalendarMagnitude || math.Abs(d.Weeks) >= maxCalendarMagnitude {
		return rangeErrorf("duration calendar field exceeds 2^32")
	}

	normSeconds := d.Days*86400 + d.Hours*3600 + d.Minutes*60 + d.Seconds +
		d.Milliseconds/1e3 + d.Microseconds/1e6 + d.Nanoseconds/1e9
	if math.Abs(normSeconds) >= (1 << 53) {
		return rangeErrorf("normalized duration seconds exceed 2^53")
	}
	return nil
}

// Sign returns the sign of the first nonzero field in canonical order
// (years … nanoseconds), or 0 for a zero duration.
func (d Duration) Sign() int {
	for _, f := range d.fieldSlice() {
		if f > 0 {
			return 1
		}
		if f < 0 {
			return -1
		}
	}
	return 0
}

// IsZero reports whether every field of d is zero.
func (d Duration) IsZero() bool {
	return d.Sign() == 0
}

// Negate flips the sign of every field.
func (d Duration) Negate() Duration {
	return Duration{
		Years: -d.Years, Months: -d.Months, Weeks: -d.Weeks, Days: -d.Days,
		Hours: -d.Hours, Minutes: -d.Minutes, Seconds: -d.Seconds,
		Milliseconds: -d.Milliseconds, Microseconds: -d.Microseconds, Nanoseconds: -d.Nanoseconds,
	}
}

// Abs returns the absolute value of d (every field made non-negative).
func (d Duration) Abs() Duration {
	if d.Sign() < 0 {
		return d.Negate()
	}
	return d
}

// largestUnit returns the unit of the first nonzero field in canonical
// order, or UnitNanosecond for a zero duration (the "default largest
// unit" of spec.md §4.3.4).
func (d Duration) largestUnit() Unit {
	fields := d.fieldSlice()
	for i, f := range fields {
		if f != 0 {
			return Unit(i)
		}
	}
	return UnitNanosecond
}

// normalizedTimeNanos computes the normalized time form of spec.md
// §4.3.3, from the Hours..Nanoseconds fields only (Days is excluded; it
// is folded in separately by callers since its length is treated as a
// fixed 24h only in non-calendar contexts).
func (d Duration) normalizedTimeNanos() (i128.Int128, error) {
	total := i128.FromInt64(int64(d.Hours)).MulInt64(60).Add(i128.FromInt64(int64(d.Minutes)))
	total = total.MulInt64(60).Add(i128.FromInt64(int64(d.Seconds)))
	total = total.MulInt64(1000).Add(i128.FromInt64(int64(d.Milliseconds)))
	total = total.MulInt64(1000).Add(i128.FromInt64(int64(d.Microseconds)))
	total = total.MulInt64(1000).Add(i128.FromInt64(int64(d.Nanoseconds)))
	if total.Abs().Cmp(maxTimeDurationNanos) > 0 {
		return i128.Zero, rangeErrorf("normalized time duration exceeds max time duration")
	}
	return total, nil
}

// balanceTimeNanos expresses a signed nanosecond total as a Duration
// whose most significant populated field is largestUnit, re-balancing
// downward through Day..Nanosecond (spec.md §4.3.4 step 4).
func balanceTimeNanos(total i128.Int128, largestUnit Unit) (Duration, error) {
	startIdx := -1
	for i, u := range unitOrder {
		if u == largestUnit {
			startIdx = i
			break
		}
	}
	if startIdx == -1 {
		return Duration{}, assertErrorf("balanceTimeNanos: %v is not a time unit", largestUnit)
	}

	sign := total.Sign()
	abs := total.Abs()
	var out Duration
	for i := startIdx; i < len(unitOrder); i++ {
		u := unitOrder[i]
		var val i128.Int128
		if i == len(unitOrder)-1 {
			val = abs
		} else {
			val, abs = abs.QuoRemEuclid(i128.FromInt64(unitNanosLen[u]))
		}
		iv, ok := val.Int64()
		if !ok {
			return Duration{}, rangeErrorf("duration field overflow while rebalancing to %v", u)
		}
		signed := float64(iv) * float64(sign)
		switch u {
		case UnitDay:
			out.Days = signed
		case UnitHour:
			out.Hours = signed
		case UnitMinute:
			out.Minutes = signed
		case UnitSecond:
			out.Seconds = signed
		case UnitMillisecond:
			out.Milliseconds = signed
		case UnitMicrosecond:
			out.Microseconds = signed
		case UnitNanosecond:
			out.Nanoseconds = signed
		}
	}
	return out, nil
}

// Add implements spec.md §4.3.4: both operands collapse to their
// normalized time form plus a 24-hour day count, then re-balance to the
// more significant of the two operands' default largest units. Fails
// KindRange if that unit is a calendar unit (year/month/week).
func (d Duration) Add(other Duration) (Duration, error) {
	result := d.largestUnit()
	if ou := other.largestUnit(); ou < result {
		result = ou
	}
	if result <= UnitWeek {
		return Duration{}, rangeErrorf("cannot add durations whose combined largest unit is %v", result)
	}

	dn, err := d.normalizedTimeNanos()
	if err != nil {
		return Duration{}, err
	}
	on, err := other.normalizedTimeNanos()
	if err != nil {
		return Duration{}, err
	}
	daySum := i128.FromInt64(int64(d.Days) + int64(other.Days)).MulInt64(86400_000_000_000)

	total := dn.Add(on).Add(daySum)
	return balanceTimeNanos(total, result)
}

// Sub returns d minus other, implemented as addition of the negation.
func (d Duration) Sub(other Duration) (Duration, error) {
	return d.Add(other.Negate())
}

// RoundOptions configures Duration.Round (spec.md §4.3.5).
type RoundOptions struct {
	SmallestUnit Unit
	// LargestUnit, if HasLargestUnit is true, overrides the default
	// largest unit computed from the duration itself.
	LargestUnit    Unit
	HasLargestUnit bool
	Mode           round.Mode
	// Increment must evenly divide the smallest unit's canonical count;
	// 1 is always valid.
	Increment int64
	// RelativeToZoned and RelativeToDate select an anchored rounding
	// branch (spec.md §4.3.5); at most one should be set. Neither set
	// means "no anchor".
	RelativeToZoned *ZonedDateTime
	RelativeToDate  *PlainDate
}

// Round implements spec.md §4.3.5.
func (d Duration) Round(opts RoundOptions) (Duration, error) {
	largest := d.largestUnit()
	if opts.HasLargestUnit {
		largest = opts.LargestUnit
	}
	increment := opts.Increment
	if increment == 0 {
		increment = 1
	}

	noCalendar := d.Years == 0 && d.Months == 0 && d.Weeks == 0
	noHoursToDays := opts.RelativeToZoned == nil && math.Abs(d.Hours) < 24
	if opts.SmallestUnit == UnitNanosecond && increment == 1 && largest == d.largestUnit() && noCalendar && noHoursToDays {
		return d, nil
	}

	switch {
	case opts.RelativeToZoned != nil:
		return d.roundWithZonedAnchor(*opts.RelativeToZoned, opts, largest)
	case opts.RelativeToDate != nil:
		return d.roundWithDateAnchor(*opts.RelativeToDate, opts, largest)
	default:
		if !noCalendar {
			return Duration{}, rangeErrorf("rounding a duration with calendar units requires a relative-to anchor")
		}
		total, err := d.normalizedTimeNanos()
		if err != nil {
			return Duration{}, err
		}
		total = total.Add(i128.FromInt64(int64(d.Days)).MulInt64(86400_000_000_000))
		rounded, err := roundNanos(total, opts.SmallestUnit, increment, opts.Mode)
		if err != nil {
			return Duration{}, err
		}
		return balanceTimeNanos(rounded, largest)
	}
}

// roundNanos rounds a fixed-length-unit total (smallestUnit must be
// Week..Nanosecond; Year/Month have no fixed nanosecond length and are
// handled separately by roundCalendarCount) to the nearest multiple of
// increment * the unit's canonical length.
func roundNanos(total i128.Int128, smallestUnit Unit, increment int64, mode round.Mode) (i128.Int128, error) {
	unitLen, ok := unitNanosLen[smallestUnit]
	if !ok {
		return i128.Int128{}, assertErrorf("round: %v has no fixed nanosecond length", smallestUnit)
	}
	divisorI64 := unitLen * increment
	q := round.Int128(total, i128.FromInt64(divisorI64), mode)
	return q.MulInt64(divisorI64), nil
}

// roundWithZonedAnchor implements the zoned-anchor branch of spec.md
// §4.3.5: the duration is added to anchor to find a target instant, and
// the anchor→target difference (decomposed in the zone's local frame by
// ZonedDateTime.Sub, so a 23- or 25-hour DST day still counts as one
// calendar day) is then rounded exactly as the plain-date-anchor branch
// would round it, using the anchor's local date as the calendar anchor.
func (d Duration) roundWithZonedAnchor(anchor ZonedDateTime, opts RoundOptions, largest Unit) (Duration, error) {
	target, err := anchor.Add(d, Constrain)
	if err != nil {
		return Duration{}, err
	}
	diff, err := target.Sub(anchor)
	if err != nil {
		return Duration{}, err
	}
	return diff.roundAnchoredCalendar(anchor.Local().Date(), opts, largest)
}

// roundWithDateAnchor implements the plain-date-anchor branch of
// spec.md §4.3.5.
func (d Duration) roundWithDateAnchor(anchor PlainDate, opts RoundOptions, largest Unit) (Duration, error) {
	return d.roundAnchoredCalendar(anchor, opts, largest)
}

// roundAnchoredCalendar is the shared core of both anchored branches of
// spec.md §4.3.5. Rounding to a time unit (Hour..Nanosecond) never
// needs the anchor at all: the calendar fields are coarser than the
// rounding granularity and pass through unchanged, only the time-of-day
// portion is rounded. Rounding to Day, Week, Month, or Year requires
// recomputing the whole calendar portion relative to anchor, since the
// sub-day time (and, for Month/Year, the sub-unit calendar remainder)
// folds into it.
func (d Duration) roundAnchoredCalendar(anchor PlainDate, opts RoundOptions, largest Unit) (Duration, error) {
	increment := nonZeroIncrement(opts.Increment)

	if isTimeUnit(opts.SmallestUnit) {
		timeNanos, err := d.normalizedTimeNanos()
		if err != nil {
			return Duration{}, err
		}
		rounded, err := roundNanos(timeNanos, opts.SmallestUnit, increment, opts.Mode)
		if err != nil {
			return Duration{}, err
		}
		start := largest
		if start < UnitHour {
			start = UnitHour
		}
		out, err := balanceTimeNanos(rounded, start)
		if err != nil {
			return Duration{}, err
		}
		out.Years, out.Months, out.Weeks, out.Days = d.Years, d.Months, d.Weeks, d.Days
		return out, nil
	}

	timeNanos, err := d.normalizedTimeNanos()
	if err != nil {
		return Duration{}, err
	}
	extraDays, remNanos := timeNanos.QuoRemEuclid(i128.FromInt64(dayNanosLen))
	extraDaysI, ok := extraDays.Int64()
	if !ok {
		return Duration{}, rangeErrorf("duration days overflow during anchored rounding")
	}
	totalExtraDays := int64(d.Weeks)*7 + int64(d.Days) + extraDaysI
	target, err := anchor.AddDate(int64(d.Years), int(d.Months), int(totalExtraDays), Constrain)
	if err != nil {
		return Duration{}, err
	}

	if opts.SmallestUnit == UnitYear || opts.SmallestUnit == UnitMonth {
		count, err := roundCalendarCount(anchor, target, remNanos, opts.SmallestUnit, increment, opts.Mode)
		if err != nil {
			return Duration{}, err
		}
		switch {
		case opts.SmallestUnit == UnitYear:
			return Duration{Years: float64(count)}, nil
		case largest == UnitMonth:
			// largestUnit pinned to month (e.g. by Total): report the
			// flat count instead of splitting out whole years.
			return Duration{Months: float64(count)}, nil
		default:
			years, months := splitYearsMonths(count)
			return Duration{Years: float64(years), Months: float64(months)}, nil
		}
	}

	// Week or Day: both have a fixed nanosecond length, so the §4.2
	// kernel can round the exact anchor-relative position directly.
	dayDiff := target.epochDay() - anchor.epochDay()
	total := i128.FromInt64(dayDiff).MulInt64(dayNanosLen).Add(remNanos)
	rounded, err := roundNanos(total, opts.SmallestUnit, increment, opts.Mode)
	if err != nil {
		return Duration{}, err
	}
	roundedDays, rem := rounded.QuoRemEuclid(i128.FromInt64(dayNanosLen))
	if !rem.IsZero() {
		return Duration{}, assertErrorf("round: %v rounding left a non-whole-day remainder", opts.SmallestUnit)
	}
	roundedDaysI, ok := roundedDays.Int64()
	if !ok {
		return Duration{}, rangeErrorf("duration days overflow during anchored rounding")
	}
	roundedTarget := plainDateFromDays(anchor.epochDay() + roundedDaysI)

	if largest == UnitWeek || largest == UnitDay {
		// largestUnit pinned below year/month (e.g. by Total): report a
		// flat week or day count instead of a full calendar breakdown.
		if opts.SmallestUnit == UnitWeek {
			return Duration{Weeks: float64(roundedDaysI / 7)}, nil
		}
		return Duration{Days: float64(roundedDaysI)}, nil
	}

	years, months, weeks, days := calendarUnitsBetween(anchor, roundedTarget, opts.SmallestUnit)
	return Duration{Years: float64(years), Months: float64(months), Weeks: float64(weeks), Days: float64(days)}, nil
}

// splitYearsMonths re-expresses a signed total month count as whole
// years plus a remainder of fewer than 12 months, both carrying the
// same sign as count (or zero).
func splitYearsMonths(count int64) (years, months int64) {
	years = count / 12
	months = count % 12
	return years, months
}

// calendarUnitsBetween walks the difference between two dates into a
// Year/Month/Week/Day breakdown, greedily extracting the coarsest unit
// first (mirroring PlainDate.AddDate's forward arithmetic run in
// reverse): whole years, then whole months, then — only when
// smallestUnit is itself Week, since Temporal-style durations never mix
// weeks with months — whole weeks, otherwise the plain remaining day
// count. anchor and target must already be known to differ by a whole
// number of smallestUnit units (the caller has rounded to that
// boundary); this only performs the breakdown, not the rounding.
func calendarUnitsBetween(anchor, target PlainDate, smallestUnit Unit) (years, months, weeks, days int64) {
	if anchor.Equal(target) {
		return 0, 0, 0, 0
	}
	step := int64(1)
	if target.Compare(anchor) < 0 {
		step = -1
	}

	cur := anchor
	for {
		next, err := cur.AddDate(step, 0, 0, Constrain)
		if err != nil || overshoots(next, target, step) {
			break
		}
		cur = next
		years += step
	}
	if smallestUnit == UnitYear {
		return years, 0, 0, 0
	}

	for {
		next, err := cur.AddDate(0, int(step), 0, Constrain)
		if err != nil || overshoots(next, target, step) {
			break
		}
		cur = next
		months += step
	}
	if smallestUnit == UnitMonth {
		return years, months, 0, 0
	}

	remainingDays := target.epochDay() - cur.epochDay()
	if smallestUnit == UnitWeek {
		return years, months, remainingDays / 7, 0
	}
	return years, months, 0, remainingDays
}

// overshoots reports whether p has passed target, walking in the
// direction step (+1 or -1) from some starting point.
func overshoots(p, target PlainDate, step int64) bool {
	c := p.Compare(target)
	if step > 0 {
		return c > 0
	}
	return c < 0
}

// roundCalendarCount extracts the rounded whole-unit count (in years or
// months) between anchor and a target point — target's date plus a
// time-of-day remainder expressed as nanoseconds past target's
// midnight — applying mode and increment at the unit boundary via the
// §4.2 kernel. unit must be UnitYear or UnitMonth.
func roundCalendarCount(anchor, target PlainDate, remNanos i128.Int128, unit Unit, increment int64, mode round.Mode) (int64, error) {
	sign := target.Compare(anchor)
	if sign == 0 && remNanos.IsZero() {
		return 0, nil
	}
	if sign == 0 {
		sign = remNanos.Sign()
	}
	step := int64(1)
	if sign < 0 {
		step = -1
	}

	addUnits := func(n int64) (PlainDate, error) {
		if unit == UnitYear {
			return anchor.AddDate(n, 0, 0, Constrain)
		}
		return anchor.AddDate(0, int(n), 0, Constrain)
	}

	var count int64
	for {
		next, err := addUnits(count + step)
		if err != nil {
			return 0, err
		}
		if overshoots(next, target, step) {
			break
		}
		count += step
	}

	groupCount := count / increment
	lower, err := addUnits(groupCount * increment)
	if err != nil {
		return 0, err
	}
	upper, err := addUnits((groupCount + step) * increment)
	if err != nil {
		return 0, err
	}

	posT := i128.FromInt64(target.epochDay()).MulInt64(dayNanosLen).Add(remNanos)
	posL := i128.FromInt64(lower.epochDay()).MulInt64(dayNanosLen)
	posU := i128.FromInt64(upper.epochDay()).MulInt64(dayNanosLen)

	vMag := posU.Sub(posL).Abs()
	if vMag.IsZero() {
		return groupCount * increment, nil
	}
	dMag := posT.Sub(posL).Abs()
	dSigned := dMag
	if sign < 0 {
		dSigned = dMag.Neg()
	}
	q := round.Int128(dSigned, vMag, mode)
	qI, ok := q.Int64()
	if !ok {
		return 0, assertErrorf("round: calendar unit count overflow")
	}
	return groupCount*increment + qI*increment, nil
}

func nonZeroIncrement(v int64) int64 {
	if v == 0 {
		return 1
	}
	return v
}

// Total returns the truncated count of unit contained in d (spec.md
// §4.3.6): rounding with increment 1 and mode trunc, with largestUnit
// pinned to unit so the result is never split across a coarser field,
// followed by extracting that single field. An anchor, if supplied via
// opts.RelativeToDate/RelativeToZoned, is required whenever d or unit
// involves a calendar field.
func (d Duration) Total(unit Unit, opts RoundOptions) (float64, error) {
	opts.SmallestUnit = unit
	opts.Increment = 1
	opts.Mode = round.Trunc
	opts.HasLargestUnit = true
	opts.LargestUnit = unit

	rounded, err := d.Round(opts)
	if err != nil {
		return 0, err
	}
	switch unit {
	case UnitYear:
		return rounded.Years, nil
	case UnitMonth:
		return rounded.Months, nil
	case UnitWeek:
		return rounded.Weeks, nil
	case UnitDay:
		return rounded.Days, nil
	case UnitHour:
		return rounded.Hours, nil
	case UnitMinute:
		return rounded.Minutes, nil
	case UnitSecond:
		return rounded.Seconds, nil
	case UnitMillisecond:
		return rounded.Milliseconds, nil
	case UnitMicrosecond:
		return rounded.Microseconds, nil
	case UnitNanosecond:
		return rounded.Nanoseconds, nil
	default:
		return 0, assertErrorf("Total: %v is not a valid unit", unit)
	}
}

// Compare totals both durations to nanoseconds relative to a common
// anchor and orders them by that total. With a zoned anchor, each
// duration is added to the same ZonedDateTime and the resulting
// instants are compared directly, so a duration that crosses a DST
// transition (e.g. a 25-hour fall-back day) sorts by its real elapsed
// time rather than its nominal field values. With a plain-date anchor,
// or with no anchor at all when neither duration carries a calendar
// unit, the comparison is purely arithmetic.
func (d Duration) Compare(other Duration, relativeToDate *PlainDate, relativeToZoned *ZonedDateTime) (int, error) {
	if relativeToZoned != nil {
		dn, err := totalNanosRelativeToZoned(d, *relativeToZoned)
		if err != nil {
			return 0, err
		}
		on, err := totalNanosRelativeToZoned(other, *relativeToZoned)
		if err != nil {
			return 0, err
		}
		return dn.Cmp(on), nil
	}

	hasCalendar := func(x Duration) bool { return x.Years != 0 || x.Months != 0 || x.Weeks != 0 }
	if relativeToDate == nil && (hasCalendar(d) || hasCalendar(other)) {
		return 0, rangeErrorf("comparing durations with calendar units requires a relative-to anchor")
	}

	toNanos := func(x Duration) (i128.Int128, error) {
		if relativeToDate == nil {
			tn, err := x.normalizedTimeNanos()
			if err != nil {
				return i128.Int128{}, err
			}
			return tn.Add(i128.FromInt64(int64(x.Days)).MulInt64(dayNanosLen)), nil
		}
		target, err := relativeToDate.AddDate(int64(x.Years), int(x.Months), int(x.Weeks)*7+int(x.Days), Constrain)
		if err != nil {
			return i128.Int128{}, err
		}
		dayDiff := target.epochDay() - relativeToDate.epochDay()
		tn, err := x.normalizedTimeNanos()
		if err != nil {
			return i128.Int128{}, err
		}
		return i128.FromInt64(dayDiff).MulInt64(dayNanosLen).Add(tn), nil
	}

	dn, err := toNanos(d)
	if err != nil {
		return 0, err
	}
	on, err := toNanos(other)
	if err != nil {
		return 0, err
	}
	return dn.Cmp(on), nil
}

// totalNanosRelativeToZoned adds x to anchor and returns the resulting
// instant's signed nanosecond offset from anchor.
func totalNanosRelativeToZoned(x Duration, anchor ZonedDateTime) (i128.Int128, error) {
	target, err := anchor.Add(x, Constrain)
	if err != nil {
		return i128.Int128{}, err
	}
	return target.Instant().Sub(anchor.Instant()), nil
}

func (d Duration) String() string {
	if d.IsZero() {
		return "PT0S"
	}
	out := "P"
	if d.Years != 0 {
		out += fmt.Sprintf("%gY", math.Abs(d.Years))
	}
	if d.Months != 0 {
		out += fmt.Sprintf("%gM", math.Abs(d.Months))
	}
	if d.Weeks != 0 {
		out += fmt.Sprintf("%gW", math.Abs(d.Weeks))
	}
	if d.Days != 0 {
		out += fmt.Sprintf("%gD", math.Abs(d.Days))
	}
	timePart := ""
	if d.Hours != 0 {
		timePart += fmt.Sprintf("%gH", math.Abs(d.Hours))
	}
	if d.Minutes != 0 {
		timePart += fmt.Sprintf("%gM", math.Abs(d.Minutes))
	}
	sub := math.Abs(d.Milliseconds)*1e6 + math.Abs(d.Microseconds)*1e3 + math.Abs(d.Nanoseconds)
	switch {
	case d.Seconds != 0 || sub != 0:
		secs := math.Abs(d.Seconds) + sub/1e9
		timePart += fmt.Sprintf("%gS", secs)
	}
	if timePart != "" {
		out += "T" + timePart
	}
	if d.Sign() < 0 {
		return "-" + out
	}
	return out
}
