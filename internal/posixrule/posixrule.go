// Package posixrule implements the POSIX time-zone rule of spec.md §3.10
// and its evaluation algorithm (§4.4.3): computing, for a given calendar
// year, the UTC instants of a zone's standard<->daylight transitions, used
// both to assemble a zone's trailing rule (component E, spec.md §4.5.2
// step 5) and to extrapolate a resolver's answers beyond the last
// compiled transition (component D, spec.md §4.4.1 step 4).
//
// The day-resolution algorithms (month/week/weekday and Julian forms) are
// grounded on go-tz/internal/tzexpand/datemath.go's lastWeekdayOfMonth/
// nextWeekday/lastWeekday, renamed to the Dow>=d/Dow<=d/lastDow vocabulary
// used elsewhere in this module and extended with the two Julian-day
// forms, which datemath.go did not need.
package posixrule

import "github.com/go-temporal/temporal/internal/calendarmath"

// DayForm is the form a POSIX transition day is expressed in.
type DayForm int

const (
	// JulianNoLeap is a day 1..365 that never counts February 29.
	JulianNoLeap DayForm = iota
	// JulianWithLeap is a day 0..365 that does count February 29.
	JulianWithLeap
	// MonthWeekDow is a (month, week, weekday) triple; week 5 means "last".
	MonthWeekDow
)

// TransitionDay names the day, within a year, that a POSIX transition occurs.
type TransitionDay struct {
	Form    DayForm
	Julian  int // for JulianNoLeap/JulianWithLeap
	Month   int // 1..12, for MonthWeekDow
	Week    int // 1..5, for MonthWeekDow ("5" means last)
	Weekday int // 0=Sunday..6=Saturday, for MonthWeekDow
}

// Transition is one of a rule's two yearly transitions: a day plus a
// local time-of-day (in seconds, may exceed 24h/be negative per POSIX).
type Transition struct {
	Day  TransitionDay
	Time int64
}

// Rule is the POSIX TZ rule of spec.md §3.10. Offsets are seconds to add
// to UTC to obtain local time (i.e. the ordinary, non-POSIX-inverted
// convention used throughout this module).
type Rule struct {
	StdAbbr   string
	StdOffset int64

	HasDST    bool
	DstAbbr   string
	DstOffset int64
	Start     Transition // local-standard-time instant the DST period begins
	End       Transition // local-daylight-time instant the DST period ends
}

// epochDayOf resolves a TransitionDay within a given year to an epoch-day count.
func epochDayOf(year int64, d TransitionDay) int64 {
	switch d.Form {
	case JulianWithLeap:
		first, _ := calendarmath.DaysFromCivil(year, 1, 1)
		return first + int64(d.Julian)

	case JulianNoLeap:
		n := d.Julian
		if calendarmath.IsLeapYear(year) && n >= 60 {
			n++
		}
		first, _ := calendarmath.DaysFromCivil(year, 1, 1)
		return first + int64(n) - 1

	default: // MonthWeekDow
		return monthWeekDowEpochDay(year, d.Month, d.Week, d.Weekday)
	}
}

// monthWeekDowEpochDay finds the epoch day of the week-th occurrence of
// weekday in (year, month); week==5 (or a week beyond the month's last
// occurrence) means the last occurrence, per spec.md §4.5.3.
func monthWeekDowEpochDay(year int64, month, week, weekday int) int64 {
	firstOfMonth, _ := calendarmath.DaysFromCivil(year, month, 1)
	firstWeekday := calendarmath.DayOfWeek(firstOfMonth)
	// calendarmath.DayOfWeek uses Monday==0; convert to Sunday==0 to match
	// the tzdata/POSIX weekday vocabulary used by this package.
	firstWeekdaySun := (firstWeekday + 1) % 7

	offset := (weekday - firstWeekdaySun + 7) % 7
	firstOccurrence := firstOfMonth + int64(offset)

	if week <= 1 {
		return firstOccurrence
	}

	daysInMonth := int64(calendarmath.DaysInMonth(year, month))
	candidate := firstOccurrence + int64(week-1)*7
	if candidate-firstOfMonth < daysInMonth {
		return candidate
	}
	// Requested occurrence doesn't exist (e.g. a 5th Sunday that isn't
	// there): fall back to the last occurrence in the month.
	return candidate - 7
}

// TransitionUTC returns the UTC epoch-second instant of transition t in the
// given year, for a rule whose standard offset is stdOffset and whose
// currently-active savings (needed only for the wall-clock qualifier) is
// activeSavings. Per spec.md §4.5.5/§4.4.3: the start transition's time is
// local standard time, the end transition's is local daylight time
// (savings already in effect), because the clock jump precedes the new offset.
func TransitionUTC(year int64, t Transition, stdOffset, activeSavings int64) int64 {
	day := epochDayOf(year, t.Day)
	localSeconds := day*calendarmath.NanosPerDay/1_000_000_000 + t.Time
	return localSeconds - stdOffset - activeSavings
}

// StartUTC returns the UTC instant the DST period begins in year, evaluated
// in local standard time.
func (r Rule) StartUTC(year int64) int64 {
	return TransitionUTC(year, r.Start, r.StdOffset, 0)
}

// EndUTC returns the UTC instant the DST period ends in year, evaluated in
// local daylight time (the standard offset plus the rule's savings).
func (r Rule) EndUTC(year int64) int64 {
	return TransitionUTC(year, r.End, r.StdOffset, r.DstOffset-r.StdOffset)
}

// SouthernHemisphereOrder reports whether, within calendar year y, the DST
// period straddles the year boundary (start later in the year than end),
// per spec.md §4.4.3's ordering note.
func (r Rule) SouthernHemisphereOrder(year int64) bool {
	return r.HasDST && r.StartUTC(year) > r.EndUTC(year)
}

// OffsetAt returns the offset in effect (seconds east of UTC), the
// abbreviation, and whether DST is in effect, for the given UTC epoch
// second, evaluated against this rule's transitions for the calendar year
// containing s (spec.md §4.4.1 step 4).
func (r Rule) OffsetAt(s int64, year int64) (offset int64, abbr string, isDST bool) {
	if !r.HasDST {
		return r.StdOffset, r.StdAbbr, false
	}

	start, end := r.StartUTC(year), r.EndUTC(year)
	var inDST bool
	if start <= end {
		inDST = s >= start && s < end
	} else {
		// Southern-hemisphere ordering: DST spans the year boundary.
		inDST = s >= start || s < end
	}
	if inDST {
		return r.DstOffset, r.DstAbbr, true
	}
	return r.StdOffset, r.StdAbbr, false
}
