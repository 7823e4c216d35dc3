package temporal

import (
	"github.com/go-temporal/temporal/internal/i128"
	"github.com/go-temporal/temporal/internal/tzdb"
)

// Disambiguation selects how to resolve a local date-time that maps to
// zero or two instants because it falls in a zone-transition gap or fold
// (spec.md §4.6.3).
type Disambiguation int

const (
	Compatible Disambiguation = iota
	Earlier
	Later
	RejectAmbiguous
)

// ZonedDateTime is an Instant paired with a TimeZoneIdentifier and a
// calendar identifier (spec.md §3.8); this module supports only the ISO
// 8601 calendar, so Calendar is always "iso8601". Two zoned date-times
// compare by instant alone.
//
// Grounded on go-chrono/zoned_date_time.go's ZonedDateTime, which wraps a
// *time.Location and the standard library's wall-clock pair; that type
// is rebuilt here over Instant and internal/tzdb.Resolver so the module
// owns its own zone resolution instead of delegating to time.Time.
type ZonedDateTime struct {
	instant  Instant
	zone     TimeZoneIdentifier
	calendar string
	resolver *tzdb.Resolver
}

// Calendar identifiers; only ISO8601 is implemented.
const ISO8601 = "iso8601"

// NewZonedDateTime builds a ZonedDateTime for instant in zone. Named
// zones are resolved against db; a nil db is only valid for a fixed-offset
// zone.
func NewZonedDateTime(instant Instant, zone TimeZoneIdentifier, db *ZoneDatabase) (ZonedDateTime, error) {
	zdt := ZonedDateTime{instant: instant, zone: zone, calendar: ISO8601}
	if !zone.IsFixed() {
		if db == nil {
			return ZonedDateTime{}, typeErrorf("named zone %q requires a zone database", zone.name)
		}
		r, err := db.resolver(zone.name)
		if err != nil {
			return ZonedDateTime{}, err
		}
		zdt.resolver = r
	}
	return zdt, nil
}

// FromPlainLocal resolves local (a wall-clock date-time with no offset)
// against zone, using disambiguation to pick an instant when local maps
// to zero or two candidates (spec.md §4.4.2, §4.6.3).
func FromPlainLocal(local PlainDateTime, zone TimeZoneIdentifier, db *ZoneDatabase, disambiguation Disambiguation) (ZonedDateTime, error) {
	zdt := ZonedDateTime{zone: zone, calendar: ISO8601}
	if !zone.IsFixed() {
		if db == nil {
			return ZonedDateTime{}, typeErrorf("named zone %q requires a zone database", zone.name)
		}
		r, err := db.resolver(zone.name)
		if err != nil {
			return ZonedDateTime{}, err
		}
		zdt.resolver = r
	}
	instant, err := zdt.resolveLocal(local, disambiguation)
	if err != nil {
		return ZonedDateTime{}, err
	}
	zdt.instant = instant
	return zdt, nil
}

// Instant returns the underlying instant.
func (z ZonedDateTime) Instant() Instant { return z.instant }

// Zone returns z's time-zone identifier.
func (z ZonedDateTime) Zone() TimeZoneIdentifier { return z.zone }

// Calendar returns z's calendar identifier.
func (z ZonedDateTime) Calendar() string { return z.calendar }

// OffsetSeconds returns the offset from UTC in effect at z's instant.
func (z ZonedDateTime) OffsetSeconds() int64 {
	if z.resolver == nil {
		return int64(z.zone.offset.Seconds())
	}
	return z.resolver.OffsetAt(z.instant.EpochSeconds()).Offset
}

// Local returns the wall-clock PlainDateTime z represents in its zone.
func (z ZonedDateTime) Local() PlainDateTime {
	offset := z.OffsetSeconds()
	secs := z.instant.EpochSeconds() + offset
	nanos := z.instant.NanoOfSecond()
	days, rem := floorDivMod(secs, 86400)
	return PlainDateTime{
		date: plainDateFromDays(days),
		time: plainTimeFromNanos(rem*1_000_000_000 + nanos),
	}
}

// resolveLocal implements the disambiguation table of spec.md §4.6.3,
// dispatching to the resolver's three-outcome protocol (§4.4.2) for named
// zones, or resolving trivially for a fixed-offset zone (which has no
// gaps or folds).
func (z ZonedDateTime) resolveLocal(local PlainDateTime, d Disambiguation) (Instant, error) {
	if z.resolver == nil {
		odt, err := FromPlainDateTime(local, z.zone.offset)
		if err != nil {
			return Instant{}, err
		}
		return odt.Instant(), nil
	}

	localSecs := local.date.days*86400 + local.time.nanos/1_000_000_000
	subNanos := local.time.nanos % 1_000_000_000

	cands := z.resolver.CandidatesForLocal(localSecs)
	var offset int64
	switch len(cands.Candidates) {
	case 0: // gap
		switch d {
		case Earlier:
			offset = cands.OffsetBefore
		case Later, Compatible:
			offset = cands.OffsetAfter
		case RejectAmbiguous:
			return Instant{}, rangeErrorf("local date-time falls in a zone-transition gap")
		}
	case 2: // fold
		switch d {
		case Earlier, Compatible:
			offset = cands.Candidates[0].Offset
		case Later:
			offset = cands.Candidates[1].Offset
		case RejectAmbiguous:
			return Instant{}, rangeErrorf("local date-time is ambiguous")
		}
	default:
		offset = cands.Candidates[0].Offset
	}

	return NewInstant(localSecs-offset, subNanos)
}

// Add implements spec.md §4.6.1.
func (z ZonedDateTime) Add(d Duration, overflow Overflow) (ZonedDateTime, error) {
	tn, err := d.normalizedTimeNanos()
	if err != nil {
		return ZonedDateTime{}, err
	}

	if d.Years == 0 && d.Months == 0 && d.Weeks == 0 && d.Days == 0 {
		instant, err := instantFromNanos(z.instant.ns.Add(tn))
		if err != nil {
			return ZonedDateTime{}, err
		}
		return ZonedDateTime{instant: instant, zone: z.zone, calendar: z.calendar, resolver: z.resolver}, nil
	}

	local := z.Local()
	newDate, err := local.date.AddDate(int64(d.Years), int(d.Months), int(d.Weeks)*7+int(d.Days), overflow)
	if err != nil {
		return ZonedDateTime{}, err
	}
	combined, err := NewPlainDateTime(newDate, local.time)
	if err != nil {
		return ZonedDateTime{}, err
	}

	resolved, err := z.resolveLocal(combined, Compatible)
	if err != nil {
		return ZonedDateTime{}, err
	}
	final, err := instantFromNanos(resolved.ns.Add(tn))
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{instant: final, zone: z.zone, calendar: z.calendar, resolver: z.resolver}, nil
}

// Sub implements spec.md §4.6.2: the difference is decomposed in the
// zone's local frame (so a calendar day spanning a DST transition counts
// as one day even though it is 23 or 25 real hours), then re-balanced
// into a Duration the same way Add's inverse would be.
func (z ZonedDateTime) Sub(other ZonedDateTime) (Duration, error) {
	if z.instant.Equal(other.instant) {
		return Duration{}, nil
	}

	aLocal, bLocal := z.Local(), other.Local()
	days := aLocal.date.days - bLocal.date.days
	nanos := aLocal.time.nanos - bLocal.time.nanos
	if nanos < 0 {
		days--
		nanos += 1_000_000_000 * 86400
	}

	total := i128.FromInt64(days).MulInt64(86400_000_000_000).Add(i128.FromInt64(nanos))
	return balanceTimeNanos(total, UnitDay)
}

// Compare orders two zoned date-times by their instants alone; zone and
// calendar never participate (spec.md §3.8).
func (z ZonedDateTime) Compare(other ZonedDateTime) int {
	return z.instant.Compare(other.instant)
}

func (z ZonedDateTime) String() string {
	local := z.Local()
	offset := offsetFromSeconds(z.OffsetSeconds())
	return local.String() + offset.String() + "[" + z.zone.String() + "]"
}
