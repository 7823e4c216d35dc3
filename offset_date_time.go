package temporal

// OffsetDateTime pairs an Instant with a fixed UTCOffset: the fast path
// for time-zone identifiers that are themselves a fixed offset rather
// than an IANA name (spec.md §3.7 — "a fixed-offset zone bypasses [the
// resolver]"). Grounded on go-chrono/offset_date_time.go's OffsetDateTime,
// rebuilt over Instant/UTCOffset instead of a big.Int local-time encoding.
type OffsetDateTime struct {
	instant Instant
	offset  UTCOffset
}

// NewOffsetDateTime combines an instant with a fixed offset.
func NewOffsetDateTime(instant Instant, offset UTCOffset) OffsetDateTime {
	return OffsetDateTime{instant: instant, offset: offset}
}

// FromPlainDateTime interprets dt as wall-clock time at the given fixed
// offset, producing the corresponding instant.
func FromPlainDateTime(dt PlainDateTime, offset UTCOffset) (OffsetDateTime, error) {
	days := dt.date.days
	nanos := dt.time.nanos - int64(offset.seconds)*1_000_000_000
	secs, rem := floorDivMod(nanos, 1_000_000_000)
	epochSecs := days*86400 + secs
	instant, err := NewInstant(epochSecs, rem)
	if err != nil {
		return OffsetDateTime{}, err
	}
	return OffsetDateTime{instant: instant, offset: offset}, nil
}

// Instant returns the underlying instant.
func (d OffsetDateTime) Instant() Instant { return d.instant }

// Offset returns the fixed offset d is expressed in.
func (d OffsetDateTime) Offset() UTCOffset { return d.offset }

// Local returns the PlainDateTime representing d's wall-clock time at its
// offset.
func (d OffsetDateTime) Local() PlainDateTime {
	secs := d.instant.EpochSeconds() + int64(d.offset.seconds)
	nanos := d.instant.NanoOfSecond()
	days, rem := floorDivMod(secs, 86400)
	return PlainDateTime{
		date: plainDateFromDays(days),
		time: plainTimeFromNanos(rem*1_000_000_000 + nanos),
	}
}

// In returns a copy of d re-expressed at a different fixed offset; the
// underlying instant is unchanged.
func (d OffsetDateTime) In(offset UTCOffset) OffsetDateTime {
	return OffsetDateTime{instant: d.instant, offset: offset}
}

// Compare orders two offset date-times by their instants alone, matching
// ZonedDateTime's ordering rule (spec.md §3.8).
func (d OffsetDateTime) Compare(other OffsetDateTime) int {
	return d.instant.Compare(other.instant)
}

func (d OffsetDateTime) String() string {
	local := d.Local()
	if d.offset.seconds == 0 {
		return local.String() + "Z"
	}
	return local.String() + d.offset.String()
}
