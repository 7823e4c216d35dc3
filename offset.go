package temporal

import "fmt"

// UTCOffset is a fixed offset from UTC, with precision to the second
// (spec.md §3.7 names "±HH:MM[:SS]" as a valid time-zone identifier form).
// Grounded on go-chrono/offset.go's Offset, widened from minute to second
// precision since the spec's fixed-offset form admits seconds.
type UTCOffset struct {
	seconds int32
}

// UTC is the zero offset.
var UTC = UTCOffset{}

// NewUTCOffset returns the offset represented by hours, minutes, and
// seconds. The sign of the most significant nonzero argument governs the
// offset's sign; less significant arguments contribute their magnitude in
// that same direction regardless of their own sign, e.g.
// NewUTCOffset(-2, 30, 0) is -02:30, not -01:30. This generalizes
// go-chrono's OffsetOf convention for combining a signed hour with
// unsigned minutes to a third, seconds, field.
func NewUTCOffset(hours, minutes, seconds int) UTCOffset {
	sign := int32(1)
	switch {
	case hours != 0:
		if hours < 0 {
			sign = -1
		}
	case minutes != 0:
		if minutes < 0 {
			sign = -1
		}
	default:
		if seconds < 0 {
			sign = -1
		}
	}
	if hours < 0 {
		hours = -hours
	}
	if minutes < 0 {
		minutes = -minutes
	}
	if seconds < 0 {
		seconds = -seconds
	}
	total := sign * (int32(hours)*3600 + int32(minutes)*60 + int32(seconds))
	return UTCOffset{seconds: total}
}

// offsetFromSeconds builds a UTCOffset directly from a signed total
// second count, with no sign-distribution rule; used internally when the
// offset is already known as a single signed integer (e.g. from a
// resolver lookup) rather than as separate h/m/s components.
func offsetFromSeconds(s int64) UTCOffset {
	return UTCOffset{seconds: int32(s)}
}

// Seconds returns the offset as a signed second count east of UTC.
func (o UTCOffset) Seconds() int32 { return o.seconds }

func (o UTCOffset) String() string {
	if o.seconds == 0 {
		return "Z"
	}
	sign := "+"
	v := o.seconds
	if v < 0 {
		sign = "-"
		v = -v
	}
	h, rem := v/3600, v%3600
	m, s := rem/60, rem%60
	if s != 0 {
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%02d:%02d", sign, h, m)
}
