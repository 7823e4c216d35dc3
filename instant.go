package temporal

import (
	"github.com/go-temporal/temporal/internal/i128"
)

// Instant is a signed 128-bit count of nanoseconds since the Unix epoch
// (spec.md §3.1). Unlike go-chrono's Instant, which wraps a monotonic
// clock reading obtained via a go:linkname into the runtime, this type is
// an absolute, comparable, serializable point on the timeline: it carries
// no reference to a particular process's monotonic clock.
type Instant struct {
	ns i128.Int128
}

// maxInstantNanos is ±(8.64 × 10²¹) nanoseconds (spec.md §3.1).
var maxInstantNanos = i128.FromInt64(8_640_000_000).MulInt64(1_000_000_000_000)

// Epoch is the Instant representing the Unix epoch, 1970-01-01T00:00:00Z.
var Epoch = Instant{}

// NewInstant constructs an Instant from a signed nanosecond count since
// the epoch, expressed as separate seconds and nanosecond-of-second parts
// to avoid forcing callers through 128-bit arithmetic for the common case.
func NewInstant(epochSeconds int64, nanoOfSecond int64) (Instant, error) {
	ns := i128.FromInt64(epochSeconds).MulInt64(1_000_000_000).Add(i128.FromInt64(nanoOfSecond))
	return instantFromNanos(ns)
}

// NewInstantFromUnixNano constructs an Instant from a nanosecond count
// that already fits in an int64 (the common case for instants within a
// few hundred years of the epoch).
func NewInstantFromUnixNano(nanos int64) (Instant, error) {
	return instantFromNanos(i128.FromInt64(nanos))
}

func instantFromNanos(ns i128.Int128) (Instant, error) {
	if ns.Abs().Cmp(maxInstantNanos) > 0 {
		return Instant{}, rangeErrorf("instant exceeds representable range")
	}
	return Instant{ns: ns}, nil
}

// EpochSeconds and NanoOfSecond split i into whole seconds since the
// epoch and the (always non-negative) nanosecond remainder.
func (i Instant) EpochSeconds() int64 {
	secs, _ := i.ns.QuoRemEuclid(i128.FromInt64(1_000_000_000))
	v, _ := secs.Int64()
	return v
}

func (i Instant) NanoOfSecond() int64 {
	_, rem := i.ns.QuoRemEuclid(i128.FromInt64(1_000_000_000))
	v, _ := rem.Int64()
	return v
}

// UnixNano returns i as a nanosecond count since the epoch, and reports
// whether that count fit in an int64 without truncation.
func (i Instant) UnixNano() (int64, bool) {
	return i.ns.Int64()
}

// Compare orders two instants by their underlying integer value.
func (i Instant) Compare(other Instant) int {
	return i.ns.Cmp(other.ns)
}

// Equal reports whether i and other are the same instant.
func (i Instant) Equal(other Instant) bool {
	return i.ns.Cmp(other.ns) == 0
}

// AddNanos returns i shifted by a signed nanosecond count, failing with
// KindRange if the result leaves the representable window.
func (i Instant) AddNanos(n int64) (Instant, error) {
	return instantFromNanos(i.ns.Add(i128.FromInt64(n)))
}

// Sub returns the signed nanosecond difference i-other as an Int128, for
// callers that need exact differences outside int64 range; most callers
// should prefer Duration-based differencing (see ZonedDateTime.Sub).
func (i Instant) Sub(other Instant) i128.Int128 {
	return i.ns.Sub(other.ns)
}

func (i Instant) String() string {
	secs := i.EpochSeconds()
	nanos := i.NanoOfSecond()
	days, rem := floorDivMod(secs, 86400)
	date := plainDateFromDays(days)
	t := plainTimeFromNanos(rem*1_000_000_000 + nanos)
	return date.String() + "T" + t.String() + "Z"
}

func floorDivMod(a, b int64) (q, r int64) {
	q = a / b
	r = a % b
	if r < 0 {
		q--
		r += b
	}
	return
}
