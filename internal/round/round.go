// Package round implements the rounding kernel of spec.md §4.2: given a
// signed dividend, a positive divisor, and one of nine rounding modes,
// it returns the rounded quotient.
//
// Grounded on go-chrono/extent.go's Extent.Truncate, which performs the
// single trunc-toward-zero case of this kernel; generalized here to all
// nine modes and to both int64 and i128.Int128 (see internal/i128).
package round

import "github.com/go-temporal/temporal/internal/i128"

// Mode is one of the nine public rounding modes named in spec.md §4.2.
type Mode int

const (
	Ceil Mode = iota
	Floor
	Expand
	Trunc
	HalfCeil
	HalfFloor
	HalfExpand
	HalfTrunc
	HalfEven
)

// unsignedMode is one of the five modes the kernel dispatches to internally
// after the sign of d/v has been extracted, per spec.md §4.2.
type unsignedMode int

const (
	uZero unsignedMode = iota
	uInfinity
	uHalfZero
	uHalfInfinity
	uHalfEven
)

// toUnsigned maps a public Mode to the internal unsigned mode for the given
// sign of the quotient d/v (positive means d and v have the same sign).
func toUnsigned(m Mode, positive bool) unsignedMode {
	switch m {
	case Ceil:
		if positive {
			return uInfinity
		}
		return uZero
	case Floor:
		if positive {
			return uZero
		}
		return uInfinity
	case Expand:
		return uInfinity
	case Trunc:
		return uZero
	case HalfCeil:
		if positive {
			return uHalfInfinity
		}
		return uHalfZero
	case HalfFloor:
		if positive {
			return uHalfZero
		}
		return uHalfInfinity
	case HalfExpand:
		return uHalfInfinity
	case HalfTrunc:
		return uHalfZero
	case HalfEven:
		return uHalfEven
	default:
		return uZero
	}
}

// Int64 rounds the quotient d/v (v > 0) to an integer according to m, and
// returns q such that q*v is the rounded value.
func Int64(d, v int64, m Mode) int64 {
	if v <= 0 {
		panic("round: divisor must be positive")
	}

	q := d / v
	r := d % v
	if r == 0 {
		return q
	}

	// Go's / and % truncate toward zero, so |q| and |r| are the quotient
	// and remainder of |d|/v; round that magnitude, then restore the sign.
	// v is always positive by contract, so sign(d/v) == sign(d).
	positive := d >= 0
	if !positive {
		q, r = -q, -r
	}
	q += int64(incrementFor(toUnsigned(m, positive), q, 2*r, v))
	if !positive {
		q = -q
	}
	return q
}

// Int128 rounds the quotient d/v (v > 0) the same way as Int64, over the
// wider integer type used by the duration kernel.
func Int128(d, v i128.Int128, m Mode) i128.Int128 {
	if v.Sign() <= 0 {
		panic("round: divisor must be positive")
	}

	q, r := d.QuoRemEuclid(v)
	if r.IsZero() {
		return q
	}

	// QuoRemEuclid floors; for a negative d, step to the quotient and
	// remainder of |d|/v, round that magnitude, then restore the sign.
	positive := d.Sign() >= 0
	if !positive {
		q = q.Add(i128.FromInt64(1)).Neg()
		r = v.Sub(r)
	}
	qOdd := int(q.Lo & 1)

	twice := r.Add(r)
	inc := incrementForI128(toUnsigned(m, positive), qOdd, twice, v)
	q = q.Add(i128.FromInt64(int64(inc)))
	if !positive {
		q = q.Neg()
	}
	return q
}

// incrementFor decides, for the int64 path, whether the Euclidean quotient
// q must be incremented by one to realize the chosen unsigned mode, given
// twice the non-negative remainder (2r) and the divisor v.
func incrementFor(m unsignedMode, q int64, twiceR, v int64) int {
	switch m {
	case uZero:
		return 0
	case uInfinity:
		return 1
	case uHalfZero:
		if twiceR > v {
			return 1
		}
		return 0
	case uHalfInfinity:
		if twiceR >= v {
			return 1
		}
		return 0
	case uHalfEven:
		switch {
		case twiceR > v:
			return 1
		case twiceR < v:
			return 0
		default:
			return int(q & 1) // tie: increment only if q is odd
		}
	default:
		return 0
	}
}

func incrementForI128(m unsignedMode, qOdd int, twiceR, v i128.Int128) int {
	cmp := twiceR.Cmp(v)
	switch m {
	case uZero:
		return 0
	case uInfinity:
		return 1
	case uHalfZero:
		if cmp > 0 {
			return 1
		}
		return 0
	case uHalfInfinity:
		if cmp >= 0 {
			return 1
		}
		return 0
	case uHalfEven:
		switch {
		case cmp > 0:
			return 1
		case cmp < 0:
			return 0
		default:
			return qOdd
		}
	default:
		return 0
	}
}
