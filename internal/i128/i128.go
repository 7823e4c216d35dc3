// Package i128 implements a fixed-width signed 128-bit integer.
//
// The duration kernel (spec.md §4.3.3) and the rounding kernel (spec.md
// §4.2) both require exact arithmetic over a range that exceeds int64 but
// is bounded well below what math/big.Int's arbitrary precision is needed
// for (±9×10²¹, the maximum normalized time duration). A fixed two-limb
// representation avoids the allocation and indirection of big.Int on a
// path exercised by every duration add, round, and compare.
package i128

import (
	"fmt"
	"math/bits"
)

// Int128 is a signed 128-bit integer in two's complement form:
// value == int128(Hi)<<64 + uint128(Lo).
type Int128 struct {
	Hi int64
	Lo uint64
}

// Zero is the additive identity.
var Zero = Int128{}

// FromInt64 returns the Int128 equivalent to v.
func FromInt64(v int64) Int128 {
	if v < 0 {
		return Int128{Hi: -1, Lo: uint64(v)}
	}
	return Int128{Hi: 0, Lo: uint64(v)}
}

// Int64 returns v as an int64, and reports whether the conversion was exact.
func (v Int128) Int64() (int64, bool) {
	if v.Hi == 0 && v.Lo <= 1<<63-1 {
		return int64(v.Lo), true
	}
	if v.Hi == -1 && v.Lo >= 1<<63 {
		return int64(v.Lo), true
	}
	return 0, false
}

// IsZero reports whether v is 0.
func (v Int128) IsZero() bool {
	return v.Hi == 0 && v.Lo == 0
}

// Sign returns -1, 0, or 1 according to the sign of v.
func (v Int128) Sign() int {
	switch {
	case v.Hi < 0:
		return -1
	case v.Hi > 0 || v.Lo > 0:
		return 1
	default:
		return 0
	}
}

// Neg returns -v.
func (v Int128) Neg() Int128 {
	lo, carry := bits.Sub64(0, v.Lo, 0)
	hi := -v.Hi - int64(carry)
	return Int128{Hi: hi, Lo: lo}
}

// Abs returns the absolute value of v.
func (v Int128) Abs() Int128 {
	if v.Sign() < 0 {
		return v.Neg()
	}
	return v
}

// Add returns v+w.
func (v Int128) Add(w Int128) Int128 {
	lo, carry := bits.Add64(v.Lo, w.Lo, 0)
	hi := v.Hi + w.Hi + int64(carry)
	return Int128{Hi: hi, Lo: lo}
}

// Sub returns v-w.
func (v Int128) Sub(w Int128) Int128 {
	return v.Add(w.Neg())
}

// Cmp returns -1, 0, or 1 according to whether v<w, v==w, or v>w.
func (v Int128) Cmp(w Int128) int {
	switch {
	case v.Hi < w.Hi:
		return -1
	case v.Hi > w.Hi:
		return 1
	case v.Lo < w.Lo:
		return -1
	case v.Lo > w.Lo:
		return 1
	default:
		return 0
	}
}

// Less reports whether v<w.
func (v Int128) Less(w Int128) bool { return v.Cmp(w) < 0 }

// MulInt64 returns v*w, where w is a scalar that does not cause overflow
// beyond the representable range the caller is known to operate within.
func (v Int128) MulInt64(w int64) Int128 {
	neg := false
	uv := v
	if uv.Sign() < 0 {
		uv = uv.Neg()
		neg = !neg
	}
	uw := w
	if uw < 0 {
		uw = -uw
		neg = !neg
	}

	hiLo, loLo := bits.Mul64(uv.Lo, uint64(uw))
	hi := uv.Hi*int64(uw) + int64(hiLo)
	out := Int128{Hi: hi, Lo: loLo}
	if neg {
		out = out.Neg()
	}
	return out
}

// FromInt64Product returns a*b computed without intermediate int64 overflow.
func FromInt64Product(a, b int64) Int128 {
	return FromInt64(a).MulInt64(b)
}

// quoRemUint128 performs unsigned 128-bit division via long (bit-by-bit)
// division: d is small in practice (the rounding kernel's divisors are
// bounded unit lengths), so this trades a little throughput for clarity
// and correctness.
func quoRemUint128(hi, lo uint64, dHi, dLo uint64) (qHi, qLo, rHi, rLo uint64) {
	var remHi, remLo uint64
	var quoHi, quoLo uint64
	for i := 127; i >= 0; i-- {
		// shift remainder left by 1, bring in next bit of numerator
		remHi = (remHi << 1) | (remLo >> 63)
		remLo = remLo << 1
		var bit uint64
		if i >= 64 {
			bit = (hi >> uint(i-64)) & 1
		} else {
			bit = (lo >> uint(i)) & 1
		}
		remLo |= bit

		// compare (remHi,remLo) >= (dHi,dLo)
		ge := remHi > dHi || (remHi == dHi && remLo >= dLo)
		if ge {
			var borrow uint64
			remLo, borrow = bits.Sub64(remLo, dLo, 0)
			remHi, _ = bits.Sub64(remHi, dHi, borrow)

			if i >= 64 {
				quoHi |= 1 << uint(i-64)
			} else {
				quoLo |= 1 << uint(i)
			}
		}
	}
	return quoHi, quoLo, remHi, remLo
}

// QuoRemEuclid returns the Euclidean quotient and remainder of v/w: the
// unique (q, r) such that v == q*w + r and 0 <= r < |w|. w must be nonzero.
func (v Int128) QuoRemEuclid(w Int128) (q, r Int128) {
	if w.IsZero() {
		panic(fmt.Sprintf("i128: division by zero (%v / %v)", v, w))
	}

	negV := v.Sign() < 0
	negW := w.Sign() < 0
	uv, uw := v.Abs(), w.Abs()

	qHi, qLo, rHi, rLo := quoRemUint128(uint64(uv.Hi), uv.Lo, uint64(uw.Hi), uw.Lo)
	uq := Int128{Hi: int64(qHi), Lo: qLo}
	ur := Int128{Hi: int64(rHi), Lo: rLo}

	// Truncated quotient/remainder: r0 takes the sign of v (or zero).
	q0 := uq
	if negV != negW {
		q0 = uq.Neg()
	}
	r0 := ur
	if negV {
		r0 = ur.Neg()
	}

	// Euclidean adjustment: push a negative remainder up into [0, |w|).
	if r0.Sign() < 0 {
		if !negW {
			q = q0.Sub(FromInt64(1))
			r = r0.Add(w)
		} else {
			q = q0.Add(FromInt64(1))
			r = r0.Sub(w)
		}
		return q, r
	}
	return q0, r0
}

func (v Int128) String() string {
	if v.IsZero() {
		return "0"
	}
	neg := v.Sign() < 0
	uv := v
	if neg {
		uv = uv.Neg()
	}

	var digits [40]byte
	i := len(digits)
	ten := Int128{Lo: 10}
	for !uv.IsZero() {
		var rem Int128
		uv, rem = uv.QuoRemEuclid(ten)
		i--
		digits[i] = byte('0' + rem.Lo)
	}
	s := string(digits[i:])
	if neg {
		return "-" + s
	}
	return s
}
