package round

import (
	"testing"

	"github.com/go-temporal/temporal/internal/i128"
)

func TestInt64Modes(t *testing.T) {
	cases := []struct {
		d, v int64
		m    Mode
		want int64
	}{
		{7, 2, Trunc, 3},
		{-7, 2, Trunc, -3},
		{7, 2, Expand, 4},
		{-7, 2, Expand, -4},
		{7, 2, Ceil, 4},
		{-7, 2, Ceil, -3},
		{7, 2, Floor, 3},
		{-7, 2, Floor, -4},
		{5, 2, HalfEven, 2},  // 2.5 -> even (2)
		{7, 2, HalfEven, 4},  // 3.5 -> even (4)
		{-5, 2, HalfEven, -2},
		{5, 2, HalfExpand, 3},
		{-5, 2, HalfExpand, -3},
		{5, 2, HalfTrunc, 2},
		{-5, 2, HalfTrunc, -2},
		{5, 2, HalfCeil, 3},
		{-5, 2, HalfCeil, -2},
		{5, 2, HalfFloor, 2},
		{-5, 2, HalfFloor, -3},
		{6, 2, Trunc, 3}, // exact, no rounding
	}
	for _, c := range cases {
		got := Int64(c.d, c.v, c.m)
		if got != c.want {
			t.Errorf("Int64(%d,%d,mode=%d) = %d, want %d", c.d, c.v, c.m, got, c.want)
		}
	}
}

func TestInt128Agreement(t *testing.T) {
	// Int128 rounding must agree with Int64 rounding over the same inputs.
	modes := []Mode{Ceil, Floor, Expand, Trunc, HalfCeil, HalfFloor, HalfExpand, HalfTrunc, HalfEven}
	for d := int64(-20); d <= 20; d++ {
		for _, v := range []int64{1, 2, 3, 4, 7} {
			for _, m := range modes {
				want := Int64(d, v, m)
				got := Int128(i128.FromInt64(d), i128.FromInt64(v), m)
				gotI64, ok := got.Int64()
				if !ok || gotI64 != want {
					t.Errorf("Int128(%d,%d,mode=%d) = %v, want %d", d, v, m, got, want)
				}
			}
		}
	}
}

func TestContract(t *testing.T) {
	// |d - q'*v| <= v for every mode (spec.md §8.1 property 12).
	modes := []Mode{Ceil, Floor, Expand, Trunc, HalfCeil, HalfFloor, HalfExpand, HalfTrunc, HalfEven}
	for d := int64(-50); d <= 50; d++ {
		for _, v := range []int64{1, 3, 5, 10} {
			for _, m := range modes {
				q := Int64(d, v, m)
				diff := d - q*v
				if diff < 0 {
					diff = -diff
				}
				if diff > v {
					t.Errorf("contract violated: d=%d v=%d mode=%d q=%d diff=%d", d, v, m, q, diff)
				}
			}
		}
	}
}
