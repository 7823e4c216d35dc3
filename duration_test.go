package temporal_test

import (
	"testing"

	temporal "github.com/go-temporal/temporal"
)

func TestNewDurationSignConsistency(t *testing.T) {
	if _, err := temporal.NewDuration(1, 0, 0, 0, -1, 0, 0, 0, 0, 0); err == nil {
		t.Errorf("NewDuration() with mixed-sign fields succeeded, want a range error")
	}

	if _, err := temporal.NewDuration(-1, -2, 0, 0, -3, 0, 0, 0, 0, 0); err != nil {
		t.Errorf("NewDuration() with uniformly negative fields failed: %v", err)
	}
}

func TestDurationSignAndZero(t *testing.T) {
	zero, err := temporal.NewDuration(0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	if err != nil {
		t.Fatalf("NewDuration() error = %v", err)
	}
	if !zero.IsZero() {
		t.Errorf("zero.IsZero() = false, want true")
	}
	if zero.Sign() != 0 {
		t.Errorf("zero.Sign() = %d, want 0", zero.Sign())
	}

	pos, _ := temporal.NewDuration(0, 0, 0, 1, 0, 0, 0, 0, 0, 0)
	if pos.Sign() != 1 {
		t.Errorf("pos.Sign() = %d, want 1", pos.Sign())
	}
	neg := pos.Negate()
	if neg.Sign() != -1 {
		t.Errorf("neg.Sign() = %d, want -1", neg.Sign())
	}
	if got := neg.Abs().Sign(); got != 1 {
		t.Errorf("neg.Abs().Sign() = %d, want 1", got)
	}
}

func TestDurationAdd(t *testing.T) {
	a, _ := temporal.NewDuration(0, 0, 0, 0, 1, 30, 0, 0, 0, 0) // PT1H30M
	b, _ := temporal.NewDuration(0, 0, 0, 0, 0, 45, 0, 0, 0, 0) // PT45M

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got, want := sum.Hours, 2.0; got != want {
		t.Errorf("sum.Hours = %v, want %v", got, want)
	}
	if got, want := sum.Minutes, 15.0; got != want {
		t.Errorf("sum.Minutes = %v, want %v", got, want)
	}
}

func TestDurationAddRejectsCalendarUnits(t *testing.T) {
	a, _ := temporal.NewDuration(1, 0, 0, 0, 0, 0, 0, 0, 0, 0) // P1Y
	b, _ := temporal.NewDuration(0, 0, 0, 0, 1, 0, 0, 0, 0, 0) // PT1H

	if _, err := a.Add(b); err == nil {
		t.Errorf("Add() with a calendar-unit operand succeeded, want a range error")
	}
}

func TestDurationSub(t *testing.T) {
	a, _ := temporal.NewDuration(0, 0, 0, 0, 2, 0, 0, 0, 0, 0) // PT2H
	b, _ := temporal.NewDuration(0, 0, 0, 0, 0, 30, 0, 0, 0, 0) // PT30M

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub() error = %v", err)
	}
	if got, want := diff.Hours, 1.0; got != want {
		t.Errorf("diff.Hours = %v, want %v", got, want)
	}
	if got, want := diff.Minutes, 30.0; got != want {
		t.Errorf("diff.Minutes = %v, want %v", got, want)
	}
}

func TestDurationCompareNoAnchor(t *testing.T) {
	a, _ := temporal.NewDuration(0, 0, 0, 0, 1, 0, 0, 0, 0, 0)
	b, _ := temporal.NewDuration(0, 0, 0, 0, 2, 0, 0, 0, 0, 0)

	cmp, err := a.Compare(b, nil, nil)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if cmp >= 0 {
		t.Errorf("a.Compare(b, nil, nil) = %d, want < 0", cmp)
	}
}

func TestDurationCompareCalendarRequiresAnchor(t *testing.T) {
	a, _ := temporal.NewDuration(0, 1, 0, 0, 0, 0, 0, 0, 0, 0) // P1M
	b, _ := temporal.NewDuration(0, 0, 0, 30, 0, 0, 0, 0, 0, 0) // P30D

	if _, err := a.Compare(b, nil, nil); err == nil {
		t.Errorf("Compare() without an anchor for calendar units succeeded, want a range error")
	}

	anchor, _ := temporal.NewPlainDate(2023, 1, 1, temporal.Reject)
	if _, err := a.Compare(b, &anchor, nil); err != nil {
		t.Errorf("Compare() with an anchor failed: %v", err)
	}
}

func TestDurationString(t *testing.T) {
	for _, tt := range []struct {
		name string
		d    temporal.Duration
		want string
	}{
		{"zero", temporal.Duration{}, "PT0S"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}

	d, _ := temporal.NewDuration(0, 0, 0, 0, 1, 30, 0, 0, 0, 0)
	if got, want := d.String(), "PT1H30M"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
