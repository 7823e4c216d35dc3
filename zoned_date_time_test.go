package temporal_test

import (
	"testing"

	temporal "github.com/go-temporal/temporal"
)

func TestZonedDateTimeFixedZoneRoundTrip(t *testing.T) {
	instant, _ := temporal.NewInstant(1_700_000_000, 0)
	zone := temporal.FixedZone(temporal.NewUTCOffset(9, 0, 0))

	zdt, err := temporal.NewZonedDateTime(instant, zone, nil)
	if err != nil {
		t.Fatalf("NewZonedDateTime() error = %v", err)
	}
	if got := zdt.OffsetSeconds(); got != 9*3600 {
		t.Errorf("OffsetSeconds() = %d, want %d", got, 9*3600)
	}
	if !zdt.Instant().Equal(instant) {
		t.Errorf("Instant() changed across construction")
	}
}

func TestZonedDateTimeFromPlainLocalFixedZone(t *testing.T) {
	local := newDateTime(t, 2023, 6, 1, 12, 0, 0)
	zone := temporal.FixedZone(temporal.NewUTCOffset(-5, 0, 0))

	zdt, err := temporal.FromPlainLocal(local, zone, nil, temporal.Compatible)
	if err != nil {
		t.Fatalf("FromPlainLocal() error = %v", err)
	}
	if got := zdt.Local().String(); got != local.String() {
		t.Errorf("Local().String() = %q, want %q", got, local.String())
	}
}

func TestZonedDateTimeAddNoCalendarUnits(t *testing.T) {
	instant, _ := temporal.NewInstant(0, 0)
	zone := temporal.FixedZone(temporal.NewUTCOffset(9, 0, 0))
	zdt, err := temporal.NewZonedDateTime(instant, zone, nil)
	if err != nil {
		t.Fatalf("NewZonedDateTime() error = %v", err)
	}

	d, _ := temporal.NewDuration(0, 0, 0, 0, 2, 0, 0, 0, 0, 0) // PT2H
	shifted, err := zdt.Add(d, temporal.Constrain)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got, want := shifted.Instant().EpochSeconds(), int64(7200); got != want {
		t.Errorf("Instant().EpochSeconds() = %d, want %d", got, want)
	}
}

func TestZonedDateTimeAddWithCalendarUnits(t *testing.T) {
	local := newDateTime(t, 2023, 1, 31, 9, 0, 0)
	zone := temporal.FixedZone(temporal.UTC)
	zdt, err := temporal.FromPlainLocal(local, zone, nil, temporal.Compatible)
	if err != nil {
		t.Fatalf("FromPlainLocal() error = %v", err)
	}

	d, _ := temporal.NewDuration(0, 1, 0, 0, 0, 0, 0, 0, 0, 0) // P1M
	shifted, err := zdt.Add(d, temporal.Constrain)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got, want := shifted.Local().String(), "2023-02-28T09:00:00"; got != want {
		t.Errorf("Local().String() = %q, want %q", got, want)
	}
}

func TestZonedDateTimeCompareIgnoresZone(t *testing.T) {
	instant, _ := temporal.NewInstant(12345, 0)
	a, _ := temporal.NewZonedDateTime(instant, temporal.FixedZone(temporal.NewUTCOffset(5, 0, 0)), nil)
	b, _ := temporal.NewZonedDateTime(instant, temporal.FixedZone(temporal.NewUTCOffset(-5, 0, 0)), nil)

	if a.Compare(b) != 0 {
		t.Errorf("Compare() = %d, want 0 (same instant, different zones)", a.Compare(b))
	}
}

func TestZonedDateTimeSub(t *testing.T) {
	zone := temporal.FixedZone(temporal.UTC)
	a, err := temporal.FromPlainLocal(newDateTime(t, 2023, 1, 2, 0, 0, 0), zone, nil, temporal.Compatible)
	if err != nil {
		t.Fatalf("FromPlainLocal() error = %v", err)
	}
	b, err := temporal.FromPlainLocal(newDateTime(t, 2023, 1, 1, 0, 0, 0), zone, nil, temporal.Compatible)
	if err != nil {
		t.Fatalf("FromPlainLocal() error = %v", err)
	}

	d, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub() error = %v", err)
	}
	if got, want := d.Days, 1.0; got != want {
		t.Errorf("d.Days = %v, want %v", got, want)
	}
}
