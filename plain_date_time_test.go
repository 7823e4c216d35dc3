package temporal_test

import (
	"testing"

	temporal "github.com/go-temporal/temporal"
)

func newDateTime(t *testing.T, year int64, month, day, hour, minute, second int) temporal.PlainDateTime {
	t.Helper()
	date, err := temporal.NewPlainDate(year, month, day, temporal.Reject)
	if err != nil {
		t.Fatalf("NewPlainDate() error = %v", err)
	}
	time, err := temporal.NewPlainTime(hour, minute, second, 0, 0, 0)
	if err != nil {
		t.Fatalf("NewPlainTime() error = %v", err)
	}
	dt, err := temporal.NewPlainDateTime(date, time)
	if err != nil {
		t.Fatalf("NewPlainDateTime() error = %v", err)
	}
	return dt
}

func TestPlainDateTimeString(t *testing.T) {
	dt := newDateTime(t, 2023, 3, 7, 13, 45, 0)
	if got, want := dt.String(), "2023-03-07T13:45:00"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPlainDateTimeCompare(t *testing.T) {
	a := newDateTime(t, 2023, 1, 1, 0, 0, 0)
	b := newDateTime(t, 2023, 1, 1, 12, 0, 0)
	c := newDateTime(t, 2023, 1, 2, 0, 0, 0)

	if a.Compare(b) >= 0 {
		t.Errorf("a.Compare(b) >= 0, want < 0 (same date, earlier time)")
	}
	if b.Compare(c) >= 0 {
		t.Errorf("b.Compare(c) >= 0, want < 0 (earlier date)")
	}
	if !a.Equal(a) {
		t.Errorf("a.Equal(a) = false, want true")
	}
}

func TestPlainDateTimeAddDate(t *testing.T) {
	dt := newDateTime(t, 2023, 1, 31, 9, 0, 0)
	shifted, err := dt.AddDate(0, 1, 0, temporal.Constrain)
	if err != nil {
		t.Fatalf("AddDate() error = %v", err)
	}
	if got, want := shifted.String(), "2023-02-28T09:00:00"; got != want {
		t.Errorf("AddDate() = %q, want %q", got, want)
	}
}
