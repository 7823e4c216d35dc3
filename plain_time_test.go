package temporal_test

import (
	"fmt"
	"testing"

	temporal "github.com/go-temporal/temporal"
)

func TestPlainTime(t *testing.T) {
	for _, tt := range []struct {
		hour, minute, second, ms, us, ns int
		want                             string
	}{
		{0, 0, 0, 0, 0, 0, "00:00:00"},
		{23, 59, 59, 0, 0, 0, "23:59:59"},
		{12, 30, 15, 500, 0, 0, "12:30:15.500000000"},
		{8, 5, 0, 1, 2, 3, "08:05:00.001002003"},
	} {
		t.Run(fmt.Sprintf("%02d:%02d:%02d", tt.hour, tt.minute, tt.second), func(t *testing.T) {
			time, err := temporal.NewPlainTime(tt.hour, tt.minute, tt.second, tt.ms, tt.us, tt.ns)
			if err != nil {
				t.Fatalf("NewPlainTime() error = %v", err)
			}
			if got := time.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			hour, minute, second := time.Clock()
			if hour != tt.hour || minute != tt.minute || second != tt.second {
				t.Errorf("Clock() = (%d,%d,%d), want (%d,%d,%d)", hour, minute, second, tt.hour, tt.minute, tt.second)
			}
		})
	}
}

func TestPlainTimeRangeErrors(t *testing.T) {
	for _, tt := range []struct {
		name                             string
		hour, minute, second, ms, us, ns int
	}{
		{"hour too large", 24, 0, 0, 0, 0, 0},
		{"minute too large", 0, 60, 0, 0, 0, 0},
		{"second too large", 0, 0, 60, 0, 0, 0},
		{"negative hour", -1, 0, 0, 0, 0, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := temporal.NewPlainTime(tt.hour, tt.minute, tt.second, tt.ms, tt.us, tt.ns); err == nil {
				t.Errorf("NewPlainTime() succeeded, want a range error")
			}
		})
	}
}

func TestPlainTimeCompare(t *testing.T) {
	a, _ := temporal.NewPlainTime(8, 0, 0, 0, 0, 0)
	b, _ := temporal.NewPlainTime(17, 0, 0, 0, 0, 0)

	if a.Compare(b) >= 0 {
		t.Errorf("a.Compare(b) >= 0, want < 0")
	}
	if !a.Equal(a) {
		t.Errorf("a.Equal(a) = false, want true")
	}
}

func TestMidnight(t *testing.T) {
	hour, minute, second := temporal.Midnight.Clock()
	if hour != 0 || minute != 0 || second != 0 {
		t.Errorf("Midnight.Clock() = (%d,%d,%d), want (0,0,0)", hour, minute, second)
	}
}
