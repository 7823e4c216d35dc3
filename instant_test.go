package temporal_test

import (
	"testing"

	temporal "github.com/go-temporal/temporal"
)

func TestInstantEpochSecondsAndNano(t *testing.T) {
	for _, tt := range []struct {
		name         string
		epochSeconds int64
		nanoOfSecond int64
	}{
		{"epoch", 0, 0},
		{"positive with fraction", 1_700_000_000, 123_456_789},
		{"negative before epoch", -1, 500_000_000},
		{"far negative", -86400 * 365 * 100, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			instant, err := temporal.NewInstant(tt.epochSeconds, tt.nanoOfSecond)
			if err != nil {
				t.Fatalf("NewInstant() error = %v", err)
			}
			if got := instant.EpochSeconds(); got != tt.epochSeconds {
				t.Errorf("EpochSeconds() = %d, want %d", got, tt.epochSeconds)
			}
			if got := instant.NanoOfSecond(); got != tt.nanoOfSecond {
				t.Errorf("NanoOfSecond() = %d, want %d", got, tt.nanoOfSecond)
			}
		})
	}
}

func TestInstantNegativeNanoOfSecondNormalizes(t *testing.T) {
	// One second before the epoch, expressed with a negative nanoOfSecond,
	// should normalize to epochSeconds=-1, nanoOfSecond=999999999 rather
	// than epochSeconds=0, nanoOfSecond=-1 (Euclidean remainder is always
	// non-negative).
	instant, err := temporal.NewInstant(0, -1)
	if err != nil {
		t.Fatalf("NewInstant() error = %v", err)
	}
	if got := instant.EpochSeconds(); got != -1 {
		t.Errorf("EpochSeconds() = %d, want -1", got)
	}
	if got := instant.NanoOfSecond(); got != 999_999_999 {
		t.Errorf("NanoOfSecond() = %d, want 999999999", got)
	}
}

func TestInstantCompareAndEqual(t *testing.T) {
	a, _ := temporal.NewInstant(100, 0)
	b, _ := temporal.NewInstant(200, 0)

	if a.Compare(b) >= 0 {
		t.Errorf("a.Compare(b) >= 0, want < 0")
	}
	if b.Compare(a) <= 0 {
		t.Errorf("b.Compare(a) <= 0, want > 0")
	}
	if !a.Equal(a) {
		t.Errorf("a.Equal(a) = false, want true")
	}
}

func TestInstantAddNanos(t *testing.T) {
	start, _ := temporal.NewInstant(0, 0)
	shifted, err := start.AddNanos(1_500_000_000)
	if err != nil {
		t.Fatalf("AddNanos() error = %v", err)
	}
	if got := shifted.EpochSeconds(); got != 1 {
		t.Errorf("EpochSeconds() = %d, want 1", got)
	}
	if got := shifted.NanoOfSecond(); got != 500_000_000 {
		t.Errorf("NanoOfSecond() = %d, want 500000000", got)
	}
}

func TestInstantOutOfRange(t *testing.T) {
	if _, err := temporal.NewInstant(9_000_000_000_000, 0); err == nil {
		t.Errorf("NewInstant() succeeded for an out-of-range epoch second count, want a range error")
	}
}

func TestInstantString(t *testing.T) {
	instant, _ := temporal.NewInstant(0, 0)
	if got, want := instant.String(), "1970-01-01T00:00:00Z"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
