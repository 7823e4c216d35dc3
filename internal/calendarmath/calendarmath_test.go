package calendarmath

import "testing"

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		year        int64
		month, day  int
	}{
		{1970, 1, 1},
		{1970, 1, 2},
		{1969, 12, 31},
		{2000, 2, 29},
		{2024, 2, 29},
		{1900, 2, 28},
		{1, 1, 1},
		{-1, 12, 31},
		{MinYear, 4, 19},
		{MaxYear, 9, 13},
		{2017, 3, 12},
		{2017, 11, 5},
	}
	for _, c := range cases {
		days, err := DaysFromCivil(c.year, c.month, c.day)
		if err != nil {
			t.Fatalf("DaysFromCivil(%d,%d,%d): %v", c.year, c.month, c.day, err)
		}
		y, m, d := CivilFromDays(days)
		if y != c.year || m != c.month || d != c.day {
			t.Errorf("round trip %04d-%02d-%02d -> %d -> %04d-%02d-%02d", c.year, c.month, c.day, days, y, m, d)
		}
	}
}

func TestEpoch(t *testing.T) {
	days, err := DaysFromCivil(1970, 1, 1)
	if err != nil || days != 0 {
		t.Fatalf("epoch day = %d, %v; want 0, nil", days, err)
	}
}

func TestDayOfWeek(t *testing.T) {
	// 1970-01-01 was a Thursday (index 3, Monday == 0).
	if wd := DayOfWeek(0); wd != 3 {
		t.Errorf("DayOfWeek(0) = %d, want 3 (Thursday)", wd)
	}
	// 2017-03-12 was a Sunday (index 6).
	days, _ := DaysFromCivil(2017, 3, 12)
	if wd := DayOfWeek(days); wd != 6 {
		t.Errorf("DayOfWeek(2017-03-12) = %d, want 6 (Sunday)", wd)
	}
}

func TestLeapYear(t *testing.T) {
	for _, y := range []int64{2000, 2024, 1600} {
		if !IsLeapYear(y) {
			t.Errorf("IsLeapYear(%d) = false, want true", y)
		}
	}
	for _, y := range []int64{1900, 2023, 2100} {
		if IsLeapYear(y) {
			t.Errorf("IsLeapYear(%d) = true, want false", y)
		}
	}
}

func TestInvalidDate(t *testing.T) {
	if _, err := DaysFromCivil(2023, 2, 29); err == nil {
		t.Error("expected error for 2023-02-29")
	}
	if _, err := DaysFromCivil(MaxYear+1, 1, 1); err == nil {
		t.Error("expected error for out-of-range year")
	}
}

func TestConstrainDate(t *testing.T) {
	y, m, d := ConstrainDate(2023, 13, 40)
	if y != 2023 || m != 12 || d != 31 {
		t.Errorf("ConstrainDate(2023,13,40) = %d-%d-%d, want 2023-12-31", y, m, d)
	}
}
