package temporal_test

import (
	"fmt"
	"testing"

	temporal "github.com/go-temporal/temporal"
)

func TestPlainDate(t *testing.T) {
	for _, tt := range []struct {
		year       int64
		month      temporal.Month
		day        int
		weekday    temporal.Weekday
		isLeapYear bool
		dayOfYear  int
		isoYear    int
		isoWeek    int
	}{
		{1970, temporal.January, 1, temporal.Thursday, false, 1, 1970, 1},
		{1968, temporal.May, 24, temporal.Friday, true, 145, 1968, 21},
		{2020, temporal.December, 31, temporal.Thursday, true, 366, 2020, 53},
		{2021, temporal.January, 1, temporal.Friday, false, 1, 2020, 53},
		{2000, temporal.February, 29, temporal.Tuesday, true, 60, 2000, 9},
		{1, temporal.January, 1, temporal.Monday, false, 1, 1, 1},
	} {
		t.Run(fmt.Sprintf("%04d-%02d-%02d", tt.year, tt.month, tt.day), func(t *testing.T) {
			date, err := temporal.NewPlainDate(tt.year, int(tt.month), tt.day, temporal.Reject)
			if err != nil {
				t.Fatalf("NewPlainDate() error = %v", err)
			}

			year, month, day := date.Date()
			if year != tt.year || month != tt.month || day != tt.day {
				t.Errorf("Date() = %d-%s-%d, want %d-%s-%d", year, month, day, tt.year, tt.month, tt.day)
			}
			if weekday := date.Weekday(); weekday != tt.weekday {
				t.Errorf("Weekday() = %s, want %s", weekday, tt.weekday)
			}
			if isLeapYear := date.IsLeapYear(); isLeapYear != tt.isLeapYear {
				t.Errorf("IsLeapYear() = %t, want %t", isLeapYear, tt.isLeapYear)
			}
			if dayOfYear := date.DayOfYear(); dayOfYear != tt.dayOfYear {
				t.Errorf("DayOfYear() = %d, want %d", dayOfYear, tt.dayOfYear)
			}
			isoYear, isoWeek := date.ISOWeek()
			if isoYear != tt.isoYear || isoWeek != tt.isoWeek {
				t.Errorf("ISOWeek() = (%d, %d), want (%d, %d)", isoYear, isoWeek, tt.isoYear, tt.isoWeek)
			}
		})
	}
}

func TestPlainDateConstrainVsReject(t *testing.T) {
	if _, err := temporal.NewPlainDate(2021, 2, 29, temporal.Reject); err == nil {
		t.Errorf("NewPlainDate(2021, Feb, 29, Reject) succeeded, want KindRange error")
	}

	date, err := temporal.NewPlainDate(2021, 2, 29, temporal.Constrain)
	if err != nil {
		t.Fatalf("NewPlainDate(2021, Feb, 29, Constrain) error = %v", err)
	}
	if _, month, day := date.Date(); month != temporal.February || day != 28 {
		t.Errorf("constrained date = %s-%d, want February-28", month, day)
	}
}

func TestPlainDateAddDate(t *testing.T) {
	for _, tt := range []struct {
		name               string
		year               int64
		month, day         int
		years              int64
		months, days       int
		wantYear           int64
		wantMonth          temporal.Month
		wantDay            int
	}{
		{"add one month", 2023, 1, 15, 0, 1, 0, 2023, temporal.February, 15},
		{"roll forward past year end", 2023, 12, 15, 0, 1, 0, 2024, temporal.January, 15},
		{"roll backward past year start", 2023, 1, 15, 0, -1, 0, 2022, temporal.December, 15},
		{"multi-year month shift", 2023, 1, 15, 0, -13, 0, 2021, temporal.December, 15},
		{"constrain short month", 2023, 1, 31, 0, 1, 0, 2023, temporal.February, 28},
		{"plain day add", 2023, 1, 31, 0, 0, 1, 2023, temporal.February, 1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			date, err := temporal.NewPlainDate(tt.year, tt.month, tt.day, temporal.Reject)
			if err != nil {
				t.Fatalf("NewPlainDate() error = %v", err)
			}
			got, err := date.AddDate(tt.years, tt.months, tt.days, temporal.Constrain)
			if err != nil {
				t.Fatalf("AddDate() error = %v", err)
			}
			year, month, day := got.Date()
			if year != tt.wantYear || month != tt.wantMonth || day != tt.wantDay {
				t.Errorf("AddDate() = %d-%s-%d, want %d-%s-%d", year, month, day, tt.wantYear, tt.wantMonth, tt.wantDay)
			}
		})
	}
}

func TestPlainDateCompare(t *testing.T) {
	a, _ := temporal.NewPlainDate(2023, 1, 1, temporal.Reject)
	b, _ := temporal.NewPlainDate(2023, 6, 1, temporal.Reject)

	if a.Compare(b) >= 0 {
		t.Errorf("a.Compare(b) >= 0, want < 0")
	}
	if b.Compare(a) <= 0 {
		t.Errorf("b.Compare(a) <= 0, want > 0")
	}
	if a.Compare(a) != 0 {
		t.Errorf("a.Compare(a) != 0")
	}
	if !a.Equal(a) {
		t.Errorf("a.Equal(a) = false, want true")
	}
}

func TestPlainDateString(t *testing.T) {
	date, _ := temporal.NewPlainDate(2023, 3, 7, temporal.Reject)
	if got, want := date.String(), "2023-03-07"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
