package posixrule

import "testing"

func TestParseAndString(t *testing.T) {
	cases := []string{
		"EST5EDT,M3.2.0,M11.1.0",
		"<-03>3",
		"AEST-10AEDT,M10.1.0,M4.1.0/3",
	}
	for _, s := range cases {
		r, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		got := r.String()
		r2, err := Parse(got)
		if err != nil {
			t.Fatalf("Parse(String(%q))=%q: %v", s, got, err)
		}
		if r2 != r {
			t.Errorf("round trip %q -> %q -> %+v, want %+v", s, got, r2, r)
		}
	}
}

func TestParseNewYork(t *testing.T) {
	r, err := Parse("EST5EDT,M3.2.0,M11.1.0")
	if err != nil {
		t.Fatal(err)
	}
	if r.StdAbbr != "EST" || r.StdOffset != -5*3600 {
		t.Errorf("std = %q %d", r.StdAbbr, r.StdOffset)
	}
	if !r.HasDST || r.DstAbbr != "EDT" || r.DstOffset != -4*3600 {
		t.Errorf("dst = %v %q %d", r.HasDST, r.DstAbbr, r.DstOffset)
	}
	if r.Start.Day != (TransitionDay{Form: MonthWeekDow, Month: 3, Week: 2, Weekday: 0}) {
		t.Errorf("start day = %+v", r.Start.Day)
	}
	if r.End.Day != (TransitionDay{Form: MonthWeekDow, Month: 11, Week: 1, Weekday: 0}) {
		t.Errorf("end day = %+v", r.End.Day)
	}

	off, abbr, dst := r.OffsetAt(r.StartUTC(2024), 2024)
	if abbr != "EDT" || !dst || off != -4*3600 {
		t.Errorf("OffsetAt(start) = %d %q %v", off, abbr, dst)
	}
	off, abbr, dst = r.OffsetAt(r.StartUTC(2024)-1, 2024)
	if abbr != "EST" || dst || off != -5*3600 {
		t.Errorf("OffsetAt(start-1) = %d %q %v", off, abbr, dst)
	}
}
