package tzdata

import (
	"strings"
	"testing"
)

const sampleSource = `
# Comment line, ignored.
Rule	US	1967	2006	-	Oct	lastSun	2:00	0	S
Rule	US	2007	max	-	Nov	Sun>=1	2:00	0	S
Rule	US	1967	1973	-	Apr	lastSun	2:00	1:00	D
Rule	US	2007	max	-	Mar	Sun>=8	2:00	1:00	D

Zone America/New_York	-4:56:02 -	LMT	1883 Nov 18 17:00u
			-5:00	US	E%sT
Link	America/New_York	US/Eastern
`

func TestParseSample(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleSource))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Rules) != 4 {
		t.Errorf("got %d rules, want 4", len(f.Rules))
	}
	zones, ok := f.Zones["America/New_York"]
	if !ok || len(zones) != 2 {
		t.Fatalf("America/New_York zone entries = %v", zones)
	}
	if zones[0].Format != "LMT" {
		t.Errorf("first entry format = %q, want LMT", zones[0].Format)
	}
	if zones[1].Rules.Form != ZoneRulesName || zones[1].Rules.Name != "US" {
		t.Errorf("second entry rules = %+v, want name US", zones[1].Rules)
	}
	if len(f.Links) != 1 || f.Links[0].Target != "America/New_York" {
		t.Errorf("links = %+v", f.Links)
	}
}

func TestParseDay(t *testing.T) {
	cases := map[string]Day{
		"5":       {Form: DayNum, Num: 5},
		"lastSun": {Form: DayLast, Weekday: 0},
		"Sun>=8":  {Form: DayAtOrAfter, Weekday: 0, Num: 8},
		"Mon<=14": {Form: DayAtOrBefore, Weekday: 1, Num: 14},
	}
	for in, want := range cases {
		got, err := parseDay(in)
		if err != nil {
			t.Fatalf("parseDay(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("parseDay(%q) = %+v, want %+v", in, got, want)
		}
	}
}
