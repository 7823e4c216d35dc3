package tzcompile

import (
	"strings"
	"testing"

	"github.com/go-temporal/temporal/internal/tzdata"
)

const sampleSource = `
Rule	US	1967	2006	-	Oct	lastSun	2:00	0	S
Rule	US	2007	max	-	Nov	Sun>=1	2:00	0	S
Rule	US	1967	1973	-	Apr	lastSun	2:00	1:00	D
Rule	US	2007	max	-	Mar	Sun>=8	2:00	1:00	D

Zone America/New_York	-5:00	US	E%sT
`

func parseSample(t *testing.T) *tzdata.File {
	t.Helper()
	f, err := tzdata.Parse(strings.NewReader(sampleSource))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return f
}

func TestCompileTrailing(t *testing.T) {
	f := parseSample(t)
	z, err := Compile(f, "America/New_York", 2020)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !z.HasTrailing {
		t.Fatal("expected trailing rule")
	}
	if z.Trailing.StdAbbr != "EST" || z.Trailing.StdOffset != -5*3600 {
		t.Errorf("std = %q %d", z.Trailing.StdAbbr, z.Trailing.StdOffset)
	}
	if !z.Trailing.HasDST || z.Trailing.DstAbbr != "EDT" || z.Trailing.DstOffset != -4*3600 {
		t.Errorf("dst = %+v", z.Trailing)
	}
	if len(z.Transitions) == 0 {
		t.Fatal("expected transitions")
	}
	for i := 1; i < len(z.Transitions); i++ {
		if z.Transitions[i].UTC <= z.Transitions[i-1].UTC {
			t.Fatalf("transitions not strictly ascending at %d", i)
		}
	}
}

func TestCompileUnknownZone(t *testing.T) {
	f := parseSample(t)
	if _, err := Compile(f, "Nowhere/Here", 2020); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}
