package tzif

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-temporal/temporal/internal/tzcompile"
	"github.com/go-temporal/temporal/internal/tzdata"
)

const sampleSource = `
Rule	US	1967	2006	-	Oct	lastSun	2:00	0	S
Rule	US	2007	max	-	Nov	Sun>=1	2:00	0	S
Rule	US	1967	1973	-	Apr	lastSun	2:00	1:00	D
Rule	US	2007	max	-	Mar	Sun>=8	2:00	1:00	D

Zone America/New_York	-5:00	US	E%sT
`

func compileSample(t *testing.T) *tzcompile.Zone {
	t.Helper()
	f, err := tzdata.Parse(strings.NewReader(sampleSource))
	if err != nil {
		t.Fatalf("tzdata.Parse: %v", err)
	}
	z, err := tzcompile.Compile(f, "America/New_York", 2015)
	if err != nil {
		t.Fatalf("tzcompile.Compile: %v", err)
	}
	return z
}

func TestRoundTrip(t *testing.T) {
	z := compileSample(t)
	wire := FromZone(z)
	if err := wire.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	var buf bytes.Buffer
	if err := wire.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if err := decoded.Validate(); err != nil {
		t.Fatalf("Validate decoded: %v", err)
	}

	got, err := ToZone("America/New_York", decoded)
	if err != nil {
		t.Fatalf("ToZone: %v", err)
	}
	if diff := cmp.Diff(z.Transitions, got.Transitions); diff != "" {
		t.Errorf("transitions round-tripped with a diff (-want +got):\n%s", diff)
	}
	if got.HasTrailing != z.HasTrailing || got.Trailing != z.Trailing {
		t.Errorf("trailing rule: got %+v (has=%v), want %+v (has=%v)", got.Trailing, got.HasTrailing, z.Trailing, z.HasTrailing)
	}
}
