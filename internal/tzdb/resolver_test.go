package tzdb

import (
	"strings"
	"testing"

	"github.com/go-temporal/temporal/internal/tzcompile"
	"github.com/go-temporal/temporal/internal/tzdata"
)

const nySource = `
Rule	US	1967	2006	-	Oct	lastSun	2:00	0	S
Rule	US	2007	max	-	Nov	Sun>=1	2:00	0	S
Rule	US	1967	1973	-	Apr	lastSun	2:00	1:00	D
Rule	US	2007	max	-	Mar	Sun>=8	2:00	1:00	D

Zone America/New_York	-5:00	US	E%sT
Link	America/New_York	US/Eastern
`

func newYorkResolver(t *testing.T) *Resolver {
	t.Helper()
	f, err := tzdata.Parse(strings.NewReader(nySource))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	z, err := tzcompile.Compile(f, "America/New_York", 2020)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return NewResolver(z)
}

// epoch seconds for 2017-03-12T07:00:00Z (spring-forward instant).
const springForwardUTC = 1489302000

// epoch seconds for 2017-03-12T02:30:00 local, naive.
const springForwardLocal = 1489285800

func TestCandidatesGap(t *testing.T) {
	r := newYorkResolver(t)
	c := r.CandidatesForLocal(springForwardLocal)
	if len(c.Candidates) != 0 {
		t.Fatalf("got %d candidates, want 0 (gap)", len(c.Candidates))
	}
	if c.OffsetBefore != -5*3600 || c.OffsetAfter != -4*3600 {
		t.Errorf("offsets = %d/%d, want -18000/-14400", c.OffsetBefore, c.OffsetAfter)
	}
	if c.TransitionUTC != springForwardUTC {
		t.Errorf("transition = %d, want %d", c.TransitionUTC, springForwardUTC)
	}
}

// epoch seconds for 2017-11-05T01:30:00 local, naive.
const fallBackLocal = 1509845400

func TestCandidatesFold(t *testing.T) {
	r := newYorkResolver(t)
	c := r.CandidatesForLocal(fallBackLocal)
	if len(c.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2 (fold)", len(c.Candidates))
	}
	if c.Candidates[0].Offset != -4*3600 {
		t.Errorf("first candidate offset = %d, want -14400", c.Candidates[0].Offset)
	}
	if c.Candidates[1].Offset != -5*3600 {
		t.Errorf("second candidate offset = %d, want -18000", c.Candidates[1].Offset)
	}
}

func TestOffsetAtOrdinary(t *testing.T) {
	r := newYorkResolver(t)
	rec := r.OffsetAt(springForwardUTC) // exactly at the transition: new offset applies
	if rec.Offset != -4*3600 || !rec.IsDST {
		t.Errorf("OffsetAt(transition) = %+v", rec)
	}
	rec = r.OffsetAt(springForwardUTC - 1)
	if rec.Offset != -5*3600 || rec.IsDST {
		t.Errorf("OffsetAt(transition-1) = %+v", rec)
	}
}

func TestOffsetAtBeyondHorizon(t *testing.T) {
	r := newYorkResolver(t)
	// 2030-07-01T12:00:00Z, well past the 2020 compile horizon: must fall
	// through to the trailing POSIX rule and report DST.
	const s = 1909137600
	rec := r.OffsetAt(s)
	if !rec.IsDST || rec.Offset != -4*3600 {
		t.Errorf("OffsetAt(beyond horizon) = %+v, want DST -14400", rec)
	}
}
