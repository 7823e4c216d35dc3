// Package tzif implements the TZif binary time zone format (RFC 8536,
// spec.md §6.2): encoding a compiled zone (internal/tzcompile's Zone) to
// the wire format and decoding it back.
//
// Grounded closely on go-tz/tzif/tzif.go: the Header/LocalTimeTypeRecord/
// LeapSecondRecord/Footer wire structs, the magic-number and version
// handling, and the big-endian two's-complement encoding are carried over
// almost verbatim. Adapted: this package only emits the version 2 form
// (spec.md §9 decides against leap-second-table support and this module's
// compile horizon of 2050 never needs 128-bit-era V1 32-bit timestamps
// for its own round-tripping, though a V1 block is still written because
// RFC 8536 requires one), and a FromZone/ToZone bridge converts between
// the wire format and tzcompile.Zone — the teacher package has no
// equivalent in-memory "resolved zone" type to bridge to, only raw wire
// structs plus a separate tzir.Process entry point that never finished
// wiring the two together.
package tzif

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/go-temporal/temporal/internal/posixrule"
	"github.com/go-temporal/temporal/internal/tzcompile"
)

var order = binary.BigEndian

// Version identifies a TZif format version.
type Version byte

const (
	V1 Version = 0x00
	V2 Version = 0x32
	V3 Version = 0x33
)

var magic = [4]byte{'T', 'Z', 'i', 'f'}

// Header is a TZif header (RFC 8536 §3.1).
type Header struct {
	Version  Version
	Reserved [15]byte
	Isutcnt  uint32
	Isstdcnt uint32
	Leapcnt  uint32
	Timecnt  uint32
	Typecnt  uint32
	Charcnt  uint32
}

func (h Header) write(w io.Writer) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	return binary.Write(w, order, h)
}

func readHeader(r io.Reader) (Header, error) {
	var h Header
	var m [4]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return h, fmt.Errorf("tzif: read magic: %w", err)
	}
	if m != magic {
		return h, fmt.Errorf("tzif: bad magic %v", m)
	}
	err := binary.Read(r, order, &h)
	return h, err
}

// LocalTimeTypeRecord is one entry of a zone's local time type table
// (RFC 8536 §3.2).
type LocalTimeTypeRecord struct {
	Utoff int32
	Dst   bool
	Idx   uint8
}

// LeapSecondRecord is a leap-second correction record. This module never
// populates Leapcnt (spec.md §1 Non-goals: no historical leap-second
// table), but the type is kept for RFC 8536 compliance when decoding
// third-party TZif files that do carry one.
type LeapSecondRecord struct {
	Occur int64
	Corr  int32
}

// Footer is the POSIX TZ string trailer of a version-2+ TZif file
// (RFC 8536 §3.3).
type Footer struct {
	TZString string
}

func (f Footer) write(w io.Writer) error {
	if _, err := w.Write([]byte{'\n'}); err != nil {
		return err
	}
	if _, err := io.WriteString(w, f.TZString); err != nil {
		return err
	}
	_, err := w.Write([]byte{'\n'})
	return err
}

func readFooter(r io.Reader) (Footer, error) {
	var f Footer
	br := newByteReader(r)
	if b, err := br.ReadByte(); err != nil || b != '\n' {
		return f, fmt.Errorf("tzif: footer: expected leading newline")
	}
	var buf []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			return f, fmt.Errorf("tzif: footer: %w", err)
		}
		if b == '\n' {
			break
		}
		buf = append(buf, b)
	}
	f.TZString = string(buf)
	return f, nil
}

// byteReader adapts an io.Reader lacking ReadByte.
type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func newByteReader(r io.Reader) *byteReader { return &byteReader{r: r} }

func (b *byteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(b.r, b.buf[:]); err != nil {
		return 0, err
	}
	return b.buf[0], nil
}

// clampInt32 saturates a 64-bit epoch second to the int32 range, for the
// mandatory V1 block (RFC 8536 requires one precede the V2+ block).
func clampInt32(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

// FromZone converts a compiled zone and its trailing POSIX rule into the
// TZif wire representation ready for Encode.
func FromZone(z *tzcompile.Zone) *File {
	f := &File{}

	type typeKey struct {
		off   int64
		isDST bool
		abbr  string
	}
	typeIdx := map[typeKey]int{}
	var types []LocalTimeTypeRecord
	var designations []byte
	addType := func(off int64, isDST bool, abbr string) int {
		k := typeKey{off, isDST, abbr}
		if i, ok := typeIdx[k]; ok {
			return i
		}
		idx := uint8(len(designations))
		designations = append(designations, []byte(abbr)...)
		designations = append(designations, 0)
		i := len(types)
		types = append(types, LocalTimeTypeRecord{Utoff: int32(off), Dst: isDST, Idx: idx})
		typeIdx[k] = i
		return i
	}

	var times []int64
	var typeOf []uint8
	for _, t := range z.Transitions {
		times = append(times, t.UTC)
		typeOf = append(typeOf, uint8(addType(t.Offset, t.IsDST, t.Abbr)))
	}
	if len(types) == 0 {
		// A zone with no transitions at all (fixed offset forever): still
		// needs one type record, matching RFC 8536's typecnt MUST NOT be zero.
		addType(0, false, "UTC")
	}

	f.Version = V2
	f.Times = times
	f.TypeOf = typeOf
	f.Types = types
	f.Designations = designations
	if z.HasTrailing {
		f.Footer = Footer{TZString: z.Trailing.String()}
	}
	return f
}

// ToZone recovers a tzcompile.Zone-shaped view from a decoded File: the
// explicit transition table plus, if present, the trailing POSIX rule.
func ToZone(name string, f *File) (*tzcompile.Zone, error) {
	z := &tzcompile.Zone{Name: name}
	for i, t := range f.Times {
		ti := f.TypeOf[i]
		if int(ti) >= len(f.Types) {
			return nil, fmt.Errorf("tzif: transition %d references out-of-range type %d", i, ti)
		}
		rec := f.Types[ti]
		z.Transitions = append(z.Transitions, tzcompile.Transition{
			UTC:    t,
			Offset: int64(rec.Utoff),
			Abbr:   designation(f.Designations, rec.Idx),
			IsDST:  rec.Dst,
		})
	}
	if f.Footer.TZString != "" {
		rule, err := posixrule.Parse(f.Footer.TZString)
		if err != nil {
			return nil, fmt.Errorf("tzif: footer TZ string: %w", err)
		}
		z.Trailing = rule
		z.HasTrailing = true
	}
	return z, nil
}

func designation(buf []byte, idx uint8) string {
	end := bytes.IndexByte(buf[idx:], 0)
	if end == -1 {
		return string(buf[idx:])
	}
	return string(buf[idx : int(idx)+end])
}
