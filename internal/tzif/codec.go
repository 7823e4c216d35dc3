package tzif

import (
	"encoding/binary"
	"fmt"
	"io"
)

// File is the in-memory form of a TZif file's version-2+ content (this
// module never needs to round-trip a bare V1-only file, since every
// zone it compiles is written with a V2+ block and POSIX footer).
type File struct {
	Version      Version
	Times        []int64
	TypeOf       []uint8
	Types        []LocalTimeTypeRecord
	Designations []byte
	Leap         []LeapSecondRecord
	StdWall      []bool
	UTLocal      []bool
	Footer       Footer
}

// Encode writes f as a complete TZif file: a mandatory V1 block (32-bit
// timestamps, truncated from f.Times) followed by the V2+ block and
// footer, per RFC 8536 §3's "the file MUST contain the version 1 header
// and data block" requirement.
func (f *File) Encode(w io.Writer) error {
	v1Header := Header{
		Version:  V1,
		Isutcnt:  uint32(len(f.UTLocal)),
		Isstdcnt: uint32(len(f.StdWall)),
		Leapcnt:  uint32(len(f.Leap)),
		Timecnt:  uint32(len(f.Times)),
		Typecnt:  uint32(len(f.Types)),
		Charcnt:  uint32(len(f.Designations)),
	}
	if err := v1Header.write(w); err != nil {
		return fmt.Errorf("tzif: write v1 header: %w", err)
	}
	if err := writeV1Data(w, f); err != nil {
		return fmt.Errorf("tzif: write v1 data: %w", err)
	}

	v2Header := v1Header
	v2Header.Version = f.Version
	if err := v2Header.write(w); err != nil {
		return fmt.Errorf("tzif: write v2 header: %w", err)
	}
	if err := writeV2Data(w, f); err != nil {
		return fmt.Errorf("tzif: write v2 data: %w", err)
	}
	if err := f.Footer.write(w); err != nil {
		return fmt.Errorf("tzif: write footer: %w", err)
	}
	return nil
}

func writeV1Data(w io.Writer, f *File) error {
	times32 := make([]int32, len(f.Times))
	for i, t := range f.Times {
		times32[i] = clampInt32(t)
	}
	if err := binary.Write(w, order, times32); err != nil {
		return err
	}
	if err := binary.Write(w, order, f.TypeOf); err != nil {
		return err
	}
	for _, t := range f.Types {
		if err := binary.Write(w, order, t); err != nil {
			return err
		}
	}
	if _, err := w.Write(f.Designations); err != nil {
		return err
	}
	for _, l := range f.Leap {
		if err := binary.Write(w, order, int32(l.Occur)); err != nil {
			return err
		}
		if err := binary.Write(w, order, l.Corr); err != nil {
			return err
		}
	}
	if err := binary.Write(w, order, f.StdWall); err != nil {
		return err
	}
	return binary.Write(w, order, f.UTLocal)
}

func writeV2Data(w io.Writer, f *File) error {
	if err := binary.Write(w, order, f.Times); err != nil {
		return err
	}
	if err := binary.Write(w, order, f.TypeOf); err != nil {
		return err
	}
	for _, t := range f.Types {
		if err := binary.Write(w, order, t); err != nil {
			return err
		}
	}
	if _, err := w.Write(f.Designations); err != nil {
		return err
	}
	for _, l := range f.Leap {
		if err := binary.Write(w, order, l); err != nil {
			return err
		}
	}
	if err := binary.Write(w, order, f.StdWall); err != nil {
		return err
	}
	return binary.Write(w, order, f.UTLocal)
}

// Decode reads a TZif file, skipping the mandatory V1 block and returning
// the version 2+ content (the block this module always writes and the
// only one with 64-bit-precision timestamps, per spec.md §1's "no
// float-based... math" precision requirement).
func Decode(r io.Reader) (*File, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if h.Version != V1 {
		return nil, fmt.Errorf("tzif: expected v1 header first, got version %v", h.Version)
	}
	if err := skipV1Data(r, h); err != nil {
		return nil, fmt.Errorf("tzif: skip v1 data: %w", err)
	}

	h2, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("tzif: read v2 header: %w", err)
	}
	if h2.Version != V2 && h2.Version != V3 {
		return nil, fmt.Errorf("tzif: unsupported version %v", h2.Version)
	}

	f := &File{Version: h2.Version}
	if err := readV2Data(r, h2, f); err != nil {
		return nil, fmt.Errorf("tzif: read v2 data: %w", err)
	}
	f.Footer, err = readFooter(r)
	if err != nil {
		return nil, fmt.Errorf("tzif: read footer: %w", err)
	}
	return f, nil
}

func skipV1Data(r io.Reader, h Header) error {
	n := int64(h.Timecnt)*4 + int64(h.Timecnt) + int64(h.Typecnt)*6 + int64(h.Charcnt) +
		int64(h.Leapcnt)*8 + int64(h.Isstdcnt) + int64(h.Isutcnt)
	_, err := io.CopyN(io.Discard, r, n)
	return err
}

func readV2Data(r io.Reader, h Header, f *File) error {
	if h.Timecnt > 0 {
		f.Times = make([]int64, h.Timecnt)
		if err := binary.Read(r, order, &f.Times); err != nil {
			return fmt.Errorf("transition times: %w", err)
		}
		f.TypeOf = make([]uint8, h.Timecnt)
		if err := binary.Read(r, order, &f.TypeOf); err != nil {
			return fmt.Errorf("transition types: %w", err)
		}
	}
	if h.Typecnt > 0 {
		f.Types = make([]LocalTimeTypeRecord, h.Typecnt)
		for i := range f.Types {
			if err := binary.Read(r, order, &f.Types[i]); err != nil {
				return fmt.Errorf("local time type record %d: %w", i, err)
			}
		}
	}
	if h.Charcnt > 0 {
		f.Designations = make([]byte, h.Charcnt)
		if _, err := io.ReadFull(r, f.Designations); err != nil {
			return fmt.Errorf("designations: %w", err)
		}
	}
	if h.Leapcnt > 0 {
		f.Leap = make([]LeapSecondRecord, h.Leapcnt)
		for i := range f.Leap {
			if err := binary.Read(r, order, &f.Leap[i]); err != nil {
				return fmt.Errorf("leap second record %d: %w", i, err)
			}
		}
	}
	if h.Isstdcnt > 0 {
		f.StdWall = make([]bool, h.Isstdcnt)
		if err := binary.Read(r, order, &f.StdWall); err != nil {
			return fmt.Errorf("standard/wall indicators: %w", err)
		}
	}
	if h.Isutcnt > 0 {
		f.UTLocal = make([]bool, h.Isutcnt)
		if err := binary.Read(r, order, &f.UTLocal); err != nil {
			return fmt.Errorf("ut/local indicators: %w", err)
		}
	}
	return nil
}
