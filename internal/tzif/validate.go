package tzif

import (
	"errors"
	"fmt"
)

// Validate checks internal consistency of a decoded File (RFC 8536 §3's
// count/size invariants). Grounded on go-tz/tzif/validate.go's per-field
// count checks, narrowed to the single version-2+ block this module
// actually reads and writes.
func (f *File) Validate() error {
	var errs []error

	if len(f.Times) != len(f.TypeOf) {
		errs = append(errs, fmt.Errorf("tzif: %d transition times but %d transition types", len(f.Times), len(f.TypeOf)))
	}
	for i, ti := range f.TypeOf {
		if int(ti) >= len(f.Types) {
			errs = append(errs, fmt.Errorf("tzif: transition %d references type index %d, have %d types", i, ti, len(f.Types)))
		}
	}
	for i := 1; i < len(f.Times); i++ {
		if f.Times[i] <= f.Times[i-1] {
			errs = append(errs, fmt.Errorf("tzif: transition times not strictly ascending at index %d", i))
		}
	}
	if len(f.Types) == 0 {
		errs = append(errs, errors.New("tzif: typecnt must not be zero"))
	}
	for _, rec := range f.Types {
		if int(rec.Idx) >= len(f.Designations) {
			errs = append(errs, fmt.Errorf("tzif: local time type record references designation index %d beyond charcnt %d", rec.Idx, len(f.Designations)))
		}
	}
	if len(f.Designations) > 0 && f.Designations[len(f.Designations)-1] != 0 {
		errs = append(errs, errors.New("tzif: designations must end with a NUL octet"))
	}

	return errors.Join(errs...)
}
