package temporal

import (
	"strconv"
	"strings"

	"github.com/go-temporal/temporal/internal/tzdata"
	"github.com/go-temporal/temporal/internal/tzdb"
)

type tzKind int

const (
	tzKindIANA tzKind = iota
	tzKindFixed
)

// TimeZoneIdentifier names a time zone, in one of the three forms
// spec.md §3.7 admits: an IANA name, the literal "UTC"/"Z", or a fixed
// offset. Resolving a named identifier against a zone database happens
// lazily, when a ZonedDateTime is constructed, not at parse time.
type TimeZoneIdentifier struct {
	kind   tzKind
	name   string
	offset UTCOffset
}

// IANAZone names a zone by its IANA database identifier, e.g.
// "America/New_York".
func IANAZone(name string) TimeZoneIdentifier {
	return TimeZoneIdentifier{kind: tzKindIANA, name: name}
}

// FixedZone names a zone by a fixed offset that bypasses the resolver.
func FixedZone(offset UTCOffset) TimeZoneIdentifier {
	return TimeZoneIdentifier{kind: tzKindFixed, offset: offset}
}

// UTCZone is the fixed zone at offset zero.
var UTCZone = FixedZone(UTC)

// ParseTimeZoneIdentifier parses "UTC", "Z", a fixed offset of the form
// "±HH:MM[:SS]", or falls through to treating s as an IANA zone name.
func ParseTimeZoneIdentifier(s string) (TimeZoneIdentifier, error) {
	if s == "" {
		return TimeZoneIdentifier{}, parseErrorf("empty time zone identifier")
	}
	if s == "Z" || s == "UTC" || s == "utc" {
		return UTCZone, nil
	}
	if s[0] == '+' || s[0] == '-' {
		offset, err := parseFixedOffset(s)
		if err != nil {
			return TimeZoneIdentifier{}, err
		}
		return FixedZone(offset), nil
	}
	return IANAZone(s), nil
}

func parseFixedOffset(s string) (UTCOffset, error) {
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	parts := strings.Split(s[1:], ":")
	if len(parts) < 2 || len(parts) > 3 {
		return UTCOffset{}, parseErrorf("malformed offset %q", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return UTCOffset{}, parseErrorf("malformed offset hours in %q: %v", s, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return UTCOffset{}, parseErrorf("malformed offset minutes in %q: %v", s, err)
	}
	seconds := 0
	if len(parts) == 3 {
		seconds, err = strconv.Atoi(parts[2])
		if err != nil {
			return UTCOffset{}, parseErrorf("malformed offset seconds in %q: %v", s, err)
		}
	}
	return NewUTCOffset(sign*hours, sign*minutes, sign*seconds), nil
}

func (z TimeZoneIdentifier) String() string {
	switch z.kind {
	case tzKindFixed:
		return z.offset.String()
	default:
		return z.name
	}
}

// IsFixed reports whether z is a fixed-offset identifier rather than a
// named zone requiring resolver lookup.
func (z TimeZoneIdentifier) IsFixed() bool { return z.kind == tzKindFixed }

// ZoneDatabase is a concurrency-safe store of compiled zones that callers
// construct and may share across goroutines (spec.md §5's "shared ambient
// instance"); there is no package-level instance. It wraps
// internal/tzdb.Database, whose own sync.RWMutex already limits critical
// sections to the resolver-lookup pointer copy the concurrency model
// requires.
type ZoneDatabase struct {
	db *tzdb.Database
}

// NewZoneDatabase builds a ZoneDatabase over the IANA tzdata source text
// found at sourcePath (a single combined file or a directory of the
// per-region source files), compiling each zone up to horizonYear on
// first use. horizonYear of 0 uses tzcompile.DefaultHorizon.
func NewZoneDatabase(sourcePath string, horizonYear int64) (*ZoneDatabase, error) {
	source, err := tzdb.LoadSource(sourcePath)
	if err != nil {
		return nil, err
	}
	return &ZoneDatabase{db: tzdb.NewDatabase(source, horizonYear)}, nil
}

// NewZoneDatabaseFromFile is a convenience for callers that have already
// parsed a tzdata.File (e.g. embedded at build time).
func NewZoneDatabaseFromFile(source *tzdata.File, horizonYear int64) *ZoneDatabase {
	return &ZoneDatabase{db: tzdb.NewDatabase(source, horizonYear)}
}

func (db *ZoneDatabase) resolver(name string) (*tzdb.Resolver, error) {
	return db.db.Resolver(name)
}
