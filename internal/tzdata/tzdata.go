// Package tzdata parses the IANA time-zone database's textual source
// format (spec.md §4.5.1, §6.1): Rule, Zone, Link, and #PACKRATLIST
// records, vanguard form only (spec.md §9 Open Question).
//
// Grounded closely on go-tz/tzdata/tzdata.go's line-oriented parser: the
// field-by-field column parsers (FROM/TO/IN/ON/AT/SAVE, STDOFF/RULES/
// FORMAT/UNTIL), the Until partial-date bitmask, and the day-form
// (lastDow/Dow>=d/Dow<=d) vocabulary are carried over, renamed to this
// module's types and extended with #PACKRATLIST alias parsing.
package tzdata

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseError is a line-tagged parse failure, matching the line-number
// tagging spec.md §4.5.6 requires ("Malformed lines... fail with a
// line-number-tagged parse error").
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tzdata: line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DayForm is the form of the ON column of a rule line.
type DayForm int

const (
	DayNum DayForm = iota // plain day-of-month, e.g. "5"
	DayLast                // "lastSun"
	DayAtOrAfter           // "Sun>=8"
	DayAtOrBefore          // "Sun<=24"
)

// Day represents the ON column of a rule (or the UNTIL day component).
type Day struct {
	Form    DayForm
	Num     int // day-of-month for DayNum/DayAtOrAfter/DayAtOrBefore
	Weekday int // 0=Sunday..6=Saturday, for DayLast/DayAtOrAfter/DayAtOrBefore
}

// TimeQualifier is the trailing letter on an AT or SAVE time-of-day value,
// per spec.md §4.5.5.
type TimeQualifier int

const (
	QualWall TimeQualifier = iota // 'w' or unsuffixed (default)
	QualStandard                  // 's'
	QualUniversal                 // 'u', 'g', or 'z'
)

// ClockTime is a signed time-of-day (or SAVE amount), in seconds, with its
// qualifier.
type ClockTime struct {
	Seconds   int64
	Qualifier TimeQualifier
}

// Year is a rule FROM/TO year, or one of the MinYear/MaxYear sentinels for
// "minimum"/"maximum".
type Year int64

const (
	MinYear Year = -1 << 62
	MaxYear Year = 1<<62 - 1
)

// RuleLine represents one "Rule NAME FROM TO - IN ON AT SAVE LETTER" record.
type RuleLine struct {
	Name   string
	From   Year
	To     Year
	In     int // month 1..12
	On     Day
	At     ClockTime
	Save   ClockTime
	Letter string // "-" is stored as ""
}

// ZoneRulesForm is the form of the RULES column of a zone entry.
type ZoneRulesForm int

const (
	// ZoneRulesNone means the RULES column is "-": standard time always applies.
	ZoneRulesNone ZoneRulesForm = iota
	// ZoneRulesName means the RULES column names a rule set.
	ZoneRulesName
	// ZoneRulesFixedSave means the RULES column is a literal SAVE amount.
	ZoneRulesFixedSave
)

// ZoneRules is the RULES column of a zone entry.
type ZoneRules struct {
	Form        ZoneRulesForm
	Name        string
	FixedSeconds int64
}

// Until is the optional UNTIL column of a zone entry: the entry is valid
// until this (possibly partial) local date-time.
type Until struct {
	Defined bool
	Year    int64
	Month   int // defaults to 1
	Day     Day // defaults to {Form: DayNum, Num: 1}
	At      ClockTime
	HasMonth, HasDay, HasAt bool
}

// ZoneEntry represents one "Zone" line or continuation line.
type ZoneEntry struct {
	Name   string // only set on the first entry of a zone; continuations inherit it
	StdOff int64  // seconds, may be negative
	Rules  ZoneRules
	Format string
	Until  Until
}

// LinkLine represents a "Link TARGET ALIAS" record.
type LinkLine struct {
	Target string
	Alias  string
}

// File is the parsed contents of one or more concatenated tzdata source files.
type File struct {
	Rules []RuleLine
	// Zones groups zone entries (a Zone line plus its continuation lines)
	// by canonical zone name, in file order.
	Zones map[string][]ZoneEntry
	// ZoneOrder preserves the order zones were first seen in.
	ZoneOrder []string
	Links     []LinkLine
}

// Parse reads a tzdata source file (or the concatenation of several,
// e.g. africa+europe+northamerica) and returns its parsed records.
func Parse(r io.Reader) (*File, error) {
	f := &File{Zones: map[string][]ZoneEntry{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	var continuation string // non-empty while the next line continues this zone
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		fields := splitFields(raw)
		if len(fields) == 0 {
			continue
		}

		switch {
		case fields[0] == "Zone":
			entry, name, err := parseZoneLine(fields)
			if err != nil {
				return nil, &ParseError{lineNo, raw, err}
			}
			f.appendZone(name, entry)
			continuation = ""
			if entry.Until.Defined {
				continuation = name
			}

		case continuation != "":
			entry, err := parseZoneContinuation(fields)
			if err != nil {
				return nil, &ParseError{lineNo, raw, err}
			}
			f.appendZone(continuation, entry)
			if !entry.Until.Defined {
				continuation = ""
			}

		case fields[0] == "Rule":
			rule, err := parseRuleLine(fields)
			if err != nil {
				return nil, &ParseError{lineNo, raw, err}
			}
			f.Rules = append(f.Rules, rule)

		case fields[0] == "Link":
			link, err := parseLinkLine(fields)
			if err != nil {
				return nil, &ParseError{lineNo, raw, err}
			}
			f.Links = append(f.Links, link)

		case fields[0] == "#PACKRATLIST" || (len(fields) > 1 && fields[0] == "#" && fields[1] == "PACKRATLIST"):
			link, err := parsePackratLine(fields)
			if err != nil {
				return nil, &ParseError{lineNo, raw, err}
			}
			f.Links = append(f.Links, link)

		case fields[0] == "Leap", fields[0] == "Expires":
			// Parsed for acceptance, never consulted: spec.md §1 carries
			// no historical leap-second table.
			continue

		default:
			return nil, &ParseError{lineNo, raw, fmt.Errorf("unexpected line")}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tzdata: scan: %w", err)
	}
	return f, nil
}

func (f *File) appendZone(name string, e ZoneEntry) {
	if _, ok := f.Zones[name]; !ok {
		f.ZoneOrder = append(f.ZoneOrder, name)
	}
	f.Zones[name] = append(f.Zones[name], e)
}

// splitFields strips comments and splits on whitespace, honoring double
// quotes the way zic's tokenizer does (a quoted field may contain spaces).
func splitFields(line string) []string {
	if i := strings.IndexByte(line, '#'); i != -1 {
		// "#PACKRATLIST" is itself a significant directive, not a comment.
		if !strings.HasPrefix(strings.TrimSpace(line), "#PACKRATLIST") {
			line = line[:i]
		}
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	var fields []string
	for len(line) > 0 {
		line = strings.TrimLeft(line, " \t")
		if line == "" {
			break
		}
		if line[0] == '"' {
			if end := strings.IndexByte(line[1:], '"'); end != -1 {
				fields = append(fields, line[1:end+1])
				line = line[end+2:]
				continue
			}
		}
		end := strings.IndexAny(line, " \t")
		if end == -1 {
			fields = append(fields, line)
			break
		}
		fields = append(fields, line[:end])
		line = line[end:]
	}
	return fields
}

func parseLinkLine(fields []string) (LinkLine, error) {
	if len(fields) != 3 {
		return LinkLine{}, fmt.Errorf("Link: expected 3 fields, got %d", len(fields))
	}
	return LinkLine{Target: fields[1], Alias: fields[2]}, nil
}

// parsePackratLine parses the "#PACKRATLIST(...) Link TARGET ALIAS" extension.
func parsePackratLine(fields []string) (LinkLine, error) {
	for i, f := range fields {
		if f == "Link" && i+2 < len(fields) {
			return LinkLine{Target: fields[i+1], Alias: fields[i+2]}, nil
		}
	}
	return LinkLine{}, fmt.Errorf("#PACKRATLIST: no Link directive found")
}

func parseRuleLine(fields []string) (RuleLine, error) {
	if len(fields) != 10 {
		return RuleLine{}, fmt.Errorf("Rule: expected 10 fields, got %d", len(fields))
	}
	var r RuleLine
	var err error
	r.Name = fields[1]
	if r.From, err = parseYear(fields[2]); err != nil {
		return r, fmt.Errorf("FROM: %w", err)
	}
	if r.To, err = parseToYear(fields[3], r.From); err != nil {
		return r, fmt.Errorf("TO: %w", err)
	}
	// fields[4] is the unused "-" reserved column.
	if r.In, err = parseMonth(fields[5]); err != nil {
		return r, fmt.Errorf("IN: %w", err)
	}
	if r.On, err = parseDay(fields[6]); err != nil {
		return r, fmt.Errorf("ON: %w", err)
	}
	if r.At, err = parseClockTime(fields[7]); err != nil {
		return r, fmt.Errorf("AT: %w", err)
	}
	if r.Save, err = parseClockTime(fields[8]); err != nil {
		return r, fmt.Errorf("SAVE: %w", err)
	}
	if fields[9] != "-" {
		r.Letter = fields[9]
	}
	return r, nil
}

func parseYear(s string) (Year, error) {
	ls := strings.ToLower(s)
	if isAbbrev(ls, "minimum", "mi") {
		return MinYear, nil
	}
	if isAbbrev(ls, "maximum", "ma") {
		return MaxYear, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q: %w", s, err)
	}
	return Year(v), nil
}

func parseToYear(s string, from Year) (Year, error) {
	if isAbbrev(strings.ToLower(s), "only", "o") {
		return from, nil
	}
	return parseYear(s)
}

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func parseMonth(s string) (int, error) {
	ls := strings.ToLower(s)
	for i, name := range monthNames {
		if isAbbrev(ls, strings.ToLower(name), strings.ToLower(name[:3])) {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("invalid month %q", s)
}

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func parseWeekday(s string) (int, error) {
	ls := strings.ToLower(s)
	for i, name := range weekdayNames {
		if isAbbrev(ls, strings.ToLower(name), strings.ToLower(name[:3])) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

// parseDay parses the ON column: a plain day number, "lastDow", "Dow>=d",
// or "Dow<=d" (spec.md §4.5.1, §4.5.3).
func parseDay(s string) (Day, error) {
	if strings.HasPrefix(s, "last") {
		wd, err := parseWeekday(s[4:])
		if err != nil {
			return Day{}, err
		}
		return Day{Form: DayLast, Weekday: wd}, nil
	}
	if i := strings.Index(s, ">="); i != -1 {
		wd, err := parseWeekday(s[:i])
		if err != nil {
			return Day{}, err
		}
		n, err := strconv.Atoi(s[i+2:])
		if err != nil {
			return Day{}, fmt.Errorf("invalid day number %q: %w", s, err)
		}
		return Day{Form: DayAtOrAfter, Weekday: wd, Num: n}, nil
	}
	if i := strings.Index(s, "<="); i != -1 {
		wd, err := parseWeekday(s[:i])
		if err != nil {
			return Day{}, err
		}
		n, err := strconv.Atoi(s[i+2:])
		if err != nil {
			return Day{}, fmt.Errorf("invalid day number %q: %w", s, err)
		}
		return Day{Form: DayAtOrBefore, Weekday: wd, Num: n}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return Day{Form: DayNum, Num: n}, nil
}

// parseClockTime parses an AT/SAVE/STDOFF-shaped value: [-]h[:mm[:ss]]
// with an optional trailing qualifier letter.
func parseClockTime(s string) (ClockTime, error) {
	qual := QualWall
	if len(s) > 0 {
		switch s[len(s)-1] {
		case 'w', 'W':
			s = s[:len(s)-1]
		case 's', 'S':
			qual = QualStandard
			s = s[:len(s)-1]
		case 'u', 'U', 'g', 'G', 'z', 'Z':
			qual = QualUniversal
			s = s[:len(s)-1]
		}
	}
	secs, err := parseHMSSigned(s)
	if err != nil {
		return ClockTime{}, err
	}
	return ClockTime{Seconds: secs, Qualifier: qual}, nil
}

func parseHMSSigned(s string) (int64, error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	var total int64
	mult := []int64{3600, 60, 1}
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid time component %q: %w", p, err)
		}
		total += int64(v * float64(mult[i]))
	}
	if neg {
		total = -total
	}
	return total, nil
}

func parseZoneLine(fields []string) (ZoneEntry, string, error) {
	if len(fields) < 4 {
		return ZoneEntry{}, "", fmt.Errorf("Zone: expected at least 4 fields, got %d", len(fields))
	}
	name := fields[1]
	entry, err := parseZoneCommon(fields[2:])
	if err != nil {
		return ZoneEntry{}, "", err
	}
	entry.Name = name
	return entry, name, nil
}

func parseZoneContinuation(fields []string) (ZoneEntry, error) {
	if len(fields) < 2 {
		return ZoneEntry{}, fmt.Errorf("zone continuation: expected at least 2 fields, got %d", len(fields))
	}
	return parseZoneCommon(fields)
}

// parseZoneCommon parses the shared STDOFF RULES FORMAT [UNTIL...] tail of
// a Zone line or its continuation.
func parseZoneCommon(fields []string) (ZoneEntry, error) {
	var e ZoneEntry
	var err error
	if e.StdOff, err = parseHMSSigned(fields[0]); err != nil {
		return e, fmt.Errorf("STDOFF: %w", err)
	}
	if e.Rules, err = parseZoneRules(fields[1]); err != nil {
		return e, fmt.Errorf("RULES: %w", err)
	}
	e.Format = fields[2]
	if len(fields) > 3 {
		if e.Until, err = parseUntil(fields[3:]); err != nil {
			return e, fmt.Errorf("UNTIL: %w", err)
		}
	}
	return e, nil
}

func parseZoneRules(s string) (ZoneRules, error) {
	if s == "-" {
		return ZoneRules{Form: ZoneRulesNone}, nil
	}
	if secs, err := parseHMSSigned(s); err == nil && (strings.ContainsAny(s, "0123456789")) {
		return ZoneRules{Form: ZoneRulesFixedSave, FixedSeconds: secs}, nil
	}
	return ZoneRules{Form: ZoneRulesName, Name: s}, nil
}

func parseUntil(fields []string) (Until, error) {
	var u Until
	if len(fields) > 4 {
		return u, fmt.Errorf("too many fields: %d", len(fields))
	}
	y, err := strconv.Atoi(fields[0])
	if err != nil {
		return u, fmt.Errorf("year: %w", err)
	}
	u.Year = int64(y)
	u.Month = 1
	u.Day = Day{Form: DayNum, Num: 1}
	u.Defined = true

	if len(fields) > 1 {
		if u.Month, err = parseMonth(fields[1]); err != nil {
			return u, err
		}
		u.HasMonth = true
	}
	if len(fields) > 2 {
		if u.Day, err = parseDay(fields[2]); err != nil {
			return u, err
		}
		u.HasDay = true
	}
	if len(fields) > 3 {
		if u.At, err = parseClockTime(fields[3]); err != nil {
			return u, err
		}
		u.HasAt = true
	}
	return u, nil
}

// isAbbrev reports whether s is a valid (possibly abbreviated) prefix of
// long, at least as long as min.
func isAbbrev(s, long, min string) bool {
	if len(s) < len(min) || len(s) > len(long) {
		return false
	}
	return strings.HasPrefix(long, s)
}
