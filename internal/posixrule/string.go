package posixrule

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders r in the POSIX TZ environment-variable format used by a
// TZif footer (spec.md §6.2), e.g. "EST5EDT,M3.2.0,M11.1.0". Offsets are
// negated in the output because POSIX's TZ string offset sign is "west of
// UTC positive", the opposite of this package's internal convention.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteString(quoteAbbr(r.StdAbbr))
	b.WriteString(formatOffset(-r.StdOffset))
	if !r.HasDST {
		return b.String()
	}
	b.WriteString(quoteAbbr(r.DstAbbr))
	if r.DstOffset-r.StdOffset != 3600 {
		b.WriteString(formatOffset(-r.DstOffset))
	}
	b.WriteByte(',')
	b.WriteString(formatTransition(r.Start))
	b.WriteByte(',')
	b.WriteString(formatTransition(r.End))
	return b.String()
}

func quoteAbbr(s string) string {
	if strings.ContainsAny(s, "0123456789+-,") || s == "" {
		return "<" + s + ">"
	}
	return s
}

func formatOffset(secs int64) string {
	neg := secs < 0
	if neg {
		secs = -secs
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	sign := ""
	if neg {
		sign = "-"
	}
	switch {
	case s != 0:
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	case m != 0:
		return fmt.Sprintf("%s%d:%02d", sign, h, m)
	default:
		return fmt.Sprintf("%s%d", sign, h)
	}
}

func formatTransition(t Transition) string {
	var day string
	switch t.Day.Form {
	case JulianNoLeap:
		day = fmt.Sprintf("J%d", t.Day.Julian)
	case JulianWithLeap:
		day = strconv.Itoa(t.Day.Julian)
	default:
		week := t.Day.Week
		if week > 5 {
			week = 5
		}
		day = fmt.Sprintf("M%d.%d.%d", t.Day.Month, week, t.Day.Weekday)
	}
	if t.Time == 2*3600 {
		return day
	}
	return day + "/" + formatOffset(t.Time)
}

// Parse parses a POSIX TZ environment-variable string into a Rule.
func Parse(s string) (Rule, error) {
	var r Rule
	var rest string
	var err error

	r.StdAbbr, rest, err = parseAbbr(s)
	if err != nil {
		return r, fmt.Errorf("posixrule: std abbr: %w", err)
	}
	var stdOff int64
	stdOff, rest, err = parseSignedOffset(rest, 0)
	if err != nil {
		return r, fmt.Errorf("posixrule: std offset: %w", err)
	}
	r.StdOffset = -stdOff

	if rest == "" {
		return r, nil
	}
	r.HasDST = true
	r.DstAbbr, rest, err = parseAbbr(rest)
	if err != nil {
		return r, fmt.Errorf("posixrule: dst abbr: %w", err)
	}

	r.DstOffset = r.StdOffset + 3600
	if rest != "" && rest[0] != ',' {
		var dstOff int64
		dstOff, rest, err = parseSignedOffset(rest, 0)
		if err != nil {
			return r, fmt.Errorf("posixrule: dst offset: %w", err)
		}
		r.DstOffset = -dstOff
	}

	if !strings.HasPrefix(rest, ",") {
		return r, fmt.Errorf("posixrule: expected ',' before start rule, got %q", rest)
	}
	parts := strings.SplitN(rest[1:], ",", 2)
	if len(parts) != 2 {
		return r, fmt.Errorf("posixrule: expected two comma-separated transitions")
	}
	if r.Start, err = parseTransition(parts[0]); err != nil {
		return r, fmt.Errorf("posixrule: start transition: %w", err)
	}
	if r.End, err = parseTransition(parts[1]); err != nil {
		return r, fmt.Errorf("posixrule: end transition: %w", err)
	}
	return r, nil
}

func parseAbbr(s string) (abbr, rest string, err error) {
	if s == "" {
		return "", "", fmt.Errorf("empty")
	}
	if s[0] == '<' {
		i := strings.IndexByte(s, '>')
		if i == -1 {
			return "", "", fmt.Errorf("unterminated quoted abbreviation in %q", s)
		}
		return s[1:i], s[i+1:], nil
	}
	i := 0
	for i < len(s) && (isLetter(s[i])) {
		i++
	}
	if i == 0 {
		return "", "", fmt.Errorf("no abbreviation found in %q", s)
	}
	return s[:i], s[i:], nil
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// parseSignedOffset parses a POSIX hh[:mm[:ss]] offset, defaulting to def
// if s is empty or does not start with a sign/digit.
func parseSignedOffset(s string, def int64) (int64, string, error) {
	if s == "" || (s[0] != '-' && s[0] != '+' && !(s[0] >= '0' && s[0] <= '9')) {
		return def, s, nil
	}
	i := 0
	if s[i] == '-' || s[i] == '+' {
		i++
	}
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == ':') {
		i++
	}
	numStr, rest := s[:i], s[i:]
	neg := strings.HasPrefix(numStr, "-")
	numStr = strings.TrimPrefix(strings.TrimPrefix(numStr, "-"), "+")
	parts := strings.Split(numStr, ":")
	var total int64
	mult := []int64{3600, 60, 1}
	for i, p := range parts {
		if i >= 3 {
			break
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, "", fmt.Errorf("invalid offset component %q", p)
		}
		total += int64(v) * mult[i]
	}
	if neg {
		total = -total
	}
	return total, rest, nil
}

func parseTransition(s string) (Transition, error) {
	var t Transition
	dayPart, timePart, hasTime := strings.Cut(s, "/")
	t.Time = 2 * 3600
	if hasTime {
		secs, rest, err := parseSignedOffset(timePart, 2*3600)
		if err != nil || rest != "" {
			return t, fmt.Errorf("invalid transition time %q", timePart)
		}
		t.Time = secs
	}

	switch {
	case strings.HasPrefix(dayPart, "J"):
		n, err := strconv.Atoi(dayPart[1:])
		if err != nil {
			return t, fmt.Errorf("invalid Julian day %q", dayPart)
		}
		t.Day = TransitionDay{Form: JulianNoLeap, Julian: n}
	case strings.HasPrefix(dayPart, "M"):
		fields := strings.Split(dayPart[1:], ".")
		if len(fields) != 3 {
			return t, fmt.Errorf("invalid M day %q", dayPart)
		}
		m, err1 := strconv.Atoi(fields[0])
		w, err2 := strconv.Atoi(fields[1])
		d, err3 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return t, fmt.Errorf("invalid M day %q", dayPart)
		}
		t.Day = TransitionDay{Form: MonthWeekDow, Month: m, Week: w, Weekday: d}
	default:
		n, err := strconv.Atoi(dayPart)
		if err != nil {
			return t, fmt.Errorf("invalid day %q", dayPart)
		}
		t.Day = TransitionDay{Form: JulianWithLeap, Julian: n}
	}
	return t, nil
}
