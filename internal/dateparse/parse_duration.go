package dateparse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// standardDuration is the framework's own "[-]D days, H:M:S.ffffff" form.
// Hours are only accepted ahead of an unsigned "M:" so they never swallow a
// lone "M:S" pair.
var standardDuration = regexp.MustCompile(
	`^` +
		`(?:(?P<days>-?\d+) (?:days?, )?)?` +
		`(?:(?P<hours>-?\d+):(?P<hminutes>\d+):|(?P<minutes>-?\d+):)?` +
		`(?P<seconds>-?\d+)` +
		`(?:\.(?P<microseconds>\d{1,6})\d{0,6})?` +
		`$`,
)

// isoDuration covers the part of ISO 8601 that maps onto days and clock time.
var isoDuration = regexp.MustCompile(
	`^(?P<sign>[-+]?)` +
		`P` +
		`(?:(?P<days>\d+(?:[.,]\d+)?)D)?` +
		`(?:T` +
		`(?:(?P<hours>\d+(?:[.,]\d+)?)H)?` +
		`(?:(?P<minutes>\d+(?:[.,]\d+)?)M)?` +
		`(?:(?P<seconds>\d+(?:[.,]\d+)?)S)?` +
		`)?` +
		`$`,
)

// postgresInterval is PostgreSQL's day-time interval output, e.g.
// "3 days 04:05:06". Year-month intervals have no fixed length and are not
// accepted.
var postgresInterval = regexp.MustCompile(
	`^` +
		`(?:(?P<days>-?\d+) (?:days? ?))?` +
		`(?:(?P<sign>[-+])?` +
		`(?P<hours>\d+):` +
		`(?P<minutes>\d\d):` +
		`(?P<seconds>\d\d)` +
		`(?:\.(?P<microseconds>\d{1,6}))?` +
		`)?$`,
)

type durationGrammar struct {
	re        *regexp.Regexp
	interpret func(value string, m map[string]string) (Duration, bool, error)
}

// durationGrammars are tried in order. The first pattern that matches
// decides the outcome, even when its interpreter then rejects the value.
var durationGrammars = []durationGrammar{
	{standardDuration, parseStandard},
	{isoDuration, parseISO},
	{postgresInterval, parsePostgres},
}

// ParseDuration parses the framework's "D HH:MM:SS.ffffff" form, an ISO 8601
// duration or a PostgreSQL day-time interval.
//
// ok is false with a nil error when value is not in any supported format.
// A non-nil error is a *RangeError: the value had a supported shape but its
// total does not fit in a Duration.
func ParseDuration(value string) (d Duration, ok bool, err error) {
	for _, g := range durationGrammars {
		if m := submatches(g.re, value); m != nil {
			return g.interpret(value, m)
		}
	}
	return 0, false, nil
}

func parseStandard(value string, m map[string]string) (Duration, bool, error) {
	f := standardFields(m)

	// "1 day, -2:03:04" mixes a positive day count with a negative clock.
	if f.days != "" && !negative(f.days) &&
		(negative(f.hours) || negative(f.minutes) || negative(f.seconds)) {
		return 0, false, nil
	}
	// Fields after a colon never carry their own sign.
	if i := strings.IndexByte(value, ':'); i >= 0 && strings.Contains(value[i:], "-") {
		return 0, false, nil
	}
	if strings.HasPrefix(value, "--") {
		return 0, false, nil
	}

	if f.days == "" && negative(value) && negatesWhole(value, f.hours) {
		um := submatches(standardDuration, value[1:])
		if um == nil {
			return 0, false, nil
		}
		d, err := standardFields(um).normalize().span(value)
		if err != nil {
			return 0, false, err
		}
		return d.Neg(), true, nil
	}

	d, err := f.normalize().span(value)
	if err != nil {
		return 0, false, err
	}
	return d, true, nil
}

// negatesWhole reports whether the leading minus of a day-less value applies
// to the whole clock rather than to its first field: "-15:30" and
// "-00:01:01" are negated as a unit, "-1:15:30" keeps a negative hour only.
func negatesWhole(value, hours string) bool {
	switch strings.Count(value, ":") {
	case 0, 1:
		return true
	case 2:
		h := strings.TrimPrefix(hours, "-")
		return len(h) > 0 && h[0] == '0'
	}
	return false
}

func standardFields(m map[string]string) fields {
	f := fields{
		days:    m["days"],
		hours:   m["hours"],
		minutes: m["minutes"],
		seconds: m["seconds"],
		micros:  m["microseconds"],
	}
	if f.hours != "" {
		f.minutes = m["hminutes"]
	}
	return f
}

func parseISO(value string, m map[string]string) (Duration, bool, error) {
	f := fields{
		days:    m["days"],
		hours:   m["hours"],
		minutes: m["minutes"],
		seconds: m["seconds"],
	}
	d, err := f.realSpan(value)
	if err != nil {
		return 0, false, err
	}
	if m["sign"] == "-" {
		d = d.Neg()
	}
	return d, true, nil
}

func parsePostgres(value string, m map[string]string) (Duration, bool, error) {
	if m["days"] == "" && m["hours"] == "" {
		return 0, false, nil
	}
	days, err := fields{days: m["days"]}.span(value)
	if err != nil {
		return 0, false, err
	}
	clock, err := fields{
		hours:   m["hours"],
		minutes: m["minutes"],
		seconds: m["seconds"],
		micros:  m["microseconds"],
	}.normalize().span(value)
	if err != nil {
		return 0, false, err
	}
	if m["sign"] == "-" {
		clock = clock.Neg()
	}
	d, ok := add(days, clock)
	if !ok {
		return 0, false, rangeErr("duration", value, "")
	}
	return d, true, nil
}

// fields holds the textual components of a matched duration. An empty
// string is an absent field.
type fields struct {
	days, hours, minutes, seconds, micros string
}

// normalize right-pads the fraction to microseconds and gives it the sign of
// the seconds field, so "-30.1" means -30s -100ms.
func (f fields) normalize() fields {
	if f.micros == "" {
		return f
	}
	if n := 6 - len(f.micros); n > 0 {
		f.micros += strings.Repeat("0", n)
	}
	if negative(f.seconds) {
		f.micros = "-" + f.micros
	}
	return f
}

type component struct {
	name string
	text string
	unit Duration
}

func (f fields) components() []component {
	return []component{
		{"days", f.days, Day},
		{"hours", f.hours, Hour},
		{"minutes", f.minutes, Minute},
		{"seconds", f.seconds, Second},
		{"microseconds", f.micros, Microsecond},
	}
}

// span sums integer fields with overflow checking.
func (f fields) span(value string) (Duration, error) {
	var total Duration
	for _, u := range f.components() {
		if u.text == "" {
			continue
		}
		n, err := strconv.ParseInt(u.text, 10, 64)
		if err != nil {
			return 0, rangeErr("duration", value, u.name)
		}
		part, ok := mul(n, u.unit)
		if !ok {
			return 0, rangeErr("duration", value, u.name)
		}
		if total, ok = add(total, part); !ok {
			return 0, rangeErr("duration", value, "")
		}
	}
	return total, nil
}

// realSpan sums fields that may carry a decimal fraction, rounding the total
// to the nearest microsecond.
func (f fields) realSpan(value string) (Duration, error) {
	var total float64
	for _, u := range f.components() {
		if u.text == "" {
			continue
		}
		x, err := strconv.ParseFloat(strings.Replace(u.text, ",", ".", 1), 64)
		if err != nil {
			return 0, rangeErr("duration", value, u.name)
		}
		total += x * float64(u.unit)
	}
	total = math.RoundToEven(total)
	if math.IsInf(total, 0) || math.Abs(total) >= math.MaxInt64 {
		return 0, rangeErr("duration", value, "")
	}
	return Duration(total), nil
}

func negative(s string) bool { return strings.HasPrefix(s, "-") }

func mul(n int64, unit Duration) (Duration, bool) {
	u := int64(unit)
	if n > math.MaxInt64/u || n < math.MinInt64/u {
		return 0, false
	}
	return Duration(n * u), true
}

func add(a, b Duration) (Duration, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

// submatches returns the named groups of re in s, or nil when s does not
// match. Groups that did not participate map to "".
func submatches(re *regexp.Regexp, s string) map[string]string {
	sub := re.FindStringSubmatch(s)
	if sub == nil {
		return nil
	}
	m := make(map[string]string, len(sub))
	for i, name := range re.SubexpNames() {
		if name != "" {
			m[name] = sub[i]
		}
	}
	return m
}
