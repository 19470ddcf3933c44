// Package dateparse parses the textual date, time, datetime and duration
// formats written by the framework's database layer.
//
// Every parser returns (value, ok, err). ok is false with a nil error when the
// input does not have a supported shape. A non-nil error means the input had
// a supported shape but its fields are out of range; it is always a
// *RangeError and matches ErrOutOfRange.
package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

var dateRe = regexp.MustCompile(
	`^(?P<year>\d{4})-(?P<month>\d{1,2})-(?P<day>\d{1,2})$`,
)

var timeRe = regexp.MustCompile(
	`^(?P<hour>\d{1,2}):(?P<minute>\d{1,2})` +
		`(?::(?P<second>\d{1,2})(?:\.(?P<microsecond>\d{1,6})\d{0,6})?)?$`,
)

var dateTimeRe = regexp.MustCompile(
	`^(?P<year>\d{4})-(?P<month>\d{1,2})-(?P<day>\d{1,2})` +
		`[T ](?P<hour>\d{1,2}):(?P<minute>\d{1,2})` +
		`(?::(?P<second>\d{1,2})(?:\.(?P<microsecond>\d{1,6})\d{0,6})?)?` +
		`(?P<tzinfo>Z|[+-]\d{2}(?::?\d{2})?)?$`,
)

// DateTime is a calendar date and wall-clock time. Location is nil for naive
// values and a fixed-offset zone (or UTC) when the input carried an offset.
type DateTime struct {
	civil.DateTime
	Location *time.Location
}

// Aware reports whether the value carried a UTC offset.
func (dt DateTime) Aware() bool { return dt.Location != nil }

// In returns the instant dt denotes. Naive values are interpreted in loc.
func (dt DateTime) In(loc *time.Location) time.Time {
	if dt.Location != nil {
		loc = dt.Location
	}
	return dt.DateTime.In(loc)
}

func (dt DateTime) String() string {
	s := dt.DateTime.String()
	if dt.Location == nil {
		return s
	}
	return s + dt.In(dt.Location).Format("Z07:00")
}

// ParseDate parses "YYYY-MM-DD". Month and day may have one digit.
func ParseDate(value string) (civil.Date, bool, error) {
	m := submatches(dateRe, value)
	if m == nil {
		return civil.Date{}, false, nil
	}
	d := dateOf(m)
	if field := checkDate(d); field != "" {
		return civil.Date{}, false, rangeErr("date", value, field)
	}
	return d, true, nil
}

// ParseTime parses "HH:MM[:SS[.ffffff]]". Fractions beyond six digits are
// truncated. Values carrying a UTC offset are not recognized.
func ParseTime(value string) (civil.Time, bool, error) {
	m := submatches(timeRe, value)
	if m == nil {
		return civil.Time{}, false, nil
	}
	t := timeOf(m)
	if field := checkTime(t); field != "" {
		return civil.Time{}, false, rangeErr("time", value, field)
	}
	return t, true, nil
}

// ParseDateTime parses an ISO 8601 date and time separated by "T" or a
// space, with an optional "Z" or "±HH[:MM]" offset.
func ParseDateTime(value string) (DateTime, bool, error) {
	m := submatches(dateTimeRe, value)
	if m == nil {
		return DateTime{}, false, nil
	}
	dt := DateTime{DateTime: civil.DateTime{Date: dateOf(m), Time: timeOf(m)}}
	if field := checkDate(dt.Date); field != "" {
		return DateTime{}, false, rangeErr("datetime", value, field)
	}
	if field := checkTime(dt.Time); field != "" {
		return DateTime{}, false, rangeErr("datetime", value, field)
	}

	switch tz := m["tzinfo"]; tz {
	case "":
	case "Z":
		dt.Location = time.UTC
	default:
		offset := 60 * atoi(tz[1:3])
		if len(tz) > 3 {
			offset += atoi(tz[len(tz)-2:])
		}
		if tz[0] == '-' {
			offset = -offset
		}
		// A fixed offset must stay strictly within one day.
		if offset <= -24*60 || offset >= 24*60 {
			return DateTime{}, false, rangeErr("datetime", value, "offset")
		}
		dt.Location = FixedZone(offset)
	}
	return dt, true, nil
}

// FixedZone returns a zone offset from UTC by the given number of minutes,
// named "+HHMM" or "-HHMM".
func FixedZone(minutes int) *time.Location {
	sign := "+"
	abs := minutes
	if minutes < 0 {
		sign = "-"
		abs = -minutes
	}
	name := fmt.Sprintf("%s%02d%02d", sign, abs/60, abs%60)
	return time.FixedZone(name, minutes*60)
}

func dateOf(m map[string]string) civil.Date {
	return civil.Date{
		Year:  atoi(m["year"]),
		Month: time.Month(atoi(m["month"])),
		Day:   atoi(m["day"]),
	}
}

func timeOf(m map[string]string) civil.Time {
	t := civil.Time{
		Hour:   atoi(m["hour"]),
		Minute: atoi(m["minute"]),
		Second: atoi(m["second"]),
	}
	if us := m["microsecond"]; us != "" {
		us += strings.Repeat("0", 6-len(us))
		t.Nanosecond = atoi(us) * 1000
	}
	return t
}

// checkDate returns the name of the first out-of-range field, or "".
func checkDate(d civil.Date) string {
	switch {
	case d.Year < 1:
		return "year"
	case d.Month < time.January || d.Month > time.December:
		return "month"
	case d.Day < 1 || d.Day > daysIn(d.Year, d.Month):
		return "day"
	}
	return ""
}

func checkTime(t civil.Time) string {
	switch {
	case t.Hour > 23:
		return "hour"
	case t.Minute > 59:
		return "minute"
	case t.Second > 59:
		return "second"
	}
	return ""
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// atoi converts a group the patterns have already restricted to a few ASCII
// digits; an absent group is zero.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
