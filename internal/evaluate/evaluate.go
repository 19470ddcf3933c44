package evaluate

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lucrnz/dtparse/internal/dateparse"
	"github.com/lucrnz/dtparse/internal/looseversion"
	"github.com/lucrnz/dtparse/internal/util"
)

// Kind selects the parser applied to a value
type Kind string

const (
	Duration     Kind = "duration"
	Date         Kind = "date"
	Time         Kind = "time"
	DateTime     Kind = "datetime"
	LooseVersion Kind = "looseversion"
)

// Kinds lists every supported kind in display order
var Kinds = []Kind{Duration, Date, Time, DateTime, LooseVersion}

// ParseKind validates a kind name
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == strings.ToLower(s) {
			return k, nil
		}
	}
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return "", fmt.Errorf("unsupported kind %q. Supported kinds: %s", s, strings.Join(names, ", "))
}

// Options tunes how values are evaluated
type Options struct {
	Limit     dateparse.Duration // maximum duration magnitude, 0 = unlimited
	Relative  bool               // add a relative rendering to datetimes
	Now       func() time.Time   // reference time for Relative, defaults to time.Now
	CompareTo string             // loose version to compare against, "" = none
}

// Evaluate parses value as kind and describes the outcome
func Evaluate(kind Kind, value string, opts Options) Result {
	r := Result{Kind: kind, Input: value}
	var (
		fields Fields
		ok     bool
		err    error
	)
	switch kind {
	case Duration:
		fields, ok, err = duration(value, opts)
	case Date:
		fields, ok, err = date(value)
	case Time:
		fields, ok, err = clock(value)
	case DateTime:
		fields, ok, err = dateTime(value, opts)
	case LooseVersion:
		fields, ok = looseVersion(value, opts), true
	default:
		err = fmt.Errorf("unsupported kind %q", kind)
	}

	switch {
	case err != nil:
		r.Status = Invalid
		r.Error = err.Error()
	case !ok:
		r.Status = Unrecognized
	default:
		r.Status = OK
		r.Fields = fields
	}
	return r
}

func duration(value string, opts Options) (Fields, bool, error) {
	d, ok, err := dateparse.ParseDuration(value)
	if err != nil || !ok {
		return nil, ok, err
	}
	if !util.WithinLimit(d, opts.Limit) {
		return nil, false, fmt.Errorf("duration %q exceeds limit of %s", value, util.Humanize(opts.Limit))
	}
	return Fields{
		{"canonical", d.String()},
		{"iso8601", d.ISO()},
		{"seconds", d.Seconds()},
		{"microseconds", d.Microseconds()},
		{"human", util.Humanize(d)},
	}, true, nil
}

func date(value string) (Fields, bool, error) {
	d, ok, err := dateparse.ParseDate(value)
	if err != nil || !ok {
		return nil, ok, err
	}
	return Fields{
		{"date", d.String()},
		{"weekday", d.In(time.UTC).Weekday().String()},
	}, true, nil
}

func clock(value string) (Fields, bool, error) {
	t, ok, err := dateparse.ParseTime(value)
	if err != nil || !ok {
		return nil, ok, err
	}
	return Fields{{"time", t.String()}}, true, nil
}

func dateTime(value string, opts Options) (Fields, bool, error) {
	dt, ok, err := dateparse.ParseDateTime(value)
	if err != nil || !ok {
		return nil, ok, err
	}
	fields := Fields{
		{"datetime", dt.String()},
		{"aware", dt.Aware()},
	}
	instant := dt.In(time.UTC)
	if dt.Aware() {
		fields = append(fields,
			Field{"offset", dt.Location.String()},
			Field{"utc", instant.UTC().Format(time.RFC3339Nano)},
		)
	}
	if opts.Relative {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		fields = append(fields, Field{"relative", humanize.RelTime(instant, now(), "ago", "from now")})
	}
	return fields, true, nil
}

func looseVersion(value string, opts Options) Fields {
	v := looseversion.Parse(value)
	components := make([]any, 0, len(v.Components()))
	for _, c := range v.Components() {
		if c.Numeric {
			components = append(components, c.Number)
		} else {
			components = append(components, c.Text)
		}
	}
	leading := v.Leading()
	if leading == nil {
		leading = []int{}
	}
	fields := Fields{
		{"components", components},
		{"leading", leading},
	}
	if opts.CompareTo != "" {
		fields = append(fields, Field{"compare", v.Compare(looseversion.Parse(opts.CompareTo))})
	}
	return fields
}
