package util

import (
	"fmt"

	"github.com/hako/durafmt"
	str2duration "github.com/xhit/go-str2duration/v2"

	"github.com/lucrnz/dtparse/internal/dateparse"
)

// ParseLimit parses a human-readable duration string into a magnitude limit.
// Supports standard Go duration units (h, m, s, ms, us, ns) plus days (d) and weeks (w).
// Examples: "1h", "1h30m", "2d", "1w2d3h", "300s". An empty string means no limit.
func ParseLimit(s string) (dateparse.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := str2duration.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("limit must be non-negative, got %s", s)
	}
	return dateparse.FromStd(d), nil
}

// WithinLimit reports whether |d| does not exceed limit. A zero limit allows
// everything.
func WithinLimit(d, limit dateparse.Duration) bool {
	return limit == 0 || d.Abs() <= limit.Abs()
}

// Humanize renders d as words, e.g. "3 days 4 hours 5 minutes 6 seconds".
// Durations beyond the time.Duration range fall back to the canonical form.
func Humanize(d dateparse.Duration) string {
	std, ok := d.Std()
	if !ok {
		return d.String()
	}
	if std == 0 {
		return "0 seconds"
	}
	return durafmt.Parse(std).String()
}
