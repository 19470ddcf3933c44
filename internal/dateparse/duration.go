package dateparse

import (
	"fmt"
	"math"
	"time"
)

// Duration is a signed span of elapsed time with microsecond resolution.
// Unlike time.Duration it covers the full day range the parsers accept
// (roughly ±292 000 years).
type Duration int64

const (
	Microsecond Duration = 1
	Millisecond          = 1000 * Microsecond
	Second               = 1000 * Millisecond
	Minute               = 60 * Second
	Hour                 = 60 * Minute
	Day                  = 24 * Hour
)

// Microseconds returns the duration as an integer microsecond count.
func (d Duration) Microseconds() int64 { return int64(d) }

// Seconds returns the duration as fractional seconds.
func (d Duration) Seconds() float64 {
	sec := d / Second
	usec := d % Second
	return float64(sec) + float64(usec)/1e6
}

// Std converts to a time.Duration. ok is false when d does not fit.
func (d Duration) Std() (time.Duration, bool) {
	const limit = math.MaxInt64 / int64(time.Microsecond)
	if int64(d) > limit || int64(d) < -limit {
		return 0, false
	}
	return time.Duration(d) * time.Microsecond, true
}

// FromStd converts a time.Duration, truncating below a microsecond.
func FromStd(d time.Duration) Duration {
	return Duration(d / time.Microsecond)
}

// Neg returns -d. The most negative Duration has no positive counterpart and
// is returned unchanged.
func (d Duration) Neg() Duration {
	if d == math.MinInt64 {
		return d
	}
	return -d
}

// Abs returns |d| as an unsigned microsecond count.
func (d Duration) Abs() uint64 {
	if d < 0 {
		return uint64(-(d + 1)) + 1
	}
	return uint64(d)
}

// Components breaks d into an overall sign and non-negative fields.
func (d Duration) Components() (negative bool, days, hours, minutes, seconds, micros int64) {
	days, hours, minutes, seconds, micros = split(d.Abs())
	return d < 0, days, hours, minutes, seconds, micros
}

func split(abs uint64) (days, hours, minutes, seconds, micros int64) {
	micros = int64(abs % uint64(Second))
	abs /= uint64(Second)
	seconds = int64(abs % 60)
	abs /= 60
	minutes = int64(abs % 60)
	abs /= 60
	hours = int64(abs % 24)
	days = int64(abs / 24)
	return
}

// String formats d as "[D ]HH:MM:SS[.ffffff]". Days are floored so the
// clock part is never negative: -1s renders as "-1 23:59:59".
func (d Duration) String() string {
	days := int64(d / Day)
	rem := d % Day
	if rem < 0 {
		days--
		rem += Day
	}
	_, hours, minutes, seconds, micros := split(uint64(rem))

	s := fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	if days != 0 {
		s = fmt.Sprintf("%d %s", days, s)
	}
	if micros != 0 {
		s += fmt.Sprintf(".%06d", micros)
	}
	return s
}

// ISO formats d as an ISO 8601 duration, e.g. "-P3DT04H05M06S".
func (d Duration) ISO() string {
	sign := ""
	if d < 0 {
		sign = "-"
	}
	days, hours, minutes, seconds, micros := split(d.Abs())
	frac := ""
	if micros != 0 {
		frac = fmt.Sprintf(".%06d", micros)
	}
	return fmt.Sprintf("%sP%dDT%02dH%02dM%02d%sS", sign, days, hours, minutes, seconds, frac)
}
