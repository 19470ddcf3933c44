package dateparse

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is matched by every RangeError.
var ErrOutOfRange = errors.New("value out of range")

// RangeError reports a value that matched a grammar but whose fields cannot
// form a valid date, time or duration.
type RangeError struct {
	Kind  string // "date", "time", "datetime" or "duration"
	Value string
	Field string
	Err   error
}

func (e *RangeError) Error() string {
	msg := fmt.Sprintf("invalid %s %q", e.Kind, e.Value)
	if e.Field != "" {
		msg += ": " + e.Field + " out of range"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RangeError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrOutOfRange
}

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

func rangeErr(kind, value, field string) error {
	return &RangeError{Kind: kind, Value: value, Field: field}
}
