// Package engineerr defines the error kinds the playback core reports
// to callers: validation failures, missing-index lookups, destination
// I/O failures, and fatal loop-invariant violations. All are non-fatal
// to the frame loop except Fatal, which signals the loop must stop.
package engineerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for dispatch and logging.
type Kind int

const (
	// Validation marks a rejected control-message argument: out of
	// range or wrong arity. The caller's state is left unchanged.
	Validation Kind = iota
	// Lookup marks a reference to a scene/effect/palette/segment/color
	// index that does not exist. The operation is dropped.
	Lookup
	// IO marks a destination send failure. Other destinations continue.
	IO
	// Fatal marks an unrecoverable loop-invariant violation; the frame
	// loop must terminate.
	Fatal
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Lookup:
		return "lookup"
	case IO:
		return "io"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a Kind so callers can branch on
// errors.As without string-matching messages.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Validationf builds a Validation-kind error.
func Validationf(format string, args ...any) *Error { return newf(Validation, format, args...) }

// Lookupf builds a Lookup-kind error.
func Lookupf(format string, args ...any) *Error { return newf(Lookup, format, args...) }

// IOf builds an IO-kind error, wrapping cause.
func IOf(cause error, format string, args ...any) *Error {
	e := newf(IO, format, args...)
	e.Err = cause
	return e
}

// Fatalf builds a Fatal-kind error.
func Fatalf(format string, args ...any) *Error { return newf(Fatal, format, args...) }

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
