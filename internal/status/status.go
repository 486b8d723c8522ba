// Package status gives every exported operation in this module a typed error
// carrying one of the canonical codes from spec.md §7, plus an optional
// machine-readable payload tag (spec.md §6, "Observability").
//
// No third-party status library is wired in here: the pack's only
// grpc/status-adjacent dependency shows up exclusively in go.mod manifests
// that were never retrieved as source (e.g. other_examples/manifests/
// AsterNighT-apir-code), and spec.md §1 explicitly puts the protobuf
// configuration surface out of scope. A small stdlib-only type covering the
// four codes this module actually produces is the straightforward fit.
package status

import "fmt"

// Code is one of the four canonical error classes from spec.md §7.
type Code int

const (
	// OK is never returned as an error; it exists so the zero Code is not
	// mistaken for a real failure class.
	OK Code = iota
	InvalidArgument
	FailedPrecondition
	ResourceExhausted
	Internal
)

func (c Code) String() string {
	switch c {
	case InvalidArgument:
		return "INVALID_ARGUMENT"
	case FailedPrecondition:
		return "FAILED_PRECONDITION"
	case ResourceExhausted:
		return "RESOURCE_EXHAUSTED"
	case Internal:
		return "INTERNAL"
	default:
		return "OK"
	}
}

// Tag is a stable, machine-readable payload identifier (spec.md §6). Only a
// subset of errors carry one.
type Tag string

// MaxValueSizeIsZero is the tag spec.md §4.6 requires on the specific
// INVALID_ARGUMENT raised when maxLen is zero.
const MaxValueSizeIsZero Tag = "MAX_VALUE_SIZE_IS_ZERO"

// Error is the error type returned by every exported operation in this
// module that can fail.
type Error struct {
	Code    Code
	Message string
	Tag     Tag // empty unless the error carries a typed payload
}

func (e *Error) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("%s: %s [%s]", e.Code, e.Message, e.Tag)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New constructs an *Error with no payload tag.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewWithTag constructs an *Error carrying a machine-readable payload tag.
func NewWithTag(code Code, tag Tag, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Tag: tag}
}

// Is reports whether err is a *Error with the given code, so callers can
// match on the taxonomy without a type assertion.
func Is(err error, code Code) bool {
	se, ok := err.(*Error)
	return ok && se.Code == code
}

// HasTag reports whether err is a *Error carrying the given payload tag.
func HasTag(err error, tag Tag) bool {
	se, ok := err.(*Error)
	return ok && se.Tag == tag
}
