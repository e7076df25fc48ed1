package matcher

import (
	"errors"
	"fmt"
)

// ErrorKind classifies fatal matching errors.
type ErrorKind uint8

const (
	// MalformedPattern covers syntax errors in patterns and invalid
	// capture references.
	MalformedPattern ErrorKind = iota + 1

	// CaptureOverflow indicates more than MaxCaptures captures were opened.
	CaptureOverflow

	// ComplexityExceeded indicates the recursion budget was exhausted.
	ComplexityExceeded

	// Cancelled indicates the governor aborted the search.
	Cancelled

	// InvalidReplacement indicates a substitution produced an unusable value
	// or its template was malformed.
	InvalidReplacement
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case MalformedPattern:
		return "MalformedPattern"
	case CaptureOverflow:
		return "CaptureOverflow"
	case ComplexityExceeded:
		return "ComplexityExceeded"
	case Cancelled:
		return "Cancelled"
	case InvalidReplacement:
		return "InvalidReplacement"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error is the fatal error type of the engine. "No match" is never an Error.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error (for errors.Is/As).
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind, so the sentinels
// below match any error of their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is.
var (
	ErrMalformedPattern   = &Error{Kind: MalformedPattern, Message: "malformed pattern"}
	ErrCaptureOverflow    = &Error{Kind: CaptureOverflow, Message: "too many captures"}
	ErrComplexityExceeded = &Error{Kind: ComplexityExceeded, Message: "pattern too complex"}
	ErrCancelled          = &Error{Kind: Cancelled, Message: "search cancelled"}
	ErrInvalidReplacement = &Error{Kind: InvalidReplacement, Message: "invalid replacement"}
)

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func malformed(format string, args ...any) *Error {
	return &Error{Kind: MalformedPattern, Message: fmt.Sprintf(format, args...)}
}

func wrapMalformed(err error) *Error {
	return &Error{Kind: MalformedPattern, Message: err.Error(), Cause: err}
}

func cancelled(err error) *Error {
	return &Error{Kind: Cancelled, Message: err.Error(), Cause: err}
}
