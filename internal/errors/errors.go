package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error. Persistence and network failures are
// recovered close to where they happen; the kind lets callers decide how.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindParse
	KindIO
	KindChecksumMismatch
	KindValidationBlock
	KindNetwork
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindParse:
		return "PARSE"
	case KindIO:
		return "IO"
	case KindChecksumMismatch:
		return "CHECKSUM_MISMATCH"
	case KindValidationBlock:
		return "VALIDATION_BLOCK"
	case KindNetwork:
		return "NETWORK"
	default:
		return "UNKNOWN"
	}
}

// Error is an engine error with a kind, a stable code, and an optional cause.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches on kind and code so sentinel comparisons work across wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Code == "" || e.Code == t.Code)
}

// New creates an engine error.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap wraps an existing error with kind and code.
func Wrap(err error, kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Cause: err}
}

// NotFound creates a NOT_FOUND error. Absence is an expected condition:
// store loaders return it instead of surfacing filesystem detail.
func NotFound(code, message string) *Error {
	return New(KindNotFound, code, message)
}

// Parse creates a PARSE error for malformed on-disk or remote JSON.
func Parse(err error, code, message string) *Error {
	return Wrap(err, KindParse, code, message)
}

// IO creates an IO error for filesystem failures.
func IO(err error, code, message string) *Error {
	return Wrap(err, KindIO, code, message)
}

// ChecksumMismatch creates a CHECKSUM_MISMATCH error.
func ChecksumMismatch(code, message string) *Error {
	return New(KindChecksumMismatch, code, message)
}

// Network creates a NETWORK error for timeouts and non-200 responses.
func Network(err error, code, message string) *Error {
	return Wrap(err, KindNetwork, code, message)
}

// KindOf returns the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a NOT_FOUND engine error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// Absence reports whether err should be treated as "value absent":
// NOT_FOUND and PARSE are both degraded to absence by callers, per the
// loader contract (a truncated file reads as missing, never as corrupt
// state).
func Absence(err error) bool {
	k := KindOf(err)
	return k == KindNotFound || k == KindParse
}
