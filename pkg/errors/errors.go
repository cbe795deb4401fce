// Package errors provides structured error handling for atomlens.
// Errors carry codes so callers can distinguish fatal conditions
// (a missing input collection) from per-item skips.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies an error class for programmatic handling.
type Code string

const (
	// Input errors (1xx)
	CodeCollectionMissing Code = "E101" // required input root directory absent
	CodeFilePermission    Code = "E102"
	CodeDescriptorMissing Code = "E103" // definition container without its descriptor
	CodeLogMissing        Code = "E104" // execution container without a process log

	// Processing errors (2xx)
	CodeUnattributable Code = "E201" // no process name extractable
	CodeNoData         Code = "E202" // no events survived collection/correlation

	// Output errors (3xx)
	CodeWriteFailed Code = "E301"

	// System errors (4xx)
	CodeContextCanceled Code = "E401"

	// Unknown
	CodeUnknown Code = "E999"
)

// Error is the base error type for atomlens failures.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if len(e.Context) > 0 {
		sb.WriteString(" (")
		first := true
		for k, v := range e.Context {
			if !first {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%s=%v", k, v))
			first = false
		}
		sb.WriteString(")")
	}

	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}

	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithContext attaches a key/value pair to the error.
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new Error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap wraps an existing error with a code and message.
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, code Code, format string, args ...interface{}) *Error {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// --- Convenience constructors ---

// CollectionMissing reports an absent input root. Always fatal.
func CollectionMissing(kind, path string) *Error {
	return New(CodeCollectionMissing, kind+" directory not found").
		WithContext("path", path)
}

// DescriptorMissing reports a definition container without its
// primary descriptor artifact. The container is skipped.
func DescriptorMissing(key string) *Error {
	return New(CodeDescriptorMissing, "primary descriptor not found").
		WithContext("container", key)
}

// NoData reports an empty result set. This is a clean exit, not a crash.
func NoData() *Error {
	return New(CodeNoData, "no execution data found; check the collection paths")
}

// --- Error checking utilities ---

// IsCode checks whether an error carries a specific code.
func IsCode(err error, code Code) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// GetCode extracts the code from an error.
func GetCode(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// IsFatal reports whether the error must abort the run before any
// processing begins. Per-item skip conditions are never fatal.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case CodeCollectionMissing, CodeContextCanceled:
		return true
	default:
		return false
	}
}
