// Package fault carries the expected-failure taxonomy of the store layer.
// Services return *Error values for failures the caller can act on; the
// HTTP layer maps kinds to status codes and never needs store-specific
// handling. Unexpected faults (lost connection mid-transaction) still
// travel as Storage-kind errors with the cause wrapped for the logs.
package fault

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Validation: missing or malformed input. Caller-fixable, no retry.
	Validation Kind = iota
	// Conflict: duplicate username/email/address race. Caller may retry
	// with different input.
	Conflict
	// InvalidCredentials: authentication failure, reported generically.
	InvalidCredentials
	// NotFound: referenced record does not exist.
	NotFound
	// Storage: query or transaction failure. Logged, rolled back, and
	// surfaced with a generic message.
	Storage
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case InvalidCredentials:
		return "invalid_credentials"
	case NotFound:
		return "not_found"
	case Storage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is a categorized failure. Message is safe to surface to callers;
// Err holds the underlying cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a categorized failure.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain. Anything that is not a
// *Error counts as Storage.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Storage
}

// MessageOf returns the caller-safe message of an error chain. Non-fault
// errors get a generic message so internals never leak to responses.
func MessageOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return "Internal server error"
}

// Is reports whether the error chain carries the given kind.
func Is(err error, kind Kind) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == kind
}
