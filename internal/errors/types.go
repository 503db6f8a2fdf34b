// Package errors provides typed failure classification for the client SDK.
// Controllers surface these kinds directly so callers can render a distinct
// user-facing message per failure class.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind identifies the failure class of a client operation.
type Kind int

const (
	// AuthRequired means no token was configured or the backend rejected it.
	AuthRequired Kind = iota

	// Validation means the input failed local checks; no network call was made.
	Validation

	// NotFound means the referenced post, user or thread is absent.
	NotFound

	// Server means the backend answered with an unexpected non-2xx status.
	Server

	// Network means the transport failed (connection error, timeout).
	Network

	// Malformed means the response payload could not be decoded.
	Malformed
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case AuthRequired:
		return "AuthRequired"
	case Validation:
		return "Validation"
	case NotFound:
		return "NotFound"
	case Server:
		return "Server"
	case Network:
		return "Network"
	case Malformed:
		return "Malformed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Error wraps a failure with its kind and, for HTTP failures, the status code.
type Error struct {
	Kind       Kind
	Op         string   // operation name, e.g. "list posts"
	StatusCode int      // HTTP status (0 for non-HTTP failures)
	Fields     []string // missing fields for Validation errors
	Err        error    // underlying cause, may be nil
}

// Error implements the error interface. The kind is always part of the
// message so callers (and tests) can tell failure classes apart.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Kind, e.Op)
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, ": HTTP %d", e.StatusCode)
	}
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, ": missing %s", strings.Join(e.Fields, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error of the given kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// NewValidation constructs a Validation error naming the missing fields.
func NewValidation(op string, fields ...string) *Error {
	return &Error{Kind: Validation, Op: op, Fields: fields}
}

// KindOf extracts the Kind of err, reporting ok=false for foreign errors.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsRetryable reports whether the failure may be transient. Only the read
// path consults this; mutations are never retried automatically.
func IsRetryable(err error) bool {
	k, ok := KindOf(err)
	return ok && (k == Network || k == Server)
}
