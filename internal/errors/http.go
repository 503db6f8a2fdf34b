package errors

import "fmt"

// FromStatus maps an HTTP status code to a typed failure:
//   - 401/403 -> AuthRequired (token missing, expired or rejected)
//   - 404     -> NotFound
//   - everything else non-2xx -> Server
func FromStatus(op string, statusCode int) *Error {
	kind := Server
	switch statusCode {
	case 401, 403:
		kind = AuthRequired
	case 404:
		kind = NotFound
	}
	return &Error{
		Kind:       kind,
		Op:         op,
		StatusCode: statusCode,
		Err:        fmt.Errorf("%s failed: HTTP %d", op, statusCode),
	}
}

// NewNetwork wraps a transport-level failure. Timeouts land here too; both
// degrade the same way.
func NewNetwork(op string, err error) *Error {
	return &Error{Kind: Network, Op: op, Err: err}
}

// NewMalformed wraps a payload decode failure.
func NewMalformed(op string, err error) *Error {
	return &Error{Kind: Malformed, Op: op, Err: err}
}
