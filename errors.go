package client

import (
	"errors"

	clierr "github.com/farmlink/client-go/internal/errors"
)

// FailureKind classifies every error surfaced by the SDK's controllers.
// Callers compare with the exported constants or use the predicates below.
type FailureKind = clierr.Kind

const (
	// AuthRequired: no token configured, or the backend rejected it.
	AuthRequired = clierr.AuthRequired
	// ValidationFailed: local input checks failed; no network call was made.
	ValidationFailed = clierr.Validation
	// NotFound: the referenced post, user or thread is absent.
	NotFound = clierr.NotFound
	// ServerError: unexpected non-2xx from the backend.
	ServerError = clierr.Server
	// NetworkError: transport failure or timeout.
	NetworkError = clierr.Network
	// MalformedResponse: the payload could not be decoded.
	MalformedResponse = clierr.Malformed
)

// ErrConversationClosed is returned by ChatSession.Send when no conversation
// is open. Opening is a prerequisite, not a failure of the backend.
var ErrConversationClosed = errors.New("no open conversation")

// ErrNotOwner is the advisory ownership failure for update/delete on a post
// authored by someone else. The backend enforces ownership authoritatively;
// this only lets the UI fail before the round trip.
var ErrNotOwner = errors.New("post is owned by another user")

// FailureKindOf extracts the failure kind, reporting ok=false for errors
// that did not originate in this SDK's taxonomy.
func FailureKindOf(err error) (FailureKind, bool) { return clierr.KindOf(err) }

// IsAuthRequired reports whether err is an AuthRequired failure.
func IsAuthRequired(err error) bool { return clierr.Is(err, clierr.AuthRequired) }

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool { return clierr.Is(err, clierr.Validation) }

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool { return clierr.Is(err, clierr.NotFound) }

// IsServerError reports whether err is a non-2xx backend failure.
func IsServerError(err error) bool { return clierr.Is(err, clierr.Server) }

// IsNetworkError reports whether err is a transport failure.
func IsNetworkError(err error) bool { return clierr.Is(err, clierr.Network) }

// IsMalformedResponse reports whether err is a payload decode failure.
func IsMalformedResponse(err error) bool { return clierr.Is(err, clierr.Malformed) }

// MissingFields returns the field names a ValidationFailed error names.
func MissingFields(err error) []string {
	var e *clierr.Error
	if errors.As(err, &e) && e.Kind == clierr.Validation {
		return e.Fields
	}
	return nil
}
