package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"syscall"
)

// FromHTTPStatus maps a vendor HTTP failure status into the shared taxonomy.
// The message should be the vendor's own error message where one could be
// extracted; it is carried verbatim on generic provider errors.
func FromHTTPStatus(provider string, status int, message string) *Error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return InvalidAPIKey(provider)
	case http.StatusTooManyRequests:
		return RateLimited(provider)
	default:
		if message == "" {
			message = fmt.Sprintf("unexpected status %d", status)
		}
		return ProviderFailure(provider, message).WithDetail("status", status)
	}
}

// FromTransport maps a transport-level failure (the request never produced a
// response) into the shared taxonomy. A refused connection gets the
// human-readable "service unreachable" message; anything else becomes a
// generic provider error carrying the cause.
func FromTransport(provider, service string, err error) *Error {
	if stderrors.Is(err, syscall.ECONNREFUSED) {
		return Unreachable(provider, service).WithCause(err)
	}
	return ProviderFailure(provider, fmt.Sprintf("request to %s failed: %v", service, err)).WithCause(err)
}
