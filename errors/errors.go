package errors

import (
	"fmt"
	"net/http"
)

// Error is the unified provider-layer error type.
type Error struct {
	// Kind is the machine-readable classification.
	Kind Kind `json:"kind"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Provider is the id of the originating provider, if any.
	Provider string `json:"provider,omitempty"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	switch {
	case e.Provider != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s [provider=%s] (cause: %v)", e.Kind, e.Message, e.Provider, e.Cause)
	case e.Provider != "":
		return fmt.Sprintf("%s: %s [provider=%s]", e.Kind, e.Message, e.Provider)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s (cause: %v)", e.Kind, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error with automatic retryable detection.
func New(kind Kind, provider, message string, httpStatus int) *Error {
	return &Error{
		Kind:       kind,
		Message:    message,
		Provider:   provider,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableKind(kind),
	}
}

// --- Common Error Constructors ---

// InvalidAPIKey creates a new Error for a rejected or missing credential.
func InvalidAPIKey(provider string) *Error {
	return &Error{
		Kind: KindInvalidAPIKey, Message: "Invalid or missing API key. Please check your provider settings.",
		Provider: provider, HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// RateLimited creates a new Error for a throttled request.
func RateLimited(provider string) *Error {
	return &Error{
		Kind: KindRateLimit, Message: "Too many requests. Please wait a moment and try again.",
		Provider: provider, HTTPStatus: http.StatusTooManyRequests, Retryable: true,
	}
}

// InvalidRequest creates a new Error for a request that failed validation.
func InvalidRequest(reason string) *Error {
	return &Error{
		Kind: KindInvalidRequest, Message: reason,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// MissingField creates a new Error for a missing required field.
func MissingField(field string) *Error {
	return &Error{
		Kind: KindInvalidRequest, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"field": field},
	}
}

// UnknownProvider creates a new Error for an unrecognized provider id.
func UnknownProvider(family, provider string) *Error {
	return &Error{
		Kind: KindInvalidRequest, Message: fmt.Sprintf("Unknown %s provider: %s", family, provider),
		Provider: provider, HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"family": family},
	}
}

// Unreachable creates a new Error for a provider service that cannot be reached.
func Unreachable(provider, service string) *Error {
	return &Error{
		Kind: KindProviderError, Message: fmt.Sprintf("The %s service is unreachable. Please verify it is running.", service),
		Provider: provider, HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// ProviderFailure creates a new Error carrying a provider's own failure message.
func ProviderFailure(provider, message string) *Error {
	return &Error{
		Kind: KindProviderError, Message: message,
		Provider: provider, HTTPStatus: http.StatusBadGateway, Retryable: true,
	}
}

// NotImplemented creates a new Error for a provider capability that is not
// yet implemented. Placeholder adapters return this from their operations so
// that they remain reachable through the registry.
func NotImplemented(provider, capability string) *Error {
	return &Error{
		Kind: KindProviderError, Message: fmt.Sprintf("%s does not support %s yet.", provider, capability),
		Provider: provider, HTTPStatus: http.StatusNotImplemented, Retryable: false,
		Details: map[string]any{"capability": capability},
	}
}

// MalformedResponse creates a new Error for an unparseable provider response.
func MalformedResponse(provider string, cause error) *Error {
	return &Error{
		Kind: KindProviderError, Message: "The provider returned a response that could not be parsed.",
		Provider: provider, HTTPStatus: http.StatusBadGateway, Retryable: true, Cause: cause,
	}
}
