package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON structure handed to the API layer.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details sent to clients.
type ErrorBody struct {
	Kind      Kind           `json:"kind"`
	Message   string         `json:"message"`
	Provider  string         `json:"provider,omitempty"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
}

// ToResponse converts an Error to an ErrorResponse for JSON serialization.
func (e *Error) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Kind:      e.Kind,
			Message:   e.Message,
			Provider:  e.Provider,
			Retryable: e.Retryable,
			Details:   e.Details,
		},
	}
}

// IsError checks if an error is a provider-layer Error.
func IsError(err error) bool {
	var perr *Error
	return stderrors.As(err, &perr)
}

// AsError converts an error to an Error if possible.
func AsError(err error) (*Error, bool) {
	var perr *Error
	if stderrors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}

// HasKind reports whether err is an Error with the given kind.
func HasKind(err error, kind Kind) bool {
	perr, ok := AsError(err)
	return ok && perr.Kind == kind
}
