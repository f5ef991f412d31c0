package errors

// Kind is a machine-readable error classification shared across both
// provider families. The string values are part of the wire contract.
type Kind string

const (
	// KindInvalidAPIKey indicates the provider rejected the supplied
	// credential, or a credential-requiring provider was called without one.
	KindInvalidAPIKey Kind = "INVALID_API_KEY"
	// KindRateLimit indicates the provider throttled the request.
	KindRateLimit Kind = "RATE_LIMIT"
	// KindInvalidRequest indicates the request failed validation before any
	// provider was dispatched.
	KindInvalidRequest Kind = "INVALID_REQUEST"
	// KindProviderError indicates any other provider-side failure, including
	// unreachable services and malformed responses.
	KindProviderError Kind = "PROVIDER_ERROR"
)

var retryableKinds = map[Kind]bool{
	KindInvalidAPIKey:  false,
	KindRateLimit:      true,
	KindInvalidRequest: false,
	KindProviderError:  true,
}

// IsRetryableKind returns true if the kind indicates a retryable error.
func IsRetryableKind(k Kind) bool {
	return retryableKinds[k]
}
