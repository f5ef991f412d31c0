package provider

import "context"

// Provider is the base interface all providers must implement.
type Provider interface {
	// Name returns the provider's unique id (e.g. "openai", "ollama").
	Name() string
	// ValidateKey checks whether the provider accepts its configured
	// credential. Credential-free providers report reachability instead.
	ValidateKey(ctx context.Context) bool
}

// Factory creates a provider instance from a per-call context.
type Factory[T Provider] func(pctx Context) (T, error)
