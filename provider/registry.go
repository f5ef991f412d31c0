package provider

import (
	"sort"
	"sync"

	"github.com/skillsenselab/prepkit/errors"
)

// Registry maps provider ids to factories for one capability family.
// Resolution constructs a fresh provider instance per call.
type Registry[T Provider] struct {
	family  Family
	mu      sync.RWMutex
	entries map[string]entry[T]
}

type entry[T Provider] struct {
	factory        Factory[T]
	credentialFree bool
}

// RegisterOption configures a registry entry.
type RegisterOption func(*registerOptions)

type registerOptions struct {
	credentialFree bool
}

// CredentialFree marks a provider as reachable without an API key
// (local whisper sidecar, Ollama).
func CredentialFree() RegisterOption {
	return func(o *registerOptions) {
		o.credentialFree = true
	}
}

// NewRegistry creates an empty registry for the given family.
func NewRegistry[T Provider](family Family) *Registry[T] {
	return &Registry[T]{
		family:  family,
		entries: make(map[string]entry[T]),
	}
}

// Register adds a named factory. Typically called from init() in driver
// packages so that importing a driver makes it resolvable.
func (r *Registry[T]) Register(name string, factory Factory[T], opts ...RegisterOption) {
	var o registerOptions
	for _, opt := range opts {
		opt(&o)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = entry[T]{factory: factory, credentialFree: o.credentialFree}
}

// Resolve constructs the provider selected by pctx. It fails fast with a
// typed error on an unknown id or a missing credential, before any network
// activity.
func (r *Registry[T]) Resolve(pctx Context) (T, error) {
	var zero T

	if !pctx.HasProvider() {
		return zero, errors.MissingField("provider")
	}

	r.mu.RLock()
	e, ok := r.entries[pctx.Provider]
	r.mu.RUnlock()
	if !ok {
		return zero, errors.UnknownProvider(string(r.family), pctx.Provider)
	}

	if !e.credentialFree && pctx.Credential == "" {
		return zero, errors.InvalidAPIKey(pctx.Provider)
	}

	return e.factory(pctx)
}

// Known reports whether a provider id is registered.
func (r *Registry[T]) Known(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// List returns sorted ids of all registered providers.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
