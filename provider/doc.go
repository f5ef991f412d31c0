// Package provider implements the capability contract shared by all external
// AI backends and the registry that resolves a concrete backend from a
// per-call context.
//
// Two provider families exist: question generation and speech transcription.
// Each family defines its own capability interface embedding [Provider] and
// owns a [Registry] of factories keyed by provider id. Providers are
// constructed per call from an explicit [Context] — there are no singleton
// provider instances and no hidden global state.
//
// Resolution fails fast, before any network call: an unknown provider id and
// a missing credential for a credential-requiring provider both produce typed
// errors from the errors package.
//
//	reg := provider.NewRegistry[myProvider](provider.FamilyGeneration)
//	reg.Register("openai", newOpenAI)
//	reg.Register("ollama", newOllama, provider.CredentialFree())
//	p, err := reg.Resolve(pctx)
package provider
