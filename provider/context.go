package provider

// Family identifies a provider capability family.
type Family string

const (
	// FamilyGeneration covers question-generation backends.
	FamilyGeneration Family = "generation"
	// FamilyTranscription covers speech-to-text backends.
	FamilyTranscription Family = "transcription"
)

// Context carries the per-call provider selection. It is transient and never
// persisted outside an explicit user retry record.
type Context struct {
	// Family is the capability family being resolved.
	Family Family `json:"family"`
	// Provider is the provider id within the family's known set.
	Provider string `json:"provider"`
	// Credential is an opaque API key. Required unless the provider is
	// registered as credential-free.
	Credential string `json:"credential,omitempty"`
	// Model overrides the provider's default model.
	Model string `json:"model,omitempty"`
	// Endpoint overrides the provider's default base URL. Used by local
	// backends (Ollama, faster-whisper sidecar) and API-compatible proxies.
	Endpoint string `json:"endpoint,omitempty"`
}

// HasProvider reports whether a provider id was supplied.
func (c Context) HasProvider() bool { return c.Provider != "" }
