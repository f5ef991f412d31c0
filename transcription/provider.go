package transcription

import (
	"context"

	"github.com/skillsenselab/prepkit/provider"
)

// Result is the normalized output of a transcription call.
type Result struct {
	// Text is the full transcript.
	Text string `json:"text"`
	// Confidence is the provider's confidence score in [0, 1], or 0 when the
	// backend does not report one.
	Confidence float64 `json:"confidence,omitempty"`
}

// Provider is the interface speech-to-text backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and ValidateKey()

	// Transcribe converts raw media bytes into text. mimeType describes the
	// media container (for example "audio/webm"); backends that need a file
	// extension derive it from the MIME type.
	Transcribe(ctx context.Context, media []byte, mimeType string) (*Result, error)
}

// registry holds the known transcription backends: openai, google, aws,
// local. Driver subpackages register themselves in init().
var registry = provider.NewRegistry[Provider](provider.FamilyTranscription)

// Register adds a transcription backend factory. Typically called from
// init() in driver packages.
func Register(name string, factory provider.Factory[Provider], opts ...provider.RegisterOption) {
	registry.Register(name, factory, opts...)
}

// Resolve constructs the backend selected by pctx, failing fast with a typed
// error on an unknown id or missing credential.
func Resolve(pctx provider.Context) (Provider, error) {
	return registry.Resolve(pctx)
}

// Providers returns the sorted ids of all registered backends.
func Providers() []string {
	return registry.List()
}

// ValidateCredential resolves the backend from pctx and checks its credential
// against the live service.
func ValidateCredential(ctx context.Context, pctx provider.Context) (bool, error) {
	p, err := Resolve(pctx)
	if err != nil {
		return false, err
	}
	return p.ValidateKey(ctx), nil
}
