package generation

import (
	"context"

	"github.com/skillsenselab/prepkit/provider"
)

// Provider is the interface question-generation backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and ValidateKey()

	// GenerateQuestions sends the assembled prompt and returns sanitized
	// question items. Adapters append their own respond-as-JSON instruction
	// since not every vendor enforces structured output.
	GenerateQuestions(ctx context.Context, p Prompt) ([]RawQuestion, error)

	// Complete sends a single free-form prompt and returns the raw text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// registry holds the known generation backends: openai, anthropic, gemini,
// ollama. Driver subpackages register themselves in init().
var registry = provider.NewRegistry[Provider](provider.FamilyGeneration)

// Register adds a generation backend factory. Typically called from init()
// in driver packages.
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
