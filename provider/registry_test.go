package provider

import (
	"context"
	"testing"

	"github.com/skillsenselab/prepkit/errors"
)

// --- test helpers ---

type stubProvider struct {
	name string
	pctx Context
}

func (s *stubProvider) Name() string                        { return s.name }
func (s *stubProvider) ValidateKey(_ context.Context) bool  { return true }

func stubFactory(name string) Factory[*stubProvider] {
	return func(pctx Context) (*stubProvider, error) {
		return &stubProvider{name: name, pctx: pctx}, nil
	}
}

func newTestRegistry() *Registry[*stubProvider] {
	reg := NewRegistry[*stubProvider](FamilyGeneration)
	reg.Register("openai", stubFactory("openai"))
	reg.Register("ollama", stubFactory("ollama"), CredentialFree())
	return reg
}

// --- tests ---

func TestResolveKnownProvider(t *testing.T) {
	reg := newTestRegistry()

	p, err := reg.Resolve(Context{
		Family:     FamilyGeneration,
		Provider:   "openai",
		Credential: "sk-test",
		Model:      "gpt-4o",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "openai" {
		t.Fatalf("expected openai, got %q", p.Name())
	}
	if p.pctx.Model != "gpt-4o" {
		t.Fatalf("expected model forwarded to factory, got %q", p.pctx.Model)
	}
}

func TestResolveUnknownProvider(t *testing.T) {
	reg := newTestRegistry()

	_, err := reg.Resolve(Context{Provider: "mistral", Credential: "key"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !errors.HasKind(err, errors.KindInvalidRequest) {
		t.Fatalf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestResolveMissingProviderID(t *testing.T) {
	reg := newTestRegistry()

	_, err := reg.Resolve(Context{})
	if !errors.HasKind(err, errors.KindInvalidRequest) {
		t.Fatalf("expected INVALID_REQUEST for missing provider id, got %v", err)
	}
}

func TestResolveMissingCredential(t *testing.T) {
	reg := newTestRegistry()

	_, err := reg.Resolve(Context{Provider: "openai"})
	if err == nil {
		t.Fatal("expected error for missing credential")
	}
	if !errors.HasKind(err, errors.KindInvalidAPIKey) {
		t.Fatalf("expected INVALID_API_KEY, got %v", err)
	}
}

func TestResolveCredentialFreeProvider(t *testing.T) {
	reg := newTestRegistry()

	p, err := reg.Resolve(Context{Provider: "ollama", Endpoint: "http://localhost:11434"})
	if err != nil {
		t.Fatalf("unexpected error for credential-free provider: %v", err)
	}
	if p.pctx.Endpoint != "http://localhost:11434" {
		t.Fatalf("expected endpoint forwarded, got %q", p.pctx.Endpoint)
	}
}

func TestKnownAndList(t *testing.T) {
	reg := newTestRegistry()

	if !reg.Known("openai") || reg.Known("mistral") {
		t.Fatal("Known() misreports registered providers")
	}

	got := reg.List()
	want := []string{"ollama", "openai"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected sorted list %v, got %v", want, got)
		}
	}
}
