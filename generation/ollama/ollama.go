// Package ollama implements generation.Provider against a locally running
// Ollama server. No credential is required.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/skillsenselab/prepkit/errors"
	"github.com/skillsenselab/prepkit/generation"
	"github.com/skillsenselab/prepkit/provider"
)

const (
	// ProviderName is the registered name for the Ollama generation provider.
	ProviderName = "ollama"

	serviceName    = "Ollama"
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3.1"
	defaultTimeout = 300 * time.Second
)

func init() {
	generation.Register(ProviderName, Factory(), provider.CredentialFree())
}

// Config holds configuration for the Ollama generation provider.
type Config struct {
	BaseURL string        `json:"base_url"`
	Model   string        `json:"model"`
	Timeout time.Duration `json:"timeout"`
}

// Provider implements generation.Provider using a local Ollama server.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new Ollama generation provider.
func NewProvider(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Provider{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Factory returns a provider.Factory that creates Ollama Provider instances
// from a per-call context.
func Factory() provider.Factory[generation.Provider] {
	return func(pctx provider.Context) (generation.Provider, error) {
		return NewProvider(Config{
			BaseURL: pctx.Endpoint,
			Model:   pctx.Model,
		}), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// ValidateKey reports whether the Ollama server is reachable. There is no
// credential to check, so reachability stands in for validity.
func (p *Provider) ValidateKey(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"/api/tags", http.NoBody)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// GenerateQuestions sends the assembled prompt and parses the response into
// question items.
func (p *Provider) GenerateQuestions(ctx context.Context, prompt generation.Prompt) ([]generation.RawQuestion, error) {
	content, err := p.chat(ctx, prompt.System+generation.JSONInstruction, prompt.User)
	if err != nil {
		return nil, err
	}
	return generation.ParseQuestions(ProviderName, content)
}

// Complete sends a single free-form prompt and returns the raw text.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	return p.chat(ctx, "", prompt)
}

// --- internal Ollama API types ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

func (p *Provider) chat(ctx context.Context, system, user string) (string, error) {
	msgs := make([]chatMessage, 0, 2)
	if system != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: system})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: user})

	body, err := json.Marshal(chatRequest{
		Model:    p.cfg.Model,
		Messages: msgs,
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("ollama: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ollama: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", errors.FromTransport(ProviderName, serviceName, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Error on close is safe to ignore for read operations

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", errors.FromHTTPStatus(ProviderName, resp.StatusCode, string(raw))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", errors.MalformedResponse(ProviderName, err)
	}
	return chat.Message.Content, nil
}
