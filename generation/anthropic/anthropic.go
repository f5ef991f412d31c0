// Package anthropic implements generation.Provider using the Anthropic
// messages API.
package anthropic

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
	// ProviderName is the registered name for the Anthropic generation provider.
	ProviderName = "anthropic"

	serviceName    = "Anthropic API"
	defaultBaseURL = "https://api.anthropic.com"
	defaultModel   = "claude-3-5-haiku-latest"
	defaultTimeout = 120 * time.Second
	apiVersion     = "2023-06-01"
	maxTokens      = 4096
)

func init() {
	generation.Register(ProviderName, Factory())
}

// Config holds configuration for the Anthropic generation provider.
type Config struct {
	APIKey  string        `json:"api_key"`
	BaseURL string        `json:"base_url"`
	Model   string        `json:"model"`
	Timeout time.Duration `json:"timeout"`
}

// Provider implements generation.Provider using Anthropic's HTTP API.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new Anthropic generation provider.
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

// Factory returns a provider.Factory that creates Anthropic Provider
// instances from a per-call context.
func Factory() provider.Factory[generation.Provider] {
	return func(pctx provider.Context) (generation.Provider, error) {
		return NewProvider(Config{
			APIKey:  pctx.Credential,
			BaseURL: pctx.Endpoint,
			Model:   pctx.Model,
		}), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// ValidateKey probes the messages endpoint with a minimal request. Anthropic
// has no lightweight list endpoint, so a 401/403 on a tiny message is the
// cheapest signal available.
func (p *Provider) ValidateKey(ctx context.Context) bool {
	_, err := p.message(ctx, "", "ping")
	if err == nil {
		return true
	}
	return !errors.HasKind(err, errors.KindInvalidAPIKey)
}

// GenerateQuestions sends the assembled prompt and parses the response into
// question items.
func (p *Provider) GenerateQuestions(ctx context.Context, prompt generation.Prompt) ([]generation.RawQuestion, error) {
	content, err := p.message(ctx, prompt.System+generation.JSONInstruction, prompt.User)
	if err != nil {
		return nil, err
	}
	return generation.ParseQuestions(ProviderName, content)
}

// Complete sends a single free-form prompt and returns the raw text.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	return p.message(ctx, "", prompt)
}

// --- internal Anthropic API types ---

type messageRequest struct {
	Model     string           `json:"model"`
	MaxTokens int              `json:"max_tokens"`
	System    string           `json:"system,omitempty"`
	Messages  []messageContent `json:"messages"`
}

type messageContent struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *Provider) message(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(messageRequest{
		Model:     p.cfg.Model,
		MaxTokens: maxTokens,
		System:    system,
		Messages: []messageContent{
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("anthropic: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", errors.FromTransport(ProviderName, serviceName, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Error on close is safe to ignore for read operations

	if resp.StatusCode != http.StatusOK {
		return "", errors.FromHTTPStatus(ProviderName, resp.StatusCode, vendorMessage(resp.Body))
	}

	var msg messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return "", errors.MalformedResponse(ProviderName, err)
	}
	if len(msg.Content) == 0 {
		return "", errors.ProviderFailure(ProviderName, "response contained no content blocks")
	}
	return msg.Content[0].Text, nil
}

func vendorMessage(r io.Reader) string {
	body, _ := io.ReadAll(r)
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Message != "" {
		return er.Error.Message
	}
	return string(body)
}
