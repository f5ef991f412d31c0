// Package openai implements generation.Provider using the OpenAI chat
// completions API.
package openai

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
	// ProviderName is the registered name for the OpenAI generation provider.
	ProviderName = "openai"

	serviceName    = "OpenAI API"
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 120 * time.Second
)

func init() {
	generation.Register(ProviderName, Factory())
}

// Config holds configuration for the OpenAI generation provider.
type Config struct {
	APIKey      string        `json:"api_key"`
	BaseURL     string        `json:"base_url"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Timeout     time.Duration `json:"timeout"`
}

// Provider implements generation.Provider using OpenAI's HTTP API.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new OpenAI generation provider.
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

// Factory returns a provider.Factory that creates OpenAI Provider instances
// from a per-call context.
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

// ValidateKey checks the credential against the models endpoint.
func (p *Provider) ValidateKey(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"/models", http.NoBody)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

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

// --- internal OpenAI API types ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *Provider) chat(ctx context.Context, system, user string) (string, error) {
	msgs := make([]chatMessage, 0, 2)
	if system != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: system})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: user})

	body, err := json.Marshal(chatRequest{
		Model:       p.cfg.Model,
		Messages:    msgs,
		Temperature: p.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", errors.FromTransport(ProviderName, serviceName, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Error on close is safe to ignore for read operations

	if resp.StatusCode != http.StatusOK {
		return "", errors.FromHTTPStatus(ProviderName, resp.StatusCode, vendorMessage(resp.Body))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", errors.MalformedResponse(ProviderName, err)
	}
	if len(chat.Choices) == 0 {
		return "", errors.ProviderFailure(ProviderName, "response contained no choices")
	}
	return chat.Choices[0].Message.Content, nil
}

func vendorMessage(r io.Reader) string {
	body, _ := io.ReadAll(r)
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Message != "" {
		return er.Error.Message
	}
	return string(body)
}
