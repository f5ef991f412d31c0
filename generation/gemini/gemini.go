// Package gemini implements generation.Provider using the Google Gemini
// generateContent API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/skillsenselab/prepkit/errors"
	"github.com/skillsenselab/prepkit/generation"
	"github.com/skillsenselab/prepkit/provider"
)

const (
	// ProviderName is the registered name for the Gemini generation provider.
	ProviderName = "gemini"

	serviceName    = "Gemini API"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash"
	defaultTimeout = 120 * time.Second
)

func init() {
	generation.Register(ProviderName, Factory())
}

// Config holds configuration for the Gemini generation provider.
type Config struct {
	APIKey  string        `json:"api_key"`
	BaseURL string        `json:"base_url"`
	Model   string        `json:"model"`
	Timeout time.Duration `json:"timeout"`
}

// Provider implements generation.Provider using Gemini's HTTP API.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new Gemini generation provider.
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

// Factory returns a provider.Factory that creates Gemini Provider instances
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

// ValidateKey checks the credential against the model list endpoint.
func (p *Provider) ValidateKey(ctx context.Context) bool {
	endpoint := fmt.Sprintf("%s/models?key=%s", p.cfg.BaseURL, url.QueryEscape(p.cfg.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
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
	content, err := p.generate(ctx, prompt.System+generation.JSONInstruction, prompt.User)
	if err != nil {
		return nil, err
	}
	return generation.ParseQuestions(ProviderName, content)
}

// Complete sends a single free-form prompt and returns the raw text.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	return p.generate(ctx, "", prompt)
}

// --- internal Gemini API types ---

type generateRequest struct {
	SystemInstruction *contentBlock  `json:"systemInstruction,omitempty"`
	Contents          []contentBlock `json:"contents"`
}

type contentBlock struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content contentBlock `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *Provider) generate(ctx context.Context, system, user string) (string, error) {
	payload := generateRequest{
		Contents: []contentBlock{
			{Role: "user", Parts: []part{{Text: user}}},
		},
	}
	if system != "" {
		payload.SystemInstruction = &contentBlock{Parts: []part{{Text: system}}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		p.cfg.BaseURL, p.cfg.Model, url.QueryEscape(p.cfg.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", errors.FromTransport(ProviderName, serviceName, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Error on close is safe to ignore for read operations

	if resp.StatusCode != http.StatusOK {
		return "", errors.FromHTTPStatus(ProviderName, resp.StatusCode, vendorMessage(resp.Body))
	}

	var gen generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return "", errors.MalformedResponse(ProviderName, err)
	}
	if len(gen.Candidates) == 0 || len(gen.Candidates[0].Content.Parts) == 0 {
		return "", errors.ProviderFailure(ProviderName, "response contained no candidates")
	}
	return gen.Candidates[0].Content.Parts[0].Text, nil
}

func vendorMessage(r io.Reader) string {
	body, _ := io.ReadAll(r)
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Message != "" {
		return er.Error.Message
	}
	return string(body)
}
