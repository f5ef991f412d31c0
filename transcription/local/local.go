// Package local implements transcription.Provider against a faster-whisper
// HTTP sidecar. No credential is required.
package local

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/skillsenselab/prepkit/errors"
	"github.com/skillsenselab/prepkit/provider"
	"github.com/skillsenselab/prepkit/transcription"
)

const (
	// ProviderName is the registered name for the local transcription provider.
	ProviderName = "local"

	serviceName    = "local transcription"
	defaultBaseURL = "http://localhost:8387"
	defaultModel   = "base"
	defaultTimeout = 300 * time.Second
)

func init() {
	transcription.Register(ProviderName, Factory(), provider.CredentialFree())
}

// Config holds configuration for the local transcription provider.
type Config struct {
	BaseURL  string        `json:"base_url"`
	Model    string        `json:"model"`
	Language string        `json:"language,omitempty"`
	Timeout  time.Duration `json:"timeout"`
}

// Provider implements transcription.Provider using a faster-whisper sidecar.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new local transcription provider.
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

// Factory returns a provider.Factory that creates local Provider instances
// from a per-call context.
func Factory() provider.Factory[transcription.Provider] {
	return func(pctx provider.Context) (transcription.Provider, error) {
		return NewProvider(Config{
			BaseURL: pctx.Endpoint,
			Model:   pctx.Model,
		}), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// ValidateKey reports whether the sidecar is reachable. There is no
// credential to check, so the health endpoint stands in for validity.
func (p *Provider) ValidateKey(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"/health", http.NoBody)
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

// Transcribe uploads the media as a multipart form to the sidecar's
// transcribe endpoint.
func (p *Provider) Transcribe(ctx context.Context, media []byte, mimeType string) (*transcription.Result, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="audio"; filename="media"`)
	if mimeType != "" {
		h.Set("Content-Type", mimeType)
	}
	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("local: create form file: %w", err)
	}
	if _, err := part.Write(media); err != nil {
		return nil, fmt.Errorf("local: write media: %w", err)
	}
	_ = writer.WriteField("model", p.cfg.Model)
	if p.cfg.Language != "" {
		_ = writer.WriteField("language", p.cfg.Language)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("local: finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/transcribe", &buf)
	if err != nil {
		return nil, fmt.Errorf("local: create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.FromTransport(ProviderName, serviceName, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Error on close is safe to ignore for read operations

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, errors.FromHTTPStatus(ProviderName, resp.StatusCode, string(raw))
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.MalformedResponse(ProviderName, err)
	}
	return &transcription.Result{Text: out.Text}, nil
}
