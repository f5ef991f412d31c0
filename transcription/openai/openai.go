// Package openai implements transcription.Provider using the OpenAI Whisper
// audio transcriptions API.
package openai

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
	// ProviderName is the registered name for the OpenAI transcription provider.
	ProviderName = "openai"

	serviceName    = "OpenAI API"
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "whisper-1"
	defaultTimeout = 300 * time.Second
)

func init() {
	transcription.Register(ProviderName, Factory())
}

// Config holds configuration for the OpenAI transcription provider.
type Config struct {
	APIKey  string        `json:"api_key"`
	BaseURL string        `json:"base_url"`
	Model   string        `json:"model"`
	Timeout time.Duration `json:"timeout"`
}

// Provider implements transcription.Provider using OpenAI's HTTP API.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new OpenAI transcription provider.
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
func Factory() provider.Factory[transcription.Provider] {
	return func(pctx provider.Context) (transcription.Provider, error) {
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

// Transcribe uploads the media as a multipart form and returns the
// transcript text.
func (p *Provider) Transcribe(ctx context.Context, media []byte, mimeType string) (*transcription.Result, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := createMediaPart(writer, mimeType)
	if err != nil {
		return nil, fmt.Errorf("openai: create form file: %w", err)
	}
	if _, err := part.Write(media); err != nil {
		return nil, fmt.Errorf("openai: write media: %w", err)
	}
	_ = writer.WriteField("model", p.cfg.Model)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("openai: finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.FromTransport(ProviderName, serviceName, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Error on close is safe to ignore for read operations

	if resp.StatusCode != http.StatusOK {
		return nil, errors.FromHTTPStatus(ProviderName, resp.StatusCode, vendorMessage(resp.Body))
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.MalformedResponse(ProviderName, err)
	}
	return &transcription.Result{Text: out.Text}, nil
}

// createMediaPart attaches the media with a filename whose extension matches
// the MIME type. Whisper rejects uploads whose extension it does not
// recognize, so the filename matters more than the part's content type.
func createMediaPart(writer *multipart.Writer, mimeType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="media%s"`, extensionFor(mimeType)))
	if mimeType != "" {
		h.Set("Content-Type", mimeType)
	}
	return writer.CreatePart(h)
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "audio/webm", "video/webm":
		return ".webm"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/mp4", "video/mp4":
		return ".mp4"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/ogg":
		return ".ogg"
	case "audio/flac":
		return ".flac"
	case "audio/mp4a-latm", "audio/m4a":
		return ".m4a"
	default:
		return ".webm"
	}
}

func vendorMessage(r io.Reader) string {
	body, _ := io.ReadAll(r)
	var er struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Message != "" {
		return er.Error.Message
	}
	return string(body)
}
