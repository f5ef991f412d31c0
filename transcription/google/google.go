// Package google implements transcription.Provider using the Google Cloud
// Speech-to-Text recognize REST API with API-key authentication.
package google

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skillsenselab/prepkit/errors"
	"github.com/skillsenselab/prepkit/provider"
	"github.com/skillsenselab/prepkit/transcription"
)

const (
	// ProviderName is the registered name for the Google transcription provider.
	ProviderName = "google"

	serviceName    = "Google Speech-to-Text API"
	defaultBaseURL = "https://speech.googleapis.com/v1"
	defaultTimeout = 300 * time.Second
	languageCode   = "en-US"
)

func init() {
	transcription.Register(ProviderName, Factory())
}

// Config holds configuration for the Google transcription provider.
type Config struct {
	APIKey  string        `json:"api_key"`
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"`
}

// Provider implements transcription.Provider using Google's HTTP API.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new Google transcription provider.
func NewProvider(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
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

// Factory returns a provider.Factory that creates Google Provider instances
// from a per-call context.
func Factory() provider.Factory[transcription.Provider] {
	return func(pctx provider.Context) (transcription.Provider, error) {
		return NewProvider(Config{
			APIKey:  pctx.Credential,
			BaseURL: pctx.Endpoint,
		}), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// ValidateKey probes the recognize endpoint with an empty request. The API
// rejects a bad key before it validates the payload, so any response other
// than 401/403 means the key was accepted.
func (p *Provider) ValidateKey(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.recognizeURL(), strings.NewReader("{}"))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden
}

// Transcribe sends the media inline (base64) to the recognize endpoint and
// joins the returned alternatives into a single transcript.
func (p *Provider) Transcribe(ctx context.Context, media []byte, mimeType string) (*transcription.Result, error) {
	payload := recognizeRequest{
		Config: recognizeConfig{
			Encoding:     encodingFor(mimeType),
			LanguageCode: languageCode,
		},
		Audio: recognizeAudio{
			Content: base64.StdEncoding.EncodeToString(media),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("google: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.recognizeURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("google: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.FromTransport(ProviderName, serviceName, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Error on close is safe to ignore for read operations

	if resp.StatusCode != http.StatusOK {
		return nil, errors.FromHTTPStatus(ProviderName, resp.StatusCode, vendorMessage(resp.Body))
	}

	var rec recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, errors.MalformedResponse(ProviderName, err)
	}

	var parts []string
	var confidence float64
	for _, result := range rec.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		alt := result.Alternatives[0]
		parts = append(parts, alt.Transcript)
		if alt.Confidence > confidence {
			confidence = alt.Confidence
		}
	}
	return &transcription.Result{
		Text:       strings.Join(parts, " "),
		Confidence: confidence,
	}, nil
}

func (p *Provider) recognizeURL() string {
	return fmt.Sprintf("%s/speech:recognize?key=%s", p.cfg.BaseURL, url.QueryEscape(p.cfg.APIKey))
}

// encodingFor maps a media MIME type onto the API's encoding enum. Containers
// the enum does not cover are sent unset, letting the service sniff the
// header.
func encodingFor(mimeType string) string {
	switch mimeType {
	case "audio/webm", "video/webm", "audio/ogg":
		return "WEBM_OPUS"
	case "audio/wav", "audio/x-wav":
		return "LINEAR16"
	case "audio/flac":
		return "FLAC"
	case "audio/mpeg", "audio/mp3":
		return "MP3"
	default:
		return ""
	}
}

// --- internal Speech-to-Text API types ---

type recognizeRequest struct {
	Config recognizeConfig `json:"config"`
	Audio  recognizeAudio  `json:"audio"`
}

type recognizeConfig struct {
	Encoding     string `json:"encoding,omitempty"`
	LanguageCode string `json:"languageCode"`
}

type recognizeAudio struct {
	Content string `json:"content"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
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
