package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skillsenselab/prepkit/errors"
)

func TestTranscribeJoinsResults(t *testing.T) {
	var gotReq recognizeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/speech:recognize" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("unexpected key %q", r.URL.Query().Get("key"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"results":[
			{"alternatives":[{"transcript":"my biggest challenge","confidence":0.91}]},
			{"alternatives":[{"transcript":"was scaling the team","confidence":0.87}]}
		]}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{APIKey: "test-key", BaseURL: srv.URL})
	result, err := p.Transcribe(context.Background(), []byte("pcm-bytes"), "audio/wav")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if result.Text != "my biggest challenge was scaling the team" {
		t.Errorf("unexpected transcript %q", result.Text)
	}
	if result.Confidence != 0.91 {
		t.Errorf("unexpected confidence %v", result.Confidence)
	}
	if gotReq.Config.Encoding != "LINEAR16" {
		t.Errorf("unexpected encoding %q", gotReq.Config.Encoding)
	}
	wantContent := base64.StdEncoding.EncodeToString([]byte("pcm-bytes"))
	if gotReq.Audio.Content != wantContent {
		t.Error("media was not base64-encoded inline")
	}
}

func TestTranscribeMapsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{APIKey: "bad", BaseURL: srv.URL})
	_, err := p.Transcribe(context.Background(), []byte("x"), "audio/webm")
	if !errors.HasKind(err, errors.KindInvalidAPIKey) {
		t.Fatalf("expected invalid API key error, got %v", err)
	}
}

func TestEncodingFor(t *testing.T) {
	cases := map[string]string{
		"audio/webm": "WEBM_OPUS",
		"audio/wav":  "LINEAR16",
		"audio/flac": "FLAC",
		"audio/mpeg": "MP3",
		"video/mp4":  "",
	}
	for mime, want := range cases {
		if got := encodingFor(mime); got != want {
			t.Errorf("encodingFor(%q) = %q, want %q", mime, got, want)
		}
	}
}
