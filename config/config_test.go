package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSettingsDefaults(t *testing.T) {
	var s Settings
	s.ApplyDefaults()

	if s.Name != "prepkit" {
		t.Errorf("unexpected name %q", s.Name)
	}
	if s.Environment != "development" || !s.Debug {
		t.Errorf("expected development defaults, got %q debug=%v", s.Environment, s.Debug)
	}
	if s.Logging.Level != "info" {
		t.Errorf("unexpected log level %q", s.Logging.Level)
	}
	if s.Storage.Provider != "local" {
		t.Errorf("unexpected storage provider %q", s.Storage.Provider)
	}
	if s.Providers.Ollama.URL != "http://localhost:11434" {
		t.Errorf("unexpected ollama url %q", s.Providers.Ollama.URL)
	}
	if s.Providers.Whisper.URL != "http://localhost:8387" {
		t.Errorf("unexpected whisper url %q", s.Providers.Whisper.URL)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSettingsValidateRejectsBadEnvironment(t *testing.T) {
	var s Settings
	s.ApplyDefaults()
	s.Environment = "qa"
	if err := s.Validate(); err == nil {
		t.Error("expected validation error for unknown environment")
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	yaml := `
name: prepkit
environment: production
storage:
  provider: s3
  bucket: recordings
  region: eu-west-1
providers:
  ollama:
    url: http://ollama.internal:11434
    model: llama3.1
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var s Settings
	if err := Load("prepkit", &s, WithConfigFile(cfgPath)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.ApplyDefaults()

	if s.Environment != "production" {
		t.Errorf("unexpected environment %q", s.Environment)
	}
	if s.Storage.Provider != "s3" || s.Storage.Bucket != "recordings" {
		t.Errorf("storage section not loaded: %+v", s.Storage)
	}
	if s.Providers.Ollama.URL != "http://ollama.internal:11434" {
		t.Errorf("providers section not loaded: %+v", s.Providers)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(cfgPath, []byte("storage:\n  bucket: from-file\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("STORAGE_BUCKET", "from-env")

	var s Settings
	if err := Load("prepkit", &s, WithConfigFile(cfgPath)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Storage.Bucket != "from-env" {
		t.Errorf("bucket = %q, want env override", s.Storage.Bucket)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("PROVIDERS_WHISPER_URL=http://sidecar:9000\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	var s Settings
	if err := Load("prepkit", &s, WithEnvFile(envPath)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Providers.Whisper.URL != "http://sidecar:9000" {
		t.Errorf("whisper url = %q, want value from .env", s.Providers.Whisper.URL)
	}
}

func TestKeyVariants(t *testing.T) {
	variants := keyVariants("STORAGE_ACCESS_KEY")
	want := map[string]bool{
		"storage_access_key": false,
		"storage.access.key": false,
		"storage.access_key": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for v, seen := range want {
		if !seen {
			t.Errorf("missing variant %q in %v", v, variants)
		}
	}
}
