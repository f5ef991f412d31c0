package config

import (
	"fmt"

	"github.com/skillsenselab/prepkit/logger"
	"github.com/skillsenselab/prepkit/storage"
	"github.com/skillsenselab/prepkit/version"
)

// EndpointConfig holds overrides for one locally hosted backend.
type EndpointConfig struct {
	// URL is the backend's base URL.
	URL string `yaml:"url" mapstructure:"url"`
	// Model overrides the backend's default model.
	Model string `yaml:"model" mapstructure:"model"`
}

// ProvidersConfig holds defaults for backends that need host-side
// configuration. Credentialed vendors take their key per call, so only the
// local backends appear here.
type ProvidersConfig struct {
	// Ollama configures the local question-generation backend.
	Ollama EndpointConfig `yaml:"ollama" mapstructure:"ollama"`
	// Whisper configures the local transcription sidecar.
	Whisper EndpointConfig `yaml:"whisper" mapstructure:"whisper"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *ProvidersConfig) ApplyDefaults() {
	if c.Ollama.URL == "" {
		c.Ollama.URL = "http://localhost:11434"
	}
	if c.Whisper.URL == "" {
		c.Whisper.URL = "http://localhost:8387"
	}
}

// Settings is the application configuration root.
type Settings struct {
	Name        string          `yaml:"name" mapstructure:"name"`
	Environment string          `yaml:"environment" mapstructure:"environment"`
	Version     string          `yaml:"version" mapstructure:"version"`
	Debug       bool            `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config   `yaml:"logging" mapstructure:"logging"`
	Storage     storage.Config  `yaml:"storage" mapstructure:"storage"`
	Providers   ProvidersConfig `yaml:"providers" mapstructure:"providers"`
}

// ApplyDefaults applies default values to all sections.
func (s *Settings) ApplyDefaults() {
	if s.Name == "" {
		s.Name = "prepkit"
	}
	if s.Environment == "" {
		s.Environment = "development"
	}
	if s.Version == "" {
		s.Version = version.Short()
	}
	if s.Environment == "development" {
		s.Debug = true
	}
	s.Logging.ApplyDefaults()
	s.Storage.ApplyDefaults()
	s.Providers.ApplyDefaults()
}

// Validate checks all sections for consistency.
func (s *Settings) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if s.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config: environment must be one of %v (got: %s)", validEnvs, s.Environment)
	}
	if err := s.Logging.Validate(); err != nil {
		return fmt.Errorf("config: logging: %w", err)
	}
	if err := s.Storage.Validate(); err != nil {
		return fmt.Errorf("config: storage: %w", err)
	}
	return nil
}
