// Package config loads and validates application settings.
//
// It uses Viper to merge a YAML config file with environment variables and
// godotenv to pick up .env files, so local development and deployed
// environments share one code path.
//
// # Usage
//
//	var s config.Settings
//	if err := config.Load("prepkit", &s); err != nil { ... }
//	s.ApplyDefaults()
//	if err := s.Validate(); err != nil { ... }
//
// Environment variables override file values using underscore-separated
// paths (e.g. STORAGE_BUCKET, PROVIDERS_OLLAMA_URL).
package config
