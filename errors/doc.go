// Package errors provides unified error handling for the AI provider layer.
// It implements a structured error type with a machine-readable kind shared
// by both provider families (generation and transcription), the originating
// provider id, HTTP status mapping, and retryable detection.
package errors
