// Package generation orchestrates AI question generation across multiple
// backends (OpenAI, Anthropic, Gemini, Ollama).
//
// The package defines the provider capability contract, a registry of
// backends resolvable from a per-call provider context, and the Service that
// drives the request/response cycle: request validation, prompt construction,
// provider dispatch, response sanitization, and entity resolution against the
// canonical taxonomy.
//
// # Backends
//
// Driver subpackages register themselves on import:
//
//	import (
//	    _ "github.com/skillsenselab/prepkit/generation/anthropic"
//	    _ "github.com/skillsenselab/prepkit/generation/gemini"
//	    _ "github.com/skillsenselab/prepkit/generation/ollama"
//	    _ "github.com/skillsenselab/prepkit/generation/openai"
//	)
//
// # Usage
//
//	svc := generation.NewService(store)
//	result, err := svc.Generate(ctx, req, pctx)
package generation
