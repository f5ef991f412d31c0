// Package transcription defines the speech-to-text provider family and its
// registry. Backends live in subpackages (openai, google, aws, local) and
// register themselves in init(), so importing a driver package is what makes
// it available:
//
//	import (
//	    "github.com/skillsenselab/prepkit/transcription"
//	    _ "github.com/skillsenselab/prepkit/transcription/local"
//	)
//
//	p, err := transcription.Resolve(provider.Context{
//	    Family:   provider.FamilyTranscription,
//	    Provider: "local",
//	})
//	result, err := p.Transcribe(ctx, media, "audio/webm")
//
// Providers receive raw media bytes plus a MIME type and return plain text
// with an optional confidence score. Anything beyond that (status tracking,
// storage, retries) belongs to the pipeline package.
package transcription
