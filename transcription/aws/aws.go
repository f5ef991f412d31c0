// Package aws registers the AWS Transcribe backend. The synchronous inline
// flow the other backends offer does not exist on AWS Transcribe, which only
// accepts jobs against media already in S3, so Transcribe currently reports
// the capability as unimplemented while keeping the provider selectable.
package aws

import (
	"context"

	"github.com/skillsenselab/prepkit/errors"
	"github.com/skillsenselab/prepkit/provider"
	"github.com/skillsenselab/prepkit/transcription"
)

// ProviderName is the registered name for the AWS transcription provider.
const ProviderName = "aws"

func init() {
	transcription.Register(ProviderName, Factory())
}

// Provider is a placeholder implementation of transcription.Provider for AWS
// Transcribe.
type Provider struct {
	credential string
}

// NewProvider creates a new AWS transcription provider.
func NewProvider(credential string) *Provider {
	return &Provider{credential: credential}
}

// Factory returns a provider.Factory that creates AWS Provider instances
// from a per-call context.
func Factory() provider.Factory[transcription.Provider] {
	return func(pctx provider.Context) (transcription.Provider, error) {
		return NewProvider(pctx.Credential), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// ValidateKey reports whether a credential was supplied. No live check is
// performed until the job-based flow lands.
func (p *Provider) ValidateKey(ctx context.Context) bool {
	return p.credential != ""
}

// Transcribe always fails with a typed provider error.
func (p *Provider) Transcribe(ctx context.Context, media []byte, mimeType string) (*transcription.Result, error) {
	return nil, errors.NotImplemented(ProviderName, "transcription")
}
