// Package pipeline runs the asynchronous transcription job for recordings.
// A job is fire-and-forget: the call site that creates a recording never
// waits on it and never observes its failure directly. All outcomes are
// written back to the recording's transcript status.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/skillsenselab/prepkit/logger"
	"github.com/skillsenselab/prepkit/provider"
	"github.com/skillsenselab/prepkit/storage"
	"github.com/skillsenselab/prepkit/transcription"
)

// Recording is the subset of the recording entity the pipeline reads and
// writes. The status and transcript fields are owned by this package; the
// rest belongs to the CRUD layer.
type Recording struct {
	ID       string `json:"id"`
	MediaKey string `json:"mediaKey"`
	// Format is the recording's native container MIME type, used when the
	// media key's extension is not in the lookup table.
	Format           string `json:"format"`
	TranscriptStatus Status `json:"transcriptStatus"`
	Transcript       string `json:"transcript,omitempty"`
	// TranscriptionContext is the provider selection stored at creation
	// time so an explicit retry can re-run the job without the caller
	// resupplying it.
	TranscriptionContext provider.Context `json:"transcriptionContext,omitempty"`
}

// RecordingStore is the persistence collaborator. Implementations are
// expected to overwrite status idempotently; the pipeline never reads it
// back mid-job.
type RecordingStore interface {
	GetRecording(ctx context.Context, id string) (*Recording, error)
	SetStatus(ctx context.Context, id string, status Status) error
	SetTranscript(ctx context.Context, id string, text string, completedAt time.Time) error
}

// Processor runs transcription jobs. Each job is an independent goroutine;
// there is no queue, no concurrency cap and no cancellation beyond the HTTP
// client timeouts underneath the providers.
type Processor struct {
	store   RecordingStore
	objects storage.ByteClient
	resolve func(provider.Context) (transcription.Provider, error)
	now     func() time.Time
	log     *logger.Logger
	metrics *provider.Metrics
}

// Option configures a Processor.
type Option func(*Processor)

// WithResolver overrides transcription provider resolution.
func WithResolver(resolve func(provider.Context) (transcription.Provider, error)) Option {
	return func(p *Processor) {
		p.resolve = resolve
	}
}

// WithClock overrides the completion timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		p.now = now
	}
}

// WithMetrics attaches provider call metrics.
func WithMetrics(m *provider.Metrics) Option {
	return func(p *Processor) {
		p.metrics = m
	}
}

// NewProcessor creates a transcription job processor.
func NewProcessor(store RecordingStore, objects storage.ByteClient, opts ...Option) *Processor {
	p := &Processor{
		store:   store,
		objects: objects,
		resolve: transcription.Resolve,
		now:     time.Now,
		log:     logger.Get("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process starts a transcription job for the recording and returns
// immediately. Errors and panics inside the job are contained: they set the
// recording to FAILED and are logged, never re-thrown.
func (p *Processor) Process(recordingID, mediaKey string, pctx provider.Context) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.log.Error("transcription job panicked", logger.Fields(
					logger.FieldRecordingID, recordingID,
					logger.FieldError, fmt.Sprint(r),
				))
				p.setStatus(context.Background(), recordingID, StatusFailed)
			}
		}()
		p.run(context.Background(), recordingID, mediaKey, pctx)
	}()
}

// Retry re-runs the pipeline for a recording using its stored transcription
// context and media key. It works from any prior state, including NONE for
// recordings created before transcription was configured. Only the recording
// lookup is synchronous; the job itself is dispatched fire-and-forget.
func (p *Processor) Retry(ctx context.Context, recordingID string) error {
	rec, err := p.store.GetRecording(ctx, recordingID)
	if err != nil {
		return fmt.Errorf("pipeline: load recording %s: %w", recordingID, err)
	}
	p.Process(rec.ID, rec.MediaKey, rec.TranscriptionContext)
	return nil
}

// run is the synchronous job core. Status progression within one attempt is
// monotonic: PENDING, PROCESSING, then COMPLETED or FAILED.
func (p *Processor) run(ctx context.Context, recordingID, mediaKey string, pctx provider.Context) {
	log := p.log.WithFields(logger.Fields(
		logger.FieldRecordingID, recordingID,
		logger.FieldMediaKey, mediaKey,
		logger.FieldProvider, pctx.Provider,
	))

	if !pctx.HasProvider() {
		p.setStatus(ctx, recordingID, StatusNone)
		log.Debug("no transcription provider configured, skipping")
		return
	}

	p.setStatus(ctx, recordingID, StatusPending)

	media, err := p.objects.Download(ctx, mediaKey)
	if err != nil {
		log.Error("media download failed", logger.ErrorFields("download", err))
		p.setStatus(ctx, recordingID, StatusFailed)
		return
	}

	p.setStatus(ctx, recordingID, StatusProcessing)

	rec, err := p.store.GetRecording(ctx, recordingID)
	if err != nil {
		log.Error("recording lookup failed", logger.ErrorFields("lookup", err))
		p.setStatus(ctx, recordingID, StatusFailed)
		return
	}
	mimeType := MIMEForKey(mediaKey, rec.Format)

	backend, err := p.resolve(pctx)
	if err != nil {
		log.Error("provider resolution failed", logger.ErrorFields("resolve", err))
		p.setStatus(ctx, recordingID, StatusFailed)
		return
	}

	transcribe := provider.Chain(
		provider.WithLogging[[]byte, *transcription.Result](log, provider.FamilyTranscription, pctx.Provider, "transcribe"),
		provider.WithMetrics[[]byte, *transcription.Result](p.metrics, provider.FamilyTranscription, pctx.Provider, "transcribe"),
	)(func(ctx context.Context, media []byte) (*transcription.Result, error) {
		return backend.Transcribe(ctx, media, mimeType)
	})

	result, err := transcribe(ctx, media)
	if err != nil {
		p.setStatus(ctx, recordingID, StatusFailed)
		return
	}

	if err := p.store.SetTranscript(ctx, recordingID, result.Text, p.now()); err != nil {
		log.Error("transcript persistence failed", logger.ErrorFields("persist", err))
		p.setStatus(ctx, recordingID, StatusFailed)
		return
	}
	p.setStatus(ctx, recordingID, StatusCompleted)
	log.Info("transcription completed", logger.Fields(
		logger.FieldCount, len(result.Text),
	))
}

// setStatus writes a status transition, logging rather than propagating
// persistence failures. The job has no caller to report to.
func (p *Processor) setStatus(ctx context.Context, recordingID string, status Status) {
	if err := p.store.SetStatus(ctx, recordingID, status); err != nil {
		p.log.Error("status update failed", logger.Fields(
			logger.FieldRecordingID, recordingID,
			logger.FieldStatus, status.String(),
			logger.FieldError, err.Error(),
		))
	}
}
