package pipeline

import "fmt"

// Status is the transcript lifecycle state stored on a Recording. The string
// values are wire-level and must round-trip exactly.
type Status string

const (
	// StatusNone means no transcription was configured for the recording.
	StatusNone Status = "NONE"
	// StatusPending means a job was accepted but the media is not yet in hand.
	StatusPending Status = "PENDING"
	// StatusProcessing means the media was downloaded and the provider call
	// is in flight.
	StatusProcessing Status = "PROCESSING"
	// StatusCompleted means a transcript was persisted.
	StatusCompleted Status = "COMPLETED"
	// StatusFailed means the job terminated without a transcript.
	StatusFailed Status = "FAILED"
)

// String returns the wire representation.
func (s Status) String() string { return string(s) }

// Terminal reports whether the status ends a job attempt.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ParseStatus converts a wire value back into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNone, StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return Status(s), nil
	}
	return "", fmt.Errorf("pipeline: unknown status %q", s)
}
