package ports

import (
	"context"
	"io"
)

type TranscriptEvent struct {
	RequestID string
	Filename  string
	Text      string
}

// TranscribeProcessor runs one uploaded audio payload through the pipeline
// and returns the corrected transcription. Events carries every completed
// transcription for live listeners.
type TranscribeProcessor interface {
	Process(ctx context.Context, audio io.Reader, filename string, size int64) (string, error)
	Events() <-chan TranscriptEvent
}
