package domain

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/kabscribe/internal/domain/stations"
	"github.com/Vovarama1992/kabscribe/internal/ports"
	"github.com/Vovarama1992/kabscribe/internal/tmpfile"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

var _ ports.TranscribeProcessor = (*TranscribeService)(nil)

// TranscribeService runs the request pipeline:
//
//	store upload → decode/resample → wrap in WAV → recognize → annex-correct
//
// Each request is handled synchronously on its caller's goroutine and keeps
// no state past the return. The only process-wide shared state is the
// recognition model behind the STT port; a nil port means the model failed to
// load at startup and every request short-circuits before acquiring anything.
type TranscribeService struct {
	stt ports.STTService

	s1   *stations.S1StoreUpload
	norm ports.AudioNormalizer
	s3   *stations.S3PCMtoWAV
	s4   *stations.S4WAVtoText
	s5   *stations.S5Annex

	tmpDir string
	log    *logger.ZapLogger
	events chan ports.TranscriptEvent
}

func NewTranscribeService(
	stt ports.STTService,
	s1 *stations.S1StoreUpload,
	norm ports.AudioNormalizer,
	s3 *stations.S3PCMtoWAV,
	s5 *stations.S5Annex,
	tmpDir string,
	log *logger.ZapLogger,
) *TranscribeService {
	return &TranscribeService{
		stt:    stt,
		s1:     s1,
		norm:   norm,
		s3:     s3,
		s4:     stations.NewS4WAVtoText(stt),
		s5:     s5,
		tmpDir: tmpDir,
		log:    log,
		events: make(chan ports.TranscriptEvent, 100),
	}
}

func (t *TranscribeService) Events() <-chan ports.TranscriptEvent { return t.events }

// Process runs one request through the pipeline and returns the corrected
// transcription. Both scoped temp files are released before it returns no
// matter which stage failed; a release problem is logged and never replaces
// the pipeline's own result.
func (t *TranscribeService) Process(
	ctx context.Context,
	audio io.Reader,
	filename string,
	size int64,
) (string, error) {

	if t.stt == nil {
		return "", ErrServiceUnavailable
	}
	if audio == nil || strings.TrimSpace(filename) == "" || size <= 0 {
		return "", fmt.Errorf("%w: empty payload or filename", ErrInvalidInput)
	}

	reqID := uuid.NewString()
	start := time.Now()

	var scoped []*tmpfile.Scoped
	defer func() {
		var errs error
		for _, f := range scoped {
			errs = multierr.Append(errs, f.Release())
		}
		if errs != nil {
			t.log.Log(logger.LogEntry{
				Level:   "warn",
				Message: "temp file release failed",
				Error:   errs,
				Fields:  map[string]any{"requestID": reqID},
			})
		}
	}()

	// STORED
	upload, err := tmpfile.New(t.tmpDir, "upload-"+reqID+"-*"+filepath.Ext(filename))
	if err != nil {
		return "", fmt.Errorf("create upload temp file: %w", err)
	}
	scoped = append(scoped, upload)

	if _, err := t.s1.Run(audio, upload.Path()); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	// NORMALIZED
	pcm, err := t.norm.Run(ctx, upload.Path())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAudioProcessing, err)
	}

	normalized, err := tmpfile.New(t.tmpDir, "norm-"+reqID+"-*.wav")
	if err != nil {
		return "", fmt.Errorf("create normalized temp file: %w", err)
	}
	scoped = append(scoped, normalized)

	if err := t.s3.Run(pcm, normalized.Path()); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAudioProcessing, err)
	}

	// TRANSCRIBED
	tr, err := t.s4.Run(ctx, normalized.Path())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	if tr == nil {
		return "", ErrEmptyResult
	}

	// CORRECTED
	corrected := t.s5.Run(tr.Text)

	t.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "transcription done",
		Fields: map[string]any{
			"requestID": reqID,
			"filename":  filename,
			"chars":     len(corrected),
			"duration":  time.Since(start).String(),
		},
	})

	select {
	case t.events <- ports.TranscriptEvent{RequestID: reqID, Filename: filename, Text: corrected}:
	default:
		// the feed is best effort; a full buffer must not stall the request
	}

	return corrected, nil
}
