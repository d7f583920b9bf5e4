package infra

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Vovarama1992/kabscribe/internal/models"
	"github.com/Vovarama1992/kabscribe/internal/ports"
	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/go-audio/wav"
)

var _ ports.STTService = (*WhisperSTT)(nil)

// WhisperSTT runs a local whisper.cpp model loaded once at process start and
// shared by all requests. Context creation and inference against the single
// model handle are serialized with a mutex: the binding does not document
// reentrancy, and the pipeline must not assume it.
type WhisperSTT struct {
	model    whisperlib.Model
	language string

	mu sync.Mutex
}

// NewWhisperSTT loads the model from modelPath. language is the code passed
// to whisper for decoding (e.g. "kab").
func NewWhisperSTT(modelPath, language string) (*WhisperSTT, error) {
	if modelPath == "" {
		return nil, fmt.Errorf("whisper model path is empty")
	}

	model, err := whisperlib.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load whisper model %q: %w", modelPath, err)
	}

	return &WhisperSTT{model: model, language: language}, nil
}

// Close releases the model handle.
func (s *WhisperSTT) Close() error {
	if s.model != nil {
		return s.model.Close()
	}
	return nil
}

// Recognize transcribes the 16 kHz mono WAV file at wavPath. A nil transcript
// with a nil error means whisper answered but produced no usable text object.
func (s *WhisperSTT) Recognize(ctx context.Context, wavPath string) (*models.Transcript, error) {
	samples, err := readWAVSamples(wavPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wctx, err := s.model.NewContext()
	if err != nil {
		return nil, fmt.Errorf("whisper context: %w", err)
	}
	if s.language != "" {
		_ = wctx.SetLanguage(s.language)
	}

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return nil, fmt.Errorf("whisper process: %w", err)
	}

	var b strings.Builder
	for {
		seg, err := wctx.NextSegment()
		if err != nil {
			break
		}
		b.WriteString(seg.Text)
		if !strings.HasSuffix(seg.Text, " ") {
			b.WriteByte(' ')
		}
	}

	return &models.Transcript{Text: strings.TrimSpace(b.String())}, nil
}

// readWAVSamples decodes a WAV file into the normalized float32 samples
// whisper.cpp expects.
func readWAVSamples(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}

	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / 32768
	}
	return samples, nil
}
