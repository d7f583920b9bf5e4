package domain_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/kabscribe/internal/annex"
	"github.com/Vovarama1992/kabscribe/internal/domain"
	"github.com/Vovarama1992/kabscribe/internal/domain/stations"
	"github.com/Vovarama1992/kabscribe/internal/models"
	"github.com/Vovarama1992/kabscribe/internal/ports"
	"github.com/go-audio/wav"
	"go.uber.org/zap"
)

type fakeNormalizer struct {
	pcm []byte
	err error
}

func (f *fakeNormalizer) Run(ctx context.Context, path string) ([]byte, error) {
	return f.pcm, f.err
}

type fakeSTT struct {
	tr  *models.Transcript
	err error

	gotPath string
}

func (f *fakeSTT) Recognize(ctx context.Context, wavPath string) (*models.Transcript, error) {
	f.gotPath = wavPath
	return f.tr, f.err
}

func nopLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

// rampPCM returns valid 16 kHz mono s16le bytes.
func rampPCM(n int) []byte {
	pcm := make([]byte, n*2)
	for i := 0; i < n; i++ {
		pcm[i*2] = byte(i)
	}
	return pcm
}

func newService(stt *fakeSTT, norm *fakeNormalizer, tmpDir string) *domain.TranscribeService {
	var port ports.STTService
	if stt != nil {
		port = stt
	}
	corrector := annex.NewCorrector(annex.NewLexicon())
	return domain.NewTranscribeService(
		port,
		stations.NewS1StoreUpload(),
		norm,
		stations.NewS3PCMtoWAV(),
		stations.NewS5Annex(corrector),
		tmpDir,
		nopLogger(),
	)
}

func countEntries(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	return len(entries)
}

func TestProcessModelUnavailable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := newService(nil, &fakeNormalizer{}, dir)

	_, err := svc.Process(context.Background(), strings.NewReader("x"), "a.ogg", 1)
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("err=%v, want ErrServiceUnavailable", err)
	}
	if n := countEntries(t, dir); n != 0 {
		t.Fatalf("%d temp files created before the short-circuit, want 0", n)
	}
}

func TestProcessInvalidInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := newService(&fakeSTT{}, &fakeNormalizer{}, dir)

	if _, err := svc.Process(context.Background(), strings.NewReader("x"), "", 1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("empty filename: err=%v, want ErrInvalidInput", err)
	}
	if _, err := svc.Process(context.Background(), strings.NewReader(""), "a.ogg", 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("empty payload: err=%v, want ErrInvalidInput", err)
	}
	if n := countEntries(t, dir); n != 0 {
		t.Fatalf("%d temp files created for invalid input, want 0", n)
	}
}

func TestProcessNormalizeFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := newService(&fakeSTT{}, &fakeNormalizer{err: errors.New("boom")}, dir)

	_, err := svc.Process(context.Background(), strings.NewReader("x"), "a.ogg", 1)
	if !errors.Is(err, domain.ErrAudioProcessing) {
		t.Fatalf("err=%v, want ErrAudioProcessing", err)
	}
	if n := countEntries(t, dir); n != 0 {
		t.Fatalf("%d temp files left after normalize failure, want 0", n)
	}
}

func TestProcessTranscriptionFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stt := &fakeSTT{err: errors.New("model exploded")}
	svc := newService(stt, &fakeNormalizer{pcm: rampPCM(1600)}, dir)

	_, err := svc.Process(context.Background(), strings.NewReader("x"), "a.ogg", 1)
	if !errors.Is(err, domain.ErrTranscription) {
		t.Fatalf("err=%v, want ErrTranscription", err)
	}
	if n := countEntries(t, dir); n != 0 {
		t.Fatalf("%d temp files left after transcription failure, want 0", n)
	}
}

func TestProcessEmptyResult(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := newService(&fakeSTT{tr: nil}, &fakeNormalizer{pcm: rampPCM(1600)}, dir)

	_, err := svc.Process(context.Background(), strings.NewReader("x"), "a.ogg", 1)
	if !errors.Is(err, domain.ErrEmptyResult) {
		t.Fatalf("err=%v, want ErrEmptyResult", err)
	}
	if n := countEntries(t, dir); n != 0 {
		t.Fatalf("%d temp files left after empty result, want 0", n)
	}
}

func TestProcessSuccess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stt := &fakeSTT{tr: &models.Transcript{Text: "Axxam  INES"}}
	svc := newService(stt, &fakeNormalizer{pcm: rampPCM(1600)}, dir)

	got, err := svc.Process(context.Background(), strings.NewReader("payload"), "a.ogg", 7)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got != "axxam-ines" {
		t.Errorf("Process=%q, want %q", got, "axxam-ines")
	}
	if n := countEntries(t, dir); n != 0 {
		t.Fatalf("%d temp files left after success, want 0", n)
	}

	select {
	case ev := <-svc.Events():
		if ev.Text != "axxam-ines" || ev.Filename != "a.ogg" || ev.RequestID == "" {
			t.Errorf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event emitted for a completed transcription")
	}
}

// The model must receive a real WAV file holding the normalized PCM.
func TestProcessPassesValidWAVToModel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stt := &fakeSTT{}
	stt.tr = &models.Transcript{Text: "azul"}

	pcm := rampPCM(3200)
	var sawSamples int
	probe := &probeSTT{inner: stt, onRecognize: func(path string) {
		f, err := os.Open(path)
		if err != nil {
			t.Errorf("open normalized wav: %v", err)
			return
		}
		defer f.Close()
		buf, err := wav.NewDecoder(f).FullPCMBuffer()
		if err != nil {
			t.Errorf("decode normalized wav: %v", err)
			return
		}
		sawSamples = len(buf.Data)
	}}

	corrector := annex.NewCorrector(annex.NewLexicon())
	svc := domain.NewTranscribeService(
		probe,
		stations.NewS1StoreUpload(),
		&fakeNormalizer{pcm: pcm},
		stations.NewS3PCMtoWAV(),
		stations.NewS5Annex(corrector),
		dir,
		nopLogger(),
	)

	if _, err := svc.Process(context.Background(), strings.NewReader("x"), "a.ogg", 1); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if sawSamples != 3200 {
		t.Errorf("model saw %d samples, want 3200", sawSamples)
	}
}

type probeSTT struct {
	inner       *fakeSTT
	onRecognize func(path string)
}

func (p *probeSTT) Recognize(ctx context.Context, wavPath string) (*models.Transcript, error) {
	if p.onRecognize != nil {
		p.onRecognize(wavPath)
	}
	return p.inner.Recognize(ctx, wavPath)
}
