package stations

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"time"
)

const maxS2ErrPreview = 180

func trim(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

type S2DecodePCM struct{}

func NewS2DecodePCM() *S2DecodePCM { return &S2DecodePCM{} }

// Run decodes any container ffmpeg understands into 16 kHz mono s16le PCM.
// The model only accepts that format, whatever the client uploaded.
func (s *S2DecodePCM) Run(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()
	log.Printf("[S2][START] file=%s", path)

	cmd := exec.CommandContext(
		ctx,
		"ffmpeg",
		"-loglevel", "error",
		"-i", path,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "s16le",
		"pipe:1",
	)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			log.Printf("[S2][STDERR] %s", trim(stderr.String(), maxS2ErrPreview))
		}
		return nil, fmt.Errorf("[S2] ffmpeg decode: %w", err)
	}

	pcm := out.Bytes()
	if len(pcm) == 0 {
		log.Printf("[S2][EMPTY] dur=%s", time.Since(start))
		return nil, fmt.Errorf("[S2] ffmpeg produced no audio data")
	}

	log.Printf(
		"[S2][OK] bytes=%d approx_sec=%.1f dur=%s",
		len(pcm),
		float64(len(pcm))/2/16000,
		time.Since(start),
	)

	return pcm, nil
}
