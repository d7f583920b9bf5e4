package stations

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	sampleRate    = 16000
	channels      = 1
	bitsPerSample = 16
)

type S3PCMtoWAV struct{}

func NewS3PCMtoWAV() *S3PCMtoWAV { return &S3PCMtoWAV{} }

// Run wraps raw 16 kHz mono s16le PCM in a WAV container written to path.
func (s *S3PCMtoWAV) Run(pcm []byte, path string) error {
	log.Printf("[S3][START] pcm_bytes=%d", len(pcm))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("[S3] create wav: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, bitsPerSample, channels, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(pcm)/2),
		SourceBitDepth: bitsPerSample,
	}
	for i := 0; i+1 < len(pcm); i += 2 {
		buf.Data[i/2] = int(int16(binary.LittleEndian.Uint16(pcm[i : i+2])))
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return fmt.Errorf("[S3] encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("[S3] finalize wav: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("[S3] close wav: %w", err)
	}

	log.Printf("[S3][OK]")
	return nil
}
