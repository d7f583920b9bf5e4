package ports

import "context"

// AudioNormalizer decodes an arbitrary audio container and resamples it to
// the 16 kHz mono s16le PCM the recognition model requires.
type AudioNormalizer interface {
	Run(ctx context.Context, path string) ([]byte, error)
}
