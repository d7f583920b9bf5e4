package ports

import (
	"context"

	"github.com/Vovarama1992/kabscribe/internal/models"
)

// STTService is the recognition-model boundary. Recognize transcribes the
// normalized 16 kHz mono WAV file at wavPath. A nil transcript with a nil
// error means the model answered but produced no usable text object; an
// empty Text in a non-nil transcript is a valid empty recognition.
type STTService interface {
	Recognize(ctx context.Context, wavPath string) (*models.Transcript, error)
}
