package stations

import (
	"context"
	"log"

	"github.com/Vovarama1992/kabscribe/internal/models"
	"github.com/Vovarama1992/kabscribe/internal/ports"
)

type S4WAVtoText struct {
	stt ports.STTService
}

func NewS4WAVtoText(stt ports.STTService) *S4WAVtoText {
	return &S4WAVtoText{stt: stt}
}

// Run submits the normalized WAV file to the recognition model. Every failure
// is terminal for the request; nothing is retried.
func (s *S4WAVtoText) Run(ctx context.Context, wavPath string) (*models.Transcript, error) {
	log.Printf("[S4][START] file=%s", wavPath)

	tr, err := s.stt.Recognize(ctx, wavPath)
	if err != nil {
		log.Printf("[S4][ERR] err=%v", err)
		return nil, err
	}

	log.Printf("[S4][OK]")
	return tr, nil
}
