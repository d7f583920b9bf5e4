package stations

import (
	"log"

	"github.com/Vovarama1992/kabscribe/internal/annex"
)

type S5Annex struct {
	corrector *annex.Corrector
}

func NewS5Annex(c *annex.Corrector) *S5Annex {
	return &S5Annex{corrector: c}
}

// Run rewrites the raw transcript into Kabyle annexation orthography.
func (s *S5Annex) Run(raw string) string {
	log.Printf("[S5][IN ] %q", trim(raw, 180))

	out := s.corrector.Correct(raw)

	log.Printf("[S5][OUT] %q", trim(out, 180))
	return out
}
