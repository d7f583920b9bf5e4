package stations

import (
	"fmt"
	"io"
	"log"
	"os"
)

type S1StoreUpload struct{}

func NewS1StoreUpload() *S1StoreUpload { return &S1StoreUpload{} }

// Run persists the uploaded payload into the already-acquired temp file at
// path and returns the byte count.
func (s *S1StoreUpload) Run(src io.Reader, path string) (int64, error) {
	log.Printf("[S1][START] path=%s", path)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("[S1] open target: %w", err)
	}

	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("[S1] store upload: %w", err)
	}

	log.Printf("[S1][OK] bytes=%d", n)
	return n, nil
}
