package tmpfile

import "os"

// Scoped is a uniquely named temporary file whose removal is guaranteed by
// calling Release on every exit path of the scope that created it. Handles
// are request-local and must never be shared across requests.
type Scoped struct {
	path string
}

// New creates an empty uniquely named file in dir following pattern (see
// os.CreateTemp). An empty dir means the system temp directory.
func New(dir, pattern string) (*Scoped, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return nil, err
	}
	return &Scoped{path: f.Name()}, nil
}

func (s *Scoped) Path() string { return s.path }

// Release removes the backing file. A file that is already gone is not an
// error, so Release may be called more than once.
func (s *Scoped) Release() error {
	err := os.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
