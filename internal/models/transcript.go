package models

// Transcript is the raw output of the recognition model for one request.
// Text may be empty when the model recognized nothing; a missing transcript
// object is represented as a nil *Transcript at the STT boundary.
type Transcript struct {
	Text string
}
