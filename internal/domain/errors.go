package domain

import "errors"

// Stage failure categories. Each maps 1:1 to a fixed client-facing response
// in the delivery layer; wrapped diagnostic detail stays in the logs.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("asr model is not loaded")
	ErrAudioProcessing    = errors.New("audio processing failed")
	ErrTranscription      = errors.New("transcription failed")
	ErrEmptyResult        = errors.New("no text returned")
)
