package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/kabscribe/internal/domain"
	"github.com/Vovarama1992/kabscribe/internal/ports"
)

const maxUploadBytes = 32 << 20

type TranscribeHandler struct {
	service ports.TranscribeProcessor
	log     *logger.ZapLogger
}

func NewTranscribeHandler(service ports.TranscribeProcessor, log *logger.ZapLogger) *TranscribeHandler {
	return &TranscribeHandler{
		service: service,
		log:     log,
	}
}

// POST /transcribe — multipart form with an "audio" file field.
func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}

	files := r.MultipartForm.File["audio"]
	if len(files) == 0 {
		// a part named audio whose filename is empty parses as a plain value
		if _, ok := r.MultipartForm.Value["audio"]; ok {
			writeError(w, http.StatusBadRequest, "No selected file")
			return
		}
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}

	header := files[0]
	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No selected file")
		return
	}

	file, err := header.Open()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}
	defer file.Close()

	text, err := h.service.Process(r.Context(), file, header.Filename, header.Size)
	if err != nil {
		status, msg := mapPipelineError(err)
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "transcribe request failed",
			Error:   err,
			Fields: map[string]any{
				"filename": header.Filename,
				"status":   status,
			},
		})
		writeError(w, status, msg)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "transcribe request done",
		Fields: map[string]any{
			"filename": header.Filename,
			"chars":    len(text),
		},
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"transcription": text})
}

// mapPipelineError translates a pipeline failure into the fixed client-facing
// response. Diagnostic detail stays in the logs.
func mapPipelineError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, "ASR model is not loaded."
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "No selected file"
	case errors.Is(err, domain.ErrAudioProcessing):
		return http.StatusInternalServerError, "Failed to process audio file. Please ensure it's a valid audio format."
	case errors.Is(err, domain.ErrTranscription):
		return http.StatusInternalServerError, "Transcription failed due to a model error."
	case errors.Is(err, domain.ErrEmptyResult):
		return http.StatusInternalServerError, "Transcription failed. No text returned."
	default:
		return http.StatusInternalServerError, "An internal server error occurred."
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
