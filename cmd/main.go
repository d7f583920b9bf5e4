package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/kabscribe/internal/annex"
	"github.com/Vovarama1992/kabscribe/internal/delivery"
	ws "github.com/Vovarama1992/kabscribe/internal/delivery/ws"
	"github.com/Vovarama1992/kabscribe/internal/domain"
	"github.com/Vovarama1992/kabscribe/internal/domain/stations"
	"github.com/Vovarama1992/kabscribe/internal/infra"
	"github.com/Vovarama1992/kabscribe/internal/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	_ = godotenv.Load()

	// LOGGER
	zcore, _ := zap.NewProduction()
	defer zcore.Sync()
	zl := logger.NewZapLogger(zcore.Sugar())

	// ENV
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	modelPath := os.Getenv("WHISPER_MODEL_PATH")
	if modelPath == "" {
		log.Println("WARN: WHISPER_MODEL_PATH is not set; /transcribe will answer 503")
	}

	language := os.Getenv("WHISPER_LANGUAGE")
	if language == "" {
		language = "kab"
	}

	tmpDir := os.Getenv("TMP_DIR")

	// MODEL (loaded once; a failed load keeps the server up and every
	// /transcribe answers 503)
	var stt ports.STTService

	whisperSTT, err := infra.NewWhisperSTT(modelPath, language)
	if err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "whisper model load failed",
			Error:   err,
		})
	} else {
		defer whisperSTT.Close()
		stt = whisperSTT
	}

	// LEXICON + CORRECTOR
	lexicon := annex.NewLexicon()
	corrector := annex.NewCorrector(lexicon)

	// STATIONS
	s1 := stations.NewS1StoreUpload()
	s2 := stations.NewS2DecodePCM()
	s3 := stations.NewS3PCMtoWAV()
	s5 := stations.NewS5Annex(corrector)

	// PIPELINE SERVICE (оркестратор)
	transcribeService := domain.NewTranscribeService(stt, s1, s2, s3, s5, tmpDir, zl)

	// WS HUB
	hub := ws.NewHub()

	// BROADCAST LISTENER
	go func() {
		for ev := range transcribeService.Events() {

			payload, err := json.Marshal(map[string]string{
				"requestId":     ev.RequestID,
				"filename":      ev.Filename,
				"transcription": ev.Text,
			})
			if err != nil {
				log.Printf("[SEND][ERR] json marshal failed: %v", err)
				continue
			}

			hub.Broadcast(payload)
		}
	}()

	// HANDLERS
	hTranscribe := delivery.NewTranscribeHandler(transcribeService, zl)

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	delivery.RegisterRoutes(r, hTranscribe)

	r.Get("/ws", ws.FeedHandler(hub))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields:  map[string]any{"port": port, "modelLoaded": stt != nil},
	})

	if err := http.ListenAndServe(":"+port, r); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
