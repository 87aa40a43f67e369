package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"call-annotator-go/internal/dataset"
	"call-annotator-go/internal/logger"
	"call-annotator-go/internal/pipeline"
	"call-annotator-go/internal/transcription"
	"call-annotator-go/internal/types"
)

var allowedExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".m4a": true, ".flac": true,
	".ogg": true, ".webm": true, ".mp4": true, ".mpeg": true,
}

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "call-annotator-go").Info("starting service")

	var engine transcription.Engine
	switch {
	case os.Getenv("USE_MOCK_TRANSCRIBE") == "true":
		log.Info("mock transcription mode ON")
		engine = transcription.MockEngine{}
	case os.Getenv("ASR_URL") != "":
		engine = &transcription.HTTPEngine{BaseURL: os.Getenv("ASR_URL")}
	}

	var diarizer transcription.Diarizer
	if u := os.Getenv("DIARIZER_URL"); u != "" {
		diarizer = &transcription.HTTPDiarizer{BaseURL: u}
	}

	mux := http.NewServeMux()

	// banner
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]any{
			"message":             "Call Annotation API",
			"status":              "running",
			"supported_languages": []string{"en", "es"},
		})
	})

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		writeJSON(w, map[string]any{
			"status":            "healthy",
			"engine_configured": engine != nil,
		})
	})

	// upload + full pipeline
	mux.HandleFunc("/transcribe", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "transcribe")
		reqLog.Info("transcribe request received")

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if engine == nil {
			reqLog.Warn("no ASR engine configured")
			http.Error(w, "transcription engine not configured", http.StatusServiceUnavailable)
			return
		}

		language := r.URL.Query().Get("language")
		if language != "" && language != "en" && language != "es" {
			http.Error(w, "language must be 'en' or 'es', or omitted for auto-detection", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file", http.StatusBadRequest)
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedExtensions[ext] {
			http.Error(w, "unsupported file type: "+ext, http.StatusBadRequest)
			return
		}

		tmp, err := os.CreateTemp("", "upload-*"+ext)
		if err != nil {
			reqLog.WithError(err).Error("temp file create failed")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		defer os.Remove(tmp.Name())
		size, err := io.Copy(tmp, file)
		tmp.Close()
		if err != nil {
			reqLog.WithError(err).Error("upload save failed")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		reqLog = reqLog.WithField("filename", header.Filename).WithField("file_size", size)

		start := time.Now()
		res, err := engine.Transcribe(r.Context(), tmp.Name(), language)
		if err != nil {
			reqLog.WithError(err).Warn("transcription failed")
			http.Error(w, fmt.Sprintf("transcription failed: %v", err), http.StatusInternalServerError)
			return
		}

		var turns []types.DiarizationTurn
		if diarizer != nil {
			// a failed diarizer is not fatal: fall back to the gap heuristic
			turns, err = diarizer.Diarize(r.Context(), tmp.Name())
			if err != nil {
				reqLog.WithError(err).Warn("diarization failed, using fallback")
				turns = nil
			}
		}

		ann := pipeline.Annotate(res.Segments, turns, res.Text)
		reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).Info("annotation finished")

		requested := language
		if requested == "" {
			requested = "auto"
		}
		writeJSON(w, types.TranscribeResponse{
			Success:           true,
			Transcription:     ann.Transcript,
			LanguageDetected:  res.Language,
			LanguageRequested: requested,
			Segments:          ann.Segments,
			Summary:           ann.Summary,
			ActionItems:       ann.ActionItems,
			SpeakerNames:      ann.SpeakerNames,
			Metadata: types.Metadata{
				Filename:         header.Filename,
				FileSize:         size,
				Duration:         pipeline.Duration(ann.Segments),
				TotalSpeakers:    pipeline.CountSpeakers(ann.Segments),
				TotalActionItems: len(ann.ActionItems),
			},
		})
	})

	// core pipeline only, for callers that already have ASR output
	mux.HandleFunc("/annotate", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "annotate")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req types.AnnotateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			reqLog.WithError(err).Warn("bad request body")
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		if len(req.Segments) == 0 && req.Transcript != "" {
			req.Segments = dataset.Segments(req.Transcript)
		}
		ann := pipeline.Annotate(req.Segments, req.Turns, req.Transcript)
		reqLog.WithField("segments", len(ann.Segments)).Info("annotate finished")
		writeJSON(w, types.TranscribeResponse{
			Success:       true,
			Transcription: ann.Transcript,
			Segments:      ann.Segments,
			Summary:       ann.Summary,
			ActionItems:   ann.ActionItems,
			SpeakerNames:  ann.SpeakerNames,
			Metadata: types.Metadata{
				Duration:         pipeline.Duration(ann.Segments),
				TotalSpeakers:    pipeline.CountSpeakers(ann.Segments),
				TotalActionItems: len(ann.ActionItems),
			},
		})
	})

	// demo endpoint (annotate first N fixture transcripts for a quick demo)
	mux.HandleFunc("/demo", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "demo")
		reqLog.Info("demo invoked")
		calls, err := dataset.Load(envOr("DATASET_PATH", "sample_calls.xlsx"))
		if err != nil {
			reqLog.WithError(err).Error("dataset load error")
			http.Error(w, "dataset load error", 500)
			return
		}
		limit := 5
		if len(calls) < limit {
			limit = len(calls)
		}
		var out []any
		for _, call := range calls[:limit] {
			reqLog.WithField("demo_call", call.CallID).Info("annotating demo call")
			ann := pipeline.Annotate(dataset.Segments(call.Transcript), nil, call.Transcript)
			out = append(out, map[string]any{"call_id": call.CallID, "annotation": ann})
		}
		writeJSON(w, out)
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.New().WithError(err).Error("failed to write response")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
