// Package server exposes the conversion pipeline over HTTP.
//
// The server is a thin transport around pipeline.Runner:
//
//	POST /convert  multipart form with an "image" file and an optional
//	               "width" field; responds text/plain with the ASCII grid
//	GET  /healthz  liveness probe
//
// Uploads are converted in-memory and never touch disk; the runner's
// artifact cache still applies because keys are content hashes.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	apperrors "asciigen/pkg/errors"
	"asciigen/pkg/pipeline"
)

// maxUploadBytes caps multipart uploads. Images past 32 MiB are beyond
// anything this converter is meant for.
const maxUploadBytes = 32 << 20

// Server converts uploaded images to ASCII text.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server around the given runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler builds the HTTP routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Post("/convert", s.handleConvert)

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// handleHealth responds to liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// handleConvert converts an uploaded image and responds with the grid.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	logger := loggerFrom(r.Context(), s.logger)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "missing image file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		http.Error(w, "read upload", http.StatusBadRequest)
		return
	}
	if len(data) > maxUploadBytes {
		http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
		return
	}

	opts := pipeline.Options{Logger: logger}
	if widthStr := r.FormValue("width"); widthStr != "" {
		width, err := strconv.Atoi(widthStr)
		if err != nil {
			http.Error(w, "width must be an integer", http.StatusBadRequest)
			return
		}
		opts.Width = width
	}

	result, err := s.runner.ExecuteBytes(r.Context(), data, opts)
	if err != nil {
		logger.Error("conversion failed", "file", header.Filename, "err", err)
		http.Error(w, apperrors.UserMessage(err), statusFor(err))
		return
	}

	logger.Info("converted upload",
		"file", header.Filename, "grid", result.Width, "rows", result.Height,
		"cached", result.CacheInfo.ArtifactHit)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Grid-Width", strconv.Itoa(result.Width))
	w.Header().Set("X-Grid-Height", strconv.Itoa(result.Height))
	_, _ = io.WriteString(w, result.Text)
}

// statusFor maps structured pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidWidth, apperrors.ErrCodeInvalidPath, apperrors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.ErrCodeDecodeFailed, apperrors.ErrCodeInvalidGeometry:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		if errors.Is(err, context.Canceled) {
			return http.StatusRequestTimeout
		}
		return http.StatusInternalServerError
	}
}
