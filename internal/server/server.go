// Package server exposes the caller-facing operations as a local JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"patchpilot/internal/app"
	"patchpilot/internal/files"
	"patchpilot/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Server routes HTTP requests to an App.
type Server struct {
	app     *app.App
	router  chi.Router
	metrics *metrics
}

// New creates a Server. corsOrigins may be empty or "*" to allow any origin.
func New(a *app.App, corsOrigins []string, registry *prometheus.Registry) *Server {
	s := &Server{app: a, router: chi.NewRouter(), metrics: newMetrics(registry)}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(corsHandler(corsOrigins))
	s.router.Use(s.metrics.middleware)
	s.router.Use(loggingMiddleware)

	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", s.metrics.handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/analyze/file", s.handleAnalyzeFile)
		r.Post("/analyze/directory", s.handleAnalyzeDirectory)
		r.Post("/analyze/batch", s.handleAnalyzeBatch)
		r.Post("/analyze/run", s.handleRunFile)

		r.Get("/models/status", s.handleModelStatus)
		r.Post("/models/install", s.handleInstallModel)
		r.Post("/models/ask", s.handleAsk)

		r.Get("/env/extensions", s.handleSupportedExtensions)
		r.Post("/env/validate", s.handleValidateDirectory)
		r.Get("/env/system", s.handleSystemInfo)
		r.Get("/env/desktop", s.handleDesktopPath)
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on port until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Starting server on %s...", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logrus.Info("Shutting down server...")
		return srv.Shutdown(shutdownCtx)
	}
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         86400,
	}
	if len(origins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return cors.Handler(opts)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": middleware.GetReqID(r.Context()),
			"duration":   time.Since(start).String(),
		}).Debug("Handled request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("Failed to encode response: %v", err)
	}
}

// writeError sends {"error": text}. Callers only ever get a message, never a code.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var invalid *files.InvalidPathError
	var bad *badRequestError
	if errors.As(err, &invalid) || errors.As(err, &bad) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &badRequestError{msg: fmt.Sprintf("error decoding JSON request: %v", err)}
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyzeFile(w http.ResponseWriter, r *http.Request) {
	var req models.AnalysisRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.app.Analyzer.AnalyzeFile(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAnalyzeDirectory(w http.ResponseWriter, r *http.Request) {
	var req models.DirectoryAnalysisRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.app.Analyzer.AnalyzeDirectory(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.app.Analyzer.AnalyzeBatch(r.Context(), req))
}

func (s *Server) handleRunFile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.app.Analyzer.RunFile(r.Context(), req.Path)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleModelStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Models.Status(r.Context()))
}

func (s *Server) handleInstallModel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Model string `json:"model"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	msg, err := s.app.Models.InstallModel(r.Context(), req.Model)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	answer, err := s.app.Models.Ask(r.Context(), req.Question)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) handleSupportedExtensions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, files.SupportedExtensions())
}

func (s *Server) handleValidateDirectory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	info, err := files.ValidateDirectory(req.Path)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleSystemInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, files.SystemInfo())
}

func (s *Server) handleDesktopPath(w http.ResponseWriter, r *http.Request) {
	path, err := files.DesktopPath()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}
