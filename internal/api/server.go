// Package api exposes the header analysis pipeline over an HTTP JSON API.
// This is the presentation boundary: the analyzer produces the data, clients
// render it.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/busybox42/headerlens/internal/analyzer"
	"github.com/busybox42/headerlens/internal/cache"
	"github.com/busybox42/headerlens/internal/config"
	"github.com/busybox42/headerlens/internal/header"
	"github.com/busybox42/headerlens/internal/metrics"
)

// Server represents the headerlens API server
type Server struct {
	cfg        *config.Config
	store      cache.Store
	httpServer *http.Server
	logger     *slog.Logger
	validate   *validator.Validate
}

// NewServer creates a new API server backed by the given result cache.
func NewServer(cfg *config.Config, store cache.Store) *Server {
	opts := &slog.HandlerOptions{Level: logLevel(cfg.Logging.Level)}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler).With("component", "api")

	return &Server{
		cfg:      cfg,
		store:    store,
		logger:   logger,
		validate: validator.New(),
	}
}

// Router builds the request router. Exposed separately so tests can drive
// handlers without a listener.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(NewCORSMiddleware(s.cfg.Server.CORSOrigins).Handler)
	r.Use(LoggingMiddleware(s.logger))

	// OPTIONS is listed so preflights reach the CORS middleware instead of
	// mux's 405 handler.
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/analyze", s.handleAnalyze).Methods("POST", "OPTIONS")
	api.HandleFunc("/analysis/{id}", s.handleGetAnalysis).Methods("GET", "OPTIONS")
	api.HandleFunc("/health", s.handleHealth).Methods("GET", "OPTIONS")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}

// Run starts the HTTP server and blocks until the context is canceled or
// the listener fails.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Server.Listen,
		Handler:      s.Router(),
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting API server", "addr", s.cfg.Server.Listen)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	Source       string `json:"source" validate:"required"`
	Direction    string `json:"direction" validate:"required,oneof=inbound outbound"`
	CustomPrefix string `json:"custom_prefix"`
}

// handleAnalyze runs a parse-and-decode pass over the submitted source.
// Malformed header content still returns 200 with warnings embedded in the
// result; only argument-shape problems are client errors.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodySize)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request", err)
		return
	}

	direction, err := header.ParseDirection(req.Direction)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid direction", err)
		return
	}

	ctx := r.Context()
	fingerprint := analyzer.Fingerprint(req.Source, direction, req.CustomPrefix)

	if cached, err := s.store.Get(ctx, fingerprintKey(fingerprint)); err == nil {
		metrics.CacheRequests.WithLabelValues("hit").Inc()
		writeRawJSON(w, http.StatusOK, cached)
		return
	}
	metrics.CacheRequests.WithLabelValues("miss").Inc()

	started := time.Now()
	analysis, err := analyzer.Analyze(req.Source, direction, req.CustomPrefix)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "analysis failed", err)
		return
	}
	observeAnalysis(analysis, time.Since(started))

	body, err := json.Marshal(analysis)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to encode analysis", err)
		return
	}

	ttl := s.cfg.CacheTTL()
	if err := s.store.Set(ctx, fingerprintKey(fingerprint), body, ttl); err != nil {
		s.logger.Warn("failed to cache analysis", "error", err)
	}
	if err := s.store.Set(ctx, analysisKey(analysis.ID), body, ttl); err != nil {
		s.logger.Warn("failed to index analysis by id", "error", err)
	}

	writeRawJSON(w, http.StatusOK, body)
}

// handleGetAnalysis retrieves a previously computed analysis by ID.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	body, err := s.store.Get(r.Context(), analysisKey(id))
	if errors.Is(err, cache.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "analysis not found or expired", nil)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "cache lookup failed", err)
		return
	}

	writeRawJSON(w, http.StatusOK, body)
}

// handleHealth reports service liveness and cache backend status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"cache":           s.store.Type(),
		"cache_connected": s.store.IsConnected(),
		"time":            time.Now().UTC().Format(time.RFC3339),
	})
}

// observeAnalysis records pipeline metrics for a completed analysis.
func observeAnalysis(a *analyzer.Analysis, elapsed time.Duration) {
	metrics.AnalysesTotal.WithLabelValues(string(a.Direction)).Inc()
	metrics.AnalysisDuration.Observe(elapsed.Seconds())
	metrics.WarningsTotal.Add(float64(len(a.Headers.Warnings)))

	if a.Security.AuthenticationResults != nil {
		metrics.FragmentsDecoded.WithLabelValues("authentication_results").Inc()
	}
	if a.Security.OriginalAuthentication != nil {
		metrics.FragmentsDecoded.WithLabelValues("original_authentication").Inc()
	}
	if a.Security.ForefrontSpamReport != nil {
		metrics.FragmentsDecoded.WithLabelValues("forefront_spam_report").Inc()
	}
	if a.Security.BulkReport != nil {
		metrics.FragmentsDecoded.WithLabelValues("bulk_report").Inc()
	}
}

// logLevel maps a config level string to a slog level, defaulting to info.
func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func fingerprintKey(fingerprint string) string {
	return "fp:" + fingerprint
}

func analysisKey(id string) string {
	return "analysis:" + id
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, fmt.Sprintf("Error encoding JSON: %v", err), http.StatusInternalServerError)
	}
}

// writeRawJSON writes pre-encoded JSON bytes.
func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeError writes a JSON error envelope.
func (s *Server) writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := map[string]string{"error": message}
	if err != nil {
		resp["detail"] = err.Error()
	}
	writeJSON(w, status, resp)
}
