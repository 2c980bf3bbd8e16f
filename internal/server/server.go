// Package server provides the HTTP REST API for the onboarding service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xxracer/clearcomply2.1/internal/config"
	"github.com/xxracer/clearcomply2.1/internal/directory"
	"github.com/xxracer/clearcomply2.1/internal/doccheck"
	"github.com/xxracer/clearcomply2.1/internal/events"
	"github.com/xxracer/clearcomply2.1/internal/formgen"
	"github.com/xxracer/clearcomply2.1/internal/kv"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server

	companies  *directory.Companies
	candidates *directory.Candidates
	generator  *formgen.Generator
	checker    *doccheck.Checker
	store      kv.Store
	bus        *events.Bus
	logger     *zap.Logger

	shutdownTimeout time.Duration
	now             func() time.Time
}

// Deps are the wired dependencies the server routes to. Companies,
// Candidates and Store are required. Generator, Checker and Bus may be
// nil; the corresponding endpoints answer 503 (or the conservative
// document-check fallback) instead of failing at startup.
type Deps struct {
	Companies  *directory.Companies
	Candidates *directory.Candidates
	Generator  *formgen.Generator
	Checker    *doccheck.Checker
	Store      kv.Store
	Bus        *events.Bus
	Logger     *zap.Logger
}

// New creates a new server instance.
func New(cfg config.ServerConfig, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		companies:       deps.Companies,
		candidates:      deps.Candidates,
		generator:       deps.Generator,
		checker:         deps.Checker,
		store:           deps.Store,
		bus:             deps.Bus,
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
		now:             time.Now,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 10 * time.Second
	}

	mux := http.NewServeMux()

	// Companies and onboarding processes
	mux.HandleFunc("GET /companies", s.handleListCompanies)
	mux.HandleFunc("POST /companies", s.handleSaveCompany)
	mux.HandleFunc("DELETE /companies", s.handleDeleteAllCompanies)
	mux.HandleFunc("GET /companies/{id}", s.handleGetCompany)
	mux.HandleFunc("DELETE /companies/{id}", s.handleDeleteCompany)
	mux.HandleFunc("POST /companies/{id}/processes", s.handleAddProcess)
	mux.HandleFunc("PUT /companies/{id}/processes/{processId}", s.handleUpdateProcess)
	mux.HandleFunc("DELETE /companies/{id}/processes/{processId}", s.handleDeleteProcess)

	// Public application/documentation resolution (candidate-facing links)
	mux.HandleFunc("GET /application-form", s.handleApplicationForm)
	mux.HandleFunc("GET /documentation-requirements", s.handleDocumentationRequirements)

	// Candidates and lifecycle
	mux.HandleFunc("GET /candidates", s.handleListCandidates)
	mux.HandleFunc("POST /candidates", s.handleCreateCandidate)
	mux.HandleFunc("GET /candidates/new", s.handleNewCandidates)
	mux.HandleFunc("GET /candidates/interviewing", s.handleInterviewing)
	mux.HandleFunc("GET /candidates/new-hires", s.handleNewHires)
	mux.HandleFunc("GET /candidates/expiring-documentation", s.handleExpiringDocumentation)
	mux.HandleFunc("GET /candidates/{id}", s.handleGetCandidate)
	mux.HandleFunc("DELETE /candidates/{id}", s.handleDeleteCandidate)
	mux.HandleFunc("GET /candidates/{id}/transitions", s.handleTransitions)
	mux.HandleFunc("PUT /candidates/{id}/status", s.handleUpdateStatus)
	mux.HandleFunc("POST /candidates/{id}/advance", s.handleAdvance)
	mux.HandleFunc("PUT /candidates/{id}/interview-review", s.handleInterviewReview)
	mux.HandleFunc("PUT /candidates/{id}/documents", s.handleUpdateDocuments)
	mux.HandleFunc("PUT /candidates/{id}/license", s.handleUpdateLicense)

	// LLM-backed operations
	mux.HandleFunc("POST /generate/form", s.handleGenerateForm)
	mux.HandleFunc("POST /generate/form-from-options", s.handleGenerateFormFromOptions)
	mux.HandleFunc("POST /documents/check", s.handleCheckDocuments)

	// Uploads
	mux.HandleFunc("POST /uploads", s.handleUpload)
	mux.HandleFunc("GET /uploads/{key}", s.handleGetUpload)

	// Change stream + health
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the routed handler chain, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response failed", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
