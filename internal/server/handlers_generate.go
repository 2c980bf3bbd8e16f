package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/xxracer/clearcomply2.1/internal/doccheck"
	"github.com/xxracer/clearcomply2.1/internal/types"
)

// ---------------------------------------------------------------------
// LLM-backed Handlers
// ---------------------------------------------------------------------

func (s *Server) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Form generation is not configured")
		return
	}

	var req types.GenerateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	form, err := s.generator.GenerateFromPrompt(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, form)
}

func (s *Server) handleGenerateFormFromOptions(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Form generation is not configured")
		return
	}

	var req types.GenerateFormOptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	form, err := s.generator.GenerateFromOptions(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, form)
}

// handleCheckDocuments answers which required documents are still missing.
// When the backend cannot answer, every required document is reported
// missing rather than failing the request: over-asking is recoverable,
// silently marking a document satisfied is not.
func (s *Server) handleCheckDocuments(w http.ResponseWriter, r *http.Request) {
	var req types.DocumentCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	if s.checker == nil {
		s.jsonResponse(w, http.StatusOK, doccheck.AllMissing(req))
		return
	}

	result, err := s.checker.Check(r.Context(), req)
	if err != nil {
		s.logger.Warn("document check degraded, reporting all required documents missing",
			zap.Error(err))
		s.jsonResponse(w, http.StatusOK, doccheck.AllMissing(req))
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
