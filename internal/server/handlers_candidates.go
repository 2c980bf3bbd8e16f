package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/xxracer/clearcomply2.1/internal/directory"
	"github.com/xxracer/clearcomply2.1/internal/types"
)

// ---------------------------------------------------------------------
// Candidate Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.candidates.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, candidates)
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := s.candidates.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, candidate)
}

func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var candidate types.Candidate
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if candidate.FirstName == "" || candidate.LastName == "" {
		s.errorResponse(w, http.StatusBadRequest, "First and last name are required")
		return
	}

	created, err := s.candidates.Create(r.Context(), candidate)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// handleDeleteCandidate rejects a candidate; their record is removed.
func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	if err := s.candidates.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------
// Lifecycle Handlers
// ---------------------------------------------------------------------

type updateStatusRequest struct {
	Status types.Status `json:"status"`
}

// handleUpdateStatus overwrites the candidate's status without consulting
// the transition table. It is the administrative escape hatch; Advance is
// the guarded path.
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	candidate, err := s.candidates.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, candidate)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	candidate, err := s.candidates.Advance(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, candidate)
}

// TransitionsResponse advertises which status changes the workflow allows
// from the candidate's current position. Advisory only: UpdateStatus does
// not consult it.
type TransitionsResponse struct {
	Status types.Status   `json:"status"`
	Legal  []types.Status `json:"legal"`
}

func (s *Server) handleTransitions(w http.ResponseWriter, r *http.Request) {
	candidate, err := s.candidates.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	legal := []types.Status{}
	for _, next := range types.ValidStatuses {
		if directory.CanTransition(candidate.Status, next) {
			legal = append(legal, next)
		}
	}
	s.jsonResponse(w, http.StatusOK, TransitionsResponse{Status: candidate.Status, Legal: legal})
}

func (s *Server) handleInterviewReview(w http.ResponseWriter, r *http.Request) {
	var review types.InterviewReview
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if review.Interviewer == "" {
		s.errorResponse(w, http.StatusBadRequest, "Interviewer is required")
		return
	}

	candidate, err := s.candidates.UpdateInterviewReview(r.Context(), r.PathValue("id"), review)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, candidate)
}

type updateDocumentsRequest struct {
	Documents map[string]string `json:"documents"`
}

func (s *Server) handleUpdateDocuments(w http.ResponseWriter, r *http.Request) {
	var req updateDocumentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Documents) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "No documents provided")
		return
	}

	candidate, err := s.candidates.UpdateDocuments(r.Context(), r.PathValue("id"), req.Documents)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, candidate)
}

type updateLicenseRequest struct {
	Key        string    `json:"key"`
	Expiration time.Time `json:"expiration"`
}

func (s *Server) handleUpdateLicense(w http.ResponseWriter, r *http.Request) {
	var req updateLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	candidate, err := s.candidates.UpdateLicense(r.Context(), r.PathValue("id"), req.Key, req.Expiration)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, candidate)
}

// ---------------------------------------------------------------------
// Dashboard Queries
// ---------------------------------------------------------------------

func (s *Server) handleNewCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.candidates.NewCandidates(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, candidates)
}

func (s *Server) handleInterviewing(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.candidates.Interviewing(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, candidates)
}

func (s *Server) handleNewHires(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.candidates.NewHires(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, candidates)
}

func (s *Server) handleExpiringDocumentation(w http.ResponseWriter, r *http.Request) {
	expiring, err := s.candidates.ExpiringDocumentation(r.Context(), s.now())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, expiring)
}
