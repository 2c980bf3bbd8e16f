package server

import (
	"encoding/json"
	"net/http"

	"github.com/xxracer/clearcomply2.1/internal/directory"
	"github.com/xxracer/clearcomply2.1/internal/types"
)

// ---------------------------------------------------------------------
// Company Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.companies.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, companies)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := s.companies.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, company)
}

// handleSaveCompany creates a company when the patch carries no id and
// updates the existing one otherwise.
func (s *Server) handleSaveCompany(w http.ResponseWriter, r *http.Request) {
	var patch types.CompanyPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	company, err := s.companies.CreateOrUpdate(r.Context(), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}

	status := http.StatusOK
	if patch.ID == "" {
		status = http.StatusCreated
	}
	s.jsonResponse(w, status, company)
}

func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	if err := s.companies.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleDeleteAllCompanies(w http.ResponseWriter, r *http.Request) {
	if err := s.companies.DeleteAll(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------
// Onboarding Process Handlers
// ---------------------------------------------------------------------

func (s *Server) handleAddProcess(w http.ResponseWriter, r *http.Request) {
	var process types.OnboardingProcess
	if err := json.NewDecoder(r.Body).Decode(&process); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	company, err := s.companies.AddProcess(r.Context(), r.PathValue("id"), process)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, company)
}

func (s *Server) handleUpdateProcess(w http.ResponseWriter, r *http.Request) {
	var patch directory.ProcessPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	company, err := s.companies.UpdateProcess(r.Context(), r.PathValue("id"), r.PathValue("processId"), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, company)
}

func (s *Server) handleDeleteProcess(w http.ResponseWriter, r *http.Request) {
	company, err := s.companies.DeleteProcess(r.Context(), r.PathValue("id"), r.PathValue("processId"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, company)
}

// ---------------------------------------------------------------------
// Candidate-facing link resolution
// ---------------------------------------------------------------------

// ApplicationFormResponse is what a candidate-facing application link
// resolves to.
type ApplicationFormResponse struct {
	CompanyID   string                `json:"companyId"`
	CompanyName string                `json:"companyName"`
	CompanyLogo string                `json:"companyLogo,omitempty"`
	ProcessID   string                `json:"processId"`
	ProcessName string                `json:"processName"`
	Form        types.ApplicationForm `json:"form"`
	FormKind    types.FormKind        `json:"formKind"`
}

// handleApplicationForm resolves ?processId= to its company and form. A
// missing processId falls back to the first process of the first company,
// matching how shared links without a process behave.
func (s *Server) handleApplicationForm(w http.ResponseWriter, r *http.Request) {
	company, process, err := s.resolveProcess(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ApplicationFormResponse{
		CompanyID:   company.ID,
		CompanyName: company.Name,
		CompanyLogo: company.Logo,
		ProcessID:   process.ID,
		ProcessName: process.Name,
		Form:        process.ApplicationForm,
		FormKind:    process.ApplicationForm.Kind(),
	})
}

// DocumentationRequirementsResponse describes the document phase for a
// candidate: what the process requires, and what the candidate already
// submitted when a candidateId is given.
type DocumentationRequirementsResponse struct {
	CompanyID          string              `json:"companyId"`
	ProcessID          string              `json:"processId"`
	RequiredDocs       []types.RequiredDoc `json:"requiredDocs"`
	CandidateID        string              `json:"candidateId,omitempty"`
	SubmittedDocuments []string            `json:"submittedDocuments,omitempty"`
}

func (s *Server) handleDocumentationRequirements(w http.ResponseWriter, r *http.Request) {
	company, process, err := s.resolveProcess(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := DocumentationRequirementsResponse{
		CompanyID:    company.ID,
		ProcessID:    process.ID,
		RequiredDocs: process.RequiredDocs,
	}
	if candidateID := r.URL.Query().Get("candidateId"); candidateID != "" {
		candidate, err := s.candidates.Get(r.Context(), candidateID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		resp.CandidateID = candidate.ID
		resp.SubmittedDocuments = candidate.SubmittedDocuments()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) resolveProcess(r *http.Request) (*types.Company, *types.OnboardingProcess, error) {
	if processID := r.URL.Query().Get("processId"); processID != "" {
		return s.companies.FindProcess(r.Context(), processID)
	}
	return s.companies.DefaultProcess(r.Context())
}
