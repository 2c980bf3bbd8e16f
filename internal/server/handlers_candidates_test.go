package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxracer/clearcomply2.1/internal/directory"
	"github.com/xxracer/clearcomply2.1/internal/types"
)

func createCandidate(t *testing.T, s *Server, first, last string) types.Candidate {
	t.Helper()
	var candidate types.Candidate
	rec := doJSON(t, s, http.MethodPost, "/candidates",
		map[string]string{"firstName": first, "lastName": last}, &candidate)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return candidate
}

func TestCandidates_CreateAssignsLifecycle(t *testing.T) {
	s := newTestServer(t, nil)

	candidate := createCandidate(t, s, "Dana", "Reyes")
	assert.NotEmpty(t, candidate.ID)
	assert.Equal(t, types.StatusCandidate, candidate.Status)
	assert.False(t, candidate.Date.IsZero())
}

func TestCandidates_CreateRequiresName(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/candidates",
		map[string]string{"firstName": "Dana"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCandidates_StatusDrivesDashboards(t *testing.T) {
	s := newTestServer(t, nil)
	candidate := createCandidate(t, s, "Dana", "Reyes")

	var fresh []types.Candidate
	doJSON(t, s, http.MethodGet, "/candidates/new", nil, &fresh)
	require.Len(t, fresh, 1)

	rec := doJSON(t, s, http.MethodPut, "/candidates/"+candidate.ID+"/status",
		map[string]string{"status": "interview"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	fresh = nil
	doJSON(t, s, http.MethodGet, "/candidates/new", nil, &fresh)
	assert.Empty(t, fresh)

	var interviewing []types.Candidate
	doJSON(t, s, http.MethodGet, "/candidates/interviewing", nil, &interviewing)
	require.Len(t, interviewing, 1)
	assert.Equal(t, candidate.ID, interviewing[0].ID)
}

func TestCandidates_UpdateStatusRejectsUnknown(t *testing.T) {
	s := newTestServer(t, nil)
	candidate := createCandidate(t, s, "Dana", "Reyes")

	rec := doJSON(t, s, http.MethodPut, "/candidates/"+candidate.ID+"/status",
		map[string]string{"status": "fired"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCandidates_AdvanceEnforcesWorkflow(t *testing.T) {
	s := newTestServer(t, nil)
	candidate := createCandidate(t, s, "Dana", "Reyes")

	// candidate → new-hire skips the interview and must be refused.
	rec := doJSON(t, s, http.MethodPost, "/candidates/"+candidate.ID+"/advance",
		map[string]string{"status": "new-hire"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/candidates/"+candidate.ID+"/advance",
		map[string]string{"status": "interview"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// interview → new-hire requires a recorded review.
	rec = doJSON(t, s, http.MethodPost, "/candidates/"+candidate.ID+"/advance",
		map[string]string{"status": "new-hire"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPut, "/candidates/"+candidate.ID+"/interview-review",
		map[string]string{"interviewer": "Sam", "outcome": "hire"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var hired types.Candidate
	rec = doJSON(t, s, http.MethodPost, "/candidates/"+candidate.ID+"/advance",
		map[string]string{"status": "new-hire"}, &hired)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.StatusNewHire, hired.Status)
}

func TestCandidates_TransitionsAdvisory(t *testing.T) {
	s := newTestServer(t, nil)
	candidate := createCandidate(t, s, "Dana", "Reyes")

	var resp TransitionsResponse
	rec := doJSON(t, s, http.MethodGet, "/candidates/"+candidate.ID+"/transitions", nil, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.StatusCandidate, resp.Status)
	assert.ElementsMatch(t, []types.Status{types.StatusInterview, types.StatusInactive}, resp.Legal)

	rec = doJSON(t, s, http.MethodPut, "/candidates/"+candidate.ID+"/status",
		map[string]string{"status": "inactive"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp = TransitionsResponse{}
	doJSON(t, s, http.MethodGet, "/candidates/"+candidate.ID+"/transitions", nil, &resp)
	assert.Empty(t, resp.Legal, "inactive is terminal")
}

func TestCandidates_InterviewReviewRequiresInterviewer(t *testing.T) {
	s := newTestServer(t, nil)
	candidate := createCandidate(t, s, "Dana", "Reyes")

	rec := doJSON(t, s, http.MethodPut, "/candidates/"+candidate.ID+"/interview-review",
		map[string]string{"outcome": "hire"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCandidates_DeleteIsReject(t *testing.T) {
	s := newTestServer(t, nil)
	candidate := createCandidate(t, s, "Dana", "Reyes")

	rec := doJSON(t, s, http.MethodDelete, "/candidates/"+candidate.ID, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/candidates/"+candidate.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCandidates_UpdateDocuments(t *testing.T) {
	s := newTestServer(t, nil)
	candidate := createCandidate(t, s, "Dana", "Reyes")

	var updated types.Candidate
	rec := doJSON(t, s, http.MethodPut, "/candidates/"+candidate.ID+"/documents",
		map[string]any{"documents": map[string]string{
			"resume": types.SubmittedSentinel,
			"i9":     "i9-dana-reyes-proc1-1709294400000",
		}}, &updated)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.SubmittedSentinel, updated.Resume)
	assert.Equal(t, "i9-dana-reyes-proc1-1709294400000", updated.I9)

	rec = doJSON(t, s, http.MethodPut, "/candidates/"+candidate.ID+"/documents",
		map[string]any{"documents": map[string]string{}}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCandidates_LicenseAndExpiryDashboard(t *testing.T) {
	s := newTestServer(t, nil)
	expiring := createCandidate(t, s, "Dana", "Reyes")
	fine := createCandidate(t, s, "Lee", "Okafor")

	rec := doJSON(t, s, http.MethodPut, "/candidates/"+expiring.ID+"/license",
		map[string]any{"key": "license-dana-1", "expiration": testNow.AddDate(0, 0, 10)}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodPut, "/candidates/"+fine.ID+"/license",
		map[string]any{"key": "license-lee-1", "expiration": testNow.AddDate(1, 0, 0)}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var flagged []directory.ExpiringLicense
	rec = doJSON(t, s, http.MethodGet, "/candidates/expiring-documentation", nil, &flagged)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, flagged, 1)
	assert.Equal(t, expiring.ID, flagged[0].Candidate.ID)
	assert.Equal(t, types.LicenseExpiringSoon, flagged[0].State)
}

func TestCandidates_LicenseRequiresKeyAndExpiration(t *testing.T) {
	s := newTestServer(t, nil)
	candidate := createCandidate(t, s, "Dana", "Reyes")

	rec := doJSON(t, s, http.MethodPut, "/candidates/"+candidate.ID+"/license",
		map[string]any{"key": "", "expiration": time.Time{}}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
