package directory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxracer/clearcomply2.1/internal/events"
	"github.com/xxracer/clearcomply2.1/internal/types"
)

func newTestCandidates(t *testing.T) *Candidates {
	t.Helper()
	d := NewCandidates(newTestStore(t), events.NewBus(), nil)
	seq := 0
	d.newID = func() string {
		seq++
		return fmt.Sprintf("cand-%d", seq)
	}
	d.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return d
}

func seedCandidate(t *testing.T, d *Candidates) *types.Candidate {
	t.Helper()
	created, err := d.Create(context.Background(), types.Candidate{
		FirstName:   "Jane",
		LastName:    "Doe",
		Position:    "Driver",
		ApplyingFor: []string{"Acme Staffing - Driver Onboarding"},
	})
	require.NoError(t, err)
	return created
}

func TestCandidates_CreateAssignsLifecycleFields(t *testing.T) {
	d := newTestCandidates(t)

	created := seedCandidate(t, d)
	assert.Equal(t, "cand-1", created.ID)
	assert.Equal(t, types.StatusCandidate, created.Status)
	assert.Equal(t, d.now(), created.Date)

	// Client-supplied lifecycle fields are ignored.
	forged, err := d.Create(context.Background(), types.Candidate{
		ID:     "attacker-chosen",
		Status: types.StatusEmployee,
	})
	require.NoError(t, err)
	assert.Equal(t, "cand-2", forged.ID)
	assert.Equal(t, types.StatusCandidate, forged.Status)
}

func TestCandidates_UpdateStatusUnconditional(t *testing.T) {
	d := newTestCandidates(t)
	ctx := context.Background()
	created := seedCandidate(t, d)

	// candidate -> new-hire skips interview entirely, and still succeeds.
	updated, err := d.UpdateStatus(ctx, created.ID, types.StatusNewHire)
	require.NoError(t, err)
	assert.Equal(t, types.StatusNewHire, updated.Status)

	newHires, err := d.NewHires(ctx)
	require.NoError(t, err)
	require.Len(t, newHires, 1)
	assert.Equal(t, created.ID, newHires[0].ID)

	fresh, err := d.NewCandidates(ctx)
	require.NoError(t, err)
	assert.Empty(t, fresh)
}

func TestCandidates_UpdateStatusRejectsUnknown(t *testing.T) {
	d := newTestCandidates(t)
	created := seedCandidate(t, d)

	_, err := d.UpdateStatus(context.Background(), created.ID, types.Status("rejected"))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestCandidates_UpdateStatusNotFound(t *testing.T) {
	d := newTestCandidates(t)

	_, err := d.UpdateStatus(context.Background(), "missing", types.StatusInterview)
	assert.True(t, IsNotFound(err))
}

func TestCandidates_DeleteIsReject(t *testing.T) {
	d := newTestCandidates(t)
	ctx := context.Background()
	created := seedCandidate(t, d)

	require.NoError(t, d.Delete(ctx, created.ID))
	_, err := d.Get(ctx, created.ID)
	assert.True(t, IsNotFound(err))

	// Rejecting twice is a no-op.
	assert.NoError(t, d.Delete(ctx, created.ID))
}

func TestCandidates_InterviewReview(t *testing.T) {
	d := newTestCandidates(t)
	ctx := context.Background()
	created := seedCandidate(t, d)

	updated, err := d.UpdateInterviewReview(ctx, created.ID, types.InterviewReview{
		Interviewer: "Sam",
		Notes:       "strong communication",
		Outcome:     "advance",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.InterviewReview)
	assert.Equal(t, "Sam", updated.InterviewReview.Interviewer)
	assert.Equal(t, d.now(), updated.InterviewReview.Date, "missing review date defaults to now")
}

func TestCandidates_UpdateDocumentsMerges(t *testing.T) {
	d := newTestCandidates(t)
	ctx := context.Background()
	created := seedCandidate(t, d)

	updated, err := d.UpdateDocuments(ctx, created.ID, map[string]string{
		types.DocKeyI9:     "i9-jane-doe-abc-1709294400000",
		types.DocKeyIDCard: types.SubmittedSentinel,
		"Forklift Cert":    "cert-jane-doe-abc-1709294400001",
	})
	require.NoError(t, err)
	assert.Equal(t, "i9-jane-doe-abc-1709294400000", updated.I9)
	assert.Equal(t, types.SubmittedSentinel, updated.IDCard)
	require.Len(t, updated.Documents, 1)
	assert.Equal(t, "Forklift Cert", updated.Documents[0].Title)

	// A second merge keeps earlier keys and replaces matching titles.
	updated, err = d.UpdateDocuments(ctx, created.ID, map[string]string{
		"Forklift Cert": "cert-jane-doe-abc-1709294400002",
	})
	require.NoError(t, err)
	assert.Equal(t, "i9-jane-doe-abc-1709294400000", updated.I9)
	require.Len(t, updated.Documents, 1)
	assert.Equal(t, "cert-jane-doe-abc-1709294400002", updated.Documents[0].Key)
}

func TestCandidates_UpdateLicense(t *testing.T) {
	d := newTestCandidates(t)
	ctx := context.Background()
	created := seedCandidate(t, d)

	exp := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	updated, err := d.UpdateLicense(ctx, created.ID, "license-jane-doe-1709294400000", exp)
	require.NoError(t, err)
	assert.Equal(t, "license-jane-doe-1709294400000", updated.DriversLicense)
	require.NotNil(t, updated.DriversLicenseExpiration)
	assert.True(t, exp.Equal(*updated.DriversLicenseExpiration))

	_, err = d.UpdateLicense(ctx, created.ID, "", exp)
	assert.True(t, IsValidation(err))
	_, err = d.UpdateLicense(ctx, created.ID, "key", time.Time{})
	assert.True(t, IsValidation(err))
}

func TestCandidates_ExpiringDocumentation(t *testing.T) {
	d := newTestCandidates(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		expiration time.Time
		state      types.LicenseState
		flagged    bool
	}{
		{"already expired", now.AddDate(0, 0, -1), types.LicenseExpired, true},
		{"exactly sixty days out", now.Add(types.ExpiryWindow), types.LicenseExpiringSoon, true},
		{"one day past the window", now.Add(types.ExpiryWindow + 24*time.Hour), types.LicenseOK, false},
	}

	ids := make(map[string]int)
	for i, tc := range cases {
		created := seedCandidate(t, d)
		exp := tc.expiration
		_, err := d.UpdateLicense(ctx, created.ID, "license-key", exp)
		require.NoError(t, err)
		ids[created.ID] = i
	}

	flagged, err := d.ExpiringDocumentation(ctx, now)
	require.NoError(t, err)
	require.Len(t, flagged, 2)
	for _, f := range flagged {
		tc := cases[ids[f.Candidate.ID]]
		assert.True(t, tc.flagged, "unexpected candidate flagged: %s", tc.name)
		assert.Equal(t, tc.state, f.State, tc.name)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to types.Status
		ok       bool
	}{
		{types.StatusCandidate, types.StatusInterview, true},
		{types.StatusInterview, types.StatusNewHire, true},
		{types.StatusNewHire, types.StatusEmployee, true},
		{types.StatusCandidate, types.StatusInactive, true},
		{types.StatusCandidate, types.StatusNewHire, false},
		{types.StatusEmployee, types.StatusCandidate, false},
		{types.StatusInactive, types.StatusInterview, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCandidates_AdvanceEnforcesWorkflow(t *testing.T) {
	d := newTestCandidates(t)
	ctx := context.Background()
	created := seedCandidate(t, d)

	// candidate -> new-hire is not a legal advance.
	_, err := d.Advance(ctx, created.ID, types.StatusNewHire)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	updated, err := d.Advance(ctx, created.ID, types.StatusInterview)
	require.NoError(t, err)
	assert.Equal(t, types.StatusInterview, updated.Status)

	// interview -> new-hire needs a review on record.
	_, err = d.Advance(ctx, created.ID, types.StatusNewHire)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = d.UpdateInterviewReview(ctx, created.ID, types.InterviewReview{Interviewer: "Sam"})
	require.NoError(t, err)

	updated, err = d.Advance(ctx, created.ID, types.StatusNewHire)
	require.NoError(t, err)
	assert.Equal(t, types.StatusNewHire, updated.Status)
}
