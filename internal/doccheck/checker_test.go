package doccheck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxracer/clearcomply2.1/internal/llm"
	"github.com/xxracer/clearcomply2.1/internal/types"
)

type fakeClient struct {
	response string
	err      error
	prompt   string
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestCheck_ReportsUncoveredRequirements(t *testing.T) {
	client := &fakeClient{response: `{"missingDocuments": ["Proof of Identity & Social Security"]}`}
	checker := New(client, nil)

	req := types.DocumentCheckRequest{
		CandidateProfile: "Name: Maria Lopez\nPosition Applying For: Caregiver\n",
		OnboardingPhase:  "documentation",
		SubmittedDocuments: []string{
			"Form I-9 (Employment Eligibility)",
		},
		RequiredDocuments: []string{
			"Form I-9 (Employment Eligibility)",
			"Proof of Identity & Social Security",
		},
	}
	result, err := checker.Check(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Proof of Identity & Social Security"}, result.MissingDocuments)

	assert.Contains(t, client.prompt, "Maria Lopez")
	assert.Contains(t, client.prompt, "documentation")
	assert.Contains(t, client.prompt, "- Form I-9 (Employment Eligibility)")
	assert.Contains(t, client.prompt, "by meaning")
}

func TestCheck_EmptyMissingListMeansComplete(t *testing.T) {
	checker := New(&fakeClient{response: `{"missingDocuments": []}`}, nil)

	result, err := checker.Check(context.Background(), types.DocumentCheckRequest{
		SubmittedDocuments: []string{"Resume"},
		RequiredDocuments:  []string{"Resume"},
	})
	require.NoError(t, err)
	assert.Empty(t, result.MissingDocuments)
	assert.NotNil(t, result.MissingDocuments)
}

func TestCheck_RequiresRequiredDocuments(t *testing.T) {
	checker := New(&fakeClient{response: `{"missingDocuments": []}`}, nil)

	_, err := checker.Check(context.Background(), types.DocumentCheckRequest{
		SubmittedDocuments: []string{"Resume"},
	})
	require.Error(t, err)
}

func TestCheck_BackendFailure(t *testing.T) {
	checker := New(&fakeClient{err: errors.New("quota exceeded")}, nil)

	_, err := checker.Check(context.Background(), types.DocumentCheckRequest{
		RequiredDocuments: []string{"Resume"},
	})
	require.Error(t, err)
	var se *llm.ServiceError
	assert.ErrorAs(t, err, &se)
}

func TestCheck_InvalidOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "the candidate is missing a few things"},
		{"wrong shape", `{"missing": ["Resume"]}`},
		{"non-string entries", `{"missingDocuments": [1, 2]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := New(&fakeClient{response: tt.response}, nil)
			_, err := checker.Check(context.Background(), types.DocumentCheckRequest{
				RequiredDocuments: []string{"Resume"},
			})
			require.Error(t, err)
			var se *llm.ServiceError
			assert.ErrorAs(t, err, &se)
		})
	}
}

func TestAllMissing(t *testing.T) {
	req := types.DocumentCheckRequest{
		RequiredDocuments: []string{"Form I-9 (Employment Eligibility)", "Proof of Address"},
	}
	result := AllMissing(req)
	assert.Equal(t, req.RequiredDocuments, result.MissingDocuments)

	// The fallback owns its slice; mutating it must not touch the request.
	result.MissingDocuments[0] = "changed"
	assert.Equal(t, "Form I-9 (Employment Eligibility)", req.RequiredDocuments[0])
}

func TestBuildProfile(t *testing.T) {
	c := types.Candidate{
		FirstName:   "Dana",
		LastName:    "Reyes",
		Position:    "Driver",
		ApplyingFor: []string{"Acme Staffing"},
		Resume:      types.SubmittedSentinel,
		I9:          "i9-dana-123",
	}
	profile := BuildProfile(c)
	assert.Contains(t, profile, "Name: Dana Reyes")
	assert.Contains(t, profile, "Position Applying For: Driver")
	assert.Contains(t, profile, "Applying to: Acme Staffing")
	assert.Contains(t, profile, "Resume")
	assert.Contains(t, profile, "Form I-9 (Employment Eligibility)")

	empty := BuildProfile(types.Candidate{FirstName: "No", LastName: "Docs"})
	assert.Contains(t, empty, "Submitted Documents: None")
}
