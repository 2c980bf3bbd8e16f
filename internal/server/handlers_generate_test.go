package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxracer/clearcomply2.1/internal/types"
)

const validFormResponse = `{
  "formName": "Caregiver Application",
  "fields": [
    {"id": "fullName", "label": "Full Name", "type": "text", "required": true}
  ]
}`

func TestGenerateForm(t *testing.T) {
	s := newTestServer(t, &fakeLLM{response: validFormResponse})

	var form types.GeneratedForm
	rec := doJSON(t, s, http.MethodPost, "/generate/form",
		map[string]string{"prompt": "An application form for caregivers"}, &form)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Caregiver Application", form.FormName)
	require.Len(t, form.Fields, 1)
}

func TestGenerateForm_EmptyPromptIs400(t *testing.T) {
	s := newTestServer(t, &fakeLLM{response: validFormResponse})

	rec := doJSON(t, s, http.MethodPost, "/generate/form", map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateForm_BackendFailureIs502(t *testing.T) {
	s := newTestServer(t, &fakeLLM{err: errors.New("quota exceeded")})

	rec := doJSON(t, s, http.MethodPost, "/generate/form",
		map[string]string{"prompt": "x"}, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGenerateForm_UnconfiguredIs503(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodPost, "/generate/form",
		map[string]string{"prompt": "x"}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGenerateFormFromOptions(t *testing.T) {
	s := newTestServer(t, &fakeLLM{response: validFormResponse})

	var form types.GeneratedForm
	rec := doJSON(t, s, http.MethodPost, "/generate/form-from-options",
		map[string]any{
			"formPurpose":  "Caregiver Application",
			"personalInfo": []string{"Full Name"},
		}, &form)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, form.Fields)

	rec = doJSON(t, s, http.MethodPost, "/generate/form-from-options",
		map[string]any{"formPurpose": "Caregiver Application"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "personalInfo is required")
}

func TestCheckDocuments(t *testing.T) {
	s := newTestServer(t, &fakeLLM{response: `{"missingDocuments": ["Proof of Address"]}`})

	var result types.DocumentCheckResult
	rec := doJSON(t, s, http.MethodPost, "/documents/check",
		map[string]any{
			"candidateProfile":   "Name: Dana Reyes",
			"submittedDocuments": []string{"Resume"},
			"requiredDocuments":  []string{"Resume", "Proof of Address"},
		}, &result)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"Proof of Address"}, result.MissingDocuments)
}

func TestCheckDocuments_FailureReportsAllMissing(t *testing.T) {
	required := []string{"Form I-9 (Employment Eligibility)", "Proof of Identity & Social Security"}

	tests := []struct {
		name string
		llm  *fakeLLM
	}{
		{"backend error", &fakeLLM{err: errors.New("timeout")}},
		{"invalid output", &fakeLLM{response: "not json"}},
		{"not configured", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.llm)

			var result types.DocumentCheckResult
			rec := doJSON(t, s, http.MethodPost, "/documents/check",
				map[string]any{
					"candidateProfile":  "Name: Dana Reyes",
					"requiredDocuments": required,
				}, &result)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, required, result.MissingDocuments)
		})
	}
}

func TestCheckDocuments_RequiresRequiredDocuments(t *testing.T) {
	s := newTestServer(t, &fakeLLM{response: `{"missingDocuments": []}`})

	rec := doJSON(t, s, http.MethodPost, "/documents/check",
		map[string]any{"candidateProfile": "Name: Dana Reyes"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
