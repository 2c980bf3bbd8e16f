package types

import (
	"github.com/go-playground/validator/v10"
)

// GenerateFormRequest asks the generator for a form from a free-text prompt.
type GenerateFormRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1"`
}

// GenerateFormOptionsRequest asks the generator for a form from a structured
// questionnaire. The generator expands this into a coherent field list.
type GenerateFormOptionsRequest struct {
	FormPurpose              string   `json:"formPurpose" validate:"required,min=1"`
	CompanyName              string   `json:"companyName,omitempty"`
	IncludeLogo              bool     `json:"includeLogo"`
	PersonalInfo             []string `json:"personalInfo" validate:"required,min=1,dive,required"`
	IncludeReferences        bool     `json:"includeReferences"`
	IncludeEducation         bool     `json:"includeEducation"`
	IncludeEmploymentHistory bool     `json:"includeEmploymentHistory"`
	IncludeCredentials       bool     `json:"includeCredentials"`
}

// GeneratedForm is the generator's output for both entry points.
type GeneratedForm struct {
	FormName string      `json:"formName"`
	Fields   []FormField `json:"fields"`
}

// DocumentCheckRequest asks which required documents a candidate has not yet
// submitted. Matching is semantic, not exact-string.
type DocumentCheckRequest struct {
	CandidateProfile   string   `json:"candidateProfile"`
	OnboardingPhase    string   `json:"onboardingPhase,omitempty"`
	SubmittedDocuments []string `json:"submittedDocuments"`
	RequiredDocuments  []string `json:"requiredDocuments" validate:"required,min=1"`
}

// DocumentCheckResult is the checker's response.
type DocumentCheckResult struct {
	MissingDocuments []string `json:"missingDocuments"`
}

// Validate validates the GenerateFormRequest using the validator.
func (r *GenerateFormRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the GenerateFormOptionsRequest using the validator.
func (r *GenerateFormOptionsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the DocumentCheckRequest using the validator.
func (r *DocumentCheckRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
