package doccheck

import (
	"fmt"
	"strings"

	"github.com/xxracer/clearcomply2.1/internal/types"
)

const checkContract = `Return ONLY valid JSON matching this exact structure:
{
  "missingDocuments": ["string"]
}

IMPORTANT:
- missingDocuments must contain the exact required-document names that are not covered.
- An empty array means every required document is covered.
- Return ONLY the JSON object, no markdown, no explanation, no code blocks.
`

// BuildCheckPrompt constructs the completeness-check prompt. The model is
// asked to match documents by meaning, so a "Driver's License" submission
// can satisfy a "Proof of Identity" requirement.
func BuildCheckPrompt(req types.DocumentCheckRequest) string {
	var sb strings.Builder
	sb.WriteString("You are an HR onboarding assistant. Determine which required documents a candidate has not yet submitted.\n\n")
	sb.WriteString("Candidate profile:\n")
	sb.WriteString(req.CandidateProfile)
	sb.WriteString("\n\n")
	if req.OnboardingPhase != "" {
		sb.WriteString(fmt.Sprintf("Current onboarding phase: %s\n\n", req.OnboardingPhase))
	}
	sb.WriteString("Required documents:\n")
	for _, d := range req.RequiredDocuments {
		sb.WriteString(fmt.Sprintf("- %s\n", d))
	}
	sb.WriteString("\nSubmitted documents:\n")
	if len(req.SubmittedDocuments) == 0 {
		sb.WriteString("- None\n")
	} else {
		for _, d := range req.SubmittedDocuments {
			sb.WriteString(fmt.Sprintf("- %s\n", d))
		}
	}
	sb.WriteString("\nCompare the two lists by meaning, not by exact wording: a submitted document covers a requirement when it plausibly serves the same purpose. List every required document that no submitted document covers.\n\n")
	sb.WriteString(checkContract)
	return sb.String()
}

// BuildProfile renders a candidate into the free-text profile the check
// prompt expects.
func BuildProfile(c types.Candidate) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name: %s %s\n", c.FirstName, c.LastName))
	if c.Position != "" {
		sb.WriteString(fmt.Sprintf("Position Applying For: %s\n", c.Position))
	}
	if len(c.ApplyingFor) > 0 {
		sb.WriteString(fmt.Sprintf("Applying to: %s\n", strings.Join(c.ApplyingFor, ", ")))
	}
	submitted := c.SubmittedDocuments()
	if len(submitted) == 0 {
		sb.WriteString("Submitted Documents: None\n")
	} else {
		sb.WriteString(fmt.Sprintf("Submitted Documents: %s\n", strings.Join(submitted, ", ")))
	}
	return sb.String()
}
