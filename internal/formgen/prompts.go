package formgen

import (
	"fmt"
	"strings"

	"github.com/xxracer/clearcomply2.1/internal/types"
)

const outputContract = `Return ONLY valid JSON matching this exact structure:
{
  "formName": "string", // a suitable name for the generated form
  "fields": [
    {
      "id": "string",       // unique machine-readable id, e.g. "firstName"
      "label": "string",    // human-readable label, e.g. "First Name"
      "type": "string",     // one of: text, number, date, email, phone, textarea, select, checkbox
      "options": ["string"], // only for "select" fields: the possible choices
      "required": true
    }
  ]
}

IMPORTANT:
- Every field id must be a valid identifier (letters, digits, underscores; not starting with a digit).
- Use the "select" type with populated options for any field with a predefined set of choices.
- Return ONLY the JSON object, no markdown, no explanation, no code blocks.
`

// BuildPrompt constructs the free-text-mode prompt.
func BuildPrompt(description string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert form designer. Based on the user's prompt, generate a structured form with appropriate fields.\n\n")
	sb.WriteString(fmt.Sprintf("User Prompt: %q\n\n", description))
	sb.WriteString("Generate a list of fields for this form. For each field, provide a unique id, a label, an appropriate input type, and whether it is required. Also provide a suitable name for the overall form.\n\n")
	sb.WriteString(outputContract)
	return sb.String()
}

// BuildOptionsPrompt constructs the structured-mode prompt. Sections whose
// include-flags are false are omitted entirely so the model has no reason
// to invent them.
func BuildOptionsPrompt(req types.GenerateFormOptionsRequest) string {
	var sb strings.Builder
	sb.WriteString("You are an expert form designer. Based on the user's structured requirements, generate a complete and logical form.\n\n")
	sb.WriteString("User's requirements for the form:\n")
	sb.WriteString(fmt.Sprintf("- Purpose of the form: %q\n", req.FormPurpose))
	if req.CompanyName != "" {
		sb.WriteString(fmt.Sprintf("- For company: %q\n", req.CompanyName))
	}
	if req.IncludeLogo {
		sb.WriteString("- The form should have a designated area for a company logo.\n")
	}

	sb.WriteString("\nSections to include:\n")
	sb.WriteString("- Personal Information: the following fields are essential: ")
	sb.WriteString(strings.Join(req.PersonalInfo, ", "))
	sb.WriteString(". Include one form field for every listed item, plus any other logical personal info fields.\n")
	if req.IncludeEducation {
		sb.WriteString("- Education History: a section to detail the applicant's educational background.\n")
	}
	if req.IncludeEmploymentHistory {
		sb.WriteString("- Employment History: a section to list previous jobs, including dates, responsibilities, and reason for leaving.\n")
	}
	if req.IncludeReferences {
		sb.WriteString("- References: a section for personal or professional references.\n")
	}
	if req.IncludeCredentials {
		sb.WriteString("- Credentials and Skills: a section for licenses, certifications, or other specialized skills.\n")
	}
	sb.WriteString("\nDo NOT include any section that is not listed above. The formName should be descriptive and based on the purpose.\n\n")
	sb.WriteString(outputContract)
	return sb.String()
}
