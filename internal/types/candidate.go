package types

import "time"

// Status is the candidate lifecycle state. Rejection is modeled as record
// deletion, not a status.
type Status string

// Candidate lifecycle states
const (
	StatusCandidate Status = "candidate"
	StatusInterview Status = "interview"
	StatusNewHire   Status = "new-hire"
	StatusEmployee  Status = "employee"
	StatusInactive  Status = "inactive"
)

// ValidStatuses lists every accepted candidate status.
var ValidStatuses = []Status{
	StatusCandidate, StatusInterview, StatusNewHire, StatusEmployee, StatusInactive,
}

// IsValid reports whether s is a known lifecycle state.
func (s Status) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// InterviewReview is the structured record an interviewer attaches to a
// candidate after the interview phase.
type InterviewReview struct {
	Interviewer string    `json:"interviewer"`
	Date        time.Time `json:"date"`
	Notes       string    `json:"notes,omitempty"`
	Outcome     string    `json:"outcome,omitempty"`
}

// CandidateDocument is a generic uploaded document outside the fixed
// document slots.
type CandidateDocument struct {
	Title string `json:"title"`
	Key   string `json:"key"` // blob key, or the "submitted" sentinel
}

// SubmittedSentinel marks a document as submitted without an actual blob,
// used by the non-upload simulation flow.
const SubmittedSentinel = "submitted"

// Fixed document slot keys on a candidate record.
const (
	DocKeyResume              = "resume"
	DocKeyDriversLicense      = "driversLicense"
	DocKeyIDCard              = "idCard"
	DocKeyProofOfAddress      = "proofOfAddress"
	DocKeyI9                  = "i9"
	DocKeyW4                  = "w4"
	DocKeyEducationalDiplomas = "educationalDiplomas"
	DocKeyApplicationPDF      = "applicationPdfUrl"
)

// Candidate is one application record, mutated in place as the person moves
// through the onboarding stages.
type Candidate struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	Position    string    `json:"position,omitempty"`
	ApplyingFor []string  `json:"applyingFor,omitempty"`
	Status      Status    `json:"status"`
	Date        time.Time `json:"date"`

	InterviewReview *InterviewReview `json:"interviewReview,omitempty"`

	// Answers captured from an AI-generated custom form, keyed by field id.
	FormAnswers map[string]string `json:"formAnswers,omitempty"`

	// Fixed document slots. Values are blob keys or the "submitted" sentinel.
	Resume                    string     `json:"resume,omitempty"`
	DriversLicense            string     `json:"driversLicense,omitempty"`
	DriversLicenseExpiration  *time.Time `json:"driversLicenseExpiration,omitempty"`
	IDCard                    string     `json:"idCard,omitempty"`
	ProofOfAddress            string     `json:"proofOfAddress,omitempty"`
	I9                        string     `json:"i9,omitempty"`
	W4                        string     `json:"w4,omitempty"`
	EducationalDiplomas       string     `json:"educationalDiplomas,omitempty"`
	ApplicationPDFURL         string     `json:"applicationPdfUrl,omitempty"`

	Documents []CandidateDocument `json:"documents,omitempty"`
}

// MergeDocuments merges a document map into the record. Known keys fill the
// fixed slots; unknown keys accumulate as generic documents, replacing an
// earlier entry with the same title.
func (c *Candidate) MergeDocuments(docs map[string]string) {
	for key, val := range docs {
		switch key {
		case DocKeyResume:
			c.Resume = val
		case DocKeyDriversLicense:
			c.DriversLicense = val
		case DocKeyIDCard:
			c.IDCard = val
		case DocKeyProofOfAddress:
			c.ProofOfAddress = val
		case DocKeyI9:
			c.I9 = val
		case DocKeyW4:
			c.W4 = val
		case DocKeyEducationalDiplomas:
			c.EducationalDiplomas = val
		case DocKeyApplicationPDF:
			c.ApplicationPDFURL = val
		default:
			replaced := false
			for i := range c.Documents {
				if c.Documents[i].Title == key {
					c.Documents[i].Key = val
					replaced = true
					break
				}
			}
			if !replaced {
				c.Documents = append(c.Documents, CandidateDocument{Title: key, Key: val})
			}
		}
	}
}

// SubmittedDocuments returns human-readable labels for every populated
// document slot plus the generic document titles. The labels feed the
// document-completeness check, which matches them semantically against the
// configured required-document labels.
func (c *Candidate) SubmittedDocuments() []string {
	var out []string
	slot := func(val, label string) {
		if val != "" {
			out = append(out, label)
		}
	}
	slot(c.Resume, "Resume")
	slot(c.DriversLicense, "Driver's License")
	slot(c.IDCard, "ID Card")
	slot(c.ProofOfAddress, "Proof of Address")
	slot(c.I9, "Form I-9 (Employment Eligibility)")
	slot(c.W4, "Form W-4 (Tax Withholding)")
	slot(c.EducationalDiplomas, "Educational Diplomas")
	slot(c.ApplicationPDFURL, "Signed Application")
	for _, d := range c.Documents {
		out = append(out, d.Title)
	}
	return out
}

// LicenseState classifies a driver's-license expiration date relative to now.
type LicenseState string

// License expiry classifications
const (
	LicenseOK           LicenseState = "ok"
	LicenseExpiringSoon LicenseState = "expiring-soon"
	LicenseExpired      LicenseState = "expired"
)

// ExpiryWindow is how far ahead the expiring-documentation view looks.
const ExpiryWindow = 60 * 24 * time.Hour

// ClassifyLicense returns the expiry state of an expiration date. A date
// exactly at now+60d still counts as expiring soon; anything strictly before
// now is expired.
func ClassifyLicense(expiration, now time.Time) LicenseState {
	if expiration.Before(now) {
		return LicenseExpired
	}
	if !expiration.After(now.Add(ExpiryWindow)) {
		return LicenseExpiringSoon
	}
	return LicenseOK
}
