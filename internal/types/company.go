// Package types provides type definitions for structured data used throughout the clearcomply system.
package types

import (
	"fmt"
	"regexp"
	"time"
)

// FormType distinguishes the hardcoded template application form from a
// company-specific custom form.
type FormType string

// Form type constants
const (
	FormTypeTemplate FormType = "template"
	FormTypeCustom   FormType = "custom"
)

// FieldType is the input type of a generated form field.
type FieldType string

// Field type constants match the generator's output contract.
const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldEmail    FieldType = "email"
	FieldPhone    FieldType = "phone"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
)

// ValidFieldTypes lists every accepted field type, in the order the
// generator schema declares them.
var ValidFieldTypes = []FieldType{
	FieldText, FieldNumber, FieldDate, FieldEmail,
	FieldPhone, FieldTextarea, FieldSelect, FieldCheckbox,
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FormField is a single typed field of a generated application form.
type FormField struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Options  []string  `json:"options,omitempty"`
	Required bool      `json:"required"`
}

// Validate checks the field invariants: the id must be usable as a record
// key and select fields must carry at least one option.
func (f *FormField) Validate() error {
	if !identifierRe.MatchString(f.ID) {
		return fmt.Errorf("field id %q is not a valid identifier", f.ID)
	}
	if f.Label == "" {
		return fmt.Errorf("field %q has no label", f.ID)
	}
	valid := false
	for _, t := range ValidFieldTypes {
		if f.Type == t {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("field %q has unknown type %q", f.ID, f.Type)
	}
	if f.Type == FieldSelect && len(f.Options) == 0 {
		return fmt.Errorf("select field %q has no options", f.ID)
	}
	return nil
}

// ApplicationForm describes how a process collects candidate data.
type ApplicationForm struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Type   FormType    `json:"type"`
	Images []string    `json:"images,omitempty"`
	Fields []FormField `json:"fields,omitempty"`
}

// FormKind is the resolved rendering mode of an application form.
type FormKind string

// Resolved form kinds
const (
	FormKindAI       FormKind = "ai"       // interactive form built from generated fields
	FormKindImage    FormKind = "image"    // read-only scanned-page carousel, no data capture
	FormKindTemplate FormKind = "template" // hardcoded default application form
)

// Kind resolves the rendering mode. Custom forms with fields win over
// image-only custom forms; everything else falls back to the template.
func (f *ApplicationForm) Kind() FormKind {
	if f.Type == FormTypeCustom {
		if len(f.Fields) > 0 {
			return FormKindAI
		}
		if len(f.Images) > 0 {
			return FormKindImage
		}
	}
	return FormKindTemplate
}

// RequiredDoc is one entry of a process's required-document checklist.
// Labels are free text configured per company.
type RequiredDoc struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"` // currently always "upload"
}

// InterviewScreen configures the interview phase presentation.
type InterviewScreen struct {
	Type            FormType `json:"type"`
	BackgroundImage string   `json:"backgroundImage,omitempty"`
}

// OnboardingProcess bundles an application form, interview screen and
// required-document checklist. It is embedded in exactly one company.
type OnboardingProcess struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	ApplicationForm ApplicationForm `json:"applicationForm"`
	InterviewScreen InterviewScreen `json:"interviewScreen"`
	RequiredDocs    []RequiredDoc   `json:"requiredDocs,omitempty"`
}

// Company is a configured employer with its onboarding processes.
type Company struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	Address             string              `json:"address,omitempty"`
	Phone               string              `json:"phone,omitempty"`
	Fax                 string              `json:"fax,omitempty"`
	Email               string              `json:"email,omitempty"`
	Logo                string              `json:"logo,omitempty"` // blob key in the KV store
	CreatedAt           time.Time           `json:"created_at"`
	OnboardingProcesses []OnboardingProcess `json:"onboardingProcesses,omitempty"`
}

// Process returns the embedded process with the given id, or nil.
func (c *Company) Process(id string) *OnboardingProcess {
	for i := range c.OnboardingProcesses {
		if c.OnboardingProcesses[i].ID == id {
			return &c.OnboardingProcesses[i]
		}
	}
	return nil
}

// CompanyPatch carries partial company fields for create-or-update.
// Nil pointers mean "leave unchanged" on update.
type CompanyPatch struct {
	ID      string  `json:"id,omitempty"`
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Fax     *string `json:"fax,omitempty"`
	Email   *string `json:"email,omitempty"`
	Logo    *string `json:"logo,omitempty"`
}

// Apply merges the patch into the company in place.
func (p *CompanyPatch) Apply(c *Company) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Fax != nil {
		c.Fax = *p.Fax
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Logo != nil {
		c.Logo = *p.Logo
	}
}
