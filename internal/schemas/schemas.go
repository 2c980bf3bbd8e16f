// Package schemas validates LLM output against JSON Schemas before it is
// accepted into the domain. A response that fails validation is a hard
// error, never silently coerced.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// GeneratedFormSchema constrains the form generator's output: a form name
// plus a list of typed fields over the fixed field-type enum.
const GeneratedFormSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["formName", "fields"],
  "properties": {
    "formName": { "type": "string", "minLength": 1 },
    "fields": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "label", "type", "required"],
        "properties": {
          "id": { "type": "string", "pattern": "^[A-Za-z_][A-Za-z0-9_]*$" },
          "label": { "type": "string", "minLength": 1 },
          "type": {
            "type": "string",
            "enum": ["text", "number", "date", "email", "phone", "textarea", "select", "checkbox"]
          },
          "options": {
            "type": "array",
            "items": { "type": "string" }
          },
          "required": { "type": "boolean" }
        }
      }
    }
  }
}`

// MissingDocumentsSchema constrains the document checker's output.
const MissingDocumentsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["missingDocuments"],
  "properties": {
    "missingDocuments": {
      "type": "array",
      "items": { "type": "string" }
    }
  }
}`

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks JSON content against a schema, both given as strings.
func Validate(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed during load: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// ValidateGeneratedForm checks raw generator output against the form schema.
func ValidateGeneratedForm(jsonContent string) error {
	return Validate(GeneratedFormSchema, jsonContent)
}

// ValidateMissingDocuments checks raw checker output against its schema.
func ValidateMissingDocuments(jsonContent string) error {
	return Validate(MissingDocumentsSchema, jsonContent)
}
