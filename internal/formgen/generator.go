// Package formgen builds application-form structures by prompting the LLM
// backend and validating its output against the form schema.
package formgen

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/xxracer/clearcomply2.1/internal/llm"
	"github.com/xxracer/clearcomply2.1/internal/schemas"
	"github.com/xxracer/clearcomply2.1/internal/types"
)

// Generator turns prompts and structured questionnaires into typed form
// definitions. It performs no retries; failures surface to the caller.
type Generator struct {
	client llm.Client
	logger *zap.Logger
}

// New creates a generator over an LLM client.
func New(client llm.Client, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{client: client, logger: logger}
}

// GenerateFromPrompt builds a form from a free-text description.
func (g *Generator) GenerateFromPrompt(ctx context.Context, req types.GenerateFormRequest) (*types.GeneratedForm, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return g.generate(ctx, BuildPrompt(req.Prompt))
}

// GenerateFromOptions builds a form from the structured questionnaire. The
// backend expands the answers into a coherent field list; sections whose
// include-flags are false must not appear in the output.
func (g *Generator) GenerateFromOptions(ctx context.Context, req types.GenerateFormOptionsRequest) (*types.GeneratedForm, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return g.generate(ctx, BuildOptionsPrompt(req))
}

func (g *Generator) generate(ctx context.Context, prompt string) (*types.GeneratedForm, error) {
	raw, err := g.client.GenerateJSON(ctx, prompt)
	if err != nil {
		g.logger.Warn("form generation call failed", zap.Error(err))
		return nil, &llm.ServiceError{Op: "generate form", Err: err}
	}

	if err := schemas.ValidateGeneratedForm(raw); err != nil {
		g.logger.Warn("form generation output failed schema validation", zap.Error(err))
		return nil, &llm.ServiceError{Op: "validate generated form", Err: err}
	}

	var form types.GeneratedForm
	if err := json.Unmarshal([]byte(raw), &form); err != nil {
		return nil, &llm.ServiceError{Op: "decode generated form", Err: err}
	}

	// The JSON Schema already constrains ids and types; this catches the
	// cross-field invariants it cannot express (select needs options).
	for i := range form.Fields {
		if err := form.Fields[i].Validate(); err != nil {
			return nil, &llm.ServiceError{Op: "validate generated form", Err: err}
		}
	}

	g.logger.Info("form generated",
		zap.String("formName", form.FormName),
		zap.Int("fields", len(form.Fields)))
	return &form, nil
}
