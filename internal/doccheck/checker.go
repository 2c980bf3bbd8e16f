// Package doccheck flags required onboarding documents a candidate has not
// submitted yet. Matching is semantic (the LLM decides whether "Driver's
// License" satisfies "Proof of Identity"), not string equality.
package doccheck

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/xxracer/clearcomply2.1/internal/llm"
	"github.com/xxracer/clearcomply2.1/internal/schemas"
	"github.com/xxracer/clearcomply2.1/internal/types"
)

// Checker asks the LLM backend which required documents are still missing.
type Checker struct {
	client llm.Client
	logger *zap.Logger
}

// New creates a checker over an LLM client.
func New(client llm.Client, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{client: client, logger: logger}
}

// Check returns the subset of required documents the candidate has not
// covered. Callers that cannot tolerate an error should fall back to
// AllMissing: it is safer to re-request a document than to silently mark
// it satisfied.
func (c *Checker) Check(ctx context.Context, req types.DocumentCheckRequest) (*types.DocumentCheckResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	raw, err := c.client.GenerateJSON(ctx, BuildCheckPrompt(req))
	if err != nil {
		c.logger.Warn("document check call failed", zap.Error(err))
		return nil, &llm.ServiceError{Op: "check documents", Err: err}
	}

	if err := schemas.ValidateMissingDocuments(raw); err != nil {
		c.logger.Warn("document check output failed schema validation", zap.Error(err))
		return nil, &llm.ServiceError{Op: "validate document check", Err: err}
	}

	var result types.DocumentCheckResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &llm.ServiceError{Op: "decode document check", Err: err}
	}
	if result.MissingDocuments == nil {
		result.MissingDocuments = []string{}
	}

	c.logger.Info("document check completed",
		zap.Int("required", len(req.RequiredDocuments)),
		zap.Int("missing", len(result.MissingDocuments)))
	return &result, nil
}

// AllMissing is the conservative fallback when the checker cannot answer:
// every required document is reported missing.
func AllMissing(req types.DocumentCheckRequest) *types.DocumentCheckResult {
	missing := make([]string, len(req.RequiredDocuments))
	copy(missing, req.RequiredDocuments)
	return &types.DocumentCheckResult{MissingDocuments: missing}
}
