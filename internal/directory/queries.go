package directory

import (
	"context"
	"time"

	"github.com/xxracer/clearcomply2.1/internal/types"
)

// Derived queries are computed over List, never separately persisted.

// NewCandidates returns candidates still in the initial state.
func (d *Candidates) NewCandidates(ctx context.Context) ([]types.Candidate, error) {
	return d.withStatus(ctx, types.StatusCandidate)
}

// Interviewing returns candidates in the interview phase.
func (d *Candidates) Interviewing(ctx context.Context) ([]types.Candidate, error) {
	return d.withStatus(ctx, types.StatusInterview)
}

// NewHires returns candidates advanced past interview, pending final
// documentation.
func (d *Candidates) NewHires(ctx context.Context) ([]types.Candidate, error) {
	return d.withStatus(ctx, types.StatusNewHire)
}

// ExpiringLicense pairs a candidate with the expiry classification of their
// driver's license.
type ExpiringLicense struct {
	Candidate types.Candidate    `json:"candidate"`
	State     types.LicenseState `json:"state"`
}

// ExpiringDocumentation returns everyone whose driver's license is expired
// or expires within the 60-day window, classified for display.
func (d *Candidates) ExpiringDocumentation(ctx context.Context, now time.Time) ([]ExpiringLicense, error) {
	candidates, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []ExpiringLicense
	for _, c := range candidates {
		if c.DriversLicenseExpiration == nil {
			continue
		}
		state := types.ClassifyLicense(*c.DriversLicenseExpiration, now)
		if state == types.LicenseOK {
			continue
		}
		out = append(out, ExpiringLicense{Candidate: c, State: state})
	}
	return out, nil
}

func (d *Candidates) withStatus(ctx context.Context, status types.Status) ([]types.Candidate, error) {
	candidates, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []types.Candidate
	for _, c := range candidates {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}
