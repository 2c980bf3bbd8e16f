package directory

import (
	"context"

	"github.com/xxracer/clearcomply2.1/internal/types"
)

// Transition legality for the intended workflow. The data layer deliberately
// does not enforce this (UpdateStatus stays unconditional); the table is the
// single place the rest of the system asks about legality.
var legalTransitions = map[types.Status][]types.Status{
	types.StatusCandidate: {types.StatusInterview, types.StatusInactive},
	types.StatusInterview: {types.StatusNewHire, types.StatusInactive},
	types.StatusNewHire:   {types.StatusEmployee, types.StatusInactive},
	types.StatusEmployee:  {types.StatusInactive},
	types.StatusInactive:  {},
}

// CanTransition reports whether from → to is part of the intended workflow.
func CanTransition(from, to types.Status) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Advance moves a candidate along the workflow, enforcing the transition
// table. Moving interview → new-hire additionally requires an interview
// review on record, coupling the documentation-phase eligibility signal to
// the status change. Dashboards that need the legacy unconditional write
// use UpdateStatus instead.
func (d *Candidates) Advance(ctx context.Context, id string, to types.Status) (*types.Candidate, error) {
	if !to.IsValid() {
		return nil, &ValidationError{Msg: "unknown status: " + string(to)}
	}
	return d.mutate(ctx, id, func(c *types.Candidate) error {
		if !CanTransition(c.Status, to) {
			return &ValidationError{Msg: "illegal transition " + string(c.Status) + " -> " + string(to)}
		}
		if c.Status == types.StatusInterview && to == types.StatusNewHire && c.InterviewReview == nil {
			return &ValidationError{Msg: "an interview review is required before marking as new hire"}
		}
		c.Status = to
		return nil
	})
}
