package directory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xxracer/clearcomply2.1/internal/events"
	"github.com/xxracer/clearcomply2.1/internal/kv"
	"github.com/xxracer/clearcomply2.1/internal/types"
)

// Candidates is the Candidate Directory. It mirrors the Company Directory's
// whole-collection read/overwrite pattern.
type Candidates struct {
	store  kv.Store
	bus    *events.Bus
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewCandidates creates the directory over a blob store.
func NewCandidates(store kv.Store, bus *events.Bus, logger *zap.Logger) *Candidates {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Candidates{
		store:  store,
		bus:    bus,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// List returns all candidates; empty when none are stored.
func (d *Candidates) List(ctx context.Context) ([]types.Candidate, error) {
	return loadCollection[types.Candidate](ctx, d.store, CandidatesKey)
}

// Get returns the candidate with the matching id.
func (d *Candidates) Get(ctx context.Context, id string) (*types.Candidate, error) {
	candidates, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if candidates[i].ID == id {
			return &candidates[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "candidate", ID: id}
}

// Create appends a new application record. The id, submission timestamp and
// the initial candidate status are assigned here regardless of input.
func (d *Candidates) Create(ctx context.Context, candidate types.Candidate) (*types.Candidate, error) {
	candidates, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	candidate.ID = d.newID()
	candidate.Date = d.now()
	candidate.Status = types.StatusCandidate
	candidates = append(candidates, candidate)
	if err := saveCollection(ctx, d.store, CandidatesKey, candidates); err != nil {
		return nil, err
	}
	d.publish("created", candidate.ID)
	return &candidates[len(candidates)-1], nil
}

// UpdateStatus overwrites the candidate's status unconditionally. Transition
// legality lives in CanTransition and is advisory only; the dashboard may
// set any status directly.
func (d *Candidates) UpdateStatus(ctx context.Context, id string, status types.Status) (*types.Candidate, error) {
	if !status.IsValid() {
		return nil, &ValidationError{Msg: "unknown status: " + string(status)}
	}
	return d.mutate(ctx, id, func(c *types.Candidate) error {
		c.Status = status
		return nil
	})
}

// UpdateInterviewReview attaches the review payload, making the candidate
// eligible for the documentation phase.
func (d *Candidates) UpdateInterviewReview(ctx context.Context, id string, review types.InterviewReview) (*types.Candidate, error) {
	return d.mutate(ctx, id, func(c *types.Candidate) error {
		if review.Date.IsZero() {
			review.Date = d.now()
		}
		c.InterviewReview = &review
		return nil
	})
}

// UpdateDocuments merges the supplied document map into the record. Values
// are blob keys or the "submitted" sentinel.
func (d *Candidates) UpdateDocuments(ctx context.Context, id string, docs map[string]string) (*types.Candidate, error) {
	return d.mutate(ctx, id, func(c *types.Candidate) error {
		c.MergeDocuments(docs)
		return nil
	})
}

// UpdateLicense stores a replacement driver's-license blob key and the new
// expiration date.
func (d *Candidates) UpdateLicense(ctx context.Context, id, blobKey string, expiration time.Time) (*types.Candidate, error) {
	if blobKey == "" || expiration.IsZero() {
		return nil, &ValidationError{Msg: "license renewal needs both a file and an expiration date"}
	}
	return d.mutate(ctx, id, func(c *types.Candidate) error {
		c.DriversLicense = blobKey
		exp := expiration
		c.DriversLicenseExpiration = &exp
		return nil
	})
}

// Delete permanently removes the record; it is the "reject candidate"
// action. There is no soft delete or audit trail. Absent ids are a no-op.
func (d *Candidates) Delete(ctx context.Context, id string) error {
	candidates, err := d.List(ctx)
	if err != nil {
		return err
	}
	kept := candidates[:0]
	for _, c := range candidates {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if err := saveCollection(ctx, d.store, CandidatesKey, kept); err != nil {
		return err
	}
	d.publish("deleted", id)
	return nil
}

func (d *Candidates) mutate(ctx context.Context, id string, mutate func(*types.Candidate) error) (*types.Candidate, error) {
	candidates, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range candidates {
		if candidates[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &NotFoundError{Kind: "candidate", ID: id}
	}
	if err := mutate(&candidates[idx]); err != nil {
		return nil, err
	}
	if err := saveCollection(ctx, d.store, CandidatesKey, candidates); err != nil {
		return nil, err
	}
	d.publish("updated", id)
	return &candidates[idx], nil
}

func (d *Candidates) publish(action, id string) {
	if d.bus != nil {
		d.bus.Publish(events.Change{Collection: events.CollectionCandidates, Action: action, ID: id})
	}
	d.logger.Debug("candidate directory changed",
		zap.String("action", action), zap.String("id", id))
}
