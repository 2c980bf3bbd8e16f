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

// Companies is the Company Directory.
type Companies struct {
	store  kv.Store
	bus    *events.Bus
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewCompanies creates the directory over a blob store.
func NewCompanies(store kv.Store, bus *events.Bus, logger *zap.Logger) *Companies {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Companies{
		store:  store,
		bus:    bus,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// List returns all companies; empty when none are stored.
func (d *Companies) List(ctx context.Context) ([]types.Company, error) {
	return loadCollection[types.Company](ctx, d.store, CompaniesKey)
}

// Get returns the company with the matching id.
func (d *Companies) Get(ctx context.Context, id string) (*types.Company, error) {
	companies, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range companies {
		if companies[i].ID == id {
			return &companies[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "company", ID: id}
}

// CreateOrUpdate creates a company when the patch carries no id, otherwise
// merges the patch into the existing record. New companies get a default
// onboarding process so dependent screens always have one to show.
func (d *Companies) CreateOrUpdate(ctx context.Context, patch types.CompanyPatch) (*types.Company, error) {
	companies, err := d.List(ctx)
	if err != nil {
		return nil, err
	}

	var saved *types.Company
	action := "updated"
	if patch.ID != "" {
		idx := -1
		for i := range companies {
			if companies[i].ID == patch.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, &NotFoundError{Kind: "company", ID: patch.ID}
		}
		patch.Apply(&companies[idx])
		saved = &companies[idx]
	} else {
		action = "created"
		company := types.Company{
			ID:        d.newID(),
			CreatedAt: d.now(),
		}
		patch.Apply(&company)
		company.OnboardingProcesses = []types.OnboardingProcess{d.defaultProcess()}
		companies = append(companies, company)
		saved = &companies[len(companies)-1]
	}

	if err := saveCollection(ctx, d.store, CompaniesKey, companies); err != nil {
		return nil, err
	}
	d.publish(action, saved.ID)
	return saved, nil
}

// AddProcess appends an onboarding process to a company. The company must be
// named before process configuration is allowed.
func (d *Companies) AddProcess(ctx context.Context, companyID string, process types.OnboardingProcess) (*types.Company, error) {
	return d.mutateCompany(ctx, companyID, func(c *types.Company) error {
		if c.Name == "" {
			return &ValidationError{Msg: "company must be named before adding onboarding processes"}
		}
		if process.ID == "" {
			process.ID = d.newID()
		}
		for _, p := range c.OnboardingProcesses {
			if p.ID == process.ID {
				return &ValidationError{Msg: "process id already exists for this company"}
			}
		}
		c.OnboardingProcesses = append(c.OnboardingProcesses, process)
		return nil
	})
}

// ProcessPatch carries partial onboarding-process fields.
type ProcessPatch struct {
	Name            *string                `json:"name,omitempty"`
	ApplicationForm *types.ApplicationForm `json:"applicationForm,omitempty"`
	InterviewScreen *types.InterviewScreen `json:"interviewScreen,omitempty"`
	RequiredDocs    *[]types.RequiredDoc   `json:"requiredDocs,omitempty"`
}

// UpdateProcess patches fields of one embedded process.
func (d *Companies) UpdateProcess(ctx context.Context, companyID, processID string, patch ProcessPatch) (*types.Company, error) {
	return d.mutateCompany(ctx, companyID, func(c *types.Company) error {
		p := c.Process(processID)
		if p == nil {
			return &NotFoundError{Kind: "process", ID: processID}
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.ApplicationForm != nil {
			p.ApplicationForm = *patch.ApplicationForm
		}
		if patch.InterviewScreen != nil {
			p.InterviewScreen = *patch.InterviewScreen
		}
		if patch.RequiredDocs != nil {
			p.RequiredDocs = *patch.RequiredDocs
		}
		return nil
	})
}

// DeleteProcess removes one embedded process. A company keeps at least one
// process; deleting the last is refused.
func (d *Companies) DeleteProcess(ctx context.Context, companyID, processID string) (*types.Company, error) {
	return d.mutateCompany(ctx, companyID, func(c *types.Company) error {
		if len(c.OnboardingProcesses) <= 1 {
			return &ValidationError{Msg: "a company must keep at least one onboarding process"}
		}
		for i, p := range c.OnboardingProcesses {
			if p.ID == processID {
				c.OnboardingProcesses = append(c.OnboardingProcesses[:i], c.OnboardingProcesses[i+1:]...)
				return nil
			}
		}
		return &NotFoundError{Kind: "process", ID: processID}
	})
}

// Delete removes the company with the matching id. Absent ids are a no-op.
func (d *Companies) Delete(ctx context.Context, id string) error {
	companies, err := d.List(ctx)
	if err != nil {
		return err
	}
	kept := companies[:0]
	for _, c := range companies {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if err := saveCollection(ctx, d.store, CompaniesKey, kept); err != nil {
		return err
	}
	d.publish("deleted", id)
	return nil
}

// DeleteAll clears the entire collection.
func (d *Companies) DeleteAll(ctx context.Context) error {
	if err := d.store.Delete(ctx, CompaniesKey); err != nil {
		return err
	}
	d.publish("cleared", "")
	return nil
}

// DefaultProcess returns the first process of the first company, the
// fallback target for application links without a processId.
func (d *Companies) DefaultProcess(ctx context.Context) (*types.Company, *types.OnboardingProcess, error) {
	companies, err := d.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	for i := range companies {
		if len(companies[i].OnboardingProcesses) > 0 {
			return &companies[i], &companies[i].OnboardingProcesses[0], nil
		}
	}
	return nil, nil, &NotFoundError{Kind: "process", ID: "(default)"}
}

// FindProcess locates a process by id across all companies.
func (d *Companies) FindProcess(ctx context.Context, processID string) (*types.Company, *types.OnboardingProcess, error) {
	companies, err := d.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	for i := range companies {
		if p := companies[i].Process(processID); p != nil {
			return &companies[i], p, nil
		}
	}
	return nil, nil, &NotFoundError{Kind: "process", ID: processID}
}

func (d *Companies) mutateCompany(ctx context.Context, companyID string, mutate func(*types.Company) error) (*types.Company, error) {
	companies, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range companies {
		if companies[i].ID == companyID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &NotFoundError{Kind: "company", ID: companyID}
	}
	if err := mutate(&companies[idx]); err != nil {
		return nil, err
	}
	if err := saveCollection(ctx, d.store, CompaniesKey, companies); err != nil {
		return nil, err
	}
	d.publish("updated", companyID)
	return &companies[idx], nil
}

func (d *Companies) defaultProcess() types.OnboardingProcess {
	return types.OnboardingProcess{
		ID:   d.newID(),
		Name: "Default Onboarding",
		ApplicationForm: types.ApplicationForm{
			ID:   d.newID(),
			Name: "Application Form",
			Type: types.FormTypeTemplate,
		},
		InterviewScreen: types.InterviewScreen{Type: types.FormTypeTemplate},
	}
}

func (d *Companies) publish(action, id string) {
	if d.bus != nil {
		d.bus.Publish(events.Change{Collection: events.CollectionCompanies, Action: action, ID: id})
	}
	d.logger.Debug("company directory changed",
		zap.String("action", action), zap.String("id", id))
}
