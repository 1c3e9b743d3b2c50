package mark_reviewed

import (
	"context"
	"encoding/json"
	"fmt"

	auditcontracts "github.com/light-bringer/finrecon-service/internal/app/audit/contracts"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/contracts"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/domain"
	"github.com/light-bringer/finrecon-service/internal/pkg/clock"
	"github.com/light-bringer/finrecon-service/internal/pkg/committer"
)

// Request contains the data needed to flip the reviewed flag on one
// (product, country) override record.
type Request struct {
	ProductID   string
	CountryCode string
	Reviewed    bool
}

// Interactor handles the mark reviewed use case. The flag rides in the
// override blob but has no effect on pricing resolution; flipping it on
// a pair with no record creates an otherwise-empty one.
type Interactor struct {
	overrideRepo contracts.OverrideRepository
	auditRepo    auditcontracts.AuditRepository
	applier      committer.Applier
	clock        clock.Clock
}

// NewInteractor creates a new mark reviewed interactor.
func NewInteractor(
	overrideRepo contracts.OverrideRepository,
	auditRepo auditcontracts.AuditRepository,
	applier committer.Applier,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		overrideRepo: overrideRepo,
		auditRepo:    auditRepo,
		applier:      applier,
		clock:        clk,
	}
}

// Execute flips the reviewed flag following the Golden Mutation Pattern.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.ProductID == "" {
		return domain.ErrEmptyProductID
	}
	if req.CountryCode == "" {
		return domain.ErrEmptyCountryCode
	}

	record, err := i.overrideRepo.Get(ctx, req.ProductID, req.CountryCode)
	if err != nil {
		return err
	}
	if record == nil {
		record = domain.NewOverrideRecord(req.ProductID, req.CountryCode)
	}

	if record.Reviewed == req.Reviewed {
		return nil // No change
	}
	record.Reviewed = req.Reviewed

	plan := committer.NewPlan()

	mut, err := i.overrideRepo.UpsertMut(record)
	if err != nil {
		return err
	}
	plan.Add(mut)

	event := &domain.OverrideReviewedEvent{
		ProductID:   req.ProductID,
		CountryCode: req.CountryCode,
		Reviewed:    req.Reviewed,
		UpdatedAt:   i.clock.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}
	auditEvent := i.auditRepo.EnrichEvent(event, string(payload))
	plan.Add(i.auditRepo.InsertMut(auditEvent))

	if err := i.applier.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
