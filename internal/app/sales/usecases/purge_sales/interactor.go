package purge_sales

import (
	"context"
	"encoding/json"
	"fmt"

	auditcontracts "github.com/light-bringer/finrecon-service/internal/app/audit/contracts"
	"github.com/light-bringer/finrecon-service/internal/app/sales/contracts"
	"github.com/light-bringer/finrecon-service/internal/app/sales/domain"
	"github.com/light-bringer/finrecon-service/internal/pkg/clock"
	"github.com/light-bringer/finrecon-service/internal/pkg/committer"
)

// Request names the sales year to purge.
type Request struct {
	Year int64
}

// Result reports how many rows were deleted.
type Result struct {
	Year        int64
	RowsDeleted int64
}

// Interactor handles the purge sales year use case. The partitioned
// delete runs outside the commit plan (partitioned DML is its own
// transaction); only the audit event goes through the committer.
type Interactor struct {
	salesRepo contracts.SalesRepository
	auditRepo auditcontracts.AuditRepository
	applier   committer.Applier
	clock     clock.Clock
}

// NewInteractor creates a new purge sales interactor.
func NewInteractor(
	salesRepo contracts.SalesRepository,
	auditRepo auditcontracts.AuditRepository,
	applier committer.Applier,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		salesRepo: salesRepo,
		auditRepo: auditRepo,
		applier:   applier,
		clock:     clk,
	}
}

// Execute bulk-deletes one year of sales records.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	if req.Year < 1000 || req.Year > 9999 {
		return nil, domain.ErrInvalidYear
	}

	deleted, err := i.salesRepo.PurgeYear(ctx, req.Year)
	if err != nil {
		return nil, err
	}

	event := &domain.SalesYearPurgedEvent{
		Year:        req.Year,
		RowsDeleted: deleted,
		PurgedAt:    i.clock.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize event: %w", err)
	}

	plan := committer.NewPlan()
	auditEvent := i.auditRepo.EnrichEvent(event, string(payload))
	plan.Add(i.auditRepo.InsertMut(auditEvent))

	if err := i.applier.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to commit audit event: %w", err)
	}

	return &Result{Year: req.Year, RowsDeleted: deleted}, nil
}
