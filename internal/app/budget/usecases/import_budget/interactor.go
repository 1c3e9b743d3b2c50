package import_budget

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	auditcontracts "github.com/light-bringer/finrecon-service/internal/app/audit/contracts"
	"github.com/light-bringer/finrecon-service/internal/app/budget/contracts"
	"github.com/light-bringer/finrecon-service/internal/app/budget/domain"
	pricingcontracts "github.com/light-bringer/finrecon-service/internal/app/pricing/contracts"
	"github.com/light-bringer/finrecon-service/internal/pkg/clock"
	"github.com/light-bringer/finrecon-service/internal/pkg/committer"
	"github.com/light-bringer/finrecon-service/internal/pkg/ident"
)

// Row is one already-parsed budget line. File parsing happens upstream;
// the interactor only sees structured rows.
type Row struct {
	CountryCode string
	ProductName string
	Months      [12]int64
}

// Request holds a full year's budget rows for import.
type Request struct {
	Year int64
	Rows []Row
}

// Result reports how many entries were written and how many could be
// linked to a catalog product.
type Result struct {
	Entries        int64
	LinkedProducts int64
}

// Interactor handles the budget import use case.
//
// Every entry's total is recomputed from its twelve monthly columns;
// whatever total the upstream file claims is ignored, keeping the
// sum invariant true by construction. Entry ids are derived from
// (year, country, normalized product key), so re-importing a corrected
// year replaces each logical row in place instead of duplicating it.
// The catalog link is best effort: reconciliation joins by normalized
// name, so an unlinked entry still participates fully.
type Interactor struct {
	budgetRepo  contracts.BudgetRepository
	productRepo pricingcontracts.ProductRepository
	auditRepo   auditcontracts.AuditRepository
	matcher     *ident.Matcher
	applier     committer.Applier
	clock       clock.Clock
}

// NewInteractor creates a new budget import interactor.
func NewInteractor(
	budgetRepo contracts.BudgetRepository,
	productRepo pricingcontracts.ProductRepository,
	auditRepo auditcontracts.AuditRepository,
	matcher *ident.Matcher,
	applier committer.Applier,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		budgetRepo:  budgetRepo,
		productRepo: productRepo,
		auditRepo:   auditRepo,
		matcher:     matcher,
		applier:     applier,
		clock:       clk,
	}
}

// Execute imports one year of budget rows following the Golden Mutation Pattern.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	if req.Year < 1000 || req.Year > 9999 {
		return nil, domain.ErrInvalidYear
	}
	if len(req.Rows) == 0 {
		return nil, domain.ErrNoBudgetRows
	}

	catalog, err := i.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	catalogKeys := make([]string, len(catalog))
	for idx, p := range catalog {
		catalogKeys[idx] = ident.NormalizeProductKey(p.Name())
	}

	plan := committer.NewPlan()
	var linked int64

	for _, row := range req.Rows {
		rowKey := ident.NormalizeProductKey(row.ProductName)
		entry := &contracts.BudgetEntry{
			EntryID:     entryID(req.Year, row.CountryCode, rowKey),
			CountryCode: row.CountryCode,
			ProductName: row.ProductName,
			Year:        req.Year,
			Months:      row.Months,
		}
		for _, units := range row.Months {
			entry.TotalUnits += units
		}

		for idx, catKey := range catalogKeys {
			if i.matcher.SameKey(rowKey, catKey) {
				entry.ProductID = catalog[idx].ID()
				linked++
				break
			}
		}

		plan.Add(i.budgetRepo.InsertMut(entry))
	}

	event := &domain.BudgetImportedEvent{
		Year:           req.Year,
		Entries:        int64(len(req.Rows)),
		LinkedProducts: linked,
		ImportedAt:     i.clock.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize event: %w", err)
	}
	auditEvent := i.auditRepo.EnrichEvent(event, string(payload))
	plan.Add(i.auditRepo.InsertMut(auditEvent))

	if err := i.applier.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &Result{Entries: int64(len(req.Rows)), LinkedProducts: linked}, nil
}

// entryID derives a stable id for one logical budget row. The budget
// table is keyed on entry_id, so a stable id makes the insert-or-update
// mutation overwrite the previous import's row for the same
// (year, country, product) instead of adding a sibling.
func entryID(year int64, countryCode, productKey string) string {
	name := fmt.Sprintf("%d/%s/%s", year, countryCode, productKey)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
