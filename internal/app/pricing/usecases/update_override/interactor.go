package update_override

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	auditcontracts "github.com/light-bringer/finrecon-service/internal/app/audit/contracts"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/contracts"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/domain"
	"github.com/light-bringer/finrecon-service/internal/pkg/clock"
	"github.com/light-bringer/finrecon-service/internal/pkg/committer"
)

// Request contains the data needed to edit one side of a cost field,
// or to set the country-level gross sales price, for one
// (product, country) pair.
type Request struct {
	ProductID   string
	CountryCode string

	// GrossSales, when set, replaces the catalog base price for this
	// country. Gross Sales has no percentage form.
	GrossSales *domain.Money

	// Field edit: exactly one of Amount/Pct carries the edited side.
	Field  domain.CostField
	Side   domain.EditSide
	Amount *domain.Money
	Pct    *big.Rat
}

// Interactor handles the override edit use case.
//
// Edits follow the bidirectional protocol: whichever side the caller
// sends, both the absolute amount and the percentage are resolved
// against the reference base as it stands at edit time and persisted
// together. Later base drift does not move an already-persisted pair.
//
// Concurrent edits to the same (product, country) pair are not
// coordinated: the full blob is rewritten and the last write wins.
type Interactor struct {
	productRepo  contracts.ProductRepository
	overrideRepo contracts.OverrideRepository
	auditRepo    auditcontracts.AuditRepository
	calculator   *domain.WaterfallCalculator
	applier      committer.Applier
	clock        clock.Clock
}

// NewInteractor creates a new override edit interactor.
func NewInteractor(
	productRepo contracts.ProductRepository,
	overrideRepo contracts.OverrideRepository,
	auditRepo auditcontracts.AuditRepository,
	calculator *domain.WaterfallCalculator,
	applier committer.Applier,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		productRepo:  productRepo,
		overrideRepo: overrideRepo,
		auditRepo:    auditRepo,
		calculator:   calculator,
		applier:      applier,
		clock:        clk,
	}
}

// Execute applies the edit following the Golden Mutation Pattern.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if err := i.validate(req); err != nil {
		return err
	}

	product, err := i.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}

	record, err := i.overrideRepo.Get(ctx, req.ProductID, req.CountryCode)
	if err != nil {
		return err
	}
	if record == nil {
		record = domain.NewOverrideRecord(req.ProductID, req.CountryCode)
	}

	now := i.clock.Now()
	var events []auditcontracts.DomainEvent

	if req.GrossSales != nil {
		record.GrossSales = req.GrossSales.Copy()
		events = append(events, &domain.GrossSalesSetEvent{
			ProductID:   req.ProductID,
			CountryCode: req.CountryCode,
			GrossSales:  req.GrossSales,
			UpdatedAt:   now,
		})
	}

	if req.Field != "" {
		// The reference base must reflect the gross sales edit above,
		// so the waterfall is resolved after it is applied.
		waterfall := i.calculator.Resolve(req.ProductID, product.BasePrice(), req.CountryCode, record)
		fo := waterfall.ResolveBothSides(req.Field, req.Side, req.Amount, req.Pct)
		record.SetField(req.Field, fo)

		events = append(events, &domain.OverrideFieldSetEvent{
			ProductID:   req.ProductID,
			CountryCode: req.CountryCode,
			Field:       req.Field,
			Side:        req.Side,
			Amount:      fo.Amount,
			Pct:         fo.Pct,
			UpdatedAt:   now,
		})
	}

	plan := committer.NewPlan()

	mut, err := i.overrideRepo.UpsertMut(record)
	if err != nil {
		return err
	}
	plan.Add(mut)

	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to serialize event: %w", err)
		}
		auditEvent := i.auditRepo.EnrichEvent(event, string(payload))
		plan.Add(i.auditRepo.InsertMut(auditEvent))
	}

	if err := i.applier.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// validate validates the request.
func (i *Interactor) validate(req *Request) error {
	if req.ProductID == "" {
		return domain.ErrEmptyProductID
	}
	if req.CountryCode == "" {
		return domain.ErrEmptyCountryCode
	}
	if req.GrossSales == nil && req.Field == "" {
		return domain.ErrMissingEditValue
	}
	if req.Field == "" {
		return nil
	}
	if !req.Field.IsValid() {
		return domain.ErrUnknownCostField
	}
	switch req.Side {
	case domain.EditAmount:
		if req.Amount == nil {
			return domain.ErrMissingEditValue
		}
	case domain.EditPct:
		if req.Pct == nil {
			return domain.ErrMissingEditValue
		}
	default:
		return domain.ErrInvalidEditSide
	}
	return nil
}
