package update_override

import (
	"context"
	"math/big"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditcontracts "github.com/light-bringer/finrecon-service/internal/app/audit/contracts"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/domain"
	"github.com/light-bringer/finrecon-service/internal/pkg/clock"
	"github.com/light-bringer/finrecon-service/internal/pkg/committer"
)

type fakeProductRepo struct {
	products map[string]*domain.Product
}

func (f *fakeProductRepo) InsertMut(*domain.Product) (*spanner.Mutation, error) { return nil, nil }

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) List(context.Context) ([]*domain.Product, error) { return nil, nil }

type fakeOverrideRepo struct {
	records  map[string]*domain.OverrideRecord
	upserted []*domain.OverrideRecord
}

func (f *fakeOverrideRepo) key(productID, countryCode string) string {
	return productID + "/" + countryCode
}

func (f *fakeOverrideRepo) Get(_ context.Context, productID, countryCode string) (*domain.OverrideRecord, error) {
	return f.records[f.key(productID, countryCode)], nil
}

func (f *fakeOverrideRepo) GetAnyForProduct(context.Context, string) (*domain.OverrideRecord, error) {
	return nil, nil
}

func (f *fakeOverrideRepo) UpsertMut(record *domain.OverrideRecord) (*spanner.Mutation, error) {
	f.upserted = append(f.upserted, record)
	return spanner.InsertOrUpdate("country_overrides", []string{"product_id"}, []interface{}{record.ProductID}), nil
}

type fakeAuditRepo struct {
	events []*auditcontracts.AuditEvent
}

func (f *fakeAuditRepo) InsertMut(event *auditcontracts.AuditEvent) *spanner.Mutation {
	return spanner.Insert("audit_events", []string{"event_id"}, []interface{}{event.EventID})
}

func (f *fakeAuditRepo) EnrichEvent(event auditcontracts.DomainEvent, payload string) *auditcontracts.AuditEvent {
	enriched := &auditcontracts.AuditEvent{
		EventID:     "test-event",
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
	}
	f.events = append(f.events, enriched)
	return enriched
}

type fakeApplier struct {
	plans []*committer.CommitPlan
	err   error
}

func (f *fakeApplier) Apply(_ context.Context, plan *committer.CommitPlan) error {
	f.plans = append(f.plans, plan)
	return f.err
}

func newTestInteractor(t *testing.T) (*Interactor, *fakeOverrideRepo, *fakeAuditRepo, *fakeApplier) {
	t.Helper()

	basePrice := domain.NewMoneyFromUSD(4000)
	product, err := domain.NewProduct("p1", "Genomind Professional PGx", "GEN-001", "genetics", "panel", basePrice, time.Now(), time.Now())
	require.NoError(t, err)

	productRepo := &fakeProductRepo{products: map[string]*domain.Product{"p1": product}}
	overrideRepo := &fakeOverrideRepo{records: make(map[string]*domain.OverrideRecord)}
	auditRepo := &fakeAuditRepo{}
	applier := &fakeApplier{}

	interactor := NewInteractor(
		productRepo,
		overrideRepo,
		auditRepo,
		domain.NewWaterfallCalculator(domain.DefaultRateTable()),
		applier,
		clock.NewMockClock(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
	)
	return interactor, overrideRepo, auditRepo, applier
}

func TestExecute_AmountEditPersistsBothSides(t *testing.T) {
	interactor, overrideRepo, auditRepo, applier := newTestInteractor(t)

	err := interactor.Execute(context.Background(), &Request{
		ProductID:   "p1",
		CountryCode: "AR",
		Field:       domain.FieldCommercialDiscount,
		Side:        domain.EditAmount,
		Amount:      domain.NewMoneyFromUSD(500),
	})
	require.NoError(t, err)

	require.Len(t, overrideRepo.upserted, 1)
	fo, ok := overrideRepo.upserted[0].Field(domain.FieldCommercialDiscount)
	require.True(t, ok)
	assert.Equal(t, 500.0, fo.Amount.Float64())
	require.NotNil(t, fo.Pct)
	assert.Equal(t, 0, fo.Pct.Cmp(big.NewRat(1, 8))) // 500 / 4000 gross sales

	require.Len(t, auditRepo.events, 1)
	assert.Equal(t, "pricing.override.field_set", auditRepo.events[0].EventType)
	assert.Equal(t, "p1", auditRepo.events[0].AggregateID)

	require.Len(t, applier.plans, 1)
	assert.Equal(t, 2, applier.plans[0].Count()) // upsert + audit event
}

func TestExecute_PctEditDerivesAmount(t *testing.T) {
	interactor, overrideRepo, _, _ := newTestInteractor(t)

	err := interactor.Execute(context.Background(), &Request{
		ProductID:   "p1",
		CountryCode: "AR",
		Field:       domain.FieldProductCost,
		Side:        domain.EditPct,
		Pct:         big.NewRat(1, 10),
	})
	require.NoError(t, err)

	fo, ok := overrideRepo.upserted[0].Field(domain.FieldProductCost)
	require.True(t, ok)
	// 10% of sales revenue (4000 - 5% default discount = 3800).
	assert.Equal(t, 380.0, fo.Amount.Float64())
}

func TestExecute_GrossSalesEditShiftsFieldBase(t *testing.T) {
	interactor, overrideRepo, _, _ := newTestInteractor(t)

	err := interactor.Execute(context.Background(), &Request{
		ProductID:   "p1",
		CountryCode: "AR",
		GrossSales:  domain.NewMoneyFromUSD(8000),
		Field:       domain.FieldCommercialDiscount,
		Side:        domain.EditAmount,
		Amount:      domain.NewMoneyFromUSD(400),
	})
	require.NoError(t, err)

	record := overrideRepo.upserted[0]
	assert.Equal(t, 8000.0, record.GrossSales.Float64())

	// The pct is derived against the edited gross sales, not the
	// catalog base price.
	fo, _ := record.Field(domain.FieldCommercialDiscount)
	assert.Equal(t, 0, fo.Pct.Cmp(big.NewRat(1, 20))) // 400 / 8000
}

func TestExecute_EditPreservesOtherFields(t *testing.T) {
	interactor, overrideRepo, _, _ := newTestInteractor(t)

	existing := domain.NewOverrideRecord("p1", "AR")
	existing.SetField(domain.FieldKitCost, domain.FieldOverride{Amount: domain.NewMoneyFromUSD(99)})
	overrideRepo.records["p1/AR"] = existing

	err := interactor.Execute(context.Background(), &Request{
		ProductID:   "p1",
		CountryCode: "AR",
		Field:       domain.FieldProductCost,
		Side:        domain.EditAmount,
		Amount:      domain.NewMoneyFromUSD(1000),
	})
	require.NoError(t, err)

	record := overrideRepo.upserted[0]
	kit, ok := record.Field(domain.FieldKitCost)
	require.True(t, ok)
	assert.Equal(t, 99.0, kit.Amount.Float64())
}

func TestExecute_Validation(t *testing.T) {
	interactor, _, _, applier := newTestInteractor(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{
			name: "missing product id",
			req:  &Request{CountryCode: "AR", Field: domain.FieldKitCost, Side: domain.EditAmount, Amount: domain.NewMoneyFromUSD(1)},
			want: domain.ErrEmptyProductID,
		},
		{
			name: "missing country code",
			req:  &Request{ProductID: "p1", Field: domain.FieldKitCost, Side: domain.EditAmount, Amount: domain.NewMoneyFromUSD(1)},
			want: domain.ErrEmptyCountryCode,
		},
		{
			name: "unknown field",
			req:  &Request{ProductID: "p1", CountryCode: "AR", Field: "bogus", Side: domain.EditAmount, Amount: domain.NewMoneyFromUSD(1)},
			want: domain.ErrUnknownCostField,
		},
		{
			name: "invalid side",
			req:  &Request{ProductID: "p1", CountryCode: "AR", Field: domain.FieldKitCost, Side: "sideways", Amount: domain.NewMoneyFromUSD(1)},
			want: domain.ErrInvalidEditSide,
		},
		{
			name: "amount side without amount",
			req:  &Request{ProductID: "p1", CountryCode: "AR", Field: domain.FieldKitCost, Side: domain.EditAmount},
			want: domain.ErrMissingEditValue,
		},
		{
			name: "no edit at all",
			req:  &Request{ProductID: "p1", CountryCode: "AR"},
			want: domain.ErrMissingEditValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := interactor.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Empty(t, applier.plans, "validation failures must not commit")
}

func TestExecute_UnknownProduct(t *testing.T) {
	interactor, _, _, _ := newTestInteractor(t)

	err := interactor.Execute(context.Background(), &Request{
		ProductID:   "missing",
		CountryCode: "AR",
		Field:       domain.FieldKitCost,
		Side:        domain.EditAmount,
		Amount:      domain.NewMoneyFromUSD(1),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
