package mark_reviewed

import (
	"context"
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

type fakeOverrideRepo struct {
	records  map[string]*domain.OverrideRecord
	upserted []*domain.OverrideRecord
}

func (f *fakeOverrideRepo) Get(_ context.Context, productID, countryCode string) (*domain.OverrideRecord, error) {
	return f.records[productID+"/"+countryCode], nil
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
}

func (f *fakeApplier) Apply(_ context.Context, plan *committer.CommitPlan) error {
	f.plans = append(f.plans, plan)
	return nil
}

func newTestInteractor(records map[string]*domain.OverrideRecord) (*Interactor, *fakeOverrideRepo, *fakeAuditRepo, *fakeApplier) {
	if records == nil {
		records = make(map[string]*domain.OverrideRecord)
	}
	overrideRepo := &fakeOverrideRepo{records: records}
	auditRepo := &fakeAuditRepo{}
	applier := &fakeApplier{}
	interactor := NewInteractor(overrideRepo, auditRepo, applier,
		clock.NewMockClock(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)))
	return interactor, overrideRepo, auditRepo, applier
}

func TestExecute_MarksReviewed(t *testing.T) {
	interactor, overrideRepo, auditRepo, applier := newTestInteractor(nil)

	err := interactor.Execute(context.Background(), &Request{
		ProductID:   "p1",
		CountryCode: "AR",
		Reviewed:    true,
	})
	require.NoError(t, err)

	// No record existed: an otherwise-empty one is created to carry
	// the flag.
	require.Len(t, overrideRepo.upserted, 1)
	record := overrideRepo.upserted[0]
	assert.True(t, record.Reviewed)
	assert.Equal(t, "p1", record.ProductID)
	assert.Equal(t, "AR", record.CountryCode)

	require.Len(t, auditRepo.events, 1)
	assert.Equal(t, "pricing.override.reviewed", auditRepo.events[0].EventType)

	require.Len(t, applier.plans, 1)
	assert.Equal(t, 2, applier.plans[0].Count())
}

func TestExecute_NoOpWhenUnchanged(t *testing.T) {
	existing := domain.NewOverrideRecord("p1", "AR")
	existing.Reviewed = true
	interactor, overrideRepo, _, applier := newTestInteractor(
		map[string]*domain.OverrideRecord{"p1/AR": existing})

	err := interactor.Execute(context.Background(), &Request{
		ProductID:   "p1",
		CountryCode: "AR",
		Reviewed:    true,
	})
	require.NoError(t, err)

	assert.Empty(t, overrideRepo.upserted)
	assert.Empty(t, applier.plans)
}

func TestExecute_ClearsFlagKeepsOverrides(t *testing.T) {
	existing := domain.NewOverrideRecord("p1", "AR")
	existing.Reviewed = true
	existing.GrossSales = domain.NewMoneyFromUSD(5000)
	interactor, overrideRepo, _, _ := newTestInteractor(
		map[string]*domain.OverrideRecord{"p1/AR": existing})

	err := interactor.Execute(context.Background(), &Request{
		ProductID:   "p1",
		CountryCode: "AR",
		Reviewed:    false,
	})
	require.NoError(t, err)

	require.Len(t, overrideRepo.upserted, 1)
	record := overrideRepo.upserted[0]
	assert.False(t, record.Reviewed)
	assert.Equal(t, 5000.0, record.GrossSales.Float64())
}

func TestExecute_Validation(t *testing.T) {
	interactor, _, _, applier := newTestInteractor(nil)
	ctx := context.Background()

	err := interactor.Execute(ctx, &Request{CountryCode: "AR", Reviewed: true})
	assert.ErrorIs(t, err, domain.ErrEmptyProductID)

	err = interactor.Execute(ctx, &Request{ProductID: "p1", Reviewed: true})
	assert.ErrorIs(t, err, domain.ErrEmptyCountryCode)

	assert.Empty(t, applier.plans)
}
