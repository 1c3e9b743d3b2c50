package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	auditrepo "github.com/light-bringer/finrecon-service/internal/app/audit/repo"
	"github.com/light-bringer/finrecon-service/internal/app/budget/queries/compare_budget"
	budgetrepo "github.com/light-bringer/finrecon-service/internal/app/budget/repo"
	"github.com/light-bringer/finrecon-service/internal/app/budget/usecases/import_budget"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/domain"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/queries/get_waterfall"
	pricingrepo "github.com/light-bringer/finrecon-service/internal/app/pricing/repo"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/usecases/mark_reviewed"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/usecases/update_override"
	"github.com/light-bringer/finrecon-service/internal/app/sales/queries/aggregate_sales"
	salesrepo "github.com/light-bringer/finrecon-service/internal/app/sales/repo"
	"github.com/light-bringer/finrecon-service/internal/app/sales/usecases/purge_sales"
	"github.com/light-bringer/finrecon-service/internal/pkg/clock"
	"github.com/light-bringer/finrecon-service/internal/pkg/committer"
	"github.com/light-bringer/finrecon-service/internal/pkg/ident"
	transporthttp "github.com/light-bringer/finrecon-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Logger        *zap.Logger
	Handler       *transporthttp.Handler

	// PurgeSales is exposed separately for the maintenance CLI.
	PurgeSales *purge_sales.Interactor
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, spannerDB string, logger *zap.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, spannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	calculator := domain.NewWaterfallCalculator(domain.DefaultRateTable())
	matcher := ident.NewMatcher()

	// 3. Create repositories
	productRepo := pricingrepo.NewProductRepo(spannerClient)
	overrideRepo := pricingrepo.NewOverrideRepo(spannerClient)
	auditRepo := auditrepo.NewAuditRepo(spannerClient)
	eventsReadModel := auditrepo.NewEventsReadModel(spannerClient)
	salesRepo := salesrepo.NewSalesRepo(spannerClient)
	budgetRepo := budgetrepo.NewBudgetRepo(spannerClient)

	// 4. Create command use cases (write operations)
	updateOverrideUseCase := update_override.NewInteractor(productRepo, overrideRepo, auditRepo, calculator, comm, clk)
	markReviewedUseCase := mark_reviewed.NewInteractor(overrideRepo, auditRepo, comm, clk)
	importBudgetUseCase := import_budget.NewInteractor(budgetRepo, productRepo, auditRepo, matcher, comm, clk)
	purgeSalesUseCase := purge_sales.NewInteractor(salesRepo, auditRepo, comm, clk)

	// 5. Create query use cases (read operations)
	waterfallQuery := get_waterfall.NewQuery(productRepo, overrideRepo, calculator)
	salesQuery := aggregate_sales.NewQuery(salesRepo, productRepo, overrideRepo, calculator, matcher)
	comparisonQuery := compare_budget.NewQuery(budgetRepo, salesRepo, matcher)

	// 6. Create HTTP handler
	handler := transporthttp.NewHandler(
		logger,
		waterfallQuery,
		updateOverrideUseCase,
		markReviewedUseCase,
		salesQuery,
		comparisonQuery,
		importBudgetUseCase,
		eventsReadModel,
	)

	return &ServiceOptions{
		SpannerClient: spannerClient,
		Logger:        logger,
		Handler:       handler,
		PurgeSales:    purgeSalesUseCase,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
