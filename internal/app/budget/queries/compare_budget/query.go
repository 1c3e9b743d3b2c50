package compare_budget

import (
	"context"
	"sort"

	"github.com/light-bringer/finrecon-service/internal/app/budget/contracts"
	"github.com/light-bringer/finrecon-service/internal/app/budget/domain"
	salescontracts "github.com/light-bringer/finrecon-service/internal/app/sales/contracts"
	"github.com/light-bringer/finrecon-service/internal/pkg/ident"
)

// SortColumn selects which delta column orders the result.
type SortColumn string

const (
	SortByDeltaBudget SortColumn = "deltaBudget"
	SortByDeltaYears  SortColumn = "deltaYears"
)

// Request holds the reconciliation filters. Month zero means the full
// year; an empty country set means all countries; Product is a fuzzy
// label filter.
type Request struct {
	BudgetYear  int64
	ActualYearA int64
	ActualYearB int64
	Month       int64
	Countries   []string
	Product     string
	SortBy      SortColumn
}

// ComparisonRow is one reconciled (country, product) pair. Percentages
// are fractions: 1.0 means 100%.
type ComparisonRow struct {
	CountryCode string `json:"countryCode"`
	ProductName string `json:"productName"`
	ProductID   string `json:"productId,omitempty"`

	BudgetUnits  int64 `json:"budgetUnits"`
	ActualUnitsA int64 `json:"actualUnitsA"`
	ActualUnitsB int64 `json:"actualUnitsB"`

	DeltaBudgetVsActual    int64   `json:"deltaBudgetVsActual"`
	DeltaBudgetVsActualPct float64 `json:"deltaBudgetVsActualPct"`
	DeltaYearBVsYearA      int64   `json:"deltaYearBVsYearA"`
	DeltaYearBVsYearAPct   float64 `json:"deltaYearBVsYearAPct"`
}

// Response is the reconciliation result.
type Response struct {
	BudgetYear  int64            `json:"budgetYear"`
	ActualYearA int64            `json:"actualYearA"`
	ActualYearB int64            `json:"actualYearB"`
	Month       int64            `json:"month,omitempty"`
	Rows        []*ComparisonRow `json:"rows"`
}

// Query handles the budget reconciliation use case.
type Query struct {
	budgetRepo     contracts.BudgetRepository
	salesReadModel salescontracts.SalesReadModel
	matcher        *ident.Matcher
}

// NewQuery creates a new reconciliation query.
func NewQuery(
	budgetRepo contracts.BudgetRepository,
	salesReadModel salescontracts.SalesReadModel,
	matcher *ident.Matcher,
) *Query {
	return &Query{
		budgetRepo:     budgetRepo,
		salesReadModel: salesReadModel,
		matcher:        matcher,
	}
}

// accKey identifies one actuals accumulator bucket.
type accKey struct {
	country string
	key     string
}

// Execute produces one ComparisonRow per budget entry matching the
// filters, with actuals for two years joined in via fuzzy matching.
//
// Sales rows cannot be pre-filtered by country: the authoritative
// country code is derived from the free-text company label, so the
// rows are fetched whole and bucketed in memory. A budget row sums
// across every accumulator bucket whose country matches and whose
// normalized key satisfies the match predicate, since the same logical
// product appears under slightly different names in the feed.
//
// Data quality never fails the query; unmatched rows simply reconcile
// against zero actuals. The only hard failure is a month filter
// outside 1-12.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Month != 0 && (req.Month < 1 || req.Month > 12) {
		return nil, domain.ErrInvalidMonth
	}

	budgetRows, err := q.budgetRepo.ListByYear(ctx, req.BudgetYear, req.Countries)
	if err != nil {
		return nil, err
	}

	actualA, err := q.accumulateActuals(ctx, req.ActualYearA, req.Month)
	if err != nil {
		return nil, err
	}
	actualB, err := q.accumulateActuals(ctx, req.ActualYearB, req.Month)
	if err != nil {
		return nil, err
	}

	productFilterKey := ident.NormalizeProductKey(req.Product)

	resp := &Response{
		BudgetYear:  req.BudgetYear,
		ActualYearA: req.ActualYearA,
		ActualYearB: req.ActualYearB,
		Month:       req.Month,
	}

	for _, entry := range budgetRows {
		entryKey := ident.NormalizeProductKey(entry.ProductName)
		if productFilterKey != "" && !q.matcher.SameKey(entryKey, productFilterKey) {
			continue
		}

		row := &ComparisonRow{
			CountryCode:  entry.CountryCode,
			ProductName:  entry.ProductName,
			ProductID:    entry.ProductID,
			BudgetUnits:  entry.UnitsForMonth(req.Month),
			ActualUnitsA: q.sumMatches(actualA, entry.CountryCode, entryKey),
			ActualUnitsB: q.sumMatches(actualB, entry.CountryCode, entryKey),
		}

		row.DeltaBudgetVsActual = row.BudgetUnits - row.ActualUnitsB
		row.DeltaBudgetVsActualPct = deltaPct(row.DeltaBudgetVsActual, row.ActualUnitsB)
		row.DeltaYearBVsYearA = row.ActualUnitsB - row.ActualUnitsA
		row.DeltaYearBVsYearAPct = deltaPct(row.DeltaYearBVsYearA, row.ActualUnitsA)

		resp.Rows = append(resp.Rows, row)
	}

	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = SortByDeltaBudget
	}
	sort.SliceStable(resp.Rows, func(a, b int) bool {
		if sortBy == SortByDeltaYears {
			return resp.Rows[a].DeltaYearBVsYearA > resp.Rows[b].DeltaYearBVsYearA
		}
		return resp.Rows[a].DeltaBudgetVsActual > resp.Rows[b].DeltaBudgetVsActual
	})

	return resp, nil
}

// accumulateActuals buckets one year's sales units by (derived country,
// normalized product key).
func (q *Query) accumulateActuals(ctx context.Context, year, month int64) (map[accKey]int64, error) {
	rows, err := q.salesReadModel.ListSales(ctx, &salescontracts.SalesFilter{
		Year:  year,
		Month: month,
	})
	if err != nil {
		return nil, err
	}

	acc := make(map[accKey]int64)
	for _, row := range rows {
		key := accKey{
			country: ident.CountryFromCompany(row.Company),
			key:     ident.NormalizeProductKey(row.Product),
		}
		if key.key == "" {
			continue
		}
		acc[key] += row.Units
	}
	return acc, nil
}

// sumMatches sums every accumulator bucket matching the budget row's
// country and fuzzy product key.
func (q *Query) sumMatches(acc map[accKey]int64, countryCode, entryKey string) int64 {
	var total int64
	for key, units := range acc {
		if key.country != countryCode {
			continue
		}
		if q.matcher.SameKey(key.key, entryKey) {
			total += units
		}
	}
	return total
}

// deltaPct applies the zero-denominator rule: a nonzero delta against a
// zero base counts as 100%, a zero delta as 0%.
func deltaPct(delta, base int64) float64 {
	if base == 0 {
		if delta != 0 {
			return 1.0
		}
		return 0
	}
	return float64(delta) / float64(base)
}
