package aggregate_sales

import (
	"context"
	"sort"

	pricingcontracts "github.com/light-bringer/finrecon-service/internal/app/pricing/contracts"
	pricingdomain "github.com/light-bringer/finrecon-service/internal/app/pricing/domain"
	"github.com/light-bringer/finrecon-service/internal/app/sales/contracts"
	"github.com/light-bringer/finrecon-service/internal/pkg/ident"
)

// Request holds the aggregation filters. An empty Company aggregates
// across all companies; Year/Month of zero mean "all periods"; Product
// is a fuzzy label filter.
type Request struct {
	Company string
	Year    int64
	Month   int64
	Product string

	// OnlyPriced excludes products whose resolved gross sales is zero
	// or the provisional placeholder.
	OnlyPriced bool
}

// CompanyShare is one company's contribution to a product aggregate.
type CompanyShare struct {
	Company   string  `json:"company"`
	Units     int64   `json:"units"`
	AmountUSD float64 `json:"amountUsd"`
}

// ProductSummary is one per-product aggregate, enriched with catalog
// attributes and the resolved pricing output for the relevant country.
type ProductSummary struct {
	ProductKey string `json:"productKey"`
	Label      string `json:"label"`
	ProductID  string `json:"productId,omitempty"`
	Category   string `json:"category,omitempty"`
	Subtype    string `json:"subtype,omitempty"`

	Units     int64   `json:"units"`
	AmountUSD float64 `json:"amountUsd"`

	GrossSalesUSD   float64 `json:"grossSalesUsd"`
	GrossProfitUSD  float64 `json:"grossProfitUsd"`
	PriceConfigured bool    `json:"priceConfigured"`

	// Companies is the per-company breakdown, populated only in
	// all-companies mode.
	Companies []CompanyShare `json:"companies,omitempty"`
}

// Response is the aggregation result.
type Response struct {
	// CountryCode is set in per-company mode: the code resolved from
	// the company label, possibly the unknown sentinel.
	CountryCode string            `json:"countryCode,omitempty"`
	Products    []*ProductSummary `json:"products"`
}

// Query handles the sales aggregation use case.
type Query struct {
	salesReadModel contracts.SalesReadModel
	productRepo    pricingcontracts.ProductRepository
	overrideRepo   pricingcontracts.OverrideRepository
	calculator     *pricingdomain.WaterfallCalculator
	matcher        *ident.Matcher
}

// NewQuery creates a new sales aggregation query.
func NewQuery(
	salesReadModel contracts.SalesReadModel,
	productRepo pricingcontracts.ProductRepository,
	overrideRepo pricingcontracts.OverrideRepository,
	calculator *pricingdomain.WaterfallCalculator,
	matcher *ident.Matcher,
) *Query {
	return &Query{
		salesReadModel: salesReadModel,
		productRepo:    productRepo,
		overrideRepo:   overrideRepo,
		calculator:     calculator,
		matcher:        matcher,
	}
}

// group accumulates one normalized product key's rows.
type group struct {
	key       string
	units     int64
	amount    float64
	companies map[string]*CompanyShare

	labelCounts map[string]int
	labelOrder  []string
}

func (g *group) countLabel(label string) {
	if _, ok := g.labelCounts[label]; !ok {
		g.labelOrder = append(g.labelOrder, label)
	}
	g.labelCounts[label]++
}

// bestLabel picks the group's most frequent raw spelling, first seen
// winning ties, so the displayed label does not depend on row order.
func (g *group) bestLabel() string {
	var best string
	bestCount := 0
	for _, label := range g.labelOrder {
		if g.labelCounts[label] > bestCount {
			best = label
			bestCount = g.labelCounts[label]
		}
	}
	return best
}

// Execute aggregates sales per product.
//
// Per-company mode resolves the company's country via the identity
// normalizer and prices every product for exactly that country.
// All-companies mode groups by normalized product key, retains a
// per-company breakdown, and prices each product using any available
// country override. That pricing is best effort, since no single
// country is authoritative across companies.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	rows, err := q.salesReadModel.ListSales(ctx, &contracts.SalesFilter{
		Company: req.Company,
		Year:    req.Year,
		Month:   req.Month,
	})
	if err != nil {
		return nil, err
	}

	catalog, err := q.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	catalogKeys := make([]string, len(catalog))
	for i, p := range catalog {
		catalogKeys[i] = ident.NormalizeProductKey(p.Name())
	}

	productFilterKey := ident.NormalizeProductKey(req.Product)

	groups := make(map[string]*group)
	var order []string
	for _, row := range rows {
		key := ident.NormalizeProductKey(row.Product)
		if key == "" {
			continue
		}
		if productFilterKey != "" && !q.matcher.SameKey(key, productFilterKey) {
			continue
		}

		g, ok := groups[key]
		if !ok {
			g = &group{
				key:         key,
				companies:   make(map[string]*CompanyShare),
				labelCounts: make(map[string]int),
			}
			groups[key] = g
			order = append(order, key)
		}

		g.countLabel(row.Product)
		g.units += row.Units
		var amount float64
		if row.Amount != nil {
			amount = *row.Amount
		}
		g.amount += amount

		share, ok := g.companies[row.Company]
		if !ok {
			share = &CompanyShare{Company: row.Company}
			g.companies[row.Company] = share
		}
		share.Units += row.Units
		share.AmountUSD += amount
	}

	resp := &Response{}
	perCompany := req.Company != ""
	if perCompany {
		resp.CountryCode = ident.CountryFromCompany(req.Company)
	}

	for _, key := range order {
		g := groups[key]

		summary := &ProductSummary{
			ProductKey: g.key,
			Label:      ident.DisplayLabel(g.bestLabel()),
			Units:      g.units,
			AmountUSD:  g.amount,
		}

		product := q.matchCatalog(catalog, catalogKeys, g.key)
		if product != nil {
			// The catalog spelling is authoritative when the product
			// is known.
			summary.Label = ident.DisplayLabel(product.Name())
			summary.ProductID = product.ID()
			summary.Category = product.Category()
			summary.Subtype = product.Subtype()

			waterfall, err := q.resolvePricing(ctx, product, resp.CountryCode, perCompany)
			if err != nil {
				return nil, err
			}
			summary.GrossSalesUSD = waterfall.GrossSales.Float64()
			summary.GrossProfitUSD = waterfall.GrossProfit.Float64()
			summary.PriceConfigured = pricingdomain.IsPriceConfigured(waterfall.GrossSales)
		}

		if req.OnlyPriced && !summary.PriceConfigured {
			continue
		}

		if !perCompany {
			summary.Companies = make([]CompanyShare, 0, len(g.companies))
			for _, share := range g.companies {
				summary.Companies = append(summary.Companies, *share)
			}
			sort.Slice(summary.Companies, func(a, b int) bool {
				return summary.Companies[a].Company < summary.Companies[b].Company
			})
		}

		resp.Products = append(resp.Products, summary)
	}

	sort.Slice(resp.Products, func(a, b int) bool {
		return resp.Products[a].Label < resp.Products[b].Label
	})

	return resp, nil
}

// matchCatalog finds the catalog product whose normalized name matches
// the sales key, if any.
func (q *Query) matchCatalog(catalog []*pricingdomain.Product, catalogKeys []string, key string) *pricingdomain.Product {
	for i, catKey := range catalogKeys {
		if q.matcher.SameKey(key, catKey) {
			return catalog[i]
		}
	}
	return nil
}

// resolvePricing resolves the waterfall for a matched product. In
// per-company mode the override for the resolved country applies; in
// all-companies mode any country's override is used.
func (q *Query) resolvePricing(ctx context.Context, product *pricingdomain.Product, countryCode string, perCompany bool) (*pricingdomain.Waterfall, error) {
	var record *pricingdomain.OverrideRecord
	var err error
	if perCompany {
		record, err = q.overrideRepo.Get(ctx, product.ID(), countryCode)
	} else {
		record, err = q.overrideRepo.GetAnyForProduct(ctx, product.ID())
	}
	if err != nil {
		return nil, err
	}

	resolveCountry := countryCode
	if !perCompany {
		resolveCountry = ident.UnknownCountry
		if record != nil {
			resolveCountry = record.CountryCode
		}
	}

	return q.calculator.Resolve(product.ID(), product.BasePrice(), resolveCountry, record), nil
}
