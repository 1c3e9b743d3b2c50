package get_waterfall

import (
	"context"

	"github.com/light-bringer/finrecon-service/internal/app/pricing/contracts"
	"github.com/light-bringer/finrecon-service/internal/app/pricing/domain"
)

// Request identifies the (product, country) pair to resolve.
type Request struct {
	ProductID   string
	CountryCode string
}

// LineDTO is one resolved waterfall line for display. Percentages are
// fractions of the line's reference base (0.05 = 5%).
type LineDTO struct {
	Field     string  `json:"field"`
	Label     string  `json:"label"`
	AmountUSD float64 `json:"amountUsd"`
	Pct       float64 `json:"pct"`
	Source    string  `json:"source"`
}

// Response is the fully resolved waterfall for one (product, country) pair.
type Response struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	Subtype     string `json:"subtype"`
	CountryCode string `json:"countryCode"`

	GrossSalesUSD   float64 `json:"grossSalesUsd"`
	PriceConfigured bool    `json:"priceConfigured"`
	Reviewed        bool    `json:"reviewed"`

	CommercialDiscount LineDTO   `json:"commercialDiscount"`
	SalesRevenueUSD    float64   `json:"salesRevenueUsd"`
	SalesRevenuePct    float64   `json:"salesRevenuePct"`
	CostLines          []LineDTO `json:"costLines"`

	TotalCostOfSalesUSD float64 `json:"totalCostOfSalesUsd"`
	TotalCostOfSalesPct float64 `json:"totalCostOfSalesPct"`
	GrossProfitUSD      float64 `json:"grossProfitUsd"`
	GrossProfitPct      float64 `json:"grossProfitPct"`
}

// Query handles the waterfall resolution query use case.
type Query struct {
	productRepo  contracts.ProductRepository
	overrideRepo contracts.OverrideRepository
	calculator   *domain.WaterfallCalculator
}

// NewQuery creates a new waterfall query.
func NewQuery(
	productRepo contracts.ProductRepository,
	overrideRepo contracts.OverrideRepository,
	calculator *domain.WaterfallCalculator,
) *Query {
	return &Query{
		productRepo:  productRepo,
		overrideRepo: overrideRepo,
		calculator:   calculator,
	}
}

// Execute resolves the full waterfall for one (product, country) pair.
// A missing override record is not an error: the waterfall falls back
// to the country's rate table defaults.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ProductID == "" {
		return nil, domain.ErrEmptyProductID
	}
	if req.CountryCode == "" {
		return nil, domain.ErrEmptyCountryCode
	}

	product, err := q.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	record, err := q.overrideRepo.Get(ctx, req.ProductID, req.CountryCode)
	if err != nil {
		return nil, err
	}

	waterfall := q.calculator.Resolve(req.ProductID, product.BasePrice(), req.CountryCode, record)

	resp := &Response{
		ProductID:   product.ID(),
		ProductName: product.Name(),
		Category:    product.Category(),
		Subtype:     product.Subtype(),
		CountryCode: req.CountryCode,

		GrossSalesUSD:   waterfall.GrossSales.Float64(),
		PriceConfigured: domain.IsPriceConfigured(waterfall.GrossSales),

		CommercialDiscount: toLineDTO(waterfall.CommercialDiscount),
		SalesRevenueUSD:    waterfall.SalesRevenue.Float64(),

		TotalCostOfSalesUSD: waterfall.TotalCostOfSales.Float64(),
		GrossProfitUSD:      waterfall.GrossProfit.Float64(),
	}
	if record != nil {
		resp.Reviewed = record.Reviewed
	}

	// Percentages for totals: Sales Revenue relative to Gross Sales,
	// cost and profit totals relative to Sales Revenue.
	resp.SalesRevenuePct = ratioFloat(waterfall.SalesRevenue, waterfall.GrossSales)
	resp.TotalCostOfSalesPct = ratioFloat(waterfall.TotalCostOfSales, waterfall.SalesRevenue)
	resp.GrossProfitPct = ratioFloat(waterfall.GrossProfit, waterfall.SalesRevenue)

	resp.CostLines = make([]LineDTO, 0, len(waterfall.CostLines))
	for _, line := range waterfall.CostLines {
		resp.CostLines = append(resp.CostLines, toLineDTO(line))
	}

	return resp, nil
}

func toLineDTO(line domain.Line) LineDTO {
	pct, _ := line.Pct.Float64()
	return LineDTO{
		Field:     string(line.Field),
		Label:     line.Label,
		AmountUSD: line.Amount.Float64(),
		Pct:       pct,
		Source:    string(line.Source),
	}
}

func ratioFloat(value, base *domain.Money) float64 {
	f, _ := value.Ratio(base).Float64()
	return f
}
