package domain

import "math/big"

// Line is one resolved row of the P&L waterfall: the field, its display
// label, the resolved absolute amount, and the amount expressed as a
// fraction of the field's reference base. Pct is zero when the base is
// zero.
type Line struct {
	Field  CostField
	Label  string
	Amount *Money
	Pct    *big.Rat
	// Source records which precedence tier produced the amount.
	Source ResolutionSource
}

// ResolutionSource says which tier of the precedence chain resolved a line.
type ResolutionSource string

const (
	SourceOverrideAmount ResolutionSource = "override_amount"
	SourceOverridePct    ResolutionSource = "override_pct"
	SourceDefault        ResolutionSource = "default"
	SourceNone           ResolutionSource = "none"
)

// Waterfall is the fully resolved P&L for one (product, country) pair.
//
// Structure, top to bottom:
//
//	Gross Sales
//	− Commercial Discount
//	= Sales Revenue
//	− nine cost-of-sales lines
//	= Gross Profit
//
// Commercial Discount percentages are relative to Gross Sales; every
// cost-of-sales percentage is relative to Sales Revenue.
type Waterfall struct {
	ProductID   string
	CountryCode string

	GrossSales         *Money
	CommercialDiscount Line
	SalesRevenue       *Money
	CostLines          []Line
	TotalCostOfSales   *Money
	GrossProfit        *Money
}

// placeholderGrossSales is the provisional price entered when a product
// is registered before commercial terms exist. Rows carrying it are not
// considered priced.
var placeholderGrossSales = NewMoneyFromUSD(10)

// IsPriceConfigured reports whether gross sales carries a real price:
// non-zero and not the provisional placeholder.
func IsPriceConfigured(grossSales *Money) bool {
	if grossSales == nil || grossSales.IsZero() {
		return false
	}
	return !grossSales.Equals(placeholderGrossSales)
}

// WaterfallCalculator resolves waterfalls against a rate table. It is
// stateless apart from the injected defaults.
type WaterfallCalculator struct {
	rates *RateTable
}

// NewWaterfallCalculator creates a calculator over the given rate table.
func NewWaterfallCalculator(rates *RateTable) *WaterfallCalculator {
	return &WaterfallCalculator{rates: rates}
}

// Resolve computes the full waterfall for one (product, country) pair.
// basePrice is the product's catalog price; the override record (may be
// nil) supplies gross sales and per-field overrides.
//
// Each field resolves through the same precedence chain:
//
//  1. absolute amount override
//  2. percentage override, applied to the field's reference base
//  3. rate-table default for the country (pct or amount)
//
// A percentage against a zero base always resolves to zero.
func (c *WaterfallCalculator) Resolve(productID string, basePrice *Money, countryCode string, override *OverrideRecord) *Waterfall {
	gross := basePrice
	if override != nil && override.GrossSales != nil {
		gross = override.GrossSales
	}
	if gross == nil {
		gross = ZeroMoney()
	}

	discount := c.resolveField(FieldCommercialDiscount, countryCode, gross, override)
	salesRevenue := gross.Subtract(discount.Amount)

	costLines := make([]Line, 0, len(CostOfSalesFields))
	totalCost := ZeroMoney()
	for _, f := range CostOfSalesFields {
		line := c.resolveField(f, countryCode, salesRevenue, override)
		costLines = append(costLines, line)
		totalCost = totalCost.Add(line.Amount)
	}

	return &Waterfall{
		ProductID:          productID,
		CountryCode:        countryCode,
		GrossSales:         gross.Copy(),
		CommercialDiscount: discount,
		SalesRevenue:       salesRevenue,
		CostLines:          costLines,
		TotalCostOfSales:   totalCost,
		GrossProfit:        salesRevenue.Subtract(totalCost),
	}
}

// resolveField runs the precedence chain for one field against its
// reference base.
func (c *WaterfallCalculator) resolveField(f CostField, countryCode string, base *Money, override *OverrideRecord) Line {
	line := Line{Field: f, Label: f.Label()}

	if fo, ok := override.Field(f); ok {
		if fo.Amount != nil {
			line.Amount = fo.Amount.Copy()
			line.Pct = line.Amount.Ratio(base)
			line.Source = SourceOverrideAmount
			return line
		}
		if fo.Pct != nil {
			line.Amount = base.MultiplyByRat(fo.Pct)
			line.Pct = line.Amount.Ratio(base)
			line.Source = SourceOverridePct
			return line
		}
	}

	if d, ok := c.rates.Default(countryCode, f); ok {
		if d.Amount != nil {
			line.Amount = d.Amount.Copy()
		} else {
			line.Amount = base.MultiplyByRat(d.Pct)
		}
		line.Pct = line.Amount.Ratio(base)
		line.Source = SourceDefault
		return line
	}

	line.Amount = ZeroMoney()
	line.Pct = new(big.Rat)
	line.Source = SourceNone
	return line
}

// EditSide names which side of a field a caller edited.
type EditSide string

const (
	EditAmount EditSide = "amount"
	EditPct    EditSide = "pct"
)

// ReferenceBase returns the base the field's percentage is measured
// against in the given waterfall: gross sales for the commercial
// discount, sales revenue for everything else.
func (w *Waterfall) ReferenceBase(f CostField) *Money {
	if f == FieldCommercialDiscount {
		return w.GrossSales
	}
	return w.SalesRevenue
}

// ResolveBothSides derives the missing side of an edited field so both
// sides can be persisted together. The reference base comes from the
// waterfall as it stood when the edit was made; later base changes do
// not retroactively move already-persisted pairs.
//
// Editing the amount derives pct = amount / base (zero when the base is
// zero). Editing the pct derives amount = base * pct.
func (w *Waterfall) ResolveBothSides(f CostField, side EditSide, amount *Money, pct *big.Rat) FieldOverride {
	base := w.ReferenceBase(f)
	switch side {
	case EditAmount:
		return FieldOverride{
			Amount: amount.Copy(),
			Pct:    amount.Ratio(base),
		}
	default:
		return FieldOverride{
			Amount: base.MultiplyByRat(pct),
			Pct:    new(big.Rat).Set(pct),
		}
	}
}
