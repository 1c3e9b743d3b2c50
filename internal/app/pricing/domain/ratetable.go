package domain

import "math/big"

// RateDefault is a country's default for one cost field: either a fixed
// percentage of the field's reference base or a fixed absolute amount.
// Exactly one side is set.
type RateDefault struct {
	Pct    *big.Rat
	Amount *Money
}

// PctDefault builds a percentage default. PctDefault(5, 100) is 5%.
func PctDefault(num, denom int64) RateDefault {
	return RateDefault{Pct: big.NewRat(num, denom)}
}

// AmountDefault builds a fixed-amount default in whole USD.
func AmountDefault(usd int64) RateDefault {
	return RateDefault{Amount: NewMoneyFromUSD(usd)}
}

// CountryRates holds the default for every cost field of one country.
type CountryRates map[CostField]RateDefault

// RateTable holds per-country default cost rates. It is built once at
// process start and injected into the WaterfallCalculator; it is never
// mutated at runtime, so tests can substitute alternate tables freely.
type RateTable struct {
	byCountry map[string]CountryRates
	fallback  CountryRates
}

// NewRateTable builds a RateTable from per-country rates and a fallback
// used for countries with no entry of their own.
func NewRateTable(byCountry map[string]CountryRates, fallback CountryRates) *RateTable {
	copied := make(map[string]CountryRates, len(byCountry))
	for code, rates := range byCountry {
		copied[code] = rates
	}
	return &RateTable{byCountry: copied, fallback: fallback}
}

// Default returns the default for one (country, field) pair.
// Country-specific entries win over the fallback.
func (rt *RateTable) Default(countryCode string, f CostField) (RateDefault, bool) {
	if rates, ok := rt.byCountry[countryCode]; ok {
		if d, ok := rates[f]; ok {
			return d, true
		}
	}
	d, ok := rt.fallback[f]
	return d, ok
}

// DefaultRateTable returns the standard rate table loaded at startup.
// The fallback covers every field; country entries override individual
// lines where local cost structures differ.
func DefaultRateTable() *RateTable {
	fallback := CountryRates{
		FieldCommercialDiscount: PctDefault(5, 100),
		FieldProductCost:        PctDefault(25, 100),
		FieldKitCost:            AmountDefault(150),
		FieldPaymentFee:         PctDefault(29, 1000),
		FieldSampleHandling:     AmountDefault(50),
		FieldSanitaryPermits:    AmountDefault(75),
		FieldExternalCourier:    AmountDefault(200),
		FieldInternalCourier:    AmountDefault(30),
		FieldPhysiciansFee:      AmountDefault(100),
		FieldSalesCommission:    PctDefault(8, 100),
	}

	byCountry := map[string]CountryRates{
		"AR": {
			FieldSanitaryPermits: AmountDefault(120),
			FieldPaymentFee:      PctDefault(45, 1000),
		},
		"CL": {
			FieldExternalCourier: AmountDefault(180),
		},
		"UY": {
			FieldInternalCourier: AmountDefault(25),
		},
		"PY": {
			FieldSanitaryPermits: AmountDefault(90),
		},
		"MX": {
			FieldCommercialDiscount: PctDefault(7, 100),
			FieldExternalCourier:    AmountDefault(160),
		},
	}

	return NewRateTable(byCountry, fallback)
}
