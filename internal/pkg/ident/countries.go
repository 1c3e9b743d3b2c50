package ident

import "strings"

// UnknownCountry is the sentinel code returned when no country can be
// derived from a company label. Downstream joins yield zero actuals for
// this code instead of failing.
const UnknownCountry = "XX"

// countryMapping maps a company-label substring to a country code.
type countryMapping struct {
	match string // lowercase substring to look for
	code  string
}

// countryMappings is an ordered table of country-name substrings.
// Order matters: the first match wins, so full names come before
// colloquial short forms ("argentina" before "arge"). Matching is
// substring-based, not token-based; a company name containing a country
// name inside an unrelated word will mismatch.
var countryMappings = []countryMapping{
	{"argentina", "AR"},
	{"arge", "AR"},
	{"chile", "CL"},
	{"uruguay", "UY"},
	{"paraguay", "PY"},
	{"bolivia", "BO"},
	{"perú", "PE"},
	{"peru", "PE"},
	{"ecuador", "EC"},
	{"colombia", "CO"},
	{"méxico", "MX"},
	{"mexico", "MX"},
	{"brasil", "BR"},
	{"brazil", "BR"},
	{"venezuela", "VE"},
	{"costa rica", "CR"},
	{"panamá", "PA"},
	{"panama", "PA"},
	{"guatemala", "GT"},
	{"honduras", "HN"},
	{"el salvador", "SV"},
	{"nicaragua", "NI"},
	{"república dominicana", "DO"},
	{"republica dominicana", "DO"},
	{"españa", "ES"},
	{"espana", "ES"},
	{"spain", "ES"},
	{"estados unidos", "US"},
	{"usa", "US"},
}

// legacyCompanies maps exact legacy company labels (lowercased, trimmed)
// to country codes. These are historical spellings that carry no country
// name at all.
var legacyCompanies = map[string]string{
	"distribuidora del plata":  "AR",
	"laboratorio andino":       "CL",
	"genlab oriental":          "UY",
	"biofarma del este":        "PY",
	"importadora del pacífico": "PE",
	"importadora del pacifico": "PE",
}

// CountryFromCompany derives a country code from a free-text company label.
// It scans the ordered country-name table for the first case-insensitive
// substring match, then falls back to the legacy company table, then to
// UnknownCountry.
func CountryFromCompany(company string) string {
	lower := strings.ToLower(strings.TrimSpace(company))
	if lower == "" {
		return UnknownCountry
	}

	for _, m := range countryMappings {
		if strings.Contains(lower, m.match) {
			return m.code
		}
	}

	if code, ok := legacyCompanies[lower]; ok {
		return code
	}

	return UnknownCountry
}
