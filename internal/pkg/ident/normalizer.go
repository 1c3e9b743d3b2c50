// Package ident normalizes the free-text identities found in sales and
// budget data: company labels resolve to country codes, product names
// reduce to canonical comparison keys.
package ident

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Patterns for cleaning product names
	bracketPattern = regexp.MustCompile(`\[[^\]]*\]`)
	nonAlnum       = regexp.MustCompile(`[^A-Z0-9]+`)
)

// NormalizeProductKey reduces a free-text product name to its canonical
// comparison key: bracketed annotations removed, uppercased, every
// non-alphanumeric character (including internal spaces) stripped.
// The function is idempotent.
func NormalizeProductKey(name string) string {
	cleaned := bracketPattern.ReplaceAllString(name, "")
	cleaned = strings.ToUpper(cleaned)
	return nonAlnum.ReplaceAllString(cleaned, "")
}

// DisplayLabel formats a raw free-text label for display: bracketed
// annotations removed, each word title-cased.
func DisplayLabel(raw string) string {
	cleaned := bracketPattern.ReplaceAllString(raw, "")
	cleaned = strings.TrimSpace(cleaned)

	caser := cases.Title(language.Und)
	words := strings.Fields(cleaned)
	for i, word := range words {
		words[i] = caser.String(strings.ToLower(word))
	}

	return strings.Join(words, " ")
}
