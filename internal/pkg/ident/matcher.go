package ident

import "strings"

// DefaultMinPartialKeyLen is the minimum normalized-key length required
// before a substring match counts as a product match. Below this length
// short overlapping names produce too many false positives.
const DefaultMinPartialKeyLen = 5

// Matcher decides whether two product labels refer to the same product.
// Two labels match when their normalized keys are exactly equal, or when
// one key of at least MinPartialKeyLen characters is a substring of the
// other. This is a best-effort heuristic, not a guarantee: it lets
// "Genomind" match "Genomind Professional PGx" but can still pair short
// names that merely overlap.
type Matcher struct {
	// MinPartialKeyLen is the named threshold for partial matches.
	MinPartialKeyLen int
}

// NewMatcher creates a Matcher with the default threshold.
func NewMatcher() *Matcher {
	return &Matcher{MinPartialKeyLen: DefaultMinPartialKeyLen}
}

// SameKey reports whether two already-normalized product keys identify
// the same product. The predicate is symmetric.
func (m *Matcher) SameKey(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if len(a) >= m.MinPartialKeyLen && strings.Contains(b, a) {
		return true
	}
	if len(b) >= m.MinPartialKeyLen && strings.Contains(a, b) {
		return true
	}
	return false
}

// SameProduct reports whether two raw product labels identify the same
// product, normalizing both sides first.
func (m *Matcher) SameProduct(a, b string) bool {
	return m.SameKey(NormalizeProductKey(a), NormalizeProductKey(b))
}
