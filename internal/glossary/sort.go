package glossary

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Sort orders the term sequence case-insensitively. The mapping is untouched.
func (g *Glossary) Sort() {
	SortTerms(g.Terms)
}

// SortTerms sorts terms in place by their case-folded form. Terms that fold to
// the same string keep their relative order.
func SortTerms(terms []string) {
	folder := cases.Fold()
	keys := make(map[string]string, len(terms))
	for _, t := range terms {
		if _, ok := keys[t]; !ok {
			keys[t] = folder.String(t)
		}
	}
	slices.SortStableFunc(terms, func(a, b string) int {
		return strings.Compare(keys[a], keys[b])
	})
}

// CompareFold orders a and b ignoring case.
func CompareFold(a, b string) int {
	folder := cases.Fold()
	return strings.Compare(folder.String(a), folder.String(b))
}
