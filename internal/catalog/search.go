package catalog

import (
	"strings"

	"github.com/tripveda/tripveda-api/internal/domain"
)

// Matches reports whether a free-text query matches a package.
// An empty or whitespace-only query matches everything. Otherwise the test
// is a case-insensitive substring match against title, description, or
// location. Missing fields behave as empty strings and never match.
//
// This is a pure boolean filter: no tokenization, no relevance ranking.
func Matches(query string, pkg domain.Package) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(pkg.Title), q) ||
		strings.Contains(strings.ToLower(pkg.Description), q) ||
		strings.Contains(strings.ToLower(pkg.Location), q)
}
