package catalog

import (
	"sort"

	"github.com/tripveda/tripveda-api/internal/domain"
)

// CategoryAll matches every package. It is also the fallback when no
// category is selected.
const CategoryAll = "all"

// Predicate decides whether a package belongs to a category tag.
type Predicate func(domain.Package) bool

// Registry maps category tags to membership predicates.
//
// The tag vocabulary has drifted across catalog revisions
// (international/domestic, family/honeymoon/adventure, live/upcoming), so
// the set is data-driven: new tags register a predicate, the filter engine
// itself never changes. An unregistered tag matches nothing.
type Registry struct {
	predicates map[string]Predicate
}

// NewRegistry returns a Registry with the standard vocabulary:
//
//	all                      every package
//	international, domestic  strict equality on Type
//	family, honeymoon,       membership in Categories
//	adventure
//	live                     Live flag set
func NewRegistry() *Registry {
	r := &Registry{predicates: make(map[string]Predicate)}

	r.Register(CategoryAll, func(domain.Package) bool { return true })
	r.Register(string(domain.TypeInternational), typeIs(domain.TypeInternational))
	r.Register(string(domain.TypeDomestic), typeIs(domain.TypeDomestic))
	for _, tag := range []string{"family", "honeymoon", "adventure"} {
		r.Register(tag, hasTag(tag))
	}
	r.Register("live", func(p domain.Package) bool { return p.Live })

	return r
}

// Register adds or replaces the predicate for a tag.
func (r *Registry) Register(tag string, pred Predicate) {
	r.predicates[tag] = pred
}

// InCategory reports whether pkg belongs to the given category tag.
// An empty tag or "all" always matches; an unknown tag never does.
func (r *Registry) InCategory(tag string, pkg domain.Package) bool {
	if tag == "" || tag == CategoryAll {
		return true
	}
	pred, ok := r.predicates[tag]
	if !ok {
		return false
	}
	return pred(pkg)
}

func typeIs(t domain.PackageType) Predicate {
	return func(p domain.Package) bool { return p.Type == t }
}

func hasTag(tag string) Predicate {
	return func(p domain.Package) bool { return p.HasCategory(tag) }
}

// Visible is the composed filter pipeline for the listing page: category
// filter, then country refinement, then free-text search. All three are
// independent predicates intersected, so application order does not change
// the result; source order is preserved.
//
// The country refinement only applies within the "international" category
// and is ignored otherwise, mirroring the UI resetting it when the parent
// category changes. Callers pass the already-debounced query: Visible is a
// pure function of its inputs and recomputes the same ordered list for the
// same arguments.
func Visible(reg *Registry, catalog []domain.Package, category, country, query string) []domain.Package {
	if category != string(domain.TypeInternational) {
		country = ""
	}

	result := make([]domain.Package, 0, len(catalog))
	for _, p := range catalog {
		if !reg.InCategory(category, p) {
			continue
		}
		if country != "" && p.Country != country {
			continue
		}
		if !Matches(query, p) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// Countries returns the distinct countries of international packages,
// sorted alphabetically. These drive the secondary refinement chips shown
// when the international category is active.
func Countries(catalog []domain.Package) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range catalog {
		if p.Type != domain.TypeInternational || p.Country == "" {
			continue
		}
		if _, ok := seen[p.Country]; ok {
			continue
		}
		seen[p.Country] = struct{}{}
		out = append(out, p.Country)
	}
	sort.Strings(out)
	return out
}
