package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripveda/tripveda-api/internal/catalog"
	"github.com/tripveda/tripveda-api/internal/domain"
)

// testCatalog is the three-package fixture used across filter and
// similarity tests.
func testCatalog() []domain.Package {
	return []domain.Package{
		{ID: 1, Slug: "everest-base-camp", Title: "Everest Base Camp", Location: "Nepal",
			Type: domain.TypeInternational, Country: "Nepal", Categories: []string{"adventure"}},
		{ID: 2, Slug: "goa-beach", Title: "Goa Beach", Location: "India",
			Type: domain.TypeDomestic, Categories: []string{"honeymoon"}},
		{ID: 3, Slug: "annapurna-circuit", Title: "Annapurna Circuit", Location: "Nepal",
			Type: domain.TypeInternational, Country: "Nepal", Categories: []string{"adventure"}},
	}
}

func slugs(pkgs []domain.Package) []string {
	out := make([]string, len(pkgs))
	for i, p := range pkgs {
		out[i] = p.Slug
	}
	return out
}

// TestRegistry_AllMatchesEverything verifies the partition check: "all" (and
// an unset category) accepts every package.
func TestRegistry_AllMatchesEverything(t *testing.T) {
	reg := catalog.NewRegistry()

	for _, p := range testCatalog() {
		assert.True(t, reg.InCategory("all", p), p.Slug)
		assert.True(t, reg.InCategory("", p), p.Slug)
	}
}

func TestRegistry_TypeCategories(t *testing.T) {
	reg := catalog.NewRegistry()
	pkgs := testCatalog()

	assert.True(t, reg.InCategory("international", pkgs[0]))
	assert.False(t, reg.InCategory("international", pkgs[1]))
	assert.True(t, reg.InCategory("domestic", pkgs[1]))
	assert.False(t, reg.InCategory("domestic", pkgs[2]))
}

func TestRegistry_TagCategories(t *testing.T) {
	reg := catalog.NewRegistry()
	pkgs := testCatalog()

	assert.True(t, reg.InCategory("adventure", pkgs[0]))
	assert.False(t, reg.InCategory("adventure", pkgs[1]))
	assert.True(t, reg.InCategory("honeymoon", pkgs[1]))
}

func TestRegistry_LiveCategory(t *testing.T) {
	reg := catalog.NewRegistry()

	assert.True(t, reg.InCategory("live", domain.Package{Live: true}))
	assert.False(t, reg.InCategory("live", domain.Package{}))
}

// TestRegistry_UnknownTagMatchesNothing pins down the behaviour for tags
// that were never registered: they filter everything out rather than
// falling back to "all".
func TestRegistry_UnknownTagMatchesNothing(t *testing.T) {
	reg := catalog.NewRegistry()

	for _, p := range testCatalog() {
		assert.False(t, reg.InCategory("upcoming", p))
	}
}

// TestRegistry_RegisterNewTag verifies the vocabulary is open: a new tag
// with its own predicate participates without any engine change.
func TestRegistry_RegisterNewTag(t *testing.T) {
	reg := catalog.NewRegistry()
	reg.Register("budget", func(p domain.Package) bool {
		return p.Price != nil && *p.Price < 20000
	})

	cheap := 15000.0
	assert.True(t, reg.InCategory("budget", domain.Package{Price: &cheap}))
	assert.False(t, reg.InCategory("budget", domain.Package{Price: nil}))
}

// --- Visible pipeline -------------------------------------------------------

func TestVisible_NoFiltersReturnsAllInOrder(t *testing.T) {
	got := catalog.Visible(catalog.NewRegistry(), testCatalog(), "", "", "")

	assert.Equal(t, []string{"everest-base-camp", "goa-beach", "annapurna-circuit"}, slugs(got))
}

// TestVisible_CategoryBeforeSearch is the concrete cross-filter scenario:
// "goa" matches a domestic package, so under the international category the
// result is empty — the category filter excludes it before text relevance
// matters.
func TestVisible_CategoryBeforeSearch(t *testing.T) {
	got := catalog.Visible(catalog.NewRegistry(), testCatalog(), "international", "", "goa")

	assert.Empty(t, got)
}

// TestVisible_EmptyQueryIsIdentity verifies an empty search string filters
// only by category and country, never by text.
func TestVisible_EmptyQueryIsIdentity(t *testing.T) {
	reg := catalog.NewRegistry()

	withQuery := catalog.Visible(reg, testCatalog(), "international", "", "")
	assert.Equal(t, []string{"everest-base-camp", "annapurna-circuit"}, slugs(withQuery))
}

func TestVisible_CountryRefinement(t *testing.T) {
	reg := catalog.NewRegistry()
	pkgs := append(testCatalog(), domain.Package{
		ID: 4, Slug: "bali-retreat", Title: "Bali Retreat", Location: "Bali",
		Type: domain.TypeInternational, Country: "Indonesia", Categories: []string{"honeymoon"},
	})

	got := catalog.Visible(reg, pkgs, "international", "Indonesia", "")

	assert.Equal(t, []string{"bali-retreat"}, slugs(got))
}

// TestVisible_CountryIgnoredOutsideInternational verifies the refinement is
// meaningless for other categories, mirroring the UI resetting it when the
// parent category changes.
func TestVisible_CountryIgnoredOutsideInternational(t *testing.T) {
	reg := catalog.NewRegistry()

	got := catalog.Visible(reg, testCatalog(), "domestic", "Nepal", "")

	assert.Equal(t, []string{"goa-beach"}, slugs(got))
}

func TestVisible_SearchWithinCategory(t *testing.T) {
	reg := catalog.NewRegistry()

	got := catalog.Visible(reg, testCatalog(), "international", "", "annapurna")

	assert.Equal(t, []string{"annapurna-circuit"}, slugs(got))
}

// TestVisible_Deterministic verifies pipeline determinism: identical inputs
// produce list-equal results.
func TestVisible_Deterministic(t *testing.T) {
	reg := catalog.NewRegistry()
	pkgs := testCatalog()

	first := catalog.Visible(reg, pkgs, "all", "", "nepal")
	second := catalog.Visible(reg, pkgs, "all", "", "nepal")

	require.Equal(t, first, second)
}

// --- Countries --------------------------------------------------------------

func TestCountries_DistinctSortedInternationalOnly(t *testing.T) {
	pkgs := append(testCatalog(),
		domain.Package{ID: 4, Slug: "bali-retreat", Type: domain.TypeInternational, Country: "Indonesia"},
		domain.Package{ID: 5, Slug: "kerala-backwaters", Type: domain.TypeDomestic, Country: "India"},
	)

	got := catalog.Countries(pkgs)

	// "Nepal" appears twice in the fixture but only once here; the domestic
	// entry's country is ignored.
	assert.Equal(t, []string{"Indonesia", "Nepal"}, got)
}

func TestCountries_EmptyCatalog(t *testing.T) {
	assert.Empty(t, catalog.Countries(nil))
}
