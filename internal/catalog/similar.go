package catalog

import (
	"sort"

	"github.com/tripveda/tripveda-api/internal/domain"
)

// Similarity score weights. Additive: a candidate sharing location, type,
// and two category tags with the target scores 5+3+2*2 = 12.
const (
	scoreSameLocation = 5
	scoreSameType     = 3
	scorePerCategory  = 2
)

// DefaultSimilarLimit is the number of packages shown in the
// "people also like" rail.
const DefaultSimilarLimit = 6

// Score computes the relatedness of candidate to target.
func Score(target, candidate domain.Package) int {
	score := 0
	if candidate.Location == target.Location {
		score += scoreSameLocation
	}
	if candidate.Type == target.Type {
		score += scoreSameType
	}
	for _, c := range candidate.Categories {
		if target.HasCategory(c) {
			score += scorePerCategory
		}
	}
	return score
}

// Similar returns up to limit packages from catalog ranked by descending
// similarity to target. The target itself is excluded by ID. Ties keep the
// original catalog order (stable sort).
//
// This is a ranking, not a threshold filter: zero-score candidates are still
// returned so the rail is never empty while the catalog has other packages.
// The result is empty only when catalog minus target is empty.
func Similar(target domain.Package, catalog []domain.Package, limit int) []domain.Package {
	if limit <= 0 {
		return []domain.Package{}
	}

	type scored struct {
		pkg   domain.Package
		score int
	}

	candidates := make([]scored, 0, len(catalog))
	for _, p := range catalog {
		if p.ID == target.ID {
			continue
		}
		candidates = append(candidates, scored{pkg: p, score: Score(target, p)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	result := make([]domain.Package, len(candidates))
	for i, c := range candidates {
		result[i] = c.pkg
	}
	return result
}
