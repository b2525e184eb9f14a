package catalog

import "github.com/tripveda/tripveda-api/internal/domain"

// LiveMessages builds the booking-ticker message rotation from packages
// flagged live. Five messages per live package; the client rotates through
// them on its own schedule. Empty when no package is live.
func LiveMessages(catalog []domain.Package) []string {
	var out []string
	for _, p := range catalog {
		if !p.Live {
			continue
		}
		out = append(out,
			"12 people recently booked "+p.Title,
			"7 people booked "+p.Title+" this week",
			p.Location+" package is trending right now",
			"Limited seats left for "+p.Title,
			"Book now: "+p.Title,
		)
	}
	return out
}
