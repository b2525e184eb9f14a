// Package domain contains the core data types for the travel catalog API.
// This package has zero external dependencies and is imported by every other
// internal package (catalog, repo, service, handler).
package domain

// PackageType is the top-level split of the catalog.
type PackageType string

const (
	TypeInternational PackageType = "international"
	TypeDomestic      PackageType = "domestic"
)

// Package represents a single sellable tour package in the catalog.
// Records are parsed from the upstream JSON once per load and are immutable
// for the lifetime of a catalog snapshot.
//
// Price is nil when the package is priced "On Request". Country is only set
// for international packages. Live marks packages featured in the booking
// ticker and matched by the "live" category tag.
type Package struct {
	ID          int64          `json:"id"`
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        PackageType    `json:"type"`
	Country     string         `json:"country,omitempty"`
	Location    string         `json:"location"`
	Categories  []string       `json:"categories"`
	Price       *float64       `json:"price"`
	Duration    string         `json:"duration"`
	Image       string         `json:"image"`
	Gallery     []string       `json:"gallery,omitempty"`
	Rating      *float64       `json:"rating,omitempty"`
	Live        bool           `json:"live,omitempty"`
	Itinerary   []ItineraryDay `json:"itinerary,omitempty"`
	Inclusions  []string       `json:"inclusions,omitempty"`
	Exclusions  []string       `json:"exclusions,omitempty"`
}

// ItineraryDay is one entry in a package's day-by-day plan.
type ItineraryDay struct {
	Day           int      `json:"day"`
	Title         string   `json:"title"`
	Activities    []string `json:"activities,omitempty"`
	Meals         string   `json:"meals,omitempty"`
	Accommodation string   `json:"accommodation,omitempty"`
}

// HasCategory reports whether tag is in the package's category list.
func (p Package) HasCategory(tag string) bool {
	for _, c := range p.Categories {
		if c == tag {
			return true
		}
	}
	return false
}
