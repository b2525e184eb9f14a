// Package catalog implements the package record store and the filtering,
// search, and similarity logic that powers the listing and detail endpoints.
//
// Records come from a static JSON upstream. Historical revisions of that
// feed disagree on shape (numeric vs string prices, missing slugs, missing
// type discriminator), so everything is normalized into the canonical
// domain.Package at the fetch boundary — legacy shapes never propagate past
// this package.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tripveda/tripveda-api/internal/domain"
)

// Source fetches and normalizes the package feed.
type Source struct {
	url    string
	client *http.Client
}

// NewSource constructs a Source for the given feed URL.
// A nil client falls back to a client with a 10s timeout.
func NewSource(url string, client *http.Client) *Source {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Source{url: url, client: client}
}

// Fetch retrieves the feed and returns normalized package records.
// A non-2xx response is an error; there is no automatic retry.
func (s *Source) Fetch(ctx context.Context) ([]domain.Package, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog.Source.Fetch: build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog.Source.Fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog.Source.Fetch: upstream returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog.Source.Fetch: read body: %w", err)
	}

	var raw []rawPackage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("catalog.Source.Fetch: decode feed: %w", err)
	}

	return Normalize(raw), nil
}

// rawPackage is the wire shape of one feed entry, loose enough to accept
// every historical revision of the feed. Unknown fields are ignored.
type rawPackage struct {
	ID          json.Number           `json:"id"`
	Slug        string                `json:"slug"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Type        string                `json:"type"`
	Country     string                `json:"country"`
	Location    string                `json:"location"`
	Categories  []string              `json:"categories"`
	Price       json.RawMessage       `json:"price"`
	Duration    string                `json:"duration"`
	Image       string                `json:"image"`
	Gallery     []string              `json:"gallery"`
	Rating      *float64              `json:"rating"`
	Live        bool                  `json:"live"`
	Itinerary   []domain.ItineraryDay `json:"itinerary"`
	Inclusions  []string              `json:"inclusions"`
	Exclusions  []string              `json:"exclusions"`
}

// Normalize converts raw feed entries into canonical packages.
//
// Rules, applied per entry:
//   - missing id: assigned from above the highest explicit id in the feed,
//     in feed order, so similarity exclusion and legacy id lookups keep
//     working and a generated id can never collide with a declared one
//   - missing slug: slugified title
//   - missing or unknown type: international when a country is present,
//     domestic otherwise
//   - price: JSON number, formatted string ("₹49,999"), or null; null and
//     unparseable strings ("On Request") normalize to nil
//   - nil categories: empty list, so membership tests never nil-deref
func Normalize(raw []rawPackage) []domain.Package {
	// Fallback ids start above the highest explicit id so an entry without
	// one can never shadow an entry that declares it.
	nextID := int64(0)
	for _, r := range raw {
		if id, err := r.ID.Int64(); err == nil && id > nextID {
			nextID = id
		}
	}

	out := make([]domain.Package, 0, len(raw))
	for _, r := range raw {
		p := domain.Package{
			Slug:        r.Slug,
			Title:       r.Title,
			Description: r.Description,
			Country:     r.Country,
			Location:    r.Location,
			Categories:  r.Categories,
			Price:       parsePrice(r.Price),
			Duration:    r.Duration,
			Image:       r.Image,
			Gallery:     r.Gallery,
			Rating:      r.Rating,
			Live:        r.Live,
			Itinerary:   r.Itinerary,
			Inclusions:  r.Inclusions,
			Exclusions:  r.Exclusions,
		}

		if id, err := r.ID.Int64(); err == nil && id != 0 {
			p.ID = id
		} else {
			nextID++
			p.ID = nextID
		}

		if p.Slug == "" {
			p.Slug = Slugify(r.Title)
		}

		switch r.Type {
		case string(domain.TypeInternational):
			p.Type = domain.TypeInternational
		case string(domain.TypeDomestic):
			p.Type = domain.TypeDomestic
		default:
			if r.Country != "" {
				p.Type = domain.TypeInternational
			} else {
				p.Type = domain.TypeDomestic
			}
		}

		if p.Categories == nil {
			p.Categories = []string{}
		}

		out = append(out, p)
	}
	return out
}

// parsePrice accepts a JSON number, a formatted string, or null.
// Strings are stripped of everything but digits and the decimal point, so
// "₹49,999" becomes 49999. Anything without digits ("On Request") is nil.
func parsePrice(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return nil
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return nil
	}
	return &n
}

// Slugify lowercases s and replaces runs of non-alphanumeric characters
// with single hyphens: "Everest Base Camp" → "everest-base-camp".
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
