// Package catalog defines the in-memory data model for a loaded offer
// snapshot and the loader that validates raw snapshot payloads. A Catalog and
// everything derived from it is immutable after load and fully replaced on
// the next load; nothing in this package persists across catalog changes.
package catalog

import (
	"sort"
	"strconv"
)

// Category is the single category an offer belongs to.
type Category struct {
	Name string `json:"name"`
}

// Price is a currency-agnostic price magnitude.
type Price struct {
	Value float64 `json:"value"`
}

// String renders the bare magnitude without a currency suffix, trimming
// insignificant zeros ("1.5", not "1.50").
func (p Price) String() string {
	return strconv.FormatFloat(p.Value, 'f', -1, 64)
}

// ImageSet maps variant names (e.g. "app", "original") to URLs.
// Any variant may be absent.
type ImageSet map[string]string

// Primary returns the URL for the preferred variant, falling back to the
// remaining variants in sorted name order so the choice is deterministic.
// Returns "" when the set carries no usable URL.
func (s ImageSet) Primary(preferred string) string {
	if url := s[preferred]; url != "" {
		return url
	}
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if url := s[name]; url != "" {
			return url
		}
	}
	return ""
}

// Preview returns the URL for the higher-resolution preview variant, falling
// back to the primary choice when the preview variant is absent.
func (s ImageSet) Preview(preferred, primary string) string {
	if url := s[preferred]; url != "" {
		return url
	}
	return s.Primary(primary)
}

// Offer is a single product/price record within a catalog, immutable as
// received from the snapshot.
type Offer struct {
	// ID is an opaque identifier, unique within a catalog. Snapshots carry
	// ids as JSON numbers or strings; the loader normalizes both to string.
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Price       Price    `json:"price"`
	Description string   `json:"description"`
	Images      ImageSet `json:"images"`
}

// DisplayPrice renders the price the way the table shows it ("1.5 €").
// This is the "formatted price" the search predicate matches against.
func (o *Offer) DisplayPrice() string {
	return o.Price.String() + " €"
}

// Catalog is one weekly/market snapshot of offers.
type Catalog struct {
	// ValidFrom and ValidTill are opaque date labels, not parsed further.
	ValidFrom string
	ValidTill string
	// TotalCount is the count claimed by the snapshot. It is informational:
	// len(Offers) is authoritative everywhere in the viewer.
	TotalCount int
	// National marks a nationwide (rather than per-market) snapshot.
	National bool
	// Offers in canonical display order. The table never re-sorts them.
	Offers []Offer
}

// Len returns the authoritative offer count.
func (c *Catalog) Len() int {
	return len(c.Offers)
}

// Summary renders the header line for the loaded catalog, e.g.
// "2024-01-01 - 2024-01-06 · 412 offers".
func (c *Catalog) Summary() string {
	return c.ValidFrom + " - " + c.ValidTill + " · " + strconv.Itoa(len(c.Offers)) + " offers"
}
