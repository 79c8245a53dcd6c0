package catalog

// CategoryIndex maps each category name to the number of offers carrying it.
// Names keep their first-seen order so filter controls render in catalog
// order. The index is derived, rebuilt in full on every catalog load, and
// never merged with a previous one.
type CategoryIndex struct {
	names  []string
	counts map[string]int
}

// BuildIndex derives the category index from the offer sequence in a single
// pass. Offers with a missing or empty category name count under the ""
// key rather than being dropped, so no row silently disappears from the
// category totals.
func BuildIndex(offers []Offer) *CategoryIndex {
	ix := &CategoryIndex{
		counts: make(map[string]int),
	}
	for _, offer := range offers {
		name := offer.Category.Name
		if _, seen := ix.counts[name]; !seen {
			ix.names = append(ix.names, name)
		}
		ix.counts[name]++
	}
	return ix
}

// Names returns the category names in first-seen order.
func (ix *CategoryIndex) Names() []string {
	out := make([]string, len(ix.names))
	copy(out, ix.names)
	return out
}

// Count returns the number of offers in the named category.
func (ix *CategoryIndex) Count(name string) int {
	return ix.counts[name]
}

// Has reports whether the named category exists in the index.
func (ix *CategoryIndex) Has(name string) bool {
	_, ok := ix.counts[name]
	return ok
}

// Len returns the number of distinct categories.
func (ix *CategoryIndex) Len() int {
	return len(ix.names)
}

// DefaultExclusions intersects the preselection policy list with the
// categories actually present in the index, in policy order. Stale policy
// names never make it into filter state.
func DefaultExclusions(ix *CategoryIndex, policy []string) []string {
	var out []string
	for _, name := range policy {
		if ix.Has(name) {
			out = append(out, name)
		}
	}
	return out
}
