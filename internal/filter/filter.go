// Package filter owns the live filter state of the catalog view: the search
// term and the set of excluded categories. Its visibility predicate is the
// single source of truth for both the rendered table and the export, so the
// two can never disagree about which offers are "visible".
package filter

import (
	"sort"
	"strings"

	"prospekt/internal/catalog"
)

// State holds the filter state for the currently displayed catalog.
// It is rebuilt from defaults on every catalog load and never retains
// exclusions referring to a no-longer-loaded catalog. State is not
// self-synchronizing; it is owned by the single UI event loop.
type State struct {
	searchTerm string
	excluded   map[string]bool
}

// New creates filter state with the given default category exclusions.
// Callers pass the result of catalog.DefaultExclusions, so the excluded set
// only ever contains names present in the current category index.
func New(defaultExcluded []string) *State {
	s := &State{
		excluded: make(map[string]bool),
	}
	for _, name := range defaultExcluded {
		s.excluded[name] = true
	}
	return s
}

// SearchTerm returns the current search term.
func (s *State) SearchTerm() string {
	return s.searchTerm
}

// SetSearchTerm replaces the search term. The empty string matches
// everything; no other validation is applied.
func (s *State) SetSearchTerm(term string) {
	s.searchTerm = term
}

// IsExcluded reports whether the named category is currently excluded.
func (s *State) IsExcluded(name string) bool {
	return s.excluded[name]
}

// ToggleCategoryExclusion flips the exclusion of a category. Toggling the
// same name twice restores the original state.
func (s *State) ToggleCategoryExclusion(name string) {
	if s.excluded[name] {
		delete(s.excluded, name)
	} else {
		s.excluded[name] = true
	}
}

// ClearExclusions removes every category exclusion.
func (s *State) ClearExclusions() {
	s.excluded = make(map[string]bool)
}

// ExcludedCategories returns the excluded names in sorted order.
func (s *State) ExcludedCategories() []string {
	out := make([]string, 0, len(s.excluded))
	for name := range s.excluded {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// HasActiveFilter reports whether any filtering is in effect.
func (s *State) HasActiveFilter() bool {
	return s.searchTerm != "" || len(s.excluded) > 0
}

// IsVisible is the visibility predicate governing both the table and the
// export. An offer is visible iff its category is not excluded AND the
// search term (when non-empty) matches at least one display field as a
// case-insensitive substring. The two conditions always combine
// conjunctively; there is no mode where one replaces the other.
//
// IsVisible is a pure function of the state and the offer: no caching, no
// hidden inputs.
func (s *State) IsVisible(o *catalog.Offer) bool {
	if s.excluded[o.Category.Name] {
		return false
	}
	if s.searchTerm == "" {
		return true
	}

	term := strings.ToLower(s.searchTerm)
	for _, field := range []string{
		o.ID,
		o.Title,
		o.Category.Name,
		o.DisplayPrice(),
		o.Description,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
