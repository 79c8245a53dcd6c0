// Package images manages the lazy image lifecycle of the catalog view.
// Image URLs are known as soon as a catalog loads, but no image-bearing
// state exists until the user first asks for images. Realization happens at
// most once per catalog load; afterwards visibility toggles are cheap and
// never repeat the realization work.
package images

import "prospekt/internal/catalog"

// LoadState is the image lifecycle state for the currently loaded catalog.
// There is one value per catalog, not one per row.
type LoadState int

const (
	// Unrealized is the initial state on every catalog load: only the
	// source URLs are known, no per-row association exists yet.
	Unrealized LoadState = iota
	// RealizedVisible means every offer has its image URL associated with
	// its row and the image column is shown.
	RealizedVisible
	// RealizedHidden means the associations still exist but the image
	// column is not displayed. Re-showing does not re-realize.
	RealizedHidden
)

// String returns the state name for logs.
func (s LoadState) String() string {
	switch s {
	case Unrealized:
		return "unrealized"
	case RealizedVisible:
		return "visible"
	case RealizedHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Realized reports whether the per-row associations exist.
func (s LoadState) Realized() bool {
	return s != Unrealized
}

// State tracks image realization and preview for one loaded catalog.
// It is created fresh on every catalog load.
type State struct {
	state        LoadState
	urls         map[string]string // offer id -> primary image URL
	previewURL   string
	realizations int // times the realization work actually ran
}

// NewState returns image state in the Unrealized initial state.
func NewState() *State {
	return &State{state: Unrealized}
}

// LoadState returns the current lifecycle state.
func (s *State) LoadState() LoadState {
	return s.state
}

// Visible reports whether the image column should be displayed.
func (s *State) Visible() bool {
	return s.state == RealizedVisible
}

// Toggle advances the lifecycle on an explicit user request. The first call
// realizes the per-row associations and shows the column; every later call
// only flips visibility. Filtering never calls Toggle.
func (s *State) Toggle(offers []catalog.Offer, variant string) {
	switch s.state {
	case Unrealized:
		s.realize(offers, variant)
		s.state = RealizedVisible
	case RealizedVisible:
		s.state = RealizedHidden
		s.previewURL = ""
	case RealizedHidden:
		s.state = RealizedVisible
	}
}

// realize builds the offer-id to URL association exactly once.
func (s *State) realize(offers []catalog.Offer, variant string) {
	if s.urls != nil {
		return
	}
	s.urls = make(map[string]string, len(offers))
	for i := range offers {
		if url := offers[i].Images.Primary(variant); url != "" {
			s.urls[offers[i].ID] = url
		}
	}
	s.realizations++
}

// URL returns the realized image URL for an offer row, or "" when the state
// is still Unrealized or the offer has no usable image.
func (s *State) URL(offerID string) string {
	return s.urls[offerID]
}

// SetPreview records the URL currently shown in the preview overlay.
// Previewing only makes sense while the image column is visible; requests in
// any other state are ignored.
func (s *State) SetPreview(url string) {
	if s.state != RealizedVisible {
		return
	}
	s.previewURL = url
}

// ClearPreview empties the preview overlay.
func (s *State) ClearPreview() {
	s.previewURL = ""
}

// PreviewURL returns the currently previewed URL, or "" for none.
func (s *State) PreviewURL() string {
	return s.previewURL
}
