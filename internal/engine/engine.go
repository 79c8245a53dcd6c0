// Package engine owns the view state of the catalog browser: the active
// snapshot, the derived category index, the filter and image state, and the
// row projection the presentation layer renders. All state is owned by the
// single UI event loop; fetches run elsewhere and report back through the
// generation-guarded load lifecycle, so a slow stale fetch can never
// overwrite newer state.
package engine

import (
	"context"
	"fmt"

	"prospekt/internal/catalog"
	"prospekt/internal/config"
	"prospekt/internal/errors"
	"prospekt/internal/export"
	"prospekt/internal/filter"
	"prospekt/internal/images"
	"prospekt/internal/logging"
	"prospekt/internal/source"
)

// Row is one entry of the render projection: the offer, whether the current
// filter shows it, and its realized image URL (empty until realization).
type Row struct {
	Offer    *catalog.Offer
	Visible  bool
	ImageURL string
}

// Engine is the catalog view engine. The zero value is not usable; create
// one with New. Engine is not self-synchronizing: exactly one goroutine
// (the UI loop) may call its methods.
type Engine struct {
	log     *logging.Logger
	policy  []string // default category exclusions
	primary string   // preferred image variant for the table
	preview string   // preferred image variant for the preview pane

	gen       uint64
	loadingID string
	activeID  string

	catalog *catalog.Catalog
	index   *catalog.CategoryIndex
	filter  *filter.State
	images  *images.State
	loadErr error
}

// New creates an engine in the "no catalog loaded" state.
func New(cfg *config.Config, log *logging.Logger) *Engine {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Engine{
		log:     log,
		policy:  cfg.Filter.DefaultExcluded,
		primary: cfg.Images.PrimaryVariant,
		preview: cfg.Images.PreviewVariant,
	}
}

// BeginLoad marks a snapshot load as in flight and returns its generation.
// A later BeginLoad supersedes every earlier one: completions carrying an
// older generation are discarded.
func (e *Engine) BeginLoad(id string) uint64 {
	e.gen++
	e.loadingID = id
	e.log.WithCatalog(id).Debug("catalog load started", "generation", e.gen)
	return e.gen
}

// CompleteLoad applies the outcome of a fetch started with BeginLoad.
// Stale completions (generation mismatch) are ignored and return nil.
//
// On success the engine replaces the catalog and rebuilds the category
// index, filter state and image state from scratch. On failure the previous
// catalog is discarded as well: the engine shows an explicit error state,
// never a half-updated mix of old rows and new info text.
func (e *Engine) CompleteLoad(gen uint64, id string, payload []byte, fetchErr error) error {
	if gen != e.gen {
		e.log.WithCatalog(id).Debug("stale load discarded", "generation", gen, "current", e.gen)
		return nil
	}
	e.loadingID = ""

	if fetchErr != nil {
		e.fail(id, fetchErr)
		return fetchErr
	}

	c, err := catalog.Load(payload)
	if err != nil {
		e.fail(id, err)
		return err
	}

	e.catalog = c
	e.index = catalog.BuildIndex(c.Offers)
	e.filter = filter.New(catalog.DefaultExclusions(e.index, e.policy))
	e.images = images.NewState()
	e.activeID = id
	e.loadErr = nil

	e.log.WithCatalog(id).Info("catalog loaded",
		"offers", c.Len(),
		"claimed_total", c.TotalCount,
		"categories", e.index.Len(),
		"default_exclusions", e.filter.ExcludedCategories())
	return nil
}

// fail discards all view state and records the load error.
func (e *Engine) fail(id string, err error) {
	e.catalog = nil
	e.index = nil
	e.filter = nil
	e.images = nil
	e.activeID = ""
	e.loadErr = err
	e.log.WithCatalog(id).Error("catalog load failed", "error", err)
}

// Select fetches and loads a snapshot synchronously. The TUI splits the same
// lifecycle across BeginLoad and CompleteLoad; the non-interactive commands
// and tests use Select directly.
func (e *Engine) Select(ctx context.Context, src source.Source, id string) error {
	gen := e.BeginLoad(id)
	payload, err := src.Snapshot(ctx, id)
	return e.CompleteLoad(gen, id, payload, err)
}

// Loaded reports whether a catalog is currently displayed.
func (e *Engine) Loaded() bool { return e.catalog != nil }

// Loading returns the id of the snapshot being loaded, or "".
func (e *Engine) Loading() string { return e.loadingID }

// ActiveID returns the id of the loaded snapshot, or "" in the error and
// initial states.
func (e *Engine) ActiveID() string { return e.activeID }

// Err returns the load error the engine is presenting, or nil.
func (e *Engine) Err() error { return e.loadErr }

// Catalog returns the loaded catalog, or nil.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Index returns the category index of the loaded catalog, or nil.
func (e *Engine) Index() *catalog.CategoryIndex { return e.index }

// Filter returns the live filter state, or nil when nothing is loaded.
func (e *Engine) Filter() *filter.State { return e.filter }

// Images returns the image state, or nil when nothing is loaded.
func (e *Engine) Images() *images.State { return e.images }

// SetSearchTerm updates the search term. No-op without a catalog.
func (e *Engine) SetSearchTerm(term string) {
	if e.filter == nil {
		return
	}
	e.filter.SetSearchTerm(term)
}

// ToggleCategory flips the exclusion of a category present in the index.
// Names the current catalog does not carry are ignored, preserving the
// invariant that exclusions only ever reference loaded categories.
func (e *Engine) ToggleCategory(name string) {
	if e.filter == nil || !e.index.Has(name) {
		return
	}
	e.filter.ToggleCategoryExclusion(name)
}

// ClearExclusions removes all category exclusions. No-op without a catalog.
func (e *Engine) ClearExclusions() {
	if e.filter == nil {
		return
	}
	e.filter.ClearExclusions()
}

// ToggleImages advances the image lifecycle (realize on first use, then
// show/hide). Orthogonal to filtering. No-op without a catalog.
func (e *Engine) ToggleImages() {
	if e.images == nil {
		return
	}
	e.images.Toggle(e.catalog.Offers, e.primary)
	e.log.Debug("image state changed", "state", e.images.LoadState().String())
}

// Preview requests the preview overlay for an offer's high-resolution image
// variant. Only effective while the image column is visible.
func (e *Engine) Preview(offerID string) {
	if e.images == nil || !e.images.Visible() {
		return
	}
	for i := range e.catalog.Offers {
		if e.catalog.Offers[i].ID == offerID {
			e.images.SetPreview(e.catalog.Offers[i].Images.Preview(e.preview, e.primary))
			return
		}
	}
}

// ClearPreview empties the preview overlay.
func (e *Engine) ClearPreview() {
	if e.images == nil {
		return
	}
	e.images.ClearPreview()
}

// Rows returns the full offer sequence in catalog order with per-row
// visibility and realized image URLs. The presentation layer renders
// exactly this; the export reads the same predicate, so the two always
// agree.
func (e *Engine) Rows() []Row {
	if e.catalog == nil {
		return nil
	}
	rows := make([]Row, len(e.catalog.Offers))
	for i := range e.catalog.Offers {
		offer := &e.catalog.Offers[i]
		rows[i] = Row{
			Offer:    offer,
			Visible:  e.filter.IsVisible(offer),
			ImageURL: e.images.URL(offer.ID),
		}
	}
	return rows
}

// VisibleCount returns how many offers the current filter shows.
func (e *Engine) VisibleCount() int {
	n := 0
	for _, row := range e.Rows() {
		if row.Visible {
			n++
		}
	}
	return n
}

// Summary renders the text for the summary area: the catalog's validity and
// count, a user-facing error message, or the empty state.
func (e *Engine) Summary() string {
	switch {
	case e.loadErr != nil:
		return errors.UserMessage(e.loadErr)
	case e.catalog != nil:
		return e.catalog.Summary()
	default:
		return "no catalog loaded"
	}
}

// Export serializes the currently visible offers in the requested format
// ("json" or "prompt"). Fails with ErrNoCatalog when nothing is loaded; an
// empty visible set is a valid export.
func (e *Engine) Export(format string, indent int) (string, error) {
	if e.catalog == nil {
		return "", errors.ErrNoCatalog
	}
	entries := export.Visible(e.catalog, e.filter)
	switch format {
	case "json":
		return export.JSON(entries, indent)
	case "prompt":
		return export.Prompt(entries, indent)
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}
