// Package tui implements the interactive catalog browser: an offers table
// with live search, category exclusions, a lazily realized image column with
// preview, clipboard export, and a snapshot picker. All engine state changes
// happen in the update loop; fetches run as commands and report back as
// messages.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"prospekt/internal/clipboard"
	"prospekt/internal/config"
	"prospekt/internal/engine"
	"prospekt/internal/logging"
	"prospekt/internal/source"
	"prospekt/internal/tui/styles"
	"prospekt/internal/util"
)

// mode is the input mode of the browser.
type mode int

const (
	// modeBrowse navigates the offers table.
	modeBrowse mode = iota
	// modeSearch types into the search input; every keystroke re-filters.
	modeSearch
	// modeCategories toggles category exclusions in a panel.
	modeCategories
	// modePicker selects a snapshot from the manifest.
	modePicker
)

// Params bundles the collaborators the browser needs.
type Params struct {
	Config *config.Config
	Logger *logging.Logger
	Engine *engine.Engine
	Source source.Source
	Clip   *clipboard.Writer
	// Changes delivers manifest-change notifications, or nil when the
	// source is not watchable.
	Changes <-chan struct{}
}

// Model holds the TUI application state.
type Model struct {
	cfg  *config.Config
	log  *logging.Logger
	eng  *engine.Engine
	src  source.Source
	clip *clipboard.Writer

	mode   mode
	table  table.Model
	search textinput.Model
	spin   spinner.Model

	// visibleIDs maps table row index to offer id, rebuilt with the table.
	visibleIDs []string

	manifest    []string
	pickerIndex int
	catCursor   int

	status   string
	sourceUp *bool // nil until the first probe answers
	changes  <-chan struct{}

	width  int
	height int
	ready  bool
}

// NewModel creates the browser model.
func NewModel(p Params) Model {
	search := textinput.New()
	search.Placeholder = "search offers"
	search.CharLimit = 100
	search.Width = 32

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Primary

	log := p.Logger
	if log == nil {
		log = logging.NopLogger()
	}

	return Model{
		cfg:     p.Config,
		log:     log,
		eng:     p.Engine,
		src:     p.Source,
		clip:    p.Clip,
		table:   newOffersTable(false),
		search:  search,
		spin:    spin,
		changes: p.Changes,
	}
}

// newOffersTable builds the offers table, with or without the image column.
func newOffersTable(withImages bool) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Title", Width: 32},
		{Title: "Category", Width: 20},
		{Title: "Price", Width: 10},
		{Title: "Description", Width: 40},
	}
	if withImages {
		columns = append(columns, table.Column{Title: "Image", Width: 36})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.BorderColor).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.PrimaryColor)
	s.Selected = s.Selected.
		Foreground(styles.TextColor).
		Background(styles.SurfaceColor).
		Bold(false)
	t.SetStyles(s)
	return t
}

// refreshTable rebuilds the table rows from the engine's row projection.
// Only visible rows are listed, in catalog order; the id mapping for the
// preview is rebuilt alongside.
func (m *Model) refreshTable() {
	withImages := m.eng.Images() != nil && m.eng.Images().Visible()
	m.table = newOffersTable(withImages)
	m.sizeTable()

	var rows []table.Row
	m.visibleIDs = m.visibleIDs[:0]
	for _, row := range m.eng.Rows() {
		if !row.Visible {
			continue
		}
		cells := table.Row{
			row.Offer.ID,
			util.TruncateString(row.Offer.Title, 32),
			row.Offer.Category.Name,
			row.Offer.DisplayPrice(),
			util.TruncateString(row.Offer.Description, 40),
		}
		if withImages {
			cells = append(cells, row.ImageURL)
		}
		rows = append(rows, cells)
		m.visibleIDs = append(m.visibleIDs, row.Offer.ID)
	}
	m.table.SetRows(rows)
	m.syncPreview()
}

// sizeTable fits the table into the current terminal size, leaving room for
// the header, status and help lines.
func (m *Model) sizeTable() {
	if !m.ready {
		return
	}
	h := m.height - 7
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
	m.table.SetWidth(m.width)
}

// selectedOfferID returns the offer id of the table cursor, or "".
func (m *Model) selectedOfferID() string {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visibleIDs) {
		return ""
	}
	return m.visibleIDs[cursor]
}

// syncPreview points the preview overlay at the selected row while the image
// column is visible.
func (m *Model) syncPreview() {
	if m.eng.Images() == nil || !m.eng.Images().Visible() {
		return
	}
	if id := m.selectedOfferID(); id != "" {
		m.eng.Preview(id)
	} else {
		m.eng.ClearPreview()
	}
}
