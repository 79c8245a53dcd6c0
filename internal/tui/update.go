package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"prospekt/internal/errors"
	"prospekt/internal/source"
)

// Init fetches the manifest, starts the spinner, and arms the optional
// reachability probe and change watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, fetchManifest(m.src, m.cfg)}
	if p, ok := m.src.(source.Pinger); ok {
		cmds = append(cmds, ping(p, m.cfg))
	}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

// Update is the single place view state changes. Fetch results arrive here
// as messages; the engine itself is only ever touched from this loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.sizeTable()
		return m, nil

	case spinner.TickMsg:
		if m.eng.Loading() == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case manifestMsg:
		return m.handleManifest(msg)

	case snapshotMsg:
		// The engine records failures itself; the summary line shows them.
		_ = m.eng.CompleteLoad(msg.gen, msg.id, msg.payload, msg.err)
		m.refreshTable()
		return m, nil

	case manifestChangedMsg:
		m.log.Debug("data directory changed, refreshing manifest")
		return m, tea.Batch(fetchManifest(m.src, m.cfg), waitForChange(m.changes))

	case pingMsg:
		up := msg.err == nil
		m.sourceUp = &up
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.status = errors.UserMessage(msg.err)
		} else if msg.format == "prompt" {
			m.status = fmt.Sprintf("prompt for %d offers copied to clipboard", msg.count)
		} else {
			m.status = fmt.Sprintf("%d offers copied to clipboard as JSON", msg.count)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeCategories:
			return m.updateCategories(msg)
		case modePicker:
			return m.updatePicker(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

// handleManifest applies a manifest fetch result. The first successful fetch
// also kicks off the initial snapshot load, preferring the id the publisher
// would use for today and falling back to the newest one.
func (m Model) handleManifest(msg manifestMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error("manifest fetch failed", "error", msg.err)
		m.status = errors.UserMessage(msg.err)
		return m, nil
	}

	m.manifest = msg.ids
	if m.pickerIndex >= len(m.manifest) {
		m.pickerIndex = 0
	}

	if m.eng.Loaded() || m.eng.Loading() != "" || len(m.manifest) == 0 {
		return m, nil
	}

	id := source.DefaultSnapshotID(time.Now())
	if !contains(m.manifest, id) {
		id = m.manifest[len(m.manifest)-1]
	}
	return m, m.startLoad(id)
}

// startLoad begins a generation-guarded snapshot load.
func (m *Model) startLoad(id string) tea.Cmd {
	gen := m.eng.BeginLoad(id)
	m.status = ""
	return tea.Batch(fetchSnapshot(m.src, m.cfg, gen, id), m.spin.Tick)
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "/":
		m.mode = modeSearch
		m.search.Focus()
		return m, textinput.Blink

	case "c":
		if m.eng.Index() != nil {
			m.mode = modeCategories
			m.catCursor = 0
		}
		return m, nil

	case "s":
		if len(m.manifest) > 0 {
			m.mode = modePicker
			m.pickerIndex = indexOf(m.manifest, m.eng.ActiveID())
		}
		return m, nil

	case "i":
		m.eng.ToggleImages()
		m.refreshTable()
		return m, nil

	case "x":
		m.eng.ClearExclusions()
		m.refreshTable()
		return m, nil

	case "e":
		return m, m.copyExport("json")

	case "p":
		return m, m.copyExport("prompt")

	case "r":
		return m, fetchManifest(m.src, m.cfg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	m.syncPreview()
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.eng.SetSearchTerm(m.search.Value())
	m.refreshTable()
	return m, cmd
}

func (m Model) updateCategories(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A load that fails while the panel is open clears the index out from
	// under it; drop back to the table, which renders the error summary.
	if m.eng.Index() == nil {
		m.mode = modeBrowse
		return m, nil
	}
	names := m.eng.Index().Names()

	switch msg.String() {
	case "esc", "c", "q":
		m.mode = modeBrowse
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.catCursor > 0 {
			m.catCursor--
		}
	case "down", "j":
		if m.catCursor < len(names)-1 {
			m.catCursor++
		}
	case " ", "enter":
		if m.catCursor < len(names) {
			m.eng.ToggleCategory(names[m.catCursor])
			m.refreshTable()
		}
	case "a":
		m.eng.ClearExclusions()
		m.refreshTable()
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "s", "q":
		m.mode = modeBrowse
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.pickerIndex > 0 {
			m.pickerIndex--
		}
	case "down", "j":
		if m.pickerIndex < len(m.manifest)-1 {
			m.pickerIndex++
		}
	case "enter":
		m.mode = modeBrowse
		if m.pickerIndex < len(m.manifest) {
			return m, m.startLoad(m.manifest[m.pickerIndex])
		}
	}
	return m, nil
}

// copyExport serializes the visible offers and copies them to the clipboard
// in a command, so a slow terminal never blocks the loop. Serialization
// happens here because the engine is not safe to touch off-loop.
func (m *Model) copyExport(format string) tea.Cmd {
	out, err := m.eng.Export(format, m.cfg.Export.Indent)
	if err != nil {
		m.status = errors.UserMessage(err)
		return nil
	}
	count := m.eng.VisibleCount()
	clip := m.clip
	return func() tea.Msg {
		return clipboardMsg{format: format, count: count, err: clip.Copy(out)}
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// indexOf returns the position of id, or 0 when absent.
func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return 0
}
