package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"prospekt/internal/tui/styles"
	"prospekt/internal/util"
)

// View renders the full screen: header, the active panel (table, category
// panel or snapshot picker), the optional preview box, the status line and a
// mode-sensitive help bar.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	switch m.mode {
	case modeCategories:
		b.WriteString(m.categoriesView())
	case modePicker:
		b.WriteString(m.pickerView())
	default:
		b.WriteString(m.tableView())
	}

	if m.eng.Images() != nil {
		if url := m.eng.Images().PreviewURL(); url != "" {
			b.WriteString("\n")
			b.WriteString(styles.PreviewBox.Render(
				util.TruncateANSI("preview: "+url, max(m.width-4, 20))))
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(styles.StatusLine.Render(m.status))
	}

	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) headerView() string {
	title := styles.Title.Render("prospekt")

	badge := ""
	if m.sourceUp != nil {
		if *m.sourceUp {
			badge = " " + styles.BadgeOK.Render("API OK")
		} else {
			badge = " " + styles.BadgeFail.Render("API DOWN")
		}
	}

	summary := m.eng.Summary()
	if m.eng.Loaded() {
		summary = fmt.Sprintf("%s · %s · %d of %d shown",
			m.eng.ActiveID(), summary, m.eng.VisibleCount(), m.eng.Catalog().Len())
	}
	if id := m.eng.Loading(); id != "" {
		summary = fmt.Sprintf("%s loading %s...", m.spin.View(), id)
	}

	return title + badge + "\n" + styles.Summary.Render(summary)
}

func (m Model) tableView() string {
	if m.mode == modeSearch || m.search.Value() != "" {
		return m.search.View() + "\n" + m.table.View()
	}
	return m.table.View()
}

// categoriesView renders the exclusion panel. A red ✗ marks a hidden
// category; counts come from the index so the user can see what a toggle
// affects before pressing space.
func (m Model) categoriesView() string {
	ix := m.eng.Index()
	if ix == nil {
		return styles.Muted.Render("no catalog loaded")
	}

	var lines []string
	lines = append(lines, styles.Title.Render("Categories"), "")
	for i, name := range ix.Names() {
		mark := styles.CheckboxOff.Render("✓")
		if m.eng.Filter().IsExcluded(name) {
			mark = styles.CheckboxOn.Render("✗")
		}
		label := name
		if label == "" {
			label = "(uncategorized)"
		}
		line := fmt.Sprintf("%s %s (%d)", mark, label, ix.Count(name))
		if i == m.catCursor {
			line = styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return styles.ContentBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) pickerView() string {
	var lines []string
	lines = append(lines, styles.Title.Render("Catalogs"), "")
	for i, id := range m.manifest {
		line := id
		if id == m.eng.ActiveID() {
			line += styles.Secondary.Render(" (active)")
		}
		if i == m.pickerIndex {
			line = styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	if len(m.manifest) == 0 {
		lines = append(lines, styles.Muted.Render("no catalogs available"))
	}
	return styles.ContentBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) helpView() string {
	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + " " + desc
	}

	var parts []string
	switch m.mode {
	case modeSearch:
		parts = []string{key("esc", "done"), key("type", "filter offers")}
	case modeCategories:
		parts = []string{key("space", "toggle"), key("a", "show all"), key("esc", "back")}
	case modePicker:
		parts = []string{key("enter", "load"), key("esc", "back")}
	default:
		parts = []string{
			key("/", "search"),
			key("c", "categories"),
			key("s", "catalogs"),
			key("i", "images"),
			key("e", "copy json"),
			key("p", "copy prompt"),
			key("x", "show all"),
			key("r", "refresh"),
			key("q", "quit"),
		}
	}
	return styles.HelpBar.Render(strings.Join(parts, " · "))
}
