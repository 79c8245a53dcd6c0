// Package styles centralizes the lipgloss styles of the prospekt TUI.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - chosen for contrast on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	SurfaceColor   = lipgloss.Color("#1F2937") // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Title is the main header style
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	// Summary renders the validity/count line under the title
	Summary = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	// Badge styles for the source reachability indicator
	BadgeOK = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextColor).
		Background(SecondaryColor).
		Padding(0, 1)

	BadgeFail = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(ErrorColor).
			Padding(0, 1)

	// ContentBox frames the category panel and the catalog picker
	ContentBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	// PreviewBox frames the image preview overlay
	PreviewBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)

	// Checkbox styles for the category panel
	CheckboxOn  = lipgloss.NewStyle().Foreground(ErrorColor)
	CheckboxOff = lipgloss.NewStyle().Foreground(SecondaryColor)

	// Selected marks the cursor line in panels
	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(SurfaceColor)

	// StatusLine renders transient feedback (export results, errors)
	StatusLine = lipgloss.NewStyle().Foreground(WarningColor)

	// HelpBar styles
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)
)
