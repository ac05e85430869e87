package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the previewer chrome. The resume
// itself is coloured by its own accent.
type Theme struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
	Border  lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"),
		Muted:   lipgloss.Color("#6C7086"),
		Warning: lipgloss.Color("#F9E2AF"),
		Border:  lipgloss.Color("#45475A"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	// Title style for the header line.
	Title lipgloss.Style

	// Normal style for section labels.
	Normal lipgloss.Style

	// Muted style for sections that are hidden because they are empty.
	Muted lipgloss.Style

	// Selected style for the section under the cursor.
	Selected lipgloss.Style

	// Status style for transient messages.
	Status lipgloss.Style

	// Help style for the key legend.
	Help lipgloss.Style

	// Sidebar frames the section list.
	Sidebar lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Normal: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(theme.Primary),

		Status: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Sidebar: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1).
			Width(sidebarWidth),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}
