package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the fixed chrome colors. Tag colors are not part of the theme;
// they come from the tag registry.
type Theme struct {
	Accent  string
	Muted   string
	Danger  string
	Warning string
	Border  string
}

// DefaultTheme is a dark-terminal palette.
func DefaultTheme() Theme {
	return Theme{
		Accent:  "#6495ED",
		Muted:   "#888888",
		Danger:  "#FF5555",
		Warning: "#F1FA8C",
		Border:  "#444444",
	}
}

// Styles are the pre-built lipgloss styles derived from a Theme.
type Styles struct {
	Header    lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Danger    lipgloss.Style
	Warning   lipgloss.Style
	Selected  lipgloss.Style
	MatchRow  lipgloss.Style
	StatusBar lipgloss.Style
}

// Styles builds the style set for the theme.
func (t Theme) Styles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Danger:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Selected:  lipgloss.NewStyle().Reverse(true),
		MatchRow:  lipgloss.NewStyle().Bold(true),
		StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
	}
}

// TagStyle returns a style rendering text in the tag's configured color.
func TagStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
