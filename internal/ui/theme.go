package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors for the uploader's screens.
type Theme struct {
	Name string

	Text    string
	Muted   string
	Accent  string
	Success string
	Danger  string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Accent)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),

		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Width(14),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			MarginTop(1),
	}
}

// Styles holds the rendered lipgloss styles for one theme.
type Styles struct {
	Title   lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Danger  lipgloss.Style
	Label   lipgloss.Style
	Help    lipgloss.Style
}

var themes = map[string]Theme{
	"Dracula": {
		Name:    "Dracula",
		Text:    "#f8f8f2",
		Muted:   "#6272a4",
		Accent:  "#bd93f9",
		Success: "#50fa7b",
		Danger:  "#ff5555",
	},
	"Slate": {
		Name:    "Slate",
		Text:    "#e2e8f0",
		Muted:   "#64748b",
		Accent:  "#7dd3fc",
		Success: "#86efac",
		Danger:  "#fda4af",
	},
}

// themeByName resolves a configured theme name, defaulting to Dracula.
func themeByName(name string) Theme {
	if theme, ok := themes[name]; ok {
		return theme
	}
	return themes["Dracula"]
}
