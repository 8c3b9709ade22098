package base

import "github.com/charmbracelet/lipgloss"

// Palette is a set of colors that adapt to the terminal background.
type Palette struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	Surface   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
}

// Default is the palette used by the browser and the CLI.
var Default = Palette{
	Primary:   lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7C3AED"},
	Secondary: lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#06B6D4"},
	Accent:    lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#10B981"},
	Warning:   lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#F59E0B"},
	Error:     lipgloss.AdaptiveColor{Light: "#FF5F56", Dark: "#EF4444"},
	Muted:     lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#94A3B8"},
	Text:      lipgloss.AdaptiveColor{Light: "#1E1E2E", Dark: "#F8FAFC"},
	Surface:   lipgloss.AdaptiveColor{Light: "#F1F5F9", Dark: "#1E293B"},
	Border:    lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#334155"},
}
