package ui

import (
	"github.com/charmbracelet/lipgloss"

	"flexdb/pkg/types"
)

// ValueHighlighter colors decoded values by type.
type ValueHighlighter struct {
	nullStyle   lipgloss.Style
	numberStyle lipgloss.Style
	dateStyle   lipgloss.Style
	stringStyle lipgloss.Style
	boolStyle   lipgloss.Style
}

func NewValueHighlighter() *ValueHighlighter {
	return &ValueHighlighter{
		nullStyle: lipgloss.NewStyle().
			Foreground(palette.Muted).
			Italic(true),
		numberStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#BD93F9")),
		dateStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BE9FD")),
		stringStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1FA8C")),
		boolStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C")),
	}
}

// Highlight renders f. A nil field renders like NULL.
func (h *ValueHighlighter) Highlight(f types.Field) string {
	if f == nil {
		return h.nullStyle.Render("NULL")
	}

	switch f.Type() {
	case types.IntType, types.FloatType:
		return h.numberStyle.Render(f.String())
	case types.DateType:
		return h.dateStyle.Render(f.String())
	case types.StringType:
		return h.stringStyle.Render(f.String())
	case types.BoolType:
		return h.boolStyle.Render(f.String())
	default:
		return h.nullStyle.Render(f.String())
	}
}
