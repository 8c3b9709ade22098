// Package base holds the palette and string helpers shared by the browser
// and the CLI renderers. Widths are measured in terminal cells.
package base

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PadString pads s with spaces to width cells.
func PadString(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// TruncateString shortens s to at most maxWidth runes, ending in "..." when
// there is room for it.
func TruncateString(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}
	if maxWidth < 3 {
		return string(runes[:max(maxWidth, 0)])
	}
	return string(runes[:maxWidth-3]) + "..."
}

// FitString truncates then pads s to exactly width cells.
func FitString(s string, width int) string {
	return PadString(TruncateString(s, width), width)
}

// CenterString centers s within width cells.
func CenterString(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// RightAlign right-aligns s within width cells.
func RightAlign(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

// ColumnWidths returns, for each column, the widest of its header and cells,
// clamped to [minWidth, maxWidth].
func ColumnWidths(headers []string, rows [][]string, minWidth, maxWidth int) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	for i := range widths {
		widths[i] = min(max(widths[i], minWidth), maxWidth)
	}
	return widths
}
