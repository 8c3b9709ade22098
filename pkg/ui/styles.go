package ui

import (
	"github.com/charmbracelet/lipgloss"

	"flexdb/pkg/ui/base"
)

var palette = base.Default

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Background(palette.Primary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 2)

	badgeStyle = lipgloss.NewStyle().
			Background(palette.Secondary).
			Foreground(lipgloss.Color("#0F172A")).
			Bold(true).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(palette.Primary).
				Bold(true).
				Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1)

	unavailableItemStyle = lipgloss.NewStyle().
				Foreground(palette.Muted).
				Strikethrough(true).
				Padding(0, 1)

	detailStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(0, 1)

	// LabelStyle renders the key of a key/value line.
	LabelStyle = lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true)

	// SectionStyle renders a section heading in detail views.
	SectionStyle = lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Underline(true)

	mutedStyle = lipgloss.NewStyle().Foreground(palette.Muted)

	helpStyle = lipgloss.NewStyle().
			Foreground(palette.Muted).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(palette.Surface).
			Foreground(palette.Text).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(palette.Error).
			Padding(0, 1)
)
