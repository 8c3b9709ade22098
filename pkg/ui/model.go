// Package ui is the interactive table browser: a menu of the registry's
// tables, paged record views, record and header detail, and cache statistics.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"flexdb/pkg/catalog/filelist"
	"flexdb/pkg/database"
	"flexdb/pkg/tables"
	"flexdb/pkg/tuple"
	"flexdb/pkg/ui/base"
)

type viewState int

const (
	viewLoading viewState = iota
	viewMenu
	viewRecords
	viewDetail
)

const (
	minColumnWidth = 4
	maxColumnWidth = 30
	visibleColumns = 8
)

// menuItem is one registry entry and the result of opening its table.
type menuItem struct {
	entry filelist.Entry
	table *tables.Table
	err   error
}

func (i menuItem) label() string {
	if i.err != nil {
		return fmt.Sprintf("%3d  %-20s unavailable", i.entry.Number, i.entry.DisplayName())
	}
	return fmt.Sprintf("%3d  %-20s %s records, %d columns",
		i.entry.Number, i.entry.DisplayName(),
		humanize.Comma(i.table.RecordCount()), i.table.Schema().NumFields())
}

// Model is the browser state. It is a tea.Model.
type Model struct {
	db       *database.Database
	pageSize int

	state    viewState
	previous viewState
	items    []menuItem
	cursor   int

	table     *tables.Table
	page      int64
	rows      []*tuple.Tuple
	colOffset int
	grid      table.Model
	detail    viewport.Model
	spinner   spinner.Model
	help      help.Model
	keys      keyMap
	highlight *ValueHighlighter
	width     int
	height    int
	showHelp  bool
	err       error
}

// NewModel creates a browser over db showing pageSize records per page.
func NewModel(db *database.Database, pageSize int) Model {
	grid := table.New(
		table.WithFocused(true),
		table.WithHeight(pageSize+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(palette.Primary).
		BorderBottom(true).
		Bold(true).
		Foreground(palette.Primary)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#0F172A")).
		Background(palette.Secondary).
		Bold(false)
	grid.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(palette.Primary)

	return Model{
		db:        db,
		pageSize:  max(pageSize, 1),
		state:     viewLoading,
		grid:      grid,
		detail:    viewport.New(80, 20),
		spinner:   sp,
		help:      help.New(),
		keys:      keys,
		highlight: NewValueHighlighter(),
	}
}

type tablesLoadedMsg struct {
	items []menuItem
}

type pageLoadedMsg struct {
	table *tables.Table
	page  int64
	rows  []*tuple.Tuple
	err   error
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadTables())
}

func (m Model) loadTables() tea.Cmd {
	db := m.db
	return func() tea.Msg {
		entries := db.Entries()
		items := make([]menuItem, len(entries))
		for i, e := range entries {
			t, err := db.Table(e.Number)
			items[i] = menuItem{entry: e, table: t, err: err}
		}
		return tablesLoadedMsg{items: items}
	}
}

func (m Model) loadPage(t *tables.Table, page int64) tea.Cmd {
	size := int64(m.pageSize)
	return func() tea.Msg {
		start := page * size
		rows, err := t.Records(start, start+size)
		return pageLoadedMsg{table: t, page: page, rows: rows, err: err}
	}
}

func (m Model) pageCount() int64 {
	if m.table == nil || m.table.RecordCount() == 0 {
		return 1
	}
	size := int64(m.pageSize)
	return (m.table.RecordCount() + size - 1) / size
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = max(msg.Width-6, 20)
		m.detail.Height = max(msg.Height-8, 5)
		m.grid.SetWidth(max(msg.Width-4, 20))
		return m, nil

	case spinner.TickMsg:
		if m.state == viewLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tablesLoadedMsg:
		m.items = msg.items
		m.state = viewMenu
		return m, nil

	case pageLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.table = msg.table
		m.page = msg.page
		m.rows = msg.rows
		m.state = viewRecords
		m.refreshGrid()
		m.grid.GotoTop()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Stats) && m.state != viewLoading:
		m.openDetail(RenderStats(m.db.GetStatistics()))
		return m, nil
	}

	switch m.state {
	case viewMenu:
		return m.handleMenuKey(msg)
	case viewRecords:
		return m.handleRecordsKey(msg)
	case viewDetail:
		if key.Matches(msg, m.keys.Back) {
			m.state = m.previous
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if item, ok := m.selectedItem(); ok {
			if item.err != nil {
				m.err = item.err
				return m, nil
			}
			m.colOffset = 0
			return m, m.loadPage(item.table, 0)
		}
	case key.Matches(msg, m.keys.Header):
		if item, ok := m.selectedItem(); ok && item.err == nil {
			m.openDetail(RenderHeader(item.table.Header()))
		}
	}
	return m, nil
}

func (m Model) handleRecordsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := m.pageCount() - 1

	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = viewMenu
		m.table = nil
		m.rows = nil
		m.err = nil
	case key.Matches(msg, m.keys.Up):
		m.grid.MoveUp(1)
	case key.Matches(msg, m.keys.Down):
		m.grid.MoveDown(1)
	case key.Matches(msg, m.keys.Left):
		if m.colOffset > 0 {
			m.colOffset--
			m.refreshGrid()
		}
	case key.Matches(msg, m.keys.Right):
		if m.colOffset < m.table.Schema().NumFields()-1 {
			m.colOffset++
			m.refreshGrid()
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.page < last {
			return m, m.loadPage(m.table, m.page+1)
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.page > 0 {
			return m, m.loadPage(m.table, m.page-1)
		}
	case key.Matches(msg, m.keys.FirstPage):
		return m, m.loadPage(m.table, 0)
	case key.Matches(msg, m.keys.LastPage):
		return m, m.loadPage(m.table, last)
	case key.Matches(msg, m.keys.Header):
		m.openDetail(RenderHeader(m.table.Header()))
	case key.Matches(msg, m.keys.Select):
		if i := m.grid.Cursor(); i >= 0 && i < len(m.rows) {
			m.openDetail(RenderRecord(m.rows[i], m.highlight))
		}
	}
	return m, nil
}

func (m Model) selectedItem() (menuItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return menuItem{}, false
	}
	return m.items[m.cursor], true
}

func (m *Model) openDetail(content string) {
	if m.state != viewDetail {
		m.previous = m.state
	}
	m.state = viewDetail
	m.detail.SetContent(content)
	m.detail.GotoTop()
}

// refreshGrid rebuilds the grid for the current page and column offset.
func (m *Model) refreshGrid() {
	result := database.NewResultFormatter().FormatRows(m.table.TupleDesc(), m.rows)

	first := min(m.colOffset, len(result.Columns))
	last := min(first+visibleColumns, len(result.Columns))
	headers := append([]string{"#"}, result.Columns[first:last]...)

	rows := make([][]string, len(result.Rows))
	for i, r := range result.Rows {
		rows[i] = append([]string{fmt.Sprintf("%d", m.rows[i].RecordID)}, r[first:last]...)
	}

	widths := base.ColumnWidths(headers, rows, minColumnWidth, maxColumnWidth)
	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		columns[i] = table.Column{Title: h, Width: widths[i]}
	}

	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		for j := range r {
			r[j] = base.TruncateString(r[j], widths[j])
		}
		tableRows[i] = table.Row(r)
	}

	// Rows must be cleared before narrowing the columns.
	m.grid.SetRows(nil)
	m.grid.SetColumns(columns)
	m.grid.SetRows(tableRows)
}

func (m Model) View() string {
	sections := []string{m.renderTitle()}

	switch m.state {
	case viewLoading:
		sections = append(sections, m.spinner.View()+" Opening tables...")
	case viewMenu:
		sections = append(sections, m.renderMenu())
	case viewRecords:
		sections = append(sections, m.renderRecords())
	case viewDetail:
		sections = append(sections, detailStyle.Render(m.detail.View()))
	}

	if m.err != nil {
		sections = append(sections, errorStyle.Render("Error: "+m.err.Error()))
	}

	sections = append(sections, m.renderStatusBar())
	if m.showHelp {
		sections = append(sections, m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		sections = append(sections, helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	}

	return appStyle.Render(strings.Join(sections, "\n\n"))
}

func (m Model) renderTitle() string {
	title := titleStyle.Render("flexdb browser")
	badge := badgeStyle.Render(m.db.Dir().Base())
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", badge)
}

func (m Model) renderMenu() string {
	if len(m.items) == 0 {
		return mutedStyle.Render("The registry lists no tables.")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(" Tables (%d) ", len(m.items))) + "\n\n")
	for i, item := range m.items {
		switch {
		case i == m.cursor:
			b.WriteString(selectedItemStyle.Render("▶ "+item.label()) + "\n")
		case item.err != nil:
			b.WriteString(unavailableItemStyle.Render("  "+item.label()) + "\n")
		default:
			b.WriteString(itemStyle.Render("  "+item.label()) + "\n")
		}
	}
	return b.String()
}

func (m Model) renderRecords() string {
	heading := headerStyle.Render(fmt.Sprintf(" %s  page %d/%d ", m.table.Name(), m.page+1, m.pageCount()))
	if len(m.rows) == 0 {
		return heading + "\n\n" + mutedStyle.Render("This table has no records.")
	}
	return heading + "\n\n" + m.grid.View()
}

func (m Model) renderStatusBar() string {
	var status string
	switch m.state {
	case viewMenu:
		status = fmt.Sprintf("%s | %d tables", m.db.Path(), len(m.items))
	case viewRecords:
		stats := m.table.Stats()
		status = fmt.Sprintf("%s | %s records | row %d | cached %s (hits %s, misses %s)",
			m.table.Name(), humanize.Comma(m.table.RecordCount()),
			m.page*int64(m.pageSize)+int64(m.grid.Cursor())+1,
			humanize.Comma(int64(stats.Entries)), humanize.Comma(stats.Hits), humanize.Comma(stats.Misses))
	case viewDetail:
		status = fmt.Sprintf("%3.f%%", m.detail.ScrollPercent()*100)
	default:
		status = "loading"
	}
	return statusBarStyle.Width(max(m.width-4, 0)).Render(status)
}

// Run starts the browser on the terminal's alternate screen and blocks until
// the user quits.
func Run(db *database.Database, pageSize int) error {
	_, err := tea.NewProgram(NewModel(db, pageSize), tea.WithAltScreen()).Run()
	return err
}
