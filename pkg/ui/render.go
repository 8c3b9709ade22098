package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"flexdb/pkg/database"
	"flexdb/pkg/storage/dat"
	"flexdb/pkg/tuple"
	"flexdb/pkg/ui/base"
)

// RenderResult draws a QueryResult as a bordered table.
func RenderResult(result database.QueryResult) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(palette.Border)).
		Headers(result.Columns...).
		Rows(result.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return LabelStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}

// RenderHeader describes a decoded table header: its counts, layout
// attributes, columns and indexes.
func RenderHeader(h *dat.Header) string {
	var b strings.Builder

	b.WriteString(SectionStyle.Render("Header") + "\n")
	fields := [][2]string{
		{"Root name", h.RootName},
		{"Path", h.Path.String()},
		{"Version", h.Version().String()},
		{"Layout", fmt.Sprint(h.Layout)},
		{"Records", humanize.Comma(int64(h.RecordCount))},
		{"Highest record", humanize.Comma(int64(h.HighestRecordCount))},
		{"Max records", humanize.Comma(int64(h.MaxRecordCount))},
		{"Record length", strconv.Itoa(int(h.RecordLength))},
		{"Records per block", strconv.Itoa(int(h.RecordsPerBlock))},
		{"Fill bytes per block", strconv.Itoa(int(h.FillBytesPerBlock))},
		{"Reuse deleted space", strconv.FormatBool(h.ReuseDeletedSpace)},
	}
	b.WriteString(renderPairs(fields))

	b.WriteString("\n" + SectionStyle.Render(fmt.Sprintf("Columns (%d)", len(h.Columns))) + "\n")
	cols := make([][]string, len(h.Columns))
	for i, c := range h.Columns {
		related := ""
		if c.RelatedFile != 0 {
			related = fmt.Sprintf("%d.%d", c.RelatedFile, c.RelatedField)
		}
		mainIndex := ""
		if c.MainIndex != 0 {
			mainIndex = strconv.Itoa(int(c.MainIndex))
		}
		cols[i] = []string{
			strconv.Itoa(i),
			c.Name,
			c.DataType.String(),
			strconv.Itoa(int(c.Offset)),
			strconv.Itoa(int(c.Length)),
			strconv.Itoa(int(c.Scale)),
			mainIndex,
			related,
		}
	}
	b.WriteString(RenderResult(database.QueryResult{
		Columns: []string{"#", "NAME", "TYPE", "OFFSET", "LENGTH", "SCALE", "INDEX", "RELATES TO"},
		Rows:    cols,
	}))
	b.WriteString("\n")

	if len(h.Indexes) > 0 {
		b.WriteString("\n" + SectionStyle.Render(fmt.Sprintf("Indexes (%d)", len(h.Indexes))) + "\n")
		idx := make([][]string, len(h.Indexes))
		for i, ix := range h.Indexes {
			names := make([]string, 0, len(ix.Segments))
			for _, col := range ix.Columns() {
				if int(col) < len(h.Columns) {
					names = append(names, h.Columns[col].Name)
				} else {
					names = append(names, fmt.Sprintf("#%d", col))
				}
			}
			idx[i] = []string{
				strconv.Itoa(i + 1),
				ix.Type.String(),
				ix.Collation.String(),
				strings.Join(names, ", "),
			}
		}
		b.WriteString(RenderResult(database.QueryResult{
			Columns: []string{"#", "TYPE", "COLLATION", "SEGMENTS"},
			Rows:    idx,
		}))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderRecord lists the fields of one row, one per line.
func RenderRecord(row *tuple.Tuple, h *ValueHighlighter) string {
	var b strings.Builder
	b.WriteString(SectionStyle.Render(fmt.Sprintf("Record %d", row.RecordID)) + "\n")

	td := row.TupleDesc
	width := 0
	for i := range td.NumFields() {
		name, _ := td.GetFieldName(i)
		width = max(width, lipgloss.Width(name))
	}
	for i := range td.NumFields() {
		name, _ := td.GetFieldName(i)
		f, _ := row.GetField(i)
		b.WriteString(LabelStyle.Render(base.PadString(name, width)) + "  " + h.Highlight(f) + "\n")
	}
	return b.String()
}

// RenderStats summarizes registry size and cache counters.
func RenderStats(info database.DatabaseInfo) string {
	var b strings.Builder
	b.WriteString(SectionStyle.Render("Statistics") + "\n")
	b.WriteString(renderPairs([][2]string{
		{"Registry", info.Path},
		{"Registered tables", humanize.Comma(int64(info.TableCount))},
		{"Open tables", humanize.Comma(int64(info.OpenTables))},
		{"Unavailable tables", humanize.Comma(int64(info.FailedTables))},
		{"Table cache", fmt.Sprintf("%s hits / %s misses", humanize.Comma(info.CacheHits), humanize.Comma(info.CacheMisses))},
		{"Rows cached", humanize.Comma(int64(info.RowsCached))},
		{"Row cache", fmt.Sprintf("%s hits / %s misses", humanize.Comma(info.RowCacheHits), humanize.Comma(info.RowCacheMiss))},
	}))
	return b.String()
}

func renderPairs(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}

	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(LabelStyle.Render(base.PadString(p[0], width)) + "  " + p[1] + "\n")
	}
	return b.String()
}
