package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/umitdogu/proxysql-monitor/internal/format"
	"github.com/umitdogu/proxysql-monitor/internal/model"
)

// column describes one table column. Cell defaults to the raw field at
// Index; Style may color a cell based on the whole row.
type column struct {
	Title string
	Width int
	Index int
	Right bool
	Cell  func(app *App, r model.Row) string
	Style func(app *App, r model.Row) lipgloss.Style
}

// renderTable renders the header line plus the rows visible in the current
// scroll window. rows is the already-filtered population; offset is the
// index of the first visible row.
func renderTable(app *App, cols []column, rows []model.Row, offset, pageSize int) string {
	var b strings.Builder

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = pad(c.Title, c.Width, c.Right)
	}
	b.WriteString(StyleTableHeader.Render(strings.Join(headers, "  ")))
	b.WriteByte('\n')

	if len(rows) == 0 {
		b.WriteString(StyleDim.Render("  (no rows)"))
		return b.String()
	}

	end := offset + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	if offset > end {
		offset = end
	}

	for ri := offset; ri < end; ri++ {
		row := rows[ri]
		cells := make([]string, len(cols))
		for i, c := range cols {
			text := ""
			if c.Cell != nil {
				text = c.Cell(app, row)
			} else {
				text = row.Field(c.Index)
			}
			text = pad(format.Truncate(text, c.Width), c.Width, c.Right)
			if c.Style != nil {
				text = c.Style(app, row).Render(text)
			} else {
				text = StyleTableRow.Render(text)
			}
			cells[i] = text
		}
		b.WriteString(strings.Join(cells, "  "))
		if ri < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// pad fits s into width cells, truncating or space-padding as needed.
func pad(s string, width int, right bool) string {
	s = format.Truncate(s, width)
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}
