package tui

import (
	"fmt"

	"github.com/umitdogu/proxysql-monitor/internal/format"
)

// renderFooter renders the filter line, the stats line with the active
// legend, and the key hint.
func renderFooter(app *App, rowCount int) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	var lines []string

	switch {
	case app.nav.Mode() == ModeFilterInput:
		lines = append(lines, StyleCyan.Render(" filter: "+app.nav.Filter()+"█")+
			StyleDim.Render("  (esc cancels)"))
	case app.nav.FilterActive():
		lines = append(lines, StyleCyan.Render(fmt.Sprintf(" filter: %s  %d match(es)", app.nav.Filter(), rowCount)))
	}

	stats := fmt.Sprintf(" %s rows", format.Count(int64(rowCount)))
	if rowCount > app.nav.PageSize() {
		stats += fmt.Sprintf("  offset %d", app.nav.Scroll())
	}
	if legend := app.pages[app.nav.Page()].Legend(app.nav.Subpage()); legend != "" {
		stats += "   " + legend
	}
	lines = append(lines, StyleDim.Width(width).Render(stats))

	hint := " ? for help"
	if app.showHelp {
		hint = " " + helpText
	}
	lines = append(lines, StyleDim.Width(width).Render(hint))

	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
