package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/umitdogu/proxysql-monitor/internal/format"
)

// renderHeader renders the top bar: instance identity on the left, QPS with
// trend and health badge in the center, poll timing on the right.
func renderHeader(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	var left, center, right string

	left = app.version
	if left == "" {
		left = "ProxySQL"
	}
	if up := app.uptime; up > 0 {
		left += StyleDim.Render("  up " + format.Uptime(up))
	}

	if app.connState == stateDisconnected {
		errMsg := ""
		if app.lastError != nil {
			errMsg = app.lastError.Error()
			if len(errMsg) > 40 {
				errMsg = errMsg[:40] + "..."
			}
		}
		center = StyleError.Render(strings.TrimSpace("● DISCONNECTED  " + errMsg))
	} else {
		qps := app.qps.Rate()
		center = fmt.Sprintf("QPS %s %s  %s  conns %d/%d (%s active)",
			format.Rate(qps), trendArrow(qps, app.qps.Average()),
			renderTier(app.health),
			app.activeConns, app.totalConns,
			format.Percent(activePercent(app.activeConns, app.totalConns)))
	}

	lastStr := "connecting..."
	if !app.lastUpdated.IsZero() {
		lastStr = app.lastUpdated.Format("15:04:05")
	}
	right = StyleDim.Render(fmt.Sprintf("Last: %s  Poll: %ds", lastStr, int(app.pollInterval.Seconds())))

	// StyleHeader has Padding(0, 1) so inner content width = total width - 2.
	innerWidth := width - 2
	spacing := innerWidth - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if spacing < 2 {
		spacing = 2
	}
	leftSpacing := spacing / 2
	row := left +
		strings.Repeat(" ", leftSpacing) +
		center +
		strings.Repeat(" ", spacing-leftSpacing) +
		right

	return StyleHeader.Width(width).Render(row)
}

// trendArrow compares the instantaneous rate against the rolling average.
func trendArrow(rate, avg float64) string {
	switch {
	case avg == 0:
		return " "
	case rate > avg*1.05:
		return StyleGreen.Render("↑")
	case rate < avg*0.95:
		return StyleRed.Render("↓")
	default:
		return StyleDim.Render("→")
	}
}

func activePercent(active, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(active) / float64(total) * 100
}

// renderTabs renders the page tab bar with the current page highlighted,
// plus the subpage selector when the page has more than one view.
func renderTabs(app *App) string {
	var tabs []string
	for i, p := range app.pages {
		label := fmt.Sprintf("%d:%s", i+1, p.Title())
		if i == app.nav.Page() {
			tabs = append(tabs, StyleTabActive.Render(label))
		} else {
			tabs = append(tabs, StyleTabInactive.Render(label))
		}
	}
	line := " " + strings.Join(tabs, "  ")

	subs := app.pages[app.nav.Page()].SubpageTitles()
	if len(subs) > 1 {
		var parts []string
		for i, s := range subs {
			if i == app.nav.Subpage() {
				parts = append(parts, StyleTabActive.Render(s))
			} else {
				parts = append(parts, StyleTabInactive.Render(s))
			}
		}
		line += "\n " + strings.Join(parts, StyleDim.Render(" | "))
	}
	return line
}
