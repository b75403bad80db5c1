package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/umitdogu/proxysql-monitor/internal/admin"
)

// clearScope describes one clear-stats action: what it resets and the
// statements that do it. Which scope the 'c' key offers depends on the
// current page and subpage.
type clearScope struct {
	title           string
	warning         string
	statements      []string
	resetHitTracker bool
}

// clearScopeFor returns the clear action available on the current view, or
// nil when the view has no resettable statistics.
func clearScopeFor(app *App) *clearScope {
	switch app.pages[app.nav.Page()].Title() {
	case "Frontend":
		if app.pages[app.nav.Page()].SubpageTitles()[app.nav.Subpage()] == "Query Patterns" {
			return &clearScope{
				title:      "Reset Query Digest Statistics",
				warning:    "This clears the accumulated query pattern statistics.",
				statements: []string{admin.ResetDigestStats},
			}
		}
		return nil
	case "Backend", "Performance":
		return &clearScope{
			title:      "Reset Connection Pool & Error Statistics",
			warning:    "This clears per-server connection pool counters and error stats.",
			statements: []string{admin.ResetConnPoolStats, admin.ResetErrorStats},
		}
	case "Runtime":
		if app.pages[app.nav.Page()].SubpageTitles()[app.nav.Subpage()] == "Rules" {
			return &clearScope{
				title:           "Reload Query Rules",
				warning:         "This reloads ALL query rules to runtime. It is the only way to clear hit counters.",
				statements:      []string{admin.ReloadQueryRules},
				resetHitTracker: true,
			}
		}
		return nil
	default:
		return nil
	}
}

// clearCmd executes a clear scope's statements in order and reports the
// first failure.
func clearCmd(c admin.Client, scope clearScope) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, stmt := range scope.statements {
			if err := c.Exec(ctx, stmt); err != nil {
				return ClearResultMsg{Scope: scope, Err: err}
			}
		}
		return ClearResultMsg{Scope: scope}
	}
}

// renderClearConfirm renders the confirmation overlay for a pending clear.
func renderClearConfirm(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	titleText := app.pendingClear.title
	hintText := StyleDim.Render("[y: confirm  n/esc: cancel]")
	gap := width - 2 - len(titleText) - 27
	if gap < 1 {
		gap = 1
	}
	titleBar := StyleHeader.Width(width).Render(titleText + strings.Repeat(" ", gap) + hintText)

	lines := []string{
		titleBar,
		"",
		"  " + StyleRed.Bold(true).Render("WARNING: "+app.pendingClear.warning),
		"",
		"  Statements to run:",
	}
	for _, stmt := range app.pendingClear.statements {
		lines = append(lines, "    "+StyleDim.Render(strings.TrimSuffix(stmt, ";")))
	}
	lines = append(lines,
		"",
		"  "+StyleYellow.Render("Press y to confirm, n or esc to cancel."))

	return strings.Join(lines, "\n")
}
