package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/umitdogu/proxysql-monitor/internal/admin"
	"github.com/umitdogu/proxysql-monitor/internal/engine"
	"github.com/umitdogu/proxysql-monitor/internal/format"
	"github.com/umitdogu/proxysql-monitor/internal/model"
)

// page is one top-level dashboard page.
type page interface {
	Title() string
	SubpageTitles() []string
	// Rows returns the filterable row population for a subpage; nil means
	// the subpage is not row-based and the filter does not apply.
	Rows(app *App, subpage int) []model.Row
	Render(app *App, subpage int, rows []model.Row) string
	Legend(subpage int) string
}

// tableSpec is one declarative table subpage.
type tableSpec struct {
	title   string
	dataset string
	columns []column
	legend  string
}

// tablePage renders one table per subpage from declarative specs.
type tablePage struct {
	title string
	specs []tableSpec
}

func (p *tablePage) Title() string { return p.title }

func (p *tablePage) SubpageTitles() []string {
	titles := make([]string, len(p.specs))
	for i, s := range p.specs {
		titles[i] = s.title
	}
	return titles
}

func (p *tablePage) Rows(app *App, subpage int) []model.Row {
	return app.store.Rows(p.specs[subpage].dataset)
}

func (p *tablePage) Render(app *App, subpage int, rows []model.Row) string {
	spec := p.specs[subpage]
	return renderTable(app, spec.columns, rows, app.nav.Scroll(), app.nav.PageSize())
}

func (p *tablePage) Legend(subpage int) string {
	return p.specs[subpage].legend
}

const (
	connLegend = "[NO ACTIVITY] none  [IDLE] idle only  [LIGHT] <low  [MODERATE] <med  [BUSY] <high  [SATURATED] ≥high"
	hitLegend  = "[SILENT] 0  [LIGHT] <low  [MODERATE] <med  [BUSY] <high  [HOT] ≥high"
)

// hostCell renders an address cell with its resolved short hostname when one
// is known, e.g. "10.0.0.5 (db-primary)".
func hostCell(idx int) func(*App, model.Row) string {
	return func(app *App, r model.Row) string {
		addr := r.Field(idx)
		if addr == "" {
			return ""
		}
		if app.resolver != nil {
			if name := app.resolver.ShortHostname(addr); name != "" {
				return addr + " (" + name + ")"
			}
		}
		return addr
	}
}

// connTierCell classifies a row by its total/active connection columns.
func connTierCell(totalIdx, activeIdx int) func(*App, model.Row) string {
	return func(app *App, r model.Row) string {
		total, _ := strconv.Atoi(r.Field(totalIdx))
		active, _ := strconv.Atoi(r.Field(activeIdx))
		return engine.ClassifyConnections(total, active, app.connThresholds).Label
	}
}

func connTierStyle(totalIdx, activeIdx int) func(*App, model.Row) lipgloss.Style {
	return func(app *App, r model.Row) lipgloss.Style {
		total, _ := strconv.Atoi(r.Field(totalIdx))
		active, _ := strconv.Atoi(r.Field(activeIdx))
		return severityStyle(engine.ClassifyConnections(total, active, app.connThresholds).Severity)
	}
}

// countCell formats a numeric field with thousands separators.
func countCell(idx int) func(*App, model.Row) string {
	return func(_ *App, r model.Row) string {
		n, err := strconv.ParseInt(r.Field(idx), 10, 64)
		if err != nil {
			return r.Field(idx)
		}
		return format.Count(n)
	}
}

// bytesCell formats a byte-count field.
func bytesCell(idx int) func(*App, model.Row) string {
	return func(_ *App, r model.Row) string {
		n, err := strconv.ParseUint(r.Field(idx), 10, 64)
		if err != nil {
			return r.Field(idx)
		}
		return format.Bytes(n)
	}
}

// latencyCell formats a microsecond latency field in ms.
func latencyCell(idx int) func(*App, model.Row) string {
	return func(_ *App, r model.Row) string {
		us, err := strconv.ParseFloat(r.Field(idx), 64)
		if err != nil {
			return r.Field(idx)
		}
		return format.Millis(us / 1000)
	}
}

// millisCell formats a millisecond field.
func millisCell(idx int) func(*App, model.Row) string {
	return func(_ *App, r model.Row) string {
		ms, err := strconv.ParseFloat(r.Field(idx), 64)
		if err != nil {
			return r.Field(idx)
		}
		return format.Millis(ms)
	}
}

func backendStatusStyle(idx int) func(*App, model.Row) lipgloss.Style {
	return func(_ *App, r model.Row) lipgloss.Style {
		switch r.Field(idx) {
		case "ONLINE", "1":
			return StyleGreen
		case "SHUNNED", "OFFLINE_SOFT":
			return StyleYellow
		case "OFFLINE_HARD", "SHUNNED_REPLICATION_LAG":
			return StyleRed
		default:
			return StyleDim
		}
	}
}

// frontendPage covers client-side traffic: who is connected and what they run.
func frontendPage() *tablePage {
	return &tablePage{
		title: "Frontend",
		specs: []tableSpec{
			{
				title:   "Connections",
				dataset: admin.DatasetUserConns,
				legend:  connLegend,
				columns: []column{
					{Title: "USER", Width: 20, Index: 0},
					{Title: "CLIENT HOST", Width: 32, Index: 1, Cell: hostCell(1)},
					{Title: "TOTAL", Width: 7, Index: 2, Right: true, Cell: countCell(2)},
					{Title: "ACTIVE", Width: 7, Index: 3, Right: true},
					{Title: "IDLE", Width: 7, Index: 4, Right: true},
					{Title: "STATUS", Width: 12, Cell: connTierCell(2, 3), Style: connTierStyle(2, 3)},
				},
			},
			{
				title:   "By User",
				dataset: admin.DatasetUserSummary,
				legend:  connLegend,
				columns: []column{
					{Title: "USER", Width: 24, Index: 0},
					{Title: "TOTAL", Width: 7, Index: 1, Right: true, Cell: countCell(1)},
					{Title: "ACTIVE", Width: 7, Index: 2, Right: true},
					{Title: "IDLE", Width: 7, Index: 3, Right: true},
					{Title: "STATUS", Width: 12, Cell: connTierCell(1, 2), Style: connTierStyle(1, 2)},
				},
			},
			{
				title:   "By Host",
				dataset: admin.DatasetClientConns,
				legend:  connLegend,
				columns: []column{
					{Title: "CLIENT HOST", Width: 36, Index: 0, Cell: hostCell(0)},
					{Title: "TOTAL", Width: 7, Index: 1, Right: true, Cell: countCell(1)},
					{Title: "ACTIVE", Width: 7, Index: 2, Right: true},
					{Title: "IDLE", Width: 7, Index: 3, Right: true},
					{Title: "USERS", Width: 6, Index: 4, Right: true},
					{Title: "STATUS", Width: 12, Cell: connTierCell(1, 2), Style: connTierStyle(1, 2)},
				},
			},
			{
				title:   "Slow Queries",
				dataset: admin.DatasetSlowQueries,
				columns: []column{
					{Title: "HG", Width: 3, Index: 0, Right: true},
					{Title: "SERVER", Width: 22, Index: 1},
					{Title: "USER", Width: 14, Index: 3},
					{Title: "DB", Width: 12, Index: 4},
					{Title: "CMD", Width: 8, Index: 5},
					{Title: "TIME", Width: 9, Index: 6, Right: true, Cell: millisCell(6),
						Style: func(_ *App, _ model.Row) lipgloss.Style { return StyleYellow }},
					{Title: "QUERY", Width: 60, Index: 7},
				},
			},
			{
				title:   "Query Patterns",
				dataset: admin.DatasetQueryPatterns,
				columns: []column{
					{Title: "DIGEST", Width: 52, Index: 0},
					{Title: "SCHEMA", Width: 12, Index: 1},
					{Title: "USER", Width: 12, Index: 2},
					{Title: "COUNT", Width: 10, Index: 3, Right: true, Cell: countCell(3)},
					{Title: "TOTAL", Width: 10, Index: 4, Right: true, Cell: millisCell(4)},
					{Title: "AVG", Width: 9, Index: 7, Right: true, Cell: millisCell(7)},
					{Title: "MAX", Width: 9, Index: 6, Right: true, Cell: millisCell(6)},
				},
			},
		},
	}
}

// backendPage is the single unified server health and load view.
func backendPage() *tablePage {
	return &tablePage{
		title: "Backend",
		specs: []tableSpec{
			{
				title:   "Servers",
				dataset: admin.DatasetBackends,
				columns: []column{
					{Title: "HG", Width: 3, Index: 0, Right: true},
					{Title: "HOST", Width: 28, Index: 1, Cell: hostCell(1)},
					{Title: "PORT", Width: 5, Index: 2, Right: true},
					{Title: "STATUS", Width: 12, Index: 3, Style: backendStatusStyle(3)},
					{Title: "WEIGHT", Width: 7, Index: 4, Right: true},
					{Title: "USED", Width: 6, Index: 6, Right: true},
					{Title: "FREE", Width: 6, Index: 7, Right: true},
					{Title: "ERR", Width: 6, Index: 9, Right: true,
						Style: func(_ *App, r model.Row) lipgloss.Style {
							if r.Field(9) != "0" && r.Field(9) != "" {
								return StyleRed
							}
							return StyleDim
						}},
					{Title: "CLIENTS", Width: 7, Index: 10, Right: true},
					{Title: "QUERIES", Width: 12, Index: 11, Right: true, Cell: countCell(11)},
					{Title: "SENT", Width: 10, Index: 12, Right: true, Cell: bytesCell(12)},
					{Title: "RECV", Width: 10, Index: 13, Right: true, Cell: bytesCell(13)},
					{Title: "LATENCY", Width: 9, Index: 14, Right: true, Cell: latencyCell(14)},
				},
			},
		},
	}
}

// runtimePage exposes the runtime configuration tables.
func runtimePage() *tablePage {
	boolCell := func(idx int) func(*App, model.Row) string {
		return func(_ *App, r model.Row) string {
			if r.Field(idx) == "1" {
				return "yes"
			}
			return "no"
		}
	}
	return &tablePage{
		title: "Runtime",
		specs: []tableSpec{
			{
				title:   "Users",
				dataset: admin.DatasetRuntimeUsers,
				columns: []column{
					{Title: "USERNAME", Width: 22, Index: 0},
					{Title: "ACTIVE", Width: 6, Index: 2, Cell: boolCell(2),
						Style: func(_ *App, r model.Row) lipgloss.Style {
							if r.Field(2) == "1" {
								return StyleGreen
							}
							return StyleDim
						}},
					{Title: "SSL", Width: 4, Index: 3, Cell: boolCell(3)},
					{Title: "DEF HG", Width: 6, Index: 4, Right: true},
					{Title: "SCHEMA", Width: 16, Index: 5},
					{Title: "TXN PERSIST", Width: 11, Index: 7, Cell: boolCell(7)},
					{Title: "FAST FWD", Width: 8, Index: 8, Cell: boolCell(8)},
					{Title: "MAX CONN", Width: 9, Index: 11, Right: true, Cell: countCell(11)},
				},
			},
			{
				title:   "Rules",
				dataset: admin.DatasetQueryRules,
				legend:  hitLegend,
				columns: []column{
					{Title: "ID", Width: 5, Index: 0, Right: true},
					{Title: "ACTIVE", Width: 6, Index: 1, Cell: boolCell(1)},
					{Title: "MATCH", Width: 40, Cell: func(_ *App, r model.Row) string {
						if p := r.Field(2); p != "" {
							return p
						}
						return r.Field(3)
					}},
					{Title: "USER", Width: 12, Index: 4},
					{Title: "DEST HG", Width: 7, Index: 6, Right: true},
					{Title: "APPLY", Width: 5, Index: 7, Cell: boolCell(7)},
					{Title: "HITS", Width: 12, Index: 10, Right: true, Cell: countCell(10)},
					{Title: "RATE", Width: 10, Right: true, Cell: func(app *App, r model.Row) string {
						return format.Rate(app.hitRates.Rate("rule:" + r.Field(0)))
					}},
					{Title: "LOAD", Width: 10, Cell: func(app *App, r model.Row) string {
						hits, _ := strconv.ParseFloat(r.Field(10), 64)
						return engine.ClassifyRate(hits, app.hitThresholds).Label
					}, Style: func(app *App, r model.Row) lipgloss.Style {
						hits, _ := strconv.ParseFloat(r.Field(10), 64)
						tier := engine.ClassifyRate(hits, app.hitThresholds)
						if r.Field(1) != "1" {
							tier = tier.Dimmed()
						}
						return severityStyle(tier.Severity)
					}},
				},
			},
			{
				title:   "Backends",
				dataset: admin.DatasetBackends,
				columns: []column{
					{Title: "HG", Width: 3, Index: 0, Right: true},
					{Title: "HOST", Width: 30, Index: 1, Cell: hostCell(1)},
					{Title: "PORT", Width: 5, Index: 2, Right: true},
					{Title: "STATUS", Width: 12, Index: 3, Style: backendStatusStyle(3)},
					{Title: "WEIGHT", Width: 7, Index: 4, Right: true},
					{Title: "MAX CONN", Width: 8, Index: 5, Right: true},
					{Title: "GTID", Width: 5, Index: 15, Right: true},
					{Title: "CMP", Width: 4, Index: 16, Right: true},
					{Title: "MAX LAG", Width: 7, Index: 17, Right: true},
					{Title: "SSL", Width: 4, Index: 18, Cell: boolCell(18)},
				},
			},
			{
				title:   "MySQL Vars",
				dataset: admin.DatasetMySQLVars,
				columns: []column{
					{Title: "VARIABLE", Width: 48, Index: 0},
					{Title: "VALUE", Width: 60, Index: 1},
				},
			},
			{
				title:   "Admin Vars",
				dataset: admin.DatasetAdminVars,
				columns: []column{
					{Title: "VARIABLE", Width: 48, Index: 0},
					{Title: "VALUE", Width: 60, Index: 1},
				},
			},
			{
				title:   "Global Stats",
				dataset: admin.DatasetGlobalStats,
				columns: []column{
					{Title: "VARIABLE", Width: 48, Index: 0},
					{Title: "VALUE", Width: 20, Index: 1, Right: true, Cell: countCell(1)},
				},
			},
			{
				title:   "Hostgroups",
				dataset: admin.DatasetHostgroups,
				columns: []column{
					{Title: "WRITER HG", Width: 9, Index: 0, Right: true},
					{Title: "READER HG", Width: 9, Index: 1, Right: true},
					{Title: "CHECK TYPE", Width: 16, Index: 2},
					{Title: "COMMENT", Width: 48, Index: 3},
				},
			},
		},
	}
}

// logsPage tails the ProxySQL log file.
func logsPage() *tablePage {
	return &tablePage{
		title: "Logs",
		specs: []tableSpec{
			{
				title:   "Recent",
				dataset: admin.DatasetLogs,
				columns: []column{
					{Title: "TIME", Width: 19, Index: 0},
					{Title: "LEVEL", Width: 5, Index: 1,
						Style: func(_ *App, r model.Row) lipgloss.Style {
							return logLevelStyle(r.Field(1))
						}},
					{Title: "MESSAGE", Width: 110, Index: 2},
				},
			},
		},
	}
}

// performancePage renders throughput sparklines and the CRUD breakdown. It
// is not row-based, so filtering and scrolling do not apply.
type performancePage struct{}

func (p *performancePage) Title() string           { return "Performance" }
func (p *performancePage) SubpageTitles() []string { return []string{"Throughput"} }
func (p *performancePage) Rows(*App, int) []model.Row {
	return nil
}
func (p *performancePage) Legend(int) string { return "" }

func (p *performancePage) Render(app *App, _ int, _ []model.Row) string {
	return renderPerformance(app)
}

// crudBreakdown formats the Com_* counter shares of total CRUD traffic.
func crudBreakdown(counters map[string]float64) string {
	sel := counters["Com_select"]
	ins := counters["Com_insert"]
	upd := counters["Com_update"]
	del := counters["Com_delete"]
	total := sel + ins + upd + del
	if total == 0 {
		return StyleDim.Render("no query traffic yet")
	}
	pct := func(v float64) string { return format.Percent(v / total * 100) }
	return fmt.Sprintf("SELECT %s (%s)   INSERT %s (%s)   UPDATE %s (%s)   DELETE %s (%s)",
		format.Count(int64(sel)), pct(sel),
		format.Count(int64(ins)), pct(ins),
		format.Count(int64(upd)), pct(upd),
		format.Count(int64(del)), pct(del))
}
