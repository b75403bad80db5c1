package tui

import (
	"fmt"
	"strings"

	"github.com/umitdogu/proxysql-monitor/internal/engine"
	"github.com/umitdogu/proxysql-monitor/internal/format"
)

// renderPerformance draws the throughput page: QPS, connection efficiency,
// and active-connection sparklines over the rolling windows, plus the
// counter breakdowns underneath.
func renderPerformance(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}
	sparkWidth := width - 30
	if sparkWidth < 10 {
		sparkWidth = 10
	}

	var b strings.Builder

	qps := app.qps.Rate()
	qpsTier := engine.ClassifyRate(qps, app.qpsThresholds)
	fallback := ""
	if app.qps.FallbackActive() {
		fallback = StyleDim.Render("  (backend counters)")
	}
	b.WriteString(fmt.Sprintf("  QPS        %s %s%s\n",
		pad(format.Rate(qps), 12, true), renderTier(qpsTier), fallback))
	b.WriteString("  " + renderSparkline(app.qps.Window().Values(), sparkWidth, colorCyan) + "\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  avg %s over last %d samples",
		format.Rate(app.qps.Average()), app.qps.Window().Len())) + "\n\n")

	b.WriteString(fmt.Sprintf("  EFFICIENCY %s  connection pool hits served without a new backend connection\n",
		pad(format.Percent(app.effWindow.Last()), 12, true)))
	b.WriteString("  " + renderSparkline(app.effWindow.Values(), sparkWidth, colorGreen) + "\n\n")

	b.WriteString(fmt.Sprintf("  ACTIVE     %s  frontend connections executing\n",
		pad(format.Count(int64(app.activeConns)), 12, true)))
	b.WriteString("  " + renderSparkline(app.connWindow.Values(), sparkWidth, colorBlue) + "\n\n")

	b.WriteString("  " + crudBreakdown(app.counters) + "\n\n")

	b.WriteString(StyleDim.Render(fmt.Sprintf(
		"  slow queries %s   killed queries %s   aborted frontend conns %s   backend bytes recv %s",
		format.Count(int64(app.counters["Slow_queries"])),
		format.Count(int64(app.counters["mysql_killed_backend_queries"])),
		format.Count(int64(app.counters["Client_Connections_aborted"])),
		format.Bytes(uint64(app.counters["Questions_backends_bytes_recv"])))))

	return b.String()
}

// connEfficiency derives the percentage of pool requests served from a free
// connection.
func connEfficiency(counters map[string]float64) float64 {
	success := counters["ConnPool_get_conn_success"]
	immediate := counters["ConnPool_get_conn_immediate"]
	if success <= 0 {
		return 0
	}
	pct := immediate / success * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}
