package engine

import (
	"strconv"
	"time"

	"github.com/umitdogu/proxysql-monitor/internal/model"
)

// Column positions in the datasets the helpers below consume.
const (
	connPoolColQueries = 9
	connPoolColConnErr = 7

	userConnColTotal  = 2
	userConnColActive = 3

	ruleColID   = 0
	ruleColHits = 10
)

// ParseCounters turns name/value rows from stats_mysql_global into a map.
// Unparseable values are skipped.
func ParseCounters(rows []model.Row) map[string]float64 {
	out := make(map[string]float64, len(rows))
	for _, r := range rows {
		name := r.Field(0)
		if name == "" {
			continue
		}
		v, err := strconv.ParseFloat(r.Field(1), 64)
		if err != nil {
			continue
		}
		out[name] = v
	}
	return out
}

// SumBackendQueries totals the cumulative Queries counter across the
// connection pool rows. This is the secondary counter for the rate engine.
func SumBackendQueries(connPool []model.Row) float64 {
	var sum float64
	for _, r := range connPool {
		if v, err := strconv.ParseFloat(r.Field(connPoolColQueries), 64); err == nil {
			sum += v
		}
	}
	return sum
}

// SumBackendErrors totals cumulative connection errors across the pool.
func SumBackendErrors(connPool []model.Row) float64 {
	var sum float64
	for _, r := range connPool {
		if v, err := strconv.ParseFloat(r.Field(connPoolColConnErr), 64); err == nil {
			sum += v
		}
	}
	return sum
}

// CountConnections sums total and active connections over the per-user
// connection rows.
func CountConnections(userConns []model.Row) (total, active int) {
	for _, r := range userConns {
		if v, err := strconv.Atoi(r.Field(userConnColTotal)); err == nil {
			total += v
		}
		if v, err := strconv.Atoi(r.Field(userConnColActive)); err == nil {
			active += v
		}
	}
	return total, active
}

// RuleHitCounters extracts rule_id -> cumulative hits from the query-rules
// dataset, keyed for the hit-rate tracker.
func RuleHitCounters(rules []model.Row) map[string]float64 {
	out := make(map[string]float64, len(rules))
	for _, r := range rules {
		id := r.Field(ruleColID)
		if id == "" {
			continue
		}
		v, err := strconv.ParseFloat(r.Field(ruleColHits), 64)
		if err != nil {
			continue
		}
		out["rule:"+id] = v
	}
	return out
}

// Uptime reads the ProxySQL_Uptime counter as a duration, 0 when absent.
func Uptime(counters map[string]float64) time.Duration {
	return time.Duration(counters["ProxySQL_Uptime"]) * time.Second
}

// HealthBadge summarises instance health for the header. Backend connection
// errors accumulating during the session beat everything; a pile-up of
// currently-running slow queries is a warning.
func HealthBadge(errorDelta float64, slowQueryCount int) Tier {
	switch {
	case errorDelta > 0:
		return Tier{Label: "CRITICAL", Severity: SeverityCrit}
	case slowQueryCount > 10:
		return Tier{Label: "WARNING", Severity: SeverityWarn}
	default:
		return Tier{Label: "HEALTHY", Severity: SeverityGood}
	}
}
