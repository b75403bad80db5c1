package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/umitdogu/proxysql-monitor/internal/model"
)

func TestParseCounters(t *testing.T) {
	rows := []model.Row{
		{"Questions", "123456"},
		{"ProxySQL_Uptime", "3600"},
		{"Broken", "not-a-number"},
		{"NULL", "5"},
	}

	got := ParseCounters(rows)

	assert.Equal(t, 123456.0, got["Questions"])
	assert.Equal(t, 3600.0, got["ProxySQL_Uptime"])
	assert.NotContains(t, got, "Broken")
	assert.Len(t, got, 2)
}

func TestSumBackendQueries(t *testing.T) {
	rows := []model.Row{
		{"0", "db1", "3306", "ONLINE", "2", "8", "100", "0", "10", "5000", "1", "2", "300"},
		{"1", "db2", "3306", "ONLINE", "1", "9", "90", "3", "10", "2500", "1", "2", "250"},
		{"1", "db3", "3306", "SHUNNED", "0", "0", "0", "0", "0", "NULL", "0", "0", "0"},
	}

	assert.Equal(t, 7500.0, SumBackendQueries(rows))
	assert.Equal(t, 3.0, SumBackendErrors(rows))
}

func TestCountConnections(t *testing.T) {
	rows := []model.Row{
		{"app", "10.0.0.5", "12", "3", "9"},
		{"app", "10.0.0.6", "8", "2", "6"},
		{"batch", "10.0.0.7", "NULL", "NULL", "NULL"},
	}

	total, active := CountConnections(rows)
	assert.Equal(t, 20, total)
	assert.Equal(t, 5, active)
}

func TestRuleHitCounters(t *testing.T) {
	rows := []model.Row{
		{"1", "1", "^SELECT", "NULL", "NULL", "NULL", "10", "1", "NULL", "reads", "4200"},
		{"2", "1", "NULL", "0xABC", "NULL", "NULL", "20", "1", "NULL", "writes", "NULL"},
	}

	got := RuleHitCounters(rows)

	assert.Equal(t, 4200.0, got["rule:1"])
	assert.NotContains(t, got, "rule:2", "null hit counter skipped")
}

func TestUptime(t *testing.T) {
	assert.Equal(t, time.Hour, Uptime(map[string]float64{"ProxySQL_Uptime": 3600}))
	assert.Equal(t, time.Duration(0), Uptime(map[string]float64{}))
}

func TestHealthBadge(t *testing.T) {
	assert.Equal(t, "CRITICAL", HealthBadge(2, 0).Label)
	assert.Equal(t, "WARNING", HealthBadge(0, 11).Label)
	assert.Equal(t, "HEALTHY", HealthBadge(0, 10).Label)
	assert.Equal(t, SeverityGood, HealthBadge(0, 0).Severity)
}
