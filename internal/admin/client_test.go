package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umitdogu/proxysql-monitor/internal/model"
)

func TestParseRows(t *testing.T) {
	out := "app_user\t10.0.0.5\t12\t3\t9\n" +
		"batch\t10.0.0.6\t4\t0\t4\n" +
		"\n" +
		"truncated\trow\n" +
		"svc\tNULL\t1\t1\t0\n"

	rows := ParseRows(out, 5)

	require.Len(t, rows, 3, "blank and truncated lines dropped")
	assert.Equal(t, model.Row{"app_user", "10.0.0.5", "12", "3", "9"}, rows[0])
	assert.Equal(t, "", rows[2].Field(1), "NULL literal reads as empty")
}

func TestParseRowsNoMinimum(t *testing.T) {
	rows := ParseRows("a\tb\nc\n", 0)
	require.Len(t, rows, 2)
	assert.Equal(t, model.Row{"c"}, rows[1])
}

func TestParseRowsEmptyOutput(t *testing.T) {
	assert.Empty(t, ParseRows("", 2))
	assert.Empty(t, ParseRows("\n\n", 2))
}

func TestNewCLIClientValidation(t *testing.T) {
	_, err := NewCLIClient(ClientConfig{})
	assert.Error(t, err)

	c, err := NewCLIClient(ClientConfig{Host: "127.0.0.1", Port: 6032, User: "admin"})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, c.config.Timeout, "default timeout applied")
}

func TestCLIClientArgsTCP(t *testing.T) {
	c, err := NewCLIClient(ClientConfig{
		Host: "127.0.0.1", Port: 6032, User: "admin", Password: "admin",
	})
	require.NoError(t, err)

	args := c.args("SELECT 1;")
	assert.Equal(t, []string{
		"--silent", "--skip-column-names",
		"--host=127.0.0.1", "--port=6032",
		"--user=admin", "--password=admin",
		"-e", "SELECT 1;",
	}, args)
}

func TestCLIClientArgsSocketWins(t *testing.T) {
	c, err := NewCLIClient(ClientConfig{
		Host: "127.0.0.1", Port: 6032,
		Socket: "/tmp/proxysql_admin.sock", User: "admin",
	})
	require.NoError(t, err)

	args := c.args("SELECT 1;")
	assert.Contains(t, args, "--socket=/tmp/proxysql_admin.sock")
	assert.NotContains(t, args, "--host=127.0.0.1")
}

func TestUserFilterClause(t *testing.T) {
	assert.Equal(t, "WHERE 1=1", userFilterClause(nil))
	assert.Equal(t,
		`WHERE user NOT IN ("monitor", "proxysql_admin")`,
		userFilterClause([]string{"monitor", "proxysql_admin"}))
}

func TestCatalogueAppliesConfig(t *testing.T) {
	cat := Catalogue(CatalogueConfig{
		ExcludedUsers:  []string{"monitor"},
		SlowQueryMinMS: 500,
	})

	byName := make(map[string]Dataset, len(cat))
	for _, d := range cat {
		byName[d.Name] = d
	}

	require.Contains(t, byName, DatasetSlowQueries)
	assert.Contains(t, byName[DatasetSlowQueries].SQL, "time_ms > 500")

	require.Contains(t, byName, DatasetUserConns)
	assert.Contains(t, byName[DatasetUserConns].SQL, `user NOT IN ("monitor")`)

	require.Contains(t, byName, DatasetCounters)
	assert.Contains(t, byName[DatasetCounters].SQL, "'ProxySQL_Uptime'")
	assert.Equal(t, 2, byName[DatasetCounters].MinFields)
}
