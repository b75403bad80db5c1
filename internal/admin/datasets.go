package admin

import (
	"fmt"
	"strings"
)

// Dataset names, used as keys in snapshots and the store.
const (
	DatasetConnPool      = "connection_pool"
	DatasetUserConns     = "user_connections"
	DatasetUserSummary   = "user_summary"
	DatasetClientConns   = "client_connections"
	DatasetSlowQueries   = "slow_queries"
	DatasetQueryPatterns = "query_patterns"
	DatasetCounters      = "global_counters"
	DatasetRuntimeUsers  = "runtime_users"
	DatasetBackends      = "backend_servers"
	DatasetQueryRules    = "query_rules"
	DatasetMySQLVars     = "mysql_variables"
	DatasetAdminVars     = "admin_variables"
	DatasetGlobalStats   = "global_stats"
	DatasetHostgroups    = "hostgroups"
)

// Standalone statements outside the per-cycle dataset catalogue.
const (
	QueryVersion = "SELECT @@version_comment AS version;"

	ResetDigestStats   = "SELECT * FROM stats_mysql_query_digest_reset LIMIT 1;"
	ResetConnPoolStats = "SELECT * FROM stats_mysql_connection_pool_reset LIMIT 1;"
	ResetErrorStats    = "SELECT * FROM stats_mysql_errors_reset LIMIT 1;"
	ReloadQueryRules   = "LOAD MYSQL QUERY RULES TO RUNTIME;"
)

// Dataset pairs a snapshot key with the SQL that fills it. MinFields is the
// column count of the query; shorter rows are dropped at parse time.
type Dataset struct {
	Name      string
	SQL       string
	MinFields int
}

// CatalogueConfig tunes the generated dataset queries.
type CatalogueConfig struct {
	ExcludedUsers  []string // monitoring/service accounts hidden from connection views
	SlowQueryMinMS int      // processlist time_ms floor for the slow-query view
	SlowQueryLimit int
	PatternLimit   int // max digest rows
}

// userFilterClause builds the WHERE prefix shared by the processlist views.
// It always emits a WHERE so callers can append further AND terms.
func userFilterClause(excluded []string) string {
	if len(excluded) == 0 {
		return "WHERE 1=1"
	}
	quoted := make([]string, len(excluded))
	for i, u := range excluded {
		quoted[i] = `"` + u + `"`
	}
	return "WHERE user NOT IN (" + strings.Join(quoted, ", ") + ")"
}

// Catalogue returns the full set of per-cycle datasets.
func Catalogue(cfg CatalogueConfig) []Dataset {
	if cfg.SlowQueryMinMS <= 0 {
		cfg.SlowQueryMinMS = 1000
	}
	if cfg.SlowQueryLimit <= 0 {
		cfg.SlowQueryLimit = 100
	}
	if cfg.PatternLimit <= 0 {
		cfg.PatternLimit = 30
	}
	filter := userFilterClause(cfg.ExcludedUsers)

	return []Dataset{
		{
			Name:      DatasetConnPool,
			MinFields: 13,
			SQL: `SELECT hostgroup, srv_host, srv_port, status,
       COALESCE(ConnUsed, 0), COALESCE(ConnFree, 0),
       COALESCE(ConnOK, 0), COALESCE(ConnERR, 0),
       COALESCE(MaxConnUsed, 0), COALESCE(Queries, 0),
       COALESCE(Bytes_data_sent, 0), COALESCE(Bytes_data_recv, 0),
       COALESCE(Latency_us, 0)
FROM stats_mysql_connection_pool
WHERE status IS NOT NULL
ORDER BY hostgroup, srv_host;`,
		},
		{
			Name:      DatasetUserConns,
			MinFields: 5,
			SQL: fmt.Sprintf(`SELECT user, cli_host,
       COUNT(*),
       SUM(CASE WHEN command != "Sleep" THEN 1 ELSE 0 END),
       SUM(CASE WHEN command = "Sleep" THEN 1 ELSE 0 END)
FROM stats_mysql_processlist
%s
GROUP BY user, cli_host
ORDER BY SUM(CASE WHEN command != "Sleep" THEN 1 ELSE 0 END) DESC, COUNT(*) DESC, user;`, filter),
		},
		{
			Name:      DatasetUserSummary,
			MinFields: 4,
			SQL: fmt.Sprintf(`SELECT DISTINCT u.username,
       COALESCE(p.total_connections, 0),
       COALESCE(p.active, 0),
       COALESCE(p.idle, 0)
FROM runtime_mysql_users u
LEFT JOIN (
    SELECT user,
           COUNT(*) AS total_connections,
           SUM(CASE WHEN command != "Sleep" THEN 1 ELSE 0 END) AS active,
           SUM(CASE WHEN command = "Sleep" THEN 1 ELSE 0 END) AS idle
    FROM stats_mysql_processlist
    %s
    GROUP BY user
) p ON u.username = p.user
%s
AND u.active = 1
ORDER BY COALESCE(p.active, 0) DESC, COALESCE(p.total_connections, 0) DESC, u.username;`,
				filter, userNotInClause("u.username", cfg.ExcludedUsers)),
		},
		{
			Name:      DatasetClientConns,
			MinFields: 5,
			SQL: fmt.Sprintf(`SELECT cli_host,
       COUNT(*),
       SUM(CASE WHEN command != "Sleep" THEN 1 ELSE 0 END),
       SUM(CASE WHEN command = "Sleep" THEN 1 ELSE 0 END),
       COUNT(DISTINCT user)
FROM stats_mysql_processlist
%s
AND cli_host IS NOT NULL
GROUP BY cli_host
ORDER BY SUM(CASE WHEN command != "Sleep" THEN 1 ELSE 0 END) DESC, COUNT(*) DESC, cli_host;`, filter),
		},
		{
			Name:      DatasetSlowQueries,
			MinFields: 8,
			SQL: fmt.Sprintf(`SELECT hostgroup, srv_host, srv_port, user, db, command, time_ms, info
FROM stats_mysql_processlist
WHERE command != 'Sleep'
AND time_ms > %d
AND info IS NOT NULL AND info != ''
ORDER BY time_ms DESC
LIMIT %d;`, cfg.SlowQueryMinMS, cfg.SlowQueryLimit),
		},
		{
			Name:      DatasetQueryPatterns,
			MinFields: 12,
			SQL: fmt.Sprintf(`SELECT digest_text, schemaname, username, count_star,
       sum_time/1000000, min_time/1000000, max_time/1000000,
       sum_time/count_star/1000000,
       sum_rows_affected, sum_rows_sent, first_seen, last_seen
FROM stats_mysql_query_digest
WHERE count_star > 5
ORDER BY sum_time DESC
LIMIT %d;`, cfg.PatternLimit),
		},
		{
			Name:      DatasetCounters,
			MinFields: 2,
			SQL: `SELECT Variable_Name, Variable_Value
FROM stats_mysql_global
WHERE Variable_Name IN (
    'Questions', 'Slow_queries', 'Com_select', 'Com_insert', 'Com_update', 'Com_delete',
    'Client_Connections_aborted', 'Client_Connections_connected', 'Client_Connections_created',
    'Server_Connections_aborted', 'Server_Connections_connected', 'Server_Connections_created',
    'ConnPool_get_conn_success', 'ConnPool_get_conn_failure', 'ConnPool_get_conn_immediate',
    'Questions_backends_bytes_recv', 'Questions_backends_bytes_sent',
    'mysql_backend_buffers_bytes', 'mysql_frontend_buffers_bytes', 'ProxySQL_Uptime',
    'Query_Processor_time_nsec', 'backend_query_time_nsec',
    'mysql_killed_backend_connections', 'mysql_killed_backend_queries',
    'ConnPool_memory_bytes', 'Query_Cache_Memory_bytes'
);`,
		},
		{
			Name:      DatasetRuntimeUsers,
			MinFields: 14,
			SQL: `SELECT username, password, active, use_ssl, default_hostgroup, default_schema,
       schema_locked, transaction_persistent, fast_forward, backend,
       frontend, max_connections, attributes, comment
FROM runtime_mysql_users ORDER BY username;`,
		},
		{
			Name:      DatasetBackends,
			MinFields: 19,
			SQL: `SELECT rs.hostgroup_id, rs.hostname, rs.port, rs.status, rs.weight, rs.max_connections,
       COALESCE(cp.ConnUsed, 0), COALESCE(cp.ConnFree, 0),
       COALESCE(cp.ConnOK, 0), COALESCE(cp.ConnERR, 0),
       COALESCE(pl.client_count, 0), COALESCE(cp.Queries, 0),
       COALESCE(cp.Bytes_data_sent, 0), COALESCE(cp.Bytes_data_recv, 0),
       COALESCE(cp.Latency_us, 0),
       rs.gtid_port, rs.compression, rs.max_replication_lag, rs.use_ssl
FROM runtime_mysql_servers rs
LEFT JOIN stats_mysql_connection_pool cp
    ON rs.hostgroup_id = cp.hostgroup AND rs.hostname = cp.srv_host AND rs.port = cp.srv_port
LEFT JOIN (
    SELECT hostgroup, srv_host, srv_port, COUNT(DISTINCT cli_host) AS client_count
    FROM stats_mysql_processlist
    WHERE cli_host IS NOT NULL AND cli_host != ''
    GROUP BY hostgroup, srv_host, srv_port
) pl ON rs.hostgroup_id = pl.hostgroup AND rs.hostname = pl.srv_host AND rs.port = pl.srv_port
ORDER BY rs.hostgroup_id, rs.hostname, rs.port;`,
		},
		{
			Name:      DatasetQueryRules,
			MinFields: 11,
			SQL: `SELECT r.rule_id, r.active, r.match_pattern, r.match_digest, r.username,
       r.schemaname, r.destination_hostgroup, r.apply, r.multiplex, r.comment,
       COALESCE(s.hits, 0)
FROM runtime_mysql_query_rules r
LEFT JOIN stats_mysql_query_rules s ON r.rule_id = s.rule_id
ORDER BY r.rule_id;`,
		},
		{
			Name:      DatasetMySQLVars,
			MinFields: 2,
			SQL: `SELECT variable_name, variable_value
FROM runtime_global_variables
WHERE variable_name LIKE 'mysql-%'
ORDER BY variable_name;`,
		},
		{
			Name:      DatasetAdminVars,
			MinFields: 2,
			SQL: `SELECT variable_name, variable_value
FROM runtime_global_variables
WHERE variable_name LIKE 'admin-%'
ORDER BY variable_name;`,
		},
		{
			Name:      DatasetGlobalStats,
			MinFields: 2,
			SQL: `SELECT Variable_Name, Variable_Value
FROM stats_mysql_global
ORDER BY Variable_Name;`,
		},
		{
			Name:      DatasetHostgroups,
			MinFields: 4,
			SQL: `SELECT writer_hostgroup, reader_hostgroup, check_type, comment
FROM runtime_mysql_replication_hostgroups;`,
		},
	}
}

// userNotInClause is like userFilterClause but for an arbitrary column.
func userNotInClause(column string, excluded []string) string {
	if len(excluded) == 0 {
		return "WHERE 1=1"
	}
	quoted := make([]string, len(excluded))
	for i, u := range excluded {
		quoted[i] = `"` + u + `"`
	}
	return "WHERE " + column + " NOT IN (" + strings.Join(quoted, ", ") + ")"
}
