package admin

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/umitdogu/proxysql-monitor/internal/model"
)

// Client is the query surface of the ProxySQL admin interface.
type Client interface {
	// Query runs a statement and returns its result rows. MinFields drops
	// malformed rows; pass 0 to keep everything.
	Query(ctx context.Context, sql string, minFields int) ([]model.Row, error)
	// Exec runs a statement for its side effect, discarding any output.
	Exec(ctx context.Context, sql string) error
	// Ping verifies the admin interface is reachable.
	Ping(ctx context.Context) error
}

// ClientConfig holds connection settings for CLIClient. Either Host/Port or
// Socket must be set; Socket wins when both are present.
type ClientConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Socket   string
	Timeout  time.Duration
}

// CLIClient reaches the admin interface by shelling out to the mysql client
// in silent mode. ProxySQL speaks the MySQL wire protocol on its admin port,
// so the stock client is the most portable transport and its tab-separated
// output maps directly onto positional rows.
type CLIClient struct {
	config ClientConfig
}

// NewCLIClient constructs a CLIClient from the given config.
func NewCLIClient(cfg ClientConfig) (*CLIClient, error) {
	if cfg.Socket == "" && cfg.Host == "" {
		return nil, fmt.Errorf("either host or socket is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &CLIClient{config: cfg}, nil
}

func (c *CLIClient) args(sql string) []string {
	args := []string{"--silent", "--skip-column-names"}
	if c.config.Socket != "" {
		args = append(args, "--socket="+c.config.Socket)
	} else {
		args = append(args,
			"--host="+c.config.Host,
			fmt.Sprintf("--port=%d", c.config.Port),
		)
	}
	args = append(args, "--user="+c.config.User)
	if c.config.Password != "" {
		args = append(args, "--password="+c.config.Password)
	}
	return append(args, "-e", sql)
}

func (c *CLIClient) run(ctx context.Context, sql string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "mysql", c.args(sql)...)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return "", fmt.Errorf("mysql: %s", truncate(strings.TrimSpace(string(ee.Stderr)), 200))
		}
		return "", fmt.Errorf("mysql: %w", err)
	}
	return string(out), nil
}

// Query runs sql and parses its tab-separated output into rows.
func (c *CLIClient) Query(ctx context.Context, sql string, minFields int) ([]model.Row, error) {
	out, err := c.run(ctx, sql)
	if err != nil {
		return nil, err
	}
	return ParseRows(out, minFields), nil
}

// Exec runs sql and discards the output.
func (c *CLIClient) Exec(ctx context.Context, sql string) error {
	_, err := c.run(ctx, sql)
	return err
}

// Ping runs a trivial query against the stats schema with a 1s timeout.
func (c *CLIClient) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	_, err := c.run(pingCtx, "SELECT 1 FROM stats_mysql_global LIMIT 1;")
	return err
}

// ParseRows splits silent-mode mysql output into rows: one row per line,
// fields separated by tabs. Blank lines and rows with fewer than minFields
// fields are dropped; a truncated row cannot be indexed positionally.
func ParseRows(out string, minFields int) []model.Row {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	rows := make([]model.Row, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < minFields {
			continue
		}
		rows = append(rows, model.Row(fields))
	}
	return rows
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
