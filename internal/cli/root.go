// Package cli wires the cobra command surface around the TUI.
package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/umitdogu/proxysql-monitor/internal/admin"
	"github.com/umitdogu/proxysql-monitor/internal/config"
	"github.com/umitdogu/proxysql-monitor/internal/logger"
	"github.com/umitdogu/proxysql-monitor/internal/netutil"
	"github.com/umitdogu/proxysql-monitor/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
)

// SetVersionInfo sets the build metadata shown by --version.
func SetVersionInfo(v, c string) {
	version = v
	commit = c
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
}

var flags struct {
	configPath string
	host       string
	port       int
	user       string
	password   string
	socket     string
	interval   time.Duration
	debug      bool
}

var rootCmd = &cobra.Command{
	Use:   "proxysql-monitor",
	Short: "Interactive terminal dashboard for a ProxySQL instance",
	Long: `proxysql-monitor polls the ProxySQL admin interface, derives live
rates from its cumulative counters, and renders navigable, fuzzy-filterable
views of frontend connections, backend servers, runtime config, throughput,
and logs.

Connection flags override the config file
(~/.config/proxysql-monitor/config.yaml).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadOrDefault(flags.configPath)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		log, err := logger.NewFileLogger(cfg.DebugLogFile, flags.debug)
		if err != nil {
			// The dashboard is still usable without a log file.
			log = logger.Noop()
		}

		client, err := admin.NewCLIClient(admin.ClientConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Socket:   cfg.Database.Socket,
			Timeout:  cfg.Database.Timeout,
		})
		if err != nil {
			return err
		}

		// A failed ping is not fatal: the dashboard starts disconnected and
		// keeps re-polling at the configured interval.
		if err := client.Ping(context.Background()); err != nil {
			log.Warn("initial ping failed: %v", err)
		}

		app := tui.NewApp(client, cfg, netutil.NewCachingResolver(), log)
		log.Info("starting proxysql-monitor %s, poll interval %s", version, cfg.PollInterval)

		_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "path to config file")
	f.StringVar(&flags.host, "host", "", "admin interface host")
	f.IntVar(&flags.port, "port", 0, "admin interface port")
	f.StringVar(&flags.user, "user", "", "admin user")
	f.StringVar(&flags.password, "password", "", "admin password")
	f.StringVar(&flags.socket, "socket", "", "admin unix socket (overrides host/port)")
	f.DurationVar(&flags.interval, "interval", 0, "poll interval (e.g. 3s)")
	f.BoolVar(&flags.debug, "debug", false, "enable debug logging ($"+logger.DebugEnvVar+")")
}

// applyFlagOverrides copies explicitly-set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Database.Host = flags.host
	}
	if cmd.Flags().Changed("port") {
		cfg.Database.Port = flags.port
	}
	if cmd.Flags().Changed("user") {
		cfg.Database.User = flags.user
	}
	if cmd.Flags().Changed("password") {
		cfg.Database.Password = flags.password
	}
	if cmd.Flags().Changed("socket") {
		cfg.Database.Socket = flags.socket
	}
	if cmd.Flags().Changed("interval") {
		cfg.PollInterval = flags.interval
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
