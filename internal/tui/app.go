package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/umitdogu/proxysql-monitor/internal/admin"
	"github.com/umitdogu/proxysql-monitor/internal/config"
	"github.com/umitdogu/proxysql-monitor/internal/engine"
	"github.com/umitdogu/proxysql-monitor/internal/logger"
	"github.com/umitdogu/proxysql-monitor/internal/model"
	"github.com/umitdogu/proxysql-monitor/internal/search"
)

type connState int

const (
	stateConnected connState = iota
	stateDisconnected
)

// App is the root Bubble Tea model. Its Update method is the only place any
// of this state mutates.
type App struct {
	client       admin.Client
	log          logger.Logger
	pollCfg      engine.PollConfig
	pollInterval time.Duration

	// Poll state
	fetching    bool // true while a fetch command is in flight
	tickPending bool // true while a poll tick is scheduled
	store       *model.Store
	counters map[string]float64
	uptime   time.Duration

	// Derived metrics
	qps          *engine.RateEngine
	hitRates     *engine.HitRateTracker
	connWindow   *model.RollingWindow
	effWindow    *model.RollingWindow
	totalConns   int
	activeConns  int
	errBaseline  float64
	errSeen      bool
	health       engine.Tier
	version      string
	uptimeSeeded bool

	// Classification thresholds
	connThresholds engine.ConnThresholds
	qpsThresholds  engine.RateThresholds
	hitThresholds  engine.RateThresholds

	// Search
	resolver search.HostResolver
	search   *search.Engine

	// View state
	pages        []page
	nav          *NavState
	gate         *renderGate
	viewCache    string
	pendingClear *clearScope
	showHelp     bool

	// Connection state
	connState   connState
	lastError   error
	lastUpdated time.Time

	// Layout
	width, height int
}

// NewApp builds the App from config. resolver may be nil to disable
// hostname augmentation in search and host columns.
func NewApp(c admin.Client, cfg *config.Config, resolver search.HostResolver, log logger.Logger) *App {
	pages := []page{
		frontendPage(),
		backendPage(),
		runtimePage(),
		&performancePage{},
		logsPage(),
	}
	subCounts := make([]int, len(pages))
	for i, p := range pages {
		subCounts[i] = len(p.SubpageTitles())
	}

	return &App{
		client: c,
		log:    log,
		pollCfg: engine.PollConfig{
			Datasets: admin.Catalogue(admin.CatalogueConfig{
				ExcludedUsers:  cfg.ExcludedUsers,
				SlowQueryMinMS: cfg.SlowQueryMinMS,
			}),
			LogFile:  cfg.LogFile,
			LogLines: cfg.LogLines,
		},
		pollInterval: cfg.PollInterval,
		fetching:     true, // Init() always issues an immediate fetch
		store:        model.NewStore(),
		counters:     map[string]float64{},
		qps:          engine.NewRateEngine(cfg.WindowSize),
		hitRates:     engine.NewHitRateTracker(),
		connWindow:   model.NewRollingWindow(cfg.WindowSize),
		effWindow:    model.NewRollingWindow(cfg.WindowSize),
		connThresholds: engine.ConnThresholds{
			Low:    cfg.Thresholds.ConnectionsLow,
			Medium: cfg.Thresholds.ConnectionsMedium,
			High:   cfg.Thresholds.ConnectionsHigh,
		},
		qpsThresholds: engine.RateThresholds{
			Low:    cfg.Thresholds.QPSLow,
			Medium: cfg.Thresholds.QPSMedium,
			High:   cfg.Thresholds.QPSHigh,
		},
		hitThresholds: engine.RateThresholds{
			Low:    cfg.Thresholds.HitsLow,
			Medium: cfg.Thresholds.HitsMedium,
			High:   cfg.Thresholds.HitsHigh,
		},
		resolver:  resolver,
		search:    search.NewEngine(resolver),
		pages:     pages,
		nav:       NewNavState(subCounts, cfg.PageSize),
		gate:      newRenderGate(0),
		health:    engine.Tier{Label: "HEALTHY", Severity: engine.SeverityGood},
		connState: stateDisconnected,
	}
}

// Init implements tea.Model: probe the version and start polling.
func (app *App) Init() tea.Cmd {
	return tea.Batch(
		versionCmd(app.client),
		fetchCmd(app.client, app.pollCfg, app.pollInterval),
	)
}

// Update implements tea.Model — the single state-mutation entry point.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height
		return app, app.dirtyCmd()

	case VersionMsg:
		if msg.Err != nil {
			app.lastError = msg.Err
			app.log.Warn("version probe failed: %v", msg.Err)
		} else {
			app.version = msg.Version
		}
		return app, app.dirtyCmd()

	case SnapshotMsg:
		app.fetching = false
		app.applySnapshot(msg.Snapshot)
		return app, tea.Batch(app.scheduleTick(), app.dirtyCmd())

	case TickMsg:
		app.tickPending = false
		if app.fetching {
			return app, nil
		}
		app.fetching = true
		return app, fetchCmd(app.client, app.pollCfg, app.pollInterval)

	case FrameMsg:
		if app.gate.Consume(time.Time(msg)) {
			app.viewCache = app.renderView()
		}
		return app, nil

	case ClearResultMsg:
		if msg.Err != nil {
			app.lastError = msg.Err
			app.log.Error("clear stats failed: %v", msg.Err)
			return app, app.dirtyCmd()
		}
		if msg.Scope.resetHitTracker {
			app.hitRates.Reset()
		}
		app.log.Info("cleared: %s", msg.Scope.title)
		if !app.fetching {
			app.fetching = true
			return app, tea.Batch(fetchCmd(app.client, app.pollCfg, app.pollInterval), app.dirtyCmd())
		}
		return app, app.dirtyCmd()

	case tea.KeyMsg:
		return app.handleKey(msg)
	}

	return app, nil
}

// View implements tea.Model, returning the cached frame.
func (app *App) View() string {
	if app.viewCache == "" {
		app.viewCache = app.renderView()
	}
	return app.viewCache
}

// applySnapshot folds one poll cycle into the store and recomputes the
// derived metrics whose source datasets this cycle actually fetched. A failed
// dataset must not masquerade as zeroed counters: a delta taken against an
// outage's zeros would prime the rate engine at nothing and spike on
// recovery, and an error baseline dropped to zero would pin the health badge
// at CRITICAL once the lifetime totals come back.
func (app *App) applySnapshot(snap *model.Snapshot) {
	app.store.Apply(snap)
	now := snap.FetchedAt

	fresh := func(name string) bool {
		_, ok := snap.Data[name]
		return ok && !snap.Failed[name]
	}

	if fresh(admin.DatasetCounters) {
		app.counters = engine.ParseCounters(app.store.Rows(admin.DatasetCounters))
		app.uptime = engine.Uptime(app.counters)

		// First counters fix the process start so the initial QPS reading is
		// a lifetime average instead of garbage.
		if !app.uptimeSeeded && app.uptime > 0 {
			app.qps.SetProcessStart(now.Add(-app.uptime))
			app.uptimeSeeded = true
		}
		app.qps.Update(app.counters["Questions"],
			engine.SumBackendQueries(app.store.Rows(admin.DatasetConnPool)), now)
		app.effWindow.Push(connEfficiency(app.counters))
	}

	if fresh(admin.DatasetQueryRules) {
		app.hitRates.Recompute(now, engine.RuleHitCounters(app.store.Rows(admin.DatasetQueryRules)))
	}

	if fresh(admin.DatasetUserConns) {
		app.totalConns, app.activeConns = engine.CountConnections(app.store.Rows(admin.DatasetUserConns))
		app.connWindow.Push(float64(app.activeConns))
	}

	if fresh(admin.DatasetConnPool) {
		errs := engine.SumBackendErrors(app.store.Rows(admin.DatasetConnPool))
		if !app.errSeen || errs < app.errBaseline {
			app.errBaseline = errs
			app.errSeen = true
		}
		app.health = engine.HealthBadge(errs-app.errBaseline, len(app.store.Rows(admin.DatasetSlowQueries)))
	}

	attempted, failed := 0, 0
	for name := range snap.Data {
		attempted++
		if snap.Failed[name] {
			failed++
		}
	}
	if attempted > 0 && failed == attempted {
		app.connState = stateDisconnected
		app.lastError = fmt.Errorf("admin interface unreachable")
		app.log.Warn("poll cycle: all %d dataset queries failed", attempted)
	} else {
		app.connState = stateConnected
		app.lastError = nil
	}
	app.lastUpdated = now

	// Rows may have shrunk under the current scroll offset.
	app.nav.Clamp(len(app.visibleRows()))
}

// visibleRows returns the current subpage's rows after filtering, or nil for
// non-row views.
func (app *App) visibleRows() []model.Row {
	rows := app.pages[app.nav.Page()].Rows(app, app.nav.Subpage())
	if rows == nil {
		return nil
	}
	if !app.nav.FilterActive() {
		return rows
	}
	return app.search.Filter(app.nav.Filter(), rows)
}

func (app *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Confirmation overlay swallows everything but its own answers.
	if app.pendingClear != nil {
		switch msg.String() {
		case "y":
			scope := *app.pendingClear
			app.pendingClear = nil
			return app, tea.Batch(clearCmd(app.client, scope), app.dirtyCmd())
		case "n", "esc":
			app.pendingClear = nil
			return app, app.dirtyCmd()
		}
		return app, nil
	}

	if app.nav.Mode() == ModeFilterInput {
		return app.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return app, tea.Quit

	case key.Matches(msg, keys.Refresh):
		if app.fetching {
			return app, nil
		}
		app.fetching = true
		return app, fetchCmd(app.client, app.pollCfg, app.pollInterval)

	case key.Matches(msg, keys.Filter):
		app.nav.StartFilter()
		return app, app.dirtyCmd()

	case key.Matches(msg, keys.Escape):
		app.nav.CancelFilter()
		app.nav.Clamp(len(app.visibleRows()))
		return app, app.dirtyCmd()

	case key.Matches(msg, keys.NextPage):
		app.nav.NextPage()
		return app, app.dirtyCmd()

	case key.Matches(msg, keys.PrevPage):
		app.nav.PrevPage()
		return app, app.dirtyCmd()

	case key.Matches(msg, keys.NextSubpage):
		app.nav.NextSubpage()
		return app, app.dirtyCmd()

	case key.Matches(msg, keys.PrevSubpage):
		app.nav.PrevSubpage()
		return app, app.dirtyCmd()

	case key.Matches(msg, keys.Page1), key.Matches(msg, keys.Page2),
		key.Matches(msg, keys.Page3), key.Matches(msg, keys.Page4),
		key.Matches(msg, keys.Page5):
		app.nav.GotoPage(int(msg.String()[0] - '1'))
		return app, app.dirtyCmd()

	case key.Matches(msg, keys.ClearStats):
		if scope := clearScopeFor(app); scope != nil {
			app.pendingClear = scope
			return app, app.dirtyCmd()
		}
		return app, nil

	case key.Matches(msg, keys.Help):
		app.showHelp = !app.showHelp
		return app, app.dirtyCmd()
	}

	if app.handleScrollKey(msg) {
		return app, app.dirtyCmd()
	}
	return app, nil
}

// handleFilterKey routes keys while the filter is being typed. Scroll keys
// still work so matches can be browsed mid-pattern; everything else either
// edits the pattern or is swallowed.
func (app *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		app.nav.CancelFilter()
		app.nav.Clamp(len(app.visibleRows()))
		return app, app.dirtyCmd()

	case msg.Type == tea.KeyBackspace:
		app.nav.Backspace()
		app.nav.Clamp(len(app.visibleRows()))
		return app, app.dirtyCmd()

	case app.handleScrollKey(msg):
		return app, app.dirtyCmd()

	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			app.nav.TypeRune(r)
		}
		app.nav.Clamp(len(app.visibleRows()))
		return app, app.dirtyCmd()

	case msg.Type == tea.KeySpace:
		app.nav.TypeRune(' ')
		app.nav.Clamp(len(app.visibleRows()))
		return app, app.dirtyCmd()
	}
	return app, nil
}

// handleScrollKey applies a scroll key against the current row population.
// Returns false when msg is not a scroll key.
func (app *App) handleScrollKey(msg tea.KeyMsg) bool {
	n := len(app.visibleRows())
	switch {
	case key.Matches(msg, keys.ScrollUp):
		app.nav.ScrollBy(-1, n)
	case key.Matches(msg, keys.ScrollDown):
		app.nav.ScrollBy(1, n)
	case key.Matches(msg, keys.PageUp):
		app.nav.ScrollBy(-app.nav.PageSize(), n)
	case key.Matches(msg, keys.PageDown):
		app.nav.ScrollBy(app.nav.PageSize(), n)
	case key.Matches(msg, keys.Home):
		app.nav.ScrollTop()
	case key.Matches(msg, keys.End):
		app.nav.ScrollEnd(n)
	default:
		return false
	}
	return true
}

// dirtyCmd marks the view stale and schedules a frame tick unless one is
// already pending.
func (app *App) dirtyCmd() tea.Cmd {
	delay, schedule := app.gate.MarkDirty(time.Now())
	if !schedule {
		return nil
	}
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// renderView builds the full frame.
func (app *App) renderView() string {
	if app.pendingClear != nil {
		return renderHeader(app) + "\n" + renderClearConfirm(app)
	}

	rows := app.visibleRows()
	var parts []string
	parts = append(parts, renderHeader(app))
	parts = append(parts, renderTabs(app))
	parts = append(parts, app.pages[app.nav.Page()].Render(app, app.nav.Subpage(), rows))
	parts = append(parts, renderFooter(app, len(rows)))
	return strings.Join(parts, "\n")
}

// scheduleTick arms the next poll tick, or returns nil when one is already
// pending. Every snapshot offers to schedule, so a manual refresh cannot
// stack a second tick chain on top of the regular cadence.
func (app *App) scheduleTick() tea.Cmd {
	if app.tickPending {
		return nil
	}
	app.tickPending = true
	return tickCmd(app.pollInterval)
}

// tickCmd schedules the next poll after duration d.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// fetchCmd runs one poll cycle off the update loop. The cycle gets the poll
// interval minus a safety margin so a hung query cannot overlap the next
// tick.
func fetchCmd(c admin.Client, pollCfg engine.PollConfig, interval time.Duration) tea.Cmd {
	return func() tea.Msg {
		timeout := interval - 500*time.Millisecond
		if timeout < 500*time.Millisecond {
			timeout = 500 * time.Millisecond
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return SnapshotMsg{Snapshot: engine.FetchAll(ctx, c, pollCfg)}
	}
}

// versionCmd probes the instance version once at startup.
func versionCmd(c admin.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		v, err := engine.FetchVersion(ctx, c)
		return VersionMsg{Version: v, Err: err}
	}
}
