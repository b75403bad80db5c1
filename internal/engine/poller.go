package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/umitdogu/proxysql-monitor/internal/admin"
	"github.com/umitdogu/proxysql-monitor/internal/model"
)

// maxConcurrentQueries bounds how many mysql client processes one poll cycle
// may have in flight at once.
const maxConcurrentQueries = 4

// PollConfig tunes a poll cycle.
type PollConfig struct {
	Datasets []admin.Dataset
	LogFile  string // empty disables the log dataset
	LogLines int
}

// FetchAll runs one poll cycle: every dataset query concurrently, plus the
// local log tail. It never returns an error; a dashboard keeps rendering
// whatever it can get. Datasets whose query failed are present in the
// snapshot with no rows and marked in Failed, so the store replaces them.
// Datasets the expiring context prevented from even starting are omitted,
// so the store keeps their last good rows.
func FetchAll(ctx context.Context, c admin.Client, cfg PollConfig) *model.Snapshot {
	type result struct {
		rows      []model.Row
		attempted bool
		failed    bool
	}
	results := make([]result, len(cfg.Datasets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQueries)

	for i, ds := range cfg.Datasets {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			results[i].attempted = true
			rows, err := c.Query(gctx, ds.SQL, ds.MinFields)
			if err != nil {
				results[i].failed = true
				return nil
			}
			results[i].rows = rows
			return nil
		})
	}

	// The goroutines only ever return nil.
	_ = g.Wait()

	snap := &model.Snapshot{
		Data:      make(map[string][]model.Row, len(cfg.Datasets)+1),
		Failed:    make(map[string]bool),
		FetchedAt: time.Now(),
	}
	for i, ds := range cfg.Datasets {
		if !results[i].attempted {
			continue
		}
		snap.Data[ds.Name] = results[i].rows
		if results[i].failed {
			snap.Failed[ds.Name] = true
		}
	}

	if cfg.LogFile != "" {
		snap.Data[admin.DatasetLogs] = admin.TailLog(cfg.LogFile, cfg.LogLines)
	}
	return snap
}

// FetchVersion asks the admin interface for its version banner. Unlike the
// cycle datasets this is fetched once at startup, so an error propagates.
func FetchVersion(ctx context.Context, c admin.Client) (string, error) {
	rows, err := c.Query(ctx, admin.QueryVersion, 1)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 || rows[0].IsNull(0) {
		return "Unknown", nil
	}
	return rows[0].Field(0), nil
}
