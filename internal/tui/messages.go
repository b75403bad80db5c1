package tui

import (
	"time"

	"github.com/umitdogu/proxysql-monitor/internal/model"
)

// SnapshotMsg delivers one poll cycle's results to the update loop.
type SnapshotMsg struct {
	Snapshot *model.Snapshot
}

// VersionMsg delivers the startup version probe result. Err is set when the
// admin interface was unreachable.
type VersionMsg struct {
	Version string
	Err     error
}

// TickMsg triggers the next scheduled poll.
type TickMsg time.Time

// FrameMsg triggers a throttled view rebuild.
type FrameMsg time.Time

// ClearResultMsg reports the outcome of a clear-stats action.
type ClearResultMsg struct {
	Scope clearScope
	Err   error
}
