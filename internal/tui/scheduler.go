package tui

import "time"

// defaultFrameInterval caps redraws at roughly 60 frames per second.
const defaultFrameInterval = 16 * time.Millisecond

// renderGate coalesces redraws: state changes mark the gate dirty, and the
// cached view is only rebuilt when a frame tick consumes the dirty flag, at
// most once per minInterval. A burst of key presses between two frames costs
// a single render.
type renderGate struct {
	minInterval time.Duration
	lastFrame   time.Time
	dirty       bool
	pending     bool
}

func newRenderGate(minInterval time.Duration) *renderGate {
	if minInterval <= 0 {
		minInterval = defaultFrameInterval
	}
	return &renderGate{minInterval: minInterval}
}

// MarkDirty records that the view is stale. It returns the delay until the
// next frame may fire and whether the caller should schedule a frame tick;
// false means one is already pending.
func (g *renderGate) MarkDirty(now time.Time) (time.Duration, bool) {
	g.dirty = true
	if g.pending {
		return 0, false
	}
	g.pending = true
	due := g.lastFrame.Add(g.minInterval)
	if !due.After(now) {
		return 0, true
	}
	return due.Sub(now), true
}

// Consume is called when a frame tick arrives. It reports whether there was
// dirty state to render and, if so, records the frame time.
func (g *renderGate) Consume(now time.Time) bool {
	g.pending = false
	if !g.dirty {
		return false
	}
	g.dirty = false
	g.lastFrame = now
	return true
}
