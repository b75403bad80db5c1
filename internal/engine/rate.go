package engine

import (
	"time"

	"github.com/umitdogu/proxysql-monitor/internal/model"
)

// minSeedElapsedSeconds guards the lifetime-average seed against a process
// that just started: dividing by less than a second would overstate the rate.
const minSeedElapsedSeconds = 1.0

// RateEngine derives an instantaneous per-second rate from a cumulative
// counter sampled once per poll cycle. It prefers the primary counter
// (frontend Questions) and falls back to the secondary counter (sum of
// backend Queries) for cycles where the primary stalls while the secondary
// advances, which is how ProxySQL reports fast-forwarded traffic.
type RateEngine struct {
	processStart time.Time

	prevPrimary   float64
	prevSecondary float64
	prevAt        time.Time
	primed        bool

	rate           float64
	fallbackActive bool

	window *model.RollingWindow
}

// NewRateEngine creates a RateEngine whose rolling average spans windowSize
// samples (<= 0 selects the default capacity).
func NewRateEngine(windowSize int) *RateEngine {
	return &RateEngine{
		window: model.NewRollingWindow(windowSize),
	}
}

// SetProcessStart records the monitored process's start time, used to seed
// the first rate as a lifetime average. Call it before the first Update.
func (e *RateEngine) SetProcessStart(t time.Time) {
	e.processStart = t
}

// Update folds one sample of the cumulative counters into the engine and
// returns the instantaneous rate for this cycle.
//
// The first call seeds the rate with primary divided by the seconds since
// process start (floored at one second) and pushes nothing to the window: a
// lifetime average is a baseline, not a measurement. On later calls a
// non-positive elapsed time or a negative delta (counter reset) retains the
// previous rate and still pushes it to the window, so the rolling average
// keeps moving at sample cadence.
func (e *RateEngine) Update(primary, secondary float64, now time.Time) float64 {
	if !e.primed {
		elapsed := minSeedElapsedSeconds
		if !e.processStart.IsZero() {
			if s := now.Sub(e.processStart).Seconds(); s > elapsed {
				elapsed = s
			}
		}
		e.rate = primary / elapsed
		e.prevPrimary = primary
		e.prevSecondary = secondary
		e.prevAt = now
		e.primed = true
		return e.rate
	}

	elapsed := now.Sub(e.prevAt).Seconds()
	deltaPrimary := primary - e.prevPrimary
	deltaSecondary := secondary - e.prevSecondary
	e.prevPrimary = primary
	e.prevSecondary = secondary
	e.prevAt = now

	if elapsed <= 0 || deltaPrimary < 0 {
		e.window.Push(e.rate)
		return e.rate
	}

	delta := deltaPrimary
	e.fallbackActive = deltaPrimary == 0 && deltaSecondary > 0
	if e.fallbackActive {
		delta = deltaSecondary
	}

	e.rate = delta / elapsed
	e.window.Push(e.rate)
	return e.rate
}

// Rate returns the most recent instantaneous rate.
func (e *RateEngine) Rate() float64 {
	return e.rate
}

// FallbackActive reports whether the last Update used the secondary counter.
func (e *RateEngine) FallbackActive() bool {
	return e.fallbackActive
}

// Average returns the trailing mean over the rolling window. While the
// window is still empty it returns the seed rate so the display never shows
// a bare zero right after startup.
func (e *RateEngine) Average() float64 {
	if e.window.Len() == 0 {
		return e.rate
	}
	return e.window.Mean()
}

// Window exposes the underlying sample window for sparkline rendering.
func (e *RateEngine) Window() *model.RollingWindow {
	return e.window
}
