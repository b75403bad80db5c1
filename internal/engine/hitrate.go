package engine

import "time"

// minRecomputeInterval throttles per-key rate recomputation: two samples
// closer than this produce rates too noisy to display.
const minRecomputeInterval = time.Second

// HitRateTracker derives per-key per-second rates from a map of cumulative
// counters, such as query-rule hit counts keyed by rule id. Keys appear and
// disappear between samples as rules come and go.
type HitRateTracker struct {
	baseline map[string]float64
	rates    map[string]float64
	lastAt   time.Time
}

// NewHitRateTracker creates an empty tracker.
func NewHitRateTracker() *HitRateTracker {
	return &HitRateTracker{
		baseline: make(map[string]float64),
		rates:    make(map[string]float64),
	}
}

// Recompute folds a fresh sample of cumulative counters into the tracker.
//
// Calls arriving less than minRecomputeInterval after the previous
// recomputation are ignored. A key seen for the first time records its
// current value as the baseline and reports a rate of 0 until the next
// sample. A negative delta (counter reset behind our back) clamps to 0.
// Keys absent from the sample keep their last computed rate.
func (t *HitRateTracker) Recompute(now time.Time, counters map[string]float64) {
	if !t.lastAt.IsZero() && now.Sub(t.lastAt) < minRecomputeInterval {
		return
	}

	elapsed := now.Sub(t.lastAt).Seconds()
	for key, curr := range counters {
		prev, seen := t.baseline[key]
		t.baseline[key] = curr
		if !seen || t.lastAt.IsZero() || elapsed <= 0 {
			t.rates[key] = 0
			continue
		}
		delta := curr - prev
		if delta < 0 {
			delta = 0
		}
		t.rates[key] = delta / elapsed
	}
	t.lastAt = now
}

// Rate returns the last computed rate for key, or 0 if the key was never seen.
func (t *HitRateTracker) Rate(key string) float64 {
	return t.rates[key]
}

// Reset drops all baselines and rates, so the next sample starts cold.
// Used after the operator clears the server-side counters.
func (t *HitRateTracker) Reset() {
	t.baseline = make(map[string]float64)
	t.rates = make(map[string]float64)
	t.lastAt = time.Time{}
}
