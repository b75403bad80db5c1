package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var hitT0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestHitRateColdStartIsZero(t *testing.T) {
	tr := NewHitRateTracker()

	tr.Recompute(hitT0, map[string]float64{"rule:1": 500})

	assert.Equal(t, 0.0, tr.Rate("rule:1"), "first sight sets baseline, not rate")
}

func TestHitRateDeltaOverElapsed(t *testing.T) {
	tr := NewHitRateTracker()
	tr.Recompute(hitT0, map[string]float64{"rule:1": 500})
	tr.Recompute(hitT0.Add(2*time.Second), map[string]float64{"rule:1": 700})

	assert.InDelta(t, 100.0, tr.Rate("rule:1"), 1e-9)
}

func TestHitRateThrottlesCloseSamples(t *testing.T) {
	tr := NewHitRateTracker()
	tr.Recompute(hitT0, map[string]float64{"rule:1": 500})
	tr.Recompute(hitT0.Add(time.Second), map[string]float64{"rule:1": 600})
	assert.InDelta(t, 100.0, tr.Rate("rule:1"), 1e-9)

	// 400ms later: ignored entirely, rate and baseline untouched.
	tr.Recompute(hitT0.Add(1400*time.Millisecond), map[string]float64{"rule:1": 9999})
	assert.InDelta(t, 100.0, tr.Rate("rule:1"), 1e-9)

	tr.Recompute(hitT0.Add(2*time.Second), map[string]float64{"rule:1": 800})
	assert.InDelta(t, 200.0, tr.Rate("rule:1"), 1e-9)
}

func TestHitRateNegativeDeltaClampsToZero(t *testing.T) {
	tr := NewHitRateTracker()
	tr.Recompute(hitT0, map[string]float64{"rule:1": 500})
	tr.Recompute(hitT0.Add(time.Second), map[string]float64{"rule:1": 100})

	assert.Equal(t, 0.0, tr.Rate("rule:1"))
}

func TestHitRateAbsentKeyRetainsLastRate(t *testing.T) {
	tr := NewHitRateTracker()
	tr.Recompute(hitT0, map[string]float64{"rule:1": 500, "rule:2": 100})
	tr.Recompute(hitT0.Add(time.Second), map[string]float64{"rule:1": 600, "rule:2": 150})
	assert.InDelta(t, 50.0, tr.Rate("rule:2"), 1e-9)

	// rule:2 deleted server-side; its last rate stays readable.
	tr.Recompute(hitT0.Add(2*time.Second), map[string]float64{"rule:1": 700})
	assert.InDelta(t, 50.0, tr.Rate("rule:2"), 1e-9)
	assert.InDelta(t, 100.0, tr.Rate("rule:1"), 1e-9)
}

func TestHitRateUnknownKeyIsZero(t *testing.T) {
	tr := NewHitRateTracker()
	assert.Equal(t, 0.0, tr.Rate("nope"))
}

func TestHitRateReset(t *testing.T) {
	tr := NewHitRateTracker()
	tr.Recompute(hitT0, map[string]float64{"rule:1": 500})
	tr.Recompute(hitT0.Add(time.Second), map[string]float64{"rule:1": 600})
	assert.InDelta(t, 100.0, tr.Rate("rule:1"), 1e-9)

	tr.Reset()

	assert.Equal(t, 0.0, tr.Rate("rule:1"))

	// After reset the next sample is a cold start again.
	tr.Recompute(hitT0.Add(5*time.Second), map[string]float64{"rule:1": 10})
	assert.Equal(t, 0.0, tr.Rate("rule:1"))
}
