package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyConnections(t *testing.T) {
	th := DefaultConnThresholds

	tests := []struct {
		name   string
		total  int
		active int
		label  string
		sev    Severity
	}{
		{"no connections at all", 0, 0, "NO ACTIVITY", SeverityDim},
		{"all idle", 25, 0, "IDLE", SeverityNormal},
		{"one active", 25, 1, "LIGHT", SeverityGood},
		{"just below low", 25, 9, "LIGHT", SeverityGood},
		{"boundary belongs to next tier", 25, 10, "MODERATE", SeverityNormal},
		{"just below medium", 60, 49, "MODERATE", SeverityNormal},
		{"medium boundary", 60, 50, "BUSY", SeverityWarn},
		{"just below high", 120, 99, "BUSY", SeverityWarn},
		{"high boundary", 120, 100, "SATURATED", SeverityCrit},
		{"far past high", 500, 400, "SATURATED", SeverityCrit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyConnections(tc.total, tc.active, th)
			assert.Equal(t, tc.label, got.Label)
			assert.Equal(t, tc.sev, got.Severity)
		})
	}
}

func TestClassifyRate(t *testing.T) {
	th := DefaultQPSThresholds

	tests := []struct {
		name  string
		rate  float64
		label string
		sev   Severity
	}{
		{"zero", 0, "SILENT", SeverityDim},
		{"negative treated as silent", -3, "SILENT", SeverityDim},
		{"below low", 999, "LIGHT", SeverityGood},
		{"low boundary", 1000, "MODERATE", SeverityNormal},
		{"below medium", 4999, "MODERATE", SeverityNormal},
		{"medium boundary", 5000, "BUSY", SeverityWarn},
		{"high boundary", 10000, "HOT", SeverityCrit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyRate(tc.rate, th)
			assert.Equal(t, tc.label, got.Label)
			assert.Equal(t, tc.sev, got.Severity)
		})
	}
}

func TestTierDimmedKeepsLabel(t *testing.T) {
	tier := ClassifyConnections(120, 100, DefaultConnThresholds)
	dimmed := tier.Dimmed()

	assert.Equal(t, "SATURATED", dimmed.Label)
	assert.Equal(t, SeverityDim, dimmed.Severity)
	assert.Equal(t, SeverityCrit, tier.Severity, "original untouched")
}
