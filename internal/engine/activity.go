package engine

// Severity buckets a classification for display styling. The TUI maps each
// severity to a color; the labels themselves stay descriptive.
type Severity int

const (
	SeverityDim Severity = iota
	SeverityNormal
	SeverityGood
	SeverityWarn
	SeverityCrit
)

// Tier is a classification result: a human label plus a display severity.
type Tier struct {
	Label    string
	Severity Severity
}

// ConnThresholds are the connection-count boundaries between activity tiers.
type ConnThresholds struct {
	Low    int // below this: light
	Medium int // below this: moderate
	High   int // at or above: saturated
}

// DefaultConnThresholds matches typical OLTP pool sizing.
var DefaultConnThresholds = ConnThresholds{Low: 10, Medium: 50, High: 100}

// RateThresholds are the per-second rate boundaries between activity tiers.
type RateThresholds struct {
	Low    float64
	Medium float64
	High   float64
}

// DefaultQPSThresholds classifies queries-per-second figures.
var DefaultQPSThresholds = RateThresholds{Low: 1000, Medium: 5000, High: 10000}

// DefaultHitThresholds classifies cumulative rule hit counts.
var DefaultHitThresholds = RateThresholds{Low: 1000, Medium: 10000, High: 100000}

// ClassifyConnections buckets a connection population by how many of its
// connections are active. Boundaries are half-open with the boundary value
// belonging to the tier above it: active equal to Low is already moderate.
func ClassifyConnections(total, active int, th ConnThresholds) Tier {
	switch {
	case total == 0:
		return Tier{Label: "NO ACTIVITY", Severity: SeverityDim}
	case active == 0:
		return Tier{Label: "IDLE", Severity: SeverityNormal}
	case active < th.Low:
		return Tier{Label: "LIGHT", Severity: SeverityGood}
	case active < th.Medium:
		return Tier{Label: "MODERATE", Severity: SeverityNormal}
	case active < th.High:
		return Tier{Label: "BUSY", Severity: SeverityWarn}
	default:
		return Tier{Label: "SATURATED", Severity: SeverityCrit}
	}
}

// ClassifyRate buckets a non-negative per-second rate or counter value.
// Same half-open convention as ClassifyConnections.
func ClassifyRate(rate float64, th RateThresholds) Tier {
	switch {
	case rate <= 0:
		return Tier{Label: "SILENT", Severity: SeverityDim}
	case rate < th.Low:
		return Tier{Label: "LIGHT", Severity: SeverityGood}
	case rate < th.Medium:
		return Tier{Label: "MODERATE", Severity: SeverityNormal}
	case rate < th.High:
		return Tier{Label: "BUSY", Severity: SeverityWarn}
	default:
		return Tier{Label: "HOT", Severity: SeverityCrit}
	}
}

// Dimmed forces the dim severity while keeping the tier's label. Used for
// rows that are disabled or otherwise inactive regardless of their numbers.
func (t Tier) Dimmed() Tier {
	t.Severity = SeverityDim
	return t
}
