package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Bytes formats a byte count into a human-readable IEC string.
// Example: 1536 → "1.5 KiB".
func Bytes(n uint64) string {
	return humanize.IBytes(n)
}

// Rate formats a per-second rate with comma-separated thousands and one
// decimal place. Example: 1204.3 → "1,204.3/s". Negative values return "---".
func Rate(perSec float64) string {
	if perSec < 0 {
		return "---"
	}
	if perSec == 0 {
		return "0/s"
	}
	return humanize.CommafWithDigits(perSec, 1) + "/s"
}

// Count formats an integer with comma separators. Example: 12345 → "12,345".
func Count(n int64) string {
	return humanize.Comma(n)
}

// Millis formats a duration given in milliseconds. Values of a second or
// more are shown in seconds. Negative values return "---".
func Millis(ms float64) string {
	if ms < 0 {
		return "---"
	}
	if ms >= 1000 {
		return fmt.Sprintf("%.2fs", ms/1000)
	}
	return fmt.Sprintf("%.1fms", ms)
}

// Percent formats a percentage with one decimal place.
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// Uptime formats a duration as the largest two units, e.g. "3d 4h" or
// "2h 15m".
func Uptime(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case mins > 0:
		return fmt.Sprintf("%dm %ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// Truncate shortens s to max runes, appending an ellipsis when cut. Used for
// query text columns.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
