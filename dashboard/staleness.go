package dashboard

import (
	"fmt"
	"time"
)

// StaleMultiplier is the fixed staleness policy: a camera's newest image is
// stale once it is older than this many poll intervals.
const StaleMultiplier = 3

// IsStale reports whether an image captured at capturedAt is stale for the
// given camera poll interval. The boundary is strictly greater than: an image
// aged exactly StaleMultiplier*pollInterval is not yet stale.
func IsStale(capturedAt, now time.Time, pollInterval time.Duration) bool {
	return now.Sub(capturedAt) > StaleMultiplier*pollInterval
}

// AgeString formats how long ago an image was captured: "{m}m ago" under an
// hour, "{h}h ago" under a day, "{d}d ago" otherwise. Integer truncation,
// never rounding.
func AgeString(capturedAt, now time.Time) string {
	age := now.Sub(capturedAt)
	switch {
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours())/24)
	}
}
