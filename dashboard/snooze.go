package dashboard

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// SnoozeAll is the pseudo camera name for the global suppression window.
const SnoozeAll = "all"

// SnoozeWindow is a time-bounded suppression of alerting for one camera, or
// for every camera when Camera == SnoozeAll. At most one window exists per
// camera; setting a new one replaces the old.
type SnoozeWindow struct {
	Camera    string    `json:"camera"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Remaining is the time left until the window expires. Negative once expired.
func (w SnoozeWindow) Remaining(now time.Time) time.Duration {
	return w.ExpiresAt.Sub(now)
}

// Expired reports whether the window's remaining duration is zero or below.
func (w SnoozeWindow) Expired(now time.Time) bool {
	return w.Remaining(now) <= 0
}

// CountdownString renders a remaining duration as "Hh Mm Ss left",
// "Mm Ss left", or "Ss left" depending on magnitude.
func CountdownString(remaining time.Duration) string {
	total := int(remaining / time.Second)
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds left", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds left", m, s)
	default:
		return fmt.Sprintf("%ds left", s)
	}
}

// SnoozeBadge is the rendered countdown for one displayed window.
type SnoozeBadge struct {
	Camera    string    `json:"camera"`
	Countdown string    `json:"countdown"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SnoozeTracker holds the active snooze windows the kiosk knows about. The
// backend owns the authoritative windows; this is the display-side mirror
// refreshed by the snooze status poll.
//
// Precedence: while a global window is active, individual camera badges are
// suppressed and only the global badge is shown.
type SnoozeTracker struct {
	mu      sync.Mutex
	windows map[string]SnoozeWindow
}

func NewSnoozeTracker() *SnoozeTracker {
	return &SnoozeTracker{windows: make(map[string]SnoozeWindow)}
}

// Set creates or replaces the window for a camera (or SnoozeAll).
func (t *SnoozeTracker) Set(camera string, expiresAt time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.windows[camera] = SnoozeWindow{Camera: camera, ExpiresAt: expiresAt}
}

// Clear removes the window for a camera, if any.
func (t *SnoozeTracker) Clear(camera string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.windows, camera)
}

// ClearAll drops every window, global included.
func (t *SnoozeTracker) ClearAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.windows = make(map[string]SnoozeWindow)
}

// Window returns the current window for a camera.
func (t *SnoozeTracker) Window(camera string) (SnoozeWindow, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, ok := t.windows[camera]
	return w, ok
}

// GlobalActive reports whether an unexpired snooze-all window exists.
func (t *SnoozeTracker) GlobalActive(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, ok := t.windows[SnoozeAll]
	return ok && !w.Expired(now)
}

// Badges renders the set of countdown badges to display. A live global
// window yields exactly one badge and hides the per-camera ones.
func (t *SnoozeTracker) Badges(now time.Time) []SnoozeBadge {
	t.mu.Lock()
	defer t.mu.Unlock()

	if w, ok := t.windows[SnoozeAll]; ok && !w.Expired(now) {
		return []SnoozeBadge{{
			Camera:    SnoozeAll,
			Countdown: CountdownString(w.Remaining(now)),
			ExpiresAt: w.ExpiresAt,
		}}
	}

	badges := make([]SnoozeBadge, 0, len(t.windows))
	for _, w := range t.windows {
		if w.Camera == SnoozeAll || w.Expired(now) {
			continue
		}
		badges = append(badges, SnoozeBadge{
			Camera:    w.Camera,
			Countdown: CountdownString(w.Remaining(now)),
			ExpiresAt: w.ExpiresAt,
		})
	}
	sort.Slice(badges, func(i, j int) bool { return badges[i].Camera < badges[j].Camera })
	return badges
}

// Expire drops windows whose remaining duration reached zero or below and
// returns the affected camera names so the caller can resynchronize each one
// against the backend.
func (t *SnoozeTracker) Expire(now time.Time) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var expired []string
	for name, w := range t.windows {
		if w.Expired(now) {
			delete(t.windows, name)
			expired = append(expired, name)
		}
	}
	sort.Strings(expired)
	return expired
}

// Preset snooze durations offered by the kiosk, in minutes.
var SnoozePresets = map[string]int{
	"30min":  30,
	"1hour":  60,
	"2hours": 120,
	"3hours": 180,
	"4hours": 240,
}

// FormatSnoozeDuration renders a duration in minutes as "30 minutes",
// "1 hour", "2 hours".
func FormatSnoozeDuration(minutes int) string {
	if minutes < 60 {
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	hours := minutes / 60
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
