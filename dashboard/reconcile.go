package dashboard

import "time"

// ImageRecord is one rendered thumbnail slot.
type ImageRecord struct {
	Path       string    `json:"path"`
	CapturedAt time.Time `json:"captured_at"`
	TakenLabel string    `json:"taken_label"` // formatted capture time, or the placeholder
}

// CameraPanel is the display state for one camera: thumbnail carousel,
// vitals, staleness, offline flag. Rebuilt incrementally by the engine.
type CameraPanel struct {
	Name           string        `json:"name"`
	NormalizedName string        `json:"normalized_name"`
	Images         []ImageRecord `json:"images"`
	ActiveIndex    int           `json:"active_index"`
	Temperature    string        `json:"temperature"`
	Battery        string        `json:"battery"`
	WifiBars       int           `json:"wifi_bars"`
	Offline        bool          `json:"offline"`
	OfflineReason  string        `json:"offline_reason,omitempty"`
	LastCaptured   time.Time     `json:"last_captured"`
	AgeLabel       string        `json:"age_label"`
	Stale          bool          `json:"stale"`
}

// samePaths reports element-wise equality between the currently rendered
// records and a freshly fetched path list.
func samePaths(prev []ImageRecord, next []string) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if prev[i].Path != next[i] {
			return false
		}
	}
	return true
}

// SetImages reconciles the panel's thumbnails against a new path list.
// Identical lists are a no-op. On any difference the whole carousel is
// discarded and rebuilt from the new list, index 0 newest and active; list
// sizes are a handful of thumbnails, so full replace beats a minimal diff.
// Reports whether a rebuild happened.
func (p *CameraPanel) SetImages(paths []string) bool {
	if samePaths(p.Images, paths) {
		return false
	}

	records := make([]ImageRecord, 0, len(paths))
	for _, path := range paths {
		rec := ImageRecord{Path: path, TakenLabel: UnknownTimeLabel}
		if t, err := ParseCaptureTime(path); err == nil {
			rec.CapturedAt = t
			rec.TakenLabel = FormatCaptureTime(t)
		}
		records = append(records, rec)
	}

	p.Images = records
	p.ActiveIndex = 0
	return true
}

// NewestCapture returns the capture time of the newest image, preferring the
// embedded filename stamp and falling back to the backend's last_update
// field. Zero time when neither is usable.
func (p *CameraPanel) NewestCapture(lastUpdateISO string) time.Time {
	if len(p.Images) > 0 && !p.Images[0].CapturedAt.IsZero() {
		return p.Images[0].CapturedAt
	}
	if lastUpdateISO != "" {
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", trimFraction(lastUpdateISO), time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// trimFraction drops fractional seconds from an ISO timestamp; the backend
// emits Python isoformat() which may or may not carry them.
func trimFraction(iso string) string {
	for i := 0; i < len(iso); i++ {
		if iso[i] == '.' || iso[i] == '+' {
			return iso[:i]
		}
	}
	return iso
}

// RefreshAge recomputes the age label and stale flag from the stored newest
// capture time. Panels with no dated capture show the placeholder and are
// never marked stale; offline already covers them.
func (p *CameraPanel) RefreshAge(now time.Time, pollInterval time.Duration) {
	if p.LastCaptured.IsZero() {
		p.AgeLabel = UnknownTimeLabel
		p.Stale = false
		return
	}
	p.AgeLabel = AgeString(p.LastCaptured, now)
	p.Stale = IsStale(p.LastCaptured, now, pollInterval)
}
