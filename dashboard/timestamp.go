package dashboard

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"time"
)

// ErrNoTimestamp indicates a filename carried no recognizable capture stamp.
// Callers render UnknownTimeLabel instead of failing the whole panel.
var ErrNoTimestamp = errors.New("no capture timestamp in filename")

// UnknownTimeLabel is displayed when an image path cannot be dated.
const UnknownTimeLabel = "Unknown time"

// Capture stamps are embedded in filenames as YYYYMMDD_HHMMSS, e.g.
// front-door_20250314_153012.jpg. Only the final path segment is matched.
var captureStampRe = regexp.MustCompile(`(\d{8})_(\d{6})`)

// ParseCaptureTime extracts the capture time embedded in an image filename.
// Times are interpreted in the local time zone, no conversion.
func ParseCaptureTime(imagePath string) (time.Time, error) {
	base := path.Base(imagePath)
	m := captureStampRe.FindStringSubmatch(base)
	if m == nil {
		return time.Time{}, fmt.Errorf("%q: %w", base, ErrNoTimestamp)
	}

	t, err := time.ParseInLocation("20060102_150405", m[1]+"_"+m[2], time.Local)
	if err != nil {
		// Digit runs of the right length but with out-of-range fields
		// (month 13, hour 25) count as unrecognized, not as errors.
		return time.Time{}, fmt.Errorf("%q: %w", base, ErrNoTimestamp)
	}

	return t, nil
}

// FormatCaptureTime renders a capture time on a 12-hour clock
// (MM/DD/YYYY H:MM:SS AM/PM).
func FormatCaptureTime(t time.Time) string {
	return t.Format("01/02/2006 3:04:05 PM")
}

// CaptureLabel is FormatCaptureTime with the parse step folded in. Paths
// without a stamp get the placeholder label.
func CaptureLabel(imagePath string) string {
	t, err := ParseCaptureTime(imagePath)
	if err != nil {
		return UnknownTimeLabel
	}
	return FormatCaptureTime(t)
}
