package dashboard

import (
	"fmt"
	"time"
)

// WeatherWidget is the rendered current-conditions block. A failed poll
// keeps the previous reading on screen (the backend itself serves stale
// cache under rate limits, so the kiosk does the same).
type WeatherWidget struct {
	Available   bool      `json:"available"`
	TempF       string    `json:"temp_f"`
	FeelsLikeF  string    `json:"feels_like_f"`
	Humidity    string    `json:"humidity"`
	Description string    `json:"description"`
	WindMPH     string    `json:"wind_mph"`
	WindDir     string    `json:"wind_dir"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Update applies a fresh report. Empty reports are ignored so a malformed
// payload never blanks the widget.
func (w *WeatherWidget) Update(report WeatherReport, now time.Time) error {
	if len(report.CurrentCondition) == 0 {
		return fmt.Errorf("weather report has no current_condition block")
	}
	cond := report.CurrentCondition[0]

	w.Available = true
	w.TempF = cond.TempF
	w.FeelsLikeF = cond.FeelsLikeF
	w.Humidity = cond.Humidity
	w.WindMPH = cond.WindMPH
	w.WindDir = cond.WindDir16
	w.Description = ""
	if len(cond.WeatherDesc) > 0 {
		w.Description = cond.WeatherDesc[0].Value
	}
	w.FetchedAt = now
	return nil
}

// AlertsWidget is the NWS alert banner state.
type AlertsWidget struct {
	Active    bool      `json:"active"`
	Headlines []string  `json:"headlines"`
	NextCheck time.Time `json:"next_check"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Update applies a fresh alert report. The backend tells us when it will
// look again; an unparseable next_check is simply left zero.
func (a *AlertsWidget) Update(report AlertsReport, now time.Time) {
	a.Active = report.AlertActive || len(report.Alerts) > 0
	a.Headlines = report.Alerts
	a.FetchedAt = now

	a.NextCheck = time.Time{}
	if report.NextCheck != "" {
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", trimFraction(report.NextCheck), time.Local); err == nil {
			a.NextCheck = t
		}
	}
}

// RadarWidget is the radar map state. Missing configuration disables the
// widget with an inline reason rather than failing the page.
type RadarWidget struct {
	Enabled      bool    `json:"enabled"`
	Disabled     string  `json:"disabled_reason,omitempty"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Zoom         int     `json:"zoom"`
	Frames       int     `json:"frames"`
	BasemapStyle string  `json:"basemap_style"`
	MapboxToken  string  `json:"mapbox_token,omitempty"`
}

// Update applies radar settings, gating on the pieces the map cannot render
// without.
func (r *RadarWidget) Update(settings RadarSettings) {
	*r = RadarWidget{
		Lat:          settings.Lat,
		Lon:          settings.Lon,
		Zoom:         settings.Zoom,
		Frames:       settings.Frames,
		BasemapStyle: settings.BasemapStyle,
	}
	switch {
	case !settings.Enabled:
		r.Disabled = "Radar is disabled in backend configuration"
	case settings.MapboxToken == "":
		r.Disabled = "Radar unavailable: Mapbox token not configured"
	default:
		r.Enabled = true
		r.MapboxToken = settings.MapboxToken
	}
}

// ArmWidget caches the last known arm state so the kiosk shows something
// between polls. Known stays false until the first successful status fetch.
type ArmWidget struct {
	Known     bool      `json:"known"`
	Armed     bool      `json:"armed"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *ArmWidget) Update(armed bool, now time.Time) {
	a.Known = true
	a.Armed = armed
	a.UpdatedAt = now
}
