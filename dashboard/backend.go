package dashboard

import (
	"context"
	"strings"
)

// CameraStatus is one camera record as returned by the backend's refresh
// endpoint. Image paths are relative to the camera's folder, newest first.
type CameraStatus struct {
	Name           string       `json:"name"`
	NormalizedName string       `json:"normalized_name"`
	Images         []string     `json:"images"`
	Temperature    string       `json:"temperature"`
	Battery        string       `json:"battery"`
	Wifi           int          `json:"wifi"`
	Timestamp      string       `json:"timestamp"`
	LastUpdate     string       `json:"last_update"`
	LastUpdateText string       `json:"last_update_formatted"`
	Alerts         CameraAlerts `json:"alerts"`
}

type CameraAlerts struct {
	IsOffline      bool   `json:"is_offline"`
	OfflineReason  string `json:"offline_reason"`
	HasDuplicates  bool   `json:"has_duplicates"`
	DuplicateCount int    `json:"duplicate_count"`
}

// WeatherReport mirrors the wttr.in-style payload the backend serves.
type WeatherReport struct {
	CurrentCondition []WeatherCondition `json:"current_condition"`
}

type WeatherCondition struct {
	TempF       string        `json:"temp_F"`
	FeelsLikeF  string        `json:"FeelsLikeF"`
	Humidity    string        `json:"humidity"`
	WeatherDesc []WeatherDesc `json:"weatherDesc"`
	WindMPH     string        `json:"windspeedMiles"`
	WindDir16   string        `json:"winddir16Point"`
}

type WeatherDesc struct {
	Value string `json:"value"`
}

// AlertsReport is the NWS alert headline set plus the backend's own schedule
// hint for when it will check again.
type AlertsReport struct {
	Alerts      []string `json:"alerts"`
	AlertActive bool     `json:"alert_active"`
	LastCheck   string   `json:"last_check"`
	NextCheck   string   `json:"next_check"`
}

// RadarSettings is the radar/basemap configuration block.
type RadarSettings struct {
	Enabled      bool    `json:"enabled"`
	MapboxToken  string  `json:"mapbox_token"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Zoom         int     `json:"zoom"`
	Frames       int     `json:"frames"`
	BasemapStyle string  `json:"basemap_style"`
}

// SnoozeStatus is the backend's answer for one camera's snooze state.
type SnoozeStatus struct {
	CameraName       string `json:"camera_name"`
	IsSnoozed        bool   `json:"is_snoozed"`
	SnoozeUntil      string `json:"snooze_until"`
	SnoozeUntilText  string `json:"snooze_until_formatted"`
	SnoozeUntilFull  string `json:"snooze_until_full"`
	MinutesRemaining int    `json:"minutes_remaining"`
}

// Backend is the surveillance backend the agent polls. Implemented over HTTP
// by the root package's BackendClient and by test doubles.
type Backend interface {
	RefreshCameras(ctx context.Context) ([]CameraStatus, error)
	Weather(ctx context.Context) (WeatherReport, error)
	Alerts(ctx context.Context) (AlertsReport, error)
	RadarConfig(ctx context.Context) (RadarSettings, error)

	SnoozeStatus(ctx context.Context, camera string) (SnoozeStatus, error)
	SetSnooze(ctx context.Context, camera string, minutes int) error
	UnsetSnooze(ctx context.Context, camera string) error
	AllSnoozed(ctx context.Context) (bool, error)
	SetSnoozeAll(ctx context.Context, minutes int) error
	UnsetSnoozeAll(ctx context.Context) error
	CleanupSnoozes(ctx context.Context) error

	ArmStatus(ctx context.Context) (bool, error)
	SetArm(ctx context.Context, armed bool) error
}

// NormalizeCameraName converts a display name to the backend's folder/key
// form: lowercased, spaces to hyphens ("Front Door" -> "front-door").
func NormalizeCameraName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
