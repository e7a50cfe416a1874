package main

import "time"

// =============================================================================
// Polling Cadence Constants
// =============================================================================

const (
	// Fixed cadences for the display-side timers
	SnoozeStatusIntervalS  = 20 // Per-camera snooze status poll
	CountdownTickIntervalS = 1  // Snooze badge countdown re-render
	StalenessSweepS        = 60 // Age label / stale flag sweep

	// Default backend poll intervals (overridable in config)
	DefaultPollIntervalMin = 5  // Camera refresh (P); staleness threshold is 3P
	DefaultWeatherPollMin  = 30 // Matches the backend's weather cache window
	DefaultAlertsPollMin   = 5  // NWS alert headline poll
	DefaultArmPollS        = 60 // Arm/disarm status poll
)

// =============================================================================
// HTTP Client and Server Limits
// =============================================================================

const (
	// Backend request timeout; a hung cycle must end before piling up
	BackendRequestTimeout = 15 * time.Second

	// HTTP header ceiling (security limit)
	HTTPMaxHeaderBytes = 1 << 20 // 1MB

	// Why: Protects against slow-read attacks and hung connections
	ServerReadTimeout       = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second
	ServerReadHeaderTimeout = 10 * time.Second
	ServerWriteTimeout      = 60 * time.Second
)

// =============================================================================
// Display Token Settings
// =============================================================================

const (
	// Display JWTs are embedded in image URLs on the kiosk page; kept short
	// so a leaked page source goes stale within a day
	DisplayTokenTTL = 12 * time.Hour
)

// =============================================================================
// Default Configuration Values
// =============================================================================

const (
	DefaultPort       = 8090
	DefaultBackendURL = "http://127.0.0.1:5000"
	DefaultCarousel   = 5 // Thumbnails kept per camera
)
