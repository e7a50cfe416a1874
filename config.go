package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

type Config struct {
	Port            int    `json:"port"`
	BackendURL      string `json:"backend_url"`      // Blink web server base URL
	AuthToken       string `json:"auth_token"`       // Bearer token for the agent's own API
	PollIntervalMin int    `json:"poll_interval_m"`  // Camera refresh interval P (minutes)
	WeatherPollMin  int    `json:"weather_poll_m"`   // Weather widget interval (minutes)
	AlertsPollMin   int    `json:"alerts_poll_m"`    // NWS alerts interval (minutes)
	ArmPollS        int    `json:"arm_poll_s"`       // Arm status interval (seconds)
	CarouselImages  int    `json:"carousel_images"`  // Thumbnails per camera
}

func DefaultConfig() *Config {
	return &Config{
		Port:            DefaultPort,
		BackendURL:      DefaultBackendURL,
		PollIntervalMin: DefaultPollIntervalMin,
		WeatherPollMin:  DefaultWeatherPollMin,
		AlertsPollMin:   DefaultAlertsPollMin,
		ArmPollS:        DefaultArmPollS,
		CarouselImages:  DefaultCarousel,
	}
}

func LoadOrCreateConfig(configPath string) (*Config, error) {
	// If config exists, load it
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		config := &Config{}
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}

		// Set defaults for new fields if missing
		if config.BackendURL == "" {
			config.BackendURL = DefaultBackendURL
		}
		if config.PollIntervalMin <= 0 {
			config.PollIntervalMin = DefaultPollIntervalMin
		}
		if config.WeatherPollMin <= 0 {
			config.WeatherPollMin = DefaultWeatherPollMin
		}
		if config.AlertsPollMin <= 0 {
			config.AlertsPollMin = DefaultAlertsPollMin
		}
		if config.ArmPollS <= 0 {
			config.ArmPollS = DefaultArmPollS
		}
		if config.CarouselImages <= 0 {
			config.CarouselImages = DefaultCarousel
		}

		return config, nil
	}

	// Create default config
	config := DefaultConfig()

	// Generate auth token if not present
	if config.AuthToken == "" {
		config.AuthToken = generateToken()
	}

	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write default config
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Created default config at %s\n", configPath)
	fmt.Printf("Auth token: %s\n", config.AuthToken)

	return config, nil
}

// DefaultConfigPath resolves the XDG config location with a legacy fallback.
func DefaultConfigPath() string {
	if path, err := xdg.ConfigFile("blink-kiosk/config.json"); err == nil {
		return path
	}
	return filepath.Join(os.ExpandEnv("$HOME"), ".config/blink-kiosk/config.json")
}
