package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"blink-kiosk/dashboard"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Parse command-line flags
	var (
		configPath = flag.String("config", "", "Path to config file (default: XDG config directory)")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	// Initialize logger
	logger := NewLogger(*verbose)

	// Use XDG config directory if not specified
	if *configPath == "" {
		*configPath = DefaultConfigPath()
	}

	// Allow the backend URL to come from the environment (kiosk images ship
	// one config, point at different backends)
	config, err := LoadOrCreateConfig(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if env := os.Getenv("BLINK_BACKEND_URL"); env != "" {
		config.BackendURL = env
	}

	logger.Printf("Starting Blink Kiosk agent...")
	logger.Printf("Listening on port %d", config.Port)
	logger.Printf("Backend: %s", config.BackendURL)
	logger.Printf("Camera poll interval: %dm (stale after %dm)",
		config.PollIntervalMin, dashboard.StaleMultiplier*config.PollIntervalMin)

	// Create backend client and dashboard engine
	backend := NewBackendClient(config.BackendURL)
	if err := backend.Probe(context.Background()); err != nil {
		logger.Printf("Backend not reachable yet: %v", err)
	}

	engine := dashboard.NewEngine(backend, dashboard.Options{
		CameraPollInterval:     time.Duration(config.PollIntervalMin) * time.Minute,
		WeatherPollInterval:    time.Duration(config.WeatherPollMin) * time.Minute,
		AlertsPollInterval:     time.Duration(config.AlertsPollMin) * time.Minute,
		ArmPollInterval:        time.Duration(config.ArmPollS) * time.Second,
		SnoozePollInterval:     SnoozeStatusIntervalS * time.Second,
		StalenessSweepInterval: StalenessSweepS * time.Second,
		CountdownTickInterval:  CountdownTickIntervalS * time.Second,
	}, logger)

	// Create API server
	server := NewAPIServer(config, engine, backend, logger)

	// Start polling in background
	engine.Start()

	// Start HTTP server in background
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Start()
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverDone:
		logger.Printf("Server stopped: %v", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal: %v\n", sig)
	}

	// Cleanup
	logger.Printf("Shutting down...")
	engine.Stop()
	server.Stop()
}
