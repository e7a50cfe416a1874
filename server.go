package main

import (
	"fmt"
	"net/http"

	"blink-kiosk/dashboard"
)

type APIServer struct {
	config  *Config
	engine  *dashboard.Engine
	backend *BackendClient
	logger  *Logger
	auth    *AuthMiddleware
	server  *http.Server
}

func NewAPIServer(config *Config, engine *dashboard.Engine, backend *BackendClient, logger *Logger) *APIServer {
	return &APIServer{
		config:  config,
		engine:  engine,
		backend: backend,
		logger:  logger,
		auth:    NewAuthMiddleware(config.AuthToken),
	}
}

func (s *APIServer) Start() error {
	mux := http.NewServeMux()

	// Health check and kiosk page (no auth; the page gets a display token
	// injected at render time)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/", s.handleUI)

	// API endpoints (with auth)
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/api/view", s.handleView)
	apiMux.HandleFunc("/api/view/cameras", s.handleViewCameras)
	apiMux.HandleFunc("/api/config", s.handleGetConfig)
	apiMux.HandleFunc("/api/refresh", s.handleForceRefresh)
	apiMux.HandleFunc("/api/auth/display", s.handleDisplayToken)
	apiMux.HandleFunc("/api/snooze/set", s.handleSnoozeSet)
	apiMux.HandleFunc("/api/snooze/unset", s.handleSnoozeUnset)
	apiMux.HandleFunc("/api/snooze/all/set", s.handleSnoozeAllSet)
	apiMux.HandleFunc("/api/snooze/all/unset", s.handleSnoozeAllUnset)
	apiMux.HandleFunc("/api/arm/status", s.handleArmStatus)
	apiMux.HandleFunc("/api/arm/set", s.handleArmSet)

	mux.Handle("/api/", s.auth.Check(apiMux))

	// Image proxy (display token or static token via query param)
	mux.Handle("/image/", s.auth.Check(http.HandlerFunc(s.handleImage)))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           mux,
		ReadTimeout:       ServerReadTimeout,
		WriteTimeout:      ServerWriteTimeout,
		IdleTimeout:       ServerIdleTimeout,
		ReadHeaderTimeout: ServerReadHeaderTimeout,
		MaxHeaderBytes:    HTTPMaxHeaderBytes,
	}

	s.logger.Printf("HTTP server starting on port %d", s.config.Port)
	return s.server.ListenAndServe()
}

func (s *APIServer) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}
