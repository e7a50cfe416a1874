package main

import (
	"encoding/json"
	"net/http"
	"strings"
)

func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

func (s *APIServer) handleUI(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	token, err := s.auth.GenerateDisplayToken()
	if err != nil {
		s.logger.Printf("Failed to issue display token: %v", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	page := strings.ReplaceAll(getEmbeddedHTML(), "__DISPLAY_TOKEN__", token)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(page))
}

func (s *APIServer) handleView(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	json.NewEncoder(w).Encode(s.engine.View())
}

func (s *APIServer) handleViewCameras(w http.ResponseWriter, r *http.Request) {
	view := s.engine.View()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"generated_at":  view.GeneratedAt,
		"cameras":       view.Cameras,
		"snooze_badges": view.SnoozeBadges,
		"all_snoozed":   view.AllSnoozed,
	})
}

func (s *APIServer) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"port":              s.config.Port,
		"poll_interval_m":   s.config.PollIntervalMin,
		"weather_poll_m":    s.config.WeatherPollMin,
		"alerts_poll_m":     s.config.AlertsPollMin,
		"arm_poll_s":        s.config.ArmPollS,
		"carousel_images":   s.config.CarouselImages,
		"snooze_status_s":   SnoozeStatusIntervalS,
		"countdown_tick_s":  CountdownTickIntervalS,
		"staleness_sweep_s": StalenessSweepS,
	})
}

// handleForceRefresh kicks an out-of-schedule camera poll (the manual
// refresh button). Skipped silently if a cycle is already in flight.
func (s *APIServer) handleForceRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.engine.RefreshNow()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "refresh requested",
	})
}

func (s *APIServer) handleDisplayToken(w http.ResponseWriter, r *http.Request) {
	token, err := s.auth.GenerateDisplayToken()
	if err != nil {
		http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"token": token,
	})
}
