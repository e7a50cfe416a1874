package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"blink-kiosk/dashboard"
)

type snoozeRequest struct {
	CameraName      string `json:"camera_name"`
	DurationMinutes int    `json:"duration_minutes"`
}

func (s *APIServer) handleSnoozeSet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req snoozeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSnoozeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CameraName == "" {
		writeSnoozeError(w, http.StatusBadRequest, "missing camera_name")
		return
	}

	camera := dashboard.NormalizeCameraName(req.CameraName)
	if err := s.engine.SetSnooze(r.Context(), camera, req.DurationMinutes); err != nil {
		s.writeSnoozeFailure(w, camera, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"camera":   camera,
		"duration": dashboard.FormatSnoozeDuration(req.DurationMinutes),
	})
}

func (s *APIServer) handleSnoozeUnset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req snoozeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSnoozeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CameraName == "" {
		writeSnoozeError(w, http.StatusBadRequest, "missing camera_name")
		return
	}

	camera := dashboard.NormalizeCameraName(req.CameraName)
	if err := s.engine.CancelSnooze(r.Context(), camera); err != nil {
		s.writeSnoozeFailure(w, camera, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"camera":  camera,
	})
}

func (s *APIServer) handleSnoozeAllSet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req snoozeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSnoozeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.engine.SetSnooze(r.Context(), dashboard.SnoozeAll, req.DurationMinutes); err != nil {
		s.writeSnoozeFailure(w, dashboard.SnoozeAll, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"duration": dashboard.FormatSnoozeDuration(req.DurationMinutes),
	})
}

func (s *APIServer) handleSnoozeAllUnset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.engine.CancelSnooze(r.Context(), dashboard.SnoozeAll); err != nil {
		s.writeSnoozeFailure(w, dashboard.SnoozeAll, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
	})
}

func (s *APIServer) writeSnoozeFailure(w http.ResponseWriter, camera string, err error) {
	if errors.Is(err, dashboard.ErrInvalidDuration) {
		writeSnoozeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Printf("Snooze request for %s failed: %v", camera, err)
	writeSnoozeError(w, http.StatusBadGateway, "backend request failed")
}

func writeSnoozeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}
