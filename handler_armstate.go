package main

import (
	"encoding/json"
	"net/http"
)

// handleArmStatus serves the cached arm state. The engine's arm poller keeps
// it fresh; the kiosk never waits on a live Blink-cloud round trip just to
// paint the toggle.
func (s *APIServer) handleArmStatus(w http.ResponseWriter, r *http.Request) {
	view := s.engine.View()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":    true,
		"known":      view.Arm.Known,
		"armed":      view.Arm.Armed,
		"updated_at": view.Arm.UpdatedAt,
	})
}

func (s *APIServer) handleArmSet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Arm bool `json:"arm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.engine.SetArm(r.Context(), req.Arm); err != nil {
		s.logger.Printf("Arm request failed: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "backend request failed",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"armed":   req.Arm,
	})
}
