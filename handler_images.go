package main

import (
	"io"
	"net/http"
	"strings"
)

// handleImage proxies camera image bytes from the backend so the kiosk page
// only ever talks to the agent. Path form: /image/{camera}/{date}/{file}.
func (s *APIServer) handleImage(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/image/")
	camera, imagePath, ok := strings.Cut(rest, "/")
	if !ok || camera == "" || imagePath == "" {
		http.Error(w, "Missing camera or image path", http.StatusBadRequest)
		return
	}

	// Prevent traversal through the proxy
	if strings.Contains(imagePath, "..") {
		http.Error(w, "Invalid image path", http.StatusBadRequest)
		return
	}

	body, contentType, err := s.backend.FetchImage(r.Context(), camera, imagePath)
	if err != nil {
		s.logger.Debugf("Image proxy miss for %s/%s: %v", camera, imagePath, err)
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	io.Copy(w, body)
}
