package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"blink-kiosk/dashboard"
)

// stubBackend satisfies dashboard.Backend for handler tests, recording the
// snooze and arm calls that reach it.
type stubBackend struct {
	mu    sync.Mutex
	err   error
	calls map[string]int
}

func newStubBackend() *stubBackend {
	return &stubBackend{calls: make(map[string]int)}
}

func (s *stubBackend) record(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[name]++
	return s.err
}

func (s *stubBackend) callCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *stubBackend) RefreshCameras(ctx context.Context) ([]dashboard.CameraStatus, error) {
	return nil, s.record("RefreshCameras")
}

func (s *stubBackend) Weather(ctx context.Context) (dashboard.WeatherReport, error) {
	return dashboard.WeatherReport{}, s.record("Weather")
}

func (s *stubBackend) Alerts(ctx context.Context) (dashboard.AlertsReport, error) {
	return dashboard.AlertsReport{}, s.record("Alerts")
}

func (s *stubBackend) RadarConfig(ctx context.Context) (dashboard.RadarSettings, error) {
	return dashboard.RadarSettings{}, s.record("RadarConfig")
}

func (s *stubBackend) SnoozeStatus(ctx context.Context, camera string) (dashboard.SnoozeStatus, error) {
	return dashboard.SnoozeStatus{}, s.record("SnoozeStatus")
}

func (s *stubBackend) SetSnooze(ctx context.Context, camera string, minutes int) error {
	return s.record("SetSnooze")
}

func (s *stubBackend) UnsetSnooze(ctx context.Context, camera string) error {
	return s.record("UnsetSnooze")
}

func (s *stubBackend) AllSnoozed(ctx context.Context) (bool, error) {
	return false, s.record("AllSnoozed")
}

func (s *stubBackend) SetSnoozeAll(ctx context.Context, minutes int) error {
	return s.record("SetSnoozeAll")
}

func (s *stubBackend) UnsetSnoozeAll(ctx context.Context) error {
	return s.record("UnsetSnoozeAll")
}

func (s *stubBackend) CleanupSnoozes(ctx context.Context) error {
	return s.record("CleanupSnoozes")
}

func (s *stubBackend) ArmStatus(ctx context.Context) (bool, error) {
	return false, s.record("ArmStatus")
}

func (s *stubBackend) SetArm(ctx context.Context, armed bool) error {
	return s.record("SetArm")
}

var _ dashboard.Backend = (*stubBackend)(nil)

func newTestAPIServer(backend dashboard.Backend) *APIServer {
	config := DefaultConfig()
	config.AuthToken = "test-token"
	logger := NewLogger(false)
	engine := dashboard.NewEngine(backend, dashboard.Options{}, logger)
	return NewAPIServer(config, engine, nil, logger)
}

func TestHandleSnoozeSetInvalidDuration(t *testing.T) {
	backend := newStubBackend()
	s := newTestAPIServer(backend)

	req := httptest.NewRequest(http.MethodPost, "/api/snooze/set",
		strings.NewReader(`{"camera_name": "Front Door", "duration_minutes": 0}`))
	rec := httptest.NewRecorder()
	s.handleSnoozeSet(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if got := backend.callCount("SetSnooze"); got != 0 {
		t.Fatalf("backend called %d times for invalid duration, want 0", got)
	}
}

func TestHandleSnoozeSetNormalizesName(t *testing.T) {
	backend := newStubBackend()
	s := newTestAPIServer(backend)

	req := httptest.NewRequest(http.MethodPost, "/api/snooze/set",
		strings.NewReader(`{"camera_name": "Front Door", "duration_minutes": 30}`))
	rec := httptest.NewRecorder()
	s.handleSnoozeSet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success  bool   `json:"success"`
		Camera   string `json:"camera"`
		Duration string `json:"duration"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success || resp.Camera != "front-door" {
		t.Fatalf("response: %+v", resp)
	}
	if resp.Duration != "30 minutes" {
		t.Fatalf("duration: got %q", resp.Duration)
	}
	if backend.callCount("SetSnooze") != 1 {
		t.Fatal("backend not called exactly once")
	}
}

func TestHandleSnoozeSetBackendDown(t *testing.T) {
	backend := newStubBackend()
	backend.err = errors.New("connection refused")
	s := newTestAPIServer(backend)

	req := httptest.NewRequest(http.MethodPost, "/api/snooze/set",
		strings.NewReader(`{"camera_name": "Front Door", "duration_minutes": 30}`))
	rec := httptest.NewRecorder()
	s.handleSnoozeSet(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadGateway)
	}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Success || resp.Error != "backend request failed" {
		t.Fatalf("response: %+v", resp)
	}
}

func TestHandleSnoozeSetRejectsGet(t *testing.T) {
	s := newTestAPIServer(newStubBackend())

	req := httptest.NewRequest(http.MethodGet, "/api/snooze/set", nil)
	rec := httptest.NewRecorder()
	s.handleSnoozeSet(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestHandleSnoozeAllSet(t *testing.T) {
	backend := newStubBackend()
	s := newTestAPIServer(backend)

	req := httptest.NewRequest(http.MethodPost, "/api/snooze/all/set",
		strings.NewReader(`{"duration_minutes": 60}`))
	rec := httptest.NewRecorder()
	s.handleSnoozeAllSet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if backend.callCount("SetSnoozeAll") != 1 {
		t.Fatal("all endpoint not routed to SetSnoozeAll")
	}
	if backend.callCount("SetSnooze") != 0 {
		t.Fatal("global snooze hit the per-camera endpoint")
	}
}

func TestHandleView(t *testing.T) {
	s := newTestAPIServer(newStubBackend())

	req := httptest.NewRequest(http.MethodGet, "/api/view", nil)
	rec := httptest.NewRecorder()
	s.handleView(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Fatalf("Cache-Control: got %q", cc)
	}

	var view dashboard.View
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decoding view: %v", err)
	}
	if view.GeneratedAt.IsZero() {
		t.Fatal("view missing generated_at")
	}
}

func TestHandleUIInjectsDisplayToken(t *testing.T) {
	s := newTestAPIServer(newStubBackend())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.handleUI(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "__DISPLAY_TOKEN__") {
		t.Fatal("display token placeholder not replaced")
	}
	if !strings.Contains(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("Content-Type: got %q", rec.Header().Get("Content-Type"))
	}
}

func TestHandleUIRejectsOtherPaths(t *testing.T) {
	s := newTestAPIServer(newStubBackend())

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	s.handleUI(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleForceRefreshMethod(t *testing.T) {
	s := newTestAPIServer(newStubBackend())

	req := httptest.NewRequest(http.MethodGet, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	s.handleForceRefresh(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec = httptest.NewRecorder()
	s.handleForceRefresh(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestHandleArmSet(t *testing.T) {
	backend := newStubBackend()
	s := newTestAPIServer(backend)

	req := httptest.NewRequest(http.MethodPost, "/api/arm/set",
		strings.NewReader(`{"arm": true}`))
	rec := httptest.NewRecorder()
	s.handleArmSet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if backend.callCount("SetArm") != 1 {
		t.Fatal("SetArm not called")
	}

	// Cached state shows up on the status endpoint without a backend call.
	req = httptest.NewRequest(http.MethodGet, "/api/arm/status", nil)
	rec = httptest.NewRecorder()
	s.handleArmStatus(rec, req)

	var resp struct {
		Success bool `json:"success"`
		Known   bool `json:"known"`
		Armed   bool `json:"armed"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Known || !resp.Armed {
		t.Fatalf("cached arm state: %+v", resp)
	}
	if backend.callCount("ArmStatus") != 0 {
		t.Fatal("status endpoint made a live backend call")
	}
}

func TestHandleArmSetBackendDown(t *testing.T) {
	backend := newStubBackend()
	backend.err = errors.New("connection refused")
	s := newTestAPIServer(backend)

	req := httptest.NewRequest(http.MethodPost, "/api/arm/set",
		strings.NewReader(`{"arm": true}`))
	rec := httptest.NewRecorder()
	s.handleArmSet(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestHandleImageValidation(t *testing.T) {
	// Validation failures never reach the backend, so a nil client is safe.
	s := newTestAPIServer(newStubBackend())

	for _, path := range []string{
		"/image/",
		"/image/front-door",
		"/image/front-door/../secret.jpg",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.handleImage(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: got %d, want %d", path, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestHandleImageProxies(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpegbytes"))
	}))
	defer upstream.Close()

	s := newTestAPIServer(newStubBackend())
	s.backend = NewBackendClient(upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/image/front-door/2025-03-14/x.jpg", nil)
	rec := httptest.NewRecorder()
	s.handleImage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Fatalf("Content-Type: got %q", ct)
	}
	if rec.Body.String() != "jpegbytes" {
		t.Fatalf("body: got %q", rec.Body.String())
	}
}
