package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRefreshCamerasParsesEnvelope(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cameras/refresh" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"success": true,
			"cameras": [
				{
					"name": "Front Door",
					"normalized_name": "front-door",
					"images": ["2025-03-14/front-door_20250314_120000.jpg"],
					"wifi": 4,
					"alerts": {"is_offline": false}
				}
			]
		}`)
	}))
	defer backend.Close()

	client := NewBackendClient(backend.URL)
	cameras, err := client.RefreshCameras(context.Background())
	if err != nil {
		t.Fatalf("RefreshCameras: %v", err)
	}
	if len(cameras) != 1 {
		t.Fatalf("cameras: got %d, want 1", len(cameras))
	}
	if cameras[0].NormalizedName != "front-door" || cameras[0].Wifi != 4 {
		t.Fatalf("camera not parsed: %+v", cameras[0])
	}
}

func TestRefreshCamerasBackendReportedFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success": false, "error": "blink session expired"}`)
	}))
	defer backend.Close()

	client := NewBackendClient(backend.URL)
	if _, err := client.RefreshCameras(context.Background()); err == nil {
		t.Fatal("success:false envelope must return an error")
	}
}

func TestClientHTTPErrorCarriesStatus(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	client := NewBackendClient(backend.URL)
	_, err := client.Weather(context.Background())
	if err == nil {
		t.Fatal("expected error on HTTP 500")
	}

	var berr *BackendError
	if !errors.As(err, &berr) {
		t.Fatalf("error %T is not *BackendError", err)
	}
	if berr.Status != http.StatusInternalServerError {
		t.Fatalf("Status: got %d, want %d", berr.Status, http.StatusInternalServerError)
	}
}

func TestSetSnoozePostsBody(t *testing.T) {
	var got map[string]interface{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/snooze/set" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type: got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		io.WriteString(w, `{"success": true}`)
	}))
	defer backend.Close()

	client := NewBackendClient(backend.URL)
	if err := client.SetSnooze(context.Background(), "front-door", 30); err != nil {
		t.Fatalf("SetSnooze: %v", err)
	}
	if got["camera_name"] != "front-door" {
		t.Fatalf("camera_name: got %v", got["camera_name"])
	}
	if got["duration_minutes"] != float64(30) {
		t.Fatalf("duration_minutes: got %v", got["duration_minutes"])
	}
}

func TestSetArmChecksSuccessFlag(t *testing.T) {
	var gotArm interface{}
	success := true
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		gotArm = body["arm"]
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": success,
			"error":   "cloud timeout",
		})
	}))
	defer backend.Close()

	client := NewBackendClient(backend.URL)
	if err := client.SetArm(context.Background(), true); err != nil {
		t.Fatalf("SetArm: %v", err)
	}
	if gotArm != true {
		t.Fatalf("arm field: got %v, want true", gotArm)
	}

	success = false
	if err := client.SetArm(context.Background(), false); err == nil {
		t.Fatal("success:false must return an error")
	}
}

func TestAllSnoozed(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/snooze/all/status" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		io.WriteString(w, `{"success": true, "all_snoozed": true}`)
	}))
	defer backend.Close()

	client := NewBackendClient(backend.URL)
	all, err := client.AllSnoozed(context.Background())
	if err != nil {
		t.Fatalf("AllSnoozed: %v", err)
	}
	if !all {
		t.Fatal("all_snoozed not parsed")
	}
}

func TestFetchImage(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/image/front-door/2025-03-14/front-door_20250314_120000.jpg" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("pngbytes"))
	}))
	defer backend.Close()

	client := NewBackendClient(backend.URL)
	body, contentType, err := client.FetchImage(context.Background(), "front-door", "2025-03-14/front-door_20250314_120000.jpg")
	if err != nil {
		t.Fatalf("FetchImage: %v", err)
	}
	defer body.Close()

	if contentType != "image/png" {
		t.Fatalf("content type: got %q", contentType)
	}
	data, _ := io.ReadAll(body)
	if string(data) != "pngbytes" {
		t.Fatalf("body: got %q", data)
	}
}

func TestEscapeImagePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-14/front-door_20250314_120000.jpg", "2025-03-14/front-door_20250314_120000.jpg"},
		{"2025-03-14/front door.jpg", "2025-03-14/front%20door.jpg"},
		{"a b/c d.jpg", "a%20b/c%20d.jpg"},
	}
	for _, tt := range tests {
		if got := escapeImagePath(tt.in); got != tt.want {
			t.Fatalf("escapeImagePath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
