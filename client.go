package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blink-kiosk/dashboard"
)

// BackendError is any failed exchange with the Blink web server: transport
// failures carry Status 0, HTTP failures the response code. A failed cycle
// is logged and dropped; the next scheduled poll is unaffected.
type BackendError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *BackendError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend %s: HTTP %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("backend %s: %v", e.Endpoint, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// BackendClient talks to the Blink web server's JSON API. It implements
// dashboard.Backend.
type BackendClient struct {
	baseURL string
	client  *http.Client
}

func NewBackendClient(baseURL string) *BackendClient {
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: BackendRequestTimeout},
	}
}

func (c *BackendClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return &BackendError{Endpoint: endpoint, Err: err}
	}
	return c.do(req, endpoint, out)
}

func (c *BackendClient) postJSON(ctx context.Context, endpoint string, body interface{}, out interface{}) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &BackendError{Endpoint: endpoint, Err: err}
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, payload)
	if err != nil {
		return &BackendError{Endpoint: endpoint, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, endpoint, out)
}

func (c *BackendClient) do(req *http.Request, endpoint string, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return &BackendError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &BackendError{Endpoint: endpoint, Status: resp.StatusCode}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &BackendError{Endpoint: endpoint, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

func (c *BackendClient) RefreshCameras(ctx context.Context) ([]dashboard.CameraStatus, error) {
	var resp struct {
		Success bool                     `json:"success"`
		Cameras []dashboard.CameraStatus `json:"cameras"`
		Error   string                   `json:"error"`
	}
	if err := c.getJSON(ctx, "/api/cameras/refresh", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &BackendError{Endpoint: "/api/cameras/refresh", Err: fmt.Errorf("backend reported failure: %s", resp.Error)}
	}
	return resp.Cameras, nil
}

func (c *BackendClient) Weather(ctx context.Context) (dashboard.WeatherReport, error) {
	var report dashboard.WeatherReport
	err := c.getJSON(ctx, "/api/weather", &report)
	return report, err
}

func (c *BackendClient) Alerts(ctx context.Context) (dashboard.AlertsReport, error) {
	var resp struct {
		Success bool `json:"success"`
		dashboard.AlertsReport
	}
	if err := c.getJSON(ctx, "/api/nws/alerts", &resp); err != nil {
		return dashboard.AlertsReport{}, err
	}
	return resp.AlertsReport, nil
}

func (c *BackendClient) RadarConfig(ctx context.Context) (dashboard.RadarSettings, error) {
	var resp struct {
		Success     bool                    `json:"success"`
		RadarConfig dashboard.RadarSettings `json:"radar_config"`
	}
	if err := c.getJSON(ctx, "/api/radar/config", &resp); err != nil {
		return dashboard.RadarSettings{}, err
	}
	return resp.RadarConfig, nil
}

func (c *BackendClient) SnoozeStatus(ctx context.Context, camera string) (dashboard.SnoozeStatus, error) {
	var status dashboard.SnoozeStatus
	err := c.getJSON(ctx, "/api/snooze/status/"+url.PathEscape(camera), &status)
	return status, err
}

func (c *BackendClient) SetSnooze(ctx context.Context, camera string, minutes int) error {
	body := map[string]interface{}{
		"camera_name":      camera,
		"duration_minutes": minutes,
	}
	return c.postJSON(ctx, "/api/snooze/set", body, nil)
}

func (c *BackendClient) UnsetSnooze(ctx context.Context, camera string) error {
	body := map[string]interface{}{"camera_name": camera}
	return c.postJSON(ctx, "/api/snooze/unset", body, nil)
}

func (c *BackendClient) AllSnoozed(ctx context.Context) (bool, error) {
	var resp struct {
		Success    bool `json:"success"`
		AllSnoozed bool `json:"all_snoozed"`
	}
	if err := c.getJSON(ctx, "/api/snooze/all/status", &resp); err != nil {
		return false, err
	}
	return resp.AllSnoozed, nil
}

func (c *BackendClient) SetSnoozeAll(ctx context.Context, minutes int) error {
	body := map[string]interface{}{"duration_minutes": minutes}
	return c.postJSON(ctx, "/api/snooze/all/set", body, nil)
}

func (c *BackendClient) UnsetSnoozeAll(ctx context.Context) error {
	return c.postJSON(ctx, "/api/snooze/all/unset", nil, nil)
}

func (c *BackendClient) CleanupSnoozes(ctx context.Context) error {
	return c.postJSON(ctx, "/api/snooze/cleanup", nil, nil)
}

func (c *BackendClient) ArmStatus(ctx context.Context) (bool, error) {
	var resp struct {
		Armed   bool   `json:"armed"`
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.getJSON(ctx, "/api/arm/status", &resp); err != nil {
		return false, err
	}
	if !resp.Success {
		return false, &BackendError{Endpoint: "/api/arm/status", Err: fmt.Errorf("backend reported failure: %s", resp.Error)}
	}
	return resp.Armed, nil
}

func (c *BackendClient) SetArm(ctx context.Context, armed bool) error {
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.postJSON(ctx, "/api/arm/set", map[string]interface{}{"arm": armed}, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &BackendError{Endpoint: "/api/arm/set", Err: fmt.Errorf("backend reported failure: %s", resp.Error)}
	}
	return nil
}

// FetchImage streams one camera image from the backend. The caller owns the
// returned body.
func (c *BackendClient) FetchImage(ctx context.Context, camera, imagePath string) (io.ReadCloser, string, error) {
	endpoint := "/image/" + url.PathEscape(camera) + "/" + escapeImagePath(imagePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, "", &BackendError{Endpoint: endpoint, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", &BackendError{Endpoint: endpoint, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", &BackendError{Endpoint: endpoint, Status: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return resp.Body, contentType, nil
}

// escapeImagePath escapes each segment of a date-folder image path
// ("2025-03-14/front-door_20250314_153012.jpg") while keeping the slashes.
func escapeImagePath(imagePath string) string {
	parts := strings.Split(imagePath, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

var _ dashboard.Backend = (*BackendClient)(nil)

// Probe checks backend reachability once at startup so a misconfigured URL
// shows up in the log immediately instead of as silent empty panels.
func (c *BackendClient) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := c.RefreshCameras(ctx)
	return err
}
