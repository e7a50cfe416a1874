package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrInvalidDuration is returned when a snooze is requested for zero or
// negative minutes. The agent rejects these before any network call.
var ErrInvalidDuration = errors.New("snooze duration must be positive")

// Options sets the engine's poll cadences. Zero fields get defaults.
type Options struct {
	CameraPollInterval     time.Duration // P; also drives the staleness threshold
	WeatherPollInterval    time.Duration
	AlertsPollInterval     time.Duration
	ArmPollInterval        time.Duration
	SnoozePollInterval     time.Duration
	StalenessSweepInterval time.Duration
	CountdownTickInterval  time.Duration
}

func (o *Options) fillDefaults() {
	if o.CameraPollInterval == 0 {
		o.CameraPollInterval = 5 * time.Minute
	}
	if o.WeatherPollInterval == 0 {
		o.WeatherPollInterval = 30 * time.Minute
	}
	if o.AlertsPollInterval == 0 {
		o.AlertsPollInterval = 5 * time.Minute
	}
	if o.ArmPollInterval == 0 {
		o.ArmPollInterval = time.Minute
	}
	if o.SnoozePollInterval == 0 {
		o.SnoozePollInterval = 20 * time.Second
	}
	if o.StalenessSweepInterval == 0 {
		o.StalenessSweepInterval = time.Minute
	}
	if o.CountdownTickInterval == 0 {
		o.CountdownTickInterval = time.Second
	}
}

// View is a point-in-time snapshot of everything the kiosk displays.
type View struct {
	GeneratedAt  time.Time     `json:"generated_at"`
	Cameras      []CameraPanel `json:"cameras"`
	SnoozeBadges []SnoozeBadge `json:"snooze_badges"`
	AllSnoozed   bool          `json:"all_snoozed"`
	Weather      WeatherWidget `json:"weather"`
	Alerts       AlertsWidget  `json:"alerts"`
	Radar        RadarWidget   `json:"radar"`
	Arm          ArmWidget     `json:"arm"`
}

// Engine owns the view model and the pollers that feed it. Each subsystem
// (cameras, weather, alerts, arm, snooze) has its own schedule and its own
// in-flight guard; they never share a cycle. All mutable display state lives
// behind one RWMutex instead of module-level globals.
type Engine struct {
	backend Backend
	opts    Options
	logger  Logger

	mu         sync.RWMutex
	panels     []CameraPanel
	badges     []SnoozeBadge
	allSnoozed bool
	weather    WeatherWidget
	alerts     AlertsWidget
	radar      RadarWidget
	arm        ArmWidget

	snooze *SnoozeTracker

	cameraPoller *Poller
	snoozePoller *Poller
	pollers      []*Poller

	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewEngine(backend Backend, opts Options, logger Logger) *Engine {
	opts.fillDefaults()

	e := &Engine{
		backend: backend,
		opts:    opts,
		logger:  logger,
		snooze:  NewSnoozeTracker(),
	}

	e.cameraPoller = NewPoller("cameras", opts.CameraPollInterval, e.refreshCameras, logger)
	e.snoozePoller = NewPoller("snooze", opts.SnoozePollInterval, e.refreshSnooze, logger)
	e.pollers = []*Poller{
		e.cameraPoller,
		e.snoozePoller,
		NewPoller("weather", opts.WeatherPollInterval, e.refreshWeather, logger),
		NewPoller("alerts", opts.AlertsPollInterval, e.refreshAlerts, logger),
		NewPoller("arm", opts.ArmPollInterval, e.refreshArm, logger),
		NewPoller("staleness", opts.StalenessSweepInterval, e.sweepAges, logger),
		NewPoller("countdown", opts.CountdownTickInterval, e.tickCountdowns, logger),
	}

	return e
}

// Start launches every poller, asks the backend once to purge expired snooze
// windows, and fetches the radar configuration. Radar config is loaded once
// per agent start, like the page load it replaces.
func (e *Engine) Start() {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		// Fire and forget: failures are logged, never surfaced.
		if err := e.backend.CleanupSnoozes(ctx); err != nil {
			e.logger.Printf("snooze cleanup request failed: %v", err)
		}
		if err := e.loadRadarConfig(ctx); err != nil {
			e.logger.Printf("radar config load failed: %v", err)
		}
	}()

	for _, p := range e.pollers {
		p.Start()
	}
	e.logger.Printf("Dashboard engine started (camera poll %s, snooze poll %s)",
		e.opts.CameraPollInterval, e.opts.SnoozePollInterval)
}

// Stop halts every poller and waits for in-flight cycles to settle.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		for _, p := range e.pollers {
			p.Stop()
		}
	})
	e.wg.Wait()
}

// RefreshNow forces an out-of-schedule camera refresh (manual refresh from
// the kiosk page). Coalesced if one is already pending.
func (e *Engine) RefreshNow() {
	e.cameraPoller.Kick()
}

// View returns a snapshot of the current display state.
func (e *Engine) View() View {
	e.mu.RLock()
	defer e.mu.RUnlock()

	v := View{
		GeneratedAt:  time.Now(),
		Cameras:      make([]CameraPanel, len(e.panels)),
		SnoozeBadges: make([]SnoozeBadge, len(e.badges)),
		AllSnoozed:   e.allSnoozed,
		Weather:      e.weather,
		Alerts:       e.alerts,
		Radar:        e.radar,
		Arm:          e.arm,
	}
	copy(v.Cameras, e.panels)
	copy(v.SnoozeBadges, e.badges)
	return v
}

// SetSnooze asks the backend to create or replace a snooze window for one
// camera, or for all cameras when camera == SnoozeAll. The duration check
// happens here, before any request goes out.
func (e *Engine) SetSnooze(ctx context.Context, camera string, minutes int) error {
	if minutes <= 0 {
		return ErrInvalidDuration
	}

	var err error
	if camera == SnoozeAll {
		err = e.backend.SetSnoozeAll(ctx, minutes)
	} else {
		err = e.backend.SetSnooze(ctx, camera, minutes)
	}
	if err != nil {
		return err
	}

	e.snooze.Set(camera, time.Now().Add(time.Duration(minutes)*time.Minute))
	e.logger.Printf("Snoozed %s for %s", camera, FormatSnoozeDuration(minutes))
	e.rebuildBadges(time.Now())
	e.snoozePoller.Kick()
	return nil
}

// CancelSnooze removes the window for one camera or for all. The kiosk page
// confirms with the user before calling this; the engine carries it out
// unconditionally.
func (e *Engine) CancelSnooze(ctx context.Context, camera string) error {
	var err error
	if camera == SnoozeAll {
		err = e.backend.UnsetSnoozeAll(ctx)
	} else {
		err = e.backend.UnsetSnooze(ctx, camera)
	}
	if err != nil {
		return err
	}

	if camera == SnoozeAll {
		// Unsnoozing everything clears the per-camera windows too, since
		// the backend stamps each camera individually.
		e.snooze.ClearAll()
	} else {
		e.snooze.Clear(camera)
	}
	e.logger.Printf("Cancelled snooze for %s", camera)
	e.rebuildBadges(time.Now())
	e.snoozePoller.Kick()
	return nil
}

// SetArm proxies an arm/disarm request and caches the result for display.
func (e *Engine) SetArm(ctx context.Context, armed bool) error {
	if err := e.backend.SetArm(ctx, armed); err != nil {
		return err
	}
	e.mu.Lock()
	e.arm.Update(armed, time.Now())
	e.mu.Unlock()
	return nil
}

// refreshCameras is one camera poll cycle: fetch, then reconcile panels
// sequentially in the order the backend returned them.
func (e *Engine) refreshCameras(ctx context.Context) error {
	statuses, err := e.backend.RefreshCameras(ctx)
	if err != nil {
		return err
	}
	now := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	prev := make(map[string]CameraPanel, len(e.panels))
	for _, p := range e.panels {
		prev[p.NormalizedName] = p
	}

	panels := make([]CameraPanel, 0, len(statuses))
	for _, st := range statuses {
		name := st.NormalizedName
		if name == "" {
			name = NormalizeCameraName(st.Name)
		}

		panel := prev[name]
		panel.Name = st.Name
		panel.NormalizedName = name
		panel.Temperature = st.Temperature
		panel.Battery = st.Battery
		panel.WifiBars = st.Wifi
		panel.Offline = st.Alerts.IsOffline
		panel.OfflineReason = st.Alerts.OfflineReason

		if panel.SetImages(st.Images) {
			e.logger.Debugf("rebuilt %d thumbnail(s) for %s", len(st.Images), name)
		}
		panel.LastCaptured = panel.NewestCapture(st.LastUpdate)
		panel.RefreshAge(now, e.opts.CameraPollInterval)

		panels = append(panels, panel)
	}

	e.panels = panels
	return nil
}

// refreshSnooze is one snooze poll cycle: per-camera status plus the global
// all-snoozed flag. When every camera is snoozed the latest per-camera
// expiry stands in for the global window, since the backend stamps each
// camera rather than keeping a distinct all-cameras record.
func (e *Engine) refreshSnooze(ctx context.Context) error {
	e.mu.RLock()
	names := make([]string, 0, len(e.panels))
	for _, p := range e.panels {
		names = append(names, p.NormalizedName)
	}
	e.mu.RUnlock()

	now := time.Now()
	var latest time.Time
	for _, name := range names {
		status, err := e.backend.SnoozeStatus(ctx, name)
		if err != nil {
			return err
		}
		if !status.IsSnoozed || status.SnoozeUntil == "" {
			e.snooze.Clear(name)
			continue
		}
		until, err := time.ParseInLocation("2006-01-02T15:04:05", trimFraction(status.SnoozeUntil), time.Local)
		if err != nil {
			e.snooze.Clear(name)
			continue
		}
		e.snooze.Set(name, until)
		if until.After(latest) {
			latest = until
		}
	}

	allSnoozed := false
	if len(names) > 0 {
		var err error
		allSnoozed, err = e.backend.AllSnoozed(ctx)
		if err != nil {
			return err
		}
	}
	if allSnoozed && !latest.IsZero() {
		e.snooze.Set(SnoozeAll, latest)
	} else {
		e.snooze.Clear(SnoozeAll)
	}

	e.mu.Lock()
	e.allSnoozed = allSnoozed
	e.mu.Unlock()
	e.rebuildBadges(now)
	return nil
}

func (e *Engine) refreshWeather(ctx context.Context) error {
	report, err := e.backend.Weather(ctx)
	if err != nil {
		// Keep the previous reading; next cycle retries on schedule.
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.weather.Update(report, time.Now())
}

func (e *Engine) refreshAlerts(ctx context.Context) error {
	report, err := e.backend.Alerts(ctx)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.alerts.Update(report, time.Now())
	e.mu.Unlock()
	return nil
}

func (e *Engine) refreshArm(ctx context.Context) error {
	armed, err := e.backend.ArmStatus(ctx)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.arm.Update(armed, time.Now())
	e.mu.Unlock()
	return nil
}

func (e *Engine) loadRadarConfig(ctx context.Context) error {
	settings, err := e.backend.RadarConfig(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.radar = RadarWidget{Disabled: "Radar unavailable: configuration could not be loaded"}
		return err
	}
	e.radar.Update(settings)
	return nil
}

// sweepAges re-evaluates age labels and stale flags on the one-minute
// cadence, independent of the camera poll cycle.
func (e *Engine) sweepAges(ctx context.Context) error {
	now := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.panels {
		e.panels[i].RefreshAge(now, e.opts.CameraPollInterval)
	}
	return nil
}

// tickCountdowns re-renders every displayed snooze badge once per second.
// A window that reaches zero is dropped and that camera's status re-queried
// out of schedule, replacing the old reload-the-whole-page behavior.
func (e *Engine) tickCountdowns(ctx context.Context) error {
	now := time.Now()
	if expired := e.snooze.Expire(now); len(expired) > 0 {
		for _, camera := range expired {
			e.logger.Printf("Snooze expired for %s, resynchronizing", camera)
		}
		e.snoozePoller.Kick()
	}
	e.rebuildBadges(now)
	return nil
}

func (e *Engine) rebuildBadges(now time.Time) {
	badges := e.snooze.Badges(now)
	e.mu.Lock()
	e.badges = badges
	e.mu.Unlock()
}
