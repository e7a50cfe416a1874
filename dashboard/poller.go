package dashboard

import (
	"context"
	"sync"
	"time"
)

// Poller runs one fetch-and-reconcile cycle on a fixed cadence. At most one
// cycle is outstanding at a time: if the timer fires while the previous
// cycle is still in flight, that tick is skipped, not queued. A failed cycle
// is logged and forgotten; the next scheduled tick proceeds independently.
type Poller struct {
	name     string
	interval time.Duration
	cycle    func(ctx context.Context) error
	logger   Logger

	mu       sync.Mutex
	inFlight bool

	ctx      context.Context
	cancel   context.CancelFunc
	kick     chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewPoller(name string, interval time.Duration, cycle func(ctx context.Context) error, logger Logger) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		name:     name,
		interval: interval,
		cycle:    cycle,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		kick:     make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the schedule loop. The first cycle fires immediately.
func (p *Poller) Start() {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		p.Trigger()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-p.stopCh:
				return
			case <-ticker.C:
				if !p.Trigger() {
					p.logger.Debugf("%s poll skipped: previous cycle still in flight", p.name)
				}
			case <-p.kick:
				p.Trigger()
			}
		}
	}()
}

// Trigger starts a cycle unless one is already in flight. Reports whether a
// cycle actually began.
func (p *Poller) Trigger() bool {
	if !p.begin() {
		return false
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.end()
		if err := p.cycle(p.ctx); err != nil {
			p.logger.Printf("%s poll cycle failed: %v", p.name, err)
		}
	}()
	return true
}

// Kick requests an out-of-schedule cycle (used for forced resyncs). If a
// kick is already pending it is coalesced.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Stop cancels the in-flight cycle, halts the schedule, and waits for the
// loop to exit.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		close(p.stopCh)
	})
	p.wg.Wait()
}

func (p *Poller) begin() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inFlight {
		return false
	}
	p.inFlight = true
	return true
}

func (p *Poller) end() {
	p.mu.Lock()
	p.inFlight = false
	p.mu.Unlock()
}
