package hotplug

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"audiomatch/internal/logging"
)

// poller emits a trigger on a fixed interval.
type poller struct {
	interval time.Duration
	emit     Emitter
	logger   *slog.Logger

	mu      sync.Mutex
	quit    chan struct{}
	running bool
}

func newPoller(interval time.Duration, logger *slog.Logger, emit Emitter) *poller {
	if interval <= 0 {
		interval = time.Second
	}
	return &poller{
		interval: interval,
		emit:     emit,
		logger:   logging.NewComponentLogger(logger, "hotplug-poll"),
	}
}

func (p *poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return nil
	}
	p.quit = make(chan struct{})
	p.running = true
	go p.loop(ctx, p.quit)
	p.logger.Debug("device polling started", logging.Duration("interval", p.interval))
	return nil
}

func (p *poller) loop(ctx context.Context, quit <-chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-quit:
			return
		case now := <-ticker.C:
			p.emit(Trigger{Reason: ReasonPoll, At: now})
		}
	}
}

func (p *poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	close(p.quit)
	p.quit = nil
	p.running = false
}

func (p *poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *poller) Name() string { return "poll" }
