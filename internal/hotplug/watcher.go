package hotplug

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"audiomatch/internal/config"
	"audiomatch/internal/logging"
)

type deviceMonitor interface {
	Start(ctx context.Context) error
	Stop()
	Running() bool
	Name() string
}

// Handler runs one rematch. coalesced is the number of raw triggers the
// debouncer folded into this call.
type Handler func(ctx context.Context, trigger Trigger, coalesced int)

// Options configures a Watcher.
type Options struct {
	// ForeignPath is watched for changes when set to a real file.
	ForeignPath  string
	Debounce     time.Duration
	PollInterval time.Duration
	Logger       *slog.Logger
}

// OptionsFromConfig builds Options from the [watch] section.
func OptionsFromConfig(cfg *config.Config, foreignPath string, logger *slog.Logger) Options {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	return Options{
		ForeignPath:  foreignPath,
		Debounce:     cfg.DebounceInterval(),
		PollInterval: cfg.PollInterval(),
		Logger:       logger,
	}
}

// Watcher runs the handler once at startup and again whenever a device or
// foreign-file trigger settles. Handler calls never overlap.
type Watcher struct {
	opts    Options
	handler Handler
	logger  *slog.Logger

	newDevice func(time.Duration, *slog.Logger, Emitter) deviceMonitor
	newPoll   func(time.Duration, *slog.Logger, Emitter) deviceMonitor
}

// New constructs a Watcher.
func New(opts Options, handler Handler) *Watcher {
	return &Watcher{
		opts:      opts,
		handler:   handler,
		logger:    logging.NewComponentLogger(opts.Logger, "hotplug"),
		newDevice: newDeviceMonitor,
		newPoll: func(interval time.Duration, logger *slog.Logger, emit Emitter) deviceMonitor {
			return newPoller(interval, logger, emit)
		},
	}
}

type firing struct {
	trigger Trigger
	count   int
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fires := make(chan firing, 1)
	debouncer := NewDebouncer(w.opts.Debounce, func(t Trigger, n int) {
		select {
		case fires <- firing{trigger: t, count: n}:
		default:
			// a rematch is already queued and will observe the same state
			w.logger.Debug("rematch already queued", logging.String("reason", string(t.Reason)))
		}
	})
	defer debouncer.Stop()

	monitor := w.startDeviceMonitor(ctx, debouncer.Add)
	if monitor != nil {
		defer monitor.Stop()
	}
	if files := w.startFileWatcher(ctx, debouncer.Add); files != nil {
		defer files.Stop()
	}

	w.invoke(ctx, Trigger{Reason: ReasonStartup, At: time.Now()}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case f := <-fires:
			w.invoke(ctx, f.trigger, f.count)
		}
	}
}

func (w *Watcher) invoke(ctx context.Context, t Trigger, n int) {
	if w.handler == nil || ctx.Err() != nil {
		return
	}
	w.logger.Debug("rematch triggered",
		logging.String("reason", string(t.Reason)),
		logging.String("detail", t.Detail),
		logging.Int("coalesced", n),
	)
	w.handler(ctx, t, n)
}

func (w *Watcher) startDeviceMonitor(ctx context.Context, emit Emitter) deviceMonitor {
	monitor := w.newDevice(w.opts.PollInterval, w.opts.Logger, emit)
	err := monitor.Start(ctx)
	if err == nil {
		return monitor
	}
	logging.WarnWithContext(w.logger, "device monitor unavailable; falling back to polling", "device_monitor_fallback",
		logging.Error(err),
		logging.String("monitor", monitor.Name()),
		logging.String(logging.FieldErrorHint, "check netlink socket permissions"),
		logging.String(logging.FieldImpact, "device changes detected by polling"),
		logging.Duration("poll_interval", w.opts.PollInterval),
	)
	poll := w.newPoll(w.opts.PollInterval, w.opts.Logger, emit)
	if err := poll.Start(ctx); err != nil {
		return nil
	}
	return poll
}

func (w *Watcher) startFileWatcher(ctx context.Context, emit Emitter) *fileWatcher {
	path := strings.TrimSpace(w.opts.ForeignPath)
	if path == "" || path == "-" {
		return nil
	}
	files := newFileWatcher(path, w.opts.Logger, emit)
	if err := files.Start(ctx); err != nil {
		logging.WarnWithContext(w.logger, "foreign file watch unavailable", "file_watch_failed",
			logging.Error(err),
			logging.String("path", path),
			logging.String(logging.FieldImpact, "browser export changes require a restart"),
		)
		return nil
	}
	return files
}
