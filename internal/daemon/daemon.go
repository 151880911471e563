package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"audiomatch/internal/config"
	"audiomatch/internal/crossref"
	"audiomatch/internal/hotplug"
	"audiomatch/internal/logging"
	"audiomatch/internal/metrics"
	"audiomatch/internal/preflight"
	"audiomatch/internal/services"
	"audiomatch/internal/workflow"
)

// Runner performs one cross-reference pass.
type Runner interface {
	Run(ctx context.Context, in workflow.Inputs) (workflow.Outcome, error)
}

// Daemon coordinates rematching and enforces single-instance execution.
type Daemon struct {
	cfg         *config.Config
	logger      *slog.Logger
	runner      Runner
	recorder    *metrics.Recorder
	inputs      workflow.Inputs
	onOutcome   func(workflow.Outcome, error)
	watchConfig func(hotplug.Options) hotplug.Options

	lockPath string
	lock     *flock.Flock

	running atomic.Bool

	mu        sync.Mutex
	runs      int
	failures  int
	last      *workflow.Outcome
	lastErr   error
	signature string
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	LockFilePath string
	Runs         int
	Failures     int
	LastRunID    string
	LastError    string
	LastSummary  *crossref.Summary
}

// Option customises a Daemon.
type Option func(*Daemon)

// WithRecorder feeds every outcome into the metrics recorder.
func WithRecorder(recorder *metrics.Recorder) Option {
	return func(d *Daemon) { d.recorder = recorder }
}

// WithInputs sets the files each rematch reads.
func WithInputs(in workflow.Inputs) Option {
	return func(d *Daemon) { d.inputs = in }
}

// WithOutcomeHook is called after every rematch, successful or not.
func WithOutcomeHook(hook func(workflow.Outcome, error)) Option {
	return func(d *Daemon) { d.onOutcome = hook }
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, runner Runner, logger *slog.Logger, opts ...Option) (*Daemon, error) {
	if cfg == nil || runner == nil {
		return nil, errors.New("daemon requires config and runner")
	}

	lockPath := cfg.LockPath()
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		runner:   runner,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if strings.TrimSpace(d.inputs.ForeignPath) == "" {
		d.inputs.ForeignPath = cfg.Foreign.Path
	}
	return d, nil
}

// Start acquires the watch lock.
func (d *Daemon) Start() error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	if err := os.MkdirAll(filepath.Dir(d.lockPath), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return services.Wrap(services.ErrConfiguration, "daemon", "start",
			fmt.Sprintf("another audiomatch watch instance holds %s", d.lockPath), nil)
	}

	d.running.Store(true)
	d.logger.Info("audiomatch watch started",
		logging.String(logging.FieldEventType, "watch_started"),
		logging.String("lock", d.lockPath),
	)
	return nil
}

// Stop releases the watch lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if err := d.lock.Unlock(); err != nil {
		logging.WarnWithContext(d.logger, "failed to release watch lock", "lock_release_failed",
			logging.Error(err),
			logging.String("lock", d.lockPath),
			logging.String(logging.FieldImpact, "stale lock file may remain"),
		)
	}
	d.running.Store(false)
	d.logger.Info("audiomatch watch stopped",
		logging.String(logging.FieldEventType, "watch_stopped"),
	)
}

// Run holds the lock, serves metrics when configured, and rematches on every
// trigger until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(); err != nil {
		return err
	}
	defer d.Stop()

	for _, check := range preflight.Failed(preflight.RunAll(d.cfg, d.inputs.ForeignPath)) {
		logging.WarnWithContext(d.logger, "preflight check failed", "preflight_failed",
			logging.Alert("preflight"),
			logging.String("check", check.Name),
			logging.String("detail", check.Detail),
			logging.String(logging.FieldImpact, "rematches may fail until resolved"),
		)
	}

	bind := strings.TrimSpace(d.cfg.Watch.MetricsBind)
	if bind != "" && d.recorder != nil {
		go func() {
			if err := d.recorder.Serve(ctx, bind, d.logger); err != nil {
				logging.WarnWithContext(d.logger, "metrics endpoint failed", "metrics_serve_failed",
					logging.Error(err),
					logging.String("bind", bind),
					logging.String(logging.FieldErrorHint, "check watch.metrics_bind"),
					logging.String(logging.FieldImpact, "metrics unavailable"),
				)
			}
		}()
	}

	opts := hotplug.OptionsFromConfig(d.cfg, d.inputs.ForeignPath, d.logger)
	if d.watchConfig != nil {
		opts = d.watchConfig(opts)
	}
	return hotplug.New(opts, d.rematch).Run(ctx)
}

// Rematch runs one pass immediately. It is what hotplug triggers invoke.
func (d *Daemon) Rematch(ctx context.Context) (workflow.Outcome, error) {
	return d.runOnce(ctx, hotplug.Trigger{Reason: hotplug.ReasonManual})
}

func (d *Daemon) rematch(ctx context.Context, trigger hotplug.Trigger, coalesced int) {
	logger := d.logger.With(
		logging.String("trigger", string(trigger.Reason)),
		logging.Int("coalesced", coalesced),
	)
	outcome, err := d.runOnce(ctx, trigger)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logging.ErrorWithContext(logger, "rematch failed", "rematch_failed",
			logging.Alert("rematch"),
			logging.Error(err),
			logging.Int(logging.FieldErrorCode, services.ExitCode(err)),
			logging.String(logging.FieldErrorHint, "run audiomatch match once to see the full error"),
			logging.String(logging.FieldImpact, "previous report kept"),
		)
		return
	}
	logger = logging.WithContext(services.WithRunID(ctx, outcome.RunID), logger)
	if d.recordSignature(outcome.Report) {
		logger.Info("device matches changed",
			logging.String(logging.FieldEventType, "matches_changed"),
			logging.Int("matched", outcome.Summary.Matched),
			logging.Int("match_rate", outcome.Summary.MatchRate),
			logging.Int("unmatched_native", outcome.Summary.UnmatchedNative),
			logging.Int("unmatched_foreign", outcome.Summary.UnmatchedForeign),
		)
		return
	}
	logger.Debug("device matches unchanged", logging.Int("matched", outcome.Summary.Matched))
}

func (d *Daemon) runOnce(ctx context.Context, trigger hotplug.Trigger) (workflow.Outcome, error) {
	outcome, err := d.runner.Run(ctx, d.inputs)

	d.mu.Lock()
	d.runs++
	if err != nil {
		d.failures++
		d.lastErr = err
	} else {
		d.lastErr = nil
		o := outcome
		d.last = &o
	}
	d.mu.Unlock()

	if err != nil {
		d.recorder.ObserveFailure()
	} else {
		d.recorder.ObserveReport(outcome.Report)
	}
	if d.onOutcome != nil {
		d.onOutcome(outcome, err)
	}
	return outcome, err
}

// recordSignature stores the pairing fingerprint of report and reports
// whether it differs from the previous one.
func (d *Daemon) recordSignature(report crossref.Report) bool {
	sig := reportSignature(report)
	d.mu.Lock()
	defer d.mu.Unlock()
	changed := sig != d.signature
	d.signature = sig
	return changed
}

func reportSignature(report crossref.Report) string {
	parts := make([]string, 0, len(report.Matches)+len(report.UnmatchedNative)+len(report.UnmatchedForeign))
	for _, m := range report.Matches {
		parts = append(parts, "m:"+m.Native.ID+"="+m.Foreign.DeviceID)
	}
	for _, n := range report.UnmatchedNative {
		parts = append(parts, "n:"+n.ID)
	}
	for _, f := range report.UnmatchedForeign {
		parts = append(parts, "f:"+f.DeviceID)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// Status returns a snapshot of the daemon state.
func (d *Daemon) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	status := Status{
		Running:      d.running.Load(),
		LockFilePath: d.lockPath,
		Runs:         d.runs,
		Failures:     d.failures,
	}
	if d.lastErr != nil {
		status.LastError = d.lastErr.Error()
	}
	if d.last != nil {
		status.LastRunID = d.last.RunID
		summary := d.last.Summary
		status.LastSummary = &summary
	}
	return status
}
