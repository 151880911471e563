package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"audiomatch/internal/browser"
	"audiomatch/internal/config"
	"audiomatch/internal/crossref"
	"audiomatch/internal/device"
	"audiomatch/internal/logging"
	"audiomatch/internal/native"
	"audiomatch/internal/services"
)

// NativeSource produces the native device list for a run.
type NativeSource interface {
	Enumerate(ctx context.Context) (native.Result, error)
}

// Inputs names the files a run reads. NativePath, when set, replaces live
// enumeration with a saved record list. "-" reads stdin for at most one of
// the two paths.
type Inputs struct {
	ForeignPath string
	NativePath  string
}

// Outcome is everything one run produced.
type Outcome struct {
	RunID   string           `json:"runId"`
	Native  native.Result    `json:"native"`
	Foreign []device.Foreign `json:"foreign"`
	Report  crossref.Report  `json:"report"`
	Summary crossref.Summary `json:"summary"`
	Elapsed time.Duration    `json:"elapsed"`
}

// Runner wires the enumerator, foreign loader, and matcher.
type Runner struct {
	cfg     *config.Config
	source  NativeSource
	matcher *crossref.Matcher
	foreign browser.Options
	logger  *slog.Logger
	stdin   io.Reader
	newID   func() string

	adjust   []func(*crossref.Options)
	enumOpts []native.Option
}

// Option customises a Runner.
type Option func(*Runner)

// WithNativeSource replaces the configured enumerator.
func WithNativeSource(source NativeSource) Option {
	return func(r *Runner) {
		if source != nil {
			r.source = source
		}
	}
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithStdin overrides the reader used for "-" paths.
func WithStdin(stdin io.Reader) Option {
	return func(r *Runner) {
		if stdin != nil {
			r.stdin = stdin
		}
	}
}

// WithMatcherOptions adjusts the matcher options derived from configuration,
// typically from command-line flags.
func WithMatcherOptions(adjust func(*crossref.Options)) Option {
	return func(r *Runner) {
		if adjust != nil {
			r.adjust = append(r.adjust, adjust)
		}
	}
}

// WithEnumeratorOptions builds the default enumerator with extra options.
func WithEnumeratorOptions(opts ...native.Option) Option {
	return func(r *Runner) {
		r.enumOpts = append(r.enumOpts, opts...)
	}
}

// MatcherOptionsFromConfig converts the [matching] section into matcher
// options. Unknown names are configuration errors.
func MatcherOptionsFromConfig(cfg *config.Config) (crossref.Options, error) {
	opts := crossref.DefaultOptions()
	if cfg == nil {
		return opts, nil
	}
	assignment, err := crossref.ParseAssignment(cfg.Matching.Assignment)
	if err != nil {
		return opts, services.Wrap(services.ErrConfiguration, "workflow", "matching options", "", err)
	}
	opts.Assignment = assignment
	opts.PositionFallback = cfg.Matching.PositionFallback
	if cfg.Matching.MinIDContainment > 0 {
		opts.MinIDContainment = cfg.Matching.MinIDContainment
	}
	for _, name := range cfg.Matching.DisabledStrategies {
		t, err := crossref.ParseMatchType(name)
		if err != nil {
			return opts, services.Wrap(services.ErrConfiguration, "workflow", "matching options", "", err)
		}
		opts.Disabled = append(opts.Disabled, t)
	}
	return opts, nil
}

// NewRunner constructs a Runner from configuration.
func NewRunner(cfg *config.Config, opts ...Option) (*Runner, error) {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	matcherOpts, err := MatcherOptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:     cfg,
		foreign: browser.OptionsFromConfig(cfg),
		logger:  logging.NewNop(),
		stdin:   os.Stdin,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	for _, adjust := range r.adjust {
		adjust(&matcherOpts)
	}
	r.matcher = crossref.NewMatcher(matcherOpts, crossref.WithLogger(r.logger))
	if r.source == nil {
		enumOpts := append([]native.Option{native.WithLogger(r.logger)}, r.enumOpts...)
		r.source = native.New(cfg, enumOpts...)
	}
	r.logger = logging.NewComponentLogger(r.logger, "workflow")
	return r, nil
}

// MatcherOptions returns the effective matcher options.
func (r *Runner) MatcherOptions() crossref.Options {
	return r.matcher.Options()
}

// Run performs one pass.
func (r *Runner) Run(ctx context.Context, in Inputs) (Outcome, error) {
	start := time.Now()
	if strings.TrimSpace(in.ForeignPath) == browser.Stdin && strings.TrimSpace(in.NativePath) == browser.Stdin {
		return Outcome{}, services.Wrap(services.ErrInvalidInput, "workflow", "run", "only one input can be read from stdin", nil)
	}

	runID := r.newID()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	nativeResult, err := r.loadNative(ctx, in.NativePath)
	if err != nil {
		return Outcome{RunID: runID}, err
	}
	if nativeResult.Source != "" {
		ctx = services.WithSource(ctx, nativeResult.Source)
	}
	ctx = services.WithPlatform(ctx, nativeResult.Platform)

	foreign, err := r.loadForeign(in.ForeignPath)
	if err != nil {
		return Outcome{RunID: runID, Native: nativeResult}, err
	}

	report := r.matcher.MatchContext(ctx, nativeResult.Devices, foreign)
	summary := report.Summary()
	outcome := Outcome{
		RunID:   runID,
		Native:  nativeResult,
		Foreign: foreign,
		Report:  report,
		Summary: summary,
		Elapsed: time.Since(start),
	}

	logging.WithContext(ctx, r.logger).Info("cross-reference complete",
		logging.String(logging.FieldEventType, "match_complete"),
		logging.Int("native_total", summary.NativeTotal),
		logging.Int("foreign_total", summary.ForeignTotal),
		logging.Int("matched", summary.Matched),
		logging.Int("match_rate", summary.MatchRate),
		logging.Int("unmatched_native", summary.UnmatchedNative),
		logging.Int("unmatched_foreign", summary.UnmatchedForeign),
		logging.Duration("elapsed", outcome.Elapsed),
	)
	for _, warning := range nativeResult.Warnings {
		logger.Debug("native enumeration warning", logging.String("warning", warning))
	}
	return outcome, nil
}

func (r *Runner) loadNative(ctx context.Context, path string) (native.Result, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return r.source.Enumerate(ctx)
	}
	var (
		reader io.Reader
		closer io.Closer
	)
	if path == browser.Stdin {
		reader = r.stdin
	} else {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return native.Result{}, services.Wrap(services.ErrInvalidInput, "workflow", "load native", "expand path", err)
		}
		f, err := os.Open(expanded)
		if err != nil {
			return native.Result{}, services.Wrap(services.ErrNotFound, "workflow", "load native", expanded, err)
		}
		reader, closer = f, f
	}
	if closer != nil {
		defer closer.Close()
	}
	records, err := device.DecodeNative(reader)
	if err != nil {
		return native.Result{}, err
	}
	devices := make([]device.Device, 0, len(records))
	for _, d := range records {
		if d.Source == "" {
			d.Source = "file"
		}
		devices = append(devices, device.ClassifyDevice(d))
	}
	return native.Result{
		Platform:  "file",
		Source:    "file",
		Direction: device.Direction(r.cfg.Native.Direction),
		Devices:   devices,
	}, nil
}

func (r *Runner) loadForeign(path string) ([]device.Foreign, error) {
	if strings.TrimSpace(path) == "" {
		path = r.cfg.Foreign.Path
	}
	if strings.TrimSpace(path) == browser.Stdin {
		return browser.Read(r.stdin, r.foreign)
	}
	list, err := browser.Load(path, r.foreign)
	if err != nil {
		return nil, fmt.Errorf("load foreign devices: %w", err)
	}
	return list, nil
}
