package native

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"audiomatch/internal/config"
	"audiomatch/internal/device"
	"audiomatch/internal/logging"
	"audiomatch/internal/services"
	"audiomatch/internal/textutil"
)

// Result is the outcome of one enumeration pass.
type Result struct {
	Platform  string           `json:"platform"`
	Source    string           `json:"source"`
	Direction device.Direction `json:"direction"`
	Devices   []device.Device  `json:"devices"`
	Warnings  []string         `json:"warnings,omitempty"`
	Tried     []string         `json:"tried,omitempty"`
}

// Settings captures the enumeration knobs taken from configuration.
type Settings struct {
	Source         string
	Direction      device.Direction
	Timeout        time.Duration
	HelperPath     string
	HelperArgs     []string
	PowerShell     string
	SystemProfiler string
	Aplay          string
	Arecord        string
	Pactl          string
}

// SettingsFromConfig converts the [native] section into Settings.
func SettingsFromConfig(cfg *config.Config) Settings {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	n := cfg.Native
	return Settings{
		Source:         n.Source,
		Direction:      device.Direction(n.Direction),
		Timeout:        cfg.NativeTimeout(),
		HelperPath:     n.HelperPath,
		HelperArgs:     append([]string(nil), n.HelperArgs...),
		PowerShell:     n.PowerShellBinary,
		SystemProfiler: n.SystemProfilerBinary,
		Aplay:          n.AplayBinary,
		Arecord:        n.ArecordBinary,
		Pactl:          n.PactlBinary,
	}
}

// Observer receives the duration and outcome of each source attempt.
type Observer func(source string, elapsed time.Duration, err error)

// Enumerator runs native sources in chain order.
type Enumerator struct {
	settings Settings
	exec     Executor
	logger   *slog.Logger
	goos     string
	observe  Observer
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithExecutor overrides command execution.
func WithExecutor(exec Executor) Option {
	return func(e *Enumerator) {
		if exec != nil {
			e.exec = exec
		}
	}
}

// WithLogger attaches a logger for source warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enumerator) {
		e.logger = logging.NewComponentLogger(logger, "native")
	}
}

// WithGOOS overrides the platform used to pick the auto chain.
func WithGOOS(goos string) Option {
	return func(e *Enumerator) {
		if goos = strings.TrimSpace(goos); goos != "" {
			e.goos = goos
		}
	}
}

// WithObserver registers a callback invoked after every source attempt.
func WithObserver(observe Observer) Option {
	return func(e *Enumerator) {
		e.observe = observe
	}
}

// New constructs an Enumerator for the given configuration.
func New(cfg *config.Config, opts ...Option) *Enumerator {
	return NewWithSettings(SettingsFromConfig(cfg), opts...)
}

// NewWithSettings constructs an Enumerator from explicit settings.
func NewWithSettings(settings Settings, opts ...Option) *Enumerator {
	if settings.Direction == "" {
		settings.Direction = device.DirectionOutput
	}
	if strings.TrimSpace(settings.Source) == "" {
		settings.Source = config.SourceAuto
	}
	e := &Enumerator{
		settings: settings,
		exec:     commandExecutor{},
		logger:   logging.NewComponentLogger(nil, "native"),
		goos:     runtime.GOOS,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Settings returns the effective settings.
func (e *Enumerator) Settings() Settings {
	return e.settings
}

// Chain resolves the ordered list of sources Enumerate will try.
func (e *Enumerator) Chain() ([]string, error) {
	source := strings.ToLower(strings.TrimSpace(e.settings.Source))
	switch source {
	case config.SourceAuto:
		var chain []string
		if strings.TrimSpace(e.settings.HelperPath) != "" {
			chain = append(chain, config.SourceHelper)
		}
		chain = append(chain, PlatformChain(e.goos)...)
		if len(chain) == 0 {
			return nil, services.Wrap(services.ErrConfiguration, "native", "resolve sources",
				fmt.Sprintf("no native source available for %s; configure native.helper_path", e.goos), nil)
		}
		return chain, nil
	case config.SourceHelper:
		if strings.TrimSpace(e.settings.HelperPath) == "" {
			return nil, services.Wrap(services.ErrConfiguration, "native", "resolve sources", "helper source requires native.helper_path", nil)
		}
		return []string{source}, nil
	case config.SourceSystemProfiler, config.SourceEndpoints, config.SourceWMI, config.SourceALSA, config.SourcePulse:
		return []string{source}, nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "native", "resolve sources", fmt.Sprintf("unknown source %q", source), nil)
	}
}

// PlatformChain returns the built-in source order for goos.
func PlatformChain(goos string) []string {
	switch goos {
	case "linux":
		return []string{config.SourceALSA, config.SourcePulse}
	case "windows":
		return []string{config.SourceEndpoints, config.SourceWMI}
	case "darwin":
		return []string{config.SourceSystemProfiler}
	default:
		return nil
	}
}

// Enumerate runs the source chain and returns the first non-empty device list.
// Parse failures and empty lists are reported as warnings; an error is
// returned only when every source failed to execute.
func (e *Enumerator) Enumerate(ctx context.Context) (Result, error) {
	chain, err := e.Chain()
	if err != nil {
		return Result{}, err
	}
	result := Result{
		Platform:  e.goos,
		Direction: e.settings.Direction,
		Devices:   []device.Device{},
	}
	var toolErrs []error
	ranAny := false
	for _, source := range chain {
		if err := ctx.Err(); err != nil {
			return result, services.Wrap(services.ErrTimeout, "native", "enumerate", "cancelled", err)
		}
		result.Tried = append(result.Tried, source)
		logger := e.logger.With(logging.String(logging.FieldSource, source))

		start := time.Now()
		devices, err := e.runSource(ctx, source)
		if e.observe != nil {
			e.observe(source, time.Since(start), err)
		}
		if err != nil {
			if errors.Is(err, services.ErrInvalidInput) {
				ranAny = true
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", source, err))
				logging.WarnWithContext(logger, "native source output unreadable", "native_parse_failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "run the source tool manually to inspect its output"),
					logging.String(logging.FieldImpact, "trying next source"),
				)
				continue
			}
			toolErrs = append(toolErrs, err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", source, err))
			logging.WarnWithContext(logger, "native source failed", "native_source_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "run audiomatch deps to check tool availability"),
				logging.String(logging.FieldImpact, "trying next source"),
			)
			continue
		}
		ranAny = true
		devices = e.finalize(source, devices)
		if len(devices) == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: no %s devices reported", source, e.settings.Direction))
			logger.Debug("native source reported no devices")
			continue
		}
		result.Source = source
		result.Devices = devices
		logger.Debug("native devices enumerated",
			logging.Int("device_count", len(devices)),
			logging.String("direction", string(e.settings.Direction)),
		)
		return result, nil
	}
	if !ranAny && len(toolErrs) > 0 {
		return result, services.Wrap(services.ErrExternalTool, "native", "enumerate",
			"no native source could run", errors.Join(toolErrs...))
	}
	return result, nil
}

func (e *Enumerator) runSource(ctx context.Context, source string) ([]device.Device, error) {
	dir := e.settings.Direction
	switch source {
	case config.SourceHelper:
		return e.enumerateHelper(ctx, dir)
	case config.SourceSystemProfiler:
		return e.enumerateSystemProfiler(ctx, dir)
	case config.SourceEndpoints:
		return e.enumerateEndpoints(ctx, dir)
	case config.SourceWMI:
		return e.enumerateWMI(ctx, dir)
	case config.SourceALSA:
		return e.enumerateALSA(ctx, dir)
	case config.SourcePulse:
		return e.enumeratePulse(ctx, dir)
	default:
		return nil, services.Wrap(services.ErrConfiguration, "native", "run source", fmt.Sprintf("unknown source %q", source), nil)
	}
}

// finalize stamps provenance, synthesizes missing IDs, and classifies.
func (e *Enumerator) finalize(source string, devices []device.Device) []device.Device {
	out := make([]device.Device, 0, len(devices))
	for _, d := range devices {
		if strings.TrimSpace(d.Name) == "" {
			continue
		}
		d.Source = source
		d.Platform = e.goos
		if d.Direction == "" {
			d.Direction = e.settings.Direction
		}
		if strings.TrimSpace(d.ID) == "" {
			d.ID = source + ":" + textutil.SanitizeToken(d.Name)
		}
		out = append(out, device.ClassifyDevice(d))
	}
	return out
}

func parseError(source, op string, err error) error {
	return services.Wrap(services.ErrInvalidInput, source, op, "unexpected output", err)
}
