package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains state and log directories.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Native controls OS-level device enumeration.
type Native struct {
	Source               string   `toml:"source"`
	Direction            string   `toml:"direction"`
	TimeoutSeconds       int      `toml:"timeout_seconds"`
	HelperPath           string   `toml:"helper_path"`
	HelperArgs           []string `toml:"helper_args"`
	PowerShellBinary     string   `toml:"powershell_binary"`
	SystemProfilerBinary string   `toml:"system_profiler_binary"`
	AplayBinary          string   `toml:"aplay_binary"`
	ArecordBinary        string   `toml:"arecord_binary"`
	PactlBinary          string   `toml:"pactl_binary"`
}

// Foreign controls loading of the browser-style device export.
type Foreign struct {
	Path       string   `toml:"path"`
	Kind       string   `toml:"kind"`
	ExcludeIDs []string `toml:"exclude_ids"`
}

// Matching tunes the cross-reference matcher.
type Matching struct {
	Assignment         string   `toml:"assignment"`
	PositionFallback   bool     `toml:"position_fallback"`
	MinIDContainment   int      `toml:"min_id_containment"`
	DisabledStrategies []string `toml:"disabled_strategies"`
}

// Watch configures the long-running rematch loop.
type Watch struct {
	DebounceMS          int    `toml:"debounce_ms"`
	PollIntervalSeconds int    `toml:"poll_interval_seconds"`
	MetricsBind         string `toml:"metrics_bind"`
}

// Config encapsulates all configuration values for audiomatch.
//
// Configuration sections by subsystem:
//   - Paths: state (lock file) and log directories
//   - Logging: log format and level
//   - Native: enumeration source, direction, and tool binaries
//   - Foreign: browser device export location and filters
//   - Matching: assignment mode and strategy toggles
//   - Watch: hotplug debounce, polling, and metrics endpoint
type Config struct {
	Paths    Paths    `toml:"paths"`
	Logging  Logging  `toml:"logging"`
	Native   Native   `toml:"native"`
	Foreign  Foreign  `toml:"foreign"`
	Matching Matching `toml:"matching"`
	Watch    Watch    `toml:"watch"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath returns the single-instance lock file used by the watch loop.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "audiomatch.lock")
}

// NativeTimeout returns the per-command timeout for enumeration tools.
func (c *Config) NativeTimeout() time.Duration {
	return time.Duration(c.Native.TimeoutSeconds) * time.Second
}

// DebounceInterval returns the hotplug debounce window.
func (c *Config) DebounceInterval() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// PollInterval returns the polling period used when no hotplug source exists.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Watch.PollIntervalSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// SampleConfig returns the embedded sample configuration text.
func SampleConfig() string {
	return sampleConfig
}
