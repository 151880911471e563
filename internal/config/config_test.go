package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"audiomatch/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("AUDIOMATCH_HELPER", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if runtime.GOOS != "windows" {
		wantState := filepath.Join(tempHome, ".local", "state", "audiomatch")
		if cfg.Paths.StateDir != wantState {
			t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
		}
		if cfg.LockPath() != filepath.Join(wantState, "audiomatch.lock") {
			t.Fatalf("unexpected lock path: %q", cfg.LockPath())
		}
	}
	if cfg.Paths.LogDir != "" {
		t.Fatalf("expected log dir unset by default, got %q", cfg.Paths.LogDir)
	}
	if cfg.Native.Source != config.SourceAuto {
		t.Fatalf("unexpected native source: %q", cfg.Native.Source)
	}
	if cfg.Native.Direction != config.DirectionOutput {
		t.Fatalf("unexpected direction: %q", cfg.Native.Direction)
	}
	if cfg.NativeTimeout() != 10*time.Second {
		t.Fatalf("unexpected native timeout: %s", cfg.NativeTimeout())
	}
	if cfg.Foreign.Kind != config.KindAudioOutput {
		t.Fatalf("unexpected foreign kind: %q", cfg.Foreign.Kind)
	}
	if len(cfg.Foreign.ExcludeIDs) != 1 || cfg.Foreign.ExcludeIDs[0] != "communications" {
		t.Fatalf("unexpected exclude ids: %v", cfg.Foreign.ExcludeIDs)
	}
	if cfg.Matching.Assignment != config.AssignmentGreedy {
		t.Fatalf("unexpected assignment: %q", cfg.Matching.Assignment)
	}
	if cfg.Matching.PositionFallback {
		t.Fatal("expected position fallback disabled by default")
	}
	if cfg.Matching.MinIDContainment != 8 {
		t.Fatalf("unexpected min id containment: %d", cfg.Matching.MinIDContainment)
	}
	if cfg.DebounceInterval() != 750*time.Millisecond {
		t.Fatalf("unexpected debounce: %s", cfg.DebounceInterval())
	}
	if cfg.PollInterval() != 15*time.Second {
		t.Fatalf("unexpected poll interval: %s", cfg.PollInterval())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("AUDIOMATCH_HELPER", "")

	configPath := filepath.Join(t.TempDir(), "audiomatch.toml")
	contents := `
[paths]
state_dir = "~/state"
log_dir = "~/logs"

[logging]
format = "JSON"
level = "Debug"

[native]
source = "ALSA"
direction = "input"
timeout_seconds = 3
aplay_binary = " /opt/alsa/aplay "

[foreign]
path = "~/export/devices.json"
kind = "audioinput"
exclude_ids = ["communications", " communications ", "abc"]

[matching]
assignment = "optimal"
position_fallback = true
min_id_containment = 12
disabled_strategies = ["Fuzzy-Similarity", "brand-match", "brand-match"]

[watch]
debounce_ms = 100
poll_interval_seconds = 5
metrics_bind = " 127.0.0.1:9464 "
`
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config to be found at %q, got %q exists=%v", configPath, resolved, exists)
	}
	if runtime.GOOS != "windows" {
		if cfg.Paths.StateDir != filepath.Join(tempHome, "state") {
			t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
		}
		if cfg.Paths.LogDir != filepath.Join(tempHome, "logs") {
			t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
		}
		if cfg.Foreign.Path != filepath.Join(tempHome, "export", "devices.json") {
			t.Fatalf("unexpected foreign path: %q", cfg.Foreign.Path)
		}
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging normalized to lowercase, got %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}
	if cfg.Native.Source != config.SourceALSA || cfg.Native.Direction != config.DirectionInput {
		t.Fatalf("unexpected native settings: %+v", cfg.Native)
	}
	if cfg.Native.AplayBinary != "/opt/alsa/aplay" {
		t.Fatalf("expected trimmed aplay binary, got %q", cfg.Native.AplayBinary)
	}
	if got := cfg.Foreign.ExcludeIDs; len(got) != 2 || got[0] != "communications" || got[1] != "abc" {
		t.Fatalf("unexpected exclude ids: %v", got)
	}
	if got := cfg.Matching.DisabledStrategies; len(got) != 2 || got[0] != "fuzzy-similarity" || got[1] != "brand-match" {
		t.Fatalf("unexpected disabled strategies: %v", got)
	}
	if cfg.Matching.Assignment != config.AssignmentOptimal || !cfg.Matching.PositionFallback || cfg.Matching.MinIDContainment != 12 {
		t.Fatalf("unexpected matching settings: %+v", cfg.Matching)
	}
	if cfg.Watch.MetricsBind != "127.0.0.1:9464" {
		t.Fatalf("expected trimmed metrics bind, got %q", cfg.Watch.MetricsBind)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "audiomatch.toml")
	if err := os.WriteFile(configPath, []byte("[native]\nsorce = \"alsa\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestHelperPathFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AUDIOMATCH_HELPER", "audio-helper")

	configPath := filepath.Join(t.TempDir(), "audiomatch.toml")
	if err := os.WriteFile(configPath, []byte("[native]\nsource = \"helper\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Native.HelperPath != "audio-helper" {
		t.Fatalf("expected helper from env, got %q", cfg.Native.HelperPath)
	}
}

func TestConfigFileHelperWinsOverEnv(t *testing.T) {
	t.Setenv("AUDIOMATCH_HELPER", "from-env")
	configPath := filepath.Join(t.TempDir(), "audiomatch.toml")
	if err := os.WriteFile(configPath, []byte("[native]\nhelper_path = \"from-file\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Native.HelperPath != "from-file" {
		t.Fatalf("expected helper from file, got %q", cfg.Native.HelperPath)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[matching]") {
		t.Fatalf("sample config missing matching section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Native.Source != config.SourceAuto {
		t.Fatalf("unexpected sample native source: %q", cfg.Native.Source)
	}
	if !strings.Contains(cfg.Paths.StateDir, "audiomatch") {
		t.Fatalf("expected state dir to contain audiomatch, got %q", cfg.Paths.StateDir)
	}
}

func TestSampleConfigLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AUDIOMATCH_HELPER", "")
	path := filepath.Join(t.TempDir(), "audiomatch.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }},
		{"native source", func(c *config.Config) { c.Native.Source = "coreaudio" }},
		{"helper without path", func(c *config.Config) { c.Native.Source = config.SourceHelper; c.Native.HelperPath = "" }},
		{"direction", func(c *config.Config) { c.Native.Direction = "both" }},
		{"timeout", func(c *config.Config) { c.Native.TimeoutSeconds = 3600 }},
		{"foreign kind", func(c *config.Config) { c.Foreign.Kind = "videoinput" }},
		{"assignment", func(c *config.Config) { c.Matching.Assignment = "random" }},
		{"debounce", func(c *config.Config) { c.Watch.DebounceMS = -1 }},
		{"poll interval", func(c *config.Config) { c.Watch.PollIntervalSeconds = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}
