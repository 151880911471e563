package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"audiomatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = ""
	cfgVal.Watch.DebounceMS = 10

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSource pins the native source on the test config.
func WithSource(source string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Native.Source = source
	}
}

// WithLogDir enables file logging under the temp directory.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}

// WithHelperOutput installs a helper script that prints output and selects
// the helper source.
func WithHelperOutput(output string) ConfigOption {
	return func(b *configBuilder) {
		path := WriteStubBinary(b.t, filepath.Join(b.baseDir, "bin"), "audio-helper", output)
		b.cfg.Native.Source = config.SourceHelper
		b.cfg.Native.HelperPath = path
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the Linux audio tools are
// stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"aplay", "arecord", "pactl"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		for _, name := range names {
			WriteStubBinary(b.t, binDir, name, "")
		}
		PrependPath(b.t, binDir)
	}
}

// WriteStubBinary writes an executable shell script named name into dir that
// prints output and exits 0. Tests using it are skipped on Windows.
func WriteStubBinary(t testing.TB, dir, name, output string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	script := "#!/bin/sh\n"
	if output != "" {
		script += "cat <<'AUDIOMATCH_EOF'\n" + output + "\nAUDIOMATCH_EOF\n"
	}
	script += "exit 0\n"
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

// PrependPath puts dir at the front of PATH for the duration of the test.
func PrependPath(t testing.TB, dir string) {
	t.Helper()
	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", dir+string(os.PathListSeparator)+oldPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
