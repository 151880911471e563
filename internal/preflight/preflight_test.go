package preflight

import (
	"net"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"audiomatch/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckReadableFile(t *testing.T) {
	f := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "devices.json"), "[]")
	if result := CheckReadableFile("export", f); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result := CheckReadableFile("export", filepath.Dir(f)); result.Passed {
		t.Fatal("expected failure for directory")
	}
}

func TestCheckExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute bits are not meaningful on windows")
	}
	dir := t.TempDir()
	script := testsupport.WriteStubBinary(t, dir, "helper", "[]")
	if result := CheckExecutable("helper", script); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	plain := testsupport.WriteFile(t, filepath.Join(dir, "plain"), "x")
	if os.Geteuid() != 0 {
		if result := CheckExecutable("helper", plain); result.Passed {
			t.Fatal("expected failure for non-executable file")
		}
	}
}

func TestCheckListen(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("listen unavailable: %v", err)
	}
	defer ln.Close()

	if result := CheckListen("metrics", ln.Addr().String()); result.Passed {
		t.Fatal("expected failure for a bound address")
	}
	if result := CheckListen("metrics", "127.0.0.1:0"); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestRunAllSkipsUnsetChecks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	results := RunAll(cfg, "")
	if len(results) != 1 || results[0].Name != "State directory" {
		t.Fatalf("expected only the state directory check, got %+v", results)
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}

	results = RunAll(cfg, filepath.Join(testsupport.BaseDir(cfg), "missing.json"))
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "Browser export" {
		t.Fatalf("expected browser export failure, got %+v", failed)
	}
}
