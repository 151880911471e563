package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"audiomatch/internal/config"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteJSON encodes value into a file named name under the config's base
// directory and returns the path.
func WriteJSON(t testing.TB, cfg *config.Config, name string, value any) string {
	t.Helper()

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	return WriteFile(t, filepath.Join(BaseDir(cfg), name), string(data))
}
