package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"audiomatch/internal/config"
	"audiomatch/internal/crossref"
	"audiomatch/internal/services"
	"audiomatch/internal/testsupport"
	"audiomatch/internal/workflow"
)

const helperDevices = `[
  {"name": "AirPods Pro", "manufacturer": "Apple", "id": "helper-airpods", "isDefault": true},
  {"name": "USB Audio CODEC", "id": "helper-usb"}
]`

func TestClassifyCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"classify", "AirPods", "Pro"}, "")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	requireContains(t, out, "AirPods Pro")
	requireContains(t, out, "headphone")
	requireContains(t, out, "wireless")
}

func TestClassifyCommandJSON(t *testing.T) {
	out, _, err := runCLI(t, []string{"classify", "--json", "--manufacturer", "Logitech", "Desk Speaker"}, "")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	var got classifyOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if got.DeviceType != "speaker" || got.Manufacturer != "Logitech" {
		t.Fatalf("unexpected classification %+v", got)
	}
}

func TestDevicesCommandUsesHelper(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithHelperOutput(helperDevices))
	configPath := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, []string{"devices"}, configPath)
	if err != nil {
		t.Fatalf("devices: %v", err)
	}
	requireContains(t, out, "helper")
	requireContains(t, out, "AirPods Pro")
	requireContains(t, out, "wireless")
	requireContains(t, out, "USB Audio CODEC")
}

func TestMatchCommandWithFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	nativePath := testsupport.WriteFile(t, filepath.Join(base, "native.json"), helperDevices)
	foreignPath := testsupport.WriteFile(t, filepath.Join(base, "foreign.json"), `{"devices": [
  {"label": "AirPods Pro", "deviceId": "f-airpods", "groupId": "g1", "kind": "audiooutput"},
  {"label": "Studio Display Speakers", "deviceId": "f-display", "groupId": "g2", "kind": "audiooutput"},
  {"label": "Default", "deviceId": "communications", "groupId": "g1", "kind": "audiooutput"}
]}`)
	configPath := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, []string{"match", "--native", nativePath, "--foreign", foreignPath}, configPath)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	requireContains(t, out, "== Summary ==")
	requireContains(t, out, "== Matches ==")
	requireContains(t, out, "Exact Name Match")
	requireContains(t, out, "Studio Display Speakers")

	out, _, err = runCLI(t, []string{"match", "--json", "--native", nativePath, "--foreign", foreignPath}, configPath)
	if err != nil {
		t.Fatalf("match --json: %v", err)
	}
	var outcome workflow.Outcome
	if err := json.Unmarshal([]byte(out), &outcome); err != nil {
		t.Fatalf("decode outcome: %v\n%s", err, out)
	}
	if outcome.Summary.ForeignTotal != 2 {
		t.Fatalf("expected the communications sentinel to be excluded, got %d foreign", outcome.Summary.ForeignTotal)
	}
	found := false
	for _, m := range outcome.Report.Matches {
		if m.Native.ID == "helper-airpods" && m.Foreign.DeviceID == "f-airpods" {
			found = true
		}
	}
	if !found {
		t.Fatalf("AirPods not paired: %+v", outcome.Report.Matches)
	}
}

func TestMatchCommandReadsForeignFromStdin(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	nativePath := testsupport.WriteFile(t, filepath.Join(testsupport.BaseDir(cfg), "native.json"), helperDevices)
	configPath := writeTestConfig(t, cfg)

	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(bytes.NewBufferString(`[{"label": "USB Audio CODEC", "deviceId": "f-usb", "groupId": "g", "kind": "audiooutput"}]`))
	cmd.SetArgs([]string{"--config", configPath, "match", "--json", "--native", nativePath, "--foreign", "-"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("match: %v", err)
	}
	var outcome workflow.Outcome
	if err := json.Unmarshal(stdout.Bytes(), &outcome); err != nil {
		t.Fatalf("decode outcome: %v", err)
	}
	if outcome.Summary.Matched != 1 {
		t.Fatalf("matched = %d, want 1", outcome.Summary.Matched)
	}
}

func TestMatchCommandRequiresForeign(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	configPath := writeTestConfig(t, cfg)

	_, _, err := runCLI(t, []string{"match"}, configPath)
	if err == nil {
		t.Fatal("expected error without --foreign")
	}
	if code := services.ExitCode(err); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestMatchCommandRejectsUnknownAssignment(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	configPath := writeTestConfig(t, cfg)

	_, _, err := runCLI(t, []string{"match", "--foreign", "x.json", "--assignment", "random"}, configPath)
	if err == nil {
		t.Fatal("expected error for unknown assignment")
	}
	if code := services.ExitCode(err); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestMatchCommandDisableSkipsStrategies(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	nativePath := testsupport.WriteFile(t, filepath.Join(base, "native.json"), helperDevices)
	foreignPath := testsupport.WriteFile(t, filepath.Join(base, "foreign.json"),
		`[{"label": "AirPods Pro", "deviceId": "f-airpods", "groupId": "g1", "kind": "audiooutput"}]`)
	configPath := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, []string{"match", "--json", "--native", nativePath, "--foreign", foreignPath,
		"--disable", "name-exact,name-substring"}, configPath)
	if err != nil {
		t.Fatalf("match --disable: %v", err)
	}
	var outcome workflow.Outcome
	if err := json.Unmarshal([]byte(out), &outcome); err != nil {
		t.Fatalf("decode outcome: %v\n%s", err, out)
	}
	if len(outcome.Report.Matches) != 1 {
		t.Fatalf("expected one match, got %+v", outcome.Report.Matches)
	}
	if m := outcome.Report.Matches[0]; m.Native.ID != "helper-airpods" || m.MatchType != crossref.MatchKeywords {
		t.Fatalf("expected keyword pairing once exact strategies are off, got %+v", m)
	}

	_, _, err = runCLI(t, []string{"match", "--foreign", foreignPath, "--disable", "telepathy"}, configPath)
	if code := services.ExitCode(err); err == nil || code != 2 {
		t.Fatalf("expected invalid input for unknown strategy, got %v (code %d)", err, code)
	}
}

func TestMatchHelpListsStrategies(t *testing.T) {
	out, _, err := runCLI(t, []string{"match", "--help"}, "")
	if err != nil {
		t.Fatalf("match --help: %v", err)
	}
	for _, strategy := range crossref.Strategies() {
		requireContains(t, out, string(strategy))
	}
}

func TestDepsCommandReportsStubbedTool(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithSource(config.SourceALSA),
		testsupport.WithStubbedBinaries("aplay"),
	)
	configPath := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, []string{"deps"}, configPath)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	requireContains(t, out, "[OK] aplay (alsa)")
}

func TestConfigInitAndValidate(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "audiomatch", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err == nil {
		t.Fatal("expected error when config exists")
	}

	t.Setenv("HOME", dir)
	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestConfigValidateRejectsUnknownKeys(t *testing.T) {
	path := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "bad.toml"), "[native]\nsoruce = \"alsa\"\n")
	_, _, err := runCLI(t, []string{"config", "validate"}, path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if code := services.ExitCode(err); code != 3 {
		t.Fatalf("exit code = %d, want 3", code)
	}
}
