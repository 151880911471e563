package preflight

import (
	"strings"

	"audiomatch/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
// foreignPath overrides foreign.path when non-empty.
func RunAll(cfg *config.Config, foreignPath string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// State directory (always checked; holds the watch lock)
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))

	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	foreign := strings.TrimSpace(foreignPath)
	if foreign == "" {
		foreign = cfg.Foreign.Path
	}
	if foreign != "" && foreign != "-" {
		results = append(results, CheckReadableFile("Browser export", foreign))
	}

	if helper := strings.TrimSpace(cfg.Native.HelperPath); helper != "" {
		results = append(results, CheckExecutable("Native helper", helper))
	}

	if bind := strings.TrimSpace(cfg.Watch.MetricsBind); bind != "" {
		results = append(results, CheckListen("Metrics endpoint", bind))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
