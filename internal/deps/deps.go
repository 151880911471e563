package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"audiomatch/internal/config"
	"audiomatch/internal/native"
)

// Requirement defines an external tool a native source relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Source      string
	Optional    bool
}

// Status reports the availability of a tool.
type Status struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Source:      req.Source,
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// PlatformRequirements lists the tools needed by the sources that cfg selects
// on goos. With source "auto" the first platform source is required and the
// fallbacks are optional; a configured helper is listed first.
func PlatformRequirements(goos string, cfg *config.Config) []Requirement {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	n := cfg.Native
	source := strings.ToLower(strings.TrimSpace(n.Source))
	helper := strings.TrimSpace(n.HelperPath)

	var reqs []Requirement
	if helper != "" && (source == config.SourceAuto || source == config.SourceHelper) {
		reqs = append(reqs, Requirement{
			Name:        "Native helper",
			Command:     helper,
			Description: "Configured enumeration helper",
			Source:      config.SourceHelper,
			Optional:    source == config.SourceAuto,
		})
	}
	if source == config.SourceHelper {
		return reqs
	}

	var chain []string
	if source == config.SourceAuto {
		chain = native.PlatformChain(goos)
	} else {
		chain = []string{source}
	}
	for i, src := range chain {
		optional := i > 0 || len(reqs) > 0
		for _, req := range sourceRequirements(src, cfg) {
			req.Optional = optional
			reqs = append(reqs, req)
		}
	}
	return reqs
}

func sourceRequirements(source string, cfg *config.Config) []Requirement {
	n := cfg.Native
	switch source {
	case config.SourceSystemProfiler:
		return []Requirement{{Name: "system_profiler", Command: n.SystemProfilerBinary, Description: "CoreAudio device listing", Source: source}}
	case config.SourceEndpoints:
		return []Requirement{{Name: "PowerShell", Command: n.PowerShellBinary, Description: "Audio endpoint listing via Get-PnpDevice", Source: source}}
	case config.SourceWMI:
		return []Requirement{{Name: "PowerShell", Command: n.PowerShellBinary, Description: "Win32_SoundDevice listing via CIM", Source: source}}
	case config.SourceALSA:
		if n.Direction == config.DirectionInput {
			return []Requirement{{Name: "arecord", Command: n.ArecordBinary, Description: "ALSA capture device listing", Source: source}}
		}
		return []Requirement{{Name: "aplay", Command: n.AplayBinary, Description: "ALSA playback device listing", Source: source}}
	case config.SourcePulse:
		return []Requirement{{Name: "pactl", Command: n.PactlBinary, Description: "PulseAudio/PipeWire sink and source listing and the default device", Source: source}}
	default:
		return nil
	}
}
