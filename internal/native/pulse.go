package native

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"audiomatch/internal/config"
	"audiomatch/internal/device"
	"audiomatch/internal/logging"
)

type pulseEntry struct {
	name        string
	description string
	driver      string
	state       string
	sampleSpec  string
	monitorOf   string
	props       map[string]string
}

func (e *Enumerator) enumeratePulse(ctx context.Context, dir device.Direction) ([]device.Device, error) {
	kind := "sinks"
	if dir == device.DirectionInput {
		kind = "sources"
	}
	out, err := e.run(ctx, config.SourcePulse, e.settings.Pactl, "list", kind)
	if err != nil {
		return nil, err
	}
	devices, err := ParsePactl(out, dir)
	if err != nil {
		return nil, err
	}
	if def := e.pulseDefault(ctx, dir); def != "" {
		MarkDefault(devices, def)
	}
	return devices, nil
}

// pulseDefault asks pactl for the default sink or source. Older pactl
// releases lack get-default-*, so `pactl info` is the fallback. Failures only
// mean no device is flagged as default.
func (e *Enumerator) pulseDefault(ctx context.Context, dir device.Direction) string {
	sub, label := "get-default-sink", "Default Sink"
	if dir == device.DirectionInput {
		sub, label = "get-default-source", "Default Source"
	}
	if out, err := e.run(ctx, config.SourcePulse, e.settings.Pactl, sub); err == nil {
		if name := ParseDefault(out); name != "" {
			return name
		}
	}
	out, err := e.run(ctx, config.SourcePulse, e.settings.Pactl, "info")
	if err != nil {
		e.logger.Debug("pulse default lookup failed", logging.Error(err))
		return ""
	}
	return ParsePactlInfoDefault(out, label)
}

// ParseDefault returns the first non-empty line of `pactl get-default-sink`
// style output.
func ParseDefault(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// ParsePactlInfoDefault extracts a "Default Sink:" or "Default Source:" value
// from `pactl info` output.
func ParsePactlInfoDefault(data []byte, label string) string {
	prefix := label + ":"
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}

// MarkDefault flags the device whose ID equals name.
func MarkDefault(devices []device.Device, name string) {
	for i := range devices {
		if devices[i].ID == name {
			devices[i].IsDefault = true
		}
	}
}

// ParsePactl parses the long form of `pactl list sinks` or `pactl list
// sources`. Monitor sources are skipped when enumerating input.
func ParsePactl(data []byte, dir device.Direction) ([]device.Device, error) {
	entries, err := parsePulseEntries(data)
	if err != nil {
		return nil, err
	}

	devices := []device.Device{}
	for _, entry := range entries {
		if entry.name == "" {
			continue
		}
		if dir == device.DirectionInput && entry.isMonitor() {
			continue
		}
		name := entry.description
		if name == "" {
			name = entry.props["device.description"]
		}
		if name == "" {
			name = entry.name
		}
		channels, rate := splitSampleSpec(entry.sampleSpec)
		devices = append(devices, device.Device{
			Name:         name,
			Manufacturer: entry.props["device.vendor.name"],
			ID:           entry.name,
			Direction:    dir,
			Description:  entry.props["alsa.card_name"],
			Driver:       entry.driver,
			Status:       entry.state,
			Transport:    entry.props["device.bus"],
			Channels:     channels,
			SampleRate:   rate,
		})
	}
	return devices, nil
}

// PactlALSADevice returns the hw:N,M id backing the sink or source called
// name in `pactl list` output, or "" when it is not an ALSA device.
func PactlALSADevice(data []byte, name string) string {
	entries, err := parsePulseEntries(data)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.name != name {
			continue
		}
		card, dev := entry.props["alsa.card"], entry.props["alsa.device"]
		if card == "" || dev == "" {
			return ""
		}
		return "hw:" + card + "," + dev
	}
	return ""
}

func parsePulseEntries(data []byte) ([]*pulseEntry, error) {
	var entries []*pulseEntry
	var current *pulseEntry
	inProps := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if !strings.HasPrefix(raw, "\t") && !strings.HasPrefix(raw, " ") {
			if strings.HasPrefix(raw, "Sink #") || strings.HasPrefix(raw, "Source #") {
				current = &pulseEntry{props: map[string]string{}}
				entries = append(entries, current)
			} else {
				current = nil
			}
			inProps = false
			continue
		}
		if current == nil {
			continue
		}
		depth := indentDepth(raw)
		line := strings.TrimSpace(raw)
		if depth >= 2 {
			if !inProps {
				continue
			}
			if key, value, ok := strings.Cut(line, " = "); ok {
				current.props[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"`)
			}
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		inProps = false
		switch strings.TrimSpace(key) {
		case "Name":
			current.name = value
		case "Description":
			current.description = value
		case "Driver":
			current.driver = value
		case "State":
			current.state = value
		case "Sample Specification":
			current.sampleSpec = value
		case "Monitor of Sink":
			current.monitorOf = value
		case "Properties":
			inProps = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, parseError(config.SourcePulse, "scan", err)
	}
	return entries, nil
}

func (p *pulseEntry) isMonitor() bool {
	if p.monitorOf != "" && p.monitorOf != "n/a" {
		return true
	}
	return strings.HasSuffix(p.name, ".monitor") || p.props["device.class"] == "monitor"
}

// indentDepth counts leading tabs, treating a run of spaces as one level per
// four characters.
func indentDepth(line string) int {
	depth := 0
	spaces := 0
	for _, r := range line {
		switch r {
		case '\t':
			depth++
		case ' ':
			spaces++
			if spaces == 4 {
				depth++
				spaces = 0
			}
		default:
			return depth
		}
	}
	return depth
}

// splitSampleSpec turns "s16le 2ch 44100Hz" into ("2", "44100").
func splitSampleSpec(spec string) (string, string) {
	var channels, rate string
	for _, field := range strings.Fields(spec) {
		switch {
		case strings.HasSuffix(field, "ch"):
			channels = strings.TrimSuffix(field, "ch")
		case strings.HasSuffix(field, "Hz"):
			rate = strings.TrimSuffix(field, "Hz")
		}
	}
	return channels, rate
}
