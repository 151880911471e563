package native

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"audiomatch/internal/config"
	"audiomatch/internal/device"
)

const (
	endpointsScript = "Get-PnpDevice -Class AudioEndpoint -PresentOnly -ErrorAction SilentlyContinue | " +
		"Select-Object FriendlyName, InstanceId, Status, Manufacturer | ConvertTo-Json -Compress"
	wmiScript = "Get-CimInstance -ClassName Win32_SoundDevice | " +
		"Select-Object Name, Manufacturer, DeviceID, Status | ConvertTo-Json -Compress"

	renderSegment  = "{0.0.0.00000000}"
	captureSegment = "{0.0.1.00000000}"
)

var captureHints = []string{"microphone", "mic", "input", "capture", "record"}

func errMissing(field string) error {
	return errors.New("missing " + field)
}

func (e *Enumerator) powershell(ctx context.Context, source, script string) ([]byte, error) {
	return e.run(ctx, source, e.settings.PowerShell, "-NoProfile", "-NonInteractive", "-Command", script)
}

// decodeObjectOrArray handles ConvertTo-Json, which emits a bare object for a
// single result, an array for several, and nothing at all for none.
func decodeObjectOrArray[T any](data []byte) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []T{}, nil
	}
	switch data[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	case '{':
		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, err
		}
		return []T{item}, nil
	default:
		return nil, errors.New("expected JSON object or array")
	}
}

type pnpEndpoint struct {
	FriendlyName string `json:"FriendlyName"`
	InstanceID   string `json:"InstanceId"`
	Status       string `json:"Status"`
	Manufacturer string `json:"Manufacturer"`
}

func (e *Enumerator) enumerateEndpoints(ctx context.Context, dir device.Direction) ([]device.Device, error) {
	out, err := e.powershell(ctx, config.SourceEndpoints, endpointsScript)
	if err != nil {
		return nil, err
	}
	return ParseEndpoints(out, dir)
}

// ParseEndpoints converts Get-PnpDevice AudioEndpoint JSON into devices for
// the requested direction. Endpoints whose instance id carries neither the
// render nor the capture segment are kept for output.
func ParseEndpoints(data []byte, dir device.Direction) ([]device.Device, error) {
	items, err := decodeObjectOrArray[pnpEndpoint](data)
	if err != nil {
		return nil, parseError(config.SourceEndpoints, "decode", err)
	}
	devices := []device.Device{}
	for _, item := range items {
		if endpointDirection(item.InstanceID) != dir {
			continue
		}
		devices = append(devices, device.Device{
			Name:         item.FriendlyName,
			Manufacturer: item.Manufacturer,
			ID:           strings.TrimSpace(item.InstanceID),
			Direction:    dir,
			Driver:       "MMDevice",
			Status:       item.Status,
		})
	}
	return devices, nil
}

func endpointDirection(instanceID string) device.Direction {
	switch {
	case strings.Contains(instanceID, renderSegment):
		return device.DirectionOutput
	case strings.Contains(instanceID, captureSegment):
		return device.DirectionInput
	default:
		return device.DirectionOutput
	}
}

type wmiSoundDevice struct {
	Name         string `json:"Name"`
	Manufacturer string `json:"Manufacturer"`
	DeviceID     string `json:"DeviceID"`
	Status       string `json:"Status"`
}

func (e *Enumerator) enumerateWMI(ctx context.Context, dir device.Direction) ([]device.Device, error) {
	out, err := e.powershell(ctx, config.SourceWMI, wmiScript)
	if err != nil {
		return nil, err
	}
	return ParseWMI(out, dir)
}

// ParseWMI converts Win32_SoundDevice JSON into devices. Sound devices are
// adapters rather than endpoints, so every adapter is reported for output and
// only those that look like capture hardware are reported for input.
func ParseWMI(data []byte, dir device.Direction) ([]device.Device, error) {
	items, err := decodeObjectOrArray[wmiSoundDevice](data)
	if err != nil {
		return nil, parseError(config.SourceWMI, "decode", err)
	}
	devices := []device.Device{}
	for _, item := range items {
		if dir == device.DirectionInput && !looksLikeCapture(item.Name+" "+item.DeviceID) {
			continue
		}
		devices = append(devices, device.Device{
			Name:         item.Name,
			Manufacturer: item.Manufacturer,
			ID:           strings.TrimSpace(item.DeviceID),
			Direction:    dir,
			Driver:       "WMI",
			Status:       item.Status,
		})
	}
	return devices, nil
}

func looksLikeCapture(text string) bool {
	lower := strings.ToLower(text)
	for _, hint := range captureHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
