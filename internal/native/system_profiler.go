package native

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"audiomatch/internal/config"
	"audiomatch/internal/device"
	"audiomatch/internal/textutil"
)

const (
	coreAudioYes             = "spaudio_yes"
	coreAudioTransportPrefix = "coreaudio_device_type_"
)

// flexString accepts JSON strings and numbers; system_profiler emits either
// depending on the macOS release.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (f flexString) count() int {
	n, err := strconv.Atoi(strings.TrimSpace(string(f)))
	if err != nil {
		return 0
	}
	return n
}

type spAudioItem struct {
	Name          string     `json:"_name"`
	Manufacturer  string     `json:"coreaudio_device_manufacturer"`
	DefaultOutput string     `json:"coreaudio_default_audio_output_device"`
	DefaultInput  string     `json:"coreaudio_default_audio_input_device"`
	Output        flexString `json:"coreaudio_device_output"`
	Input         flexString `json:"coreaudio_device_input"`
	SampleRate    flexString `json:"coreaudio_device_srate"`
	Transport     string     `json:"coreaudio_device_transport"`
}

type spAudioPayload struct {
	Sections *[]struct {
		Items []spAudioItem `json:"_items"`
	} `json:"SPAudioDataType"`
}

func (e *Enumerator) enumerateSystemProfiler(ctx context.Context, dir device.Direction) ([]device.Device, error) {
	out, err := e.run(ctx, config.SourceSystemProfiler, e.settings.SystemProfiler, "SPAudioDataType", "-json")
	if err != nil {
		return nil, err
	}
	return ParseSystemProfiler(out, dir)
}

// ParseSystemProfiler extracts devices from `system_profiler SPAudioDataType
// -json`. Only devices with channels in the requested direction are kept.
func ParseSystemProfiler(data []byte, dir device.Direction) ([]device.Device, error) {
	var payload spAudioPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, parseError(config.SourceSystemProfiler, "decode", err)
	}
	if payload.Sections == nil {
		return nil, parseError(config.SourceSystemProfiler, "decode", errMissing("SPAudioDataType"))
	}
	devices := []device.Device{}
	for _, section := range *payload.Sections {
		for _, item := range section.Items {
			name := strings.TrimSpace(item.Name)
			if name == "" {
				continue
			}
			channels := item.Output
			isDefault := item.DefaultOutput == coreAudioYes
			if dir == device.DirectionInput {
				channels = item.Input
				isDefault = item.DefaultInput == coreAudioYes
			}
			if channels.count() <= 0 {
				continue
			}
			devices = append(devices, device.Device{
				Name:         name,
				Manufacturer: item.Manufacturer,
				ID:           "coreaudio:" + textutil.SanitizeToken(name),
				IsDefault:    isDefault,
				Direction:    dir,
				Driver:       "CoreAudio",
				Transport:    strings.TrimPrefix(strings.TrimSpace(item.Transport), coreAudioTransportPrefix),
				Channels:     string(channels),
				SampleRate:   string(item.SampleRate),
			})
		}
	}
	return devices, nil
}
