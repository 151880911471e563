package native

import (
	"bytes"
	"context"

	"audiomatch/internal/config"
	"audiomatch/internal/device"
)

func (e *Enumerator) enumerateHelper(ctx context.Context, dir device.Direction) ([]device.Device, error) {
	out, err := e.run(ctx, config.SourceHelper, e.settings.HelperPath, e.settings.HelperArgs...)
	if err != nil {
		return nil, err
	}
	return ParseHelper(out, dir)
}

// ParseHelper decodes helper output (an array of device records or an object
// with a "devices" array). Records that declare the other direction are
// dropped; records without a direction are kept.
func ParseHelper(data []byte, dir device.Direction) ([]device.Device, error) {
	records, err := device.DecodeNative(bytes.NewReader(data))
	if err != nil {
		return nil, parseError(config.SourceHelper, "decode", err)
	}
	devices := make([]device.Device, 0, len(records))
	for _, d := range records {
		if d.Direction != "" && d.Direction != dir {
			continue
		}
		d.Direction = dir
		devices = append(devices, d)
	}
	return devices, nil
}
