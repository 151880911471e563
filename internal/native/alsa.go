package native

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"audiomatch/internal/config"
	"audiomatch/internal/device"
	"audiomatch/internal/logging"
)

var alsaCardPattern = regexp.MustCompile(`^card (\d+): (\S+) \[(.*?)\], device (\d+): (.*?) \[(.*?)\]`)

func (e *Enumerator) enumerateALSA(ctx context.Context, dir device.Direction) ([]device.Device, error) {
	binary := e.settings.Aplay
	if dir == device.DirectionInput {
		binary = e.settings.Arecord
	}
	out, err := e.run(ctx, config.SourceALSA, binary, "-l")
	if err != nil {
		return nil, err
	}
	devices, err := ParseALSA(out, dir)
	if err != nil {
		return nil, err
	}
	if len(devices) > 0 {
		e.markALSADefault(ctx, dir, devices)
	}
	return devices, nil
}

// markALSADefault flags the card PulseAudio or PipeWire routes to by
// default. ALSA has no notion of a default device, so without a sound server
// nothing is flagged.
func (e *Enumerator) markALSADefault(ctx context.Context, dir device.Direction, devices []device.Device) {
	if strings.TrimSpace(e.settings.Pactl) == "" {
		return
	}
	def := e.pulseDefault(ctx, dir)
	if def == "" {
		return
	}
	kind := "sinks"
	if dir == device.DirectionInput {
		kind = "sources"
	}
	out, err := e.run(ctx, config.SourcePulse, e.settings.Pactl, "list", kind)
	if err != nil {
		e.logger.Debug("alsa default lookup failed", logging.Error(err))
		return
	}
	if id := PactlALSADevice(out, def); id != "" {
		MarkDefault(devices, id)
	}
}

// ParseALSA parses `aplay -l` or `arecord -l` output. Each "card N: ... device
// M: ..." line becomes one device with id hw:N,M. Subdevice lines and headers
// are ignored; output with no card lines yields an empty list.
func ParseALSA(data []byte, dir device.Direction) ([]device.Device, error) {
	devices := []device.Device{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		m := alsaCardPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		card, cardID, cardLong := m[1], m[2], strings.TrimSpace(m[3])
		dev, devShort, devLong := m[4], strings.TrimSpace(m[5]), strings.TrimSpace(m[6])
		if devLong == "" {
			devLong = devShort
		}
		if cardLong == "" {
			cardLong = cardID
		}
		devices = append(devices, device.Device{
			Name:        cardLong + " - " + devLong,
			ID:          fmt.Sprintf("hw:%s,%s", card, dev),
			Direction:   dir,
			Description: cardID,
			Driver:      "ALSA",
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, parseError(config.SourceALSA, "scan", err)
	}
	return devices, nil
}
