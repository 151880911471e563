//go:build !linux

package hotplug

import (
	"log/slog"
	"time"
)

func newDeviceMonitor(interval time.Duration, logger *slog.Logger, emit Emitter) deviceMonitor {
	return newPoller(interval, logger, emit)
}
