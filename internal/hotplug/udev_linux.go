//go:build linux

package hotplug

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pilebones/go-udev/netlink"

	"audiomatch/internal/logging"
)

// udevMonitor listens for sound-subsystem uevents so device changes are seen
// without polling.
type udevMonitor struct {
	logger *slog.Logger
	emit   Emitter

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

func newUdevMonitor(logger *slog.Logger, emit Emitter) *udevMonitor {
	return &udevMonitor{
		logger: logging.NewComponentLogger(logger, "hotplug-udev"),
		emit:   emit,
	}
}

// Start connects to the udev netlink group. Connection failures are returned
// so the caller can fall back to polling.
func (m *udevMonitor) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return err
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	quit := m.quit
	go m.monitorLoop(ctx, quit)

	m.logger.Info("udev monitor started",
		logging.String(logging.FieldEventType, "udev_monitor_started"),
	)
	return nil
}

// Stop shuts down the netlink monitor.
func (m *udevMonitor) Stop() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.running = false

	m.logger.Info("udev monitor stopped",
		logging.String(logging.FieldEventType, "udev_monitor_stopped"),
	)
}

func (m *udevMonitor) Running() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *udevMonitor) Name() string { return "udev" }

func (m *udevMonitor) monitorLoop(ctx context.Context, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(queue, errs, buildSoundMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			m.handleEvent(uevent)
		case err := <-errs:
			logging.WarnWithContext(m.logger, "udev monitor error", "udev_monitor_error",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check kernel netlink subsystem"),
				logging.String(logging.FieldImpact, "device changes may be missed until the next trigger"),
			)
		}
	}
}

// buildSoundMatcher matches SUBSYSTEM=sound with ACTION=add|remove|change.
func buildSoundMatcher() netlink.Matcher {
	action := "add|remove|change"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "sound",
		},
	})
	return rules
}

func (m *udevMonitor) handleEvent(uevent netlink.UEvent) {
	name := soundDeviceName(uevent)
	if name == "" {
		m.logger.Debug("ignoring sound event without device path",
			logging.String("action", string(uevent.Action)),
			logging.String("kobj", uevent.KObj),
		)
		return
	}
	m.logger.Debug("sound device event",
		logging.String("action", string(uevent.Action)),
		logging.String("device", name),
	)
	if m.emit != nil {
		m.emit(Trigger{
			Reason: ReasonUdev,
			Detail: string(uevent.Action) + " " + name,
			At:     time.Now(),
		})
	}
}

// soundDeviceName prefers DEVNAME and falls back to the last DEVPATH element
// (e.g. card1 for /devices/.../sound/card1).
func soundDeviceName(uevent netlink.UEvent) string {
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		return devname
	}
	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		devpath = uevent.KObj
	}
	devpath = strings.TrimRight(devpath, "/")
	if devpath == "" {
		return ""
	}
	parts := strings.Split(devpath, "/")
	return parts[len(parts)-1]
}

func newDeviceMonitor(interval time.Duration, logger *slog.Logger, emit Emitter) deviceMonitor {
	return newUdevMonitor(logger, emit)
}
