//go:build linux

package hotplug

import (
	"testing"

	"github.com/pilebones/go-udev/netlink"
)

func TestBuildSoundMatcher(t *testing.T) {
	matcher := buildSoundMatcher()
	if matcher == nil {
		t.Fatal("expected non-nil matcher")
	}

	for _, action := range []netlink.KObjAction{netlink.ADD, netlink.REMOVE, netlink.CHANGE} {
		event := netlink.UEvent{Action: action, Env: map[string]string{"SUBSYSTEM": "sound"}}
		if !matcher.Evaluate(event) {
			t.Errorf("expected matcher to accept %s sound event", action)
		}
	}

	blockEvent := netlink.UEvent{Action: netlink.ADD, Env: map[string]string{"SUBSYSTEM": "block"}}
	if matcher.Evaluate(blockEvent) {
		t.Error("expected matcher to reject non-sound subsystem")
	}

	bindEvent := netlink.UEvent{Action: netlink.KObjAction("bind"), Env: map[string]string{"SUBSYSTEM": "sound"}}
	if matcher.Evaluate(bindEvent) {
		t.Error("expected matcher to reject bind action")
	}
}

func TestSoundDeviceName(t *testing.T) {
	cases := []struct {
		event netlink.UEvent
		want  string
	}{
		{netlink.UEvent{Env: map[string]string{"DEVNAME": "/dev/snd/controlC1"}}, "/dev/snd/controlC1"},
		{netlink.UEvent{Env: map[string]string{"DEVPATH": "/devices/pci0000:00/usb1/1-2/sound/card1"}}, "card1"},
		{netlink.UEvent{KObj: "/devices/virtual/sound/seq/"}, "seq"},
		{netlink.UEvent{Env: map[string]string{}}, ""},
	}
	for _, tc := range cases {
		if got := soundDeviceName(tc.event); got != tc.want {
			t.Errorf("soundDeviceName(%#v) = %q, want %q", tc.event, got, tc.want)
		}
	}
}

func TestUdevMonitorHandleEvent(t *testing.T) {
	var got []Trigger
	m := newUdevMonitor(nil, func(tr Trigger) { got = append(got, tr) })

	m.handleEvent(netlink.UEvent{Action: netlink.CHANGE, Env: map[string]string{}})
	if len(got) != 0 {
		t.Fatal("expected event without device path to be ignored")
	}

	m.handleEvent(netlink.UEvent{Action: netlink.ADD, Env: map[string]string{"DEVPATH": "/devices/x/sound/card2"}})
	if len(got) != 1 || got[0].Reason != ReasonUdev || got[0].Detail != "add card2" {
		t.Fatalf("unexpected triggers: %#v", got)
	}
}

func TestUdevMonitorNilAndStopSafety(t *testing.T) {
	var nilMonitor *udevMonitor
	nilMonitor.Stop()
	if nilMonitor.Running() {
		t.Fatal("expected nil monitor to report not running")
	}
	m := newUdevMonitor(nil, nil)
	m.Stop()
	m.Stop()
	if m.Running() {
		t.Fatal("expected unstarted monitor to report not running")
	}
}
