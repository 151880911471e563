// Package hotplug tells the watch loop when the device picture may have
// changed: sound-subsystem udev events on Linux, a polling ticker elsewhere
// (or when netlink is unavailable), and writes to the foreign device export.
// Triggers are coalesced by a Debouncer before the handler runs.
package hotplug
