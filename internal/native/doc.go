// Package native enumerates host audio devices by shelling out to platform
// tools and normalizing their output into device.Device records.
//
// Each source pairs a command with a pure Parse function so the parsers can be
// exercised with canned output. The Enumerator resolves a source chain from
// configuration ("auto" picks the helper when configured, then the platform
// chain), runs sources in order, and returns the first one that reports
// devices. A tool that fails moves the chain along; output that cannot be
// parsed becomes a warning rather than an error. Only when every tool in the
// chain fails does Enumerate return ErrExternalTool.
//
// Every record leaving this package has been through device.ClassifyDevice.
package native
