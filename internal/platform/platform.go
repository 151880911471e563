// Package platform describes the host the native enumeration runs on.
package platform

import (
	"runtime"
	"strings"
)

// Info identifies the host operating system.
type Info struct {
	OS      string `json:"os"`
	Arch    string `json:"arch"`
	Version string `json:"version"`
}

// Describe reports the running OS, architecture, and kernel or OS version.
// Version is "unknown" when the host does not expose it.
func Describe() Info {
	version := strings.TrimSpace(osVersion())
	if version == "" {
		version = "unknown"
	}
	return Info{
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
		Version: version,
	}
}

// String renders the info as "linux/amd64 6.8.0".
func (i Info) String() string {
	return i.OS + "/" + i.Arch + " " + i.Version
}
