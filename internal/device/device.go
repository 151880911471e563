package device

// DeviceType is the coarse physical category of an audio device.
type DeviceType string

const (
	TypeSpeaker    DeviceType = "speaker"
	TypeHeadphone  DeviceType = "headphone"
	TypeMicrophone DeviceType = "microphone"
	TypeUnknown    DeviceType = "unknown"
)

// Connectivity describes how a device is attached to the host.
type Connectivity string

const (
	ConnWired    Connectivity = "wired"
	ConnWireless Connectivity = "wireless"
	ConnUnknown  Connectivity = "unknown"
)

// Direction distinguishes playback from capture endpoints.
type Direction string

const (
	DirectionOutput Direction = "output"
	DirectionInput  Direction = "input"
)

// DefaultManufacturer is used when a supplier reports no manufacturer.
const DefaultManufacturer = "Unknown"

// Device is a native audio device reported by OS-level enumeration.
type Device struct {
	Name         string       `json:"name"`
	Manufacturer string       `json:"manufacturer,omitempty"`
	ID           string       `json:"id"`
	DeviceType   DeviceType   `json:"deviceType,omitempty"`
	Connectivity Connectivity `json:"connectivity,omitempty"`
	IsDefault    bool         `json:"isDefault,omitempty"`

	Direction   Direction `json:"direction,omitempty"`
	Source      string    `json:"source,omitempty"`
	Platform    string    `json:"platform,omitempty"`
	Description string    `json:"description,omitempty"`
	Driver      string    `json:"driver,omitempty"`
	Status      string    `json:"status,omitempty"`
	Transport   string    `json:"transport,omitempty"`
	Channels    string    `json:"channels,omitempty"`
	SampleRate  string    `json:"sampleRate,omitempty"`
}

// Foreign is a device reported by a browser-style enumeration API. Labels are
// empty until media permission is granted and device IDs are opaque tokens
// unrelated to native IDs.
type Foreign struct {
	Label    string `json:"label"`
	DeviceID string `json:"deviceId"`
	GroupID  string `json:"groupId"`
	Kind     string `json:"kind,omitempty"`
}

// Sentinel foreign device IDs that name a role rather than a device.
const (
	SentinelDefault        = "default"
	SentinelCommunications = "communications"
)

// IsSentinel reports whether id is one of the browser role sentinels.
func IsSentinel(id string) bool {
	return id == SentinelDefault || id == SentinelCommunications
}

// Classification is the output of Classify.
type Classification struct {
	DeviceType   DeviceType   `json:"deviceType"`
	Connectivity Connectivity `json:"connectivity"`
}
