package device

import (
	"strings"

	"audiomatch/internal/textutil"
)

// Classify infers the device type and connectivity from a name and
// manufacturer. It never fails; unrecognised input yields unknown/unknown.
func Classify(name, manufacturer string) Classification {
	// Trailing space lets suffix terms like "bt " match at the end.
	haystack := textutil.Fold(name+" "+manufacturer) + " "
	return Classification{
		DeviceType:   classifyType(haystack),
		Connectivity: classifyConnectivity(haystack),
	}
}

// ClassifyDevice returns a copy of d with Manufacturer defaulted and the
// classification fields populated. Transport hints only refine an unknown
// connectivity.
func ClassifyDevice(d Device) Device {
	d.Name = strings.TrimSpace(d.Name)
	d.Manufacturer = strings.TrimSpace(d.Manufacturer)
	if d.Manufacturer == "" {
		d.Manufacturer = DefaultManufacturer
	}
	c := Classify(d.Name, d.Manufacturer)
	if c.Connectivity == ConnUnknown {
		c.Connectivity = connectivityFromTransport(d.Transport, d.ID)
	}
	d.DeviceType = c.DeviceType
	d.Connectivity = c.Connectivity
	return d
}

func classifyType(haystack string) DeviceType {
	switch {
	case containsAny(haystack, headphoneWords), containsAny(haystack, headphoneBrands):
		return TypeHeadphone
	case containsAny(haystack, speakerWords):
		return TypeSpeaker
	case containsAny(haystack, microphoneWords):
		return TypeMicrophone
	case containsAny(haystack, integratedAudioWords):
		return TypeSpeaker
	default:
		return TypeUnknown
	}
}

func classifyConnectivity(haystack string) Connectivity {
	switch {
	case containsAny(haystack, wirelessWords):
		return ConnWireless
	case containsAny(haystack, wiredWords), containsAny(haystack, integratedAudioWords):
		return ConnWired
	default:
		return ConnUnknown
	}
}

// connectivityFromTransport maps supplier transport strings such as
// "coreaudio_device_type_bluetooth" or Windows BTHENUM instance ids.
func connectivityFromTransport(transport, id string) Connectivity {
	hint := textutil.Fold(transport + " " + id)
	if strings.TrimSpace(hint) == "" {
		return ConnUnknown
	}
	switch {
	case containsAny(hint, wirelessTransports):
		return ConnWireless
	case containsAny(hint, wiredTransports):
		return ConnWired
	default:
		return ConnUnknown
	}
}

func containsAny(haystack string, words []string) bool {
	for _, w := range words {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}
