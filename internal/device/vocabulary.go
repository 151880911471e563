package device

// Vocabularies are ordered so that iteration is deterministic. The slices are
// unexported and handed out as copies.
var (
	headphoneWords = []string{"headphone", "headset", "earbud", "earphone"}

	headphoneBrands = []string{
		"airpods", "beats", "sennheiser", "bose", "jabra", "steelseries",
		"hyperx", "razer", "corsair", "logitech g", "sony wh", "skullcandy",
		"plantronics",
	}

	speakerWords = []string{"speaker", "monitor", "soundbar", "subwoofer", "built-in speaker"}

	microphoneWords = []string{"microphone", "mic", "input", "capture", "webcam", "camera"}

	integratedAudioWords = []string{"audio", "sound", "realtek", "amd", "nvidia", "intel"}

	wirelessWords = []string{"bluetooth", "wireless", "wifi", "2.4ghz", "true wireless", "airpods", "bt "}

	wiredWords = []string{
		"usb", "analog", "digital", "3.5mm", "jack", "line", "xlr", "trs",
		"built-in", "internal", "wired", "cable", "high definition audio",
	}

	wirelessTransports = []string{"bluetooth", "airplay", "bthenum"}

	wiredTransports = []string{"usb", "builtin", "built-in", "hdmi", "displayport", "thunderbolt", "pci"}
)

// HeadphoneWords returns the headphone family vocabulary.
func HeadphoneWords() []string { return clone(headphoneWords) }

// HeadphoneBrands returns brands that imply a head-worn device.
func HeadphoneBrands() []string { return clone(headphoneBrands) }

// SpeakerWords returns the speaker family vocabulary.
func SpeakerWords() []string { return clone(speakerWords) }

// MicrophoneWords returns the capture device vocabulary.
func MicrophoneWords() []string { return clone(microphoneWords) }

// IntegratedAudioWords returns tokens that identify on-board audio.
func IntegratedAudioWords() []string { return clone(integratedAudioWords) }

// WirelessWords returns the wireless connectivity vocabulary.
func WirelessWords() []string { return clone(wirelessWords) }

// WiredWords returns the wired connectivity vocabulary. Integrated audio
// tokens also imply wired and are checked separately.
func WiredWords() []string { return clone(wiredWords) }

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
