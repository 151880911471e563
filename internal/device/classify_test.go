package device

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		manufacturer string
		wantType     DeviceType
		wantConn     Connectivity
	}{
		{"AirPods Pro", "Apple", TypeHeadphone, ConnWireless},
		{"Realtek High Definition Audio", "Realtek", TypeSpeaker, ConnWired},
		{"USB Microphone", "Blue", TypeMicrophone, ConnWired},
		{"Bluetooth Speaker", "", TypeSpeaker, ConnWireless},
		{"Soundcore Life BT", "", TypeSpeaker, ConnWireless},
		{"Studio Monitor", "", TypeSpeaker, ConnUnknown},
		{"HD Webcam C920", "Logitech", TypeMicrophone, ConnUnknown},
		{"Logitech G Pro X Headset", "", TypeHeadphone, ConnUnknown},
		{"Bose QuietComfort 35 II", "", TypeHeadphone, ConnUnknown},
		{"Unknown Device XYZ", "", TypeUnknown, ConnUnknown},
		{"", "", TypeUnknown, ConnUnknown},
		{"ＵＳＢ ＳＰＥＡＫＥＲ", "", TypeSpeaker, ConnWired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.name, tt.manufacturer)
			if got.DeviceType != tt.wantType {
				t.Fatalf("type = %q, want %q", got.DeviceType, tt.wantType)
			}
			if got.Connectivity != tt.wantConn {
				t.Fatalf("connectivity = %q, want %q", got.Connectivity, tt.wantConn)
			}
		})
	}
}

func TestClassifyHeadphoneBeatsSpeakerWords(t *testing.T) {
	got := Classify("Headset Speaker", "")
	if got.DeviceType != TypeHeadphone {
		t.Fatalf("expected headphone priority, got %q", got.DeviceType)
	}
}

func TestClassifyWirelessBeatsWired(t *testing.T) {
	got := Classify("Wireless USB Dongle", "")
	if got.Connectivity != ConnWireless {
		t.Fatalf("expected wireless priority, got %q", got.Connectivity)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	first := Classify("Jabra Evolve 65", "GN")
	for i := 0; i < 10; i++ {
		if got := Classify("Jabra Evolve 65", "GN"); got != first {
			t.Fatalf("classification changed between calls: %+v vs %+v", got, first)
		}
	}
}

func TestClassifyDeviceDefaultsManufacturer(t *testing.T) {
	got := ClassifyDevice(Device{Name: "  Speakers  ", ID: "x"})
	if got.Manufacturer != DefaultManufacturer {
		t.Fatalf("manufacturer = %q", got.Manufacturer)
	}
	if got.Name != "Speakers" {
		t.Fatalf("name not trimmed: %q", got.Name)
	}
	if got.DeviceType != TypeSpeaker {
		t.Fatalf("type = %q", got.DeviceType)
	}
}

func TestClassifyDeviceTransportHints(t *testing.T) {
	tests := []struct {
		desc string
		in   Device
		want Connectivity
	}{
		{"bthenum id", Device{Name: "Speakers", ID: `BTHENUM\{0000110B}_LOCALMFG&0002`}, ConnWireless},
		{"coreaudio builtin", Device{Name: "MacBook Pro Speakers", Manufacturer: "Apple", Transport: "coreaudio_device_type_builtin"}, ConnWired},
		{"airplay", Device{Name: "Living Room", Transport: "coreaudio_device_type_airplay"}, ConnWireless},
		{"hdmi", Device{Name: "LG TV", Transport: "coreaudio_device_type_hdmi"}, ConnWired},
		{"no hint", Device{Name: "Mystery"}, ConnUnknown},
		{"name wins", Device{Name: "USB Headset", Transport: "bluetooth"}, ConnWired},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := ClassifyDevice(tt.in).Connectivity; got != tt.want {
				t.Fatalf("connectivity = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVocabulariesAreCopies(t *testing.T) {
	words := HeadphoneWords()
	words[0] = "mutated"
	if HeadphoneWords()[0] != "headphone" {
		t.Fatal("accessor exposed internal slice")
	}
	for name, list := range map[string][]string{
		"headphone":  HeadphoneWords(),
		"brands":     HeadphoneBrands(),
		"speaker":    SpeakerWords(),
		"microphone": MicrophoneWords(),
		"integrated": IntegratedAudioWords(),
		"wireless":   WirelessWords(),
		"wired":      WiredWords(),
	} {
		if len(list) == 0 {
			t.Fatalf("%s vocabulary is empty", name)
		}
	}
}
