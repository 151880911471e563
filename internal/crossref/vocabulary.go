package crossref

var (
	// deviceTypeWords earn the keyword bonus when shared.
	deviceTypeWords = []string{"speaker", "headphone", "headset", "earbud"}

	connectionWords = []string{"airpods", "bluetooth", "usb", "hdmi"}

	chipsetWords = []string{"realtek", "nvidia", "amd", "intel"}

	brandWords = []string{
		"apple", "beats", "sony", "bose", "sennheiser", "jabra",
		"logitech", "corsair", "razer", "steelseries",
	}

	keywordVocabulary = concat(deviceTypeWords, connectionWords, chipsetWords, brandWords)
)

// KeywordVocabulary returns the audio-device terms used by keyword overlap.
func KeywordVocabulary() []string { return concat(keywordVocabulary) }

// DeviceTypeWords returns keywords that earn the device-type bonus.
func DeviceTypeWords() []string { return concat(deviceTypeWords) }

// BrandWords returns the brand tokens used by brand matching.
func BrandWords() []string { return concat(brandWords) }

func concat(lists ...[]string) []string {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make([]string, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func isDeviceTypeWord(word string) bool {
	for _, w := range deviceTypeWords {
		if w == word {
			return true
		}
	}
	return false
}

func isBrandWord(word string) bool {
	for _, w := range brandWords {
		if w == word {
			return true
		}
	}
	return false
}
