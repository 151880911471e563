package crossref

import "testing"

func TestSimilarityStrategies(t *testing.T) {
	tests := []struct {
		desc      string
		name      string
		label     string
		nativeID  string
		foreignID string
		isDefault bool
		wantType  MatchType
		wantConf  Confidence
		wantMin   float64
		wantMax   float64
	}{
		{"exact name", "USB Speakers", "  usb speakers ", "n1", "w1", false, MatchNameExact, ConfidenceHigh, 100, 100},
		{"id equality", "Alpha", "Zulu", "abc", "abc", false, MatchIDExact, ConfidenceHigh, 100, 100},
		{"id containment", "Alpha", "Zulu", "{0.0.0.00000000}.{abcdef12-3456}", "abcdef12-3456", false, MatchIDExact, ConfidenceHigh, 100, 100},
		{"default sentinel", "Speakers", "Default - Headphones", "x", "default", true, MatchDefaultDevice, ConfidenceHigh, 98, 98},
		{"substring", "Realtek High Definition Audio", "Realtek", "n1", "w1", false, MatchNameSubstring, ConfidenceMedium, 85, 95},
		{"substring high ratio", "MacBook Pro Speakers", "MacBook Pro Speakers 2", "", "", false, MatchNameSubstring, ConfidenceHigh, 94, 95},
		{"keywords two", "Logitech USB Headset", "Headset (Logitech G430)", "", "", false, MatchKeywords, ConfidenceMedium, 90, 90},
		{"keywords one", "Bluetooth Adapter", "Bluetooth Audio Device", "", "", false, MatchKeywords, ConfidenceLow, 70, 70},
		{"keywords clamp", "Logitech USB Bluetooth Headset", "Headset Bluetooth USB Logitech", "", "", false, MatchKeywords, ConfidenceMedium, 100, 100},
		{"keywords plural", "Speakers", "Desk Speaker", "", "", false, MatchKeywords, ConfidenceLow, 80, 80},
		{"keywords inside tokens", "USB2.0 Speakers", "Speakers (USB Audio Device)", "", "", false, MatchKeywords, ConfidenceMedium, 90, 90},
		{"keyword with suffix", "HDMI2 Output", "HDMI Display", "", "", false, MatchKeywords, ConfidenceLow, 70, 70},
		{"fuzzy", "Studio Monitor 5", "Studio Monitors 5", "", "", false, MatchFuzzy, ConfidenceMedium, 54, 55},
		{"brand", "SonyWH1000", "Sony Speaker", "", "", false, MatchBrand, ConfidenceLow, 50, 50},
		{"no overlap", "Internal Mic", "External Camera", "n1", "w1", false, MatchNone, ConfidenceNone, 0, 0},
		{"empty label", "USB Speakers", "", "n1", "n1", false, MatchNone, ConfidenceNone, 0, 0},
		{"empty name", "", "USB Speakers", "", "", false, MatchNone, ConfidenceNone, 0, 0},
		{"short id containment ignored", "Alpha", "Zulu", "hw:0,0-abc", "abc", false, MatchNone, ConfidenceNone, 0, 0},
		{"communications sentinel ignored", "Alpha", "Zulu", "communications", "communications", false, MatchNone, ConfidenceNone, 0, 0},
		{"default needs native default", "Alpha", "Zulu", "x", "default", false, MatchNone, ConfidenceNone, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := Similarity(tt.name, tt.label, tt.nativeID, tt.foreignID, tt.isDefault)
			if got.MatchType != tt.wantType {
				t.Fatalf("type = %q, want %q (score %.2f)", got.MatchType, tt.wantType, got.Score)
			}
			if got.Confidence != tt.wantConf {
				t.Fatalf("confidence = %q, want %q", got.Confidence, tt.wantConf)
			}
			if got.Score < tt.wantMin || got.Score > tt.wantMax {
				t.Fatalf("score = %.3f, want [%v, %v]", got.Score, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestSimilaritySymmetricForNameStrategies(t *testing.T) {
	names := []string{
		"USB Speakers",
		"usb speakers",
		"Realtek High Definition Audio",
		"Realtek",
		"Logitech USB Headset",
		"Headset (Logitech G430)",
		"Studio Monitor 5",
		"Studio Monitors 5",
		"SonyWH1000",
		"Sony Speaker",
		"Internal Mic",
		"External Camera",
	}
	for _, a := range names {
		for _, b := range names {
			ab := Similarity(a, b, "", "", false)
			ba := Similarity(b, a, "", "", false)
			if ab != ba {
				t.Fatalf("asymmetric result for %q/%q: %+v vs %+v", a, b, ab, ba)
			}
		}
	}
}

func TestMatcherDisabledStrategies(t *testing.T) {
	opts := DefaultOptions()
	opts.Disabled = []MatchType{MatchNameExact}
	got := NewMatcher(opts).Similarity("USB Speakers", "USB Speakers", "", "", false)
	if got.MatchType != MatchNameSubstring || got.Score != 95 || got.Confidence != ConfidenceHigh {
		t.Fatalf("expected full-ratio substring match, got %+v", got)
	}

	opts.Disabled = []MatchType{MatchNameExact, MatchNameSubstring, MatchKeywords, MatchFuzzy, MatchBrand}
	got = NewMatcher(opts).Similarity("USB Speakers", "USB Speakers", "", "", false)
	if got.MatchType != MatchNone {
		t.Fatalf("expected no match with name strategies disabled, got %+v", got)
	}
}

func TestParseMatchType(t *testing.T) {
	for _, name := range []string{"id-exact", " Fuzzy-Similarity ", "position-correlation"} {
		if _, err := ParseMatchType(name); err != nil {
			t.Fatalf("ParseMatchType(%q): %v", name, err)
		}
	}
	for _, name := range []string{"no-match", "name-partial", ""} {
		if _, err := ParseMatchType(name); err == nil {
			t.Fatalf("expected error for %q", name)
		}
	}
}

func TestParseAssignment(t *testing.T) {
	if got, err := ParseAssignment(""); err != nil || got != AssignmentGreedy {
		t.Fatalf("empty assignment = %q, %v", got, err)
	}
	if got, err := ParseAssignment("OPTIMAL"); err != nil || got != AssignmentOptimal {
		t.Fatalf("optimal assignment = %q, %v", got, err)
	}
	if _, err := ParseAssignment("random"); err == nil {
		t.Fatal("expected error for unknown assignment")
	}
}

func TestConfidenceRank(t *testing.T) {
	if !(ConfidenceHigh.Rank() > ConfidenceMedium.Rank() &&
		ConfidenceMedium.Rank() > ConfidenceLow.Rank() &&
		ConfidenceLow.Rank() > ConfidenceNone.Rank()) {
		t.Fatal("confidence ranks out of order")
	}
}

func TestVocabularyAccessors(t *testing.T) {
	vocab := KeywordVocabulary()
	if len(vocab) != len(DeviceTypeWords())+len(connectionWords)+len(chipsetWords)+len(BrandWords()) {
		t.Fatalf("unexpected vocabulary size %d", len(vocab))
	}
	vocab[0] = "mutated"
	if KeywordVocabulary()[0] != "speaker" {
		t.Fatal("accessor exposed internal slice")
	}
}
