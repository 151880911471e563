package textutil

// Bigrams returns the overlapping two-rune shingles of s in order.
// Strings shorter than two runes have no bigrams.
func Bigrams(s string) []string {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}
	out := make([]string, 0, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		out = append(out, string(runes[i:i+2]))
	}
	return out
}

// DiceCoefficient computes the Sørensen–Dice coefficient over the bigram
// multisets of a and b: 2*|A∩B| / (|A|+|B|). Inputs are compared as given;
// callers fold them first. Returns 0 when neither string has a bigram.
func DiceCoefficient(a, b string) float64 {
	left := Bigrams(a)
	right := Bigrams(b)
	total := len(left) + len(right)
	if total == 0 {
		return 0
	}
	counts := make(map[string]int, len(left))
	for _, bg := range left {
		counts[bg]++
	}
	shared := 0
	for _, bg := range right {
		if counts[bg] > 0 {
			counts[bg]--
			shared++
		}
	}
	return float64(2*shared) / float64(total)
}
