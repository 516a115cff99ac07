package core

import "strings"

// encodingFixes maps UTF-8 text that was decoded as Latin-1 somewhere upstream
// back to the intended Polish characters. Multi-character sequences sit first
// so a longer broken run is never split by one of its own prefixes. The list
// only contains sequences that do not occur in correctly encoded text, which
// makes the repair idempotent.
var encodingFixes = []struct {
	broken string
	fixed  string
}{
	// Frequently mangled whole words.
	{"moĹĽliwoĹ›Ä‡", "możliwość"},
	{"dodaÄ‡", "dodać"},
	{"hiperĹ‚Ä…cze", "hiperłącze"},
	{"czcionki/tĹ‚a", "czcionki/tła"},
	// Single characters.
	{"Ä…", "ą"},
	{"Ä‡", "ć"},
	{"Ä™", "ę"},
	{"Äś", "Ę"},
	{"Ä†", "Ć"},
	{"Ä", "Ą"},
	{"Ĺ‚", "ł"},
	{"Ĺ›", "ś"},
	{"Ĺš", "Ś"},
	{"ĹĽ", "ż"},
	{"Ĺ»", "Ż"},
	{"Ĺş", "ź"},
	{"Ĺą", "Ź"},
	{"Ĺ„", "ń"},
	{"Ĺƒ", "Ń"},
	{"Ĺ", "Ł"},
	{"Ă³", "ó"},
	{"Ă\"", "Ó"},
}

var encodingReplacer = buildEncodingReplacer()

func buildEncodingReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(encodingFixes)*2)
	for _, fix := range encodingFixes {
		pairs = append(pairs, fix.broken, fix.fixed)
	}
	return strings.NewReplacer(pairs...)
}

// RepairText fixes known Polish mojibake in a text field. Text without any of
// the broken sequences passes through unchanged, and repairing twice is the
// same as repairing once.
func RepairText(s string) string {
	if s == "" {
		return s
	}
	return encodingReplacer.Replace(s)
}
