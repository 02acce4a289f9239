package domain

import (
	"strings"
	"unicode"
)

// NormalizeWord prepares an English headword for dictionary lookup:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - drops a CMU-style variant suffix such as "(2)"
//
// Apostrophes, hyphens and dots are kept; the CMU dictionary lists
// entries like "don't" and "a.m." verbatim.
func NormalizeWord(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}
	if idx := strings.IndexByte(word, '('); idx > 0 && strings.HasSuffix(word, ")") {
		word = word[:idx]
	}
	return strings.ToLower(word)
}

// StripStress removes the trailing stress digit (0, 1, 2) from an ARPAbet
// phoneme: "AY1" -> "AY".
func StripStress(phoneme string) string {
	if phoneme == "" {
		return phoneme
	}
	last := rune(phoneme[len(phoneme)-1])
	if unicode.IsDigit(last) {
		return phoneme[:len(phoneme)-1]
	}
	return phoneme
}
