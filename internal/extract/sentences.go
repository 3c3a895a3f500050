package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// sentenceEnders terminate a Telugu sentence: Latin punctuation plus the
// danda and double danda.
const sentenceEnders = ".!?।॥"

// SplitSentences splits text into trimmed, non-empty sentences in source order.
// Input is NFC-normalised first so visually identical text splits identically.
func SplitSentences(text string) []string {
	text = norm.NFC.String(text)

	parts := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(sentenceEnders, r)
	})

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// ContainsTelugu reports whether text contains any character from the Telugu block.
func ContainsTelugu(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Telugu, r) {
			return true
		}
	}
	return false
}
