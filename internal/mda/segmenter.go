package mda

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// Fragments at or below this rune count are headers or table remnants.
	minSentenceChars = 20
	minSentenceWords = 4
)

// Sentence boundary: terminal punctuation, whitespace, then a capitalized
// word. Requiring the capital avoids splitting on abbreviations and decimals.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+[A-Z]`)

// DefaultLegalPhrases are boilerplate indicators for legally mandated text
// (safe-harbor and risk disclaimers) that carries no sentiment signal.
func DefaultLegalPhrases() []string {
	return []string{
		"forward-looking",
		"safe harbor",
		"uncertainty",
		"may differ",
		"subject to error",
		"actual results",
		"factors that could cause",
		"statements regarding",
		"cautionary note",
		"risk factors",
	}
}

// Segmenter splits normalized text into qualifying sentences. It holds no
// state across calls; segmentation is idempotent on the same input.
type Segmenter struct {
	legalPhrases []string
}

// NewSegmenter creates a segmenter rejecting sentences that contain any of the
// given boilerplate phrases (case-insensitive). Nil means DefaultLegalPhrases.
func NewSegmenter(legalPhrases []string) *Segmenter {
	if legalPhrases == nil {
		legalPhrases = DefaultLegalPhrases()
	}
	lowered := make([]string, len(legalPhrases))
	for i, p := range legalPhrases {
		lowered[i] = strings.ToLower(p)
	}
	return &Segmenter{legalPhrases: lowered}
}

// Split returns the qualifying sentences of text in their original order.
func (s *Segmenter) Split(text string) []string {
	var sentences []string
	for _, fragment := range splitFragments(text) {
		fragment = strings.TrimSpace(fragment)
		if utf8.RuneCountInString(fragment) <= minSentenceChars {
			continue
		}
		if len(strings.Fields(fragment)) < minSentenceWords {
			continue
		}
		if s.isLegalNoise(fragment) {
			continue
		}
		sentences = append(sentences, fragment)
	}
	return sentences
}

func (s *Segmenter) isLegalNoise(sentence string) bool {
	lowered := strings.ToLower(sentence)
	for _, phrase := range s.legalPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// splitFragments cuts text at sentence boundaries, keeping the punctuation
// with the left fragment and the capital letter with the right one.
func splitFragments(text string) []string {
	locs := sentenceBoundary.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	fragments := make([]string, 0, len(locs)+1)
	prev := 0
	for _, loc := range locs {
		// loc[0] is the punctuation byte; loc[1]-1 is the capital letter,
		// which is always a single byte given the [A-Z] class.
		fragments = append(fragments, text[prev:loc[0]+1])
		prev = loc[1] - 1
	}
	fragments = append(fragments, text[prev:])
	return fragments
}
