package subtitle

import (
	"strings"
	"unicode/utf8"
)

const (
	// singleLineLimit is the cleaned-text length above which wrapping kicks in.
	singleLineLimit = 80
	// lineBudget is the maximum characters per display line.
	lineBudget = 40
	// maxDisplayLines caps a cue at two lines. Words past the second line are
	// dropped; callers must not expect all text preserved for very long input.
	maxDisplayLines = 2
)

// CleanText collapses runs of whitespace (including line breaks) into single
// spaces and wraps long text into at most two display lines of lineBudget
// characters. Lengths are counted in runes. Empty or whitespace-only input
// yields the empty string.
func CleanText(text string) string {
	words := strings.Fields(text)
	cleaned := strings.Join(words, " ")
	if utf8.RuneCountInString(cleaned) <= singleLineLimit {
		return cleaned
	}

	var lines []string
	var current []string
	currentLength := 0
	for _, word := range words {
		length := utf8.RuneCountInString(word)
		if currentLength+length+1 <= lineBudget {
			current = append(current, word)
			currentLength += length + 1
		} else {
			if len(current) > 0 {
				lines = append(lines, strings.Join(current, " "))
			}
			current = []string{word}
			currentLength = length
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}

	if len(lines) > maxDisplayLines {
		lines = lines[:maxDisplayLines]
	}
	return strings.Join(lines, "\n")
}
