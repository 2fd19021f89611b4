package subtitle

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"  Hello   world  ", "Hello world"},
		{"line one\nline two", "line one line two"},
		{"carriage\rreturn\r\nmix", "carriage return mix"},
		{"", ""},
		{"   \t\n  ", ""},
		{"short sentence stays on one line", "short sentence stays on one line"},
	}
	for _, tc := range cases {
		if got := CleanText(tc.input); got != tc.want {
			t.Errorf("CleanText(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestCleanTextWrapsLongText(t *testing.T) {
	input := "the quick brown fox jumps over the lazy dog while the patient cat watches from a warm windowsill nearby"
	got := CleanText(input)

	lines := strings.Split(got, "\n")
	if len(lines) > 2 {
		t.Fatalf("expected at most 2 lines, got %d: %q", len(lines), got)
	}
	for _, line := range lines {
		if utf8.RuneCountInString(line) > 40 {
			t.Errorf("line exceeds 40 characters: %q", line)
		}
	}
}

func TestCleanTextDropsOverflowBeyondTwoLines(t *testing.T) {
	// 30 words of 9 characters each cannot fit in two 40-char lines.
	word := "abcdefghi"
	input := strings.TrimSpace(strings.Repeat(word+" ", 30))
	got := CleanText(input)

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected exactly 2 lines, got %d", len(lines))
	}
	if strings.Count(got, word) >= 30 {
		t.Error("expected overflow words to be dropped")
	}
}

func TestCleanTextEightyCharBoundary(t *testing.T) {
	// Exactly 80 characters stays single-line even though it exceeds the
	// per-line wrap budget.
	input := strings.Repeat("abcd ", 16)
	cleaned := CleanText(input)
	if utf8.RuneCountInString(strings.TrimSpace(input)) != 79 {
		t.Fatalf("fixture length drifted: %d", utf8.RuneCountInString(strings.TrimSpace(input)))
	}
	if strings.Contains(cleaned, "\n") {
		t.Errorf("text under the single-line limit should not wrap: %q", cleaned)
	}
}

func TestCleanTextCountsRunes(t *testing.T) {
	// Multibyte words must be measured in runes, not bytes.
	input := strings.TrimSpace(strings.Repeat("héllo wörld übermäßig ", 6))
	got := CleanText(input)
	for _, line := range strings.Split(got, "\n") {
		if utf8.RuneCountInString(line) > 40 {
			t.Errorf("line exceeds 40 runes: %q", line)
		}
	}
}
