package subtitle

import (
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"vidsub/internal/services"
)

var (
	timestampLinePattern  = regexp.MustCompile(`^\d{2}:\d{2}:\d{2},\d{3} --> \d{2}:\d{2}:\d{2},\d{3}`)
	timestampRangePattern = regexp.MustCompile(`(\d{2}:\d{2}:\d{2},\d{3}) --> (\d{2}:\d{2}:\d{2},\d{3})`)
)

// ValidateSRTFile reports whether the file looks like a well-formed SRT
// document. Only the first block is structurally checked: an all-digit index
// line followed by a timestamp range line. Returns false when the file cannot
// be read; callers that need the reason should use ReadStats instead. The
// boolean-only signature is kept for API parity with generation, which
// returns errors.
func ValidateSRTFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 3 {
		return false
	}
	if !isAllDigits(strings.TrimSpace(lines[0])) {
		return false
	}
	return timestampLinePattern.MatchString(strings.TrimSpace(lines[1]))
}

// Stats aggregates read-only statistics over a parsed SRT document.
type Stats struct {
	SubtitleCount           int     `json:"subtitle_count"`
	TotalDuration           float64 `json:"total_duration"`
	TotalCharacters         int     `json:"total_characters"`
	AverageCharsPerSubtitle float64 `json:"average_chars_per_subtitle"`
}

// ReadStats parses an SRT file into aggregate statistics. The cue count is a
// blank-separator heuristic (occurrences of "\n\n" plus one) rather than a
// structural parse; it diverges from the true count when cue text itself
// contains blank-adjacent formatting, and is kept that way for compatibility
// with documents produced by GenerateSRT.
func ReadStats(path string) (Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, services.Wrap(services.ErrSubtitleGeneration, "subtitle", "stats", "read srt file", err)
	}
	content := string(data)

	var stats Stats
	if strings.TrimSpace(content) != "" {
		stats.SubtitleCount = strings.Count(content, "\n\n") + 1
	}

	// Total duration is the end timestamp of the last range in the document.
	matches := timestampRangePattern.FindAllStringSubmatch(content, -1)
	if len(matches) > 0 {
		if seconds, err := ParseTimestamp(matches[len(matches)-1][2]); err == nil {
			stats.TotalDuration = seconds
		}
	}

	// Presumed text lines: non-blank, not a bare index, no timestamp arrow.
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isAllDigits(trimmed) || strings.Contains(line, "-->") {
			continue
		}
		stats.TotalCharacters += utf8.RuneCountInString(line)
	}

	if stats.SubtitleCount > 0 {
		stats.AverageCharsPerSubtitle = float64(stats.TotalCharacters) / float64(stats.SubtitleCount)
	}
	return stats, nil
}

func isAllDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
