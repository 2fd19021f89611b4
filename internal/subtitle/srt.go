package subtitle

import (
	"os"
	"strconv"
	"strings"

	"vidsub/internal/services"
)

// NoSpeechPlaceholder is emitted when a cue's cleaned text is empty.
const NoSpeechPlaceholder = "[No speech]"

// GenerateSRT writes an SRT document for the transcription using
// DefaultMaxCueSeconds as the split threshold. Returns the output path.
func GenerateSRT(tr Transcription, outputPath string) (string, error) {
	return GenerateSRTWithMax(tr, outputPath, DefaultMaxCueSeconds)
}

// GenerateSRTWithMax writes an SRT document, splitting segments longer than
// maxCueSeconds. A transcription must contain at least one segment. The file
// is written as UTF-8 and overwrites any existing content at outputPath.
func GenerateSRTWithMax(tr Transcription, outputPath string, maxCueSeconds float64) (string, error) {
	if len(tr.Segments) == 0 {
		return "", services.Wrap(services.ErrSubtitleGeneration, "subtitle", "generate", "no segments found in transcription data", nil)
	}
	if maxCueSeconds <= 0 {
		maxCueSeconds = DefaultMaxCueSeconds
	}

	segments := SplitLongSegments(tr.Segments, maxCueSeconds)

	// Each cue block is index, timestamp range, text, blank separator. Cue
	// indices are 1-based and sequential, independent of segment IDs.
	lines := make([]string, 0, len(segments)*4)
	for i, segment := range segments {
		lines = append(lines, strconv.Itoa(i+1))
		lines = append(lines, FormatTimestamp(segment.Start)+" --> "+FormatTimestamp(segment.End))
		text := CleanText(segment.Text)
		if text == "" {
			text = NoSpeechPlaceholder
		}
		lines = append(lines, text)
		lines = append(lines, "")
	}

	if err := os.WriteFile(outputPath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return "", services.Wrap(services.ErrSubtitleGeneration, "subtitle", "generate", "write srt file", err)
	}
	return outputPath, nil
}
