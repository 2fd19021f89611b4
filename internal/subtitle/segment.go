package subtitle

import "strings"

// Segment is a transcription-provided span of time with associated text.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcription is the record returned by the transcription collaborator.
type Transcription struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
	Segments []Segment `json:"segments"`
}

// DefaultMaxCueSeconds is the duration threshold above which segments are
// split into multiple cues.
const DefaultMaxCueSeconds = 5.0

// SplitLongSegments subdivides segments longer than maxDuration into evenly
// timed parts with the word sequence distributed across them. Output segments
// are re-numbered densely across the whole result. Two exceptions pass
// through unchanged: segments already within the threshold, and over-long
// segments whose text holds at most one word.
func SplitLongSegments(segments []Segment, maxDuration float64) []Segment {
	processed := make([]Segment, 0, len(segments))

	for _, segment := range segments {
		duration := segment.End - segment.Start
		if duration <= maxDuration {
			processed = append(processed, segment)
			continue
		}

		words := strings.Fields(segment.Text)
		if len(words) <= 1 {
			processed = append(processed, segment)
			continue
		}

		numParts := int(duration/maxDuration) + 1
		wordsPerPart := len(words) / numParts
		timePerPart := duration / float64(numParts)

		for i := 0; i < numParts; i++ {
			partStart := segment.Start + float64(i)*timePerPart
			partEnd := segment.Start + float64(i+1)*timePerPart

			wordStart := i * wordsPerPart
			var partWords []string
			if i == numParts-1 {
				// Last part takes all remaining words so integer division
				// never loses any.
				partWords = words[wordStart:]
			} else {
				partWords = words[wordStart : wordStart+wordsPerPart]
			}
			if len(partWords) == 0 {
				continue
			}

			processed = append(processed, Segment{
				ID:    len(processed),
				Start: partStart,
				End:   partEnd,
				Text:  strings.Join(partWords, " "),
			})
		}
	}

	return processed
}
