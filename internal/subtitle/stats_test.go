package subtitle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vidsub/internal/services"
)

const twoCueDocument = "1\n" +
	"00:00:00,000 --> 00:00:02,000\n" +
	"Hello world.\n" +
	"\n" +
	"2\n" +
	"00:00:02,500 --> 00:00:04,500\n" +
	"This is a test.\n"

func writeSRT(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.srt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateSRTFile(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    bool
	}{
		{"well formed", twoCueDocument, true},
		{"arbitrary text", "this is not a subtitle file\nat all\nreally", false},
		{"too few lines", "1\n00:00:00,000 --> 00:00:02,000", false},
		{"non numeric index", "one\n00:00:00,000 --> 00:00:02,000\nText\n", false},
		{"bad timestamp line", "1\n0:0:0,0 --> 0:0:2,0\nText\n", false},
		{"leading whitespace tolerated", "\n\n" + twoCueDocument, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSRT(t, tc.content)
			if got := ValidateSRTFile(path); got != tc.want {
				t.Errorf("ValidateSRTFile = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidateSRTFileMissing(t *testing.T) {
	if ValidateSRTFile(filepath.Join(t.TempDir(), "missing.srt")) {
		t.Fatal("nonexistent path must validate false")
	}
}

func TestReadStatsTwoCues(t *testing.T) {
	path := writeSRT(t, twoCueDocument)
	stats, err := ReadStats(path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.SubtitleCount != 2 {
		t.Errorf("SubtitleCount = %d, want 2", stats.SubtitleCount)
	}
	if stats.TotalDuration != 4.5 {
		t.Errorf("TotalDuration = %v, want 4.5", stats.TotalDuration)
	}
	wantChars := len("Hello world.") + len("This is a test.")
	if stats.TotalCharacters != wantChars {
		t.Errorf("TotalCharacters = %d, want %d", stats.TotalCharacters, wantChars)
	}
	wantAvg := float64(wantChars) / 2
	if stats.AverageCharsPerSubtitle != wantAvg {
		t.Errorf("AverageCharsPerSubtitle = %v, want %v", stats.AverageCharsPerSubtitle, wantAvg)
	}
}

func TestReadStatsEmptyFile(t *testing.T) {
	path := writeSRT(t, "")
	stats, err := ReadStats(path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.SubtitleCount != 0 || stats.TotalDuration != 0 || stats.TotalCharacters != 0 {
		t.Fatalf("empty file should yield zero stats: %+v", stats)
	}
	if stats.AverageCharsPerSubtitle != 0 {
		t.Fatalf("average must be zero when there are no cues: %v", stats.AverageCharsPerSubtitle)
	}
}

func TestReadStatsMissingFile(t *testing.T) {
	_, err := ReadStats(filepath.Join(t.TempDir(), "missing.srt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, services.ErrSubtitleGeneration) {
		t.Fatalf("expected ErrSubtitleGeneration, got %v", err)
	}
}

func TestReadStatsNoTimestamps(t *testing.T) {
	path := writeSRT(t, "just some text\nwithout any timing\n")
	stats, err := ReadStats(path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalDuration != 0 {
		t.Errorf("TotalDuration = %v, want 0", stats.TotalDuration)
	}
}

func TestReadStatsUsesLastRangeEnd(t *testing.T) {
	// Ranges out of order: the last occurrence in document order wins, not
	// the maximum.
	content := "1\n" +
		"00:01:00,000 --> 00:01:30,000\n" +
		"Later cue placed first.\n" +
		"\n" +
		"2\n" +
		"00:00:00,000 --> 00:00:10,000\n" +
		"Earlier cue placed last.\n"
	path := writeSRT(t, content)
	stats, err := ReadStats(path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalDuration != 10 {
		t.Errorf("TotalDuration = %v, want 10 (last range in document order)", stats.TotalDuration)
	}
}

func TestStatsRoundTripWithGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.srt")
	if _, err := GenerateSRT(sampleTranscription(), path); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !ValidateSRTFile(path) {
		t.Fatal("generated file must validate")
	}
	stats, err := ReadStats(path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.SubtitleCount != 2 || stats.TotalDuration != 4.5 {
		t.Fatalf("unexpected stats for generated document: %+v", stats)
	}
}
