package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("generated srt", String("path", "/tmp/out.srt"), Int("cues", 12))

	line := buf.String()
	if !strings.Contains(line, "INFO") {
		t.Fatalf("missing level: %q", line)
	}
	if !strings.Contains(line, "generated srt") {
		t.Fatalf("missing message: %q", line)
	}
	if !strings.Contains(line, "path=/tmp/out.srt") || !strings.Contains(line, "cues=12") {
		t.Fatalf("missing attrs: %q", line)
	}
}

func TestConsoleHandlerComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := NewComponentLogger(slog.New(newConsoleHandler(&buf, lvl)), "pipeline")

	logger.Info("starting")

	if !strings.Contains(buf.String(), "pipeline: starting") {
		t.Fatalf("component not rendered as prefix: %q", buf.String())
	}
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level: %q", buf.String())
	}
	logger.Warn("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("warn should pass: %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"junk":  slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
