package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Transcription.Model != defaultTranscriptionModel {
		t.Fatalf("expected default model, got %q", cfg.Transcription.Model)
	}
	if cfg.Subtitles.MaxCueSeconds != defaultMaxCueSeconds {
		t.Fatalf("expected default max_cue_seconds, got %v", cfg.Subtitles.MaxCueSeconds)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[subtitles]
max_cue_seconds = 4.5

[ffmpeg]
ffmpeg_binary = "/opt/ffmpeg/bin/ffmpeg"

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatal("expected config file to be found")
	}
	if cfg.Subtitles.MaxCueSeconds != 4.5 {
		t.Fatalf("override not applied: %v", cfg.Subtitles.MaxCueSeconds)
	}
	if cfg.FFmpeg.FFmpegBinary != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("ffmpeg binary override not applied: %q", cfg.FFmpeg.FFmpegBinary)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging overrides not applied: %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[subtitles]
max_cue_seconds = -1.0
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, _, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for negative max_cue_seconds")
	}
	if !strings.Contains(err.Error(), "max_cue_seconds") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test-env")

	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Transcription.APIKey != "sk-test-env" {
		t.Fatalf("transcription key fallback failed: %q", cfg.Transcription.APIKey)
	}
	if cfg.Refiner.APIKey != "sk-test-env" {
		t.Fatalf("refiner key fallback failed: %q", cfg.Refiner.APIKey)
	}
}

func TestAPIKeyConfigWinsOverEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg := Default()
	cfg.Transcription.APIKey = "sk-config"
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Transcription.APIKey != "sk-config" {
		t.Fatalf("explicit key should win: %q", cfg.Transcription.APIKey)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := expandPath("~/videos")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if got != filepath.Join(home, "videos") {
		t.Fatalf("expandPath(~/videos) = %q", got)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[transcription]") {
		t.Fatal("sample config missing transcription section")
	}
}
