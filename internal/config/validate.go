package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateRefiner(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranscription() error {
	if strings.TrimSpace(c.Transcription.BaseURL) == "" {
		return errors.New("transcription.base_url must be set")
	}
	if strings.TrimSpace(c.Transcription.Model) == "" {
		return errors.New("transcription.model must be set")
	}
	if c.Transcription.TimeoutSeconds <= 0 {
		return errors.New("transcription.timeout_seconds must be positive")
	}
	if c.Transcription.MaxUploadMiB <= 0 {
		return errors.New("transcription.max_upload_mib must be positive")
	}
	return nil
}

func (c *Config) validateRefiner() error {
	if strings.TrimSpace(c.Refiner.BaseURL) == "" {
		return errors.New("refiner.base_url must be set")
	}
	if strings.TrimSpace(c.Refiner.Model) == "" {
		return errors.New("refiner.model must be set")
	}
	if c.Refiner.TimeoutSeconds <= 0 {
		return errors.New("refiner.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.MaxCueSeconds <= 0 {
		return errors.New("subtitles.max_cue_seconds must be positive")
	}
	return nil
}

func (c *Config) validateFFmpeg() error {
	if err := ensurePositiveMap(map[string]int{
		"ffmpeg.extract_timeout": c.FFmpeg.ExtractTimeout,
		"ffmpeg.burn_timeout":    c.FFmpeg.BurnTimeout,
		"ffmpeg.probe_timeout":   c.FFmpeg.ProbeTimeout,
	}); err != nil {
		return err
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
