package config

import (
	"os"
	"strings"
)

// normalize trims string fields, applies environment fallbacks, and expands
// path fields to absolute form.
func (c *Config) normalize() error {
	c.Transcription.APIKey = strings.TrimSpace(c.Transcription.APIKey)
	c.Transcription.BaseURL = strings.TrimSpace(c.Transcription.BaseURL)
	c.Transcription.Model = strings.TrimSpace(c.Transcription.Model)
	c.Refiner.APIKey = strings.TrimSpace(c.Refiner.APIKey)
	c.Refiner.BaseURL = strings.TrimSpace(c.Refiner.BaseURL)
	c.Refiner.Model = strings.TrimSpace(c.Refiner.Model)
	c.FFmpeg.FFmpegBinary = strings.TrimSpace(c.FFmpeg.FFmpegBinary)
	c.FFmpeg.FFprobeBinary = strings.TrimSpace(c.FFmpeg.FFprobeBinary)

	// Both API clients fall back to the conventional environment variable.
	if envKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); envKey != "" {
		if c.Transcription.APIKey == "" {
			c.Transcription.APIKey = envKey
		}
		if c.Refiner.APIKey == "" {
			c.Refiner.APIKey = envKey
		}
	}

	if c.FFmpeg.FFmpegBinary == "" {
		c.FFmpeg.FFmpegBinary = defaultFFmpegBinary
	}
	if c.FFmpeg.FFprobeBinary == "" {
		c.FFmpeg.FFprobeBinary = defaultFFprobeBinary
	}

	for _, field := range []*string{&c.Paths.StagingDir, &c.Paths.LogDir, &c.Paths.DataDir} {
		if strings.TrimSpace(*field) == "" {
			continue
		}
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	return nil
}
