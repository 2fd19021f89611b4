package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFFmpegMissing indicates ffmpeg or ffprobe could not be found on PATH.
	ErrFFmpegMissing = errors.New("ffmpeg not found")
	// ErrInvalidFormat indicates an unsupported or unreadable media container.
	ErrInvalidFormat = errors.New("invalid video format")
	// ErrAPIKeyMissing indicates a required API credential is not configured.
	ErrAPIKeyMissing = errors.New("api key missing")
	// ErrSubtitleGeneration tags failures in SRT generation and stats reading.
	ErrSubtitleGeneration = errors.New("subtitle generation error")
	// ErrVideoProcessing tags failures while probing or re-encoding video.
	ErrVideoProcessing = errors.New("video processing error")
	// ErrTranscription tags failures returned by the transcription service.
	ErrTranscription = errors.New("transcription error")
	// ErrRefinement tags failures returned by the subtitle refiner.
	ErrRefinement = errors.New("refinement error")
	// ErrValidation tags rejected user input (paths, languages, extensions).
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrVideoProcessing
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
