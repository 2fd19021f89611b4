package ffmpeg

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"vidsub/internal/services"
)

var commandContext = exec.CommandContext

// DefaultForceStyle is the libass style applied to burned-in subtitles when
// the caller does not supply one.
const DefaultForceStyle = "FontName=Arial,FontSize=20,PrimaryColour=&Hffffff,OutlineColour=&H0,Outline=2,Alignment=2"

// Available verifies the ffmpeg binary can be executed. A missing or broken
// installation surfaces as ErrFFmpegMissing.
func Available(ctx context.Context, binary string) error {
	binary = normalizeBinary(binary)
	cmd := commandContext(ctx, binary, "-version")
	if err := cmd.Run(); err != nil {
		return services.Wrap(services.ErrFFmpegMissing, "ffmpeg", "check", "ffmpeg is not installed or not found in PATH", err)
	}
	return nil
}

// ExtractAudio pulls the audio track out of videoPath into audioPath as a
// low-bitrate mono Opus stream sized for the transcription API's upload
// limit. Partial output is removed on failure.
func ExtractAudio(ctx context.Context, binary, videoPath, audioPath string) error {
	binary = normalizeBinary(binary)
	cmd := commandContext(ctx, binary, extractArgs(videoPath, audioPath)...)
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.Remove(audioPath)
		return services.Wrap(services.ErrVideoProcessing, "ffmpeg", "extract-audio", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// BurnSubtitles re-encodes videoPath with the SRT rendered into the picture
// and writes the result to outputPath. The audio track is copied untouched.
// An empty style selects DefaultForceStyle.
func BurnSubtitles(ctx context.Context, binary, videoPath, srtPath, outputPath, style string) error {
	binary = normalizeBinary(binary)
	cmd := commandContext(ctx, binary, burnArgs(videoPath, srtPath, outputPath, style)...)
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.Remove(outputPath)
		return services.Wrap(services.ErrVideoProcessing, "ffmpeg", "burn-subtitles", strings.TrimSpace(string(output)), err)
	}
	return nil
}

func extractArgs(videoPath, audioPath string) []string {
	return []string{
		"-i", videoPath,
		"-vn",
		"-acodec", "libopus",
		"-b:a", "12k",
		"-application", "voip",
		"-ac", "1",
		"-y",
		audioPath,
	}
}

func burnArgs(videoPath, srtPath, outputPath, style string) []string {
	if strings.TrimSpace(style) == "" {
		style = DefaultForceStyle
	}
	filter := "subtitles='" + escapeFilterPath(srtPath) + "':force_style='" + style + "'"
	return []string{
		"-i", videoPath,
		"-vf", filter,
		"-c:a", "copy",
		"-y",
		outputPath,
	}
}

// escapeFilterPath protects the characters the ffmpeg filter parser treats
// specially inside a subtitles= argument.
func escapeFilterPath(path string) string {
	escaped := strings.ReplaceAll(path, `\`, `\\`)
	return strings.ReplaceAll(escaped, ":", `\:`)
}

func normalizeBinary(binary string) string {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return "ffmpeg"
	}
	return binary
}
