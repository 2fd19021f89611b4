package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"vidsub/internal/fileutil"
	"vidsub/internal/language"
	"vidsub/internal/services"
)

// validateInputs runs the common pre-flight checks before a transcription
// workflow touches the network.
func (p *Pipeline) validateInputs(ctx context.Context, inputVideo, outputPath, lang string) error {
	if err := p.media.Available(ctx); err != nil {
		return err
	}
	if !fileutil.IsReadableFile(inputVideo) {
		return services.Wrap(services.ErrValidation, "pipeline", "validate",
			fmt.Sprintf("input video file not found or not readable: %s", inputVideo), nil)
	}
	if !fileutil.IsSupportedVideo(inputVideo) {
		return services.Wrap(services.ErrInvalidFormat, "pipeline", "validate",
			fmt.Sprintf("unsupported video format %q (supported: %s)",
				filepath.Ext(inputVideo), strings.Join(fileutil.SupportedVideoExtensions, ", ")), nil)
	}
	if err := fileutil.EnsureWritableDir(filepath.Dir(outputPath)); err != nil {
		return services.Wrap(services.ErrValidation, "pipeline", "validate",
			fmt.Sprintf("output directory is not writable: %s", filepath.Dir(outputPath)), err)
	}
	if !language.IsSupported(lang) {
		return services.Wrap(services.ErrValidation, "pipeline", "validate",
			fmt.Sprintf("unsupported language code: %s", lang), nil)
	}
	if strings.TrimSpace(p.cfg.Transcription.APIKey) == "" {
		return services.Wrap(services.ErrAPIKeyMissing, "pipeline", "validate",
			"transcription API key not configured (set transcription.api_key or OPENAI_API_KEY)", nil)
	}
	return nil
}
